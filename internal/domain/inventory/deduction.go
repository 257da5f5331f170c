package inventory

import (
	"sort"

	"github.com/ecoharvest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BatchDeduction records how much was taken from a single batch
type BatchDeduction struct {
	BatchID   uuid.UUID
	ProductID uuid.UUID
	BatchCode string
	Deducted  decimal.Decimal
	UnitCost  decimal.Decimal
}

// DeductionPlan is the computed outcome of a FIFO walk over a product's
// batches. The plan is calculated before any batch is mutated so that an
// insufficient request leaves no partial deduction behind.
type DeductionPlan struct {
	Deductions    []BatchDeduction
	TotalDeducted decimal.Decimal
	Shortfall     decimal.Decimal
}

// Fulfilled returns true if the plan covers the full requested quantity
func (p *DeductionPlan) Fulfilled() bool {
	return p.Shortfall.IsZero()
}

// StockRestoration records stock re-added to a batch when an order is
// cancelled or a failed settlement is compensated
type StockRestoration struct {
	ProductID uuid.UUID
	BatchID   uuid.UUID
	Restored  decimal.Decimal
}

// InsufficientStockError reports a deduction that cannot be covered by the
// product's batches, carrying the shortfall amount.
type InsufficientStockError struct {
	shared.DomainError
	ProductID uuid.UUID
	Requested decimal.Decimal
	Shortfall decimal.Decimal
}

// Unwrap exposes the embedded DomainError so errors.As resolves the code
func (e *InsufficientStockError) Unwrap() error {
	return &e.DomainError
}

// NewInsufficientStockError creates an InsufficientStockError
func NewInsufficientStockError(productID uuid.UUID, requested, shortfall decimal.Decimal) *InsufficientStockError {
	return &InsufficientStockError{
		DomainError: shared.DomainError{
			Code:    "INSUFFICIENT_STOCK",
			Message: "Insufficient stock: short by " + shortfall.String(),
		},
		ProductID: productID,
		Requested: requested,
		Shortfall: shortfall,
	}
}

// SortFIFO orders batches oldest import date first. Batches with identical
// import dates are ordered by batch ID ascending to keep deduction
// reproducible.
func SortFIFO(batches []Batch) {
	sort.Slice(batches, func(i, j int) bool {
		if !batches[i].ImportDate.Equal(batches[j].ImportDate) {
			return batches[i].ImportDate.Before(batches[j].ImportDate)
		}
		return batches[i].ID.String() < batches[j].ID.String()
	})
}

// SortNewestFirst orders batches newest import date first, the order used
// when restoring cancelled stock into the most recent batch.
func SortNewestFirst(batches []Batch) {
	sort.Slice(batches, func(i, j int) bool {
		if !batches[i].ImportDate.Equal(batches[j].ImportDate) {
			return batches[i].ImportDate.After(batches[j].ImportDate)
		}
		return batches[i].ID.String() > batches[j].ID.String()
	})
}

// PlanFIFODeduction walks the product's batches oldest first and computes
// how much to take from each. No batch is mutated; callers apply the plan
// only when it is fulfilled (or explicitly accept a partial one).
func PlanFIFODeduction(productID uuid.UUID, quantity decimal.Decimal, batches []Batch) (*DeductionPlan, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Requested quantity must be positive")
	}
	if len(batches) == 0 {
		return nil, shared.ErrOutOfStock
	}

	sorted := make([]Batch, len(batches))
	copy(sorted, batches)
	SortFIFO(sorted)

	plan := &DeductionPlan{
		Deductions:    make([]BatchDeduction, 0, len(sorted)),
		TotalDeducted: decimal.Zero,
	}

	remaining := quantity
	for i := range sorted {
		if remaining.IsZero() {
			break
		}
		batch := &sorted[i]
		if !batch.HasStock() {
			continue
		}

		take := decimal.Min(remaining, batch.QuantityRemaining)
		plan.Deductions = append(plan.Deductions, BatchDeduction{
			BatchID:   batch.ID,
			ProductID: productID,
			BatchCode: batch.BatchCode,
			Deducted:  take,
			UnitCost:  batch.UnitCost,
		})
		plan.TotalDeducted = plan.TotalDeducted.Add(take)
		remaining = remaining.Sub(take)
	}

	plan.Shortfall = remaining
	return plan, nil
}

// TotalRemaining sums the remaining quantity across batches
func TotalRemaining(batches []Batch) decimal.Decimal {
	total := decimal.Zero
	for i := range batches {
		total = total.Add(batches[i].QuantityRemaining)
	}
	return total
}
