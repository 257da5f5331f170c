package inventory

import (
	"time"

	"github.com/ecoharvest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Batch represents one receipt of stock for one product.
// QuantityImported is the immutable historical record; QuantityRemaining
// must stay within [0, QuantityImported + restorations] and is floor-clamped
// at zero on deduction.
type Batch struct {
	shared.BaseEntity
	ProductID         uuid.UUID
	BatchCode         string
	ImportDate        time.Time // FIFO ordering key
	QuantityImported  decimal.Decimal
	QuantityRemaining decimal.Decimal
	UnitCost          decimal.Decimal
}

// NewBatch creates a new stock batch from an import receipt line
func NewBatch(productID uuid.UUID, batchCode string, importDate time.Time, quantity, unitCost decimal.Decimal) (*Batch, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Imported quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}
	if importDate.IsZero() {
		importDate = time.Now()
	}

	return &Batch{
		BaseEntity:        shared.NewBaseEntity(),
		ProductID:         productID,
		BatchCode:         batchCode,
		ImportDate:        importDate,
		QuantityImported:  quantity,
		QuantityRemaining: quantity,
		UnitCost:          unitCost,
	}, nil
}

// Deduct reduces the remaining quantity, clamped at a floor of zero.
// Returns the quantity actually deducted.
func (b *Batch) Deduct(quantity decimal.Decimal) decimal.Decimal {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	deducted := decimal.Min(quantity, b.QuantityRemaining)
	b.QuantityRemaining = b.QuantityRemaining.Sub(deducted)
	b.UpdatedAt = time.Now()
	return deducted
}

// Restore adds quantity back into the batch (order cancellation, compensation)
func (b *Batch) Restore(quantity decimal.Decimal) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return
	}
	b.QuantityRemaining = b.QuantityRemaining.Add(quantity)
	b.UpdatedAt = time.Now()
}

// Adjust applies a signed delta to the remaining quantity, clamped at zero
func (b *Batch) Adjust(delta decimal.Decimal) {
	remaining := b.QuantityRemaining.Add(delta)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	b.QuantityRemaining = remaining
	b.UpdatedAt = time.Now()
}

// HasStock returns true if the batch has remaining quantity
func (b *Batch) HasStock() bool {
	return b.QuantityRemaining.GreaterThan(decimal.Zero)
}

// TotalValue returns the value of the remaining stock at the batch unit cost
func (b *Batch) TotalValue() decimal.Decimal {
	return b.QuantityRemaining.Mul(b.UnitCost)
}
