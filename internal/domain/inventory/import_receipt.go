package inventory

import (
	"strings"
	"time"

	"github.com/ecoharvest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ImportReceipt records one delivery of stock from a supplier. Posting a
// receipt creates one batch per line; the receipt itself is the immutable
// paper trail.
type ImportReceipt struct {
	shared.BaseEntity
	ReceiptNumber string
	Supplier      string
	ImportDate    time.Time
	Note          string
	Lines         []ImportReceiptLine
}

// ImportReceiptLine is one product line on an import receipt
type ImportReceiptLine struct {
	ID        uuid.UUID
	ReceiptID uuid.UUID
	ProductID uuid.UUID
	BatchCode string
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
}

// NewImportReceipt creates a new import receipt
func NewImportReceipt(receiptNumber, supplier string, importDate time.Time) (*ImportReceipt, error) {
	if strings.TrimSpace(receiptNumber) == "" {
		return nil, shared.NewDomainError("INVALID_RECEIPT_NUMBER", "Receipt number cannot be empty")
	}
	if importDate.IsZero() {
		importDate = time.Now()
	}

	return &ImportReceipt{
		BaseEntity:    shared.NewBaseEntity(),
		ReceiptNumber: receiptNumber,
		Supplier:      supplier,
		ImportDate:    importDate,
		Lines:         make([]ImportReceiptLine, 0),
	}, nil
}

// AddLine appends a product line to the receipt
func (r *ImportReceipt) AddLine(productID uuid.UUID, batchCode string, quantity, unitCost decimal.Decimal) (*ImportReceiptLine, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Line quantity must be positive")
	}
	if unitCost.IsNegative() {
		return nil, shared.NewDomainError("INVALID_COST", "Unit cost cannot be negative")
	}

	line := ImportReceiptLine{
		ID:        uuid.New(),
		ReceiptID: r.ID,
		ProductID: productID,
		BatchCode: batchCode,
		Quantity:  quantity,
		UnitCost:  unitCost,
	}
	r.Lines = append(r.Lines, line)
	r.UpdatedAt = time.Now()

	return &r.Lines[len(r.Lines)-1], nil
}

// SetNote sets a free-form note on the receipt
func (r *ImportReceipt) SetNote(note string) {
	r.Note = note
	r.UpdatedAt = time.Now()
}

// TotalCost returns the total cost of all receipt lines
func (r *ImportReceipt) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for i := range r.Lines {
		total = total.Add(r.Lines[i].Quantity.Mul(r.Lines[i].UnitCost))
	}
	return total
}
