package inventory

import (
	"time"

	"github.com/ecoharvest/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateImportReceiptRequest is the input for posting an import receipt
type CreateImportReceiptRequest struct {
	ReceiptNumber string                     `json:"receipt_number"`
	Supplier      string                     `json:"supplier"`
	ImportDate    time.Time                  `json:"import_date"`
	Note          string                     `json:"note"`
	Lines         []ImportReceiptLineRequest `json:"lines"`
}

// ImportReceiptLineRequest is one product line on a receipt request
type ImportReceiptLineRequest struct {
	ProductID uuid.UUID       `json:"product_id"`
	BatchCode string          `json:"batch_code"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// ImportReceiptResponse is the output representation of a receipt
type ImportReceiptResponse struct {
	ID            uuid.UUID                   `json:"id"`
	ReceiptNumber string                      `json:"receipt_number"`
	Supplier      string                      `json:"supplier"`
	ImportDate    time.Time                   `json:"import_date"`
	Note          string                      `json:"note,omitempty"`
	TotalCost     decimal.Decimal             `json:"total_cost"`
	Lines         []ImportReceiptLineResponse `json:"lines"`
	CreatedAt     time.Time                   `json:"created_at"`
}

// ImportReceiptLineResponse is one line of a receipt response
type ImportReceiptLineResponse struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	BatchCode string          `json:"batch_code,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// ToImportReceiptResponse converts a domain receipt to its response
func ToImportReceiptResponse(r *inventory.ImportReceipt) ImportReceiptResponse {
	lines := make([]ImportReceiptLineResponse, len(r.Lines))
	for i, line := range r.Lines {
		lines[i] = ImportReceiptLineResponse{
			ID:        line.ID,
			ProductID: line.ProductID,
			BatchCode: line.BatchCode,
			Quantity:  line.Quantity,
			UnitCost:  line.UnitCost,
		}
	}
	return ImportReceiptResponse{
		ID:            r.ID,
		ReceiptNumber: r.ReceiptNumber,
		Supplier:      r.Supplier,
		ImportDate:    r.ImportDate,
		Note:          r.Note,
		TotalCost:     r.TotalCost(),
		Lines:         lines,
		CreatedAt:     r.CreatedAt,
	}
}

// BatchResponse is the output representation of a stock batch
type BatchResponse struct {
	ID                uuid.UUID       `json:"id"`
	ProductID         uuid.UUID       `json:"product_id"`
	BatchCode         string          `json:"batch_code,omitempty"`
	ImportDate        time.Time       `json:"import_date"`
	QuantityImported  decimal.Decimal `json:"quantity_imported"`
	QuantityRemaining decimal.Decimal `json:"quantity_remaining"`
	UnitCost          decimal.Decimal `json:"unit_cost"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToBatchResponse converts a domain batch to its response
func ToBatchResponse(b *inventory.Batch) BatchResponse {
	return BatchResponse{
		ID:                b.ID,
		ProductID:         b.ProductID,
		BatchCode:         b.BatchCode,
		ImportDate:        b.ImportDate,
		QuantityImported:  b.QuantityImported,
		QuantityRemaining: b.QuantityRemaining,
		UnitCost:          b.UnitCost,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

// DeductionResponse is one per-batch deduction record
type DeductionResponse struct {
	BatchID   uuid.UUID       `json:"batch_id"`
	BatchCode string          `json:"batch_code,omitempty"`
	Deducted  decimal.Decimal `json:"deducted"`
}

// ToDeductionResponses converts deduction records to responses
func ToDeductionResponses(deductions []inventory.BatchDeduction) []DeductionResponse {
	responses := make([]DeductionResponse, len(deductions))
	for i, d := range deductions {
		responses[i] = DeductionResponse{
			BatchID:   d.BatchID,
			BatchCode: d.BatchCode,
			Deducted:  d.Deducted,
		}
	}
	return responses
}

// RestorationResponse is one per-product restoration record
type RestorationResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	BatchID   uuid.UUID       `json:"batch_id"`
	Restored  decimal.Decimal `json:"restored"`
}

// ToRestorationResponses converts restoration records to responses
func ToRestorationResponses(restorations []inventory.StockRestoration) []RestorationResponse {
	responses := make([]RestorationResponse, len(restorations))
	for i, r := range restorations {
		responses[i] = RestorationResponse{
			ProductID: r.ProductID,
			BatchID:   r.BatchID,
			Restored:  r.Restored,
		}
	}
	return responses
}
