package models

import (
	"time"

	"github.com/ecoharvest/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BatchModel is the persistence model for the Batch domain entity.
type BatchModel struct {
	BaseModel
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;index:idx_batches_product_import,priority:1"`
	BatchCode         string          `gorm:"type:varchar(50)"`
	ImportDate        time.Time       `gorm:"not null;index:idx_batches_product_import,priority:2"`
	QuantityImported  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	QuantityRemaining decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost          decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (BatchModel) TableName() string {
	return "batches"
}

// ToDomain converts the persistence model to a domain Batch entity.
func (m *BatchModel) ToDomain() *inventory.Batch {
	return &inventory.Batch{
		BaseEntity:        m.BaseModel.ToDomain(),
		ProductID:         m.ProductID,
		BatchCode:         m.BatchCode,
		ImportDate:        m.ImportDate,
		QuantityImported:  m.QuantityImported,
		QuantityRemaining: m.QuantityRemaining,
		UnitCost:          m.UnitCost,
	}
}

// FromDomain populates the persistence model from a domain Batch entity.
func (m *BatchModel) FromDomain(b *inventory.Batch) {
	m.FromDomainBaseEntity(b.BaseEntity)
	m.ProductID = b.ProductID
	m.BatchCode = b.BatchCode
	m.ImportDate = b.ImportDate
	m.QuantityImported = b.QuantityImported
	m.QuantityRemaining = b.QuantityRemaining
	m.UnitCost = b.UnitCost
}

// BatchModelFromDomain creates a new persistence model from a domain Batch entity.
func BatchModelFromDomain(b *inventory.Batch) *BatchModel {
	m := &BatchModel{}
	m.FromDomain(b)
	return m
}

// ImportReceiptModel is the persistence model for the ImportReceipt aggregate.
type ImportReceiptModel struct {
	BaseModel
	ReceiptNumber string                   `gorm:"type:varchar(50);not null;uniqueIndex"`
	Supplier      string                   `gorm:"type:varchar(200)"`
	ImportDate    time.Time                `gorm:"not null"`
	Note          string                   `gorm:"type:text"`
	Lines         []ImportReceiptLineModel `gorm:"foreignKey:ReceiptID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (ImportReceiptModel) TableName() string {
	return "import_receipts"
}

// ImportReceiptLineModel is the persistence model for one receipt line.
type ImportReceiptLineModel struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key"`
	ReceiptID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index"`
	BatchCode string          `gorm:"type:varchar(50)"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (ImportReceiptLineModel) TableName() string {
	return "import_receipt_lines"
}

// ToDomain converts the persistence model to a domain ImportReceipt entity.
func (m *ImportReceiptModel) ToDomain() *inventory.ImportReceipt {
	lines := make([]inventory.ImportReceiptLine, len(m.Lines))
	for i, l := range m.Lines {
		lines[i] = inventory.ImportReceiptLine{
			ID:        l.ID,
			ReceiptID: l.ReceiptID,
			ProductID: l.ProductID,
			BatchCode: l.BatchCode,
			Quantity:  l.Quantity,
			UnitCost:  l.UnitCost,
		}
	}
	return &inventory.ImportReceipt{
		BaseEntity:    m.BaseModel.ToDomain(),
		ReceiptNumber: m.ReceiptNumber,
		Supplier:      m.Supplier,
		ImportDate:    m.ImportDate,
		Note:          m.Note,
		Lines:         lines,
	}
}

// FromDomain populates the persistence model from a domain ImportReceipt entity.
func (m *ImportReceiptModel) FromDomain(r *inventory.ImportReceipt) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.ReceiptNumber = r.ReceiptNumber
	m.Supplier = r.Supplier
	m.ImportDate = r.ImportDate
	m.Note = r.Note
	m.Lines = make([]ImportReceiptLineModel, len(r.Lines))
	for i, l := range r.Lines {
		m.Lines[i] = ImportReceiptLineModel{
			ID:        l.ID,
			ReceiptID: l.ReceiptID,
			ProductID: l.ProductID,
			BatchCode: l.BatchCode,
			Quantity:  l.Quantity,
			UnitCost:  l.UnitCost,
		}
	}
}

// ImportReceiptModelFromDomain creates a new persistence model from a domain ImportReceipt.
func ImportReceiptModelFromDomain(r *inventory.ImportReceipt) *ImportReceiptModel {
	m := &ImportReceiptModel{}
	m.FromDomain(r)
	return m
}
