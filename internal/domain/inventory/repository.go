package inventory

import (
	"context"

	"github.com/ecoharvest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BatchRepository defines the interface for stock batch persistence
type BatchRepository interface {
	// FindByID finds a batch by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Batch, error)

	// FindByProduct finds all batches for a product, oldest import date
	// first (ties broken by batch ID ascending)
	FindByProduct(ctx context.Context, productID uuid.UUID) ([]Batch, error)

	// FindByProductNewestFirst finds all batches for a product, newest
	// import date first
	FindByProductNewestFirst(ctx context.Context, productID uuid.UUID) ([]Batch, error)

	// Save creates or updates a batch
	Save(ctx context.Context, batch *Batch) error

	// SaveAll creates or updates multiple batches
	SaveAll(ctx context.Context, batches []Batch) error

	// Delete deletes a batch
	Delete(ctx context.Context, id uuid.UUID) error
}

// ImportReceiptRepository defines the interface for import receipt persistence
type ImportReceiptRepository interface {
	// FindByID finds a receipt with its lines
	FindByID(ctx context.Context, id uuid.UUID) (*ImportReceipt, error)

	// FindAll finds receipts with filtering and pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]ImportReceipt, error)

	// Save creates or updates a receipt with its lines
	Save(ctx context.Context, receipt *ImportReceipt) error

	// Count counts receipts matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
