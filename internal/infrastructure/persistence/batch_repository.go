package persistence

import (
	"context"
	"errors"

	"github.com/ecoharvest/backend/internal/domain/inventory"
	"github.com/ecoharvest/backend/internal/domain/shared"
	"github.com/ecoharvest/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormBatchRepository implements BatchRepository using GORM
type GormBatchRepository struct {
	db *gorm.DB
}

// NewGormBatchRepository creates a new GormBatchRepository
func NewGormBatchRepository(db *gorm.DB) *GormBatchRepository {
	return &GormBatchRepository{db: db}
}

// FindByID finds a batch by its ID
func (r *GormBatchRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Batch, error) {
	var model models.BatchModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByProduct finds all batches for a product, oldest import date first.
// Ties on import date are broken by batch ID so the scan order is stable.
func (r *GormBatchRepository) FindByProduct(ctx context.Context, productID uuid.UUID) ([]inventory.Batch, error) {
	var list []models.BatchModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("import_date ASC, id ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return toDomainBatches(list), nil
}

// FindByProductNewestFirst finds all batches for a product, newest import date first
func (r *GormBatchRepository) FindByProductNewestFirst(ctx context.Context, productID uuid.UUID) ([]inventory.Batch, error) {
	var list []models.BatchModel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("import_date DESC, id DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return toDomainBatches(list), nil
}

// Save creates or updates a batch
func (r *GormBatchRepository) Save(ctx context.Context, batch *inventory.Batch) error {
	model := models.BatchModelFromDomain(batch)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveAll creates or updates multiple batches
func (r *GormBatchRepository) SaveAll(ctx context.Context, batches []inventory.Batch) error {
	if len(batches) == 0 {
		return nil
	}
	list := make([]models.BatchModel, len(batches))
	for i := range batches {
		list[i] = *models.BatchModelFromDomain(&batches[i])
	}
	return r.db.WithContext(ctx).Save(&list).Error
}

// Delete deletes a batch
func (r *GormBatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BatchModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainBatches(list []models.BatchModel) []inventory.Batch {
	batches := make([]inventory.Batch, len(list))
	for i := range list {
		batches[i] = *list[i].ToDomain()
	}
	return batches
}

// Ensure GormBatchRepository implements BatchRepository
var _ inventory.BatchRepository = (*GormBatchRepository)(nil)
