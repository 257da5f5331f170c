package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/ecoharvest/backend/internal/domain/inventory"
	"github.com/ecoharvest/backend/internal/domain/shared"
	"github.com/ecoharvest/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormImportReceiptRepository implements ImportReceiptRepository using GORM
type GormImportReceiptRepository struct {
	db *gorm.DB
}

// NewGormImportReceiptRepository creates a new GormImportReceiptRepository
func NewGormImportReceiptRepository(db *gorm.DB) *GormImportReceiptRepository {
	return &GormImportReceiptRepository{db: db}
}

// FindByID finds a receipt with its lines
func (r *GormImportReceiptRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.ImportReceipt, error) {
	var model models.ImportReceiptModel
	if err := r.db.WithContext(ctx).
		Preload("Lines").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds receipts matching the filter, with their lines
func (r *GormImportReceiptRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.ImportReceipt, error) {
	var list []models.ImportReceiptModel
	query := r.db.WithContext(ctx).Model(&models.ImportReceiptModel{}).Preload("Lines")
	query = r.applyFilter(query, filter)
	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}

	receipts := make([]inventory.ImportReceipt, len(list))
	for i := range list {
		receipts[i] = *list[i].ToDomain()
	}
	return receipts, nil
}

// Save creates or updates a receipt with its lines
func (r *GormImportReceiptRepository) Save(ctx context.Context, receipt *inventory.ImportReceipt) error {
	model := models.ImportReceiptModelFromDomain(receipt)
	return r.db.WithContext(ctx).Save(model).Error
}

// Count counts receipts matching the filter
func (r *GormImportReceiptRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ImportReceiptModel{})
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("receipt_number ILIKE ? OR supplier ILIKE ?", searchPattern, searchPattern)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormImportReceiptRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("receipt_number ILIKE ? OR supplier ILIKE ?", searchPattern, searchPattern)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("import_date DESC")
	}

	return query
}

// Ensure GormImportReceiptRepository implements ImportReceiptRepository
var _ inventory.ImportReceiptRepository = (*GormImportReceiptRepository)(nil)
