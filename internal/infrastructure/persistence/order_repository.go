package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ecoharvest/backend/internal/domain/order"
	"github.com/ecoharvest/backend/internal/domain/shared"
	"github.com/ecoharvest/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var model models.OrderModel
	if err := r.db.WithContext(ctx).
		Preload("Items").
		First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByUser finds orders placed by a user
func (r *GormOrderRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]order.Order, error) {
	var list []models.OrderModel
	query := r.db.WithContext(ctx).Model(&models.OrderModel{}).
		Preload("Items").
		Where("user_id = ?", userID)
	query = r.applyFilter(query, filter)
	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(list), nil
}

// FindAll finds orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]order.Order, error) {
	var list []models.OrderModel
	query := r.db.WithContext(ctx).Model(&models.OrderModel{}).Preload("Items")
	query = r.applyFilter(query, filter)
	if err := query.Find(&list).Error; err != nil {
		return nil, err
	}
	return toDomainOrders(list), nil
}

// FindItems loads the items of an order
func (r *GormOrderRepository) FindItems(ctx context.Context, orderID uuid.UUID) ([]order.OrderItem, error) {
	var list []models.OrderItemModel
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&list).Error; err != nil {
		return nil, err
	}

	items := make([]order.OrderItem, len(list))
	for i := range list {
		items[i] = list[i].ToDomain()
	}
	return items, nil
}

// Save creates or updates an order with its items
func (r *GormOrderRepository) Save(ctx context.Context, o *order.Order) error {
	model := models.OrderModelFromDomain(o)
	return r.db.WithContext(ctx).Save(model).Error
}

// UpdateStatus persists a status change
func (r *GormOrderRepository) UpdateStatus(ctx context.Context, orderID uuid.UUID, status order.OrderStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.OrderModel{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"status":     status.String(),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyStatusFilter(r.db.WithContext(ctx).Model(&models.OrderModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByUser counts orders placed by a user
func (r *GormOrderRepository) CountByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.OrderModel{}).Where("user_id = ?", userID)
	query = r.applyStatusFilter(query, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyStatusFilter(query, filter)

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
		query = query.Order("created_at DESC")
	}

	return query
}

func (r *GormOrderRepository) applyStatusFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "user_id":
			query = query.Where("user_id = ?", value)
		}
	}
	return query
}

func toDomainOrders(list []models.OrderModel) []order.Order {
	orders := make([]order.Order, len(list))
	for i := range list {
		orders[i] = *list[i].ToDomain()
	}
	return orders
}

// Ensure GormOrderRepository implements OrderRepository
var _ order.OrderRepository = (*GormOrderRepository)(nil)

// GormPaymentDetailRepository implements PaymentDetailRepository using GORM
type GormPaymentDetailRepository struct {
	db *gorm.DB
}

// NewGormPaymentDetailRepository creates a new GormPaymentDetailRepository
func NewGormPaymentDetailRepository(db *gorm.DB) *GormPaymentDetailRepository {
	return &GormPaymentDetailRepository{db: db}
}

// FindByOrder finds the payment record for an order
func (r *GormPaymentDetailRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) (*order.PaymentDetail, error) {
	var model models.PaymentDetailModel
	if err := r.db.WithContext(ctx).First(&model, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a payment record
func (r *GormPaymentDetailRepository) Save(ctx context.Context, payment *order.PaymentDetail) error {
	model := models.PaymentDetailModelFromDomain(payment)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormPaymentDetailRepository implements PaymentDetailRepository
var _ order.PaymentDetailRepository = (*GormPaymentDetailRepository)(nil)
