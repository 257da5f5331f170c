package order

import (
	"context"

	"github.com/ecoharvest/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByUser finds orders placed by a user
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)

	// FindAll finds orders with filtering and pagination
	FindAll(ctx context.Context, filter shared.Filter) ([]Order, error)

	// FindItems loads the items of an order
	FindItems(ctx context.Context, orderID uuid.UUID) ([]OrderItem, error)

	// Save creates or updates an order with its items
	Save(ctx context.Context, order *Order) error

	// UpdateStatus persists a status change
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status OrderStatus) error

	// Count counts orders matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByUser counts orders placed by a user
	CountByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error)
}

// PaymentDetailRepository defines the interface for payment persistence
type PaymentDetailRepository interface {
	// FindByOrder finds the payment record for an order
	FindByOrder(ctx context.Context, orderID uuid.UUID) (*PaymentDetail, error)

	// Save creates or updates a payment record
	Save(ctx context.Context, payment *PaymentDetail) error
}
