package order

import (
	"strings"
	"time"

	"github.com/ecoharvest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of a customer order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// IsTerminal returns true for statuses that allow no further transition
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status.
// The machine is one-way forward: cancelled and completed are terminal.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return target == OrderStatusProcessing || target == OrderStatusCancelled
	case OrderStatusProcessing:
		return target == OrderStatusShipped || target == OrderStatusCancelled
	case OrderStatusShipped:
		return target == OrderStatusCompleted
	case OrderStatusCompleted, OrderStatusCancelled:
		return false
	}
	return false
}

// Order is the aggregate root for a customer order
type Order struct {
	shared.BaseEntity
	UserID          uuid.UUID
	Status          OrderStatus
	Total           decimal.Decimal
	DeliveryAddress string
	Note            string
	Items           []OrderItem
}

// OrderItem is one purchased line, immutable once created. ProductID is a
// weak reference: the product may be deleted after the order is placed.
type OrderItem struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	ProductID   *uuid.UUID
	ProductName string          // snapshot at order time
	Quantity    decimal.Decimal
	Price       decimal.Decimal // snapshot at order time
	CreatedAt   time.Time
}

// Amount returns the line amount (quantity * snapshot price)
func (i *OrderItem) Amount() decimal.Decimal {
	return i.Quantity.Mul(i.Price)
}

// NewOrder creates a new order in pending status
func NewOrder(userID uuid.UUID, deliveryAddress string) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "User ID cannot be empty")
	}
	if strings.TrimSpace(deliveryAddress) == "" {
		return nil, shared.NewDomainError("INVALID_ADDRESS", "Delivery address cannot be empty")
	}

	return &Order{
		BaseEntity:      shared.NewBaseEntity(),
		UserID:          userID,
		Status:          OrderStatusPending,
		Total:           decimal.Zero,
		DeliveryAddress: deliveryAddress,
		Items:           make([]OrderItem, 0),
	}, nil
}

// AddItem appends a purchased line, snapshotting name, price and quantity
func (o *Order) AddItem(productID uuid.UUID, productName string, quantity, price decimal.Decimal) (*OrderItem, error) {
	if o.Status != OrderStatusPending {
		return nil, shared.ErrInvalidState
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	pid := productID
	item := OrderItem{
		ID:          uuid.New(),
		OrderID:     o.ID,
		ProductID:   &pid,
		ProductName: productName,
		Quantity:    quantity,
		Price:       price,
		CreatedAt:   time.Now(),
	}
	o.Items = append(o.Items, item)
	o.Total = o.Total.Add(item.Amount())
	o.UpdatedAt = time.Now()

	return &o.Items[len(o.Items)-1], nil
}

// TransitionTo moves the order to the target status, enforcing the state
// machine. Inventory side effects (restore on cancel, sold counters on
// complete) are the settlement service's responsibility.
func (o *Order) TransitionTo(target OrderStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Unknown order status: "+target.String())
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot transition order from "+o.Status.String()+" to "+target.String())
	}

	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// CanBeCancelledBy reports whether the given user may cancel this order.
// Customers may cancel their own pending orders only.
func (o *Order) CanBeCancelledBy(userID uuid.UUID) bool {
	return o.UserID == userID && o.Status == OrderStatusPending
}

// SetNote sets a free-form note on the order
func (o *Order) SetNote(note string) {
	o.Note = note
	o.UpdatedAt = time.Now()
}
