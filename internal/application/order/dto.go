package order

import (
	"time"

	"github.com/ecoharvest/backend/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlaceOrderRequest is the checkout input supplied by the HTTP layer
type PlaceOrderRequest struct {
	Items           []PlaceOrderItemRequest `json:"items"`
	DeliveryAddress string                  `json:"delivery_address"`
	PaymentMethod   string                  `json:"payment_method"`
	Note            string                  `json:"note"`
}

// PlaceOrderItemRequest is one checkout line. CartItemID is optional: when
// present and well formed, the cart line is deleted together with order
// creation.
type PlaceOrderItemRequest struct {
	ProductID  uuid.UUID       `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	CartItemID *uuid.UUID      `json:"cart_item_id,omitempty"`
}

// OrderResponse is the output representation of an order
type OrderResponse struct {
	ID              uuid.UUID           `json:"id"`
	UserID          uuid.UUID           `json:"user_id"`
	Status          string              `json:"status"`
	Total           decimal.Decimal     `json:"total"`
	DeliveryAddress string              `json:"delivery_address"`
	Note            string              `json:"note,omitempty"`
	Items           []OrderItemResponse `json:"items"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// OrderItemResponse is one purchased line in a response
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   *uuid.UUID      `json:"product_id,omitempty"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Amount      decimal.Decimal `json:"amount"`
}

// PaymentResponse is the output representation of a payment record
type PaymentResponse struct {
	ID      uuid.UUID       `json:"id"`
	OrderID uuid.UUID       `json:"order_id"`
	Amount  decimal.Decimal `json:"amount"`
	Status  string          `json:"status"`
	Method  string          `json:"method"`
}

// PlaceOrderResponse is the settlement result returned to the client
type PlaceOrderResponse struct {
	Order   OrderResponse   `json:"order"`
	Payment PaymentResponse `json:"payment"`
}

// UpdateStatusRequest is the admin input for a status transition
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// OrderListFilter narrows order listings
type OrderListFilter struct {
	Page     int
	PageSize int
	Status   string
	UserID   *uuid.UUID
}

// ToOrderResponse converts a domain order to its response
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i := range o.Items {
		items[i] = ToOrderItemResponse(&o.Items[i])
	}
	return OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          o.Status.String(),
		Total:           o.Total,
		DeliveryAddress: o.DeliveryAddress,
		Note:            o.Note,
		Items:           items,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// ToOrderItemResponse converts a domain order item to its response
func ToOrderItemResponse(i *order.OrderItem) OrderItemResponse {
	return OrderItemResponse{
		ID:          i.ID,
		ProductID:   i.ProductID,
		ProductName: i.ProductName,
		Quantity:    i.Quantity,
		Price:       i.Price,
		Amount:      i.Amount(),
	}
}

// ToPaymentResponse converts a domain payment to its response
func ToPaymentResponse(p *order.PaymentDetail) PaymentResponse {
	return PaymentResponse{
		ID:      p.ID,
		OrderID: p.OrderID,
		Amount:  p.Amount,
		Status:  string(p.Status),
		Method:  string(p.Method),
	}
}
