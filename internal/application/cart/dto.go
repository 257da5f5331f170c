package cart

import (
	"time"

	"github.com/ecoharvest/backend/internal/domain/cart"
	"github.com/ecoharvest/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddItemRequest is the input for adding a product to the cart
type AddItemRequest struct {
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// UpdateItemRequest is the input for changing a cart line quantity
type UpdateItemRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// CartItemResponse is one cart line with product display info
type CartItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Unit        string          `json:"unit,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Quantity    decimal.Decimal `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CartResponse is a user's whole cart
type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

// ToCartItemResponse converts a cart item and its product to a response.
// A nil product (deleted since it was carted) leaves the display fields empty.
func ToCartItemResponse(item *cart.CartItem, product *catalog.Product) CartItemResponse {
	resp := CartItemResponse{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt,
	}
	if product != nil {
		resp.ProductName = product.Name
		resp.Unit = product.Unit
		resp.Price = product.Price
		resp.LineTotal = product.Price.Mul(item.Quantity)
	}
	return resp
}
