package models

import (
	"github.com/ecoharvest/backend/internal/domain/cart"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItemModel is the persistence model for the CartItem entity.
type CartItemModel struct {
	BaseModel
	UserID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product,priority:1"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_product,priority:2"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
}

// TableName returns the table name for GORM
func (CartItemModel) TableName() string {
	return "cart_items"
}

// ToDomain converts the persistence model to a domain CartItem entity.
func (m *CartItemModel) ToDomain() *cart.CartItem {
	return &cart.CartItem{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		ProductID:  m.ProductID,
		Quantity:   m.Quantity,
	}
}

// FromDomain populates the persistence model from a domain CartItem entity.
func (m *CartItemModel) FromDomain(c *cart.CartItem) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.UserID = c.UserID
	m.ProductID = c.ProductID
	m.Quantity = c.Quantity
}

// CartItemModelFromDomain creates a new persistence model from a domain CartItem.
func CartItemModelFromDomain(c *cart.CartItem) *CartItemModel {
	m := &CartItemModel{}
	m.FromDomain(c)
	return m
}
