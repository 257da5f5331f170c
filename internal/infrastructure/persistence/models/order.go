package models

import (
	"time"

	"github.com/ecoharvest/backend/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate.
type OrderModel struct {
	BaseModel
	UserID          uuid.UUID        `gorm:"type:uuid;not null;index"`
	Status          string           `gorm:"type:varchar(20);not null;default:'pending';index"`
	Total           decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	DeliveryAddress string           `gorm:"type:text;not null"`
	Note            string           `gorm:"type:text"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel is the persistence model for one order line. ProductID is
// nullable so deleting a product keeps historical order lines intact.
type OrderItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   *uuid.UUID      `gorm:"type:uuid;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Price       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain OrderItem.
func (m *OrderItemModel) ToDomain() order.OrderItem {
	return order.OrderItem{
		ID:          m.ID,
		OrderID:     m.OrderID,
		ProductID:   m.ProductID,
		ProductName: m.ProductName,
		Quantity:    m.Quantity,
		Price:       m.Price,
		CreatedAt:   m.CreatedAt,
	}
}

// ToDomain converts the persistence model to a domain Order entity.
func (m *OrderModel) ToDomain() *order.Order {
	items := make([]order.OrderItem, len(m.Items))
	for i := range m.Items {
		items[i] = m.Items[i].ToDomain()
	}
	return &order.Order{
		BaseEntity:      m.BaseModel.ToDomain(),
		UserID:          m.UserID,
		Status:          order.OrderStatus(m.Status),
		Total:           m.Total,
		DeliveryAddress: m.DeliveryAddress,
		Note:            m.Note,
		Items:           items,
	}
}

// FromDomain populates the persistence model from a domain Order entity.
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.UserID = o.UserID
	m.Status = o.Status.String()
	m.Total = o.Total
	m.DeliveryAddress = o.DeliveryAddress
	m.Note = o.Note
	m.Items = make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		m.Items[i] = OrderItemModel{
			ID:          item.ID,
			OrderID:     item.OrderID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			CreatedAt:   item.CreatedAt,
		}
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// PaymentDetailModel is the persistence model for the PaymentDetail entity.
type PaymentDetailModel struct {
	BaseModel
	OrderID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Amount  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Status  string          `gorm:"type:varchar(20);not null;default:'unpaid'"`
	Method  string          `gorm:"type:varchar(20);not null;default:'cod'"`
}

// TableName returns the table name for GORM
func (PaymentDetailModel) TableName() string {
	return "payment_details"
}

// ToDomain converts the persistence model to a domain PaymentDetail entity.
func (m *PaymentDetailModel) ToDomain() *order.PaymentDetail {
	return &order.PaymentDetail{
		BaseEntity: m.BaseModel.ToDomain(),
		OrderID:    m.OrderID,
		Amount:     m.Amount,
		Status:     order.PaymentStatus(m.Status),
		Method:     order.PaymentMethod(m.Method),
	}
}

// FromDomain populates the persistence model from a domain PaymentDetail entity.
func (m *PaymentDetailModel) FromDomain(p *order.PaymentDetail) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.OrderID = p.OrderID
	m.Amount = p.Amount
	m.Status = string(p.Status)
	m.Method = string(p.Method)
}

// PaymentDetailModelFromDomain creates a new persistence model from a domain PaymentDetail.
func PaymentDetailModelFromDomain(p *order.PaymentDetail) *PaymentDetailModel {
	m := &PaymentDetailModel{}
	m.FromDomain(p)
	return m
}
