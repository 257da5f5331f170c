package persistence

import (
	"context"

	apporder "github.com/ecoharvest/backend/internal/application/order"
	"github.com/ecoharvest/backend/internal/domain/cart"
	"github.com/ecoharvest/backend/internal/domain/order"
	"gorm.io/gorm"
)

// GormSettlementTransactionScope implements the order TransactionScope using
// GORM transactions. Order, payment and cart writes share one transaction;
// stock writes happen on the stock service's own connection and are not
// covered here.
type GormSettlementTransactionScope struct {
	db *gorm.DB
}

// NewGormSettlementTransactionScope creates a new GormSettlementTransactionScope
func NewGormSettlementTransactionScope(db *gorm.DB) *GormSettlementTransactionScope {
	return &GormSettlementTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormSettlementTransactionScope) Execute(ctx context.Context, fn func(repos apporder.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormSettlementRepositories{tx: tx})
	})
}

type gormSettlementRepositories struct {
	tx *gorm.DB
}

// OrderRepo returns the order repository scoped to the current transaction
func (r *gormSettlementRepositories) OrderRepo() order.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// PaymentRepo returns the payment repository scoped to the current transaction
func (r *gormSettlementRepositories) PaymentRepo() order.PaymentDetailRepository {
	return NewGormPaymentDetailRepository(r.tx)
}

// CartRepo returns the cart repository scoped to the current transaction
func (r *gormSettlementRepositories) CartRepo() cart.CartItemRepository {
	return NewGormCartItemRepository(r.tx)
}

var (
	_ apporder.TransactionScope          = (*GormSettlementTransactionScope)(nil)
	_ apporder.TransactionalRepositories = (*gormSettlementRepositories)(nil)
)
