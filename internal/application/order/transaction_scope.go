package order

import (
	"context"

	"github.com/ecoharvest/backend/internal/domain/cart"
	"github.com/ecoharvest/backend/internal/domain/order"
)

// TransactionScope provides transactional access to the repositories order
// settlement writes. Order, payment and cart writes inside the scope commit
// or roll back together. Stock writes are NOT part of the scope: the stock
// service runs on its own connection and is reversed by explicit
// compensation when the settlement fails.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the settlement repositories,
// all bound to the same transaction.
type TransactionalRepositories interface {
	// OrderRepo returns the order repository scoped to the transaction
	OrderRepo() order.OrderRepository
	// PaymentRepo returns the payment repository scoped to the transaction
	PaymentRepo() order.PaymentDetailRepository
	// CartRepo returns the cart repository scoped to the transaction
	CartRepo() cart.CartItemRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests where the repositories are mocks.
type NoOpTransactionScope struct {
	orders   order.OrderRepository
	payments order.PaymentDetailRepository
	carts    cart.CartItemRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	orders order.OrderRepository,
	payments order.PaymentDetailRepository,
	carts cart.CartItemRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{orders: orders, payments: payments, carts: carts}
}

// Execute runs the function directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// OrderRepo returns the order repository
func (s *NoOpTransactionScope) OrderRepo() order.OrderRepository { return s.orders }

// PaymentRepo returns the payment repository
func (s *NoOpTransactionScope) PaymentRepo() order.PaymentDetailRepository { return s.payments }

// CartRepo returns the cart repository
func (s *NoOpTransactionScope) CartRepo() cart.CartItemRepository { return s.carts }

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
