package inventory

import (
	"context"

	"github.com/ecoharvest/backend/internal/domain/catalog"
	"github.com/ecoharvest/backend/internal/domain/inventory"
)

// TransactionScope provides transactional access to inventory repositories.
// All repository operations executed within the scope share one database
// transaction and commit or roll back together.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories an import
// receipt posting touches, all bound to the same transaction.
type TransactionalRepositories interface {
	// BatchRepo returns the batch repository scoped to the transaction
	BatchRepo() inventory.BatchRepository
	// ReceiptRepo returns the receipt repository scoped to the transaction
	ReceiptRepo() inventory.ImportReceiptRepository
	// ProductRepo returns the product repository scoped to the transaction
	ProductRepo() catalog.ProductRepository
}

// NoOpTransactionScope runs the function without a real transaction.
// Useful in tests where the repositories are mocks.
type NoOpTransactionScope struct {
	batches  inventory.BatchRepository
	receipts inventory.ImportReceiptRepository
	products catalog.ProductRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given repositories
func NewNoOpTransactionScope(
	batches inventory.BatchRepository,
	receipts inventory.ImportReceiptRepository,
	products catalog.ProductRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{batches: batches, receipts: receipts, products: products}
}

// Execute runs the function directly
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// BatchRepo returns the batch repository
func (s *NoOpTransactionScope) BatchRepo() inventory.BatchRepository { return s.batches }

// ReceiptRepo returns the receipt repository
func (s *NoOpTransactionScope) ReceiptRepo() inventory.ImportReceiptRepository { return s.receipts }

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.products }

var (
	_ TransactionScope          = (*NoOpTransactionScope)(nil)
	_ TransactionalRepositories = (*NoOpTransactionScope)(nil)
)
