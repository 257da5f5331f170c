package inventory

import (
	"context"

	"github.com/ecoharvest/backend/internal/domain/inventory"
	"github.com/ecoharvest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReceiptService posts import receipts: one delivery from a supplier becomes
// one batch per line, and every touched product's denormalized quantity is
// resynchronized inside the same transaction.
type ReceiptService struct {
	scope    TransactionScope
	receipts inventory.ImportReceiptRepository
	cache    ProductCacheInvalidator
	logger   *zap.Logger
}

// NewReceiptService creates a new ReceiptService
func NewReceiptService(scope TransactionScope, receipts inventory.ImportReceiptRepository, logger *zap.Logger) *ReceiptService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReceiptService{
		scope:    scope,
		receipts: receipts,
		logger:   logger,
	}
}

// SetCacheInvalidator wires the product cache invalidator
func (s *ReceiptService) SetCacheInvalidator(cache ProductCacheInvalidator) {
	s.cache = cache
}

// PostReceipt stores the receipt, creates one batch per line and resyncs
// product quantities, all in one transaction.
func (s *ReceiptService) PostReceipt(ctx context.Context, req CreateImportReceiptRequest) (*ImportReceiptResponse, error) {
	if len(req.Lines) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Receipt must contain at least one line")
	}

	receipt, err := inventory.NewImportReceipt(req.ReceiptNumber, req.Supplier, req.ImportDate)
	if err != nil {
		return nil, err
	}
	if req.Note != "" {
		receipt.SetNote(req.Note)
	}

	for _, line := range req.Lines {
		if _, err := receipt.AddLine(line.ProductID, line.BatchCode, line.Quantity, line.UnitCost); err != nil {
			return nil, err
		}
	}

	touched := make(map[uuid.UUID]struct{})

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		// Every line's product must exist before any batch is created.
		for _, line := range receipt.Lines {
			if _, err := repos.ProductRepo().FindByID(ctx, line.ProductID); err != nil {
				return err
			}
		}

		if err := repos.ReceiptRepo().Save(ctx, receipt); err != nil {
			return err
		}

		for _, line := range receipt.Lines {
			batch, err := inventory.NewBatch(line.ProductID, line.BatchCode, receipt.ImportDate, line.Quantity, line.UnitCost)
			if err != nil {
				return err
			}
			if err := repos.BatchRepo().Save(ctx, batch); err != nil {
				return err
			}
			touched[line.ProductID] = struct{}{}
		}

		for productID := range touched {
			batches, err := repos.BatchRepo().FindByProduct(ctx, productID)
			if err != nil {
				return err
			}
			if err := repos.ProductRepo().UpdateQuantity(ctx, productID, inventory.TotalRemaining(batches)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		for productID := range touched {
			s.cache.InvalidateProduct(ctx, productID)
		}
	}

	s.logger.Info("import receipt posted",
		zap.String("receipt_id", receipt.ID.String()),
		zap.String("receipt_number", receipt.ReceiptNumber),
		zap.Int("lines", len(receipt.Lines)))

	resp := ToImportReceiptResponse(receipt)
	return &resp, nil
}

// GetByID retrieves a receipt with its lines
func (s *ReceiptService) GetByID(ctx context.Context, id uuid.UUID) (*ImportReceiptResponse, error) {
	receipt, err := s.receipts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToImportReceiptResponse(receipt)
	return &resp, nil
}

// List retrieves receipts with pagination
func (s *ReceiptService) List(ctx context.Context, filter shared.Filter) ([]ImportReceiptResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	receipts, err := s.receipts.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.receipts.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ImportReceiptResponse, len(receipts))
	for i := range receipts {
		responses[i] = ToImportReceiptResponse(&receipts[i])
	}
	return responses, total, nil
}
