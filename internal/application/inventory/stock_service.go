package inventory

import (
	"context"

	"github.com/ecoharvest/backend/internal/domain/catalog"
	"github.com/ecoharvest/backend/internal/domain/inventory"
	"github.com/ecoharvest/backend/internal/domain/order"
	"github.com/ecoharvest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductCacheInvalidator drops cached product reads after a stock mutation.
// The Redis cache implements it; a nil invalidator is a no-op.
type ProductCacheInvalidator interface {
	InvalidateProduct(ctx context.Context, productID uuid.UUID)
}

// StockService is the sole owner of stock-quantity truth. Every mutation of
// batch stock goes through it so the denormalized Product.Quantity stays
// consistent with the sum of batch remainders.
type StockService struct {
	batches  inventory.BatchRepository
	products catalog.ProductRepository
	orders   order.OrderRepository
	cache    ProductCacheInvalidator
	logger   *zap.Logger
}

// NewStockService creates a new StockService
func NewStockService(
	batches inventory.BatchRepository,
	products catalog.ProductRepository,
	orders order.OrderRepository,
	logger *zap.Logger,
) *StockService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StockService{
		batches:  batches,
		products: products,
		orders:   orders,
		logger:   logger,
	}
}

// SetCacheInvalidator wires the product cache invalidator
func (s *StockService) SetCacheInvalidator(cache ProductCacheInvalidator) {
	s.cache = cache
}

// TotalStock returns the sum of remaining quantity across all batches for
// the product, zero if it has none. Pure read, no side effects.
func (s *StockService) TotalStock(ctx context.Context, productID uuid.UUID) (decimal.Decimal, error) {
	batches, err := s.batches.FindByProduct(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	return inventory.TotalRemaining(batches), nil
}

// ListBatches returns the product's batches in FIFO consumption order.
func (s *StockService) ListBatches(ctx context.Context, productID uuid.UUID) ([]inventory.Batch, error) {
	return s.batches.FindByProduct(ctx, productID)
}

// SyncProductQuantity recomputes the batch sum and writes it to the
// denormalized Product.Quantity. Idempotent; called after every mutation.
func (s *StockService) SyncProductQuantity(ctx context.Context, productID uuid.UUID) error {
	total, err := s.TotalStock(ctx, productID)
	if err != nil {
		return err
	}
	if err := s.products.UpdateQuantity(ctx, productID, total); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.InvalidateProduct(ctx, productID)
	}
	return nil
}

// AdjustBatchQuantity applies a signed delta to one batch's remaining
// quantity, clamped at a floor of zero, then resyncs the product total.
func (s *StockService) AdjustBatchQuantity(ctx context.Context, batchID uuid.UUID, delta decimal.Decimal) (*inventory.Batch, error) {
	batch, err := s.batches.FindByID(ctx, batchID)
	if err != nil {
		return nil, err
	}

	batch.Adjust(delta)
	if err := s.batches.Save(ctx, batch); err != nil {
		return nil, err
	}
	if err := s.SyncProductQuantity(ctx, batch.ProductID); err != nil {
		return nil, err
	}

	s.logger.Info("batch quantity adjusted",
		zap.String("batch_id", batchID.String()),
		zap.String("product_id", batch.ProductID.String()),
		zap.String("delta", delta.String()),
		zap.String("remaining", batch.QuantityRemaining.String()))

	return batch, nil
}

// DeductStock removes quantity from the product's batches, oldest import
// date first. The FIFO walk is planned over the loaded batches before any
// write, so an insufficient request fails with the shortfall amount and
// leaves no partial deduction behind. Returns the per-batch deductions for
// the audit trail and for settlement compensation.
func (s *StockService) DeductStock(ctx context.Context, productID uuid.UUID, quantity decimal.Decimal) ([]inventory.BatchDeduction, error) {
	batches, err := s.batches.FindByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	plan, err := inventory.PlanFIFODeduction(productID, quantity, batches)
	if err != nil {
		return nil, err
	}
	if !plan.Fulfilled() {
		return nil, inventory.NewInsufficientStockError(productID, quantity, plan.Shortfall)
	}

	byID := make(map[uuid.UUID]*inventory.Batch, len(batches))
	for i := range batches {
		byID[batches[i].ID] = &batches[i]
	}

	updated := make([]inventory.Batch, 0, len(plan.Deductions))
	for _, d := range plan.Deductions {
		batch, ok := byID[d.BatchID]
		if !ok {
			return nil, shared.ErrNotFound
		}
		if applied := batch.Deduct(d.Deducted); !applied.Equal(d.Deducted) {
			return nil, shared.NewDomainError("DEDUCTION_MISMATCH", "Batch deduction amount mismatch")
		}
		updated = append(updated, *batch)
	}

	if err := s.batches.SaveAll(ctx, updated); err != nil {
		return nil, err
	}
	if err := s.SyncProductQuantity(ctx, productID); err != nil {
		return nil, err
	}

	s.logger.Info("stock deducted",
		zap.String("product_id", productID.String()),
		zap.String("quantity", quantity.String()),
		zap.Int("batches_touched", len(plan.Deductions)))

	return plan.Deductions, nil
}

// RestoreStock re-adds the full quantity of every order item into the most
// recent batch of its product, used on order cancellation. Products that no
// longer have batches are skipped silently. Restoration is deliberately
// asymmetric with deduction: the whole amount lands in one batch, newest
// import date first.
func (s *StockService) RestoreStock(ctx context.Context, orderID uuid.UUID) ([]inventory.StockRestoration, error) {
	items, err := s.orders.FindItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, shared.ErrEmptyOrder
	}

	restorations := make([]inventory.StockRestoration, 0, len(items))
	touched := make(map[uuid.UUID]struct{})

	for i := range items {
		item := &items[i]
		if item.ProductID == nil || item.Quantity.LessThanOrEqual(decimal.Zero) {
			continue
		}
		productID := *item.ProductID

		batches, err := s.batches.FindByProductNewestFirst(ctx, productID)
		if err != nil {
			return nil, err
		}
		if len(batches) == 0 {
			s.logger.Warn("no batches to restore into, skipping product",
				zap.String("order_id", orderID.String()),
				zap.String("product_id", productID.String()))
			continue
		}

		newest := &batches[0]
		newest.Restore(item.Quantity)
		if err := s.batches.Save(ctx, newest); err != nil {
			return nil, err
		}

		restorations = append(restorations, inventory.StockRestoration{
			ProductID: productID,
			BatchID:   newest.ID,
			Restored:  item.Quantity,
		})
		touched[productID] = struct{}{}
	}

	for productID := range touched {
		if err := s.SyncProductQuantity(ctx, productID); err != nil {
			return nil, err
		}
	}

	s.logger.Info("stock restored for cancelled order",
		zap.String("order_id", orderID.String()),
		zap.Int("products_restored", len(restorations)))

	return restorations, nil
}

// RestoreDeductions re-adds exactly the amounts previously deducted, per
// batch. It is the compensation primitive for a failed settlement: only the
// deductions actually applied are reversed, so compensation never
// over-restores. If a deducted batch has vanished the amount falls back to
// the product's most recent batch.
func (s *StockService) RestoreDeductions(ctx context.Context, deductions []inventory.BatchDeduction) error {
	touched := make(map[uuid.UUID]struct{})

	for _, d := range deductions {
		batch, err := s.batches.FindByID(ctx, d.BatchID)
		if err != nil {
			if err != shared.ErrNotFound {
				return err
			}
			batches, ferr := s.batches.FindByProductNewestFirst(ctx, d.ProductID)
			if ferr != nil {
				return ferr
			}
			if len(batches) == 0 {
				s.logger.Warn("deducted batch vanished and product has no batches, compensation skipped",
					zap.String("batch_id", d.BatchID.String()),
					zap.String("product_id", d.ProductID.String()))
				continue
			}
			batch = &batches[0]
		}

		batch.Restore(d.Deducted)
		if err := s.batches.Save(ctx, batch); err != nil {
			return err
		}
		touched[d.ProductID] = struct{}{}
	}

	for productID := range touched {
		if err := s.SyncProductQuantity(ctx, productID); err != nil {
			return err
		}
	}

	return nil
}
