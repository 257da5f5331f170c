package order

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

// StockService is the settlement flow's view of the batch inventory
// service. Deduction and restoration run on the stock service's own
// connection, independent of the settlement transaction.
type StockService interface {
	DeductStock(ctx context.Context, productID uuid.UUID, quantity decimal.Decimal) ([]inventory.BatchDeduction, error)
	RestoreDeductions(ctx context.Context, deductions []inventory.BatchDeduction) error
	RestoreStock(ctx context.Context, orderID uuid.UUID) ([]inventory.StockRestoration, error)
}

// SettlementService creates orders as an all-or-nothing unit spanning the
// order, order item, payment and cart tables, with explicit compensation
// for stock deduction, and handles the two status transitions that carry
// inventory side effects.
type SettlementService struct {
	scope    TransactionScope
	stock    StockService
	orders   order.OrderRepository
	payments order.PaymentDetailRepository
	products catalog.ProductRepository
	logger   *zap.Logger
}

// NewSettlementService creates a new SettlementService
func NewSettlementService(
	scope TransactionScope,
	stock StockService,
	orders order.OrderRepository,
	payments order.PaymentDetailRepository,
	products catalog.ProductRepository,
	logger *zap.Logger,
) *SettlementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettlementService{
		scope:    scope,
		stock:    stock,
		orders:   orders,
		payments: payments,
		products: products,
		logger:   logger,
	}
}

// PlaceOrder runs the checkout settlement:
//
//  1. validate the request
//  2. insert the order row (pending) and its items, snapshotting prices
//  3. deduct stock per line item through the stock service
//  4. insert the payment row (unpaid, default COD)
//  5. delete the purchased cart items
//
// Order, payment and cart writes share one transaction. Stock writes do
// not: if anything fails after deduction started, the transaction rolls
// back and the deductions already applied are re-added best-effort before
// the error propagates.
func (s *SettlementService) PlaceOrder(ctx context.Context, userID uuid.UUID, req PlaceOrderRequest) (*PlaceOrderResponse, error) {
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order must contain at least one item")
	}

	o, err := order.NewOrder(userID, req.DeliveryAddress)
	if err != nil {
		return nil, err
	}
	if req.Note != "" {
		o.SetNote(req.Note)
	}

	for _, item := range req.Items {
		product, err := s.products.FindByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if _, err := o.AddItem(product.ID, product.Name, item.Quantity, item.Price); err != nil {
			return nil, err
		}
	}

	payment, err := order.NewPaymentDetail(o.ID, o.Total, order.PaymentMethod(req.PaymentMethod))
	if err != nil {
		return nil, err
	}

	cartIDs := purchasedCartIDs(req.Items)

	var (
		stockDeducted bool
		applied       []inventory.BatchDeduction
	)

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.OrderRepo().Save(ctx, o); err != nil {
			return err
		}

		for i := range o.Items {
			item := &o.Items[i]
			stockDeducted = true
			deductions, err := s.stock.DeductStock(ctx, *item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			applied = append(applied, deductions...)
		}

		if err := repos.PaymentRepo().Save(ctx, payment); err != nil {
			return err
		}

		if len(cartIDs) > 0 {
			if err := repos.CartRepo().DeleteByIDs(ctx, userID, cartIDs); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if stockDeducted && len(applied) > 0 {
			if rerr := s.stock.RestoreDeductions(ctx, applied); rerr != nil {
				s.logger.Error("stock compensation failed after settlement rollback",
					zap.String("order_id", o.ID.String()),
					zap.Error(rerr))
			}
		}
		return nil, err
	}

	s.logger.Info("order placed",
		zap.String("order_id", o.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("total", o.Total.String()),
		zap.Int("items", len(o.Items)))

	return &PlaceOrderResponse{
		Order:   ToOrderResponse(o),
		Payment: ToPaymentResponse(payment),
	}, nil
}

// Cancel cancels a customer's own pending order and restores its stock
func (s *SettlementService) Cancel(ctx context.Context, orderID, userID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, shared.ErrForbidden
	}
	if !o.CanBeCancelledBy(userID) {
		return nil, shared.NewDomainError("INVALID_STATE", "Only pending orders can be cancelled")
	}

	return s.transition(ctx, o, order.OrderStatusCancelled)
}

// UpdateStatus applies an admin status transition with its side effects
func (s *SettlementService) UpdateStatus(ctx context.Context, orderID uuid.UUID, target order.OrderStatus) (*OrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, o, target)
}

// transition persists the status change, then runs the inventory side
// effect. The status change is already committed when the side effect runs;
// side-effect errors propagate without rolling it back.
func (s *SettlementService) transition(ctx context.Context, o *order.Order, target order.OrderStatus) (*OrderResponse, error) {
	if err := o.TransitionTo(target); err != nil {
		return nil, err
	}
	if err := s.orders.UpdateStatus(ctx, o.ID, target); err != nil {
		return nil, err
	}

	switch target {
	case order.OrderStatusCancelled:
		if _, err := s.stock.RestoreStock(ctx, o.ID); err != nil {
			s.logger.Error("stock restoration failed after cancellation",
				zap.String("order_id", o.ID.String()),
				zap.Error(err))
			return nil, err
		}
	case order.OrderStatusCompleted:
		for i := range o.Items {
			item := &o.Items[i]
			if item.ProductID == nil {
				continue
			}
			if err := s.products.IncrementSold(ctx, *item.ProductID, item.Quantity); err != nil {
				s.logger.Error("sold counter update failed after completion",
					zap.String("order_id", o.ID.String()),
					zap.String("product_id", item.ProductID.String()),
					zap.Error(err))
				return nil, err
			}
		}
	}

	s.logger.Info("order status updated",
		zap.String("order_id", o.ID.String()),
		zap.String("status", target.String()))

	resp := ToOrderResponse(o)
	return &resp, nil
}

// GetByID retrieves an order with its payment record
func (s *SettlementService) GetByID(ctx context.Context, orderID uuid.UUID) (*PlaceOrderResponse, error) {
	o, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	payment, err := s.payments.FindByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return &PlaceOrderResponse{
		Order:   ToOrderResponse(o),
		Payment: ToPaymentResponse(payment),
	}, nil
}

// GetByIDForUser retrieves an order, rejecting access by other customers
func (s *SettlementService) GetByIDForUser(ctx context.Context, orderID, userID uuid.UUID) (*PlaceOrderResponse, error) {
	resp, err := s.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if resp.Order.UserID != userID {
		return nil, shared.ErrForbidden
	}
	return resp, nil
}

// ListByUser retrieves a customer's orders with pagination
func (s *SettlementService) ListByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]OrderResponse, int64, error) {
	normalizeFilter(&filter)

	orders, err := s.orders.FindByUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orders.CountByUser(ctx, userID, filter)
	if err != nil {
		return nil, 0, err
	}
	return toOrderResponses(orders), total, nil
}

// List retrieves all orders with pagination (admin)
func (s *SettlementService) List(ctx context.Context, filter shared.Filter) ([]OrderResponse, int64, error) {
	normalizeFilter(&filter)

	orders, err := s.orders.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orders.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return toOrderResponses(orders), total, nil
}

// purchasedCartIDs keeps only the well-formed cart item ids from the
// request, best effort
func purchasedCartIDs(items []PlaceOrderItemRequest) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		if item.CartItemID != nil && *item.CartItemID != uuid.Nil {
			ids = append(ids, *item.CartItemID)
		}
	}
	return ids
}

func toOrderResponses(orders []order.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}

func normalizeFilter(filter *shared.Filter) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
}
