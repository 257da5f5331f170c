package order

import (
	"context"
	"errors"
	"testing"

	"github.com/ecoharvest/backend/internal/domain/catalog"
	"github.com/ecoharvest/backend/internal/domain/inventory"
	"github.com/ecoharvest/backend/internal/domain/order"
	"github.com/ecoharvest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type settlementFixture struct {
	svc      *SettlementService
	stock    *MockStockService
	orders   *MockOrderRepository
	payments *MockPaymentDetailRepository
	carts    *MockCartItemRepository
	products *MockProductRepository
}

func newSettlementFixture(t *testing.T) *settlementFixture {
	t.Helper()
	f := &settlementFixture{
		stock:    new(MockStockService),
		orders:   new(MockOrderRepository),
		payments: new(MockPaymentDetailRepository),
		carts:    new(MockCartItemRepository),
		products: new(MockProductRepository),
	}
	scope := NewNoOpTransactionScope(f.orders, f.payments, f.carts)
	f.svc = NewSettlementService(scope, f.stock, f.orders, f.payments, f.products, nil)
	return f
}

func settlementProduct(t *testing.T, id uuid.UUID, name string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name, "kg", decimal.NewFromInt(3))
	require.NoError(t, err)
	p.ID = id
	return p
}

func TestSettlementService_PlaceOrder(t *testing.T) {
	t.Run("settles order, payment, stock and cart together", func(t *testing.T) {
		f := newSettlementFixture(t)
		userID := uuid.New()
		productID := uuid.New()
		cartItemID := uuid.New()

		f.products.On("FindByID", mock.Anything, productID).
			Return(settlementProduct(t, productID, "Free-Range Eggs"), nil)
		f.orders.On("Save", mock.Anything, mock.MatchedBy(func(o *order.Order) bool {
			return o.UserID == userID && o.Status == order.OrderStatusPending && len(o.Items) == 1
		})).Return(nil)
		f.stock.On("DeductStock", mock.Anything, productID, mock.MatchedBy(func(q decimal.Decimal) bool {
			return q.Equal(decimal.NewFromInt(2))
		})).Return([]inventory.BatchDeduction{{ProductID: productID, Deducted: decimal.NewFromInt(2)}}, nil)
		f.payments.On("Save", mock.Anything, mock.MatchedBy(func(p *order.PaymentDetail) bool {
			return p.Status == order.PaymentStatusUnpaid && p.Method == order.PaymentMethodCOD &&
				p.Amount.Equal(decimal.NewFromInt(6))
		})).Return(nil)
		f.carts.On("DeleteByIDs", mock.Anything, userID, []uuid.UUID{cartItemID}).Return(nil)

		resp, err := f.svc.PlaceOrder(context.Background(), userID, PlaceOrderRequest{
			DeliveryAddress: "12 Orchard Lane",
			Items: []PlaceOrderItemRequest{
				{ProductID: productID, Quantity: decimal.NewFromInt(2), Price: decimal.NewFromInt(3), CartItemID: &cartItemID},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "pending", resp.Order.Status)
		assert.True(t, resp.Order.Total.Equal(decimal.NewFromInt(6)))
		assert.Equal(t, "Free-Range Eggs", resp.Order.Items[0].ProductName)
		assert.Equal(t, "unpaid", resp.Payment.Status)
		f.carts.AssertExpectations(t)
		f.stock.AssertNotCalled(t, "RestoreDeductions", mock.Anything, mock.Anything)
	})

	t.Run("skips cart deletion when no cart ids are given", func(t *testing.T) {
		f := newSettlementFixture(t)
		userID := uuid.New()
		productID := uuid.New()

		f.products.On("FindByID", mock.Anything, productID).
			Return(settlementProduct(t, productID, "Raw Honey"), nil)
		f.orders.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.stock.On("DeductStock", mock.Anything, productID, mock.Anything).
			Return([]inventory.BatchDeduction{}, nil)
		f.payments.On("Save", mock.Anything, mock.Anything).Return(nil)

		_, err := f.svc.PlaceOrder(context.Background(), userID, PlaceOrderRequest{
			DeliveryAddress: "12 Orchard Lane",
			Items: []PlaceOrderItemRequest{
				{ProductID: productID, Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(9)},
			},
		})
		require.NoError(t, err)
		f.carts.AssertNotCalled(t, "DeleteByIDs", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects an empty order", func(t *testing.T) {
		f := newSettlementFixture(t)

		_, err := f.svc.PlaceOrder(context.Background(), uuid.New(), PlaceOrderRequest{
			DeliveryAddress: "12 Orchard Lane",
		})
		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_INPUT", domainErr.Code)
		f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown product fails before the transaction", func(t *testing.T) {
		f := newSettlementFixture(t)
		productID := uuid.New()

		f.products.On("FindByID", mock.Anything, productID).Return(nil, shared.ErrNotFound)

		_, err := f.svc.PlaceOrder(context.Background(), uuid.New(), PlaceOrderRequest{
			DeliveryAddress: "12 Orchard Lane",
			Items: []PlaceOrderItemRequest{
				{ProductID: productID, Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(2)},
			},
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
		f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("insufficient stock aborts without a payment write", func(t *testing.T) {
		f := newSettlementFixture(t)
		productID := uuid.New()
		shortage := inventory.NewInsufficientStockError(productID, decimal.NewFromInt(10), decimal.NewFromInt(4))

		f.products.On("FindByID", mock.Anything, productID).
			Return(settlementProduct(t, productID, "Organic Kale"), nil)
		f.orders.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.stock.On("DeductStock", mock.Anything, productID, mock.Anything).Return(nil, shortage)

		_, err := f.svc.PlaceOrder(context.Background(), uuid.New(), PlaceOrderRequest{
			DeliveryAddress: "12 Orchard Lane",
			Items: []PlaceOrderItemRequest{
				{ProductID: productID, Quantity: decimal.NewFromInt(10), Price: decimal.NewFromInt(2)},
			},
		})
		var stockErr *inventory.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		f.payments.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
		f.stock.AssertNotCalled(t, "RestoreDeductions", mock.Anything, mock.Anything)
	})

	t.Run("re-adds applied deductions when a later write fails", func(t *testing.T) {
		f := newSettlementFixture(t)
		userID := uuid.New()
		productID := uuid.New()
		boom := errors.New("connection reset")
		applied := []inventory.BatchDeduction{
			{BatchID: uuid.New(), ProductID: productID, Deducted: decimal.NewFromInt(3)},
		}

		f.products.On("FindByID", mock.Anything, productID).
			Return(settlementProduct(t, productID, "Goat Cheese"), nil)
		f.orders.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.stock.On("DeductStock", mock.Anything, productID, mock.Anything).Return(applied, nil)
		f.payments.On("Save", mock.Anything, mock.Anything).Return(boom)
		f.stock.On("RestoreDeductions", mock.Anything, applied).Return(nil)

		_, err := f.svc.PlaceOrder(context.Background(), userID, PlaceOrderRequest{
			DeliveryAddress: "12 Orchard Lane",
			Items: []PlaceOrderItemRequest{
				{ProductID: productID, Quantity: decimal.NewFromInt(3), Price: decimal.NewFromInt(5)},
			},
		})
		assert.ErrorIs(t, err, boom)
		f.stock.AssertCalled(t, "RestoreDeductions", mock.Anything, applied)
	})

	t.Run("compensation failure still surfaces the original error", func(t *testing.T) {
		f := newSettlementFixture(t)
		productID := uuid.New()
		boom := errors.New("connection reset")
		applied := []inventory.BatchDeduction{
			{BatchID: uuid.New(), ProductID: productID, Deducted: decimal.NewFromInt(1)},
		}

		f.products.On("FindByID", mock.Anything, productID).
			Return(settlementProduct(t, productID, "Goat Cheese"), nil)
		f.orders.On("Save", mock.Anything, mock.Anything).Return(nil)
		f.stock.On("DeductStock", mock.Anything, productID, mock.Anything).Return(applied, nil)
		f.payments.On("Save", mock.Anything, mock.Anything).Return(boom)
		f.stock.On("RestoreDeductions", mock.Anything, applied).Return(errors.New("restore failed"))

		_, err := f.svc.PlaceOrder(context.Background(), uuid.New(), PlaceOrderRequest{
			DeliveryAddress: "12 Orchard Lane",
			Items: []PlaceOrderItemRequest{
				{ProductID: productID, Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(5)},
			},
		})
		assert.ErrorIs(t, err, boom)
	})

	t.Run("rejects an unknown payment method", func(t *testing.T) {
		f := newSettlementFixture(t)
		productID := uuid.New()

		f.products.On("FindByID", mock.Anything, productID).
			Return(settlementProduct(t, productID, "Raw Honey"), nil)

		_, err := f.svc.PlaceOrder(context.Background(), uuid.New(), PlaceOrderRequest{
			DeliveryAddress: "12 Orchard Lane",
			PaymentMethod:   "barter",
			Items: []PlaceOrderItemRequest{
				{ProductID: productID, Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(2)},
			},
		})
		assert.Error(t, err)
		f.orders.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func pendingOrder(t *testing.T, userID, productID uuid.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(userID, "12 Orchard Lane")
	require.NoError(t, err)
	_, err = o.AddItem(productID, "Free-Range Eggs", decimal.NewFromInt(2), decimal.NewFromInt(3))
	require.NoError(t, err)
	return o
}

func TestSettlementService_Cancel(t *testing.T) {
	t.Run("cancels a pending order and restores its stock", func(t *testing.T) {
		f := newSettlementFixture(t)
		userID := uuid.New()
		o := pendingOrder(t, userID, uuid.New())

		f.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		f.orders.On("UpdateStatus", mock.Anything, o.ID, order.OrderStatusCancelled).Return(nil)
		f.stock.On("RestoreStock", mock.Anything, o.ID).Return([]inventory.StockRestoration{}, nil)

		resp, err := f.svc.Cancel(context.Background(), o.ID, userID)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", resp.Status)
		f.stock.AssertCalled(t, "RestoreStock", mock.Anything, o.ID)
	})

	t.Run("rejects cancellation by another customer", func(t *testing.T) {
		f := newSettlementFixture(t)
		o := pendingOrder(t, uuid.New(), uuid.New())

		f.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		_, err := f.svc.Cancel(context.Background(), o.ID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrForbidden)
		f.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("rejects cancellation once the order left pending", func(t *testing.T) {
		f := newSettlementFixture(t)
		userID := uuid.New()
		o := pendingOrder(t, userID, uuid.New())
		require.NoError(t, o.TransitionTo(order.OrderStatusProcessing))

		f.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		_, err := f.svc.Cancel(context.Background(), o.ID, userID)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		f.stock.AssertNotCalled(t, "RestoreStock", mock.Anything, mock.Anything)
	})
}

func TestSettlementService_UpdateStatus(t *testing.T) {
	t.Run("completion bumps the sold counter per item", func(t *testing.T) {
		f := newSettlementFixture(t)
		productID := uuid.New()
		o := pendingOrder(t, uuid.New(), productID)
		require.NoError(t, o.TransitionTo(order.OrderStatusProcessing))
		require.NoError(t, o.TransitionTo(order.OrderStatusShipped))

		f.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		f.orders.On("UpdateStatus", mock.Anything, o.ID, order.OrderStatusCompleted).Return(nil)
		f.products.On("IncrementSold", mock.Anything, productID, mock.MatchedBy(func(q decimal.Decimal) bool {
			return q.Equal(decimal.NewFromInt(2))
		})).Return(nil)

		resp, err := f.svc.UpdateStatus(context.Background(), o.ID, order.OrderStatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, "completed", resp.Status)
		f.products.AssertExpectations(t)
	})

	t.Run("admin cancellation restores stock", func(t *testing.T) {
		f := newSettlementFixture(t)
		o := pendingOrder(t, uuid.New(), uuid.New())
		require.NoError(t, o.TransitionTo(order.OrderStatusProcessing))

		f.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		f.orders.On("UpdateStatus", mock.Anything, o.ID, order.OrderStatusCancelled).Return(nil)
		f.stock.On("RestoreStock", mock.Anything, o.ID).Return([]inventory.StockRestoration{}, nil)

		_, err := f.svc.UpdateStatus(context.Background(), o.ID, order.OrderStatusCancelled)
		require.NoError(t, err)
		f.stock.AssertCalled(t, "RestoreStock", mock.Anything, o.ID)
	})

	t.Run("invalid transition leaves the order untouched", func(t *testing.T) {
		f := newSettlementFixture(t)
		o := pendingOrder(t, uuid.New(), uuid.New())

		f.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)

		_, err := f.svc.UpdateStatus(context.Background(), o.ID, order.OrderStatusCompleted)
		assert.Error(t, err)
		assert.Equal(t, order.OrderStatusPending, o.Status)
		f.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("restoration failure propagates after the status write", func(t *testing.T) {
		f := newSettlementFixture(t)
		o := pendingOrder(t, uuid.New(), uuid.New())
		boom := errors.New("batch lookup failed")

		f.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)
		f.orders.On("UpdateStatus", mock.Anything, o.ID, order.OrderStatusCancelled).Return(nil)
		f.stock.On("RestoreStock", mock.Anything, o.ID).Return(nil, boom)

		_, err := f.svc.UpdateStatus(context.Background(), o.ID, order.OrderStatusCancelled)
		assert.ErrorIs(t, err, boom)
	})
}

func TestSettlementService_GetByIDForUser(t *testing.T) {
	f := newSettlementFixture(t)
	userID := uuid.New()
	o := pendingOrder(t, userID, uuid.New())
	payment, err := order.NewPaymentDetail(o.ID, o.Total, order.PaymentMethodCOD)
	require.NoError(t, err)

	f.orders.On("FindByID", mock.Anything, o.ID).Return(o, nil)
	f.payments.On("FindByOrder", mock.Anything, o.ID).Return(payment, nil)

	t.Run("owner can read the order", func(t *testing.T) {
		resp, err := f.svc.GetByIDForUser(context.Background(), o.ID, userID)
		require.NoError(t, err)
		assert.Equal(t, o.ID, resp.Order.ID)
		assert.Equal(t, "cod", resp.Payment.Method)
	})

	t.Run("other customers are rejected", func(t *testing.T) {
		_, err := f.svc.GetByIDForUser(context.Background(), o.ID, uuid.New())
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})
}

func TestSettlementService_ListByUser(t *testing.T) {
	f := newSettlementFixture(t)
	userID := uuid.New()
	o := pendingOrder(t, userID, uuid.New())

	f.orders.On("FindByUser", mock.Anything, userID, mock.MatchedBy(func(filter shared.Filter) bool {
		return filter.Page == 1 && filter.PageSize == 20
	})).Return([]order.Order{*o}, nil)
	f.orders.On("CountByUser", mock.Anything, userID, mock.Anything).Return(int64(1), nil)

	list, total, err := f.svc.ListByUser(context.Background(), userID, shared.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.Equal(t, o.ID, list[0].ID)
}
