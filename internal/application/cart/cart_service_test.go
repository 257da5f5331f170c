package cart

import (
	"context"
	"testing"

	"github.com/ecoharvest/backend/internal/domain/cart"
	"github.com/ecoharvest/backend/internal/domain/catalog"
	"github.com/ecoharvest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCartItemRepository struct {
	mock.Mock
}

func (m *MockCartItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*cart.CartItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartItem), args.Error(1)
}

func (m *MockCartItemRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]cart.CartItem, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]cart.CartItem), args.Error(1)
}

func (m *MockCartItemRepository) FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*cart.CartItem, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartItem), args.Error(1)
}

func (m *MockCartItemRepository) Save(ctx context.Context, item *cart.CartItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCartItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCartItemRepository) DeleteByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	args := m.Called(ctx, userID, ids)
	return args.Error(0)
}

func (m *MockCartItemRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]catalog.Product, error) {
	args := m.Called(ctx, categoryID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Product), args.Error(1)
}

func (m *MockProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) UpdateQuantity(ctx context.Context, productID uuid.UUID, quantity decimal.Decimal) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

func (m *MockProductRepository) IncrementSold(ctx context.Context, productID uuid.UUID, quantity decimal.Decimal) error {
	args := m.Called(ctx, productID, quantity)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, categoryID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func newCartFixture(t *testing.T) (*CartService, *MockCartItemRepository, *MockProductRepository) {
	t.Helper()
	items := new(MockCartItemRepository)
	products := new(MockProductRepository)
	return NewCartService(items, products, nil), items, products
}

func cartProduct(t *testing.T, id uuid.UUID, price int64) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct("Sourdough Loaf", "piece", decimal.NewFromInt(price))
	require.NoError(t, err)
	p.ID = id
	return p
}

func TestCartService_Add(t *testing.T) {
	t.Run("creates a new line for a fresh product", func(t *testing.T) {
		svc, items, products := newCartFixture(t)
		userID := uuid.New()
		productID := uuid.New()

		products.On("FindByID", mock.Anything, productID).Return(cartProduct(t, productID, 4), nil)
		items.On("FindByUserAndProduct", mock.Anything, userID, productID).Return(nil, shared.ErrNotFound)
		items.On("Save", mock.Anything, mock.MatchedBy(func(item *cart.CartItem) bool {
			return item.UserID == userID && item.Quantity.Equal(decimal.NewFromInt(2))
		})).Return(nil)

		resp, err := svc.Add(context.Background(), userID, AddItemRequest{
			ProductID: productID,
			Quantity:  decimal.NewFromInt(2),
		})
		require.NoError(t, err)
		assert.Equal(t, "Sourdough Loaf", resp.ProductName)
		assert.True(t, resp.LineTotal.Equal(decimal.NewFromInt(8)))
		items.AssertExpectations(t)
	})

	t.Run("merges quantity into an existing line", func(t *testing.T) {
		svc, items, products := newCartFixture(t)
		userID := uuid.New()
		productID := uuid.New()
		existing, err := cart.NewCartItem(userID, productID, decimal.NewFromInt(1))
		require.NoError(t, err)

		products.On("FindByID", mock.Anything, productID).Return(cartProduct(t, productID, 4), nil)
		items.On("FindByUserAndProduct", mock.Anything, userID, productID).Return(existing, nil)
		items.On("Save", mock.Anything, existing).Return(nil)

		resp, err := svc.Add(context.Background(), userID, AddItemRequest{
			ProductID: productID,
			Quantity:  decimal.NewFromInt(3),
		})
		require.NoError(t, err)
		assert.True(t, resp.Quantity.Equal(decimal.NewFromInt(4)))
	})

	t.Run("rejects an inactive product", func(t *testing.T) {
		svc, items, products := newCartFixture(t)
		productID := uuid.New()
		p := cartProduct(t, productID, 4)
		p.Deactivate()

		products.On("FindByID", mock.Anything, productID).Return(p, nil)

		_, err := svc.Add(context.Background(), uuid.New(), AddItemRequest{
			ProductID: productID,
			Quantity:  decimal.NewFromInt(1),
		})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
		items.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("unknown product propagates not found", func(t *testing.T) {
		svc, _, products := newCartFixture(t)
		productID := uuid.New()

		products.On("FindByID", mock.Anything, productID).Return(nil, shared.ErrNotFound)

		_, err := svc.Add(context.Background(), uuid.New(), AddItemRequest{
			ProductID: productID,
			Quantity:  decimal.NewFromInt(1),
		})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCartService_List(t *testing.T) {
	t.Run("totals the lines with current prices", func(t *testing.T) {
		svc, items, products := newCartFixture(t)
		userID := uuid.New()
		productID := uuid.New()
		item, err := cart.NewCartItem(userID, productID, decimal.NewFromInt(3))
		require.NoError(t, err)

		items.On("FindByUser", mock.Anything, userID).Return([]cart.CartItem{*item}, nil)
		products.On("FindByID", mock.Anything, productID).Return(cartProduct(t, productID, 5), nil)

		resp, err := svc.List(context.Background(), userID)
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.True(t, resp.Total.Equal(decimal.NewFromInt(15)))
	})

	t.Run("keeps lines whose product has vanished", func(t *testing.T) {
		svc, items, products := newCartFixture(t)
		userID := uuid.New()
		productID := uuid.New()
		item, err := cart.NewCartItem(userID, productID, decimal.NewFromInt(2))
		require.NoError(t, err)

		items.On("FindByUser", mock.Anything, userID).Return([]cart.CartItem{*item}, nil)
		products.On("FindByID", mock.Anything, productID).Return(nil, shared.ErrNotFound)

		resp, err := svc.List(context.Background(), userID)
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		assert.Empty(t, resp.Items[0].ProductName)
		assert.True(t, resp.Total.IsZero())
	})
}

func TestCartService_UpdateQuantity(t *testing.T) {
	t.Run("replaces the quantity", func(t *testing.T) {
		svc, items, products := newCartFixture(t)
		userID := uuid.New()
		productID := uuid.New()
		item, err := cart.NewCartItem(userID, productID, decimal.NewFromInt(1))
		require.NoError(t, err)

		items.On("FindByID", mock.Anything, item.ID).Return(item, nil)
		items.On("Save", mock.Anything, item).Return(nil)
		products.On("FindByID", mock.Anything, productID).Return(cartProduct(t, productID, 4), nil)

		resp, err := svc.UpdateQuantity(context.Background(), userID, item.ID, UpdateItemRequest{
			Quantity: decimal.NewFromInt(5),
		})
		require.NoError(t, err)
		assert.True(t, resp.Quantity.Equal(decimal.NewFromInt(5)))
	})

	t.Run("rejects another user's line", func(t *testing.T) {
		svc, items, _ := newCartFixture(t)
		item, err := cart.NewCartItem(uuid.New(), uuid.New(), decimal.NewFromInt(1))
		require.NoError(t, err)

		items.On("FindByID", mock.Anything, item.ID).Return(item, nil)

		_, err = svc.UpdateQuantity(context.Background(), uuid.New(), item.ID, UpdateItemRequest{
			Quantity: decimal.NewFromInt(5),
		})
		assert.ErrorIs(t, err, shared.ErrForbidden)
		items.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestCartService_Remove(t *testing.T) {
	t.Run("deletes an owned line", func(t *testing.T) {
		svc, items, _ := newCartFixture(t)
		userID := uuid.New()
		item, err := cart.NewCartItem(userID, uuid.New(), decimal.NewFromInt(1))
		require.NoError(t, err)

		items.On("FindByID", mock.Anything, item.ID).Return(item, nil)
		items.On("Delete", mock.Anything, item.ID).Return(nil)

		require.NoError(t, svc.Remove(context.Background(), userID, item.ID))
		items.AssertExpectations(t)
	})

	t.Run("rejects another user's line", func(t *testing.T) {
		svc, items, _ := newCartFixture(t)
		item, err := cart.NewCartItem(uuid.New(), uuid.New(), decimal.NewFromInt(1))
		require.NoError(t, err)

		items.On("FindByID", mock.Anything, item.ID).Return(item, nil)

		err = svc.Remove(context.Background(), uuid.New(), item.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
		items.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestCartService_Clear(t *testing.T) {
	svc, items, _ := newCartFixture(t)
	userID := uuid.New()

	items.On("DeleteByUser", mock.Anything, userID).Return(nil)

	require.NoError(t, svc.Clear(context.Background(), userID))
	items.AssertExpectations(t)
}
