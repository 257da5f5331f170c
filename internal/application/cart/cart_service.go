package cart

import (
	"context"

	"github.com/ecoharvest/backend/internal/domain/cart"
	"github.com/ecoharvest/backend/internal/domain/catalog"
	"github.com/ecoharvest/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartService manages a user's cart lines. All operations are scoped to the
// authenticated user; checkout-time deletion of purchased lines is owned by
// the order settlement flow, not here.
type CartService struct {
	items    cart.CartItemRepository
	products catalog.ProductRepository
	logger   *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(items cart.CartItemRepository, products catalog.ProductRepository, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{items: items, products: products, logger: logger}
}

// List returns the user's cart with product display info and a running total
func (s *CartService) List(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	items, err := s.items.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &CartResponse{
		Items: make([]CartItemResponse, 0, len(items)),
		Total: decimal.Zero,
	}
	for i := range items {
		product, err := s.products.FindByID(ctx, items[i].ProductID)
		if err != nil && err != shared.ErrNotFound {
			return nil, err
		}
		line := ToCartItemResponse(&items[i], product)
		resp.Items = append(resp.Items, line)
		resp.Total = resp.Total.Add(line.LineTotal)
	}
	return resp, nil
}

// Add puts a product in the user's cart, merging the quantity when the
// product is already carted
func (s *CartService) Add(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartItemResponse, error) {
	product, err := s.products.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.Active {
		return nil, shared.NewDomainError("INVALID_STATE", "Product is not available")
	}

	existing, err := s.items.FindByUserAndProduct(ctx, userID, req.ProductID)
	if err != nil && err != shared.ErrNotFound {
		return nil, err
	}

	var item *cart.CartItem
	if existing != nil {
		if err := existing.AddQuantity(req.Quantity); err != nil {
			return nil, err
		}
		item = existing
	} else {
		item, err = cart.NewCartItem(userID, req.ProductID, req.Quantity)
		if err != nil {
			return nil, err
		}
	}

	if err := s.items.Save(ctx, item); err != nil {
		return nil, err
	}

	resp := ToCartItemResponse(item, product)
	return &resp, nil
}

// UpdateQuantity replaces a cart line's quantity
func (s *CartService) UpdateQuantity(ctx context.Context, userID, itemID uuid.UUID, req UpdateItemRequest) (*CartItemResponse, error) {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, shared.ErrForbidden
	}

	if err := item.SetQuantity(req.Quantity); err != nil {
		return nil, err
	}
	if err := s.items.Save(ctx, item); err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(ctx, item.ProductID)
	if err != nil && err != shared.ErrNotFound {
		return nil, err
	}
	resp := ToCartItemResponse(item, product)
	return &resp, nil
}

// Remove deletes one cart line
func (s *CartService) Remove(ctx context.Context, userID, itemID uuid.UUID) error {
	item, err := s.items.FindByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.UserID != userID {
		return shared.ErrForbidden
	}
	return s.items.Delete(ctx, itemID)
}

// Clear empties the user's cart
func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.items.DeleteByUser(ctx, userID)
}
