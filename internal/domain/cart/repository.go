package cart

import (
	"context"

	"github.com/google/uuid"
)

// CartItemRepository defines the interface for cart persistence
type CartItemRepository interface {
	// FindByID finds a cart item by ID
	FindByID(ctx context.Context, id uuid.UUID) (*CartItem, error)

	// FindByUser finds all cart items for a user
	FindByUser(ctx context.Context, userID uuid.UUID) ([]CartItem, error)

	// FindByUserAndProduct finds a user's cart item for a product, nil error
	// with shared.ErrNotFound when absent
	FindByUserAndProduct(ctx context.Context, userID, productID uuid.UUID) (*CartItem, error)

	// Save creates or updates a cart item
	Save(ctx context.Context, item *CartItem) error

	// Delete deletes a cart item
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByIDs deletes the given cart items scoped to the owning user.
	// Missing ids are ignored (best effort).
	DeleteByIDs(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error

	// DeleteByUser clears a user's cart
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
