package cart

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for carts. Implementations
// load Items eagerly; a returned cart is always complete.
type Repository interface {
	// FindByUser returns the user's cart, or shared.ErrNotFound when the
	// user has never had one.
	FindByUser(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// GetOrCreateByUser returns the user's cart, creating an empty one on
	// first use.
	GetOrCreateByUser(ctx context.Context, userID uuid.UUID) (*Cart, error)

	// Save persists the cart and its lines
	Save(ctx context.Context, cart *Cart) error

	// RemoveItem deletes a single line
	RemoveItem(ctx context.Context, cartID, productID uuid.UUID) error

	// ClearItems deletes all lines of a cart
	ClearItems(ctx context.Context, cartID uuid.UUID) error
}
