package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Repository defines persistence operations for orders. Implementations
// load Items eagerly.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindByUser lists a user's orders, most recent first
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Order, error)

	// FindAll lists all orders, most recent first, optionally filtered by status
	FindAll(ctx context.Context, status *Status, filter shared.Filter) ([]Order, error)

	Save(ctx context.Context, order *Order) error

	Count(ctx context.Context, status *Status) (int64, error)

	// ExistsDeliveredWithProduct reports whether the user has a Delivered
	// order containing the product. Review eligibility hinges on this.
	ExistsDeliveredWithProduct(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}
