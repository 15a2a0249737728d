package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// ProductRepository defines persistence operations for products.
//
// ReserveStock and ReleaseStock form the stock ledger: ReserveStock is the
// single authoritative decrement used by order creation, ReleaseStock the
// matching increment used by cancellation and rollback. Both are atomic
// conditional writes; callers never read-modify-write stock themselves.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	FindByCategory(ctx context.Context, categoryID uuid.UUID, filter shared.Filter) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CheckAvailable reports whether an active product currently has at
	// least quantity units on hand. Advisory only: the answer may be stale
	// by the time the caller acts on it.
	CheckAvailable(ctx context.Context, productID uuid.UUID, quantity int) (bool, error)

	// ReserveStock atomically decrements stock by quantity if the product
	// is active and has enough on hand. Returns ErrProductNotFound when
	// the product is absent or inactive, ErrInsufficientStock when stock
	// would go negative.
	ReserveStock(ctx context.Context, productID uuid.UUID, quantity int) error

	// ReleaseStock increments stock by quantity. Callers present pairs
	// from a valid prior reservation, so no upper bound is enforced.
	ReleaseStock(ctx context.Context, productID uuid.UUID, quantity int) error
}

// CategoryRepository defines persistence operations for categories
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Save(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}
