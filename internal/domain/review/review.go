package review

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// Review is a customer's verified-purchase rating of a product. A user
// may review a product at most once, and only after a Delivered order
// containing it.
type Review struct {
	shared.BaseEntity
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_user"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_product_user"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   string    `gorm:"size:2000"`
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "reviews"
}

// NewReview creates a review with a rating on the 1 to 5 scale
func NewReview(productID, userID uuid.UUID, rating int, comment string) (*Review, error) {
	if rating < 1 || rating > 5 {
		return nil, shared.ErrInvalidRating
	}
	return &Review{
		BaseEntity: shared.NewBaseEntity(),
		ProductID:  productID,
		UserID:     userID,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
	}, nil
}

// Repository defines persistence operations for reviews
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)

	// FindByProduct lists a product's reviews, newest first
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]Review, error)

	// FindByProductAndUser returns the user's review of the product, or
	// shared.ErrNotFound
	FindByProductAndUser(ctx context.Context, productID, userID uuid.UUID) (*Review, error)

	// FindByUser lists a user's reviews, newest first
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Review, error)

	Save(ctx context.Context, review *Review) error

	Delete(ctx context.Context, id uuid.UUID) error

	// AverageRating returns the mean rating and the review count for a
	// product. A product with no reviews averages zero.
	AverageRating(ctx context.Context, productID uuid.UUID) (float64, int64, error)
}
