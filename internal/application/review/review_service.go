package review

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/review"
	"github.com/storefront/backend/internal/domain/shared"
)

// Service handles product review operations. Reviews are gated on
// verified purchase: a user may review a product only after owning a
// Delivered order that contains it, and at most once per product.
type Service struct {
	reviewRepo  review.Repository
	orderRepo   order.Repository
	productRepo catalog.ProductRepository
}

// NewService creates a new review Service
func NewService(reviewRepo review.Repository, orderRepo order.Repository, productRepo catalog.ProductRepository) *Service {
	return &Service{
		reviewRepo:  reviewRepo,
		orderRepo:   orderRepo,
		productRepo: productRepo,
	}
}

// Create stores a new review after checking the purchase gate
func (s *Service) Create(ctx context.Context, productID, userID uuid.UUID, req CreateReviewRequest) (*ReviewResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	if _, err := s.reviewRepo.FindByProductAndUser(ctx, productID, userID); err == nil {
		return nil, shared.ErrDuplicateReview
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	delivered, err := s.orderRepo.ExistsDeliveredWithProduct(ctx, userID, productID)
	if err != nil {
		return nil, err
	}
	if !delivered {
		return nil, shared.ErrNotPurchased
	}

	r, err := review.NewReview(productID, userID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	response := ToReviewResponse(r)
	return &response, nil
}

// Update revises the caller's own review
func (s *Service) Update(ctx context.Context, reviewID, userID uuid.UUID, req UpdateReviewRequest) (*ReviewResponse, error) {
	r, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID {
		return nil, shared.ErrNotFound
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, shared.ErrInvalidRating
	}

	r.Rating = req.Rating
	r.Comment = req.Comment
	if err := s.reviewRepo.Save(ctx, r); err != nil {
		return nil, err
	}

	response := ToReviewResponse(r)
	return &response, nil
}

// Delete removes the caller's own review. Returns false when the review
// is absent or owned by someone else.
func (s *Service) Delete(ctx context.Context, reviewID, userID uuid.UUID) (bool, error) {
	r, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if r.UserID != userID {
		return false, nil
	}
	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return false, err
	}
	return true, nil
}

// GetProductReviews lists a product's reviews newest first, with the
// mean rating and count
func (s *Service) GetProductReviews(ctx context.Context, productID uuid.UUID) (*ProductReviewsResponse, error) {
	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	filter := shared.DefaultFilter()
	filter.PageSize = 100
	reviews, err := s.reviewRepo.FindByProduct(ctx, productID, filter)
	if err != nil {
		return nil, err
	}

	avg, count, err := s.reviewRepo.AverageRating(ctx, productID)
	if err != nil {
		return nil, err
	}

	return &ProductReviewsResponse{
		ProductID:     productID,
		AverageRating: avg,
		ReviewCount:   count,
		Reviews:       ToReviewResponses(reviews),
	}, nil
}

// GetUserReviews lists the caller's reviews, newest first
func (s *Service) GetUserReviews(ctx context.Context, userID uuid.UUID) ([]ReviewResponse, error) {
	filter := shared.DefaultFilter()
	filter.PageSize = 100
	reviews, err := s.reviewRepo.FindByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	return ToReviewResponses(reviews), nil
}
