package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Service handles shopping cart operations. Cart lines are soft holds:
// adding to a cart checks availability but never reserves stock, so a
// line can go stale before checkout.
type Service struct {
	cartRepo    cart.Repository
	productRepo catalog.ProductRepository
}

// NewService creates a new cart Service
func NewService(cartRepo cart.Repository, productRepo catalog.ProductRepository) *Service {
	return &Service{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Get returns the user's cart, creating an empty one on first use
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	c, err := s.cartRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(ctx, c)
}

// AddItem adds a product to the cart, merging with an existing line.
// The merged quantity must be coverable by current stock.
func (s *Service) AddItem(ctx context.Context, userID uuid.UUID, req AddItemRequest) (*CartResponse, error) {
	product, err := s.productRepo.FindByID(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, shared.ErrProductNotFound
	}

	c, err := s.cartRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	merged := c.MergedQuantity(req.ProductID, req.Quantity)
	if !product.CanFulfill(merged) {
		return nil, shared.ErrInsufficientStock
	}

	if err := c.AddItem(req.ProductID, req.Quantity); err != nil {
		return nil, err
	}
	if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, c)
}

// UpdateItem replaces a line's quantity. Zero removes the line.
func (s *Service) UpdateItem(ctx context.Context, userID, productID uuid.UUID, req UpdateItemRequest) (*CartResponse, error) {
	c, err := s.cartRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Quantity > 0 {
		product, err := s.productRepo.FindByID(ctx, productID)
		if err != nil {
			return nil, err
		}
		if !product.CanFulfill(req.Quantity) {
			return nil, shared.ErrInsufficientStock
		}
	}

	if err := c.SetItemQuantity(productID, req.Quantity); err != nil {
		return nil, err
	}

	if req.Quantity <= 0 {
		if err := s.cartRepo.RemoveItem(ctx, c.ID, productID); err != nil {
			return nil, err
		}
	} else if err := s.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, c)
}

// RemoveItem removes a line from the cart. Returns ErrItemNotFound when
// the product has no line.
func (s *Service) RemoveItem(ctx context.Context, userID, productID uuid.UUID) (*CartResponse, error) {
	c, err := s.cartRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !c.RemoveItem(productID) {
		return nil, shared.ErrItemNotFound
	}
	if err := s.cartRepo.RemoveItem(ctx, c.ID, productID); err != nil {
		return nil, err
	}
	return s.toResponse(ctx, c)
}

// Clear empties the cart
func (s *Service) Clear(ctx context.Context, userID uuid.UUID) error {
	c, err := s.cartRepo.GetOrCreateByUser(ctx, userID)
	if err != nil {
		return err
	}
	c.Clear()
	return s.cartRepo.ClearItems(ctx, c.ID)
}

// toResponse resolves each line against the live catalog. Lines whose
// product has been deleted are skipped rather than failing the whole cart.
func (s *Service) toResponse(ctx context.Context, c *cart.Cart) (*CartResponse, error) {
	response := &CartResponse{
		ID:     c.ID,
		UserID: c.UserID,
		Items:  make([]ItemResponse, 0, len(c.Items)),
	}

	total := valueobject.ZeroUSD()
	for i := range c.Items {
		product, err := s.productRepo.FindByID(ctx, c.Items[i].ProductID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				continue
			}
			return nil, err
		}
		item := toItemResponse(&c.Items[i], product)
		response.Items = append(response.Items, item)

		subtotal := product.Price.MultiplyByInt(int64(c.Items[i].Quantity))
		sum, err := total.Add(subtotal)
		if err != nil {
			return nil, err
		}
		total = sum
	}
	response.Total = total.StringFixed(2)
	return response, nil
}
