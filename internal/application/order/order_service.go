package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/shared"
)

// reservation records an applied stock decrement so it can be undone if
// a later line fails
type reservation struct {
	productID uuid.UUID
	quantity  int
}

// Service handles order placement and lifecycle operations
type Service struct {
	scope     TransactionScope
	orderRepo order.Repository
	cartRepo  cart.Repository
}

// NewService creates a new order Service. cartRepo may be nil when cart
// clearing after checkout is not wanted.
func NewService(scope TransactionScope, orderRepo order.Repository, cartRepo cart.Repository) *Service {
	return &Service{
		scope:     scope,
		orderRepo: orderRepo,
		cartRepo:  cartRepo,
	}
}

// Create places an order. Every line is validated and reserved against
// the stock ledger; if any line fails, reservations already applied in
// this call are released before the error surfaces. A multi-item order
// never partially commits stock.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	var created *order.Order

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		products := repos.Products()
		applied := make([]reservation, 0, len(req.Items))

		rollback := func() {
			for _, r := range applied {
				// Release cannot fail by contract; the surrounding
				// transaction also rolls back on a real database.
				_ = products.ReleaseStock(ctx, r.productID, r.quantity)
			}
		}

		items := make([]order.OrderItem, 0, len(req.Items))
		for _, line := range req.Items {
			if line.Quantity <= 0 {
				rollback()
				return shared.ErrInvalidQuantity
			}

			product, err := products.FindByID(ctx, line.ProductID)
			if err != nil {
				rollback()
				if errors.Is(err, shared.ErrNotFound) {
					return shared.ErrProductNotFound
				}
				return err
			}
			if !product.IsActive {
				rollback()
				return shared.ErrProductNotFound
			}

			if err := products.ReserveStock(ctx, line.ProductID, line.Quantity); err != nil {
				rollback()
				return err
			}
			applied = append(applied, reservation{productID: line.ProductID, quantity: line.Quantity})

			item, err := order.NewOrderItem(line.ProductID, product.Name, line.Quantity, product.Price)
			if err != nil {
				rollback()
				return err
			}
			items = append(items, item)
		}

		o, err := order.NewOrder(userID, req.ShippingAddress, req.PaymentMethod, items)
		if err != nil {
			rollback()
			return err
		}

		if err := repos.Orders().Save(ctx, o); err != nil {
			rollback()
			return err
		}

		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.clearCart(ctx, userID)

	response := ToOrderResponse(created)
	return &response, nil
}

// clearCart empties the user's cart after a successful checkout. Cart
// cleanup is best effort; a failure here never unwinds the placed order.
func (s *Service) clearCart(ctx context.Context, userID uuid.UUID) {
	if s.cartRepo == nil {
		return
	}
	c, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return
	}
	_ = s.cartRepo.ClearItems(ctx, c.ID)
}

// Get retrieves an order visible only to its owner. An order owned by
// someone else reads as absent.
func (s *Service) Get(ctx context.Context, orderID, userID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, shared.ErrNotFound
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// GetForAdmin retrieves any order without ownership checks
func (s *Service) GetForAdmin(ctx context.Context, orderID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// ListByUser lists a user's orders, most recent first
func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]OrderResponse, error) {
	domainFilter := s.domainFilter(filter)
	orders, err := s.orderRepo.FindByUser(ctx, userID, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(orders), nil
}

// ListAll lists all orders for administrators, most recent first
func (s *Service) ListAll(ctx context.Context, filter ListFilter) ([]OrderResponse, int64, error) {
	var status *order.Status
	if filter.Status != nil {
		parsed, err := order.ParseStatus(*filter.Status)
		if err != nil {
			return nil, 0, err
		}
		status = &parsed
	}

	domainFilter := s.domainFilter(filter)
	orders, err := s.orderRepo.FindAll(ctx, status, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, status)
	if err != nil {
		return nil, 0, err
	}
	return ToOrderResponses(orders), total, nil
}

// UpdateStatus writes a new status on behalf of an administrator. Any
// known status is accepted; only owner cancellation is gated by the
// transition table.
func (s *Service) UpdateStatus(ctx context.Context, orderID uuid.UUID, req UpdateStatusRequest) (*OrderResponse, error) {
	status, err := order.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}

	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	o.SetStatus(status)
	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// Cancel cancels the caller's own Pending order and restores its stock.
// Returns false for every precondition failure: absent order, foreign
// owner, or a status past Pending. The restore and the status write
// share one transaction.
func (s *Service) Cancel(ctx context.Context, orderID, userID uuid.UUID) (bool, error) {
	cancelled := false

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		o, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return nil
			}
			return err
		}
		if o.UserID != userID || !o.CancellableByOwner() {
			return nil
		}

		for i := range o.Items {
			if err := repos.Products().ReleaseStock(ctx, o.Items[i].ProductID, o.Items[i].Quantity); err != nil {
				return err
			}
		}

		if err := o.TransitionTo(order.StatusCancelled); err != nil {
			return err
		}
		if err := repos.Orders().Save(ctx, o); err != nil {
			return err
		}

		cancelled = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return cancelled, nil
}

func (s *Service) domainFilter(filter ListFilter) shared.Filter {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	domainFilter := shared.DefaultFilter()
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.OrderBy = "order_date"
	return domainFilter
}
