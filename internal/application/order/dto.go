package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/order"
)

// CreateOrderItemInput represents one requested line of a new order
type CreateOrderItemInput struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// CreateOrderRequest represents a request to place an order
type CreateOrderRequest struct {
	ShippingAddress string                 `json:"shipping_address" binding:"required,min=1,max=500"`
	PaymentMethod   string                 `json:"payment_method" binding:"required,min=1,max=50"`
	Items           []CreateOrderItemInput `json:"items" binding:"required,min=1,dive"`
}

// UpdateStatusRequest represents an administrative status change
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,orderstatus"`
}

// ListFilter represents filter options for order listing
type ListFilter struct {
	Status   *string `form:"status" binding:"omitempty,orderstatus"`
	Page     int     `form:"page" binding:"omitempty,min=1"`
	PageSize int     `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// ItemResponse represents an order line in API responses
type ItemResponse struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
	Subtotal    string    `json:"subtotal"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID              uuid.UUID      `json:"id"`
	UserID          uuid.UUID      `json:"user_id"`
	Status          string         `json:"status"`
	TotalAmount     string         `json:"total_amount"`
	ShippingAddress string         `json:"shipping_address"`
	PaymentMethod   string         `json:"payment_method"`
	PaymentStatus   string         `json:"payment_status"`
	OrderDate       time.Time      `json:"order_date"`
	Items           []ItemResponse `json:"items"`
}

// ToOrderResponse converts a domain order to a response DTO
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]ItemResponse, len(o.Items))
	for i := range o.Items {
		items[i] = ItemResponse{
			ProductID:   o.Items[i].ProductID,
			ProductName: o.Items[i].ProductName,
			Quantity:    o.Items[i].Quantity,
			UnitPrice:   o.Items[i].UnitPrice.StringFixed(2),
			Subtotal:    o.Items[i].Subtotal.StringFixed(2),
		}
	}
	return OrderResponse{
		ID:              o.ID,
		UserID:          o.UserID,
		Status:          string(o.Status),
		TotalAmount:     o.TotalAmount.StringFixed(2),
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   o.PaymentMethod,
		PaymentStatus:   o.PaymentStatus,
		OrderDate:       o.OrderDate,
		Items:           items,
	}
}

// ToOrderResponses converts a slice of orders
func ToOrderResponses(orders []order.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}
