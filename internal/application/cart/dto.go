package cart

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/catalog"
)

// AddItemRequest represents a request to add a product to the cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// UpdateItemRequest represents a request to change a cart line quantity.
// A quantity of zero removes the line.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// ItemResponse represents a cart line in API responses. Price and name
// come from the live catalog, not a snapshot.
type ItemResponse struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	UnitPrice   string    `json:"unit_price"`
	Quantity    int       `json:"quantity"`
	Subtotal    string    `json:"subtotal"`
	InStock     bool      `json:"in_stock"`
}

// CartResponse represents a cart in API responses
type CartResponse struct {
	ID     uuid.UUID      `json:"id"`
	UserID uuid.UUID      `json:"user_id"`
	Items  []ItemResponse `json:"items"`
	Total  string         `json:"total"`
}

// toItemResponse pairs a cart line with its current catalog product
func toItemResponse(item *cart.CartItem, product *catalog.Product) ItemResponse {
	subtotal := product.Price.MultiplyByInt(int64(item.Quantity))
	return ItemResponse{
		ProductID:   item.ProductID,
		ProductName: product.Name,
		UnitPrice:   product.Price.StringFixed(2),
		Quantity:    item.Quantity,
		Subtotal:    subtotal.StringFixed(2),
		InStock:     product.CanFulfill(item.Quantity),
	}
}
