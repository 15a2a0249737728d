package cart

import (
	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
)

// CartItem is a line in a shopping cart. A cart holds at most one line
// per product; adding the same product again merges quantities.
type CartItem struct {
	shared.BaseEntity
	CartID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_product"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_product"`
	Quantity  int       `gorm:"not null;check:quantity > 0"`
}

// TableName returns the table name for GORM
func (CartItem) TableName() string {
	return "cart_items"
}

// Cart is the aggregate root for a user's shopping cart. Each user has
// exactly one cart, created lazily on first use and never deleted.
// Cart lines are soft holds: they do not reserve stock.
type Cart struct {
	shared.BaseAggregateRoot
	UserID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Items  []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Cart) TableName() string {
	return "carts"
}

// NewCart creates an empty cart for a user
func NewCart(userID uuid.UUID) *Cart {
	return &Cart{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Items:             make([]CartItem, 0),
	}
}

// FindItem returns the line for a product, or nil
func (c *Cart) FindItem(productID uuid.UUID) *CartItem {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			return &c.Items[i]
		}
	}
	return nil
}

// AddItem adds a product line or merges the quantity into an existing line
func (c *Cart) AddItem(productID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return shared.ErrInvalidQuantity
	}

	if item := c.FindItem(productID); item != nil {
		item.Quantity += quantity
		c.IncrementVersion()
		return nil
	}

	item := CartItem{
		BaseEntity: shared.NewBaseEntity(),
		CartID:     c.ID,
		ProductID:  productID,
		Quantity:   quantity,
	}
	c.Items = append(c.Items, item)
	c.IncrementVersion()
	return nil
}

// MergedQuantity returns the line quantity that would result from adding
// quantity units of the product, accounting for an existing line.
func (c *Cart) MergedQuantity(productID uuid.UUID, quantity int) int {
	if item := c.FindItem(productID); item != nil {
		return item.Quantity + quantity
	}
	return quantity
}

// SetItemQuantity replaces the quantity of an existing line. A quantity
// of zero or less removes the line. Returns ErrItemNotFound when the
// product has no line in the cart.
func (c *Cart) SetItemQuantity(productID uuid.UUID, quantity int) error {
	item := c.FindItem(productID)
	if item == nil {
		return shared.ErrItemNotFound
	}

	if quantity <= 0 {
		c.RemoveItem(productID)
		return nil
	}

	item.Quantity = quantity
	c.IncrementVersion()
	return nil
}

// RemoveItem removes the line for a product. Returns false when no line
// existed, leaving the cart unchanged.
func (c *Cart) RemoveItem(productID uuid.UUID) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.IncrementVersion()
			return true
		}
	}
	return false
}

// Clear removes all lines from the cart
func (c *Cart) Clear() {
	c.Items = make([]CartItem, 0)
	c.IncrementVersion()
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}
