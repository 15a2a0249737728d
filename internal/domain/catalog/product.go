package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Category groups products for browsing and filtering
type Category struct {
	shared.BaseEntity
	Name        string `gorm:"size:100;not null;uniqueIndex"`
	Description string `gorm:"size:500"`
}

// TableName returns the table name for GORM
func (Category) TableName() string {
	return "categories"
}

// NewCategory creates a new category
func NewCategory(name, description string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Category name is required")
	}
	return &Category{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Description: description,
	}, nil
}

// Product is the aggregate root for a sellable item.
// StockQuantity is the on-hand stock that order reservations decrement;
// it never goes below zero.
type Product struct {
	shared.BaseAggregateRoot
	Name          string            `gorm:"size:200;not null"`
	Description   string            `gorm:"size:2000"`
	Price         valueobject.Money `gorm:"type:decimal(12,2);not null"`
	StockQuantity int               `gorm:"not null;default:0;check:stock_quantity >= 0"`
	ImageURL      string            `gorm:"size:500"`
	IsActive      bool              `gorm:"not null;default:true"`
	CategoryID    uuid.UUID         `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name, description string, price valueobject.Money, stockQuantity int, imageURL string, categoryID uuid.UUID) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product name is required")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Product price cannot be negative")
	}
	if stockQuantity < 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Stock quantity cannot be negative")
	}
	if categoryID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Category is required")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		Price:             price,
		StockQuantity:     stockQuantity,
		ImageURL:          imageURL,
		IsActive:          true,
		CategoryID:        categoryID,
	}, nil
}

// Update modifies the editable product fields
func (p *Product) Update(name, description string, price valueobject.Money, stockQuantity int, imageURL string, categoryID uuid.UUID) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Product name is required")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Product price cannot be negative")
	}
	if stockQuantity < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Stock quantity cannot be negative")
	}
	if categoryID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Category is required")
	}

	p.Name = name
	p.Description = description
	p.Price = price
	p.StockQuantity = stockQuantity
	p.ImageURL = imageURL
	p.CategoryID = categoryID
	p.IncrementVersion()
	return nil
}

// Activate makes the product purchasable
func (p *Product) Activate() {
	p.IsActive = true
	p.IncrementVersion()
}

// Deactivate hides the product from purchase paths
func (p *Product) Deactivate() {
	p.IsActive = false
	p.IncrementVersion()
}

// CanFulfill reports whether the product can cover the requested quantity.
// Inactive products can never fulfill.
func (p *Product) CanFulfill(quantity int) bool {
	if quantity <= 0 {
		return false
	}
	return p.IsActive && p.StockQuantity >= quantity
}
