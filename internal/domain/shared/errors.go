package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)

// Storefront business rule errors
var (
	ErrProductNotFound   = NewDomainError("PRODUCT_NOT_FOUND", "Product not found or inactive")
	ErrInsufficientStock = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrInvalidQuantity   = NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	ErrItemNotFound      = NewDomainError("ITEM_NOT_FOUND", "Item not found")
	ErrInvalidRating     = NewDomainError("INVALID_RATING", "Rating must be between 1 and 5")
	ErrDuplicateReview   = NewDomainError("DUPLICATE_REVIEW", "Product has already been reviewed by this user")
	ErrNotPurchased      = NewDomainError("NOT_PURCHASED", "Product must be purchased and delivered before reviewing")
)
