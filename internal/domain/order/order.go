package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// Status is the fulfillment state of an order
type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

// ParseStatus converts a string to a Status, rejecting unknown values
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return Status(s), nil
	default:
		return "", shared.NewDomainError("INVALID_INPUT", "Unknown order status: "+s)
	}
}

// IsTerminal reports whether no further transitions are allowed
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether the status machine permits moving to
// target. Pending may move to Processing or Cancelled, Processing to
// Shipped or Cancelled, Shipped only to Delivered.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusProcessing || target == StatusCancelled
	case StatusProcessing:
		return target == StatusShipped || target == StatusCancelled
	case StatusShipped:
		return target == StatusDelivered
	default:
		return false
	}
}

// OrderItem is an immutable line of a placed order. ProductName and
// UnitPrice are snapshots taken at checkout; later catalog edits do not
// change them.
type OrderItem struct {
	shared.BaseEntity
	OrderID     uuid.UUID         `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID         `gorm:"type:uuid;not null;index"`
	ProductName string            `gorm:"size:200;not null"`
	Quantity    int               `gorm:"not null;check:quantity > 0"`
	UnitPrice   valueobject.Money `gorm:"type:decimal(12,2);not null"`
	Subtotal    valueobject.Money `gorm:"type:decimal(12,2);not null"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Payment states recorded on an order. Payment is tracked as a plain
// field; no processor integration exists.
const (
	PaymentPending = "Pending"
	PaymentPaid    = "Paid"
)

// Order is the aggregate root for a placed order
type Order struct {
	shared.BaseAggregateRoot
	UserID          uuid.UUID         `gorm:"type:uuid;not null;index"`
	Status          Status            `gorm:"size:20;not null;default:Pending"`
	TotalAmount     valueobject.Money `gorm:"type:decimal(12,2);not null"`
	ShippingAddress string            `gorm:"size:500;not null"`
	PaymentMethod   string            `gorm:"size:50;not null"`
	PaymentStatus   string            `gorm:"size:20;not null;default:Pending"`
	OrderDate       time.Time         `gorm:"not null;index"`
	Items           []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder assembles a Pending order from checkout lines. The total is
// recomputed from the line subtotals rather than trusted from the caller.
func NewOrder(userID uuid.UUID, shippingAddress, paymentMethod string, items []OrderItem) (*Order, error) {
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Order must contain at least one item")
	}
	if shippingAddress == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Shipping address is required")
	}
	if paymentMethod == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Payment method is required")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Status:            StatusPending,
		PaymentStatus:     PaymentPending,
		ShippingAddress:   shippingAddress,
		PaymentMethod:     paymentMethod,
		OrderDate:         time.Now().UTC(),
		Items:             items,
	}

	total := valueobject.ZeroUSD()
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
		sum, err := total.Add(o.Items[i].Subtotal)
		if err != nil {
			return nil, err
		}
		total = sum
	}
	o.TotalAmount = total
	return o, nil
}

// NewOrderItem builds a checkout line with a price snapshot
func NewOrderItem(productID uuid.UUID, productName string, quantity int, unitPrice valueobject.Money) (OrderItem, error) {
	if quantity <= 0 {
		return OrderItem{}, shared.ErrInvalidQuantity
	}
	return OrderItem{
		BaseEntity:  shared.NewBaseEntity(),
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		Subtotal:    unitPrice.MultiplyByInt(int64(quantity)),
	}, nil
}

// TransitionTo moves the order to target, enforcing the status machine
func (o *Order) TransitionTo(target Status) error {
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot transition order from "+string(o.Status)+" to "+string(target))
	}
	o.Status = target
	o.IncrementVersion()
	return nil
}

// SetStatus writes the status without consulting the transition table.
// The admin path is deliberately permissive; only owner cancellation is
// gated.
func (o *Order) SetStatus(target Status) {
	o.Status = target
	o.IncrementVersion()
}

// SetPaymentStatus records the payment state
func (o *Order) SetPaymentStatus(status string) {
	o.PaymentStatus = status
	o.IncrementVersion()
}

// CancellableByOwner reports whether the owner may still cancel. Owners
// can only back out before fulfillment starts; later cancellations go
// through an admin.
func (o *Order) CancellableByOwner() bool {
	return o.Status == StatusPending
}
