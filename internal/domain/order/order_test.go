package order

import (
	"testing"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, price float64, quantity int) OrderItem {
	t.Helper()
	item, err := NewOrderItem(uuid.New(), "Widget", quantity, valueobject.NewMoneyUSDFromFloat(price))
	require.NoError(t, err)
	return item
}

func TestNewOrder(t *testing.T) {
	userID := uuid.New()

	t.Run("computes total from line subtotals", func(t *testing.T) {
		items := []OrderItem{mustItem(t, 10.50, 2), mustItem(t, 4.25, 1)}

		o, err := NewOrder(userID, "1 Main St", "credit_card", items)

		require.NoError(t, err)
		assert.Equal(t, StatusPending, o.Status)
		assert.Equal(t, "25.25", o.TotalAmount.StringFixed(2))
		for _, item := range o.Items {
			assert.Equal(t, o.ID, item.OrderID)
		}
	})

	t.Run("rejects empty order", func(t *testing.T) {
		_, err := NewOrder(userID, "1 Main St", "credit_card", nil)
		assert.Error(t, err)
	})

	t.Run("rejects missing address", func(t *testing.T) {
		_, err := NewOrder(userID, "", "credit_card", []OrderItem{mustItem(t, 1, 1)})
		assert.Error(t, err)
	})
}

func TestNewOrderItem(t *testing.T) {
	price := valueobject.NewMoneyUSDFromFloat(3.33)

	item, err := NewOrderItem(uuid.New(), "Widget", 3, price)
	require.NoError(t, err)
	assert.Equal(t, "9.99", item.Subtotal.StringFixed(2))

	_, err = NewOrderItem(uuid.New(), "Widget", 0, price)
	assert.Error(t, err)
}

func TestStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusPending, StatusDelivered, false},
		{StatusProcessing, StatusShipped, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusProcessing, StatusDelivered, false},
		{StatusProcessing, StatusPending, false},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, false},
		{StatusDelivered, StatusCancelled, false},
		{StatusCancelled, StatusPending, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusDelivered.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusProcessing.IsTerminal())
	assert.False(t, StatusShipped.IsTerminal())
}

func TestOrder_TransitionTo(t *testing.T) {
	o, err := NewOrder(uuid.New(), "1 Main St", "paypal", []OrderItem{mustItem(t, 5, 1)})
	require.NoError(t, err)

	require.NoError(t, o.TransitionTo(StatusProcessing))
	require.NoError(t, o.TransitionTo(StatusShipped))
	require.NoError(t, o.TransitionTo(StatusDelivered))

	err = o.TransitionTo(StatusCancelled)
	assert.Error(t, err, "delivered orders cannot be cancelled")
	assert.Equal(t, StatusDelivered, o.Status)
}

func TestOrder_CancellableByOwner(t *testing.T) {
	o, err := NewOrder(uuid.New(), "1 Main St", "paypal", []OrderItem{mustItem(t, 5, 1)})
	require.NoError(t, err)

	assert.True(t, o.CancellableByOwner())

	require.NoError(t, o.TransitionTo(StatusProcessing))
	assert.False(t, o.CancellableByOwner(), "owners cannot cancel once fulfillment starts")
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("Shipped")
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, s)

	_, err = ParseStatus("shipped")
	assert.Error(t, err, "status values are case sensitive")
}
