package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCart_AddItem(t *testing.T) {
	userID := uuid.New()
	productID := uuid.New()

	t.Run("adds new line", func(t *testing.T) {
		c := NewCart(userID)

		err := c.AddItem(productID, 2)

		require.NoError(t, err)
		require.Len(t, c.Items, 1)
		assert.Equal(t, 2, c.Items[0].Quantity)
		assert.Equal(t, c.ID, c.Items[0].CartID)
	})

	t.Run("merges quantity into existing line", func(t *testing.T) {
		c := NewCart(userID)
		require.NoError(t, c.AddItem(productID, 2))

		err := c.AddItem(productID, 3)

		require.NoError(t, err)
		require.Len(t, c.Items, 1, "same product must not create a second line")
		assert.Equal(t, 5, c.Items[0].Quantity)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		c := NewCart(userID)

		assert.ErrorIs(t, c.AddItem(productID, 0), shared.ErrInvalidQuantity)
		assert.ErrorIs(t, c.AddItem(productID, -1), shared.ErrInvalidQuantity)
		assert.Empty(t, c.Items)
	})
}

func TestCart_MergedQuantity(t *testing.T) {
	c := NewCart(uuid.New())
	productID := uuid.New()

	assert.Equal(t, 4, c.MergedQuantity(productID, 4))

	require.NoError(t, c.AddItem(productID, 2))
	assert.Equal(t, 6, c.MergedQuantity(productID, 4))
}

func TestCart_SetItemQuantity(t *testing.T) {
	productID := uuid.New()

	t.Run("replaces quantity", func(t *testing.T) {
		c := NewCart(uuid.New())
		require.NoError(t, c.AddItem(productID, 2))

		err := c.SetItemQuantity(productID, 7)

		require.NoError(t, err)
		assert.Equal(t, 7, c.Items[0].Quantity)
	})

	t.Run("zero quantity removes the line", func(t *testing.T) {
		c := NewCart(uuid.New())
		require.NoError(t, c.AddItem(productID, 2))

		err := c.SetItemQuantity(productID, 0)

		require.NoError(t, err)
		assert.Empty(t, c.Items)
	})

	t.Run("missing line", func(t *testing.T) {
		c := NewCart(uuid.New())

		err := c.SetItemQuantity(productID, 1)

		assert.ErrorIs(t, err, shared.ErrItemNotFound)
	})
}

func TestCart_RemoveItem(t *testing.T) {
	c := NewCart(uuid.New())
	first := uuid.New()
	second := uuid.New()
	require.NoError(t, c.AddItem(first, 1))
	require.NoError(t, c.AddItem(second, 2))

	assert.True(t, c.RemoveItem(first))
	require.Len(t, c.Items, 1)
	assert.Equal(t, second, c.Items[0].ProductID)

	assert.False(t, c.RemoveItem(first), "removing an absent line reports false")
	assert.Len(t, c.Items, 1)
}

func TestCart_Clear(t *testing.T) {
	c := NewCart(uuid.New())
	require.NoError(t, c.AddItem(uuid.New(), 1))
	require.NoError(t, c.AddItem(uuid.New(), 2))

	c.Clear()

	assert.True(t, c.IsEmpty())
}
