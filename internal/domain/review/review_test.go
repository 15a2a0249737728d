package review

import (
	"testing"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReview(t *testing.T) {
	productID := uuid.New()
	userID := uuid.New()

	t.Run("accepts ratings 1 through 5", func(t *testing.T) {
		for rating := 1; rating <= 5; rating++ {
			r, err := NewReview(productID, userID, rating, "solid")
			require.NoError(t, err)
			assert.Equal(t, rating, r.Rating)
		}
	})

	t.Run("rejects out of range ratings", func(t *testing.T) {
		for _, rating := range []int{0, 6, -1, 100} {
			_, err := NewReview(productID, userID, rating, "")
			assert.ErrorIs(t, err, shared.ErrInvalidRating, "rating %d", rating)
		}
	})

	t.Run("trims comment", func(t *testing.T) {
		r, err := NewReview(productID, userID, 4, "  great  ")
		require.NoError(t, err)
		assert.Equal(t, "great", r.Comment)
	})
}
