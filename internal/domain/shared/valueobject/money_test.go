package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with amount and currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(19.99), USD)
		require.NoError(t, err)
		assert.Equal(t, USD, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(19.99)))
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(1), "")
		assert.Error(t, err)
	})
}

func TestMoneyConstructors(t *testing.T) {
	t.Run("NewMoneyUSD", func(t *testing.T) {
		m := NewMoneyUSD(decimal.NewFromInt(5))
		assert.Equal(t, USD, m.Currency())
		assert.True(t, m.Amount().Equal(decimal.NewFromInt(5)))
	})

	t.Run("NewMoneyUSDFromFloat", func(t *testing.T) {
		m := NewMoneyUSDFromFloat(12.34)
		assert.Equal(t, "12.34 USD", m.String())
	})

	t.Run("NewMoneyUSDFromString", func(t *testing.T) {
		m, err := NewMoneyUSDFromString("99.95")
		require.NoError(t, err)
		assert.Equal(t, "99.95", m.StringFixed(2))
	})

	t.Run("NewMoneyUSDFromString rejects garbage", func(t *testing.T) {
		_, err := NewMoneyUSDFromString("free")
		assert.Error(t, err)
	})

	t.Run("zero values", func(t *testing.T) {
		assert.True(t, ZeroUSD().IsZero())
		assert.Equal(t, EUR, Zero(EUR).Currency())
	})
}

func TestMoneyPredicates(t *testing.T) {
	assert.True(t, NewMoneyUSDFromFloat(0).IsZero())
	assert.True(t, NewMoneyUSDFromFloat(1.50).IsPositive())
	assert.True(t, NewMoneyUSDFromFloat(-1.50).IsNegative())
	assert.False(t, NewMoneyUSDFromFloat(-1.50).IsPositive())
}

func TestMoneyAdd(t *testing.T) {
	t.Run("adds amounts in the same currency", func(t *testing.T) {
		a := NewMoneyUSDFromFloat(10.50)
		b := NewMoneyUSDFromFloat(4.25)

		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.Equal(t, "14.75 USD", sum.String())
	})

	t.Run("does not mutate operands", func(t *testing.T) {
		a := NewMoneyUSDFromFloat(10)
		_, err := a.Add(NewMoneyUSDFromFloat(5))
		require.NoError(t, err)
		assert.Equal(t, "10.00 USD", a.String())
	})

	t.Run("rejects mixed currencies", func(t *testing.T) {
		usd := NewMoneyUSD(decimal.NewFromInt(1))
		eur, err := NewMoney(decimal.NewFromInt(1), EUR)
		require.NoError(t, err)

		_, err = usd.Add(eur)
		assert.Error(t, err)
	})

	t.Run("MustAdd panics on mixed currencies", func(t *testing.T) {
		usd := NewMoneyUSD(decimal.NewFromInt(1))
		gbp, err := NewMoney(decimal.NewFromInt(1), GBP)
		require.NoError(t, err)

		assert.Panics(t, func() {
			usd.MustAdd(gbp)
		})
	})
}

func TestMoneyMultiplyByInt(t *testing.T) {
	// Line subtotal arithmetic: unit price times quantity.
	unitPrice := NewMoneyUSDFromFloat(19.99)
	subtotal := unitPrice.MultiplyByInt(3)

	assert.Equal(t, "59.97 USD", subtotal.String())
	assert.Equal(t, "19.99 USD", unitPrice.String())

	assert.True(t, NewMoneyUSDFromFloat(5).MultiplyByInt(0).IsZero())
}

func TestMoneyComparison(t *testing.T) {
	t.Run("Equals", func(t *testing.T) {
		a := NewMoneyUSDFromFloat(7.50)
		b, err := NewMoneyUSDFromString("7.5")
		require.NoError(t, err)
		assert.True(t, a.Equals(b))

		eur, err := NewMoney(decimal.NewFromFloat(7.50), EUR)
		require.NoError(t, err)
		assert.False(t, a.Equals(eur))
	})

	t.Run("LessThan", func(t *testing.T) {
		less, err := NewMoneyUSDFromFloat(1).LessThan(NewMoneyUSDFromFloat(2))
		require.NoError(t, err)
		assert.True(t, less)

		less, err = NewMoneyUSDFromFloat(2).LessThan(NewMoneyUSDFromFloat(2))
		require.NoError(t, err)
		assert.False(t, less)
	})

	t.Run("LessThan rejects mixed currencies", func(t *testing.T) {
		eur, err := NewMoney(decimal.NewFromInt(1), EUR)
		require.NoError(t, err)

		_, err = NewMoneyUSDFromFloat(1).LessThan(eur)
		assert.Error(t, err)
	})
}

func TestMoneyJSON(t *testing.T) {
	t.Run("marshals amount and currency", func(t *testing.T) {
		m := NewMoneyUSDFromFloat(29.99)

		data, err := json.Marshal(m)
		require.NoError(t, err)
		assert.JSONEq(t, `{"amount":"29.99","currency":"USD"}`, string(data))
	})

	t.Run("unmarshals into equal value", func(t *testing.T) {
		var m Money
		require.NoError(t, json.Unmarshal([]byte(`{"amount":"29.99","currency":"USD"}`), &m))
		assert.True(t, m.Equals(NewMoneyUSDFromFloat(29.99)))
	})

	t.Run("rejects non-numeric amount", func(t *testing.T) {
		var m Money
		err := json.Unmarshal([]byte(`{"amount":"lots","currency":"USD"}`), &m)
		assert.Error(t, err)
	})
}

func TestMoneyDatabaseRoundTrip(t *testing.T) {
	t.Run("Value stores the amount as a string", func(t *testing.T) {
		v, err := NewMoneyUSDFromFloat(42.10).Value()
		require.NoError(t, err)
		assert.Equal(t, "42.1", v)
	})

	t.Run("Scan accepts string, bytes and float", func(t *testing.T) {
		for _, raw := range []any{"15.25", []byte("15.25"), 15.25} {
			var m Money
			require.NoError(t, m.Scan(raw))
			assert.True(t, m.Equals(NewMoneyUSDFromFloat(15.25)))
		}
	})

	t.Run("Scan nil yields zero in the default currency", func(t *testing.T) {
		var m Money
		require.NoError(t, m.Scan(nil))
		assert.True(t, m.IsZero())
		assert.Equal(t, DefaultCurrency, m.Currency())
	})

	t.Run("Scan rejects unsupported types", func(t *testing.T) {
		var m Money
		assert.Error(t, m.Scan(42))
	})

	t.Run("Scan rejects non-numeric strings", func(t *testing.T) {
		var m Money
		assert.Error(t, m.Scan("not-a-number"))
	})
}

func TestMoneyFloat64(t *testing.T) {
	assert.InDelta(t, 3.14, NewMoneyUSDFromFloat(3.14).Float64(), 0.0001)
}
