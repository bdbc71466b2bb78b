package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArithmetic_MixedOperands(t *testing.T) {
	assert.Equal(t, "0.3", Add(0.1, "0.2").String())
	assert.Equal(t, "7.5", Sub(decimal.NewFromInt(10), 2.5).String())
	assert.Equal(t, "12.5", Mul("2.5", 5).String())
	assert.Equal(t, 1, Cmp(3, "2.99"))
	assert.Equal(t, 0, Cmp(decimal.RequireFromString("1.50"), 1.5))
	assert.Equal(t, -1, Cmp(-1, 0))
}

func TestDiv(t *testing.T) {
	q, err := Div(10, 4)
	require.NoError(t, err)
	assert.Equal(t, "2.5", q.String())

	_, err = Div(10, 0)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	assert.Panics(t, func() { MustDiv(1, decimal.Zero) })
}

func TestFrom_RejectsGarbage(t *testing.T) {
	_, err := From("12abc")
	assert.Error(t, err)

	_, err = From(nil)
	assert.Error(t, err)

	_, err = From(struct{}{})
	assert.Error(t, err)
}

func TestRound2_AndLossyConversion(t *testing.T) {
	total := Sum(
		decimal.RequireFromString("0.005"),
		decimal.RequireFromString("0.005"),
		decimal.RequireFromString("0.005"),
	)
	// Accumulated before rounding: 0.015 -> 0.02, not 3 x round(0.005).
	assert.Equal(t, "0.02", Round2(total).String())
	assert.Equal(t, 420.0, ToFloatLossy(decimal.RequireFromString("420.00")))
	assert.Nil(t, ToFloatLossyPtr(nil))
}

func TestMin(t *testing.T) {
	assert.True(t, Min(decimal.NewFromInt(100), decimal.NewFromInt(250)).Equal(decimal.NewFromInt(100)))
}
