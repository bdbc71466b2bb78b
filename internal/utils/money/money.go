// Package money holds the decimal arithmetic used for every monetary value.
// Values stay decimal end to end; ToFloatLossy is the only way out.
package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrDivisionByZero is returned by Div when the divisor is zero.
var ErrDivisionByZero = errors.New("money: division by zero")

// From converts a native number or numeric string to a decimal.
// Decimals pass through unchanged.
func From(v any) (decimal.Decimal, error) {
	switch x := v.(type) {
	case decimal.Decimal:
		return x, nil
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero, nil
		}
		return *x, nil
	case int:
		return decimal.NewFromInt(int64(x)), nil
	case int32:
		return decimal.NewFromInt32(x), nil
	case int64:
		return decimal.NewFromInt(x), nil
	case float32:
		return decimal.NewFromFloat32(x), nil
	case float64:
		return decimal.NewFromFloat(x), nil
	case string:
		d, err := decimal.NewFromString(x)
		if err != nil {
			return decimal.Zero, fmt.Errorf("money: invalid amount %q: %w", x, err)
		}
		return d, nil
	case nil:
		return decimal.Zero, errors.New("money: nil amount")
	default:
		return decimal.Zero, fmt.Errorf("money: unsupported amount type %T", v)
	}
}

func must(v any) decimal.Decimal {
	d, err := From(v)
	if err != nil {
		panic(err)
	}
	return d
}

// Add returns a + b.
func Add(a, b any) decimal.Decimal { return must(a).Add(must(b)) }

// Sub returns a - b.
func Sub(a, b any) decimal.Decimal { return must(a).Sub(must(b)) }

// Mul returns a * b.
func Mul(a, b any) decimal.Decimal { return must(a).Mul(must(b)) }

// Div returns a / b, failing on a zero divisor instead of producing an infinite value.
func Div(a, b any) (decimal.Decimal, error) {
	divisor := must(b)
	if divisor.IsZero() {
		return decimal.Zero, ErrDivisionByZero
	}
	return must(a).Div(divisor), nil
}

// MustDiv is Div for call sites whose divisor is guarded upstream. It panics on zero.
func MustDiv(a, b any) decimal.Decimal {
	d, err := Div(a, b)
	if err != nil {
		panic(err)
	}
	return d
}

// Cmp returns -1, 0 or 1.
func Cmp(a, b any) int { return must(a).Cmp(must(b)) }

// Sum adds all values.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ToFloatLossy converts to float64 for serialization only. The result must never feed
// back into stored state or further arithmetic.
func ToFloatLossy(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// ToFloatLossyPtr is ToFloatLossy for optional values.
func ToFloatLossyPtr(d *decimal.Decimal) *float64 {
	if d == nil {
		return nil
	}
	f := ToFloatLossy(*d)
	return &f
}

// Min returns the smaller of a and b.
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}
