// Package money holds prices as integer minor currency units. Decimal strings
// are converted through shopspring/decimal so no float ever touches a price.
package money

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Cents is an amount in minor currency units (1/100 of the major unit).
type Cents int64

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrOverflow      = errors.New("amount overflows int64 minor units")
)

var (
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
	hundred  = decimal.NewFromInt(100)
)

// Parse reads a decimal major-unit string such as "999.99" or "25".
// More than two fractional digits is rejected rather than rounded.
func Parse(s string) (Cents, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}

	minor := d.Shift(2)
	if !minor.IsInteger() {
		return 0, fmt.Errorf("%w: %q has sub-cent precision", ErrInvalidAmount, s)
	}
	if minor.GreaterThan(maxCents) || minor.LessThan(minCents) {
		return 0, fmt.Errorf("%w: %q", ErrOverflow, s)
	}
	return Cents(minor.IntPart()), nil
}

// MustParse is Parse for compile-time constants; it panics on bad input.
func MustParse(s string) Cents {
	c, err := Parse(s)
	if err != nil {
		panic(fmt.Sprintf("money: %v", err))
	}
	return c
}

// Decimal returns the amount in major units.
func (c Cents) Decimal() decimal.Decimal {
	return decimal.New(int64(c), -2)
}

func (c Cents) String() string {
	return c.Decimal().StringFixed(2)
}

// Format renders the amount with a currency code, e.g. "USD 1025.98".
func (c Cents) Format(currency string) string {
	return currency + " " + c.String()
}

// Decode implements envconfig.Decoder.
func (c *Cents) Decode(value string) error {
	v, err := Parse(value)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Mul returns c*n or ErrOverflow.
func (c Cents) Mul(n int) (Cents, error) {
	a, b := int64(c), int64(n)
	if a == 0 || b == 0 {
		return 0, nil
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, fmt.Errorf("%w: %d * %d", ErrOverflow, a, b)
	}
	r := a * b
	if r/b != a {
		return 0, fmt.Errorf("%w: %d * %d", ErrOverflow, a, b)
	}
	return Cents(r), nil
}

// Add returns c+o or ErrOverflow.
func (c Cents) Add(o Cents) (Cents, error) {
	s := c + o
	if (o > 0 && s < c) || (o < 0 && s > c) {
		return 0, fmt.Errorf("%w: %d + %d", ErrOverflow, c, o)
	}
	return s, nil
}

// Percent returns pct percent of c, rounded down to the cent. pct is
// expected in [0, 100] so the result never exceeds c.
func (c Cents) Percent(pct int64) Cents {
	return Cents(c.Decimal().
		Mul(decimal.NewFromInt(pct)).
		Div(hundred).
		Shift(2).
		Floor().
		IntPart())
}
