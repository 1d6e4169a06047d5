package pricing

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/fjod/go_cart/securecart/internal/domain"
	"github.com/fjod/go_cart/securecart/internal/money"
)

type DiscountKind string

const (
	Percentage DiscountKind = "percentage"
	Fixed      DiscountKind = "fixed"
)

func (k DiscountKind) String() string {
	return string(k)
}

// Discount is a single coupon. Value is a percentage (0-100) for Percentage
// and an amount in cents for Fixed. When ProductID is set the discount only
// applies to that product's line; MinSubtotal is a cart-wide threshold.
type Discount struct {
	Code        string
	Kind        DiscountKind
	Value       int64
	ProductID   string
	MinSubtotal money.Cents
}

func (d Discount) Validate() error {
	if strings.TrimSpace(d.Code) == "" {
		return fmt.Errorf("%w: coupon code is required", domain.ErrInvalidDiscount)
	}
	switch d.Kind {
	case Percentage:
		if d.Value < 0 || d.Value > 100 {
			return fmt.Errorf("%w: percentage must be 0-100, got %d", domain.ErrInvalidDiscount, d.Value)
		}
	case Fixed:
		if d.Value < 0 {
			return fmt.Errorf("%w: fixed discount cannot be negative, got %d", domain.ErrInvalidDiscount, d.Value)
		}
	default:
		return fmt.Errorf("%w: unknown discount type %q", domain.ErrInvalidDiscount, d.Kind)
	}
	if d.MinSubtotal < 0 {
		return fmt.Errorf("%w: minimum subtotal cannot be negative", domain.ErrInvalidDiscount)
	}
	return nil
}

// ParseDiscount reads "percentage:10" or "fixed:5.00".
func ParseDiscount(code, s string) (Discount, error) {
	kind, value, ok := strings.Cut(s, ":")
	if !ok {
		return Discount{}, fmt.Errorf("%w: %q is not <type>:<value>", domain.ErrInvalidDiscount, s)
	}

	d := Discount{Code: code, Kind: DiscountKind(kind)}
	switch d.Kind {
	case Percentage:
		pct, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return Discount{}, fmt.Errorf("%w: bad percentage %q", domain.ErrInvalidDiscount, value)
		}
		d.Value = pct
	case Fixed:
		amount, err := money.Parse(value)
		if err != nil {
			return Discount{}, fmt.Errorf("%w: %v", domain.ErrInvalidDiscount, err)
		}
		d.Value = int64(amount)
	}
	if err := d.Validate(); err != nil {
		return Discount{}, err
	}
	return d, nil
}

// ApplyDiscount returns a copy of q with d applied. A quote takes at most one
// discount, the discount never exceeds its base, and the total floors at zero.
func ApplyDiscount(q Quote, d Discount) (Quote, error) {
	if q.DiscountCode != "" {
		return Quote{}, fmt.Errorf("%w: %q", domain.ErrDiscountAlreadyApplied, q.DiscountCode)
	}
	if err := d.Validate(); err != nil {
		return Quote{}, err
	}
	if q.Subtotal < d.MinSubtotal {
		return Quote{}, fmt.Errorf("%w: subtotal %s is below %s", domain.ErrDiscountNotApplicable, q.Subtotal, d.MinSubtotal)
	}

	base := q.Subtotal
	if d.ProductID != "" {
		i := slices.IndexFunc(q.Lines, func(l Line) bool { return l.ProductID == d.ProductID })
		if i < 0 {
			return Quote{}, fmt.Errorf("%w: %q is not in the cart", domain.ErrDiscountNotApplicable, d.ProductID)
		}
		base = q.Lines[i].Subtotal
	}

	var amount money.Cents
	switch d.Kind {
	case Percentage:
		amount = base.Percent(d.Value)
	case Fixed:
		amount = min(money.Cents(d.Value), base)
	}

	out := q
	out.Lines = slices.Clone(q.Lines)
	out.DiscountCode = d.Code
	out.Discount = amount
	out.Total = max(q.Total-amount, 0)
	return out, nil
}
