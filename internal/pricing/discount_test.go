package pricing

import (
	"testing"

	"github.com/fjod/go_cart/securecart/internal/domain"
	"github.com/fjod/go_cart/securecart/internal/money"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quote750() Quote {
	return Quote{
		Lines: []Line{
			{ProductID: "apple", Name: "Apple", Quantity: 3, UnitPrice: 150, Subtotal: 450},
			{ProductID: "bread", Name: "Bread", Quantity: 1, UnitPrice: 300, Subtotal: 300},
		},
		Subtotal: 750,
		Total:    750,
		Currency: "USD",
	}
}

func TestApplyDiscount(t *testing.T) {
	tests := []struct {
		name         string
		discount     Discount
		wantDiscount money.Cents
		wantTotal    money.Cents
	}{
		{"percentage", Discount{Code: "TEN", Kind: Percentage, Value: 10}, 75, 675},
		{"percentage rounds down", Discount{Code: "THIRD", Kind: Percentage, Value: 33}, 247, 503},
		{"full percentage", Discount{Code: "FREE", Kind: Percentage, Value: 100}, 750, 0},
		{"fixed", Discount{Code: "FIVE", Kind: Fixed, Value: 500}, 500, 250},
		{"fixed above total floors at zero", Discount{Code: "BIG", Kind: Fixed, Value: 10_000}, 750, 0},
		{"product scoped percentage", Discount{Code: "APPLES", Kind: Percentage, Value: 50, ProductID: "apple"}, 225, 525},
		{"product scoped fixed capped at line", Discount{Code: "BREAD", Kind: Fixed, Value: 1000, ProductID: "bread"}, 300, 450},
		{"min subtotal met", Discount{Code: "SPEND", Kind: Fixed, Value: 100, MinSubtotal: 750}, 100, 650},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyDiscount(quote750(), tt.discount)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDiscount, got.Discount)
			assert.Equal(t, tt.wantTotal, got.Total)
			assert.Equal(t, money.Cents(750), got.Subtotal)
			assert.Equal(t, tt.discount.Code, got.DiscountCode)
		})
	}
}

func TestApplyDiscount_OnlyOnce(t *testing.T) {
	d := Discount{Code: "TEN", Kind: Percentage, Value: 10}
	once, err := ApplyDiscount(quote750(), d)
	require.NoError(t, err)

	_, err = ApplyDiscount(once, d)
	assert.ErrorIs(t, err, domain.ErrDiscountAlreadyApplied)

	_, err = ApplyDiscount(once, Discount{Code: "OTHER", Kind: Fixed, Value: 1})
	assert.ErrorIs(t, err, domain.ErrDiscountAlreadyApplied)
}

func TestApplyDiscount_DoesNotModifyInput(t *testing.T) {
	in := quote750()
	out, err := ApplyDiscount(in, Discount{Code: "TEN", Kind: Percentage, Value: 10})
	require.NoError(t, err)

	out.Lines[0].Subtotal = 0
	assert.Equal(t, quote750(), in)
}

func TestApplyDiscount_NotApplicable(t *testing.T) {
	_, err := ApplyDiscount(quote750(), Discount{Code: "MILK", Kind: Fixed, Value: 50, ProductID: "milk"})
	assert.ErrorIs(t, err, domain.ErrDiscountNotApplicable)

	_, err = ApplyDiscount(quote750(), Discount{Code: "SPEND", Kind: Fixed, Value: 50, MinSubtotal: 751})
	assert.ErrorIs(t, err, domain.ErrDiscountNotApplicable)
}

func TestDiscount_Validate(t *testing.T) {
	invalid := []Discount{
		{Code: "", Kind: Fixed, Value: 1},
		{Code: "X", Kind: Percentage, Value: -1},
		{Code: "X", Kind: Percentage, Value: 101},
		{Code: "X", Kind: Fixed, Value: -5},
		{Code: "X", Kind: "bogo", Value: 1},
		{Code: "X", Kind: Fixed, Value: 1, MinSubtotal: -1},
	}
	for _, d := range invalid {
		assert.ErrorIs(t, d.Validate(), domain.ErrInvalidDiscount, "%+v", d)
		_, err := ApplyDiscount(quote750(), d)
		assert.ErrorIs(t, err, domain.ErrInvalidDiscount, "%+v", d)
	}
}

func TestParseDiscount(t *testing.T) {
	d, err := ParseDiscount("TEN", "percentage:10")
	require.NoError(t, err)
	assert.Equal(t, Discount{Code: "TEN", Kind: Percentage, Value: 10}, d)

	d, err = ParseDiscount("FIVE", "fixed:5.00")
	require.NoError(t, err)
	assert.Equal(t, Discount{Code: "FIVE", Kind: Fixed, Value: 500}, d)

	for _, s := range []string{"percentage", "percentage:ten", "fixed:1.001", "bogo:1", "percentage:150"} {
		_, err := ParseDiscount("X", s)
		assert.ErrorIs(t, err, domain.ErrInvalidDiscount, s)
	}
}
