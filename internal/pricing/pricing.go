// Package pricing derives totals from cart contents and the current catalog.
// Nothing here mutates a cart or a catalog.
package pricing

import (
	"errors"
	"fmt"

	"github.com/fjod/go_cart/securecart/internal/config"
	"github.com/fjod/go_cart/securecart/internal/domain"
	"github.com/fjod/go_cart/securecart/internal/money"
)

// Catalog is the price source.
type Catalog interface {
	Lookup(productID string) (domain.Product, error)
}

// LineItems is anything that can produce a snapshot of line items, such as *cart.Cart.
type LineItems interface {
	Items() []domain.LineItem
}

// Line is one priced cart line, with the unit price read from the catalog.
type Line struct {
	ProductID string
	Name      string
	Quantity  int
	UnitPrice money.Cents
	Subtotal  money.Cents
}

// Quote is the priced state of a cart at the time it was computed.
type Quote struct {
	Lines        []Line
	Subtotal     money.Cents
	DiscountCode string
	Discount     money.Cents
	Total        money.Cents
	Currency     string
}

// ComputeTotal prices every line against the catalog and returns the sum.
func ComputeTotal(cart LineItems, catalog Catalog) (money.Cents, error) {
	q, err := BuildQuote(cart, catalog, config.DefaultCurrency)
	if err != nil {
		return 0, err
	}
	return q.Total, nil
}

// BuildQuote prices the cart line by line. A product that has left the
// catalog since it was added is reported, not skipped.
func BuildQuote(cart LineItems, catalog Catalog, currency string) (Quote, error) {
	items := cart.Items()
	q := Quote{
		Lines:    make([]Line, 0, len(items)),
		Currency: currency,
	}

	var total money.Cents
	for _, item := range items {
		if item.Quantity <= 0 {
			return Quote{}, fmt.Errorf("%w: %d of %q", domain.ErrInvalidQuantity, item.Quantity, item.ProductID)
		}

		product, err := catalog.Lookup(item.ProductID)
		if err != nil {
			return Quote{}, fmt.Errorf("failed to price %q: %w", item.ProductID, err)
		}

		subtotal, err := product.UnitPrice.Mul(item.Quantity)
		if err != nil {
			return Quote{}, overflow(item.ProductID, err)
		}
		total, err = total.Add(subtotal)
		if err != nil {
			return Quote{}, overflow(item.ProductID, err)
		}

		q.Lines = append(q.Lines, Line{
			ProductID: item.ProductID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			UnitPrice: product.UnitPrice,
			Subtotal:  subtotal,
		})
	}

	q.Subtotal = total
	q.Total = total
	return q, nil
}

func overflow(productID string, err error) error {
	if errors.Is(err, money.ErrOverflow) {
		return fmt.Errorf("%w: at %q: %v", domain.ErrTotalOverflow, productID, err)
	}
	return err
}
