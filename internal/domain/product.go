package domain

import "github.com/fjod/go_cart/securecart/internal/money"

// Product is a catalog entry. It is a value: the catalog hands out copies,
// so nothing outside the catalog can change a registered price.
type Product struct {
	ID        string
	Name      string
	UnitPrice money.Cents
}
