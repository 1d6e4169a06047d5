package domain

import "errors"

// Errors returned by the catalog, cart and pricing packages. Call sites wrap
// them with the offending product ID or quantity, so match with errors.Is.
var (
	ErrDuplicateProduct   = errors.New("product already registered")
	ErrInvalidPrice       = errors.New("invalid unit price")
	ErrInvalidProductID   = errors.New("invalid product ID")
	ErrInvalidProductName = errors.New("invalid product name")
	ErrUnknownProduct     = errors.New("product not found in catalog")

	ErrItemNotFound      = errors.New("item not found in cart")
	ErrInvalidQuantity   = errors.New("invalid quantity")
	ErrQuantityOverflow  = errors.New("quantity exceeds the per-item limit")
	ErrInvalidCustomerID = errors.New("invalid customer ID format")

	ErrTotalOverflow          = errors.New("order total overflows")
	ErrInvalidDiscount        = errors.New("invalid discount")
	ErrDiscountNotApplicable  = errors.New("discount does not apply to this cart")
	ErrDiscountAlreadyApplied = errors.New("discount already applied")
)
