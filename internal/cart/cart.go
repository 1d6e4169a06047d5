// Package cart holds a customer's line items. A cart stores product IDs and
// quantities only; it never stores or accepts a price.
package cart

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/fjod/go_cart/securecart/internal/config"
	"github.com/fjod/go_cart/securecart/internal/domain"
	"github.com/fjod/go_cart/securecart/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Three letters, five digits, two letters, then -A or -Q.
var customerIDPattern = regexp.MustCompile(`^\p{L}{3}\d{5}\p{L}{2}-[AQ]$`)

// Catalog is what a cart needs to verify a product exists.
type Catalog interface {
	Lookup(productID string) (domain.Product, error)
}

// Cart is a per-session collection of line items keyed by product ID.
// Every failed operation leaves the cart exactly as it was. A Cart is not
// safe for concurrent use.
type Cart struct {
	id          uuid.UUID
	customerID  string
	items       map[string]int // productID -> quantity, always 1..maxQuantity
	maxQuantity int
	log         *zap.Logger
}

type Option func(*Cart)

// WithLimits sets the per-item quantity cap. Limits should already be validated.
func WithLimits(l config.Limits) Option {
	return func(c *Cart) {
		c.maxQuantity = l.MaxQuantityPerItem
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Cart) {
		c.log = logger.OrNop(l)
	}
}

// New creates an empty cart for customerID.
func New(customerID string, opts ...Option) (*Cart, error) {
	if !customerIDPattern.MatchString(customerID) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCustomerID, customerID)
	}

	c := &Cart{
		id:          uuid.New(),
		customerID:  customerID,
		items:       make(map[string]int),
		maxQuantity: config.DefaultMaxQuantityPerItem,
		log:         zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.With(zap.String("cart_id", c.id.String()))
	return c, nil
}

func (c *Cart) ID() uuid.UUID {
	return c.id
}

func (c *Cart) CustomerID() string {
	return c.customerID
}

func (c *Cart) MaxQuantityPerItem() int {
	return c.maxQuantity
}

// AddItem adds quantity units of a product the catalog knows about. Adding a
// product already in the cart increases its quantity up to the per-item cap.
func (c *Cart) AddItem(catalog Catalog, productID string, quantity int) error {
	if quantity <= 0 {
		return c.reject("add", productID, quantity,
			fmt.Errorf("%w: quantity for %q must be between 1 and %d, got %d", domain.ErrInvalidQuantity, productID, c.maxQuantity, quantity))
	}
	if quantity > c.maxQuantity {
		return c.reject("add", productID, quantity,
			fmt.Errorf("%w: %d of %q exceeds the limit of %d", domain.ErrQuantityOverflow, quantity, productID, c.maxQuantity))
	}
	if catalog == nil {
		return c.reject("add", productID, quantity,
			fmt.Errorf("%w: no catalog to verify %q against", domain.ErrUnknownProduct, productID))
	}
	if _, err := catalog.Lookup(productID); err != nil {
		return c.reject("add", productID, quantity, err)
	}

	current := c.items[productID]
	if quantity > c.maxQuantity-current {
		return c.reject("add", productID, quantity,
			fmt.Errorf("%w: adding %d of %q to %d exceeds the limit of %d", domain.ErrQuantityOverflow, quantity, productID, current, c.maxQuantity))
	}

	c.items[productID] = current + quantity
	c.log.Debug("item added",
		zap.String("product_id", productID),
		zap.Int("quantity", quantity),
		zap.Int("new_quantity", current+quantity))
	return nil
}

// RemoveItem deletes the whole line for productID.
func (c *Cart) RemoveItem(productID string) error {
	if _, ok := c.items[productID]; !ok {
		return c.reject("remove", productID, 0,
			fmt.Errorf("%w: %q", domain.ErrItemNotFound, productID))
	}

	delete(c.items, productID)
	c.log.Debug("item removed", zap.String("product_id", productID))
	return nil
}

// SetQuantity replaces the quantity of an item already in the cart.
// Zero removes the item.
func (c *Cart) SetQuantity(productID string, quantity int) error {
	if quantity < 0 {
		return c.reject("set quantity", productID, quantity,
			fmt.Errorf("%w: quantity for %q must not be negative, got %d", domain.ErrInvalidQuantity, productID, quantity))
	}
	if quantity == 0 {
		return c.RemoveItem(productID)
	}
	if _, ok := c.items[productID]; !ok {
		return c.reject("set quantity", productID, quantity,
			fmt.Errorf("%w: %q", domain.ErrItemNotFound, productID))
	}
	if quantity > c.maxQuantity {
		return c.reject("set quantity", productID, quantity,
			fmt.Errorf("%w: %d of %q exceeds the limit of %d", domain.ErrQuantityOverflow, quantity, productID, c.maxQuantity))
	}

	c.items[productID] = quantity
	c.log.Debug("quantity updated",
		zap.String("product_id", productID),
		zap.Int("quantity", quantity))
	return nil
}

// Items returns a snapshot of the cart sorted by product ID. Later changes
// to the cart do not affect a snapshot already taken, and vice versa.
func (c *Cart) Items() []domain.LineItem {
	out := make([]domain.LineItem, 0, len(c.items))
	for id, q := range c.items {
		out = append(out, domain.LineItem{ProductID: id, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}

// Quantity returns the quantity held for productID, or 0.
func (c *Cart) Quantity(productID string) int {
	return c.items[productID]
}

// Len returns the number of distinct products in the cart.
func (c *Cart) Len() int {
	return len(c.items)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = make(map[string]int)
	c.log.Debug("cart cleared")
}

func (c *Cart) reject(op, productID string, quantity int, err error) error {
	c.log.Warn(op+" rejected",
		zap.String("product_id", productID),
		zap.Int("quantity", quantity),
		zap.Error(err))
	return err
}
