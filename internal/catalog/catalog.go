// Package catalog is the authoritative registry of products and prices.
// Carts and pricing only ever learn a price by looking it up here.
package catalog

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/fjod/go_cart/securecart/internal/config"
	"github.com/fjod/go_cart/securecart/internal/domain"
	"github.com/fjod/go_cart/securecart/internal/money"
	"github.com/fjod/go_cart/securecart/pkg/logger"
	"go.uber.org/zap"
)

const (
	MinProductNameLength = 3
	MaxProductNameLength = 20
)

// Letters of any script and spaces.
var productNamePattern = regexp.MustCompile(fmt.Sprintf(`^[\p{L} ]{%d,%d}$`, MinProductNameLength, MaxProductNameLength))

// Catalog maps product IDs to immutable products. It is not safe for
// concurrent use; callers that share one must serialise access.
type Catalog struct {
	products map[string]domain.Product
	limits   config.Limits
	log      *zap.Logger
}

type Option func(*Catalog)

// WithLimits sets the unit price ceiling. Limits should already be validated.
func WithLimits(l config.Limits) Option {
	return func(c *Catalog) {
		c.limits = l
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Catalog) {
		c.log = logger.OrNop(l)
	}
}

// New returns an empty catalog.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		products: make(map[string]domain.Product),
		limits:   config.DefaultLimits(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register inserts a new product. An existing ID is never overwritten.
func (c *Catalog) Register(p domain.Product) error {
	if err := c.validate(p); err != nil {
		c.log.Warn("product rejected", zap.String("product_id", p.ID), zap.Error(err))
		return err
	}
	if _, exists := c.products[p.ID]; exists {
		c.log.Warn("duplicate product rejected", zap.String("product_id", p.ID))
		return fmt.Errorf("%w: %q", domain.ErrDuplicateProduct, p.ID)
	}

	c.products[p.ID] = p
	c.log.Debug("product registered",
		zap.String("product_id", p.ID),
		zap.String("unit_price", p.UnitPrice.String()))
	return nil
}

func (c *Catalog) validate(p domain.Product) error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("%w: product ID is required", domain.ErrInvalidProductID)
	}
	if !productNamePattern.MatchString(p.Name) {
		return fmt.Errorf("%w: %q must be %d-%d characters long and contain only letters and spaces",
			domain.ErrInvalidProductName, p.Name, MinProductNameLength, MaxProductNameLength)
	}
	if p.UnitPrice < 0 {
		return fmt.Errorf("%w: %s is negative", domain.ErrInvalidPrice, p.UnitPrice)
	}
	if p.UnitPrice > c.limits.MaxUnitPrice {
		return fmt.Errorf("%w: %s exceeds the limit of %s", domain.ErrInvalidPrice, p.UnitPrice, c.limits.MaxUnitPrice)
	}
	return nil
}

// Lookup returns a copy of the product registered under id.
func (c *Catalog) Lookup(id string) (domain.Product, error) {
	p, ok := c.products[id]
	if !ok {
		return domain.Product{}, fmt.Errorf("%w: %q", domain.ErrUnknownProduct, id)
	}
	return p, nil
}

func (c *Catalog) Has(id string) bool {
	_, ok := c.products[id]
	return ok
}

// Remove deletes a product so it can be registered again with a new price.
// Carts still holding the ID will fail to price until it is re-registered.
func (c *Catalog) Remove(id string) error {
	if _, ok := c.products[id]; !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownProduct, id)
	}
	delete(c.products, id)
	c.log.Debug("product removed", zap.String("product_id", id))
	return nil
}

// Products returns all products sorted by ID.
func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (c *Catalog) Len() int {
	return len(c.products)
}

var defaultProducts = []struct {
	name  string
	price string
}{
	{"Laptop", "999.99"},
	{"Mouse", "25.99"},
	{"Keyboard", "49.99"},
	{"Monitor", "199.99"},
	{"Headphones", "89.99"},
}

// NewDefault returns a catalog seeded with the demo products, keyed by name.
func NewDefault(opts ...Option) (*Catalog, error) {
	c := New(opts...)
	for _, d := range defaultProducts {
		err := c.Register(domain.Product{
			ID:        d.name,
			Name:      d.name,
			UnitPrice: money.MustParse(d.price),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to seed default catalog: %w", err)
		}
	}
	return c, nil
}
