// Package config loads cart limits and runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/fjod/go_cart/securecart/internal/money"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "CART"

// Default bounds applied when nothing is configured.
const (
	DefaultMaxQuantityPerItem = 100
	DefaultMaxUnitPrice       = money.Cents(1_000_000) // 10000.00
	DefaultCurrency           = "USD"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Limits bounds what a cart and catalog accept. MaxQuantityPerItem keeps
// price*quantity well inside int64 for any price up to MaxUnitPrice.
type Limits struct {
	MaxQuantityPerItem int         `envconfig:"MAX_QUANTITY_PER_ITEM" default:"100"`
	MaxUnitPrice       money.Cents `envconfig:"MAX_UNIT_PRICE" default:"10000.00"`
}

// Config is the full runtime configuration of the demo command.
type Config struct {
	Limits
	Currency string `envconfig:"CURRENCY" default:"USD"`
	Env      string `envconfig:"ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
}

// DefaultLimits returns the compiled-in limits.
func DefaultLimits() Limits {
	return Limits{
		MaxQuantityPerItem: DefaultMaxQuantityPerItem,
		MaxUnitPrice:       DefaultMaxUnitPrice,
	}
}

func (l Limits) Validate() error {
	if l.MaxQuantityPerItem <= 0 {
		return fmt.Errorf("%w: max quantity per item must be positive, got %d", ErrInvalidConfig, l.MaxQuantityPerItem)
	}
	if l.MaxUnitPrice < 0 {
		return fmt.Errorf("%w: max unit price must not be negative, got %s", ErrInvalidConfig, l.MaxUnitPrice)
	}
	return nil
}

// Load reads the optional env files and then the CART_* environment.
// Missing env files are not an error.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	if err := cfg.Limits.Validate(); err != nil {
		return nil, err
	}
	if cfg.Currency == "" {
		cfg.Currency = DefaultCurrency
	}
	return &cfg, nil
}
