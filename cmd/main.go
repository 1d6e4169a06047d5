package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fjod/go_cart/securecart/internal/cart"
	"github.com/fjod/go_cart/securecart/internal/catalog"
	"github.com/fjod/go_cart/securecart/internal/config"
	"github.com/fjod/go_cart/securecart/internal/pricing"
	"github.com/fjod/go_cart/securecart/pkg/logger"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
)

// demoConfig holds the settings that only the demo command needs.
type demoConfig struct {
	CustomerID string `envconfig:"CUSTOMER_ID" default:"abc12345de-A"`
	Coupon     string `envconfig:"COUPON"` // CODE=percentage:10 or CODE=fixed:5.00
}

// Usage: cart Laptop=2 Mouse=1
func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Env, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	var demo demoConfig
	if err := envconfig.Process("CART", &demo); err != nil {
		log.Fatal("Failed to process demo config", zap.Error(err))
	}

	cat, err := catalog.NewDefault(catalog.WithLimits(cfg.Limits), catalog.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to seed catalog", zap.Error(err))
	}

	c, err := cart.New(demo.CustomerID, cart.WithLimits(cfg.Limits), cart.WithLogger(log))
	if err != nil {
		log.Fatal("Failed to create cart", zap.Error(err))
	}
	log.Info("Cart created",
		zap.String("cart_id", c.ID().String()),
		zap.String("customer_id", c.CustomerID()))

	for _, arg := range os.Args[1:] {
		productID, quantity, err := parseItemArg(arg)
		if err != nil {
			log.Fatal("Bad item argument", zap.String("arg", arg), zap.Error(err))
		}
		if err := c.AddItem(cat, productID, quantity); err != nil {
			log.Fatal("Failed to add item", zap.Error(err))
		}
	}

	quote, err := pricing.BuildQuote(c, cat, cfg.Currency)
	if err != nil {
		log.Fatal("Failed to price cart", zap.Error(err))
	}

	if demo.Coupon != "" {
		code, rule, _ := strings.Cut(demo.Coupon, "=")
		d, err := pricing.ParseDiscount(code, rule)
		if err != nil {
			log.Fatal("Bad coupon", zap.Error(err))
		}
		if quote, err = pricing.ApplyDiscount(quote, d); err != nil {
			log.Fatal("Failed to apply coupon", zap.Error(err))
		}
	}

	for _, line := range quote.Lines {
		log.Info("Line",
			zap.String("product_id", line.ProductID),
			zap.Int("quantity", line.Quantity),
			zap.String("unit_price", line.UnitPrice.Format(quote.Currency)),
			zap.String("subtotal", line.Subtotal.Format(quote.Currency)))
	}
	log.Info("Order total",
		zap.String("subtotal", quote.Subtotal.Format(quote.Currency)),
		zap.String("discount", quote.Discount.Format(quote.Currency)),
		zap.String("total", quote.Total.Format(quote.Currency)))
}

// parseItemArg reads "Laptop=2"; a bare product ID means quantity 1.
func parseItemArg(arg string) (string, int, error) {
	productID, qty, found := strings.Cut(arg, "=")
	if !found {
		return productID, 1, nil
	}
	n, err := strconv.Atoi(qty)
	if err != nil {
		return "", 0, fmt.Errorf("quantity %q is not a number", qty)
	}
	return productID, n, nil
}
