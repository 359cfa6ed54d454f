// Package currency is the single conversion and formatting entry point.
// Exactly one rate table exists in the system; no other component may carry
// a parallel rate constant.
package currency

import (
	"fmt"
	"math"
	"strings"

	money "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/mfletcher/nestegg/internal/common"
	"github.com/mfletcher/nestegg/internal/models"
)

// Converter applies a static rate table relative to a base currency. It is
// immutable after construction; tests substitute arbitrary tables.
type Converter struct {
	base   string
	rates  map[string]float64
	logger *common.Logger
}

// NewConverter builds a Converter from the currency configuration.
func NewConverter(cfg common.CurrencyConfig, logger *common.Logger) *Converter {
	rates := make(map[string]float64, len(cfg.Rates))
	for code, rate := range cfg.Rates {
		rates[strings.ToUpper(code)] = rate
	}
	return &Converter{
		base:   strings.ToUpper(cfg.Base),
		rates:  rates,
		logger: logger,
	}
}

// Base returns the base currency code.
func (c *Converter) Base() string {
	return c.base
}

// Convert converts a base-currency amount into the target currency and
// rounds to the nearest integer unit before returning. The rounding here is
// load-bearing: rounding at display time instead lets unrounded
// intermediates leak into later arithmetic, which historically inflated
// high-rate currencies by orders of magnitude. Callers must not re-round or
// re-scale a value that has passed through here.
func (c *Converter) Convert(amount float64, target string) (float64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return 0, fmt.Errorf("%w: amount is not a finite number", models.ErrInvalidInput)
	}
	if amount < 0 {
		return 0, fmt.Errorf("%w: amount is negative", models.ErrInvalidInput)
	}

	target = strings.ToUpper(strings.TrimSpace(target))

	// Base-currency passthrough still rounds to the integer unit.
	if target == c.base {
		v, _ := decimal.NewFromFloat(amount).Round(0).Float64()
		return v, nil
	}

	rate, ok := c.rates[target]
	if !ok {
		return 0, fmt.Errorf("%w: %q not in rate table", models.ErrUnsupportedCurrency, target)
	}

	converted := decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(rate)).
		Round(0)
	v, _ := converted.Float64()
	return v, nil
}

// Format renders an amount with the currency's symbol and thousands
// separators. Unknown currency codes fall back to the base currency's
// symbol with a logged warning; formatting never fails.
func (c *Converter) Format(amount float64, code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))

	cur := money.GetCurrency(code)
	if cur == nil {
		c.logger.Warn().Str("currency", code).Str("fallback", c.base).Msg("Unknown currency code, formatting as base")
		code = c.base
		cur = money.GetCurrency(code)
	}
	if cur == nil {
		// Base itself unknown to go-money; bare fixed-point fallback.
		return fmt.Sprintf("%.2f %s", amount, code)
	}

	minor := decimal.NewFromFloat(amount).Shift(int32(cur.Fraction)).Round(0)
	return money.New(minor.IntPart(), code).Display()
}
