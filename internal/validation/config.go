package validation

import (
	"os"
	"strconv"
	"strings"
)

const (
	defaultMinAmount = 0
	defaultMaxAmount = 10000
)

// Config carries the runtime validation limits. It is built once at startup
// and passed to the validators; it is never mutated afterwards, so concurrent
// readers need no synchronization.
type Config struct {
	MinAmount           float64
	MaxAmount           float64
	SupportedCurrencies map[string]struct{}
}

// DefaultConfig returns the built-in limits: amounts between 0 and 10000 and
// the GBP/EUR/USD currency set.
func DefaultConfig() Config {
	return Config{
		MinAmount:           defaultMinAmount,
		MaxAmount:           defaultMaxAmount,
		SupportedCurrencies: map[string]struct{}{"GBP": {}, "EUR": {}, "USD": {}},
	}
}

// LoadConfig reads MIN_AMOUNT, MAX_AMOUNT and SUPPORTED_CURRENCIES from the
// environment. Missing or unparseable values silently fall back to the
// defaults.
func LoadConfig() Config {
	cfg := DefaultConfig()

	if v, err := strconv.ParseFloat(os.Getenv("MIN_AMOUNT"), 64); err == nil {
		cfg.MinAmount = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("MAX_AMOUNT"), 64); err == nil {
		cfg.MaxAmount = v
	}
	if raw := os.Getenv("SUPPORTED_CURRENCIES"); raw != "" {
		currencies := make(map[string]struct{})
		for _, c := range strings.Split(raw, ",") {
			c = strings.TrimSpace(c)
			if c != "" {
				currencies[c] = struct{}{}
			}
		}
		if len(currencies) > 0 {
			cfg.SupportedCurrencies = currencies
		}
	}

	return cfg
}

// SupportsCurrency reports whether currency is in the configured set.
func (c Config) SupportsCurrency(currency string) bool {
	_, ok := c.SupportedCurrencies[currency]
	return ok
}
