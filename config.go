package cgt

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"
)

// Default tax parameters: Irish capital gains tax, per person.
const (
	DefaultCurrency  = "EUR"
	DefaultExemption = "1270"
	DefaultTaxRate   = "0.33"
)

// Config holds the settings of a tax computation.
type Config struct {
	Currency  string          `toml:"currency"`  // Currency of the report, amounts are converted into it.
	Exemption decimal.Decimal `toml:"exemption"` // Exemption is the annual amount of gains free of tax.
	TaxRate   decimal.Decimal `toml:"tax_rate"`  // TaxRate is the flat rate applied to the chargeable gain.
	Year      int             `toml:"year"`      // Year is the tax year, 0 for the latest year with a disposal.
	Ledger    string          `toml:"ledger"`    // Ledger is the JSONL transactions file.
	Logging   LoggingConfig   `toml:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level string `toml:"level"`
}

// NewDefaultConfig returns a Config with the default tax parameters.
func NewDefaultConfig() *Config {
	return &Config{
		Currency:  DefaultCurrency,
		Exemption: decimal.RequireFromString(DefaultExemption),
		TaxRate:   decimal.RequireFromString(DefaultTaxRate),
		Ledger:    "transactions.jsonl",
		Logging:   LoggingConfig{Level: "warn"},
	}
}

// LoadConfig loads configuration from files with environment overrides.
// Later files override earlier ones, missing files are skipped.
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := applyEnvOverrides(config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) error {
	if v := os.Getenv("CGT_CURRENCY"); v != "" {
		config.Currency = strings.ToUpper(v)
	}
	if v := os.Getenv("CGT_EXEMPTION"); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("invalid CGT_EXEMPTION %q: %w", v, err)
		}
		config.Exemption = d
	}
	if v := os.Getenv("CGT_TAX_RATE"); v != "" {
		r, err := ParseRate(v)
		if err != nil {
			return fmt.Errorf("invalid CGT_TAX_RATE: %w", err)
		}
		config.TaxRate = r.Decimal()
	}
	if v := os.Getenv("CGT_YEAR"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid CGT_YEAR %q: %w", v, err)
		}
		config.Year = y
	}
	if v := os.Getenv("CGT_LEDGER"); v != "" {
		config.Ledger = v
	}
	if v := os.Getenv("CGT_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	return nil
}

// Validate checks that the tax parameters make sense.
func (c *Config) Validate() error {
	if !KnownCurrency(c.Currency) {
		return fmt.Errorf("unknown currency %q", c.Currency)
	}
	if c.Exemption.IsNegative() {
		return fmt.Errorf("exemption must not be negative, got %v", c.Exemption)
	}
	if c.TaxRate.IsNegative() || c.TaxRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("tax rate must be a fraction between 0 and 1, got %v", c.TaxRate)
	}
	return nil
}

// ExemptionAmount returns the exemption in the report currency.
func (c *Config) ExemptionAmount() Money {
	return M(c.Exemption, c.Currency)
}

// Rate returns the tax rate.
func (c *Config) Rate() Rate { return R(c.TaxRate) }
