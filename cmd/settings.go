package cmd

import (
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/cgt"
	"github.com/shopspring/decimal"
)

// settings holds the flags overriding the configuration for a single run.
type settings struct {
	currency  string
	exemption string
	rate      string
	year      int
}

// SetFlags declares the -currency and -year flags, and with tax, the
// -exemption and -rate flags.
func (s *settings) SetFlags(f *flag.FlagSet, tax bool) {
	f.StringVar(&s.currency, "currency", "", "Reporting currency. Defaults to the configuration.")
	f.IntVar(&s.year, "year", 0, "Tax year. Defaults to the configuration, then to the latest year with a disposal.")
	if tax {
		f.StringVar(&s.exemption, "exemption", "", "Annual exemption. Defaults to the configuration.")
		f.StringVar(&s.rate, "rate", "", "Tax rate, as a fraction (0.33) or a percentage (33%). Defaults to the configuration.")
	}
}

// load returns the configuration with the flags applied.
func (s *settings) load() (*cgt.Config, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if s.currency != "" {
		config.Currency = strings.ToUpper(s.currency)
	}
	if s.year != 0 {
		config.Year = s.year
	}
	if s.exemption != "" {
		v, err := decimal.NewFromString(s.exemption)
		if err != nil {
			return nil, fmt.Errorf("invalid exemption %q: %w", s.exemption, err)
		}
		config.Exemption = v
	}
	if s.rate != "" {
		r, err := cgt.ParseRate(s.rate)
		if err != nil {
			return nil, err
		}
		config.TaxRate = r.Decimal()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// taxYear returns the configured year, or the latest year with a disposal, or
// the current year.
func taxYear(config *cgt.Config, matches []cgt.Match, today int) int {
	if config.Year != 0 {
		return config.Year
	}
	if years := cgt.Years(matches); len(years) > 0 {
		return years[len(years)-1]
	}
	return today
}
