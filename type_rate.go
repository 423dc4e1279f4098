package cgt

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Rate is a fraction, like a tax rate of 0.33.
type Rate struct {
	value decimal.Decimal
}

// R returns a Rate from a fraction.
func R[T float64 | int | int64 | decimal.Decimal](value T) Rate {
	return Rate{value: newDecimal(value)}
}

// ParseRate parses a fraction ("0.33") or a percentage ("33%").
func ParseRate(s string) (Rate, error) {
	percent := len(s) > 0 && s[len(s)-1] == '%'
	if percent {
		s = s[:len(s)-1]
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Rate{}, fmt.Errorf("invalid rate %q: %w", s, err)
	}
	if percent {
		v = v.Shift(-2)
	}
	return Rate{value: v}, nil
}

func (r Rate) Equal(q Rate) bool        { return r.value.Equal(q.value) }
func (r Rate) Decimal() decimal.Decimal { return r.value }

// Apply returns m multiplied by the rate.
func (r Rate) Apply(m Money) Money { return Money{value: m.value.Mul(r.value), cur: m.cur} }

func (r Rate) String() string {
	return r.value.Shift(2).StringFixed(2) + "%"
}
