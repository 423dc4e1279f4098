package cgt

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// ParseMoney parses a decimal string into an amount of currency.
func ParseMoney(s, currency string) (Money, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return Money{value: v, cur: currency}, nil
}

// KnownCurrency reports whether code is an ISO currency known to go-money.
func KnownCurrency(code string) bool {
	return money.GetCurrency(code) != nil
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// fraction returns the number of minor unit digits, 2 when the currency is unknown.
func (m Money) fraction() int32 {
	if !KnownCurrency(m.cur) {
		return 2
	}
	return int32(m.currency().Fraction)
}

// Round returns m rounded half to even at the currency's fraction digits.
// This is the only rounding applied to amounts, and it happens on output.
func (m Money) Round() Money {
	return Money{value: m.value.RoundBank(m.fraction()), cur: m.cur}
}

// String returns the string representation of the money value.
func (m Money) String() string {
	if !KnownCurrency(m.cur) {
		return m.Plain()
	}
	cur := m.currency()
	dec := m.Round().value.Shift(m.fraction())
	return cur.Formatter().Format(dec.IntPart())
}

// Plain returns the rounded amount without currency symbol nor grouping.
func (m Money) Plain() string {
	return m.value.StringFixedBank(m.fraction())
}

func (m Money) Currency() string                { return m.cur }
func (m Money) Decimal() decimal.Decimal        { return m.value }
func (m Money) Equal(n Money) bool              { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                    { return m.value.IsZero() }
func (m Money) IsPositive() bool                { return m.value.IsPositive() }
func (m Money) IsNegative() bool                { return m.value.IsNegative() }
func (m Money) LessThan(amount Money) bool      { return m.value.LessThan(amount.value) }
func (m Money) GreaterThan(n Money) bool        { return m.value.GreaterThan(n.value) }
func (m Money) GreaterThanOrEqual(n Money) bool { return m.value.GreaterThanOrEqual(n.value) }
func (m Money) Neg() Money                      { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Abs() Money                      { return Money{value: m.value.Abs(), cur: m.cur} }
func (m Money) Mul(n Quantity) Money            { return Money{value: m.value.Mul(n.value), cur: m.cur} }
func (m Money) Div(n Quantity) Money            { return Money{value: m.value.Div(n.value), cur: m.cur} }

// Convert returns m expressed in currency cur using rate units of cur per unit of m.
func (m Money) Convert(rate decimal.Decimal, cur string) Money {
	return Money{value: m.value.Mul(rate), cur: cur}
}

// Prorate returns the share of m corresponding to part out of whole.
// Multiplication happens first so that integral results stay exact.
func (m Money) Prorate(part, whole Quantity) Money {
	if part.Equal(whole) {
		return m
	}
	return Money{value: m.value.Mul(part.value).Div(whole.value), cur: m.cur}
}

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// MaxMoney returns the largest of a and b.
func MaxMoney(a, b Money) Money {
	if b.GreaterThan(a) {
		return Money{value: b.value, cur: cur(a, b)}
	}
	return Money{value: a.value, cur: cur(a, b)}
}

// MinMoney returns the smallest of a and b.
func MinMoney(a, b Money) Money {
	if b.LessThan(a) {
		return Money{value: b.value, cur: cur(a, b)}
	}
	return Money{value: a.value, cur: cur(a, b)}
}

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch" + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-"
func (m Money) SignedString() string {
	if m.Round().IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}
