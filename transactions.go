package cgt

import (
	"fmt"
	"strings"

	"github.com/etnz/cgt/date"
	"github.com/shopspring/decimal"
)

// Kind tells whether a transaction adds shares or removes them.
type Kind string

const (
	Acquisition Kind = "acquire"
	Disposal    Kind = "dispose"
)

// ParseKind parses a kind name. Broker wordings "buy" and "vest" are
// acquisitions, "sell" is a disposal.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "acquire", "acquisition", "buy", "vest":
		return Acquisition, nil
	case "dispose", "disposal", "sell":
		return Disposal, nil
	default:
		return "", fmt.Errorf("unknown transaction kind %q", s)
	}
}

func (k Kind) String() string { return string(k) }

// Transaction is one event of the feed: shares acquired or disposed of.
type Transaction struct {
	Date     date.Date
	Kind     Kind
	Security string   // Security is the ticker, empty for a single anonymous security.
	Quantity Quantity // Quantity of shares, strictly positive.
	Amount   Money    // Amount is the total value of the transaction (cost or proceeds).
	Fees     Money    // Fees paid on the transaction, in the Amount currency.
	// FX converts the transaction currency into the reporting currency (units
	// of reporting currency per unit). Zero means no conversion.
	FX   decimal.Decimal
	Memo string
}

// NewAcquisition creates an acquisition of quantity shares for a total cost of amount.
func NewAcquisition(day date.Date, security string, quantity Quantity, amount Money) Transaction {
	return Transaction{Date: day, Kind: Acquisition, Security: security, Quantity: quantity, Amount: amount}
}

// NewDisposal creates a disposal of quantity shares for total proceeds of amount.
func NewDisposal(day date.Date, security string, quantity Quantity, amount Money) Transaction {
	return Transaction{Date: day, Kind: Disposal, Security: security, Quantity: quantity, Amount: amount}
}

// Currency returns the currency the transaction was made in.
func (t Transaction) Currency() string { return t.Amount.Currency() }

// UnitValue returns the transaction value per share, fees excluded.
func (t Transaction) UnitValue() Money {
	if !t.Quantity.IsPositive() {
		return Money{cur: t.Amount.cur}
	}
	return t.Amount.Div(t.Quantity)
}

func (t Transaction) invalid(format string, args ...any) *InvalidTransactionError {
	return &InvalidTransactionError{
		Date:     t.Date,
		Kind:     t.Kind,
		Security: t.Security,
		Reason:   fmt.Sprintf(format, args...),
	}
}

// Validate checks the transaction on its own: a date, a known kind, a
// positive quantity, non-negative values.
func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return t.invalid("date is missing")
	}
	if t.Kind != Acquisition && t.Kind != Disposal {
		return t.invalid("unknown kind %q", string(t.Kind))
	}
	if !t.Quantity.IsPositive() {
		return t.invalid("quantity must be positive, got %s", t.Quantity)
	}
	if t.Amount.IsNegative() {
		return t.invalid("amount must not be negative, got %s", t.Amount.Plain())
	}
	if t.Fees.IsNegative() {
		return t.invalid("fees must not be negative, got %s", t.Fees.Plain())
	}
	if t.Fees.cur != "" && t.Amount.cur != "" && t.Fees.cur != t.Amount.cur {
		return t.invalid("fees currency %s differs from amount currency %s", t.Fees.cur, t.Amount.cur)
	}
	if t.FX.IsNegative() {
		return t.invalid("exchange rate must not be negative, got %s", t.FX)
	}
	return nil
}

// LocalValue returns the transaction value in its own currency: the cost
// basis of an acquisition (fees added) or the net proceeds of a disposal (fees
// deducted).
func (t Transaction) LocalValue() (Money, error) {
	if err := t.Validate(); err != nil {
		return Money{}, err
	}
	if t.Kind == Acquisition {
		return t.Amount.Add(t.Fees), nil
	}
	v := t.Amount.Sub(t.Fees)
	if v.IsNegative() {
		return Money{}, t.invalid("fees %s exceed the proceeds %s", t.Fees.Plain(), t.Amount.Plain())
	}
	return v, nil
}

// Value returns the local value of the transaction converted into currency.
func (t Transaction) Value(currency string) (Money, error) {
	v, err := t.LocalValue()
	if err != nil {
		return Money{}, err
	}
	switch {
	case !t.FX.IsZero():
		return v.Convert(t.FX, currency), nil
	case v.cur == "" || v.cur == currency:
		return Money{value: v.value, cur: currency}, nil
	default:
		return Money{}, t.invalid("exchange rate from %s to %s is missing", v.cur, currency)
	}
}
