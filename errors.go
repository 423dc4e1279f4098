package cgt

import (
	"fmt"

	"github.com/etnz/cgt/date"
)

// InvalidTransactionError reports a transaction that cannot enter the engine.
type InvalidTransactionError struct {
	Date     date.Date
	Kind     Kind
	Security string
	Reason   string
}

func (e *InvalidTransactionError) Error() string {
	return fmt.Sprintf("invalid %s transaction on %s%s: %s", e.Kind, e.Date, securitySuffix(e.Security), e.Reason)
}

// InsufficientLotsError reports a disposal of more shares than the unmatched
// lots hold. It usually means the input is out of order or an acquisition is
// missing.
type InsufficientLotsError struct {
	Security  string
	Date      date.Date
	Requested Quantity
	Available Quantity
}

func (e *InsufficientLotsError) Error() string {
	return fmt.Sprintf("disposal on %s of %s shares%s exceeds the %s shares held in unmatched lots (out of order or missing acquisition?)",
		e.Date, e.Requested, securitySuffix(e.Security), e.Available)
}

func securitySuffix(security string) string {
	if security == "" {
		return ""
	}
	return " of " + security
}
