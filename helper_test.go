package cgt

import (
	"time"

	"github.com/etnz/cgt/date"
)

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// day is a helper for test to create a date in 2024.
func day(m time.Month, d int) date.Date { return date.New(2024, m, d) }

// buy is a helper for test to acquire q shares of "ACME" at unit price in USD.
func buy(d date.Date, q, price float64) Transaction {
	return NewAcquisition(d, "ACME", Q(q), USD(q*price))
}

// sell is a helper for test to dispose of q shares of "ACME" at unit price in USD.
func sell(d date.Date, q, price float64) Transaction {
	return NewDisposal(d, "ACME", Q(q), USD(q*price))
}
