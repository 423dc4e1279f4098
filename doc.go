// Package cgt computes capital gains tax on share disposals.
//
// Acquisitions and disposals are matched first-in first-out, per security:
// each disposal consumes the oldest unmatched lots and produces one Match per
// lot touched, carrying the prorated cost basis, the prorated proceeds and
// the resulting gain or loss. Amounts are exact decimals, converted to the
// reporting currency with the exchange rate carried by each transaction, and
// rounded only when displayed.
//
// The matches are then reduced to a TaxSummary: the total gain, less the
// annual exemption, taxed at a flat rate. The defaults (EUR, an exemption of
// 1270 and a rate of 33%) follow the Irish capital gains tax. A YearReport
// also splits a tax year into its two payment windows, January to November
// and December.
//
// Transactions are persisted as a JSONL ledger (see DecodeTransactions) and
// can be imported from broker CSV or JSON exports (see ImportCSV and
// ImportJSON).
//
// This package serves as the foundational logic for the `cgt` command-line
// tool.
package cgt
