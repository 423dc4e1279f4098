package cgt

import (
	"slices"
	"strings"
	"time"

	"github.com/etnz/cgt/date"
)

// Totals sums the amounts of matches in one currency.
type Totals struct {
	Proceeds Money
	Cost     Money
	Gains    Money // Gains is the sum of positive match gains.
	Losses   Money // Losses is the sum of negative match gains, as a positive amount.
	NetGain  Money // NetGain is Gains minus Losses.
}

func newTotals(currency string) Totals {
	zero := Money{cur: currency}
	return Totals{Proceeds: zero, Cost: zero, Gains: zero, Losses: zero, NetGain: zero}
}

// Currency returns the currency of the totals.
func (t Totals) Currency() string { return t.NetGain.Currency() }

func (t *Totals) add(cost, proceeds Money) {
	t.Proceeds = t.Proceeds.Add(proceeds)
	t.Cost = t.Cost.Add(cost)
	if gain := proceeds.Sub(cost); gain.IsNegative() {
		t.Losses = t.Losses.Add(gain.Neg())
	} else {
		t.Gains = t.Gains.Add(gain)
	}
	t.NetGain = t.Gains.Sub(t.Losses)
}

// PeriodReport aggregates the matches disposed of within a date range.
type PeriodReport struct {
	Name  string
	Range date.Range
	Totals
	Matches int
	// Local holds the totals in the currencies the transactions were made in,
	// other than the reporting currency, sorted by currency. A match is
	// counted only when its acquisition and disposal share that currency.
	Local []Totals
}

// NewPeriodReport aggregates the matches disposed of within r.
func NewPeriodReport(name string, r date.Range, currency string, matches []Match) PeriodReport {
	p := PeriodReport{Name: name, Range: r, Totals: newTotals(currency)}
	for _, m := range matches {
		if !r.Contains(m.Disposed) {
			continue
		}
		p.Matches++
		p.Totals.add(m.Cost, m.Proceeds)

		cur := m.LocalProceeds.Currency()
		if _, ok := m.LocalGain(); !ok || cur == "" || cur == currency {
			continue
		}
		i, found := slices.BinarySearchFunc(p.Local, cur, func(t Totals, c string) int { return strings.Compare(t.Currency(), c) })
		if !found {
			p.Local = slices.Insert(p.Local, i, newTotals(cur))
		}
		p.Local[i].add(m.LocalCost, m.LocalProceeds)
	}
	return p
}

// LocalTotals returns the totals in currency, and false if no match was
// made in that currency.
func (p PeriodReport) LocalTotals(currency string) (Totals, bool) {
	for _, t := range p.Local {
		if t.Currency() == currency {
			return t, true
		}
	}
	return newTotals(currency), false
}

// YearReport is the capital gains report of a tax year.
//
// Periods holds the two payment windows of the year (January to November
// and December) followed by the whole year.
type YearReport struct {
	Year    int
	Matches []Match // Matches disposed of during Year.
	Periods []PeriodReport
	Summary TaxSummary
}

// Total returns the report of the whole year.
func (r *YearReport) Total() PeriodReport { return r.Periods[len(r.Periods)-1] }

// NewYearReport computes the report of year from all matches.
// Matches disposed of in other years are ignored.
func NewYearReport(matches []Match, year int, exemption Money, rate Rate) *YearReport {
	whole := date.Year(year)
	var selected []Match
	for _, m := range matches {
		if whole.Contains(m.Disposed) {
			selected = append(selected, m)
		}
	}
	currency := exemption.Currency()
	initial := date.NewRange(whole.From, date.New(year, time.November, 30))
	later := date.NewRange(date.New(year, time.December, 1), whole.To)
	return &YearReport{
		Year:    year,
		Matches: selected,
		Periods: []PeriodReport{
			NewPeriodReport("initial", initial, currency, selected),
			NewPeriodReport("later", later, currency, selected),
			NewPeriodReport("year", whole, currency, selected),
		},
		Summary: Summarize(selected, exemption, rate),
	}
}

// Years returns the sorted distinct years in which matches were disposed of.
func Years(matches []Match) []int {
	var years []int
	for _, m := range matches {
		if !slices.Contains(years, m.Disposed.Year()) {
			years = append(years, m.Disposed.Year())
		}
	}
	slices.Sort(years)
	return years
}
