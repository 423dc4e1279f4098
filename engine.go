package cgt

import (
	"slices"

	"github.com/etnz/cgt/date"
	"github.com/phuslu/log"
	"github.com/shopspring/decimal"
)

// Match pairs part of a disposal with part of a lot.
type Match struct {
	Security string
	Quantity Quantity
	Acquired date.Date
	Disposed date.Date
	Cost     Money // Cost basis of Quantity shares.
	Proceeds Money // Proceeds of Quantity shares.
	Gain     Money // Proceeds minus Cost, negative for a loss.

	// FX is the exchange rate of the disposal, zero when it was made in the
	// reporting currency.
	FX decimal.Decimal
	// LocalCost is Cost in the currency of the acquisition.
	LocalCost Money
	// LocalProceeds is Proceeds in the currency of the disposal.
	LocalProceeds Money
}

// LocalGain returns the gain in the currency of the disposal. It is only
// defined when the acquisition was made in the same currency.
func (m Match) LocalGain() (Money, bool) {
	if m.LocalCost.Currency() != m.LocalProceeds.Currency() {
		return Money{}, false
	}
	return m.LocalProceeds.Sub(m.LocalCost), true
}

// Engine matches disposals against acquisitions first-in first-out.
//
// An Engine holds one lot queue per security and is meant for a single run
// over a chronologically ordered sequence of transactions. It is not safe for
// concurrent use.
type Engine struct {
	currency string
	queues   map[string]*lotQueue
	last     map[string]date.Date // last transaction date per security
	matches  []Match
	logger   *log.Logger
}

// NewEngine returns an empty engine computing amounts in currency.
// logger may be nil.
func NewEngine(currency string, logger *log.Logger) *Engine {
	return &Engine{
		currency: currency,
		queues:   make(map[string]*lotQueue),
		last:     make(map[string]date.Date),
		logger:   logger,
	}
}

// Currency returns the reporting currency.
func (e *Engine) Currency() string { return e.currency }

func (e *Engine) queue(security string) *lotQueue {
	q, ok := e.queues[security]
	if !ok {
		q = new(lotQueue)
		e.queues[security] = q
	}
	return q
}

// Ingest processes the next transaction.
//
// An acquisition appends a lot. A disposal consumes the oldest lots of its
// security and returns one Match per lot it touched. On error nothing is
// matched and the engine state is unchanged.
func (e *Engine) Ingest(tx Transaction) ([]Match, error) {
	value, err := tx.Value(e.currency)
	if err != nil {
		return nil, err
	}
	local, _ := tx.LocalValue()
	if local.Currency() == "" {
		local = M(local.Decimal(), e.currency)
	}
	if last, ok := e.last[tx.Security]; ok && tx.Date.Before(last) && e.logger != nil {
		e.logger.Warn().Str("security", tx.Security).Stringer("date", tx.Date).Stringer("previous", last).
			Msg("transaction is older than the previous one, input is not reordered")
	}

	switch tx.Kind {
	case Acquisition:
		e.queue(tx.Security).Push(Lot{Security: tx.Security, Acquired: tx.Date, Quantity: tx.Quantity, Cost: value, LocalCost: local})
		e.last[tx.Security] = tx.Date
		return nil, nil
	default:
		available := e.Remaining(tx.Security)
		if available.LessThan(tx.Quantity) {
			return nil, &InsufficientLotsError{
				Security:  tx.Security,
				Date:      tx.Date,
				Requested: tx.Quantity,
				Available: available,
			}
		}
		matches := e.dispose(e.queues[tx.Security], tx, value, local)
		e.last[tx.Security] = tx.Date
		e.matches = append(e.matches, matches...)
		return matches, nil
	}
}

// dispose consumes tx.Quantity shares from q. The caller has checked that q holds enough.
func (e *Engine) dispose(q *lotQueue, tx Transaction, proceeds, localProceeds Money) []Match {
	var matches []Match
	outstanding := tx.Quantity
	for outstanding.IsPositive() {
		lot := q.Peek()
		take := MinQuantity(outstanding, lot.Quantity)
		acquired := lot.Acquired
		cost, localCost := lot.take(take)
		if lot.Quantity.IsZero() {
			q.Pop()
		}

		// the last match receives what is left of the proceeds.
		p := proceeds.Prorate(take, outstanding)
		lp := localProceeds.Prorate(take, outstanding)
		proceeds = proceeds.Sub(p)
		localProceeds = localProceeds.Sub(lp)
		outstanding = outstanding.Sub(take)

		m := Match{
			Security: tx.Security,
			Quantity: take,
			Acquired: acquired,
			Disposed: tx.Date,
			Cost:     cost,
			Proceeds: p,
			Gain:     p.Sub(cost),

			FX:            tx.FX,
			LocalCost:     localCost,
			LocalProceeds: lp,
		}
		if e.logger != nil {
			e.logger.Debug().Str("security", m.Security).Stringer("quantity", m.Quantity).
				Stringer("acquired", m.Acquired).Stringer("disposed", m.Disposed).
				Str("cost", m.Cost.Plain()).Str("proceeds", m.Proceeds.Plain()).Str("gain", m.Gain.Plain()).
				Msg("matched")
		}
		matches = append(matches, m)
	}
	return matches
}

// IngestAll processes txs in order and stops at the first error.
func (e *Engine) IngestAll(txs []Transaction) error {
	for _, tx := range txs {
		if _, err := e.Ingest(tx); err != nil {
			return err
		}
	}
	return nil
}

// Matches returns all matches produced so far, in emission order.
func (e *Engine) Matches() []Match { return slices.Clone(e.matches) }

// OpenLots returns the unmatched lots, grouped by security in alphabetical
// order, oldest first within a security.
func (e *Engine) OpenLots() []Lot {
	var lots []Lot
	for _, security := range e.Securities() {
		lots = append(lots, e.queues[security].Lots()...)
	}
	return lots
}

// Remaining returns the unmatched quantity of security.
func (e *Engine) Remaining(security string) Quantity {
	q, ok := e.queues[security]
	if !ok {
		return Quantity{}
	}
	return q.Remaining()
}

// Securities returns the securities seen so far, sorted.
func (e *Engine) Securities() []string {
	securities := make([]string, 0, len(e.queues))
	for s := range e.queues {
		securities = append(securities, s)
	}
	slices.Sort(securities)
	return securities
}

// Run matches txs with a new engine. On error no matches are returned.
func Run(currency string, txs []Transaction, logger *log.Logger) ([]Match, *Engine, error) {
	e := NewEngine(currency, logger)
	if err := e.IngestAll(txs); err != nil {
		return nil, e, err
	}
	return e.Matches(), e, nil
}
