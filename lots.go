package cgt

import "github.com/etnz/cgt/date"

// Lot is the unmatched remainder of an acquisition.
type Lot struct {
	Security string
	Acquired date.Date
	Quantity Quantity // Quantity still unmatched.
	Cost     Money    // Cost basis of the unmatched quantity.
	// LocalCost is the cost basis in the currency the acquisition was made in.
	LocalCost Money
}

// UnitCost returns the cost basis per share.
func (l Lot) UnitCost() Money { return l.Cost.Div(l.Quantity) }

// take removes q shares from the lot and returns their cost basis, converted
// and local. The last slice of a lot receives the exact remaining costs.
func (l *Lot) take(q Quantity) (cost, local Money) {
	cost = l.Cost.Prorate(q, l.Quantity)
	local = l.LocalCost.Prorate(q, l.Quantity)
	l.Quantity = l.Quantity.Sub(q)
	l.Cost = l.Cost.Sub(cost)
	l.LocalCost = l.LocalCost.Sub(local)
	return cost, local
}

// lotQueue is a FIFO of lots backed by a slice and a head index.
// Lots before head are consumed.
type lotQueue struct {
	lots []Lot
	head int
}

// Len returns the number of lots in the queue.
func (q *lotQueue) Len() int { return len(q.lots) - q.head }

// Push appends a lot at the tail.
func (q *lotQueue) Push(l Lot) { q.lots = append(q.lots, l) }

// Peek returns the oldest lot, or nil if the queue is empty.
// The lot can be modified in place.
func (q *lotQueue) Peek() *Lot {
	if q.Len() == 0 {
		return nil
	}
	return &q.lots[q.head]
}

// Pop removes the oldest lot.
func (q *lotQueue) Pop() Lot {
	l := q.lots[q.head]
	q.lots[q.head] = Lot{}
	q.head++
	switch {
	case q.head == len(q.lots):
		q.lots, q.head = q.lots[:0], 0
	case q.head >= 32 && q.head*2 >= len(q.lots):
		n := copy(q.lots, q.lots[q.head:])
		q.lots, q.head = q.lots[:n], 0
	}
	return l
}

// Remaining returns the total unmatched quantity.
func (q *lotQueue) Remaining() Quantity {
	var total Quantity
	for _, l := range q.lots[q.head:] {
		total = total.Add(l.Quantity)
	}
	return total
}

// Lots returns a copy of the lots, oldest first.
func (q *lotQueue) Lots() []Lot {
	return append([]Lot(nil), q.lots[q.head:]...)
}
