package cgt

import "fmt"

// TaxSummary is the tax computed on the gains of a set of matches.
type TaxSummary struct {
	TotalGain        Money // TotalGain is the sum of all match gains, losses included.
	Exemption        Money // Exemption is the configured annual exemption, unmodified.
	ExemptionApplied Money // ExemptionApplied is the part of the exemption actually used.
	ChargeableGain   Money // ChargeableGain is the gain above the exemption, never negative.
	Rate             Rate
	TaxDue           Money
}

// Summarize applies the exemption and the flat rate to the total gain of
// matches. It has no error case: an empty list yields zero tax.
//
// The exemption must be in the currency the matches were computed in, that is
// the currency of the Engine that produced them. An exemption without
// currency takes the one of the matches. Summarize panics on a mismatch, as
// adding Money of different currencies does.
func Summarize(matches []Match, exemption Money, rate Rate) TaxSummary {
	total := Money{cur: exemption.cur}
	for _, m := range matches {
		if c := m.Gain.cur; c != "" && total.cur != "" && c != total.cur {
			panic(fmt.Sprintf("cgt: exemption in %s cannot apply to gains in %s", total.cur, c))
		}
		total = total.Add(m.Gain)
	}
	exemption = Money{value: exemption.value, cur: total.cur}
	zero := Money{cur: total.cur}
	chargeable := MaxMoney(zero, total.Sub(exemption))
	return TaxSummary{
		TotalGain:        total,
		Exemption:        exemption,
		ExemptionApplied: MinMoney(exemption, MaxMoney(zero, total)),
		ChargeableGain:   chargeable,
		Rate:             rate,
		TaxDue:           rate.Apply(chargeable),
	}
}
