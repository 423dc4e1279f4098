package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/cgt"
)

// Matches renders the audit list of matches, one row per consumed slice of
// lot, in emission order.
func Matches(title string, matches []cgt.Match) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	if len(matches) == 0 {
		fmt.Fprintln(&b, "No disposals.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Security | Quantity | Acquired | Disposed | Cost | Proceeds | Gain |")
	fmt.Fprintln(&b, "|:---|---:|:---|:---|---:|---:|---:|")

	var cost, proceeds, gain cgt.Money
	for _, m := range matches {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
			security(m.Security),
			m.Quantity,
			m.Acquired,
			m.Disposed,
			m.Cost,
			m.Proceeds,
			m.Gain.SignedString(),
		)
		cost = cost.Add(m.Cost)
		proceeds = proceeds.Add(m.Proceeds)
		gain = gain.Add(m.Gain)
	}
	fmt.Fprintf(&b, "| **%s** | | | | **%s** | **%s** | **%s** |\n",
		"Total",
		cost,
		proceeds,
		gain.SignedString(),
	)

	return b.String()
}

// security names the anonymous security.
func security(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
