package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/cgt"
	"github.com/olekukonko/tablewriter"
)

// Lots renders the open lots, oldest first within each security.
func Lots(lots []cgt.Lot) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Open Lots\n\n")
	if len(lots) == 0 {
		fmt.Fprintln(&b, "No open lots.")
		return b.String()
	}

	fmt.Fprintln(&b, "| Security | Acquired | Quantity | Unit Cost | Cost |")
	fmt.Fprintln(&b, "|:---|:---|---:|---:|---:|")
	for _, l := range lots {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			security(l.Security),
			l.Acquired,
			l.Quantity,
			l.UnitCost(),
			l.Cost,
		)
	}
	return b.String()
}

// LotsTable writes the open lots as a plain text table.
func LotsTable(w io.Writer, lots []cgt.Lot) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Security", "Acquired", "Quantity", "Unit Cost", "Cost"})
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	var total cgt.Money
	for _, l := range lots {
		table.Append([]string{
			security(l.Security),
			l.Acquired.String(),
			l.Quantity.String(),
			l.UnitCost().Plain(),
			l.Cost.Plain(),
		})
		total = total.Add(l.Cost)
	}
	table.SetFooter([]string{"", "", "", "Total", total.Plain()})
	table.Render()
}
