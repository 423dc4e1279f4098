package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/cgt"
	md "github.com/nao1215/markdown"
)

// periodTitles names the periods of a year report.
var periodTitles = map[string]string{
	"initial": "Initial period",
	"later":   "Later period",
	"year":    "Full year",
}

func periodTitle(name string) string {
	if title, ok := periodTitles[name]; ok {
		return title
	}
	return name
}

// Report renders a year report: the period breakdown and the tax due.
func Report(r *cgt.YearReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Capital Gains Tax Report %d", r.Year))

	if len(r.Matches) == 0 {
		doc.PlainText(fmt.Sprintf("No disposals in %d.", r.Year))
	}

	doc.H2("Periods")
	rows := make([][]string, 0, len(r.Periods))
	for _, p := range r.Periods {
		rows = append(rows, []string{
			periodTitle(p.Name),
			p.Range.String(),
			fmt.Sprint(p.Matches),
			p.Proceeds.String(),
			p.Cost.String(),
			p.Gains.String(),
			p.Losses.String(),
			p.NetGain.String(),
		})
	}
	doc.Table(md.TableSet{
		Header: []string{"Period", "Dates", "Matches", "Proceeds", "Cost", "Gains", "Losses", "Net Gain"},
		Rows:   rows,
	})

	// the same periods in the currencies the shares were traded in.
	for _, local := range r.Total().Local {
		cur := local.Currency()
		doc.H2("Periods in " + cur)
		rows := make([][]string, 0, len(r.Periods))
		for _, p := range r.Periods {
			t, _ := p.LocalTotals(cur)
			rows = append(rows, []string{
				periodTitle(p.Name),
				t.Proceeds.String(),
				t.Cost.String(),
				t.Gains.String(),
				t.Losses.String(),
				t.NetGain.String(),
			})
		}
		doc.Table(md.TableSet{
			Header: []string{"Period", "Proceeds", "Cost", "Gains", "Losses", "Net Gain"},
			Rows:   rows,
		})
	}

	s := r.Summary
	doc.H2("Tax")
	doc.BulletList(
		"Total gain: "+s.TotalGain.String(),
		"Annual exemption: "+s.Exemption.String(),
		"Exemption used: "+s.ExemptionApplied.String(),
		"Taxable gain (amount above exemption): "+s.ChargeableGain.String(),
		"Tax rate: "+s.Rate.String(),
		"Tax to pay: "+s.TaxDue.String(),
	)

	return doc.String()
}
