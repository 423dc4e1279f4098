package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cgt"
	"github.com/etnz/cgt/date"
	"github.com/etnz/cgt/renderer"
	"github.com/google/subcommands"
)

// reportCmd holds the flags for the 'report' subcommand.
type reportCmd struct {
	settings settings
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "capital gains and tax due for a tax year" }
func (*reportCmd) Usage() string {
	return `cgt report [-year <year>] [-exemption <amount>] [-rate <rate>] [-currency <currency>]

  Matches the ledger disposals against acquisitions, first in first out, and
  reports the gains of the tax year, split between the January to November
  and the December periods, then the tax to pay above the annual exemption.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.settings.SetFlags(f, true)
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	config, err := c.settings.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitUsageError
	}

	_, matches, _, err := run(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error matching transactions: %v\n", err)
		return subcommands.ExitFailure
	}

	year := taxYear(config, matches, date.Today().Year())
	report := cgt.NewYearReport(matches, year, config.ExemptionAmount(), config.Rate())
	printMarkdown(renderer.Report(report))
	return subcommands.ExitSuccess
}
