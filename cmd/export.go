package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/cgt"
	"github.com/google/subcommands"
)

type exportCmd struct {
	settings settings
	output   string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the matches as CSV" }
func (*exportCmd) Usage() string {
	return `cgt export [-o <file>] [-year <year>] [-currency <currency>]

  Writes the detail of every match as CSV, amounts rounded to the currency
  minor unit. Without -o, the CSV is written on the standard output.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	c.settings.SetFlags(f, false)
	f.StringVar(&c.output, "o", "", "Output file. Defaults to the standard output.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	if config.Year != 0 {
		matches = cgt.NewYearReport(matches, config.Year, config.ExemptionAmount(), config.Rate()).Matches
	}

	var w io.Writer = stdout
	if c.output != "" {
		out, err := os.Create(c.output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer out.Close()
		w = out
	}
	if err := cgt.ExportMatchesCSV(w, matches); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing matches: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
