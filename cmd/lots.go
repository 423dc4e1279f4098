package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cgt/renderer"
	"github.com/google/subcommands"
)

type lotsCmd struct {
	settings settings
	format   string
}

func (*lotsCmd) Name() string     { return "lots" }
func (*lotsCmd) Synopsis() string { return "list the acquisition lots not yet disposed of" }
func (*lotsCmd) Usage() string {
	return `cgt lots [-format markdown|text] [-currency <currency>]

  Lists the remaining open lots after matching the whole ledger, oldest first
  within each security, with their remaining cost basis.
`
}

func (c *lotsCmd) SetFlags(f *flag.FlagSet) {
	c.settings.SetFlags(f, false)
	f.StringVar(&c.format, "format", "markdown", "Output format (markdown, text)")
}

func (c *lotsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.format != "markdown" && c.format != "text" {
		fmt.Fprintf(os.Stderr, "Unknown format %q, want markdown or text\n", c.format)
		return subcommands.ExitUsageError
	}
	config, err := c.settings.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitUsageError
	}

	_, _, engine, err := run(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error matching transactions: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.format == "text" {
		renderer.LotsTable(stdout, engine.OpenLots())
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.Lots(engine.OpenLots()))
	return subcommands.ExitSuccess
}
