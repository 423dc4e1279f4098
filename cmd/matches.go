package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cgt"
	"github.com/etnz/cgt/renderer"
	"github.com/google/subcommands"
)

type matchesCmd struct {
	settings settings
}

func (*matchesCmd) Name() string     { return "matches" }
func (*matchesCmd) Synopsis() string { return "list every disposal matched against its acquisition lots" }
func (*matchesCmd) Usage() string {
	return `cgt matches [-year <year>] [-currency <currency>]

  Lists the matches, one row for each part of a lot consumed by a disposal,
  with its cost, proceeds and gain. Without -year, all the matches are listed.
`
}

func (c *matchesCmd) SetFlags(f *flag.FlagSet) {
	c.settings.SetFlags(f, false)
}

func (c *matchesCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	title := "Matches"
	if config.Year != 0 {
		matches = cgt.NewYearReport(matches, config.Year, config.ExemptionAmount(), config.Rate()).Matches
		title = fmt.Sprintf("Matches %d", config.Year)
	}
	printMarkdown(renderer.Matches(title, matches))
	return subcommands.ExitSuccess
}
