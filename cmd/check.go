package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type checkCmd struct {
	settings settings
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "validate the ledger" }
func (*checkCmd) Usage() string {
	return `cgt check [-currency <currency>]

  Decodes the ledger and matches all its transactions. Reports the first
  invalid transaction, or disposal exceeding the shares held.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	c.settings.SetFlags(f, false)
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	config, err := c.settings.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitUsageError
	}

	txs, matches, engine, err := run(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "%s: %d transactions, %d matches, %d open lots\n", config.Ledger, len(txs), len(matches), len(engine.OpenLots()))
	return subcommands.ExitSuccess
}
