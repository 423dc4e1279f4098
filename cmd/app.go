// Package cmd implements the cgt command line subcommands.
package cmd

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/cgt"
	"github.com/google/subcommands"
	"github.com/phuslu/log"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "cgt.toml", "Path to the TOML configuration file. A missing file means default settings.")
var ledgerFile = flag.String("ledger", "", "Path to the ledger file (JSONL format). Overrides the configuration.")
var plainOutput = flag.Bool("plain", false, "Print raw markdown instead of rendering it for the terminal.")

// stdout receives the command outputs.
var stdout io.Writer = os.Stdout

// Commands lists all the subcommands.
var Commands = []subcommands.Command{
	&reportCmd{},
	&matchesCmd{},
	&lotsCmd{},
	&exportCmd{},
	&importCmd{},
	&acquireCmd{},
	&disposeCmd{},
	&checkCmd{},
	&topicCmd{},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		group := "reports"
		switch cmd.(type) {
		case *importCmd, *acquireCmd, *disposeCmd, *checkCmd:
			group = "ledger"
		case *topicCmd:
			group = "help"
		}
		c.Register(cmd, group)
	}
}

// loadConfig loads the configuration file and applies the global flags.
func loadConfig() (*cgt.Config, error) {
	config, err := cgt.LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	if *ledgerFile != "" {
		config.Ledger = *ledgerFile
	}
	return config, nil
}

// newLogger returns the logger of the configured level, writing on stderr.
func newLogger(config *cgt.Config) *log.Logger {
	return cgt.NewLogger(config.Logging.Level, os.Stderr)
}

// DecodeLedger reads all the transactions of a ledger file.
func DecodeLedger(filename string) ([]cgt.Transaction, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger %q: %w", filename, err)
	}
	defer f.Close()
	txs, err := cgt.DecodeTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode ledger %q: %w", filename, err)
	}
	return txs, nil
}

// run loads the ledger and matches it in the configured currency.
func run(config *cgt.Config) ([]cgt.Transaction, []cgt.Match, *cgt.Engine, error) {
	txs, err := DecodeLedger(config.Ledger)
	if err != nil {
		return nil, nil, nil, err
	}
	matches, engine, err := cgt.Run(config.Currency, txs, newLogger(config))
	if err != nil {
		return txs, nil, engine, err
	}
	return txs, matches, engine, nil
}

// appendTransactions appends transactions to the ledger file.
func appendTransactions(filename string, txs ...cgt.Transaction) subcommands.ExitStatus {
	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(filename, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer f.Close()

	if err := cgt.EncodeTransactions(f, txs); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing to ledger file %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}

	fmt.Fprintf(stdout, "Successfully appended %d transaction(s) to %s\n", len(txs), filename)
	return subcommands.ExitSuccess
}
