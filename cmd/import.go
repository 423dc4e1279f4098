package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/cgt"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type importCmd struct {
	format   string
	currency string
	fx       string
	records  string
	dryRun   bool
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import a broker CSV or JSON export into the ledger" }
func (*importCmd) Usage() string {
	return `cgt import [-format csv|json] [-currency <currency>] [-fx <rate>] [-records <jsonpath>] [-n] <file>

  Reads the acquisitions and disposals of a broker export and appends them to
  the ledger. Rows of other types (dividends, transfers...) are skipped.

  A CSV export needs the "Date", "Record Type", "Quantity" and "Total" columns,
  and may have "Symbol", "Fees" and "Exchange Rate". A JSON export holds a list
  of records at -records, each with "date", "type", "quantity", "total", and
  optionally "symbol", "fees" and "fx".

  The exchange rate is in units of the reporting currency per unit of
  -currency. Rows without one use -fx. Unless -n is given, rows that cannot be
  converted into the reporting currency are refused.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "", "Export format (csv, json). Defaults to the file extension.")
	f.StringVar(&c.currency, "currency", "USD", "Currency of the exported amounts")
	f.StringVar(&c.fx, "fx", "", "Exchange rate of the rows without one, in reporting currency per unit of -currency")
	f.StringVar(&c.records, "records", cgt.DefaultJSONMapping().Records, "JSONPath of the records list in a JSON export")
	f.BoolVar(&c.dryRun, "n", false, "Print the transactions instead of appending them to the ledger")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	filename := f.Arg(0)
	format := c.format
	if format == "" {
		format = strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	}

	in, err := os.Open(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}
	defer in.Close()

	var fx decimal.Decimal
	if c.fx != "" {
		if fx, err = decimal.NewFromString(c.fx); err != nil || fx.IsNegative() {
			fmt.Fprintf(os.Stderr, "Invalid exchange rate %q\n", c.fx)
			return subcommands.ExitUsageError
		}
	}

	var txs []cgt.Transaction
	switch format {
	case "csv":
		m := cgt.DefaultCSVMapping()
		m.Currency = strings.ToUpper(c.currency)
		m.DefaultFX = fx
		txs, err = cgt.ImportCSV(in, m)
	case "json":
		m := cgt.DefaultJSONMapping()
		m.Currency = strings.ToUpper(c.currency)
		m.DefaultFX = fx
		m.Records = c.records
		txs, err = cgt.ImportJSON(in, m)
	default:
		fmt.Fprintf(os.Stderr, "Unknown format %q, want csv or json\n", format)
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error importing %q: %v\n", filename, err)
		return subcommands.ExitFailure
	}

	if c.dryRun {
		if err := cgt.EncodeTransactions(stdout, txs); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	config, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitUsageError
	}
	for _, tx := range txs {
		if _, err := tx.Value(config.Currency); err != nil {
			fmt.Fprintf(os.Stderr, "Error importing %q: %v (set -fx or an exchange rate column)\n", filename, err)
			return subcommands.ExitFailure
		}
	}
	return appendTransactions(config.Ledger, txs...)
}
