package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/cgt"
	"github.com/etnz/cgt/date"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// txFlags holds the flags common to the acquire and dispose commands.
type txFlags struct {
	date     string
	security string
	quantity string
	amount   string
	currency string
	fees     string
	fx       string
	memo     string
}

func (c *txFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Transaction date (YYYY-MM-DD)")
	f.StringVar(&c.security, "s", "", "Security ticker, empty for a single anonymous security")
	f.StringVar(&c.quantity, "q", "", "Number of shares")
	f.StringVar(&c.amount, "a", "", "Total amount of the transaction, fees excluded")
	f.StringVar(&c.currency, "c", "", "Currency of the amount. Defaults to the reporting currency.")
	f.StringVar(&c.fees, "fees", "", "Fees paid on the transaction, in the amount currency")
	f.StringVar(&c.fx, "fx", "", "Exchange rate: units of reporting currency per unit of the amount currency")
	f.StringVar(&c.memo, "m", "", "An optional rationale or note for the transaction")
}

// transaction builds and validates the transaction described by the flags.
func (c *txFlags) transaction(kind cgt.Kind, currency string) (cgt.Transaction, error) {
	if c.quantity == "" || c.amount == "" {
		return cgt.Transaction{}, fmt.Errorf("-q and -a are required")
	}
	day, err := date.Parse(c.date)
	if err != nil {
		return cgt.Transaction{}, err
	}
	q, err := cgt.ParseQuantity(c.quantity)
	if err != nil {
		return cgt.Transaction{}, fmt.Errorf("invalid quantity %q: %w", c.quantity, err)
	}
	if c.currency != "" {
		currency = strings.ToUpper(c.currency)
	}
	amount, err := cgt.ParseMoney(c.amount, currency)
	if err != nil {
		return cgt.Transaction{}, err
	}
	tx := cgt.Transaction{Date: day, Kind: kind, Security: c.security, Quantity: q, Amount: amount, Fees: cgt.M(0, currency), Memo: c.memo}
	if c.fees != "" {
		if tx.Fees, err = cgt.ParseMoney(c.fees, currency); err != nil {
			return cgt.Transaction{}, err
		}
	}
	if c.fx != "" {
		if tx.FX, err = decimal.NewFromString(c.fx); err != nil {
			return cgt.Transaction{}, fmt.Errorf("invalid exchange rate %q: %w", c.fx, err)
		}
	}
	return tx, tx.Validate()
}

// record appends the transaction of kind described by flags to the ledger.
// A disposal that the ledger cannot match is refused.
func record(kind cgt.Kind, flags *txFlags, f *flag.FlagSet) subcommands.ExitStatus {
	config, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitUsageError
	}
	tx, err := flags.transaction(kind, config.Currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		f.Usage()
		return subcommands.ExitUsageError
	}

	if kind == cgt.Disposal {
		txs, err := DecodeLedger(config.Ledger)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitFailure
		}
		if _, _, err := cgt.Run(config.Currency, append(txs, tx), newLogger(config)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}
	return appendTransactions(config.Ledger, tx)
}

// --- Acquire Command ---

type acquireCmd struct {
	txFlags
}

func (*acquireCmd) Name() string     { return "acquire" }
func (*acquireCmd) Synopsis() string { return "record shares bought or vested" }
func (*acquireCmd) Usage() string {
	return `cgt acquire -d <date> -s <security> -q <quantity> -a <amount> [-c <currency>] [-fees <fees>] [-fx <rate>] [-m <memo>]

  Records an acquisition. Its cost basis is the amount plus the fees,
  converted to the reporting currency.
`
}

func (c *acquireCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return record(cgt.Acquisition, &c.txFlags, f)
}

// --- Dispose Command ---

type disposeCmd struct {
	txFlags
}

func (*disposeCmd) Name() string     { return "dispose" }
func (*disposeCmd) Synopsis() string { return "record shares sold" }
func (*disposeCmd) Usage() string {
	return `cgt dispose -d <date> -s <security> -q <quantity> -a <amount> [-c <currency>] [-fees <fees>] [-fx <rate>] [-m <memo>]

  Records a disposal. Its proceeds are the amount less the fees, converted to
  the reporting currency. The disposal is refused if the ledger does not hold
  enough shares of the security.
`
}

func (c *disposeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return record(cgt.Disposal, &c.txFlags, f)
}
