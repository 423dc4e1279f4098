package cgt

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/cgt/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// jtransaction is the ledger line format of a Transaction.
type jtransaction struct {
	Command  string          `json:"command"`
	Date     date.Date       `json:"date"`
	Security string          `json:"security"`
	Quantity Quantity        `json:"quantity"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Fees     decimal.Decimal `json:"fees"`
	FX       decimal.Decimal `json:"fx"`
	Memo     string          `json:"memo"`
}

// MarshalJSON writes the transaction fields in a stable order, omitting empty ones.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("command", t.Kind)
	w.Append("date", t.Date)
	w.Optional("security", t.Security)
	w.Append("quantity", t.Quantity)
	w.Append("amount", t.Amount.value)
	w.Optional("currency", t.Amount.cur)
	if !t.Fees.IsZero() {
		w.Append("fees", t.Fees.value)
	}
	if !t.FX.IsZero() {
		w.Append("fx", t.FX)
	}
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// UnmarshalJSON reads a ledger line. The command accepts broker wordings, see ParseKind.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var j jtransaction
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	kind, err := ParseKind(j.Command)
	if err != nil {
		return err
	}
	*t = Transaction{
		Date:     j.Date,
		Kind:     kind,
		Security: j.Security,
		Quantity: j.Quantity,
		Amount:   M(j.Amount, j.Currency),
		Fees:     M(j.Fees, j.Currency),
		FX:       j.FX,
		Memo:     j.Memo,
	}
	return nil
}

// DecodeTransactions reads a JSONL ledger, one transaction per line.
// The order of the lines is kept as is.
func DecodeTransactions(r io.Reader) ([]Transaction, error) {
	var txs []Transaction
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue // Skip empty lines
		}
		var tx Transaction
		if err := json.Unmarshal(line, &tx); err != nil {
			return nil, fmt.Errorf("line %d: %q: %w", i, string(line), err)
		}
		txs = append(txs, tx)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read ledger: %w", err)
	}
	return txs, nil
}

// EncodeTransaction writes tx as a single JSONL line.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := json.Marshal(tx)
	if err != nil {
		return fmt.Errorf("cannot marshal transaction: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("cannot write transaction: %w", err)
	}
	return nil
}

// EncodeTransactions writes all txs as JSONL.
func EncodeTransactions(w io.Writer, txs []Transaction) error {
	for _, tx := range txs {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
