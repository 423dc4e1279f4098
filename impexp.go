package cgt

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/cgt/date"
	"github.com/shopspring/decimal"
)

// this file contains the import of broker exports into transactions, and the
// export of matches. Broker rows are normalized into the Transaction type
// before they reach the engine.

// CSVMapping names the CSV columns holding each transaction field.
// Columns are looked up by header, ignoring case and surrounding spaces.
type CSVMapping struct {
	Date     string
	Kind     string // Kind is the column with the record type ("Buy", "Sell", "Vest"...).
	Quantity string
	Amount   string // Amount is the column with the total value of the row.
	Security string // optional
	Fees     string // optional
	FX       string // FX is the optional column with the exchange rate of each row.
	Currency string // Currency of the amounts.
	// DefaultFX is the exchange rate of rows without one, zero for none.
	DefaultFX decimal.Decimal
	// Kinds maps record type values to a Kind. Values not in the map are
	// parsed with ParseKind, rows with an unknown record type are skipped.
	Kinds map[string]Kind
}

// DefaultCSVMapping returns the mapping of a generic broker gains export.
func DefaultCSVMapping() CSVMapping {
	return CSVMapping{
		Date:     "Date",
		Kind:     "Record Type",
		Quantity: "Quantity",
		Amount:   "Total",
		Security: "Symbol",
		Fees:     "Fees",
		FX:       "Exchange Rate",
		Currency: "USD",
	}
}

func (m CSVMapping) kind(s string) (Kind, bool) {
	if k, ok := m.Kinds[strings.TrimSpace(s)]; ok {
		return k, true
	}
	k, err := ParseKind(s)
	return k, err == nil
}

// ImportCSV reads transactions from a CSV export. Row order is kept.
func ImportCSV(r io.Reader, m CSVMapping) ([]Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("cannot read CSV header: %w", err)
	}
	index := func(name string, required bool) (int, error) {
		if name == "" && !required {
			return -1, nil
		}
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(name)) {
				return i, nil
			}
		}
		if !required {
			return -1, nil
		}
		return -1, fmt.Errorf("failed to find %q header", name)
	}

	var cols [7]int
	for i, c := range []struct {
		name     string
		required bool
	}{{m.Date, true}, {m.Kind, true}, {m.Quantity, true}, {m.Amount, true}, {m.Security, false}, {m.Fees, false}, {m.FX, false}} {
		if cols[i], err = index(c.name, c.required); err != nil {
			return nil, err
		}
	}
	field := func(row []string, col int) string {
		if col < 0 || col >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[col])
	}

	var txs []Transaction
	line := 1
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		kind, ok := m.kind(field(row, cols[1]))
		if !ok {
			continue
		}
		tx, err := newImportedTransaction(kind, field(row, cols[0]), field(row, cols[4]), field(row, cols[2]), field(row, cols[3]), field(row, cols[5]), m.Currency)
		if err == nil {
			tx.FX, err = importedFX(field(row, cols[6]), m.DefaultFX)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// JSONMapping locates transactions in a JSON broker export with jsonpath
// expressions. Records selects the list of rows, other paths are evaluated
// against each row.
type JSONMapping struct {
	Records  string
	Date     string
	Kind     string
	Quantity string
	Amount   string
	Security string // optional
	Fees     string // optional
	FX       string // optional
	Currency string
	// DefaultFX is the exchange rate of records without one, zero for none.
	DefaultFX decimal.Decimal
}

// DefaultJSONMapping returns a mapping for a document like
// {"transactions":[{"date":..,"type":..,"symbol":..,"quantity":..,"total":..,"fees":..,"fx":..}]}.
func DefaultJSONMapping() JSONMapping {
	return JSONMapping{
		Records:  "$.transactions",
		Date:     "$.date",
		Kind:     "$.type",
		Quantity: "$.quantity",
		Amount:   "$.total",
		Security: "$.symbol",
		Fees:     "$.fees",
		FX:       "$.fx",
		Currency: "USD",
	}
}

// ImportJSON reads transactions from a JSON export. Record order is kept and
// records with an unknown type are skipped.
func ImportJSON(r io.Reader, m JSONMapping) ([]Transaction, error) {
	var doc any
	dec := json.NewDecoder(r)
	dec.UseNumber() // keeps amounts exact
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot parse JSON export: %w", err)
	}
	jrecords, err := jsonpath.Get(m.Records, doc)
	if err != nil {
		return nil, fmt.Errorf("error evaluating records path %q: %w", m.Records, err)
	}
	records, ok := jrecords.([]any)
	if !ok {
		return nil, fmt.Errorf("records path %q is not a list", m.Records)
	}

	var txs []Transaction
	for i, record := range records {
		get := func(path string) (string, error) {
			if path == "" {
				return "", nil
			}
			return jsonpathString(path, record)
		}
		var fields [7]string
		for j, path := range []string{m.Kind, m.Date, m.Security, m.Quantity, m.Amount, m.Fees, m.FX} {
			if fields[j], err = get(path); err != nil {
				return nil, fmt.Errorf("record %d: %w", i, err)
			}
		}
		kind, err := ParseKind(fields[0])
		if err != nil {
			continue
		}
		tx, err := newImportedTransaction(kind, fields[1], fields[2], fields[3], fields[4], fields[5], m.Currency)
		if err == nil {
			tx.FX, err = importedFX(fields[6], m.DefaultFX)
		}
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// jsonpathString evaluates path on obj and returns the value as a string.
// A missing optional value is returned as "".
func jsonpathString(path string, obj any) (string, error) {
	jval, err := jsonpath.Get(path, obj)
	if err != nil {
		if strings.Contains(err.Error(), "unknown key") {
			return "", nil
		}
		return "", fmt.Errorf("error evaluating %q: %w", path, err)
	}
	// because jsonpath is never clear about wheter it returns a list of 1 answer, or a single answer:
	// by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok {
		if len(jlist) == 0 {
			return "", nil
		}
		jval = jlist[0]
	}
	switch v := jval.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("value at %q is neither a string nor a number: %v", path, jval)
	}
}

var amountCleaner = strings.NewReplacer("$", "", "€", "", "£", "", ",", "", " ", "")

// parseDecimal parses a broker amount like "$1,234.50". Empty is zero.
func parseDecimal(s string) (decimal.Decimal, error) {
	s = amountCleaner.Replace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}

func newImportedTransaction(kind Kind, day, security, quantity, amount, fees, currency string) (Transaction, error) {
	d, err := date.Parse(day)
	if err != nil {
		return Transaction{}, err
	}
	q, err := parseDecimal(quantity)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid quantity %q: %w", quantity, err)
	}
	a, err := parseDecimal(amount)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	f, err := parseDecimal(fees)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid fees %q: %w", fees, err)
	}
	// brokers often sign the quantity of a sale.
	q = q.Abs()
	tx := Transaction{
		Date:     d,
		Kind:     kind,
		Security: security,
		Quantity: Q(q),
		Amount:   M(a.Abs(), currency),
		Fees:     M(f.Abs(), currency),
	}
	return tx, tx.Validate()
}

// importedFX parses the exchange rate of a row, or returns def when the row
// has none.
func importedFX(s string, def decimal.Decimal) (decimal.Decimal, error) {
	fx, err := parseDecimal(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid exchange rate %q: %w", s, err)
	}
	if fx.IsNegative() {
		return decimal.Zero, fmt.Errorf("invalid exchange rate %q: must not be negative", s)
	}
	if fx.IsZero() {
		return def, nil
	}
	return fx, nil
}

// ExportMatchesCSV writes one CSV row per match, amounts rounded to the
// currency's minor unit. The local columns hold the amounts in the currency of
// the disposal, and FX its exchange rate when it was converted. Local cost and
// gain are left empty when the lot was acquired in another currency.
func ExportMatchesCSV(w io.Writer, matches []Match) error {
	cw := csv.NewWriter(w)
	header := []string{"Security", "Acquired", "Disposed", "Quantity", "Cost", "Proceeds", "Gain", "Currency",
		"Local Cost", "Local Proceeds", "Local Gain", "Local Currency", "FX"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, m := range matches {
		var localCost, localGain, fx string
		if gain, ok := m.LocalGain(); ok {
			localCost, localGain = m.LocalCost.Plain(), gain.Plain()
		}
		if !m.FX.IsZero() {
			fx = m.FX.String()
		}
		row := []string{
			m.Security,
			m.Acquired.String(),
			m.Disposed.String(),
			m.Quantity.String(),
			m.Cost.Plain(),
			m.Proceeds.Plain(),
			m.Gain.Plain(),
			m.Gain.Currency(),
			localCost,
			m.LocalProceeds.Plain(),
			localGain,
			m.LocalProceeds.Currency(),
			fx,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
