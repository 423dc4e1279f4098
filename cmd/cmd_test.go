package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

const scenarioLedger = `{"command":"acquire","date":"2024-01-01","security":"ACME","quantity":100,"amount":1000,"currency":"EUR"}
{"command":"acquire","date":"2024-03-01","security":"ACME","quantity":50,"amount":600,"currency":"EUR"}
{"command":"dispose","date":"2024-06-01","security":"ACME","quantity":120,"amount":2400,"currency":"EUR"}
{"command":"dispose","date":"2024-09-01","security":"ACME","quantity":30,"amount":450,"currency":"EUR"}
`

// setup points the global flags to a temporary ledger holding content, and
// captures the command output.
func setup(t *testing.T, content string) (ledger string, out *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	ledger = filepath.Join(dir, "transactions.jsonl")
	if content != "" {
		if err := os.WriteFile(ledger, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write ledger: %v", err)
		}
	}
	config := filepath.Join(dir, "missing.toml")
	plain := true
	out = &bytes.Buffer{}

	oldLedger, oldConfig, oldPlain, oldStdout := ledgerFile, configFile, plainOutput, stdout
	ledgerFile, configFile, plainOutput, stdout = &ledger, &config, &plain, out
	t.Cleanup(func() {
		ledgerFile, configFile, plainOutput, stdout = oldLedger, oldConfig, oldPlain, oldStdout
	})
	return ledger, out
}

// execute runs the command c with args.
func execute(t *testing.T, c subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("Failed to parse %v: %v", args, err)
	}
	return c.Execute(context.Background(), f)
}

func TestReportCmd(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want []string
	}{
		{"default", nil, []string{"Capital Gains Tax Report 2024", "€1,250.00", "Taxable gain (amount above exemption)", "Tax to pay", "€0.00"}},
		{"lower exemption", []string{"-exemption", "1000", "-rate", "33%"}, []string{"€250.00", "€82.50"}},
		{"other year", []string{"-year", "2023"}, []string{"No disposals in 2023."}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, out := setup(t, scenarioLedger)
			if status := execute(t, &reportCmd{}, tc.args...); status != subcommands.ExitSuccess {
				t.Fatalf("Expected ExitSuccess, got %v", status)
			}
			for _, want := range tc.want {
				if !strings.Contains(out.String(), want) {
					t.Errorf("report output does not contain %q:\n%s", want, out.String())
				}
			}
		})
	}
}

func TestReportCmd_Errors(t *testing.T) {
	setup(t, `{"command":"dispose","date":"2024-06-01","security":"ACME","quantity":1,"amount":10,"currency":"EUR"}`)
	if status := execute(t, &reportCmd{}); status != subcommands.ExitFailure {
		t.Errorf("report on an unmatched disposal: expected ExitFailure, got %v", status)
	}
	if status := execute(t, &reportCmd{}, "-rate", "2"); status != subcommands.ExitUsageError {
		t.Errorf("report with a rate of 200%%: expected ExitUsageError, got %v", status)
	}
}

func TestMatchesCmd(t *testing.T) {
	_, out := setup(t, scenarioLedger)
	if status := execute(t, &matchesCmd{}); status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}
	for _, want := range []string{"# Matches", "+€1,000.00", "+€160.00", "+€90.00", "+€1,250.00"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("matches output does not contain %q:\n%s", want, out.String())
		}
	}
}

func TestLotsCmd(t *testing.T) {
	content := strings.Join(strings.Split(scenarioLedger, "\n")[:3], "\n")
	_, out := setup(t, content)
	if status := execute(t, &lotsCmd{}, "-format", "text"); status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}
	for _, want := range []string{"ACME", "2024-03-01", "30", "360.00"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("lots output does not contain %q:\n%s", want, out.String())
		}
	}

	if status := execute(t, &lotsCmd{}, "-format", "html"); status != subcommands.ExitUsageError {
		t.Errorf("lots -format html: expected ExitUsageError, got %v", status)
	}
}

func TestExportCmd(t *testing.T) {
	ledger, _ := setup(t, scenarioLedger)
	output := filepath.Join(filepath.Dir(ledger), "matches.csv")
	if status := execute(t, &exportCmd{}, "-o", output); status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	want := `Security,Acquired,Disposed,Quantity,Cost,Proceeds,Gain,Currency,Local Cost,Local Proceeds,Local Gain,Local Currency,FX
ACME,2024-01-01,2024-06-01,100,1000.00,2000.00,1000.00,EUR,1000.00,2000.00,1000.00,EUR,
ACME,2024-03-01,2024-06-01,20,240.00,400.00,160.00,EUR,240.00,400.00,160.00,EUR,
ACME,2024-03-01,2024-09-01,30,360.00,450.00,90.00,EUR,360.00,450.00,90.00,EUR,
`
	if got := string(data); got != want {
		t.Errorf("export =\n%s\nwant\n%s", got, want)
	}
}

func TestCheckCmd(t *testing.T) {
	_, out := setup(t, scenarioLedger)
	if status := execute(t, &checkCmd{}); status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}
	if !strings.Contains(out.String(), "4 transactions, 3 matches, 0 open lots") {
		t.Errorf("check output = %q", out.String())
	}

	setup(t, `{"command":"acquire","date":"2024-01-01","quantity":0,"amount":10}`)
	if status := execute(t, &checkCmd{}); status != subcommands.ExitFailure {
		t.Errorf("check of an invalid ledger: expected ExitFailure, got %v", status)
	}
}

func TestAcquireDisposeCmd(t *testing.T) {
	ledger, _ := setup(t, "")

	if status := execute(t, &acquireCmd{}, "-d", "2024-01-01", "-s", "ACME", "-q", "10", "-a", "100", "-fees", "1"); status != subcommands.ExitSuccess {
		t.Fatalf("acquire: expected ExitSuccess, got %v", status)
	}
	// More than held: refused, and the ledger is left unchanged.
	if status := execute(t, &disposeCmd{}, "-d", "2024-02-01", "-s", "ACME", "-q", "11", "-a", "200"); status != subcommands.ExitFailure {
		t.Errorf("dispose of 11 shares: expected ExitFailure, got %v", status)
	}
	if status := execute(t, &disposeCmd{}, "-d", "2024-02-01", "-s", "ACME", "-q", "4", "-a", "80", "-c", "usd", "-fx", "0.9"); status != subcommands.ExitSuccess {
		t.Fatalf("dispose: expected ExitSuccess, got %v", status)
	}
	if status := execute(t, &acquireCmd{}, "-s", "ACME", "-q", "10"); status != subcommands.ExitUsageError {
		t.Errorf("acquire without amount: expected ExitUsageError, got %v", status)
	}

	data, err := os.ReadFile(ledger)
	if err != nil {
		t.Fatalf("Failed to read ledger: %v", err)
	}
	want := `{"command":"acquire","date":"2024-01-01","security":"ACME","quantity":10,"amount":100,"currency":"EUR","fees":1}
{"command":"dispose","date":"2024-02-01","security":"ACME","quantity":4,"amount":80,"currency":"USD","fx":0.9}
`
	if got := string(data); got != want {
		t.Errorf("ledger =\n%s\nwant\n%s", got, want)
	}
}

func TestImportCmd(t *testing.T) {
	ledger, out := setup(t, "")
	dir := filepath.Dir(ledger)
	export := filepath.Join(dir, "export.csv")
	content := `Date,Record Type,Symbol,Quantity,Total,Fees
1/2/2024,Buy,ACME,10,"$1,000.00",$1.00
3/4/2024,Dividend,ACME,,$5.00,
`
	if err := os.WriteFile(export, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write export: %v", err)
	}

	if status := execute(t, &importCmd{}, "-n", export); status != subcommands.ExitSuccess {
		t.Fatalf("import -n: expected ExitSuccess, got %v", status)
	}
	want := `{"command":"acquire","date":"2024-01-02","security":"ACME","quantity":10,"amount":1000,"currency":"USD","fees":1}` + "\n"
	if got := out.String(); got != want {
		t.Errorf("import -n output =\n%s\nwant\n%s", got, want)
	}
	if _, err := os.Stat(ledger); !os.IsNotExist(err) {
		t.Errorf("import -n wrote the ledger")
	}

	// Dollar rows cannot be reported in euros without an exchange rate.
	if status := execute(t, &importCmd{}, export); status != subcommands.ExitFailure {
		t.Errorf("import without exchange rate: expected ExitFailure, got %v", status)
	}
	if _, err := os.Stat(ledger); !os.IsNotExist(err) {
		t.Errorf("import without exchange rate wrote the ledger")
	}

	if status := execute(t, &importCmd{}, "-fx", "0.9", export); status != subcommands.ExitSuccess {
		t.Fatalf("import: expected ExitSuccess, got %v", status)
	}
	data, err := os.ReadFile(ledger)
	if err != nil {
		t.Fatalf("Failed to read ledger: %v", err)
	}
	want = `{"command":"acquire","date":"2024-01-02","security":"ACME","quantity":10,"amount":1000,"currency":"USD","fees":1,"fx":0.9}` + "\n"
	if string(data) != want {
		t.Errorf("ledger =\n%s\nwant\n%s", data, want)
	}
	if status := execute(t, &importCmd{}, "-fx", "-1", export); status != subcommands.ExitUsageError {
		t.Errorf("import -fx -1: expected ExitUsageError, got %v", status)
	}

	if status := execute(t, &importCmd{}, "-format", "xml", export); status != subcommands.ExitUsageError {
		t.Errorf("import -format xml: expected ExitUsageError, got %v", status)
	}
}

func TestImportThenReport(t *testing.T) {
	ledger, out := setup(t, "")
	export := filepath.Join(filepath.Dir(ledger), "export.csv")
	content := `Date,Record Type,Symbol,Quantity,Total,Fees,Exchange Rate
1/2/2024,Buy,ACME,10,"$1,000.00",,0.9
6/3/2024,Sell,ACME,-10,"$3,000.00",,0.8
`
	if err := os.WriteFile(export, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write export: %v", err)
	}
	if status := execute(t, &importCmd{}, export); status != subcommands.ExitSuccess {
		t.Fatalf("import: expected ExitSuccess, got %v", status)
	}
	out.Reset()

	if status := execute(t, &reportCmd{}); status != subcommands.ExitSuccess {
		t.Fatalf("report: expected ExitSuccess, got %v", status)
	}
	// 3000 * 0.8 - 1000 * 0.9 = 1500 in euros, 2000 in dollars.
	for _, want := range []string{"€1,500.00", "Periods in USD", "$2,000.00", "€230.00"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("report output does not contain %q:\n%s", want, out.String())
		}
	}
}

func TestCompletion(t *testing.T) {
	c := Completion()
	for _, cmd := range Commands {
		if _, ok := c.Sub[cmd.Name()]; !ok {
			t.Errorf("Completion() misses the %q command", cmd.Name())
		}
	}
	if _, ok := c.Sub["lots"].Flags["format"]; !ok {
		t.Errorf("Completion() misses the lots -format flag")
	}
	if _, ok := c.Flags["ledger"]; !ok {
		t.Errorf("Completion() misses the global -ledger flag")
	}
}

func TestTopicCmd(t *testing.T) {
	_, out := setup(t, "")
	if status := execute(t, &topicCmd{}, "fifo"); status != subcommands.ExitSuccess {
		t.Fatalf("Expected ExitSuccess, got %v", status)
	}
	if !strings.Contains(out.String(), "# FIFO matching") {
		t.Errorf("topic fifo output = %q", out.String())
	}
	if status := execute(t, &topicCmd{}, "nope"); status != subcommands.ExitUsageError {
		t.Errorf("topic nope: expected ExitUsageError, got %v", status)
	}
}
