package cgt

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestNewLogger(t *testing.T) {
	var b bytes.Buffer
	logger := NewLogger("warn", &b)
	logger.Info().Msg("hidden")
	if b.Len() != 0 {
		t.Errorf("info message written at warn level: %q", b.String())
	}
	logger.Warn().Str("security", "ACME").Msg("visible")
	if !strings.Contains(b.String(), "visible") || !strings.Contains(b.String(), "ACME") {
		t.Errorf("warn message missing from %q", b.String())
	}
}

func TestEngine_LogsMatches(t *testing.T) {
	var b bytes.Buffer
	e := NewEngine("USD", NewLogger("debug", &b))
	if err := e.IngestAll([]Transaction{buy(day(time.January, 1), 1, 1), sell(day(time.January, 2), 1, 2)}); err != nil {
		t.Fatalf("IngestAll() error = %v", err)
	}
	if !strings.Contains(b.String(), "matched") {
		t.Errorf("debug log = %q, want a matched entry", b.String())
	}
}
