package cgt

import (
	"io"

	"github.com/phuslu/log"
)

// NewLogger returns a console logger writing to w at level ("debug", "info",
// "warn", "error"). Unknown levels fall back to info.
func NewLogger(level string, w io.Writer) *log.Logger {
	return &log.Logger{
		Level:      log.ParseLevel(level),
		TimeFormat: "15:04:05",
		Writer: &log.ConsoleWriter{
			Writer:         w,
			EndWithMessage: true,
		},
	}
}
