// Package cli implements the blobposter command-line interface.
//
// The CLI is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - render: Compose a poster and write SVG, PNG, PDF or JSON files
//   - tune: Adjust a poster interactively in the terminal
//   - serve: Serve the poster form and download API over HTTP
//   - config: Print or write TOML configuration files
//   - presets: List the built-in presets
//   - cache: Manage the rendered-poster cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so helpers can log without extra parameters.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger writing to w at level. Debug output adds the
// caller so -v traces point at the emitting command.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		ReportCaller:    level <= log.DebugLevel,
		TimeFormat:      time.TimeOnly,
		Prefix:          appName,
		Level:           level,
	})
}

type loggerKey struct{}

// withLogger attaches l to ctx for helpers that only receive a context.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger, or the
// charmbracelet default.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
