// Package cli implements the gridglob command-line interface.
//
// This package provides commands for compiling layout documents, checking
// compiled trees, serving the compile pipeline over HTTP, and managing the
// result cache. The CLI is built using cobra and supports verbose logging
// via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - compile: Apply a document's constraints and write the compiled tree
//   - check: Validate a compiled tree
//   - serve: Run the HTTP compile service
//   - cache: Manage the result cache
//
// # Configuration
//
// Engine, cache, and server settings are read from gridglob.toml in the
// working directory or $XDG_CONFIG_HOME/gridglob/. Flags override it.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs every engine event (containers created, globs, shifts). The starting
// level can be set with $GRIDGLOB_LOG_LEVEL. Loggers are passed through
// context.Context.
package cli

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// envLogLevel names the environment variable read by [DefaultLogLevel].
const envLogLevel = "GRIDGLOB_LOG_LEVEL"

// DefaultLogLevel returns the level named by $GRIDGLOB_LOG_LEVEL (debug,
// info, warn, error), or info when it is unset or unparsable.
func DefaultLogLevel() log.Level {
	if s := os.Getenv(envLogLevel); s != "" {
		if lvl, err := log.ParseLevel(s); err == nil {
			return lvl
		}
	}
	return LogInfo
}

// newLogger creates a timestamped logger ("14:32:01.45") writing to w.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one command step.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level with keyvals and the elapsed time, rounded
// to the millisecond.
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the command logger, or log.Default() outside a
// command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
