// Package cli implements the plotkit command-line interface.
//
// Commands render the built-in demo figures, draw pie charts from word
// counts, print reflowed legend orders, serve figures over HTTP and manage
// the artifact cache. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Save a demo figure as SVG, PNG, JPEG, TIFF, PDF or EPS
//   - list: Show the available demos
//   - pie: Draw a pie chart of word counts
//   - reflow: Print the row-major order of a multi-column legend
//   - serve: Serve demo figures over HTTP
//   - cache: Manage the artifact cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// logTimeFormat prints hours through hundredths of a second, e.g. "14:32:01.45".
const logTimeFormat = "15:04:05.00"

// newLogger returns the logger every plotkit command writes through.
// Messages below level are dropped.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      logTimeFormat,
		Level:           level,
	})
}

// progress times a single render or pie draw. It is owned by one command
// invocation and must not be shared between goroutines.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress starts the clock for an operation reported to l.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level with the elapsed time rounded to the
// millisecond, as in "Rendered markevery (1.234s)".
func (p *progress) done(msg string) {
	elapsed := time.Since(p.start).Round(time.Millisecond)
	p.logger.Infof("%s (%s)", msg, elapsed)
}

// loggerKey stores the root command's logger in a command context.
type loggerKey struct{}

// withLogger attaches l to ctx. A nil ctx, which cobra passes when the
// command was executed without one, starts from context.Background.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger set by withLogger. Subcommands run
// outside the root command, as in tests, get log.Default.
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
			return l
		}
	}
	return log.Default()
}
