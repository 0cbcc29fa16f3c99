// Package cli implements the skillgraph command-line interface.
//
// The interactive view runs the engine inside a bubbletea program and draws
// frames with the terminal sink. The render command runs the same engine
// headlessly through the pipeline. The CLI is built using cobra and logs
// via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - view: Browse the graph in the terminal
//   - render: Generate SVG, PNG, PDF, DOT or JSON output
//   - inspect: Print connectivity statistics
//   - catalog: Export the embedded catalog
//   - config, cache: Manage the config file and the render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context, and library hooks are routed into the
// same logger.
//
// # Example
//
//	import "github.com/matzehuels/skillgraph/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns a logger on w that stamps each line with the time of
// day to the hundredth of a second.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs how long an operation took.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "render complete (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

// loggerFromContext returns the logger stored by withLogger, or the
// package default when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
