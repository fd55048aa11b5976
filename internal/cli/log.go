// Package cli implements the graphload command-line interface.
//
// The commands wrap the library packages: load reads a property graph from
// a source into memory using a [loadconfig.Config] assembled from flags and
// an optional TOML profile, config prints that configuration without
// loading, and cache manages stored load results.
//
// # Commands
//
//   - load: Load a graph and optionally snapshot it, export DOT or SVG
//   - config: Print the resolved load configuration and its derived queries
//   - cache: Manage the load cache
//   - completion: Generate shell completion scripts
//
// # Sources
//
// --source selects the backing store. Connection settings come from the
// environment, after a .env file in the working directory is applied:
//
//	GRAPHLOAD_NEO4J_URI, GRAPHLOAD_NEO4J_USER, GRAPHLOAD_NEO4J_PASSWORD, GRAPHLOAD_NEO4J_DATABASE
//	GRAPHLOAD_POSTGRES_URL, GRAPHLOAD_POSTGRES_NODES, GRAPHLOAD_POSTGRES_RELATIONSHIPS
//	GRAPHLOAD_MONGO_URI, GRAPHLOAD_MONGO_DATABASE
//	GRAPHLOAD_REDIS_ADDR, GRAPHLOAD_REDIS_PASSWORD, GRAPHLOAD_REDIS_DB
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, rounded to the millisecond.
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}
