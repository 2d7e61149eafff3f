// Package tools provides MCP tool handlers and registration.
package tools

import (
	"log/slog"

	"github.com/coherencelab/glotta/internal/db"
	"github.com/coherencelab/glotta/internal/metrics"
	"github.com/coherencelab/glotta/internal/physics"
)

// Dependencies holds shared services for tool handlers.
// Passed to handler factories via closure capture.
type Dependencies struct {
	Engine  *physics.Engine
	DB      *db.Client // nil when no archive is configured
	Logger  *slog.Logger
	Metrics *metrics.Collector
}

// log returns the configured logger or the process default.
func (d *Dependencies) log() *slog.Logger {
	if d != nil && d.Logger != nil {
		return d.Logger
	}
	return slog.Default()
}
