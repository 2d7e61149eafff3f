// Package server puts the coherence engine behind an MCP stdio endpoint.
package server

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/coherencelab/glotta/internal/metrics"
)

// Server owns the MCP endpoint lifecycle around the analysis tools.
type Server struct {
	mcp    *mcp.Server
	logger *slog.Logger
}

// New builds the endpoint with logging middleware already attached. The
// collector is the same one the engine reports into, so tool call timings
// land next to the embedding and curve timings they contain. A nil
// collector disables timing collection but not logging.
func New(version string, logger *slog.Logger, collector *metrics.Collector) *Server {
	impl := &mcp.Implementation{
		Name:    "glotta",
		Version: version,
	}
	s := &Server{
		mcp:    mcp.NewServer(impl, nil),
		logger: logger,
	}
	s.mcp.AddReceivingMiddleware(LoggingMiddleware(logger, collector))
	return s
}

// Run serves on stdio and blocks until the client disconnects or the
// context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting MCP server", "transport", "stdio")
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// MCPServer exposes the underlying server for tool registration.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}
