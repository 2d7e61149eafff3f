package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// PingInput defines the input schema for the ping tool.
type PingInput struct {
	Echo string `json:"echo,omitempty" jsonschema:"Text to echo back alongside the status"`
}

// PingOutput reports endpoint liveness and which collaborators are wired.
type PingOutput struct {
	Status        string  `json:"status"`
	Model         string  `json:"model"`
	Archive       bool    `json:"archive"`
	UptimeSeconds float64 `json:"uptime_seconds,omitempty"`
	Echo          string  `json:"echo,omitempty"`
}

// NewPingHandler creates the ping tool handler. It answers without running
// any analysis, so a response proves the transport and the wiring rather
// than the physics.
func NewPingHandler(deps *Dependencies) mcp.ToolHandlerFor[PingInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input PingInput) (*mcp.CallToolResult, any, error) {
		out := PingOutput{
			Status:  "ok",
			Model:   deps.Engine.Model(),
			Archive: deps.DB != nil,
			Echo:    input.Echo,
		}
		if deps.Metrics != nil {
			out.UptimeSeconds = deps.Metrics.Snapshot().UptimeSeconds
		}
		return JSONResult(out), nil, nil
	}
}
