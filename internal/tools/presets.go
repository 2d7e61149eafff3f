package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/coherencelab/glotta/internal/config"
	"github.com/coherencelab/glotta/internal/models"
)

// ListPresetsInput defines the input schema for the list_presets tool.
// The tool takes no arguments.
type ListPresetsInput struct{}

// NewListPresetsHandler creates the list_presets tool handler.
func NewListPresetsHandler(deps *Dependencies) mcp.ToolHandlerFor[ListPresetsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListPresetsInput) (
		*mcp.CallToolResult, any, error,
	) {
		presets := make(map[string]models.Thresholds)
		for _, name := range config.PresetNames() {
			t, err := config.Preset(name)
			if err != nil {
				continue
			}
			presets[name] = t
		}
		return JSONResult(presets), nil, nil
	}
}
