package tools

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/coherencelab/glotta/internal/db"
)

// ListRunsInput defines the input schema for the list_runs tool.
type ListRunsInput struct {
	Language string `json:"language,omitempty" jsonschema:"Filter by language"`
	Model    string `json:"model,omitempty" jsonschema:"Filter by embedding model"`
	Status   string `json:"status,omitempty" jsonschema:"Filter by physics status"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Max results 1-1000, default 50"`
}

// NewListRunsHandler creates the list_runs tool handler.
func NewListRunsHandler(deps *Dependencies) mcp.ToolHandlerFor[ListRunsInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ListRunsInput) (
		*mcp.CallToolResult, any, error,
	) {
		if deps.DB == nil {
			return ErrorResult("No run archive configured", "Set SURREALDB_URL to enable the archive"), nil, nil
		}
		if input.Limit > 1000 {
			return ErrorResult("Limit must be 1-1000", "Reduce limit value"), nil, nil
		}

		runs, err := deps.DB.ListRuns(ctx, db.RunFilter{
			Language: input.Language,
			Model:    input.Model,
			Status:   input.Status,
			Limit:    input.Limit,
		})
		if err != nil {
			deps.log().Error("list runs failed", "error", err)
			return ErrorResult("Failed to list runs", "Database may be unavailable"), nil, nil
		}
		return JSONResult(runs), nil, nil
	}
}

// GetRunInput defines the input schema for the get_run tool.
type GetRunInput struct {
	RunID string `json:"run_id" jsonschema:"required,Run id returned by analyze or list_runs"`
}

// NewGetRunHandler creates the get_run tool handler. It returns the full
// decoded report rather than the archive projection.
func NewGetRunHandler(deps *Dependencies) mcp.ToolHandlerFor[GetRunInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input GetRunInput) (
		*mcp.CallToolResult, any, error,
	) {
		if deps.DB == nil {
			return ErrorResult("No run archive configured", "Set SURREALDB_URL to enable the archive"), nil, nil
		}
		if input.RunID == "" {
			return ErrorResult("run_id cannot be empty", "Provide a run id"), nil, nil
		}

		rec, err := deps.DB.GetRun(ctx, input.RunID)
		if err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return ErrorResult("Run not found: "+input.RunID, "Use list_runs to see archived runs"), nil, nil
			}
			deps.log().Error("get run failed", "run_id", input.RunID, "error", err)
			return ErrorResult("Failed to fetch run", "Database may be unavailable"), nil, nil
		}

		result, err := db.DecodeReport(rec)
		if err != nil {
			deps.log().Error("report decode failed", "run_id", input.RunID, "error", err)
			return ErrorResult("Archived report is unreadable", ""), nil, nil
		}
		return JSONResult(result), nil, nil
	}
}
