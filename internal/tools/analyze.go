package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/coherencelab/glotta/internal/config"
	"github.com/coherencelab/glotta/internal/models"
	"github.com/coherencelab/glotta/internal/physics"
)

// AnalyzeInput defines the input schema for the analyze tool.
type AnalyzeInput struct {
	Language string          `json:"language" jsonschema:"required,Language name or tag for the corpus"`
	Samples  []models.Sample `json:"samples" jsonschema:"required,Corpus samples; original text required per sample"`
	Preset   string          `json:"preset,omitempty" jsonschema:"Threshold preset name, default from server config"`
	Seed     uint32          `json:"seed,omitempty" jsonschema:"PRNG seed; 0 selects deterministic mode"`
	MaxLag   int             `json:"max_lag,omitempty" jsonschema:"Maximum coherence lag, default 5"`
	Archive  bool            `json:"archive,omitempty" jsonschema:"Store the result in the run archive"`
}

// NewAnalyzeHandler creates the analyze tool handler. It runs the full
// pipeline on the submitted corpus and optionally archives the result.
func NewAnalyzeHandler(deps *Dependencies, cfg *config.Config) mcp.ToolHandlerFor[AnalyzeInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input AnalyzeInput) (
		*mcp.CallToolResult, any, error,
	) {
		if input.Language == "" {
			return ErrorResult("Language cannot be empty", "Provide a language name"), nil, nil
		}
		if len(input.Samples) == 0 {
			return ErrorResult("Samples cannot be empty", "Provide at least one sample"), nil, nil
		}
		for _, s := range input.Samples {
			if s.Original == "" {
				return ErrorResult("Sample has empty original text", "Every sample needs an original field"), nil, nil
			}
		}

		preset := input.Preset
		if preset == "" {
			preset = cfg.Preset
		}
		thresholds, err := config.Preset(preset)
		if err != nil {
			return ErrorResult("Unknown preset "+preset, "Use list_presets to see available presets"), nil, nil
		}

		result, err := deps.Engine.Analyze(ctx, input.Samples, physics.Config{
			Language:        input.Language,
			Preset:          preset,
			Thresholds:      thresholds,
			MinValidVectors: cfg.MinValidVectors,
			MaxLag:          input.MaxLag,
			Seed:            input.Seed,
		})
		if err != nil {
			deps.log().Error("analysis failed", "language", input.Language, "error", err)
			return ErrorResult("Analysis failed: "+err.Error(), "Check the embedding backend"), nil, nil
		}

		if input.Archive {
			if deps.DB == nil {
				return ErrorResult("No run archive configured", "Set SURREALDB_URL to enable archiving"), nil, nil
			}
			if _, err := deps.DB.ArchiveRun(ctx, result); err != nil {
				deps.log().Error("archive failed", "run_id", result.ID, "error", err)
				return ErrorResult("Failed to archive run", "Database may be unavailable"), nil, nil
			}
		}

		deps.log().Info("analysis completed",
			"language", input.Language, "samples", len(input.Samples), "status", result.Status)
		return JSONResult(result), nil, nil
	}
}
