package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/coherencelab/glotta/internal/bootstrap"
	"github.com/coherencelab/glotta/internal/config"
	"github.com/coherencelab/glotta/internal/models"
	"github.com/coherencelab/glotta/internal/physics"
)

// StabilityInput defines the input schema for the stability tool.
type StabilityInput struct {
	Language    string          `json:"language" jsonschema:"required,Language name or tag for the corpus"`
	Samples     []models.Sample `json:"samples" jsonschema:"required,Corpus samples to resample from"`
	MinN        int             `json:"min_n,omitempty" jsonschema:"Smallest sample size to scan, default 10"`
	MaxN        int             `json:"max_n,omitempty" jsonschema:"Largest sample size to scan, default corpus size"`
	StepN       int             `json:"step_n,omitempty" jsonschema:"Scan step, default 10"`
	Trials      int             `json:"trials,omitempty" jsonschema:"Bootstrap trials per size, default 50"`
	CVThreshold float64         `json:"cv_threshold,omitempty" jsonschema:"Coefficient-of-variation stability cut, default 0.05"`
	Seed        uint32          `json:"seed,omitempty" jsonschema:"Bootstrap seed; 0 derives one from the corpus"`
}

// NewStabilityHandler creates the stability tool handler. Each bootstrap
// trial runs the full pipeline on a resampled corpus without the clause
// profiler, which would multiply embedding calls by the trial count.
func NewStabilityHandler(deps *Dependencies, cfg *config.Config) mcp.ToolHandlerFor[StabilityInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input StabilityInput) (
		*mcp.CallToolResult, any, error,
	) {
		if input.Language == "" {
			return ErrorResult("Language cannot be empty", "Provide a language name"), nil, nil
		}
		if len(input.Samples) == 0 {
			return ErrorResult("Samples cannot be empty", "Provide at least one sample"), nil, nil
		}

		analyze := func(samples []models.Sample) (bootstrap.TrialMetrics, error) {
			result, err := deps.Engine.Analyze(ctx, samples, physics.Config{
				Language:        input.Language,
				MinValidVectors: cfg.MinValidVectors,
				Seed:            input.Seed,
				SkipHierarchy:   true,
			})
			if err != nil {
				return bootstrap.TrialMetrics{}, err
			}
			return bootstrap.TrialMetrics{
				Lambda:     result.Decay.Lambda,
				Kappa:      result.Asymmetry.KappaMax,
				FitQuality: result.Decay.FitQuality,
			}, nil
		}

		scan := bootstrap.ScanStability(input.Samples, analyze, bootstrap.Config{
			MinN:        input.MinN,
			MaxN:        input.MaxN,
			StepN:       input.StepN,
			Trials:      input.Trials,
			CVThreshold: input.CVThreshold,
			Seed:        input.Seed,
		}, deps.log())

		deps.log().Info("stability scan completed",
			"language", input.Language, "n_crit", scan.NCrit, "stabilized", scan.Stabilized)
		return JSONResult(scan), nil, nil
	}
}
