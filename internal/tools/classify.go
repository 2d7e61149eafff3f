package tools

import (
	"context"
	"math"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/coherencelab/glotta/internal/hierarchy"
	"github.com/coherencelab/glotta/internal/models"
)

// ClassifyDecayInput defines the input schema for the classify_decay tool.
type ClassifyDecayInput struct {
	Lambda *float64 `json:"lambda" jsonschema:"required,Fitted decay rate to classify"`
}

// ClassifyDecayOutput is the classify_decay response payload.
type ClassifyDecayOutput struct {
	DecayClass  models.DecayClass    `json:"decay_class"`
	Sprachbund  models.RelationClass `json:"sprachbund_class,omitempty"`
	IsStable    bool                 `json:"is_stable"`
	LambdaInput float64              `json:"lambda_input"`
}

// NewClassifyDecayHandler creates the classify_decay tool handler. It buckets
// a decay rate against the fixed decimal thresholds and reports the
// sprachbund verdict for stable rates.
func NewClassifyDecayHandler(deps *Dependencies) mcp.ToolHandlerFor[ClassifyDecayInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ClassifyDecayInput) (
		*mcp.CallToolResult, any, error,
	) {
		if input.Lambda == nil {
			return ErrorResult("Lambda is required", "Provide the fitted decay rate"), nil, nil
		}
		lambda := *input.Lambda
		if lambda < 0 {
			return ErrorResult("Lambda cannot be negative", "Decay rates are clamped to zero or above"), nil, nil
		}

		out := ClassifyDecayOutput{
			DecayClass:  hierarchy.ClassifyDecayPrecision(lambda),
			LambdaInput: lambda,
		}
		if sb, ok := hierarchy.SprachbundClass(lambda); ok {
			out.Sprachbund = sb
			out.IsStable = true
		}

		deps.log().Debug("decay classified", "lambda", lambda, "class", out.DecayClass)
		return JSONResult(out), nil, nil
	}
}

// ProfileInput defines the input schema for the profile tool.
type ProfileInput struct {
	Samples []models.Sample `json:"samples" jsonschema:"required,Corpus samples; gloss fields improve morphology detection"`
}

// NewProfileHandler creates the profile tool handler. It computes the
// three-scope hierarchical coherence profile and its classification.
func NewProfileHandler(deps *Dependencies, profiler *hierarchy.Profiler) mcp.ToolHandlerFor[ProfileInput, any] {
	return func(ctx context.Context, req *mcp.CallToolRequest, input ProfileInput) (
		*mcp.CallToolResult, any, error,
	) {
		if len(input.Samples) == 0 {
			return ErrorResult("Samples cannot be empty", "Provide at least one sample"), nil, nil
		}

		profile, err := profiler.Profile(ctx, input.Samples)
		if err != nil {
			deps.log().Error("profiling failed", "error", err)
			return ErrorResult("Profiling failed: "+err.Error(), "Check the embedding backend"), nil, nil
		}
		classified := hierarchy.Classify(profile)
		if math.IsNaN(classified.GenealogicalScore) {
			return ErrorResult("Profile produced no usable score", "Corpus may be too small to segment"), nil, nil
		}
		return JSONResult(classified), nil, nil
	}
}
