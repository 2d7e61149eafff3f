package tools

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/coherencelab/glotta/internal/config"
	"github.com/coherencelab/glotta/internal/hierarchy"
)

// RegisterAll registers all tools with the MCP server.
// This is called from main after server creation but before Run().
func RegisterAll(server *mcp.Server, deps *Dependencies, cfg *config.Config, profiler *hierarchy.Profiler) {
	// Liveness and wiring check
	mcp.AddTool(server, &mcp.Tool{
		Name:        "ping",
		Description: "Report endpoint liveness, the active embedding model, and whether the run archive is wired",
	}, NewPingHandler(deps))

	// Full pipeline over a submitted corpus
	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze",
		Description: "Run the coherence analysis pipeline on a corpus: diagnostics, decay fit, asymmetry, information metrics",
	}, NewAnalyzeHandler(deps, cfg))

	// Bootstrap stability scan for N_crit
	mcp.AddTool(server, &mcp.Tool{
		Name:        "stability",
		Description: "Scan sample sizes with bootstrap resampling to find the smallest size where the decay rate stabilizes",
	}, NewStabilityHandler(deps, cfg))

	// Decay-rate bucketing against fixed thresholds
	mcp.AddTool(server, &mcp.Tool{
		Name:        "classify_decay",
		Description: "Classify a fitted decay rate into stability buckets and report the sprachbund verdict",
	}, NewClassifyDecayHandler(deps))

	// Hierarchical coherence profile
	mcp.AddTool(server, &mcp.Tool{
		Name:        "profile",
		Description: "Compute the hierarchical coherence profile (intra-clause, cross-clause, boundary clarity) and classify it",
	}, NewProfileHandler(deps, profiler))

	// Run archive
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_runs",
		Description: "List archived analysis runs, newest first, with optional language/model/status filters",
	}, NewListRunsHandler(deps))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_run",
		Description: "Fetch one archived run's full report by run id",
	}, NewGetRunHandler(deps))

	// Threshold presets
	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_presets",
		Description: "List threshold presets with their gate values",
	}, NewListPresetsHandler(deps))
}
