package models

// EmbeddingDiagnostics summarizes a vector batch before any physics runs.
// Derived once, never mutated.
type EmbeddingDiagnostics struct {
	TotalVectors      int `json:"total_vectors"`
	ValidVectors      int `json:"valid_vectors"`
	ZeroVectors       int `json:"zero_vectors"`
	DegenerateVectors int `json:"degenerate_vectors"`

	AvgNorm float64 `json:"avg_norm"`
	MinNorm float64 `json:"min_norm"`
	MaxNorm float64 `json:"max_norm"`

	// Pairwise similarity over a capped sample of vector pairs.
	SampledPairs   int     `json:"sampled_pairs"`
	AvgPairwiseSim float64 `json:"avg_pairwise_sim"`
	IdenticalPairs int     `json:"identical_pairs"`
}

// Usability is the gate decision derived from diagnostics.
type Usability struct {
	Valid bool `json:"valid"`

	// Degenerate marks a constant-like corpus: usable, but the engine
	// short-circuits to the perfect-coherence result.
	Degenerate bool `json:"degenerate"`

	Reason string `json:"reason,omitempty"`
}
