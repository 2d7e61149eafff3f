package models

// RelationClass is the hierarchical profiler's verdict on how a sample's
// coherence structure most plausibly arose.
type RelationClass string

const (
	ClassGenealogical RelationClass = "GENEALOGICAL"
	ClassAreal        RelationClass = "AREAL_CONVERGENCE"
	ClassIndetermin   RelationClass = "INDETERMINATE"

	// Sprachbund classes come from the precision decay classifier, not the
	// score-based profiler.
	ClassStableSprachbund     RelationClass = "STABLE_SPRACHBUND"
	ClassNearStableSprachbund RelationClass = "NEAR_STABLE_SPRACHBUND"
)

// ConfidenceLevel qualifies a classification.
type ConfidenceLevel string

const (
	ConfidenceHigh     ConfidenceLevel = "HIGH"
	ConfidenceModerate ConfidenceLevel = "MODERATE"
	ConfidenceLow      ConfidenceLevel = "LOW"
)

// HCPResult is the hierarchical coherence profile: three measures at
// increasing linguistic scope, their weighted genealogical score, and the
// derived classification.
type HCPResult struct {
	// ICC: mean pairwise similarity of same-clause token embeddings.
	ICC float64 `json:"icc"`
	// XCC: mean similarity of consecutive clause-level embeddings.
	XCC float64 `json:"xcc"`
	// MBC: coefficient of variation of token count per clause, a
	// structural-regularity proxy.
	MBC float64 `json:"mbc"`

	// GenealogicalScore = 0.5*MBC + 0.3*ICC + 0.2*XCC. Morphological
	// regularity carries the most weight, discourse the least.
	GenealogicalScore float64 `json:"genealogical_score"`

	Classification RelationClass   `json:"classification"`
	Confidence     ConfidenceLevel `json:"confidence"`
}

// DecayClass buckets a decay rate against fixed decimal thresholds.
type DecayClass string

const (
	DecayStable     DecayClass = "ultra_conserved_stable"
	DecayNearStable DecayClass = "near_stable"
	DecaySlow       DecayClass = "slow_decay"
	DecayDivergent  DecayClass = "divergent"
)
