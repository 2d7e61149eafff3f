package models

import (
	"time"

	"github.com/google/uuid"
)

// Thresholds is a named physics-threshold preset. A run passes when
// lambda <= EnergyLossFloor, forward coherence >= StructuralIntegrityFloor,
// and kappa <= KappaThreshold.
type Thresholds struct {
	EnergyLossFloor          float64 `json:"energy_loss_floor" yaml:"energy_loss_floor"`
	StructuralIntegrityFloor float64 `json:"structural_integrity_floor" yaml:"structural_integrity_floor"`
	KappaThreshold           float64 `json:"kappa_threshold" yaml:"kappa_threshold"`
}

// Result is the full outcome of one analysis run. It is a value object:
// created once, never mutated, lifetime owned by the caller.
type Result struct {
	ID         uuid.UUID `json:"id"`
	Language   string    `json:"language"`
	Model      string    `json:"model"`
	Preset     string    `json:"preset"`
	SampleSize int       `json:"sample_size"`

	Status PhysicsStatus `json:"status"`
	Reason string        `json:"reason,omitempty"`

	Diagnostics EmbeddingDiagnostics `json:"diagnostics"`

	// Physics metrics. NaN-valued only when Status is not COMPUTED.
	Curves    []CoherenceCurve  `json:"curves,omitempty"`
	Decay     DecayAnalysis     `json:"decay"`
	Asymmetry AsymmetryAnalysis `json:"asymmetry"`

	// Information metrics over the token stream.
	ShannonEntropy float64 `json:"shannon_entropy"`
	MutualInfo     float64 `json:"mutual_info"`
	KLDivergence   float64 `json:"kl_divergence"`

	// Structural heuristics.
	AvgClauses          float64 `json:"avg_clauses"`
	IntraClauseCoh      float64 `json:"intra_clause_coh"`
	InterClauseCoh      float64 `json:"inter_clause_coh"`
	MonoclausalDominant bool    `json:"monoclausal_dominant"`
	Morphology          string  `json:"morphology"`

	// OrderSensitivity measures how much lag-1 coherence changes under a
	// seeded shuffle of the corpus; sequentially structured corpora score
	// well above zero while kappa stays put.
	OrderSensitivity float64 `json:"order_sensitivity"`

	// Threshold gate outcome for the active preset. A failed gate does not
	// change Status; the metrics are still fully computed.
	Passed      bool     `json:"passed"`
	FailedGates []string `json:"failed_gates,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}
