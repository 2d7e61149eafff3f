package models

import (
	"time"

	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"
)

// RunRecord is the archived projection of a Result. Headline metrics live in
// typed columns so the archive can be filtered and ranked in SurrealQL; the
// full result rides along as a JSON report string.
type RunRecord struct {
	ID surrealmodels.RecordID `json:"id"`

	RunID      string `json:"run_id"`
	Language   string `json:"language"`
	Model      string `json:"model"`
	Preset     string `json:"preset"`
	SampleSize int    `json:"sample_size"`

	Status string `json:"status"`
	Passed bool   `json:"passed"`

	// Non-finite metrics are stored as null; SurrealDB floats cannot hold
	// NaN through the CBOR codec.
	Lambda          *float64 `json:"lambda"`
	CoherenceRadius *float64 `json:"coherence_radius"`
	FitQuality      *float64 `json:"fit_quality"`
	Kappa           *float64 `json:"kappa"`
	ForwardMean     *float64 `json:"forward_mean"`

	Morphology string `json:"morphology,omitempty"`

	Report string `json:"report"`

	Created time.Time `json:"created,omitempty"`
}
