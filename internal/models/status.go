package models

// PhysicsStatus reports how far an analysis run got. Data-quality problems
// are never errors; they are statuses with a reason string, and the caller
// must check the status before reading any numeric field. NaN appears in
// numeric fields only for non-computed statuses, so "not computed" can never
// be confused with "computed as zero".
type PhysicsStatus string

const (
	// StatusComputed means every metric is populated and finite unless a
	// metric is legitimately infinite (coherence radius at zero decay).
	StatusComputed PhysicsStatus = "COMPUTED"

	// StatusSkipped means the input was unusable (no vectors at all).
	StatusSkipped PhysicsStatus = "SKIPPED"

	// StatusFailed means an unexpected internal failure; diagnostics and
	// reason are the only populated fields.
	StatusFailed PhysicsStatus = "FAILED"

	// StatusPartial means embeddings were valid but no usable lagged pairs
	// existed, or all coherence collapsed to zero.
	StatusPartial PhysicsStatus = "PARTIAL"

	// StatusBelowThreshold means fewer valid vectors than the configured
	// minimum.
	StatusBelowThreshold PhysicsStatus = "BELOW_THRESHOLD"
)

// IsComputed reports whether numeric fields are safe to interpret.
func (s PhysicsStatus) IsComputed() bool {
	return s == StatusComputed
}
