package cli

import (
	"fmt"
	"math"
	"strings"

	"github.com/coherencelab/glotta/internal/hierarchy"
	"github.com/coherencelab/glotta/internal/models"
)

// renderResult formats a result for terminal display. Colored status when
// stdout is a terminal, plain text otherwise.
func renderResult(r *models.Result) string {
	var b strings.Builder

	status := string(r.Status)
	if isTerminal() {
		switch r.Status {
		case models.StatusComputed:
			status = defaultTheme.completedStyle().Render(status)
		case models.StatusFailed:
			status = defaultTheme.errorStyle().Render(status)
		default:
			status = defaultTheme.statusStyle().Render(status)
		}
	}

	fmt.Fprintf(&b, "%s  %s  (%d samples, model %s)\n", r.Language, status, r.SampleSize, r.Model)
	if r.Reason != "" {
		fmt.Fprintf(&b, "  reason: %s\n", r.Reason)
	}
	fmt.Fprintf(&b, "  vectors: %d valid / %d total, avg norm %s\n",
		r.Diagnostics.ValidVectors, r.Diagnostics.TotalVectors, fmtMetric(r.Diagnostics.AvgNorm))

	if !r.Status.IsComputed() {
		return b.String()
	}

	fmt.Fprintf(&b, "  decay: lambda=%s radius=%s fit=%s (%s)\n",
		fmtMetric(r.Decay.Lambda), fmtMetric(r.Decay.CoherenceRadius),
		fmtMetric(r.Decay.FitQuality), hierarchy.ClassifyDecayPrecision(r.Decay.Lambda))
	fmt.Fprintf(&b, "  asymmetry: kappa=%s delta=%s isi=%s\n",
		fmtMetric(r.Asymmetry.KappaMax), fmtMetric(r.Asymmetry.Delta), fmtMetric(r.Asymmetry.ISI))
	fmt.Fprintf(&b, "  coherence: forward=%s backward=%s order-sensitivity=%s\n",
		fmtMetric(r.Asymmetry.ForwardMean), fmtMetric(r.Asymmetry.BackwardMean), fmtMetric(r.OrderSensitivity))
	fmt.Fprintf(&b, "  information: H=%s MI=%s KL=%s\n",
		fmtMetric(r.ShannonEntropy), fmtMetric(r.MutualInfo), fmtMetric(r.KLDivergence))
	fmt.Fprintf(&b, "  structure: clauses=%s morphology=%s monoclausal=%t\n",
		fmtMetric(r.AvgClauses), r.Morphology, r.MonoclausalDominant)

	if len(r.Curves) > 0 {
		fmt.Fprint(&b, "  curve:")
		for _, c := range r.Curves {
			fmt.Fprintf(&b, " lag%d=%s", c.Lag, fmtMetric(c.Forward))
		}
		fmt.Fprintln(&b)
	}

	gate := "passed"
	if !r.Passed {
		gate = "FAILED: " + strings.Join(r.FailedGates, ", ")
	}
	fmt.Fprintf(&b, "  gates (%s): %s\n", r.Preset, gate)

	return b.String()
}

// fmtMetric prints a metric compactly; NaN prints as "-" and infinities as
// "Inf" to match the CSV convention.
func fmtMetric(v float64) string {
	switch {
	case math.IsNaN(v):
		return "-"
	case math.IsInf(v, 1):
		return "Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	return fmt.Sprintf("%.4f", v)
}
