// Package report serializes analysis results: a JSON artifact mirroring the
// result structure and a fixed-column CSV row for spreadsheet aggregation.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/coherencelab/glotta/internal/models"
)

// CSVHeader is the fixed column set, in order. Downstream aggregation
// depends on this exact layout.
var CSVHeader = []string{
	"language",
	"sample_size",
	"physics_status",
	"avg_norm",
	"avg_pairwise_sim",
	"valid_vectors",
	"forward_coherence",
	"backward_coherence",
	"kappa",
	"coherence_radius",
	"fit_quality",
	"shannon_entropy",
	"mutual_info",
	"kl_divergence",
	"avg_clauses",
	"intra_clause_coh",
	"inter_clause_coh",
	"monoclausal_dominant",
	"morphology",
	"generated_at",
}

// WriteJSON writes the full result as an indented JSON artifact.
func WriteJSON(w io.Writer, result *models.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return nil
}

// WriteCSV writes a header plus one row per result.
func WriteCSV(w io.Writer, results []*models.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range results {
		if err := cw.Write(CSVRow(r)); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// AppendCSV writes one row without a header, for appending to an existing
// file.
func AppendCSV(w io.Writer, result *models.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVRow(result)); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// CSVRow renders one result in CSVHeader order. NaN serializes as the empty
// string so a never-measured value can never read as zero; infinities
// serialize as "Inf".
func CSVRow(r *models.Result) []string {
	return []string{
		r.Language,
		strconv.Itoa(r.SampleSize),
		string(r.Status),
		num(r.Diagnostics.AvgNorm),
		num(r.Diagnostics.AvgPairwiseSim),
		strconv.Itoa(r.Diagnostics.ValidVectors),
		num(r.Asymmetry.ForwardMean),
		num(r.Asymmetry.BackwardMean),
		num(r.Asymmetry.KappaMax),
		num(r.Decay.CoherenceRadius),
		num(r.Decay.FitQuality),
		num(r.ShannonEntropy),
		num(r.MutualInfo),
		num(r.KLDivergence),
		num(r.AvgClauses),
		num(r.IntraClauseCoh),
		num(r.InterClauseCoh),
		strconv.FormatBool(r.MonoclausalDominant),
		r.Morphology,
		r.GeneratedAt.UTC().Format(time.RFC3339),
	}
}

// num formats a metric value for CSV.
func num(v float64) string {
	switch {
	case math.IsNaN(v):
		return ""
	case math.IsInf(v, 0):
		return "Inf"
	default:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
}
