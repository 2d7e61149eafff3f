package hierarchy

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/coherencelab/glotta/internal/embedding"
	"github.com/coherencelab/glotta/internal/models"
	"github.com/coherencelab/glotta/internal/precision"
)

// Profiler computes the three-level coherence profile. It is the one part of
// the hierarchy package that talks to the embedding collaborator, so its
// methods take a context and can fail.
type Profiler struct {
	embedder embedding.Embedder
	logger   *slog.Logger
}

// NewProfiler creates a profiler over the given embedder.
func NewProfiler(embedder embedding.Embedder, logger *slog.Logger) *Profiler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Profiler{embedder: embedder, logger: logger}
}

// Profile computes ICC, XCC, and MBC for the sample set and classifies the
// weighted genealogical score. Provider failures are real errors; empty or
// unsegmentable input yields a zero profile, not an error.
func (p *Profiler) Profile(ctx context.Context, samples []models.Sample) (models.HCPResult, error) {
	var clauses []string
	var tokenCounts []float64
	for _, s := range samples {
		for _, clause := range SplitClauses(s.Original) {
			clauses = append(clauses, clause)
			tokenCounts = append(tokenCounts, float64(len(Tokenize(clause))))
		}
	}
	if len(clauses) == 0 {
		return Classify(models.HCPResult{}), nil
	}

	icc, err := p.intraClauseCoherence(ctx, clauses)
	if err != nil {
		return models.HCPResult{}, fmt.Errorf("intra-clause coherence: %w", err)
	}

	xcc, err := p.interClauseCoherence(ctx, clauses)
	if err != nil {
		return models.HCPResult{}, fmt.Errorf("inter-clause coherence: %w", err)
	}

	mbc := morphemeBoundaryClarity(tokenCounts)

	p.logger.Debug("hierarchical profile computed",
		"clauses", len(clauses), "icc", icc, "xcc", xcc, "mbc", mbc)

	return Classify(models.HCPResult{ICC: icc, XCC: xcc, MBC: mbc}), nil
}

// intraClauseCoherence embeds the tokens of each clause and averages the
// pairwise cosine similarity within clauses.
func (p *Profiler) intraClauseCoherence(ctx context.Context, clauses []string) (float64, error) {
	var sims []float64
	for _, clause := range clauses {
		tokens := Tokenize(clause)
		if len(tokens) < 2 {
			continue
		}
		vecs, err := p.embedder.EmbedBatch(ctx, tokens)
		if err != nil {
			return 0, err
		}
		for i := 0; i < len(vecs); i++ {
			for j := i + 1; j < len(vecs); j++ {
				sim, err := precision.CosineSimilarity(precision.Widen(vecs[i]), precision.Widen(vecs[j]))
				if err != nil {
					continue
				}
				sims = append(sims, precision.ToFloat64(sim))
			}
		}
	}
	if len(sims) == 0 {
		return 0, nil
	}
	return precision.ToFloat64(precision.Mean(sims)), nil
}

// interClauseCoherence embeds whole clauses and averages the similarity of
// consecutive clause pairs.
func (p *Profiler) interClauseCoherence(ctx context.Context, clauses []string) (float64, error) {
	if len(clauses) < 2 {
		return 0, nil
	}
	vecs, err := p.embedder.EmbedBatch(ctx, clauses)
	if err != nil {
		return 0, err
	}
	var sims []float64
	for i := 0; i+1 < len(vecs); i++ {
		sim, err := precision.CosineSimilarity(precision.Widen(vecs[i]), precision.Widen(vecs[i+1]))
		if err != nil {
			continue
		}
		sims = append(sims, precision.ToFloat64(sim))
	}
	if len(sims) == 0 {
		return 0, nil
	}
	return precision.ToFloat64(precision.Mean(sims)), nil
}

// morphemeBoundaryClarity is the coefficient of variation of token count per
// clause, clamped to [0, 1]. The proxy is structural, not morphological; it
// is named for the signal it stands in for.
func morphemeBoundaryClarity(tokenCounts []float64) float64 {
	if len(tokenCounts) < 2 {
		return 0
	}
	mean := precision.ToFloat64(precision.Mean(tokenCounts))
	if mean == 0 {
		return 0
	}
	cv := precision.ToFloat64(precision.StdDev(tokenCounts)) / math.Abs(mean)
	return math.Min(1, cv)
}
