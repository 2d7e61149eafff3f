// Package bootstrap estimates how large a corpus must be before the decay
// rate stabilizes. It resamples an analysis function across sample sizes and
// finds the smallest size whose bootstrap coefficient of variation falls
// under a threshold (N_crit).
package bootstrap

import (
	"log/slog"
	"math"
	"strings"
	"sync"

	"github.com/coherencelab/glotta/internal/models"
	"github.com/coherencelab/glotta/internal/precision"
	"github.com/coherencelab/glotta/internal/rng"
)

// TrialMetrics is what one resampled analysis yields. Lambda drives the
// stability decision; kappa and fit quality are tracked alongside.
type TrialMetrics struct {
	Lambda     float64
	Kappa      float64
	FitQuality float64
}

// AnalyzeFunc runs the analysis on one resampled corpus. Errors mark the
// trial as failed; they do not abort the scan.
type AnalyzeFunc func(samples []models.Sample) (TrialMetrics, error)

// Config controls a stability scan.
type Config struct {
	MinN  int
	MaxN  int
	StepN int

	// Trials is the bootstrap resample count per sample size.
	Trials int

	// CVThreshold is the coefficient-of-variation cut below which a size
	// counts as stable.
	CVThreshold float64

	Seed uint32

	// Workers bounds trial parallelism. Substreams are pre-derived per
	// (seed, size, trial), so any worker count produces identical results.
	Workers int
}

// DefaultCVThreshold is the stability cut when the caller does not set one.
const DefaultCVThreshold = 0.05

func (c Config) withDefaults(corpusSize int) Config {
	if c.MinN <= 0 {
		c.MinN = 10
	}
	if c.MaxN <= 0 || c.MaxN > corpusSize {
		c.MaxN = corpusSize
	}
	if c.StepN <= 0 {
		c.StepN = 10
	}
	if c.Trials <= 0 {
		c.Trials = 50
	}
	if c.CVThreshold <= 0 {
		c.CVThreshold = DefaultCVThreshold
	}
	if c.Workers <= 0 {
		c.Workers = 4
	}
	return c
}

// ScanStability walks sample sizes from MinN to min(MaxN, len(corpus)),
// draws seeded resamples-with-replacement at each size, and reports the
// smallest stable size. Sizes where over half the trials fail are skipped
// entirely, counting as neither stable nor unstable. If no size stabilizes,
// NCrit defaults to the largest scanned size with Stabilized=false.
func ScanStability(corpus []models.Sample, analyze AnalyzeFunc, cfg Config, logger *slog.Logger) models.NCritResult {
	if logger == nil {
		logger = slog.Default()
	}
	cfg = cfg.withDefaults(len(corpus))

	result := models.NCritResult{CVThreshold: cfg.CVThreshold}
	if len(corpus) == 0 {
		return result
	}

	// Seed 0 puts substreams in deterministic mode, where every draw lands
	// on the same index and each trial resamples one corpus element n
	// times. Bootstrap needs spread across trials, so an unset seed derives
	// one from the corpus text and stays reproducible per corpus.
	if cfg.Seed == 0 {
		cfg.Seed = corpusSeed(corpus)
	}

	for n := cfg.MinN; n <= cfg.MaxN; n += cfg.StepN {
		point := scanSize(corpus, analyze, cfg, n)
		point.Stable = !point.Skipped && point.LambdaCV < cfg.CVThreshold
		result.Points = append(result.Points, point)

		logger.Debug("stability point",
			"n", n, "cv", point.LambdaCV, "failed", point.Failed, "stable", point.Stable)

		if point.Stable && result.NCrit == 0 {
			result.NCrit = n
			result.Stabilized = true
		}
	}

	if result.NCrit == 0 {
		result.NCrit = cfg.MaxN
	}
	result.CILow, result.CIHigh = confidenceSpan(result.Points, cfg.CVThreshold, result.NCrit)
	return result
}

// scanSize runs all trials for one sample size. Trials execute on a bounded
// worker pool; each trial's substream is derived up front from (seed, size,
// trial), so the aggregate is bit-identical to a sequential scan.
func scanSize(corpus []models.Sample, analyze AnalyzeFunc, cfg Config, n int) models.StabilityPoint {
	point := models.StabilityPoint{SampleSize: n, Trials: cfg.Trials}

	metrics := make([]*TrialMetrics, cfg.Trials)
	var wg sync.WaitGroup
	sem := make(chan struct{}, cfg.Workers)

	for trial := 0; trial < cfg.Trials; trial++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(trial int) {
			defer wg.Done()
			defer func() { <-sem }()

			src := rng.Substream(cfg.Seed, n, trial)
			resampled := resample(corpus, n, src)
			m, err := analyze(resampled)
			if err != nil {
				return
			}
			metrics[trial] = &m
		}(trial)
	}
	wg.Wait()

	var lambdas, kappas, fits []float64
	for _, m := range metrics {
		// A NaN decay rate means the trial never produced a fit; it counts
		// as failed rather than poisoning the aggregate.
		if m == nil || math.IsNaN(m.Lambda) {
			point.Failed++
			continue
		}
		lambdas = append(lambdas, m.Lambda)
		kappas = append(kappas, m.Kappa)
		fits = append(fits, m.FitQuality)
	}

	if point.Failed*2 > cfg.Trials {
		point.Skipped = true
		return point
	}

	point.LambdaMean = precision.ToFloat64(precision.Mean(lambdas))
	point.LambdaStd = precision.ToFloat64(precision.StdDev(lambdas))
	point.LambdaCV = coefficientOfVariation(point.LambdaMean, point.LambdaStd)

	point.KappaMean = precision.ToFloat64(precision.Mean(kappas))
	point.KappaStd = precision.ToFloat64(precision.StdDev(kappas))

	point.FitQualityMean = precision.ToFloat64(precision.Mean(fits))
	point.FitQualityStd = precision.ToFloat64(precision.StdDev(fits))

	return point
}

// corpusSeed hashes the corpus text into a nonzero seed, so two scans of
// the same corpus resample identically without ever entering deterministic
// mode.
func corpusSeed(corpus []models.Sample) uint32 {
	var b strings.Builder
	for _, s := range corpus {
		b.WriteString(s.Original)
		b.WriteByte('\n')
	}
	if seed := rng.HashSeed(b.String()); seed != 0 {
		return seed
	}
	return 1
}

// resample draws n items with replacement, consuming exactly n uniform draws
// from src in index order.
func resample(corpus []models.Sample, n int, src *rng.Source) []models.Sample {
	out := make([]models.Sample, n)
	for i := 0; i < n; i++ {
		out[i] = corpus[src.Intn(len(corpus))]
	}
	return out
}

// coefficientOfVariation is std/|mean| with the degenerate cases pinned:
// zero spread is perfectly stable regardless of the mean, and spread around
// a zero mean never stabilizes.
func coefficientOfVariation(mean, std float64) float64 {
	if std == 0 {
		return 0
	}
	if math.Abs(mean) < 1e-12 {
		return math.Inf(1)
	}
	return std / math.Abs(mean)
}

// confidenceSpan is the best-effort CI on N_crit: the span of sizes whose CV
// sits within half the threshold of the cutoff.
func confidenceSpan(points []models.StabilityPoint, threshold float64, nCrit int) (int, int) {
	low, high := nCrit, nCrit
	found := false
	for _, p := range points {
		if p.Skipped {
			continue
		}
		if math.Abs(p.LambdaCV-threshold) <= threshold/2 {
			if !found || p.SampleSize < low {
				low = p.SampleSize
			}
			if !found || p.SampleSize > high {
				high = p.SampleSize
			}
			found = true
		}
	}
	return low, high
}
