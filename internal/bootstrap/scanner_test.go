package bootstrap

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/coherencelab/glotta/internal/models"
	"github.com/coherencelab/glotta/internal/rng"
)

func syntheticCorpus(n int) []models.Sample {
	corpus := make([]models.Sample, n)
	for i := range corpus {
		corpus[i] = models.Sample{Original: fmt.Sprintf("sample %03d", i)}
	}
	return corpus
}

// constantAnalyze returns the same metrics for every trial, so every size
// has zero spread and stabilizes immediately.
func constantAnalyze(samples []models.Sample) (TrialMetrics, error) {
	return TrialMetrics{Lambda: 0.25, Kappa: 0.1, FitQuality: 0.95}, nil
}

func TestScanStabilityConstantMetric(t *testing.T) {
	corpus := syntheticCorpus(60)
	cfg := Config{MinN: 10, MaxN: 40, StepN: 10, Trials: 8, Seed: 42}

	got := ScanStability(corpus, constantAnalyze, cfg, nil)

	if !got.Stabilized {
		t.Fatal("constant metric should stabilize")
	}
	if got.NCrit != 10 {
		t.Errorf("NCrit = %d, want 10 (first scanned size)", got.NCrit)
	}
	if len(got.Points) != 4 {
		t.Fatalf("scanned %d sizes, want 4", len(got.Points))
	}
	for _, p := range got.Points {
		if !p.Stable || p.Skipped || p.Failed != 0 {
			t.Errorf("point n=%d: stable=%v skipped=%v failed=%d", p.SampleSize, p.Stable, p.Skipped, p.Failed)
		}
		if p.LambdaCV != 0 {
			t.Errorf("point n=%d: LambdaCV = %v, want 0", p.SampleSize, p.LambdaCV)
		}
		if p.LambdaMean != 0.25 {
			t.Errorf("point n=%d: LambdaMean = %v, want 0.25", p.SampleSize, p.LambdaMean)
		}
	}
}

func TestScanStabilityNeverStabilizes(t *testing.T) {
	corpus := syntheticCorpus(40)
	// Lambda alternates sign with the resampled content, giving a large CV
	// at every size.
	flip := 0
	analyze := func(samples []models.Sample) (TrialMetrics, error) {
		flip++
		if flip%2 == 0 {
			return TrialMetrics{Lambda: 1.0}, nil
		}
		return TrialMetrics{Lambda: 0.01}, nil
	}
	cfg := Config{MinN: 10, MaxN: 30, StepN: 10, Trials: 10, Seed: 1, Workers: 1}

	got := ScanStability(corpus, analyze, cfg, nil)

	if got.Stabilized {
		t.Error("alternating metric should not stabilize")
	}
	if got.NCrit != 30 {
		t.Errorf("NCrit = %d, want largest scanned size 30", got.NCrit)
	}
}

func TestScanStabilitySkipsFailingSizes(t *testing.T) {
	corpus := syntheticCorpus(50)
	analyze := func(samples []models.Sample) (TrialMetrics, error) {
		if len(samples) < 20 {
			return TrialMetrics{}, errors.New("too small to fit")
		}
		return TrialMetrics{Lambda: 0.5, FitQuality: 0.9}, nil
	}
	cfg := Config{MinN: 10, MaxN: 30, StepN: 10, Trials: 6, Seed: 7}

	got := ScanStability(corpus, analyze, cfg, nil)

	if len(got.Points) != 3 {
		t.Fatalf("scanned %d sizes, want 3", len(got.Points))
	}
	first := got.Points[0]
	if !first.Skipped || first.Failed != 6 {
		t.Errorf("n=10 point = %+v, want skipped with all trials failed", first)
	}
	if first.Stable {
		t.Error("skipped size must not count as stable")
	}
	if !got.Stabilized || got.NCrit != 20 {
		t.Errorf("NCrit = %d (stabilized=%v), want 20", got.NCrit, got.Stabilized)
	}
}

func TestScanStabilityNaNLambdaCountsAsFailed(t *testing.T) {
	corpus := syntheticCorpus(30)
	analyze := func(samples []models.Sample) (TrialMetrics, error) {
		return TrialMetrics{Lambda: math.NaN()}, nil
	}
	cfg := Config{MinN: 10, MaxN: 10, StepN: 10, Trials: 4, Seed: 3}

	got := ScanStability(corpus, analyze, cfg, nil)

	if len(got.Points) != 1 {
		t.Fatalf("scanned %d sizes, want 1", len(got.Points))
	}
	p := got.Points[0]
	if p.Failed != 4 || !p.Skipped {
		t.Errorf("point = %+v, want all NaN trials counted as failed and size skipped", p)
	}
}

func TestScanStabilityDeterministicAcrossWorkers(t *testing.T) {
	corpus := syntheticCorpus(80)
	// Metrics derive from the resampled texts, so the result depends on the
	// exact substream draws.
	analyze := func(samples []models.Sample) (TrialMetrics, error) {
		var sum int
		for _, s := range samples {
			sum += len(s.Original) + int(s.Original[len(s.Original)-1])
		}
		return TrialMetrics{Lambda: 0.1 + float64(sum%17)/100}, nil
	}
	base := Config{MinN: 10, MaxN: 50, StepN: 20, Trials: 12, Seed: 99}

	serial := base
	serial.Workers = 1
	parallel := base
	parallel.Workers = 8

	a := ScanStability(corpus, analyze, serial, nil)
	b := ScanStability(corpus, analyze, parallel, nil)

	if len(a.Points) != len(b.Points) {
		t.Fatalf("point counts differ: %d vs %d", len(a.Points), len(b.Points))
	}
	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			t.Errorf("point %d differs across worker counts: %+v vs %+v", i, a.Points[i], b.Points[i])
		}
	}
	if a.NCrit != b.NCrit || a.Stabilized != b.Stabilized {
		t.Errorf("scan outcome differs: NCrit %d/%d", a.NCrit, b.NCrit)
	}
}

func TestScanStabilityEmptyCorpus(t *testing.T) {
	got := ScanStability(nil, constantAnalyze, Config{}, nil)
	if len(got.Points) != 0 || got.Stabilized {
		t.Errorf("empty corpus scan = %+v, want no points", got)
	}
}

func TestScanStabilityUnsetSeedDrawsSpreadResamples(t *testing.T) {
	corpus := syntheticCorpus(40)

	var mu sync.Mutex
	resamples := make(map[string]int)
	maxDistinct := 0
	analyze := func(samples []models.Sample) (TrialMetrics, error) {
		var b strings.Builder
		seen := make(map[string]bool)
		for _, s := range samples {
			b.WriteString(s.Original)
			b.WriteByte('|')
			seen[s.Original] = true
		}
		mu.Lock()
		resamples[b.String()]++
		if len(seen) > maxDistinct {
			maxDistinct = len(seen)
		}
		mu.Unlock()
		return TrialMetrics{Lambda: 0.2 + float64(len(seen))/100, FitQuality: 1}, nil
	}
	cfg := Config{MinN: 10, MaxN: 30, StepN: 10, Trials: 20}

	first := ScanStability(corpus, analyze, cfg, nil)

	// A degenerate scan hands every trial the same one-element resample
	// and declares stability with zero spread.
	if len(resamples) < 2 {
		t.Fatalf("seed left unset drew %d distinct resamples across 60 trials", len(resamples))
	}
	if maxDistinct < 2 {
		t.Fatal("every resample repeated a single corpus element")
	}

	// The derived seed comes from the corpus text, so a second scan of the
	// same corpus reproduces the first bit for bit.
	second := ScanStability(corpus, analyze, cfg, nil)
	if first.NCrit != second.NCrit || len(first.Points) != len(second.Points) {
		t.Fatalf("repeat scan differs: NCrit %d vs %d", first.NCrit, second.NCrit)
	}
	for i := range first.Points {
		if first.Points[i] != second.Points[i] {
			t.Errorf("point %d differs between repeat scans: %+v vs %+v", i, first.Points[i], second.Points[i])
		}
	}
}

func TestComputeVarianceStats(t *testing.T) {
	stats := ComputeVarianceStats([]float64{1, 2, 3, 4})
	if stats.Mean != 2.5 {
		t.Errorf("Mean = %v, want 2.5", stats.Mean)
	}
	if math.Abs(stats.Std-1.2909944487358056) > 1e-12 {
		t.Errorf("Std = %v, want sample standard deviation", stats.Std)
	}
	if stats.CILow >= stats.Mean || stats.CIHigh <= stats.Mean {
		t.Errorf("CI [%v, %v] does not bracket the mean", stats.CILow, stats.CIHigh)
	}
	if math.Abs((stats.Mean-stats.CILow)-(stats.CIHigh-stats.Mean)) > 1e-12 {
		t.Error("confidence interval is not symmetric around the mean")
	}

	empty := ComputeVarianceStats(nil)
	if !math.IsNaN(empty.Mean) || !math.IsNaN(empty.CILow) {
		t.Errorf("empty input stats = %+v, want NaN", empty)
	}
}

func TestComputeVarianceStatsConfidenceCoverage(t *testing.T) {
	// 1000 synthetic trial sets drawn around a known mean; the 95%
	// interval should cover it roughly 950 times. The band allows for the
	// normal (rather than t) quantile and for sampling noise.
	const (
		datasets = 1000
		draws    = 60
		mean     = 5.0
	)
	src := rng.New(20260831)

	covered := 0
	for d := 0; d < datasets; d++ {
		values := make([]float64, draws)
		for i := range values {
			values[i] = src.Gaussian(mean, 2.0)
		}
		stats := ComputeVarianceStats(values)
		if stats.CILow <= mean && mean <= stats.CIHigh {
			covered++
		}
	}

	if covered < 910 || covered > 980 {
		t.Errorf("coverage = %d/%d, want about 950", covered, datasets)
	}
}
