package physics

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/coherencelab/glotta/internal/embedding"
	"github.com/coherencelab/glotta/internal/models"
	"github.com/coherencelab/glotta/internal/rng"
)

// variedCorpus produces sequentially overlapping sentences: adjacent samples
// share most of their vocabulary, so lag-1 coherence is high and decays with
// distance.
func variedCorpus(n int) []models.Sample {
	samples := make([]models.Sample, n)
	for i := range samples {
		samples[i] = models.Sample{Original: fmt.Sprintf(
			"the river carries word%d past word%d toward the valley", i, i+1)}
	}
	return samples
}

func constantCorpus(n int) []models.Sample {
	samples := make([]models.Sample, n)
	for i := range samples {
		samples[i] = models.Sample{Original: "the same sentence every time"}
	}
	return samples
}

func newTestEngine() *Engine {
	return NewEngine(embedding.NewHashEmbedder(0), nil)
}

func TestAnalyzeComputed(t *testing.T) {
	engine := newTestEngine()
	samples := variedCorpus(30)

	result, err := engine.Analyze(context.Background(), samples, Config{Language: "testlang"})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if result.Status != models.StatusComputed {
		t.Fatalf("status = %q (reason %q), want COMPUTED", result.Status, result.Reason)
	}
	if result.Language != "testlang" || result.SampleSize != 30 {
		t.Errorf("result header = %q/%d", result.Language, result.SampleSize)
	}
	if result.Model != "hash-bag-64" {
		t.Errorf("model = %q", result.Model)
	}
	if result.Preset != "monitor" {
		t.Errorf("preset = %q, want monitor default", result.Preset)
	}

	if math.IsNaN(result.Decay.Lambda) || result.Decay.Lambda < 0 {
		t.Errorf("lambda = %v, want finite and non-negative", result.Decay.Lambda)
	}
	if result.Decay.Method != models.MethodLogLinear {
		t.Errorf("fit method = %q", result.Decay.Method)
	}

	// Cosine similarity is symmetric, so forward and backward curves agree
	// and the asymmetry layer reports zero kappa.
	if math.Abs(result.Asymmetry.KappaMax) > 1e-9 {
		t.Errorf("kappa = %v, want 0 under a symmetric similarity", result.Asymmetry.KappaMax)
	}
	if math.Abs(result.Asymmetry.ISI-1) > 1e-9 {
		t.Errorf("ISI = %v, want 1", result.Asymmetry.ISI)
	}

	if result.ShannonEntropy <= 0 {
		t.Errorf("entropy = %v, want positive for distinct samples", result.ShannonEntropy)
	}
	if result.Morphology == "" {
		t.Error("morphology not classified")
	}

	// The pass-through monitor preset accepts any computed run.
	if !result.Passed || len(result.FailedGates) != 0 {
		t.Errorf("gate outcome = %v %v, want pass", result.Passed, result.FailedGates)
	}
}

func TestAnalyzeDeterministic(t *testing.T) {
	engine := newTestEngine()
	samples := variedCorpus(25)
	cfg := Config{Language: "testlang"}

	a, err := engine.Analyze(context.Background(), samples, cfg)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	b, err := engine.Analyze(context.Background(), samples, cfg)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}

	if a.Decay.Lambda != b.Decay.Lambda || a.Decay.FitQuality != b.Decay.FitQuality {
		t.Errorf("decay differs: %+v vs %+v", a.Decay, b.Decay)
	}
	if a.ShannonEntropy != b.ShannonEntropy || a.OrderSensitivity != b.OrderSensitivity {
		t.Errorf("metrics differ across identical runs")
	}
	if len(a.Curves) != len(b.Curves) {
		t.Fatalf("curve counts differ")
	}
	for i := range a.Curves {
		if a.Curves[i] != b.Curves[i] {
			t.Errorf("curve %d differs: %+v vs %+v", i, a.Curves[i], b.Curves[i])
		}
	}
}

func TestAnalyzeDegenerateCorpus(t *testing.T) {
	engine := newTestEngine()
	samples := constantCorpus(24)

	result, err := engine.Analyze(context.Background(), samples, Config{Language: "constant"})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if result.Status != models.StatusComputed {
		t.Fatalf("status = %q, want COMPUTED for degenerate corpus", result.Status)
	}
	if result.Decay.Lambda != 0 {
		t.Errorf("lambda = %v, want exact 0", result.Decay.Lambda)
	}
	if !math.IsInf(result.Decay.CoherenceRadius, 1) {
		t.Errorf("radius = %v, want +Inf", result.Decay.CoherenceRadius)
	}
	if result.Decay.FitQuality != 1 {
		t.Errorf("fit quality = %v, want 1", result.Decay.FitQuality)
	}
	for _, c := range result.Curves {
		if c.Forward != 1 || c.Backward != 1 {
			t.Errorf("lag %d coherence = %v/%v, want 1/1", c.Lag, c.Forward, c.Backward)
		}
	}
	if result.ShannonEntropy != 0 {
		t.Errorf("entropy = %v, want exact 0 for one repeated outcome", result.ShannonEntropy)
	}
	if result.Asymmetry.ISI != 1 || result.Asymmetry.ISIExp != 1 {
		t.Errorf("asymmetry = %+v, want perfect symmetry", result.Asymmetry)
	}
	if !result.Passed {
		t.Errorf("degenerate run failed gates %v under monitor preset", result.FailedGates)
	}
}

// noiseCorpus gives every sample its own disjoint vocabulary, so adjacent
// samples share no tokens and their vectors are near-orthogonal.
func noiseCorpus(n int) []models.Sample {
	samples := make([]models.Sample, n)
	for i := range samples {
		samples[i] = models.Sample{Original: fmt.Sprintf(
			"zk%d qv%d xr%d wm%d", 4*i, 4*i+1, 4*i+2, 4*i+3)}
	}
	return samples
}

func TestAnalyzeNoiseCorpusLowersCoherence(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()

	noise, err := engine.Analyze(ctx, noiseCorpus(30), Config{Language: "noiselang"})
	if err != nil {
		t.Fatalf("Analyze(noise) returned error: %v", err)
	}
	constant, err := engine.Analyze(ctx, constantCorpus(30), Config{Language: "constlang"})
	if err != nil {
		t.Fatalf("Analyze(constant) returned error: %v", err)
	}
	if len(noise.Curves) == 0 || len(constant.Curves) == 0 {
		t.Fatalf("curves missing: noise %d, constant %d", len(noise.Curves), len(constant.Curves))
	}

	noiseFwd := noise.Curves[0].Forward
	constFwd := constant.Curves[0].Forward
	if math.IsNaN(noiseFwd) || math.IsNaN(constFwd) {
		t.Fatalf("lag-1 forward NaN: noise %v, constant %v", noiseFwd, constFwd)
	}
	if !(noiseFwd < constFwd) {
		t.Errorf("noise lag-1 forward = %v, want strictly below constant's %v", noiseFwd, constFwd)
	}
	// Disjoint vocabularies leave only hash collisions to contribute.
	if noiseFwd >= 0.9 {
		t.Errorf("noise lag-1 forward = %v, want well below 0.9", noiseFwd)
	}
}

func TestAnalyzeSymmetryStableUnderShuffle(t *testing.T) {
	engine := newTestEngine()
	ctx := context.Background()
	samples := variedCorpus(30)

	original, err := engine.Analyze(ctx, samples, Config{Language: "testlang"})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	shuffled := append([]models.Sample(nil), samples...)
	rng.New(13).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	permuted, err := engine.Analyze(ctx, shuffled, Config{Language: "testlang"})
	if err != nil {
		t.Fatalf("Analyze(shuffled) returned error: %v", err)
	}

	// Kappa comes from a symmetric similarity, so reordering the corpus
	// must not move it or the symmetry index materially.
	if d := math.Abs(original.Asymmetry.KappaMax - permuted.Asymmetry.KappaMax); !(d < 0.1) {
		t.Errorf("kappa drift under shuffle = %v, want < 0.1", d)
	}
	if d := math.Abs(original.Asymmetry.ISI - permuted.Asymmetry.ISI); !(d < 0.1) {
		t.Errorf("symmetry index drift under shuffle = %v, want < 0.1", d)
	}
}

func TestAnalyzeTooSmallCorpus(t *testing.T) {
	engine := newTestEngine()
	samples := variedCorpus(5)

	result, err := engine.Analyze(context.Background(), samples, Config{})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}

	if result.Status != models.StatusBelowThreshold {
		t.Fatalf("status = %q, want BELOW_THRESHOLD", result.Status)
	}
	if result.Reason == "" {
		t.Error("below-threshold result carries no reason")
	}
	if !math.IsNaN(result.Decay.Lambda) || !math.IsNaN(result.ShannonEntropy) {
		t.Errorf("uncomputed metrics = %v/%v, want NaN", result.Decay.Lambda, result.ShannonEntropy)
	}
}

func TestAnalyzeEmptyCorpus(t *testing.T) {
	engine := newTestEngine()

	result, err := engine.Analyze(context.Background(), nil, Config{})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if result.Status != models.StatusSkipped {
		t.Errorf("status = %q, want SKIPPED", result.Status)
	}
	if !math.IsNaN(result.Asymmetry.KappaMax) {
		t.Errorf("kappa = %v, want NaN", result.Asymmetry.KappaMax)
	}
}

type failingEmbedder struct{}

func (failingEmbedder) Embed(context.Context, string) ([]float32, error) {
	return nil, errors.New("provider unreachable")
}

func (failingEmbedder) EmbedBatch(context.Context, []string) ([][]float32, error) {
	return nil, errors.New("provider unreachable")
}

func (failingEmbedder) Model() string  { return "failing" }
func (failingEmbedder) Dimension() int { return 0 }

func TestAnalyzeEmbedderFailure(t *testing.T) {
	engine := NewEngine(failingEmbedder{}, nil)

	result, err := engine.Analyze(context.Background(), variedCorpus(30), Config{})
	if err == nil {
		t.Fatal("expected collaborator failure to surface as an error")
	}
	if result.Status != models.StatusFailed {
		t.Errorf("status = %q, want FAILED", result.Status)
	}
	if result.Reason == "" {
		t.Error("failed result carries no reason")
	}
}

func TestAnalyzeFailingGates(t *testing.T) {
	engine := newTestEngine()
	cfg := Config{
		Language: "gated",
		Preset:   "impossible",
		// A floor above 1 cannot be met by any cosine forward mean.
		Thresholds: models.Thresholds{
			EnergyLossFloor:          1.0,
			StructuralIntegrityFloor: 2.0,
			KappaThreshold:           1.0,
		},
	}

	result, err := engine.Analyze(context.Background(), variedCorpus(30), cfg)
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if result.Status != models.StatusComputed {
		t.Fatalf("status = %q, want COMPUTED even with failed gates", result.Status)
	}
	if result.Passed {
		t.Error("run passed an unmeetable structural-integrity floor")
	}
	found := false
	for _, g := range result.FailedGates {
		if g == "structural_integrity" {
			found = true
		}
	}
	if !found {
		t.Errorf("failed gates = %v, want structural_integrity", result.FailedGates)
	}
}

func TestAnalyzeSkipHierarchy(t *testing.T) {
	engine := newTestEngine()

	result, err := engine.Analyze(context.Background(), variedCorpus(30), Config{SkipHierarchy: true})
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if result.Status != models.StatusComputed {
		t.Fatalf("status = %q, want COMPUTED", result.Status)
	}
	if result.IntraClauseCoh != 0 || result.InterClauseCoh != 0 {
		t.Errorf("clause coherence = %v/%v, want 0 with the profiler skipped",
			result.IntraClauseCoh, result.InterClauseCoh)
	}
}
