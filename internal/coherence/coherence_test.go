package coherence

import (
	"fmt"
	"math"
	"testing"

	"github.com/coherencelab/glotta/internal/models"
)

// sequenceEmbeddings builds keyed unit vectors that rotate smoothly in 2D,
// so cosine similarity at lag l is exactly cos(l * step).
func sequenceEmbeddings(n int, step float64) (map[string][]float32, []string) {
	embeddings := make(map[string][]float32, n)
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		key := fmt.Sprintf("s%05d", i)
		angle := float64(i) * step
		embeddings[key] = []float32{float32(math.Cos(angle)), float32(math.Sin(angle))}
		keys[i] = key
	}
	return embeddings, keys
}

func TestBuildCurvesRotatingSequence(t *testing.T) {
	step := 0.1
	embeddings, keys := sequenceEmbeddings(40, step)
	curves := BuildCurves(embeddings, keys, 5)

	if len(curves) != 5 {
		t.Fatalf("got %d curves, want 5", len(curves))
	}
	for _, c := range curves {
		want := math.Cos(float64(c.Lag) * step)
		if math.Abs(c.Forward-want) > 1e-5 {
			t.Errorf("lag %d forward = %v, want %v", c.Lag, c.Forward, want)
		}
		// Cosine is symmetric under order reversal.
		if math.Abs(c.Forward-c.Backward) > 1e-9 {
			t.Errorf("lag %d forward %v != backward %v", c.Lag, c.Forward, c.Backward)
		}
		if c.SampleSize != 40-c.Lag {
			t.Errorf("lag %d sample size = %d, want %d", c.Lag, c.SampleSize, 40-c.Lag)
		}
	}
}

func TestBuildCurvesMonotoneDecay(t *testing.T) {
	embeddings, keys := sequenceEmbeddings(60, 0.05)
	curves := BuildCurves(embeddings, keys, 5)
	for i := 1; i < len(curves); i++ {
		if curves[i].Forward >= curves[i-1].Forward {
			t.Errorf("coherence should fall with lag: lag %d %v >= lag %d %v",
				curves[i].Lag, curves[i].Forward, curves[i-1].Lag, curves[i-1].Forward)
		}
	}
}

func TestBuildCurvesSkipsLowNormVectors(t *testing.T) {
	embeddings := map[string][]float32{
		"a": {1, 0},
		"b": {0.001, 0}, // below norm floor
		"c": {0, 1},
	}
	curves := BuildCurves(embeddings, []string{"a", "b", "c"}, 2)

	// Lag 1 has no valid pairs: both involve b.
	if !math.IsNaN(curves[0].Forward) {
		t.Errorf("lag 1 forward = %v, want NaN", curves[0].Forward)
	}
	if curves[0].Computed() {
		t.Error("lag 1 should not count as computed")
	}
	// Lag 2 pairs a with c.
	if math.Abs(curves[1].Forward-0) > 1e-9 {
		t.Errorf("lag 2 forward = %v, want 0", curves[1].Forward)
	}
}

func TestBuildCurvesTooShort(t *testing.T) {
	embeddings, keys := sequenceEmbeddings(2, 0.1)
	curves := BuildCurves(embeddings, keys, 5)
	for _, c := range curves[1:] {
		if !math.IsNaN(c.Forward) || c.SampleSize != 0 {
			t.Errorf("lag %d should be empty, got %+v", c.Lag, c)
		}
	}
}

func TestFitDecayRecoversLambda(t *testing.T) {
	// Synthetic pure-exponential curve: C(l) = 0.9 * exp(-0.25 l).
	lambda := 0.25
	c0 := 0.9
	var curves []models.CoherenceCurve
	for lag := 1; lag <= 5; lag++ {
		curves = append(curves, models.CoherenceCurve{
			Lag:        lag,
			Forward:    c0 * math.Exp(-lambda*float64(lag)),
			Backward:   c0 * math.Exp(-lambda*float64(lag)),
			SampleSize: 30,
		})
	}

	fit := FitDecay(curves)
	if fit.Method != models.MethodLogLinear {
		t.Fatalf("Method = %q", fit.Method)
	}
	if math.Abs(fit.Lambda-lambda) > 1e-9 {
		t.Errorf("Lambda = %v, want %v", fit.Lambda, lambda)
	}
	if math.Abs(fit.CoherenceRadius-1/lambda) > 1e-6 {
		t.Errorf("CoherenceRadius = %v, want %v", fit.CoherenceRadius, 1/lambda)
	}
	if math.Abs(fit.FitQuality-1) > 1e-9 {
		t.Errorf("FitQuality = %v, want 1", fit.FitQuality)
	}
	if math.Abs(fit.FittedC0-c0) > 1e-9 {
		t.Errorf("FittedC0 = %v, want %v", fit.FittedC0, c0)
	}
	if len(fit.CoherenceAtLags) != 5 {
		t.Errorf("CoherenceAtLags has %d entries, want 5", len(fit.CoherenceAtLags))
	}
}

func TestFitDecayRisingCurveClampsToZero(t *testing.T) {
	curves := []models.CoherenceCurve{
		{Lag: 1, Forward: 0.5, SampleSize: 10},
		{Lag: 2, Forward: 0.6, SampleSize: 10},
		{Lag: 3, Forward: 0.7, SampleSize: 10},
	}
	fit := FitDecay(curves)
	if fit.Lambda != 0 {
		t.Errorf("Lambda = %v, want 0 for a rising curve", fit.Lambda)
	}
	if !math.IsInf(fit.CoherenceRadius, 1) {
		t.Errorf("CoherenceRadius = %v, want +Inf at zero decay", fit.CoherenceRadius)
	}
}

func TestFitDecayInsufficientData(t *testing.T) {
	tests := []struct {
		name   string
		curves []models.CoherenceCurve
	}{
		{"empty", nil},
		{"single point", []models.CoherenceCurve{{Lag: 1, Forward: 0.5, SampleSize: 5}}},
		{"nonpositive excluded", []models.CoherenceCurve{
			{Lag: 1, Forward: 0.5, SampleSize: 5},
			{Lag: 2, Forward: 0, SampleSize: 5},
			{Lag: 3, Forward: -0.2, SampleSize: 5},
		}},
		{"nan excluded", []models.CoherenceCurve{
			{Lag: 1, Forward: 0.5, SampleSize: 5},
			{Lag: 2, Forward: math.NaN(), SampleSize: 5},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fit := FitDecay(tt.curves)
			if fit.Method != models.MethodInsufficientData {
				t.Errorf("Method = %q, want insufficient_data", fit.Method)
			}
			if !math.IsNaN(fit.Lambda) {
				t.Errorf("Lambda = %v, want NaN", fit.Lambda)
			}
		})
	}
}

func TestAnalyzeAsymmetrySymmetricCurve(t *testing.T) {
	curves := []models.CoherenceCurve{
		{Lag: 1, Forward: 0.8, Backward: 0.8, SampleSize: 20},
		{Lag: 2, Forward: 0.6, Backward: 0.6, SampleSize: 20},
	}
	a := AnalyzeAsymmetry(curves, 0)
	if a.KappaMax != 0 || a.KappaSum != 0 || a.Delta != 0 {
		t.Errorf("symmetric curve should yield zero kappa, got %+v", a)
	}
	if a.ISI != 1 || a.ISIExp != 1 {
		t.Errorf("symmetric curve should yield ISI = ISIExp = 1, got %+v", a)
	}
}

func TestAnalyzeAsymmetryKnownSplit(t *testing.T) {
	curves := []models.CoherenceCurve{
		{Lag: 1, Forward: 0.6, Backward: 0.4, SampleSize: 20},
	}
	a := AnalyzeAsymmetry(curves, 0.01)

	if math.Abs(a.KappaMax-0.2/0.6) > 1e-12 {
		t.Errorf("KappaMax = %v, want %v", a.KappaMax, 0.2/0.6)
	}
	if math.Abs(a.KappaSum-0.2) > 1e-12 {
		t.Errorf("KappaSum = %v, want 0.2", a.KappaSum)
	}
	if math.Abs(a.Delta-0.2) > 1e-12 {
		t.Errorf("Delta = %v, want 0.2", a.Delta)
	}
	if math.Abs(a.ISI-(1-0.2/0.6)) > 1e-12 {
		t.Errorf("ISI = %v", a.ISI)
	}
	wantExp := math.Exp(-0.2 / 0.01)
	if math.Abs(a.ISIExp-wantExp) > wantExp*1e-9 {
		t.Errorf("ISIExp = %v, want %v", a.ISIExp, wantExp)
	}
}

func TestAnalyzeAsymmetryNoUsableLags(t *testing.T) {
	curves := []models.CoherenceCurve{
		{Lag: 1, Forward: math.NaN(), Backward: math.NaN()},
	}
	a := AnalyzeAsymmetry(curves, 0)
	if a.ISI != 1 || a.ISIExp != 1 {
		t.Errorf("no usable lags should yield the symmetric default, got %+v", a)
	}
	if a.KappaMax != 0 {
		t.Errorf("KappaMax = %v, want 0", a.KappaMax)
	}
}
