package physics

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/coherencelab/glotta/internal/coherence"
	"github.com/coherencelab/glotta/internal/diagnostics"
	"github.com/coherencelab/glotta/internal/embedding"
	"github.com/coherencelab/glotta/internal/hierarchy"
	"github.com/coherencelab/glotta/internal/metrics"
	"github.com/coherencelab/glotta/internal/models"
	"github.com/coherencelab/glotta/internal/rng"
)

// Config controls one analysis run. Zero values select the documented
// defaults; Thresholds defaults to the pass-through monitor preset.
type Config struct {
	Language string
	Preset   string

	Thresholds models.Thresholds

	MinValidVectors int
	MaxLag          int
	Tau             float64

	// Seed 0 is the canonical deterministic mode. It also seeds the
	// order-sensitivity shuffle; in that case the shuffle seed derives from
	// the corpus text instead, so distinct corpora stay distinguishable
	// while identical input keeps producing identical output.
	Seed uint32

	// SkipHierarchy disables the clause/token profiler, saving its extra
	// embedding calls. Intra/inter clause coherence then report zero.
	SkipHierarchy bool
}

func (c Config) withDefaults() Config {
	if c.MinValidVectors <= 0 {
		c.MinValidVectors = diagnostics.DefaultMinValidVectors
	}
	if c.MaxLag <= 0 {
		c.MaxLag = coherence.DefaultMaxLag
	}
	if c.Tau <= 0 {
		c.Tau = coherence.DefaultTau
	}
	var zero models.Thresholds
	if c.Thresholds == zero {
		c.Thresholds = models.Thresholds{EnergyLossFloor: 1.0, StructuralIntegrityFloor: 0.0, KappaThreshold: 1.0}
		if c.Preset == "" {
			c.Preset = "monitor"
		}
	}
	return c
}

// Engine runs the full analysis pipeline. It holds no per-run state; one
// engine serves any number of sequential or concurrent runs.
type Engine struct {
	embedder embedding.Embedder
	logger   *slog.Logger
	observer Observer
	metrics  *metrics.Collector
}

// Option configures an Engine.
type Option func(*Engine)

// WithObserver attaches a diagnostic event sink.
func WithObserver(obs Observer) Option {
	return func(e *Engine) { e.observer = obs }
}

// WithMetrics attaches a runtime metrics collector.
func WithMetrics(c *metrics.Collector) Option {
	return func(e *Engine) { e.metrics = c }
}

// NewEngine creates an engine over the given embedding collaborator.
func NewEngine(embedder embedding.Embedder, logger *slog.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{embedder: embedder, logger: logger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Model reports the embedding model tag the engine runs against.
func (e *Engine) Model() string { return e.embedder.Model() }

// Analyze runs the pipeline in dependency order: embed, diagnose, gate,
// curves, decay and asymmetry, information metrics, structural heuristics,
// threshold gate. Data-quality conditions never surface as errors; they are
// statuses on the result. The returned error covers only collaborator and
// internal failures, and when it is non-nil the result carries
// StatusFailed with the reason.
func (e *Engine) Analyze(ctx context.Context, samples []models.Sample, cfg Config) (*models.Result, error) {
	cfg = cfg.withDefaults()

	result := &models.Result{
		ID:          uuid.New(),
		Language:    cfg.Language,
		Model:       e.embedder.Model(),
		Preset:      cfg.Preset,
		SampleSize:  len(samples),
		GeneratedAt: time.Now().UTC(),
	}

	texts := models.Texts(samples)

	e.emit(EventStage, "embedding", fmt.Sprintf("embedding %d samples", len(texts)))
	start := time.Now()
	vectors, err := e.embedder.EmbedBatch(ctx, texts)
	e.record(metrics.OpEmbedding, start)
	if err != nil {
		result.Status = models.StatusFailed
		result.Reason = fmt.Sprintf("embedding fetch failed: %v", err)
		setNaNMetrics(result)
		return result, fmt.Errorf("embed batch: %w", err)
	}

	e.emit(EventStage, "diagnostics", "validating embeddings")
	result.Diagnostics = diagnostics.Validate(vectors)
	usability := diagnostics.CheckUsability(result.Diagnostics, cfg.MinValidVectors)

	if !usability.Valid {
		result.Reason = usability.Reason
		if result.Diagnostics.TotalVectors == 0 || result.Diagnostics.AvgNorm < diagnostics.MinValidNorm {
			result.Status = models.StatusSkipped
		} else {
			result.Status = models.StatusBelowThreshold
		}
		setNaNMetrics(result)
		e.emit(EventDecision, "diagnostics", "input rejected: "+usability.Reason)
		e.logger.Info("analysis not computed",
			"status", result.Status, "reason", result.Reason, "valid_vectors", result.Diagnostics.ValidVectors)
		return result, nil
	}

	if usability.Degenerate {
		e.emit(EventDecision, "diagnostics", "degenerate corpus: emitting perfect-coherence result")
		result.Reason = usability.Reason
		e.fillDegenerate(result, texts, cfg)
		return result, nil
	}

	keys, embMap := keyedVectors(vectors)

	e.emit(EventStage, "coherence", "building lagged coherence curves")
	start = time.Now()
	result.Curves = coherence.BuildCurves(embMap, keys, cfg.MaxLag)
	e.record(metrics.OpCurveBuild, start)

	computedLags := 0
	for _, c := range result.Curves {
		if c.Computed() {
			computedLags++
		}
	}
	if computedLags == 0 {
		result.Status = models.StatusPartial
		result.Reason = "no usable forward/backward pairs at any lag"
		setNaNMetrics(result)
		return result, nil
	}

	result.Decay = coherence.FitDecay(result.Curves)
	result.Asymmetry = coherence.AnalyzeAsymmetry(result.Curves, cfg.Tau)

	if result.Decay.Method == models.MethodInsufficientData {
		result.Status = models.StatusPartial
		result.Reason = "insufficient curve points for decay fit"
		setNaNMetrics(result)
		return result, nil
	}

	e.emit(EventStage, "information", "computing information metrics")
	result.ShannonEntropy = ShannonEntropy(texts)
	result.MutualInfo = MutualInformation(texts)
	result.KLDivergence = KLDivergence(texts)

	clauses := hierarchy.AnalyzeClauses(texts)
	result.AvgClauses = clauses.AvgClauses
	result.MonoclausalDominant = clauses.MonoclausalDominant
	result.Morphology = string(hierarchy.ClassifyMorphology(texts, glosses(samples)))

	if !cfg.SkipHierarchy {
		e.emit(EventStage, "hierarchy", "profiling clause-level coherence")
		profile, err := hierarchy.NewProfiler(e.embedder, e.logger).Profile(ctx, samples)
		if err != nil {
			result.Status = models.StatusFailed
			result.Reason = fmt.Sprintf("hierarchical profile failed: %v", err)
			setNaNMetrics(result)
			return result, fmt.Errorf("profile hierarchy: %w", err)
		}
		result.IntraClauseCoh = profile.ICC
		result.InterClauseCoh = profile.XCC
	}

	result.OrderSensitivity = OrderSensitivity(embMap, keys, e.orderSeed(cfg, texts))

	result.Status = models.StatusComputed
	e.applyThresholds(result, cfg.Thresholds)

	e.logger.Info("analysis computed",
		"language", cfg.Language,
		"samples", len(samples),
		"lambda", result.Decay.Lambda,
		"kappa", result.Asymmetry.KappaMax,
		"passed", result.Passed)
	return result, nil
}

// fillDegenerate produces the fully defined perfect-coherence result for a
// constant-like corpus: coherence 1 at every lag, zero decay, zero entropy.
func (e *Engine) fillDegenerate(result *models.Result, texts []string, cfg Config) {
	result.Status = models.StatusComputed

	valid := result.Diagnostics.ValidVectors
	for lag := 1; lag <= cfg.MaxLag; lag++ {
		n := valid - lag
		if n < 0 {
			n = 0
		}
		result.Curves = append(result.Curves, models.CoherenceCurve{
			Lag: lag, Forward: 1, Backward: 1, SampleSize: n,
		})
	}

	result.Decay = models.DecayAnalysis{
		Lambda:          0,
		CoherenceRadius: math.Inf(1),
		FitQuality:      1,
		FittedC0:        1,
		CoherenceAtLags: map[int]float64{},
		Method:          models.MethodLogLinear,
	}
	for _, c := range result.Curves {
		result.Decay.CoherenceAtLags[c.Lag] = c.Forward
	}

	result.Asymmetry = models.AsymmetryAnalysis{
		ForwardMean: 1, BackwardMean: 1, ISI: 1, ISIExp: 1,
	}

	// One repeated outcome carries no information by definition.
	result.ShannonEntropy = 0
	result.MutualInfo = 0
	result.KLDivergence = 0
	result.OrderSensitivity = 0

	clauses := hierarchy.AnalyzeClauses(texts)
	result.AvgClauses = clauses.AvgClauses
	result.MonoclausalDominant = clauses.MonoclausalDominant
	result.Morphology = string(hierarchy.ClassifyMorphology(texts, nil))
	result.IntraClauseCoh = 1
	result.InterClauseCoh = 1

	e.applyThresholds(result, cfg.Thresholds)
}

// applyThresholds runs the preset gate. A failed gate never changes the
// status; the metrics stay computed and the failure is data.
func (e *Engine) applyThresholds(result *models.Result, t models.Thresholds) {
	var failed []string
	if result.Decay.Lambda > t.EnergyLossFloor {
		failed = append(failed, "energy_loss")
	}
	if result.Asymmetry.ForwardMean < t.StructuralIntegrityFloor {
		failed = append(failed, "structural_integrity")
	}
	if result.Asymmetry.KappaMax > t.KappaThreshold {
		failed = append(failed, "kappa")
	}
	result.Passed = len(failed) == 0
	result.FailedGates = failed
	if len(failed) > 0 {
		e.emit(EventDecision, "thresholds", "failed gates: "+strings.Join(failed, ", "))
	}
}

// orderSeed picks the shuffle seed for order sensitivity: the run seed when
// one is set, otherwise a hash of the corpus text so the shuffle is
// reproducible per distinct corpus even in deterministic mode.
func (e *Engine) orderSeed(cfg Config, texts []string) uint32 {
	if cfg.Seed != 0 {
		return cfg.Seed
	}
	return rng.HashSeed(strings.Join(texts, "\n"))
}

func (e *Engine) record(op string, start time.Time) {
	if e.metrics != nil {
		e.metrics.RecordTiming(op, time.Since(start))
	}
}

// keyedVectors assigns positional keys so duplicate texts stay distinct
// items in the curve builder.
func keyedVectors(vectors [][]float32) ([]string, map[string][]float32) {
	keys := make([]string, len(vectors))
	m := make(map[string][]float32, len(vectors))
	for i, v := range vectors {
		key := fmt.Sprintf("s%05d", i)
		keys[i] = key
		m[key] = v
	}
	return keys, m
}

func glosses(samples []models.Sample) []string {
	var out []string
	for _, s := range samples {
		if s.Gloss != "" {
			out = append(out, s.Gloss)
		}
	}
	return out
}

// setNaNMetrics marks every physics metric not-computed. NaN here is a
// sentinel for "never measured"; a computed zero always arrives through the
// normal path.
func setNaNMetrics(result *models.Result) {
	nan := math.NaN()
	result.Decay = models.DecayAnalysis{
		Lambda:          nan,
		CoherenceRadius: nan,
		FitQuality:      nan,
		FittedC0:        nan,
		Method:          result.Decay.Method,
	}
	if result.Decay.Method == "" {
		result.Decay.Method = models.MethodInsufficientData
	}
	result.Asymmetry = models.AsymmetryAnalysis{
		KappaMax: nan, KappaSum: nan, Delta: nan,
		ForwardMean: nan, BackwardMean: nan, ISI: nan, ISIExp: nan,
	}
	result.ShannonEntropy = nan
	result.MutualInfo = nan
	result.KLDivergence = nan
	result.AvgClauses = nan
	result.IntraClauseCoh = nan
	result.InterClauseCoh = nan
	result.OrderSensitivity = nan
}
