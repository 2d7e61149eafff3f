package genealogy

import (
	"math"

	"github.com/coherencelab/glotta/internal/models"
)

// Training hyperparameters. Weights saturate at maxWeight; features whose
// class means differ by less than minSeparation keep their prior weight.
const (
	maxWeight     = 0.5
	minSeparation = 0.01

	thresholdScanLow  = 0.3
	thresholdScanHigh = 0.7
	thresholdScanStep = 0.05

	// DefaultThreshold is the decision threshold before training tunes it.
	DefaultThreshold = 0.5
)

// priorWeights encode the design expectation before any training data:
// inherited structure decays slower, fits cleaner, and bootstraps tighter
// than contact-induced structure.
var priorWeights = [models.FeatureCount]float64{
	models.FeatureDecayRate:     -0.3,
	models.FeatureFitQuality:    0.2,
	models.FeatureCoherenceLag1: 0.3,
	models.FeatureCoherenceLag3: 0.1,
	models.FeatureCoherenceLag5: 0.1,
	models.FeatureConvexity:     0.2,
	models.FeatureVarLambda:     -0.2,
	models.FeatureVarKappa:      -0.1,
}

// Discriminator is a linear-weighted classifier over the fixed feature
// vector: weighted sum through a sigmoid, thresholded to descent or contact.
type Discriminator struct {
	weights   [models.FeatureCount]float64
	threshold float64
}

// New returns an untrained discriminator carrying the prior weights.
func New() *Discriminator {
	return &Discriminator{weights: priorWeights, threshold: DefaultThreshold}
}

// Weights returns a copy of the current weight vector, indexed by Feature.
func (d *Discriminator) Weights() [models.FeatureCount]float64 {
	return d.weights
}

// Threshold returns the current decision threshold.
func (d *Discriminator) Threshold() float64 { return d.threshold }

// Train fits weights from labeled pairs: each feature's weight becomes
// sign(descent mean - contact mean) * min(|difference|, 0.5) when the
// class means separate by more than 0.01; poorly separating features keep
// their prior. The decision threshold is then scanned over [0.3, 0.7] in
// 0.05 steps to maximize F1 on the training set.
func (d *Discriminator) Train(pairs []models.LabeledPair) {
	if len(pairs) == 0 {
		return
	}

	var descentSum, contactSum [models.FeatureCount]float64
	var descentN, contactN int
	for _, p := range pairs {
		switch p.Label {
		case models.LabelDescent:
			descentN++
			for i, v := range p.Features.Vector {
				descentSum[i] += v
			}
		case models.LabelContact:
			contactN++
			for i, v := range p.Features.Vector {
				contactSum[i] += v
			}
		}
	}
	if descentN == 0 || contactN == 0 {
		return
	}

	for i := 0; i < int(models.FeatureCount); i++ {
		diff := descentSum[i]/float64(descentN) - contactSum[i]/float64(contactN)
		if math.Abs(diff) <= minSeparation {
			continue
		}
		w := math.Min(math.Abs(diff), maxWeight)
		if diff < 0 {
			w = -w
		}
		d.weights[i] = w
	}

	d.threshold = d.bestThreshold(pairs)
}

// bestThreshold scans candidate thresholds and keeps the F1-maximizing one.
// Ties keep the lower threshold, so the scan is deterministic.
func (d *Discriminator) bestThreshold(pairs []models.LabeledPair) float64 {
	best, bestF1 := DefaultThreshold, -1.0
	for t := thresholdScanLow; t <= thresholdScanHigh+1e-9; t += thresholdScanStep {
		report := d.evaluateAt(pairs, t)
		if report.F1 > bestF1 {
			best, bestF1 = t, report.F1
		}
	}
	return best
}

// Predict scores one feature vector. Confidence is the raw sigmoid output.
func (d *Discriminator) Predict(features models.GenealogyFeatures) models.ClassificationResult {
	score := d.score(features)
	label := models.LabelContact
	if score >= d.threshold {
		label = models.LabelDescent
	}
	return models.ClassificationResult{
		Label:      label,
		Confidence: score,
		Threshold:  d.threshold,
	}
}

func (d *Discriminator) score(features models.GenealogyFeatures) float64 {
	var sum float64
	for i, v := range features.Vector {
		sum += d.weights[i] * v
	}
	return sigmoid(sum)
}

// Evaluate computes confusion-matrix metrics over a labeled set, with
// descent as the positive class. AUCApprox is accuracy, a deliberate
// simplification carried over from the original design.
func (d *Discriminator) Evaluate(pairs []models.LabeledPair) models.EvaluationReport {
	return d.evaluateAt(pairs, d.threshold)
}

func (d *Discriminator) evaluateAt(pairs []models.LabeledPair, threshold float64) models.EvaluationReport {
	var r models.EvaluationReport
	for _, p := range pairs {
		predDescent := d.score(p.Features) >= threshold
		actualDescent := p.Label == models.LabelDescent
		switch {
		case predDescent && actualDescent:
			r.TruePositives++
		case predDescent && !actualDescent:
			r.FalsePositives++
		case !predDescent && actualDescent:
			r.FalseNegatives++
		default:
			r.TrueNegatives++
		}
	}

	if r.TruePositives+r.FalsePositives > 0 {
		r.Precision = float64(r.TruePositives) / float64(r.TruePositives+r.FalsePositives)
	}
	if r.TruePositives+r.FalseNegatives > 0 {
		r.Recall = float64(r.TruePositives) / float64(r.TruePositives+r.FalseNegatives)
	}
	if r.Precision+r.Recall > 0 {
		r.F1 = 2 * r.Precision * r.Recall / (r.Precision + r.Recall)
	}
	total := len(pairs)
	if total > 0 {
		r.Accuracy = float64(r.TruePositives+r.TrueNegatives) / float64(total)
	}
	r.AUCApprox = r.Accuracy
	return r
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
