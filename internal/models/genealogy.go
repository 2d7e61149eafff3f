package models

// Feature indexes into GenealogyFeatures.Vector. The feature set is a fixed
// ordered list; weights live in a parallel vector indexed by these
// constants, so there is no dynamic lookup by name anywhere.
type Feature int

const (
	FeatureDecayRate Feature = iota
	FeatureFitQuality
	FeatureCoherenceLag1
	FeatureCoherenceLag3
	FeatureCoherenceLag5
	FeatureConvexity
	FeatureVarLambda
	FeatureVarKappa

	FeatureCount
)

// featureNames is ordered to match the Feature constants.
var featureNames = [FeatureCount]string{
	"decay_rate",
	"fit_quality",
	"coherence_lag1",
	"coherence_lag3",
	"coherence_lag5",
	"convexity",
	"var_lambda",
	"var_kappa",
}

// String returns the stable name of a feature.
func (f Feature) String() string {
	if f < 0 || f >= FeatureCount {
		return "unknown"
	}
	return featureNames[f]
}

// GenealogyFeatures is the fixed feature vector extracted from one physics
// run, used by the descent-vs-contact discriminator.
type GenealogyFeatures struct {
	Vector [FeatureCount]float64 `json:"vector"`
}

// RelationLabel is the supervised label for discriminator training.
type RelationLabel string

const (
	LabelDescent RelationLabel = "descent"
	LabelContact RelationLabel = "contact"
)

// LabeledPair couples a feature vector with its known relationship.
type LabeledPair struct {
	Features GenealogyFeatures `json:"features"`
	Label    RelationLabel     `json:"label"`
}

// ClassificationResult is one discriminator prediction. Confidence is the
// raw sigmoid output, so it doubles as the descent probability estimate.
type ClassificationResult struct {
	Label      RelationLabel `json:"label"`
	Confidence float64       `json:"confidence"`
	Threshold  float64       `json:"threshold"`
}

// EvaluationReport holds confusion-matrix metrics for a labeled set.
// AUCApprox is accuracy, not a true ROC-AUC; the substitution is inherited
// behavior and deliberately kept visible in the name.
type EvaluationReport struct {
	TruePositives  int `json:"true_positives"`
	TrueNegatives  int `json:"true_negatives"`
	FalsePositives int `json:"false_positives"`
	FalseNegatives int `json:"false_negatives"`

	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Accuracy  float64 `json:"accuracy"`
	AUCApprox float64 `json:"auc_approx"`
}
