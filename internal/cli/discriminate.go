package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coherencelab/glotta/internal/genealogy"
	"github.com/coherencelab/glotta/internal/models"
)

var (
	discriminateEval    string
	discriminatePredict string
	discriminateJSON    bool
)

var discriminateCmd = &cobra.Command{
	Use:   "discriminate <labeled-pairs.json>",
	Short: "Train the descent-vs-contact discriminator on labeled pairs",
	Long: `Discriminate trains the genealogy discriminator on a JSON array of
labeled feature pairs and reports the learned weights and threshold.

Each pair has the form:
  {"features": {"vector": [8 numbers]}, "label": "descent" | "contact"}

With --eval, a held-out set is scored and the confusion-matrix report is
printed. With --predict, the trained model classifies unlabeled feature
vectors.`,
	Args: cobra.ExactArgs(1),
	RunE: runDiscriminate,
}

func init() {
	discriminateCmd.Flags().StringVar(&discriminateEval, "eval", "", "labeled pairs file to evaluate against")
	discriminateCmd.Flags().StringVar(&discriminatePredict, "predict", "", "feature vectors file to classify")
	discriminateCmd.Flags().BoolVar(&discriminateJSON, "json", false, "print JSON output")
}

func loadPairs(path string) ([]models.LabeledPair, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read pairs: %w", err)
	}
	var pairs []models.LabeledPair
	if err := json.Unmarshal(data, &pairs); err != nil {
		return nil, fmt.Errorf("parse pairs %s: %w", path, err)
	}
	for _, p := range pairs {
		if p.Label != models.LabelDescent && p.Label != models.LabelContact {
			return nil, fmt.Errorf("pair has unknown label %q", p.Label)
		}
	}
	return pairs, nil
}

func runDiscriminate(cmd *cobra.Command, args []string) error {
	pairs, err := loadPairs(args[0])
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		return fmt.Errorf("training set is empty")
	}

	disc := genealogy.New()
	disc.Train(pairs)

	out := struct {
		Weights    map[string]float64            `json:"weights"`
		Threshold  float64                       `json:"threshold"`
		TrainSize  int                           `json:"train_size"`
		Report     *models.EvaluationReport      `json:"report,omitempty"`
		Prediction []models.ClassificationResult `json:"predictions,omitempty"`
	}{
		Weights:   namedWeights(disc.Weights()),
		Threshold: disc.Threshold(),
		TrainSize: len(pairs),
	}

	if discriminateEval != "" {
		evalPairs, err := loadPairs(discriminateEval)
		if err != nil {
			return err
		}
		report := disc.Evaluate(evalPairs)
		out.Report = &report
	}

	if discriminatePredict != "" {
		data, err := os.ReadFile(discriminatePredict)
		if err != nil {
			return fmt.Errorf("read features: %w", err)
		}
		var features []models.GenealogyFeatures
		if err := json.Unmarshal(data, &features); err != nil {
			return fmt.Errorf("parse features %s: %w", discriminatePredict, err)
		}
		for _, f := range features {
			out.Prediction = append(out.Prediction, disc.Predict(f))
		}
	}

	if discriminateJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Printf("Trained on %d pairs, threshold %.2f\n", out.TrainSize, out.Threshold)
	for f := models.Feature(0); f < models.FeatureCount; f++ {
		fmt.Printf("  %-16s %+.4f\n", f, disc.Weights()[f])
	}
	if out.Report != nil {
		r := out.Report
		fmt.Printf("Evaluation: accuracy=%.3f precision=%.3f recall=%.3f f1=%.3f\n",
			r.Accuracy, r.Precision, r.Recall, r.F1)
	}
	for i, p := range out.Prediction {
		fmt.Printf("prediction %d: %s (confidence %.3f)\n", i, p.Label, p.Confidence)
	}
	return nil
}

// namedWeights keys the weight vector by feature name for JSON output.
func namedWeights(w [models.FeatureCount]float64) map[string]float64 {
	named := make(map[string]float64, models.FeatureCount)
	for f := models.Feature(0); f < models.FeatureCount; f++ {
		named[f.String()] = w[f]
	}
	return named
}
