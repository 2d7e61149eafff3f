package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coherencelab/glotta/internal/validation"
)

var validateJSON bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run layer-separation validation protocols",
	Long: `Validate checks that the measurement layer is independent of the
interpretation layer.

Subcommands:
  independence  Compare blind and hypothesis-aware decay rates
  baseline      z-test transformed corpora against the virgin baseline
  cross-model   Spearman rank invariance of decay rates across models`,
}

var validateIndependenceCmd = &cobra.Command{
	Use:   "independence <blind.json> <aware.json>",
	Short: "Compare blind and hypothesis-aware decay rates",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		blind, err := loadFloats(args[0])
		if err != nil {
			return err
		}
		aware, err := loadFloats(args[1])
		if err != nil {
			return err
		}
		r := validation.CheckIndependence(blind, aware)
		if validateJSON {
			return printJSON(r)
		}
		fmt.Printf("independence: %s (r=%.4f, mean abs diff=%.6f)\n", passFail(r.Pass), r.Correlation, r.MeanAbsDiff)
		return nil
	},
}

var validateBaselineCmd = &cobra.Command{
	Use:   "baseline <virgin.json> <transformed.json>",
	Short: "z-test transformed corpora against the virgin baseline",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		virgin, err := loadFloats(args[0])
		if err != nil {
			return err
		}
		transformed, err := loadFloats(args[1])
		if err != nil {
			return err
		}
		r := validation.CheckBaselineStability(virgin, transformed)
		if validateJSON {
			return printJSON(r)
		}
		fmt.Printf("baseline: %s (z=%.3f, virgin=%.6f, transformed=%.6f)\n",
			passFail(r.Pass), r.Z, r.VirginMean, r.TransformedMean)
		return nil
	},
}

var validateCrossModelCmd = &cobra.Command{
	Use:   "cross-model <rankings.json>",
	Short: "Spearman rank invariance of decay rates across models",
	Long: `Rankings file is a JSON array of {"model": name, "decay_rates": [...]}
entries; each array position refers to the same language across models.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read rankings: %w", err)
		}
		var rankings []validation.ModelRanking
		if err := json.Unmarshal(data, &rankings); err != nil {
			return fmt.Errorf("parse rankings %s: %w", args[0], err)
		}
		r := validation.CheckCrossModelInvariance(rankings)
		if validateJSON {
			return printJSON(r)
		}
		fmt.Printf("cross-model: %s (mean rho=%.4f over %d pairs)\n", passFail(r.Pass), r.MeanRho, len(r.Pairwise))
		for _, p := range r.Pairwise {
			fmt.Printf("  %s vs %s: rho=%.4f\n", p.ModelA, p.ModelB, p.Rho)
		}
		return nil
	},
}

func init() {
	validateCmd.PersistentFlags().BoolVar(&validateJSON, "json", false, "print JSON output")
	validateCmd.AddCommand(validateIndependenceCmd)
	validateCmd.AddCommand(validateBaselineCmd)
	validateCmd.AddCommand(validateCrossModelCmd)
}

func loadFloats(path string) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var values []float64
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("parse %s: expected a JSON array of numbers", path)
	}
	return values, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func passFail(pass bool) string {
	if pass {
		return "PASS"
	}
	return "FAIL"
}
