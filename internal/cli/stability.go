package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coherencelab/glotta/internal/bootstrap"
	"github.com/coherencelab/glotta/internal/models"
	"github.com/coherencelab/glotta/internal/physics"
)

var (
	stabilityLanguage string
	stabilityMinN     int
	stabilityMaxN     int
	stabilityStepN    int
	stabilityTrials   int
	stabilityCV       float64
	stabilitySeed     uint32
	stabilityWorkers  int
	stabilityJSON     bool
)

var stabilityCmd = &cobra.Command{
	Use:   "stability <corpus-file>",
	Short: "Scan sample sizes for the decay-rate stabilization point",
	Long: `Stability resamples the corpus with replacement across a range of
sample sizes and reports N_crit: the smallest size where the bootstrap
coefficient of variation of the decay rate falls under the threshold.

Examples:
  glotta stability corpus.json --language quechua
  glotta stability corpus.json -l quechua --trials 100 --cv 0.03`,
	Args: cobra.ExactArgs(1),
	RunE: runStability,
}

func init() {
	stabilityCmd.Flags().StringVarP(&stabilityLanguage, "language", "l", "", "language name or tag (required)")
	stabilityCmd.Flags().IntVar(&stabilityMinN, "min-n", 0, "smallest sample size (default 10)")
	stabilityCmd.Flags().IntVar(&stabilityMaxN, "max-n", 0, "largest sample size (default corpus size)")
	stabilityCmd.Flags().IntVar(&stabilityStepN, "step-n", 0, "scan step (default 10)")
	stabilityCmd.Flags().IntVar(&stabilityTrials, "trials", 0, "bootstrap trials per size (default 50)")
	stabilityCmd.Flags().Float64Var(&stabilityCV, "cv", 0, "CV stability threshold (default 0.05)")
	stabilityCmd.Flags().Uint32Var(&stabilitySeed, "seed", 0, "bootstrap seed; 0 derives one from the corpus")
	stabilityCmd.Flags().IntVar(&stabilityWorkers, "workers", 0, "trial parallelism (default 4)")
	stabilityCmd.Flags().BoolVar(&stabilityJSON, "json", false, "print the full scan as JSON")
	_ = stabilityCmd.MarkFlagRequired("language")
}

func runStability(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	samples, err := LoadCorpus(args[0])
	if err != nil {
		return err
	}

	engine, _, err := newEngine(ctx)
	if err != nil {
		return err
	}

	analyze := func(resampled []models.Sample) (bootstrap.TrialMetrics, error) {
		result, err := engine.Analyze(ctx, resampled, physics.Config{
			Language:        stabilityLanguage,
			MinValidVectors: cfg.MinValidVectors,
			Seed:            stabilitySeed,
			SkipHierarchy:   true,
		})
		if err != nil {
			return bootstrap.TrialMetrics{}, err
		}
		return bootstrap.TrialMetrics{
			Lambda:     result.Decay.Lambda,
			Kappa:      result.Asymmetry.KappaMax,
			FitQuality: result.Decay.FitQuality,
		}, nil
	}

	scan := bootstrap.ScanStability(samples, analyze, bootstrap.Config{
		MinN:        stabilityMinN,
		MaxN:        stabilityMaxN,
		StepN:       stabilityStepN,
		Trials:      stabilityTrials,
		CVThreshold: stabilityCV,
		Seed:        stabilitySeed,
		Workers:     stabilityWorkers,
	}, logger)

	if stabilityJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(scan)
	}

	fmt.Print(renderScan(scan))
	return nil
}

func renderScan(scan models.NCritResult) string {
	var b []byte
	b = fmt.Appendf(b, "N_crit = %d (stabilized: %t, CV threshold %.3f)\n",
		scan.NCrit, scan.Stabilized, scan.CVThreshold)
	if scan.Stabilized {
		b = fmt.Appendf(b, "confidence span: [%d, %d]\n", scan.CILow, scan.CIHigh)
	}
	for _, p := range scan.Points {
		mark := " "
		switch {
		case p.Skipped:
			mark = "s"
		case p.Stable:
			mark = "*"
		}
		b = fmt.Appendf(b, "%s n=%-5d cv=%-8s lambda=%s±%s failed=%d/%d\n",
			mark, p.SampleSize, fmtMetric(p.LambdaCV),
			fmtMetric(p.LambdaMean), fmtMetric(p.LambdaStd), p.Failed, p.Trials)
	}
	return string(b)
}
