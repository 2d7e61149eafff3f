package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/coherencelab/glotta/internal/config"
	"github.com/coherencelab/glotta/internal/models"
	"github.com/coherencelab/glotta/internal/physics"
	"github.com/coherencelab/glotta/internal/report"
)

var (
	analyzeLanguage string
	analyzePreset   string
	analyzeSeed     uint32
	analyzeMaxLag   int
	analyzeArchive  bool
	analyzeJSON     bool
	analyzeCSV      string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <corpus-file>",
	Short: "Run the coherence analysis pipeline on a corpus",
	Long: `Analyze embeds the corpus, validates the vectors, builds lagged
coherence curves, fits the exponential decay rate, and checks temporal
asymmetry and information metrics.

Examples:
  glotta analyze corpus.json --language quechua
  glotta analyze corpus.txt --language aymara --preset strict --csv out.csv
  glotta analyze corpus.json --language quechua --archive`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeLanguage, "language", "l", "", "language name or tag (required)")
	analyzeCmd.Flags().StringVarP(&analyzePreset, "preset", "p", "", "threshold preset (default from config)")
	analyzeCmd.Flags().Uint32Var(&analyzeSeed, "seed", 0, "PRNG seed; 0 selects deterministic mode")
	analyzeCmd.Flags().IntVar(&analyzeMaxLag, "max-lag", 0, "maximum coherence lag (default 5)")
	analyzeCmd.Flags().BoolVar(&analyzeArchive, "archive", false, "store the result in the run archive")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "print the full result as JSON")
	analyzeCmd.Flags().StringVar(&analyzeCSV, "csv", "", "append a CSV row to this file")
	_ = analyzeCmd.MarkFlagRequired("language")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	samples, err := LoadCorpus(args[0])
	if err != nil {
		return err
	}

	preset := analyzePreset
	if preset == "" {
		preset = cfg.Preset
	}
	thresholds, err := config.Preset(preset)
	if err != nil {
		return fmt.Errorf("unknown preset %q (available: %v)", preset, config.PresetNames())
	}

	engine, _, err := newEngine(ctx)
	if err != nil {
		return err
	}

	physCfg := physics.Config{
		Language:        analyzeLanguage,
		Preset:          preset,
		Thresholds:      thresholds,
		MinValidVectors: cfg.MinValidVectors,
		MaxLag:          analyzeMaxLag,
		Seed:            analyzeSeed,
	}

	var result *models.Result
	if isTerminal() && !analyzeJSON {
		result, err = analyzeWithProgress(ctx, samples, physCfg)
	} else {
		result, err = engine.Analyze(ctx, samples, physCfg)
	}
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	if analyzeArchive {
		archive, err := connectArchive(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = archive.Close(ctx) }()
		if _, err := archive.ArchiveRun(ctx, result); err != nil {
			return fmt.Errorf("archive run: %w", err)
		}
		fmt.Printf("Archived run %s\n", result.ID)
	}

	if analyzeCSV != "" {
		if err := appendCSVRow(analyzeCSV, result); err != nil {
			return err
		}
	}

	if analyzeJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Print(renderResult(result))
	return nil
}

// errCancelled reports that the user quit the progress UI before the
// analysis finished.
var errCancelled = errors.New("analysis cancelled")

// analyzeWithProgress runs the engine under the bubbletea progress UI. A
// fresh engine carries the observer; events drain into the UI until the run
// goroutine closes the channel. result and runErr are only read after the
// done channel closes, so the goroutine's writes are visible here.
func analyzeWithProgress(ctx context.Context, samples []models.Sample, physCfg physics.Config) (*models.Result, error) {
	events := make(chan physics.Event, 16)

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	engine, _, err := newEngineWithObserver(runCtx, func(ev physics.Event) {
		select {
		case events <- ev:
		default:
		}
	})
	if err != nil {
		return nil, err
	}

	var result *models.Result
	var runErr error
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer close(events)
		result, runErr = engine.Analyze(runCtx, samples, physCfg)
	}()

	// The UI failing is not fatal; awaitRun below still synchronizes with
	// the run goroutine either way.
	_, _ = tea.NewProgram(newProgressModel(events)).Run()

	if err := awaitRun(done, cancel); err != nil {
		return nil, err
	}
	if runErr != nil {
		return nil, runErr
	}
	return result, nil
}

// awaitRun distinguishes a finished run from an early quit. When the UI
// returned before the run goroutine closed done, the run is cancelled and
// awaited so it never outlives the caller.
func awaitRun(done <-chan struct{}, cancel context.CancelFunc) error {
	select {
	case <-done:
		return nil
	default:
	}
	cancel()
	<-done
	return errCancelled
}

// appendCSVRow writes the header when creating the file, then one row.
func appendCSVRow(path string, result *models.Result) error {
	_, statErr := os.Stat(path)
	newFile := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	if newFile {
		return report.WriteCSV(f, []*models.Result{result})
	}
	return report.AppendCSV(f, result)
}
