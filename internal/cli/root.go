// Package cli provides the command-line interface for glotta.
package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/coherencelab/glotta/internal/config"
	"github.com/coherencelab/glotta/internal/db"
	"github.com/coherencelab/glotta/internal/embedding"
	"github.com/coherencelab/glotta/internal/physics"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose  bool
	provider string
	model    string

	// Global config and logger, loaded in PersistentPreRunE.
	cfg    config.Config
	logger *slog.Logger

	logCleanup func() error
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "glotta",
	Short: "Coherence physics for language corpora",
	Long: `Glotta measures how semantic coherence decays across a corpus of
language samples: lagged coherence curves, exponential decay rates,
temporal asymmetry, and bootstrap stability scans.

Corpus files are JSON arrays of samples ({"original", "gloss",
"translation"}) or plain text with one sample per line.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if provider != "" {
			cfg.Provider = provider
		}
		if model != "" {
			cfg.EmbeddingModel = model
		}

		level := cfg.LogLevel
		if verbose {
			level = slog.LevelDebug
		}
		logger, logCleanup = config.SetupLogger(cfg.LogFile, level)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCleanup != nil {
			_ = logCleanup()
		}
	},
}

// newEngine builds the embedder and analysis engine from global config.
func newEngine(ctx context.Context) (*physics.Engine, embedding.Embedder, error) {
	embedder, err := embedding.New(ctx, embedding.Config{
		Provider:   embedding.ProviderType(cfg.Provider),
		Model:      cfg.EmbeddingModel,
		OllamaHost: cfg.OllamaHost,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init embedder: %w", err)
	}
	return physics.NewEngine(embedder, logger), embedder, nil
}

// newEngineWithObserver builds an engine that reports pipeline events.
func newEngineWithObserver(ctx context.Context, obs physics.Observer) (*physics.Engine, embedding.Embedder, error) {
	embedder, err := embedding.New(ctx, embedding.Config{
		Provider:   embedding.ProviderType(cfg.Provider),
		Model:      cfg.EmbeddingModel,
		OllamaHost: cfg.OllamaHost,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init embedder: %w", err)
	}
	return physics.NewEngine(embedder, logger, physics.WithObserver(obs)), embedder, nil
}

// connectArchive opens the run archive. Commands that need it call this
// lazily; analysis without --archive never touches the database.
func connectArchive(ctx context.Context) (*db.Client, error) {
	client, err := db.NewClient(ctx, db.Config{
		URL:       cfg.SurrealDBURL,
		Namespace: cfg.SurrealDBNamespace,
		Database:  cfg.SurrealDBDatabase,
		Username:  cfg.SurrealDBUser,
		Password:  cfg.SurrealDBPass,
		AuthLevel: cfg.SurrealDBAuthLevel,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to archive: %w", err)
	}
	if err := client.InitSchema(ctx); err != nil {
		_ = client.Close(ctx)
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return client, nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&provider, "provider", "", "embedding provider: ollama, bedrock, hash")
	rootCmd.PersistentFlags().StringVar(&model, "model", "", "embedding model name")

	// Add subcommands
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(stabilityCmd)
	rootCmd.AddCommand(discriminateCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(runsCmd)
}
