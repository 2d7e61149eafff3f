// Package main provides the entry point for the glotta MCP server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/coherencelab/glotta/internal/config"
	"github.com/coherencelab/glotta/internal/db"
	"github.com/coherencelab/glotta/internal/embedding"
	"github.com/coherencelab/glotta/internal/hierarchy"
	"github.com/coherencelab/glotta/internal/metrics"
	"github.com/coherencelab/glotta/internal/physics"
	"github.com/coherencelab/glotta/internal/server"
	"github.com/coherencelab/glotta/internal/tools"
)

const version = "0.1.0"

func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logger (dual output: stderr text + file JSON)
	logger, cleanup := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer cleanup()

	logger.Info("glotta starting",
		"version", version,
		"provider", cfg.Provider,
		"embedding_model", cfg.EmbeddingModel,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Connect to the run archive. The archive is optional: analysis tools
	// work without it, so a connection failure degrades rather than aborts.
	var dbClient *db.Client
	dbCfg := db.Config{
		URL:       cfg.SurrealDBURL,
		Namespace: cfg.SurrealDBNamespace,
		Database:  cfg.SurrealDBDatabase,
		Username:  cfg.SurrealDBUser,
		Password:  cfg.SurrealDBPass,
		AuthLevel: cfg.SurrealDBAuthLevel,
	}
	if client, err := db.NewClient(ctx, dbCfg, logger); err != nil {
		logger.Warn("run archive unavailable, archiving disabled", "error", err)
	} else if err := client.InitSchema(ctx); err != nil {
		logger.Warn("schema init failed, archiving disabled", "error", err)
		_ = client.Close(ctx)
	} else {
		dbClient = client
		defer func() {
			logger.Info("closing database connection")
			_ = dbClient.Close(ctx)
		}()
	}

	// Create embedder and engine
	embedder, err := embedding.New(ctx, embedding.Config{
		Provider:   embedding.ProviderType(cfg.Provider),
		Model:      cfg.EmbeddingModel,
		OllamaHost: cfg.OllamaHost,
	})
	if err != nil {
		logger.Error("failed to create embedder", "error", err)
		os.Exit(1)
	}
	logger.Info("embedder initialized", "model", embedder.Model())

	collector := metrics.NewCollector()
	engine := physics.NewEngine(embedder, logger, physics.WithMetrics(collector))
	profiler := hierarchy.NewProfiler(embedder, logger)

	// Create the endpoint; the shared collector feeds tool call timings
	srv := server.New(version, logger, collector)

	// Register tools
	deps := &tools.Dependencies{
		Engine:  engine,
		DB:      dbClient,
		Logger:  logger,
		Metrics: collector,
	}
	tools.RegisterAll(srv.MCPServer(), deps, &cfg, profiler)

	logger.Info("server ready, awaiting connections")

	// Run server (blocks until disconnect or context cancelled)
	if err := srv.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}

	logger.Info("shutdown complete")
}
