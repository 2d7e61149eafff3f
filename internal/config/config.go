// Package config reads runtime configuration from environment variables and
// preset files, and builds the process logger.
package config

import (
	"log/slog"
	"os"
	"strings"
)

// Numeric defaults carried by every run. The diffusion constants are kept
// from the published run contract; no pipeline stage consumes them yet.
// The deterministic seed is the canonical reproducible mode.
const (
	DefaultDiffusionSteps = 256
	DefaultDiffusionDT    = 0.01
	DefaultSeed           = 0
)

// Config holds all configuration values.
type Config struct {
	// SurrealDB run archive (optional)
	SurrealDBURL       string
	SurrealDBNamespace string
	SurrealDBDatabase  string
	SurrealDBUser      string
	SurrealDBPass      string
	SurrealDBAuthLevel string

	// Embedding backend
	Provider       string
	OllamaHost     string
	EmbeddingModel string

	// Physics
	Preset          string
	MinValidVectors int

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		SurrealDBURL:       getEnv("SURREALDB_URL", "ws://localhost:8000/rpc"),
		SurrealDBNamespace: getEnv("SURREALDB_NAMESPACE", "glotta"),
		SurrealDBDatabase:  getEnv("SURREALDB_DATABASE", "runs"),
		SurrealDBUser:      getEnv("SURREALDB_USER", "root"),
		SurrealDBPass:      getEnv("SURREALDB_PASS", "root"),
		SurrealDBAuthLevel: getEnv("SURREALDB_AUTH_LEVEL", "root"),

		Provider:       getEnv("GLOTTA_EMBEDDING_PROVIDER", "ollama"),
		OllamaHost:     getEnv("OLLAMA_HOST", "http://localhost:11434"),
		EmbeddingModel: getEnv("GLOTTA_EMBEDDING_MODEL", "all-minilm:l6-v2"),

		Preset:          getEnv("GLOTTA_PRESET", "balanced"),
		MinValidVectors: 20,

		LogFile:  getEnv("GLOTTA_LOG_FILE", "/tmp/glotta.log"),
		LogLevel: parseLogLevel(getEnv("GLOTTA_LOG_LEVEL", "INFO")),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
