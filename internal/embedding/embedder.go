// Package embedding provides text embedding generation with multiple backend
// support. The engine consumes embedders through the Embedder interface and
// never fetches vectors itself; batching, timeouts, and provider failover are
// the backend's concern. A backend may return a zero vector for a failed
// item; the diagnostics layer treats zero-norm vectors as invalid input,
// not as an error.
package embedding

import (
	"context"
	"fmt"
)

// Embedder is the contract for text embedding providers.
type Embedder interface {
	// Embed generates an embedding vector for a single text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts, one vector per
	// input in order. All vectors share the provider's dimension.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Model returns the embedding model name.
	Model() string

	// Dimension returns the embedding vector dimension.
	Dimension() int
}

// ProviderType identifies the embedding backend.
type ProviderType string

const (
	// ProviderOllama uses a local Ollama server via langchaingo.
	ProviderOllama ProviderType = "ollama"

	// ProviderBedrock uses AWS Bedrock Titan embeddings.
	ProviderBedrock ProviderType = "bedrock"

	// ProviderHash is the deterministic offline backend used by tests and
	// benchmarks; no network, bit-stable output.
	ProviderHash ProviderType = "hash"
)

// Config holds configuration for creating an Embedder.
type Config struct {
	Provider ProviderType

	// Model is the provider-specific model name.
	// Ollama: "all-minilm:l6-v2" (384-dim), "nomic-embed-text" (768-dim)
	// Bedrock: "amazon.titan-embed-text-v2:0" (1024-dim)
	Model string

	// ExpectedDimension is the required output dimension; 0 uses the
	// provider default.
	ExpectedDimension int

	// OllamaHost overrides OLLAMA_HOST for the ollama provider.
	OllamaHost string
}

// New creates an Embedder from config.
func New(ctx context.Context, cfg Config) (Embedder, error) {
	switch cfg.Provider {
	case ProviderOllama, "":
		return NewOllamaEmbedder(cfg.Model, cfg.OllamaHost, cfg.ExpectedDimension)
	case ProviderBedrock:
		return NewBedrockEmbedder(ctx, cfg.Model, cfg.ExpectedDimension)
	case ProviderHash:
		return NewHashEmbedder(cfg.ExpectedDimension), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Provider)
	}
}
