package embedding

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/coherencelab/glotta/internal/rng"
)

// DefaultHashDimension keeps offline vectors small but collision-sparse
// enough for corpus-level statistics.
const DefaultHashDimension = 64

// HashEmbedder is a deterministic offline backend: each token hashes into a
// bucket and the bag-of-tokens vector is L2-normalized. Identical texts get
// identical vectors and disjoint vocabularies get near-orthogonal ones,
// which is all the physics tests need. Empty text yields a zero vector,
// exercising the collaborator contract's failed-item path.
type HashEmbedder struct {
	dimension int
}

var _ Embedder = (*HashEmbedder)(nil)

// NewHashEmbedder creates a hash embedder; dimension 0 selects the default.
func NewHashEmbedder(dimension int) *HashEmbedder {
	if dimension <= 0 {
		dimension = DefaultHashDimension
	}
	return &HashEmbedder{dimension: dimension}
}

// Model returns the synthetic model tag, including the dimension so runs
// against different dimensions archive as different models.
func (e *HashEmbedder) Model() string {
	return fmt.Sprintf("hash-bag-%d", e.dimension)
}

// Dimension returns the configured dimension.
func (e *HashEmbedder) Dimension() int { return e.dimension }

// Embed builds the normalized bag-of-tokens vector for text.
func (e *HashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, e.dimension)
	tokens := strings.Fields(strings.ToLower(text))
	if len(tokens) == 0 {
		return vec, nil
	}
	for _, tok := range tokens {
		vec[int(rng.HashSeed(tok))%e.dimension]++
	}
	var sumSq float64
	for _, v := range vec {
		sumSq += float64(v) * float64(v)
	}
	norm := float32(math.Sqrt(sumSq))
	if norm > 0 {
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec, nil
}

// EmbedBatch embeds each text independently.
func (e *HashEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	vecs := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.Embed(ctx, text)
		if err != nil {
			return nil, err
		}
		vecs[i] = vec
	}
	return vecs, nil
}
