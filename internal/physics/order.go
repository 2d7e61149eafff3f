package physics

import (
	"math"

	"github.com/coherencelab/glotta/internal/coherence"
	"github.com/coherencelab/glotta/internal/rng"
)

// OrderSensitivity measures how much lag-1 forward coherence changes when
// the corpus order is destroyed by a seeded shuffle. A corpus with genuine
// sequential structure scores well above zero; kappa, being symmetric, is
// expected to barely move under the same shuffle. Returns 0 when lag-1
// coherence cannot be computed on either ordering.
func OrderSensitivity(embeddings map[string][]float32, orderedKeys []string, seed uint32) float64 {
	original := lagOneForward(embeddings, orderedKeys)

	shuffled := make([]string, len(orderedKeys))
	copy(shuffled, orderedKeys)
	rng.New(seed).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	permuted := lagOneForward(embeddings, shuffled)

	if math.IsNaN(original) || math.IsNaN(permuted) {
		return 0
	}
	return math.Abs(original - permuted)
}

func lagOneForward(embeddings map[string][]float32, keys []string) float64 {
	curves := coherence.BuildCurves(embeddings, keys, 1)
	if len(curves) == 0 {
		return math.NaN()
	}
	return curves[0].Forward
}
