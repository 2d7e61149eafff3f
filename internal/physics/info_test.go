package physics

import (
	"fmt"
	"math"
	"testing"

	"github.com/coherencelab/glotta/internal/rng"
)

func TestShannonEntropy(t *testing.T) {
	tests := []struct {
		name  string
		texts []string
		want  float64
	}{
		{"empty", nil, 0},
		{"constant corpus", []string{"a b", "a b", "a b"}, 0},
		{"two equiprobable outcomes", []string{"x", "y"}, 1},
		{"four equiprobable outcomes", []string{"a", "b", "c", "d"}, 2},
		{"case and spacing normalized", []string{"A  B", "a b"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShannonEntropy(tt.texts); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("ShannonEntropy = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMutualInformation(t *testing.T) {
	// A deterministic bigram process: the second token is fully determined
	// by the first, so adjacent positions share maximal information.
	deterministic := []string{"a b", "a b", "c d", "c d"}
	mi := MutualInformation(deterministic)
	if math.Abs(mi-1) > 1e-12 {
		t.Errorf("MutualInformation = %v, want 1 bit for a two-state deterministic process", mi)
	}

	if got := MutualInformation([]string{"single"}); got != 0 {
		t.Errorf("MutualInformation = %v, want 0 with no token pairs", got)
	}
	if got := MutualInformation(nil); got != 0 {
		t.Errorf("MutualInformation = %v, want 0 for empty corpus", got)
	}
	if got := MutualInformation([]string{"a b c"}); got < 0 {
		t.Errorf("MutualInformation = %v, want clamped non-negative", got)
	}
}

func TestKLDivergence(t *testing.T) {
	// Uniform over the observed vocabulary diverges by exactly zero.
	if got := KLDivergence([]string{"a b c d"}); math.Abs(got) > 1e-12 {
		t.Errorf("KLDivergence = %v, want 0 for a flat distribution", got)
	}

	// A skewed distribution sits measurably away from uniform.
	skewed := KLDivergence([]string{"a a a a a a b"})
	if skewed <= 0 {
		t.Errorf("KLDivergence = %v, want positive for a skewed distribution", skewed)
	}

	if got := KLDivergence(nil); got != 0 {
		t.Errorf("KLDivergence = %v, want 0 for empty corpus", got)
	}
}

func TestOrderSensitivity(t *testing.T) {
	// Ten orthogonal unit vectors arranged so consecutive keys alternate
	// between two directions: the original order has perfect lag-1
	// coherence within each run, while a shuffle breaks the runs apart.
	embeddings := map[string][]float32{}
	keys := make([]string, 10)
	for i := 0; i < 10; i++ {
		key := string(rune('a' + i))
		keys[i] = key
		vec := make([]float32, 4)
		// First five keys share one direction, last five another.
		if i < 5 {
			vec[0] = 1
		} else {
			vec[1] = 1
		}
		embeddings[key] = vec
	}

	sens := OrderSensitivity(embeddings, keys, 7)
	if sens < 0 {
		t.Errorf("OrderSensitivity = %v, want non-negative", sens)
	}
	if math.IsNaN(sens) {
		t.Error("OrderSensitivity returned NaN on computable input")
	}

	if got := OrderSensitivity(map[string][]float32{}, nil, 7); got != 0 {
		t.Errorf("OrderSensitivity = %v, want 0 on empty input", got)
	}
}

func TestOrderSensitivitySequentialStructure(t *testing.T) {
	// Chained vectors: key i lights coordinates i and i+1, so neighbors in
	// the original order have similarity 0.5 and every other pair has 0.
	// Lag-1 coherence after a shuffle is 0.5 times the fraction of
	// surviving neighbor pairs, so sensitivity scales with broken pairs.
	const n = 12
	embeddings := map[string][]float32{}
	keys := make([]string, n)
	index := make(map[string]int, n)
	for i := 0; i < n; i++ {
		key := fmt.Sprintf("k%02d", i)
		keys[i] = key
		index[key] = i
		vec := make([]float32, n+1)
		vec[i] = 1
		vec[i+1] = 1
		embeddings[key] = vec
	}

	const seed = 7
	// Replicate the shuffle and confirm it actually breaks neighbor pairs;
	// otherwise the threshold below would assert nothing.
	shuffled := append([]string(nil), keys...)
	rng.New(seed).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	surviving := 0
	for i := 0; i+1 < len(shuffled); i++ {
		d := index[shuffled[i]] - index[shuffled[i+1]]
		if d == 1 || d == -1 {
			surviving++
		}
	}
	if surviving > n-4 {
		t.Fatalf("shuffle kept %d of %d neighbor pairs; pick another seed", surviving, n-1)
	}

	sens := OrderSensitivity(embeddings, keys, seed)
	if !(sens > 0.01) {
		t.Errorf("OrderSensitivity = %v, want > 0.01 for sequential structure", sens)
	}
}

func TestOrderSensitivityReproducible(t *testing.T) {
	embeddings := map[string][]float32{}
	keys := make([]string, 12)
	for i := range keys {
		key := string(rune('a' + i))
		keys[i] = key
		vec := make([]float32, 8)
		vec[i%8] = 1
		vec[(i+1)%8] = 1
		embeddings[key] = vec
	}

	a := OrderSensitivity(embeddings, keys, 42)
	b := OrderSensitivity(embeddings, keys, 42)
	if a != b {
		t.Errorf("same seed produced %v and %v", a, b)
	}
}
