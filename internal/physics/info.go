package physics

import (
	"math"
	"strings"

	"github.com/coherencelab/glotta/internal/hierarchy"
)

// ShannonEntropy measures corpus diversity: the entropy (bits) of the
// distribution over distinct normalized sample texts. A constant corpus has
// exactly one outcome and therefore exactly zero entropy, which the
// degenerate-input path relies on.
func ShannonEntropy(texts []string) float64 {
	if len(texts) == 0 {
		return 0
	}
	counts := make(map[string]int)
	for _, t := range texts {
		counts[normalize(t)]++
	}
	n := float64(len(texts))
	var h float64
	for _, c := range counts {
		p := float64(c) / n
		h -= p * math.Log2(p)
	}
	return h
}

// MutualInformation estimates the mutual information (bits) between adjacent
// token positions, pooled over all samples. Zero when no sample has two
// tokens.
func MutualInformation(texts []string) float64 {
	first := make(map[string]int)
	second := make(map[string]int)
	joint := make(map[[2]string]int)
	var pairs int

	for _, t := range texts {
		tokens := hierarchy.Tokenize(t)
		for i := 0; i+1 < len(tokens); i++ {
			first[tokens[i]]++
			second[tokens[i+1]]++
			joint[[2]string{tokens[i], tokens[i+1]}]++
			pairs++
		}
	}
	if pairs == 0 {
		return 0
	}

	n := float64(pairs)
	var mi float64
	for pair, c := range joint {
		pxy := float64(c) / n
		px := float64(first[pair[0]]) / n
		py := float64(second[pair[1]]) / n
		mi += pxy * math.Log2(pxy/(px*py))
	}
	if mi < 0 { // estimator jitter on tiny corpora
		mi = 0
	}
	return mi
}

// KLDivergence measures how far the corpus token distribution sits from
// uniform over its observed vocabulary, in bits. Zero for an empty corpus
// and for a perfectly flat distribution.
func KLDivergence(texts []string) float64 {
	counts := make(map[string]int)
	var total int
	for _, t := range texts {
		for _, tok := range hierarchy.Tokenize(t) {
			counts[tok]++
			total++
		}
	}
	if total == 0 || len(counts) == 0 {
		return 0
	}

	vocab := float64(len(counts))
	n := float64(total)
	var kl float64
	for _, c := range counts {
		p := float64(c) / n
		kl += p * math.Log2(p*vocab)
	}
	if kl < 0 {
		kl = 0
	}
	return kl
}

func normalize(t string) string {
	return strings.Join(strings.Fields(strings.ToLower(t)), " ")
}
