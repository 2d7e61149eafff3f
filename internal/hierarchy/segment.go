// Package hierarchy profiles coherence at three linguistic granularities and
// classifies the result as genealogical, areal, or indeterminate. The
// linguistic side is deliberately shallow: marker heuristics over tokens and
// clause boundaries, no parsing.
package hierarchy

import (
	"strings"
	"unicode"
)

// clause boundary markers; a comma counts as one, which over-segments some
// prose but keeps the structural-regularity proxy simple and stable.
const clauseBoundaries = ".,;:!?"

// Tokenize lowercases text and splits on whitespace, trimming punctuation
// from token edges. Empty tokens are dropped.
func Tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tok := strings.TrimFunc(f, func(r rune) bool {
			return unicode.IsPunct(r) || unicode.IsSymbol(r)
		})
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// SplitClauses breaks text at boundary punctuation and returns the non-empty
// clause strings.
func SplitClauses(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(clauseBoundaries, r)
	})
	clauses := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			clauses = append(clauses, p)
		}
	}
	return clauses
}

// MorphologyType is the coarse typological bucket from marker density.
type MorphologyType string

const (
	MorphIsolating     MorphologyType = "isolating"
	MorphAgglutinative MorphologyType = "agglutinative"
	MorphFusional      MorphologyType = "fusional"
	MorphPolysynthetic MorphologyType = "polysynthetic"
	MorphUnknown       MorphologyType = "unknown"
)

// ClassifyMorphology estimates morphological type. With glosses present it
// uses morphemes-per-word from gloss segment markers; otherwise it falls
// back to mean word length. Both are crude proxies and labeled as such.
func ClassifyMorphology(originals, glosses []string) MorphologyType {
	if mpw, ok := morphemesPerWord(glosses); ok {
		switch {
		case mpw < 1.3:
			return MorphIsolating
		case mpw < 2.0:
			return MorphFusional
		case mpw < 3.0:
			return MorphAgglutinative
		default:
			return MorphPolysynthetic
		}
	}

	var totalLen, count int
	for _, text := range originals {
		for _, tok := range Tokenize(text) {
			totalLen += len([]rune(tok))
			count++
		}
	}
	if count == 0 {
		return MorphUnknown
	}
	avgLen := float64(totalLen) / float64(count)
	switch {
	case avgLen < 4.5:
		return MorphIsolating
	case avgLen < 6.5:
		return MorphFusional
	case avgLen < 9.0:
		return MorphAgglutinative
	default:
		return MorphPolysynthetic
	}
}

// morphemesPerWord averages gloss segment counts (hyphen and equals-sign
// markers, interlinear convention). Returns ok=false without usable glosses.
func morphemesPerWord(glosses []string) (float64, bool) {
	var totalMorphemes, words int
	for _, gloss := range glosses {
		for _, tok := range strings.Fields(gloss) {
			segments := 1 + strings.Count(tok, "-") + strings.Count(tok, "=")
			totalMorphemes += segments
			words++
		}
	}
	if words == 0 {
		return 0, false
	}
	return float64(totalMorphemes) / float64(words), true
}

// ClauseStats summarizes clause segmentation over a corpus.
type ClauseStats struct {
	AvgClauses          float64
	MonoclausalDominant bool
}

// AnalyzeClauses reports the mean clause count per sample and whether over
// half the samples are monoclausal.
func AnalyzeClauses(texts []string) ClauseStats {
	if len(texts) == 0 {
		return ClauseStats{}
	}
	var total, mono int
	for _, text := range texts {
		n := len(SplitClauses(text))
		total += n
		if n <= 1 {
			mono++
		}
	}
	return ClauseStats{
		AvgClauses:          float64(total) / float64(len(texts)),
		MonoclausalDominant: mono*2 > len(texts),
	}
}
