package hierarchy

import (
	"math"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "The cat sat", []string{"the", "cat", "sat"}},
		{"punctuation trimmed", "Hello, world!", []string{"hello", "world"}},
		{"empty", "", nil},
		{"only punctuation", "... !!!", nil},
		{"internal hyphen kept", "well-known fact", []string{"well-known", "fact"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSplitClauses(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{"single clause", "the dog barked", 1},
		{"two clauses", "the dog barked, the cat fled", 2},
		{"sentence boundaries", "It rained. We stayed. Nobody left!", 3},
		{"empty", "", 0},
		{"trailing boundary", "done.", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SplitClauses(tt.in); len(got) != tt.want {
				t.Errorf("SplitClauses(%q) = %v, want %d clauses", tt.in, got, tt.want)
			}
		})
	}
}

func TestClassifyMorphologyFromGloss(t *testing.T) {
	tests := []struct {
		name    string
		glosses []string
		want    MorphologyType
	}{
		{"isolating", []string{"I go market", "you see dog"}, MorphIsolating},
		{"fusional", []string{"go-PST see", "dog-PL run"}, MorphFusional},
		{"agglutinative", []string{"go-PST-1SG market-LOC"}, MorphAgglutinative},
		{"polysynthetic", []string{"see-PST-1SG-3SG-APPL-BEN"}, MorphPolysynthetic},
		{"clitic markers count", []string{"house=LOC go=PST=EVID"}, MorphAgglutinative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyMorphology(nil, tt.glosses); got != tt.want {
				t.Errorf("ClassifyMorphology = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClassifyMorphologyWordLengthFallback(t *testing.T) {
	tests := []struct {
		name      string
		originals []string
		want      MorphologyType
	}{
		{"short words", []string{"ba du ka lo me"}, MorphIsolating},
		{"long words", []string{"incomprehensibilities unconstitutionally"}, MorphPolysynthetic},
		{"no tokens", []string{"...", "!!"}, MorphUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyMorphology(tt.originals, nil); got != tt.want {
				t.Errorf("ClassifyMorphology = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAnalyzeClauses(t *testing.T) {
	stats := AnalyzeClauses([]string{
		"the dog barked",
		"it rained, we stayed",
		"done",
	})
	if math.Abs(stats.AvgClauses-4.0/3.0) > 1e-12 {
		t.Errorf("AvgClauses = %v, want 4/3", stats.AvgClauses)
	}
	if !stats.MonoclausalDominant {
		t.Error("two of three monoclausal samples should dominate")
	}

	if got := AnalyzeClauses(nil); got.AvgClauses != 0 || got.MonoclausalDominant {
		t.Errorf("empty corpus stats = %+v", got)
	}
}
