package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCorpus(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadCorpusPlainText(t *testing.T) {
	path := writeCorpus(t, "corpus.txt", `first sample
# a comment line

second sample
`)
	samples, err := LoadCorpus(path)
	if err != nil {
		t.Fatalf("LoadCorpus: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("got %d samples, want 2", len(samples))
	}
	if samples[0].Original != "first sample" || samples[1].Original != "second sample" {
		t.Errorf("samples = %+v", samples)
	}
}

func TestLoadCorpusJSONSamples(t *testing.T) {
	path := writeCorpus(t, "corpus.json", `[
  {"original": "wasi-kuna", "gloss": "house-PL", "translation": "houses"},
  {"original": "rini"}
]`)
	samples, err := LoadCorpus(path)
	if err != nil {
		t.Fatalf("LoadCorpus: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("got %d samples, want 2", len(samples))
	}
	if samples[0].Gloss != "house-PL" || samples[0].Translation != "houses" {
		t.Errorf("gloss fields lost: %+v", samples[0])
	}
}

func TestLoadCorpusJSONStrings(t *testing.T) {
	path := writeCorpus(t, "corpus.json", `["one sample", "another sample"]`)
	samples, err := LoadCorpus(path)
	if err != nil {
		t.Fatalf("LoadCorpus: %v", err)
	}
	if len(samples) != 2 || samples[0].Original != "one sample" {
		t.Errorf("samples = %+v", samples)
	}
}

func TestLoadCorpusErrors(t *testing.T) {
	if _, err := LoadCorpus(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("missing file did not error")
	}

	bad := writeCorpus(t, "bad.json", `{"not": "an array"}`)
	if _, err := LoadCorpus(bad); err == nil {
		t.Error("malformed JSON corpus did not error")
	}

	empty := writeCorpus(t, "empty.txt", "\n# only comments\n")
	if _, err := LoadCorpus(empty); err == nil {
		t.Error("empty corpus did not error")
	}
}
