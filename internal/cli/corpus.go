package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/coherencelab/glotta/internal/models"
)

// LoadCorpus reads a corpus file. JSON files hold an array of samples or an
// array of strings; anything else is plain text with one sample per line.
// Blank lines and lines starting with # are skipped.
func LoadCorpus(path string) ([]models.Sample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		var samples []models.Sample
		if err := json.Unmarshal(data, &samples); err == nil {
			return samples, nil
		}
		var texts []string
		if err := json.Unmarshal(data, &texts); err != nil {
			return nil, fmt.Errorf("parse corpus %s: expected an array of samples or strings", path)
		}
		samples = make([]models.Sample, len(texts))
		for i, t := range texts {
			samples[i] = models.Sample{Original: t}
		}
		return samples, nil
	}

	var samples []models.Sample
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		samples = append(samples, models.Sample{Original: line})
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("corpus %s contains no samples", path)
	}
	return samples, nil
}
