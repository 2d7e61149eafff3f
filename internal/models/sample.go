package models

// Sample is one language specimen submitted for analysis. Original is
// required; Gloss and Translation enable the hierarchical profiler's
// clause-level measures when present.
type Sample struct {
	Original    string `json:"original"`
	Gloss       string `json:"gloss,omitempty"`
	Translation string `json:"translation,omitempty"`
}

// Texts returns the original text of each sample, in order.
func Texts(samples []Sample) []string {
	texts := make([]string, len(samples))
	for i, s := range samples {
		texts[i] = s.Original
	}
	return texts
}
