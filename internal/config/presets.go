package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/coherencelab/glotta/internal/models"
)

// builtinPresets are the named physics-threshold triples. "monitor" is the
// pass-through mode used for benchmarking: it rejects nothing.
var builtinPresets = map[string]models.Thresholds{
	"strict":   {EnergyLossFloor: 0.10, StructuralIntegrityFloor: 0.85, KappaThreshold: 0.15},
	"balanced": {EnergyLossFloor: 0.25, StructuralIntegrityFloor: 0.70, KappaThreshold: 0.30},
	"monitor":  {EnergyLossFloor: 1.0, StructuralIntegrityFloor: 0.0, KappaThreshold: 1.0},
	"galaxy":   {EnergyLossFloor: 0.50, StructuralIntegrityFloor: 0.50, KappaThreshold: 0.50},
	"gravity":  {EnergyLossFloor: 0.15, StructuralIntegrityFloor: 0.80, KappaThreshold: 0.20},
}

// Preset resolves a named threshold preset.
func Preset(name string) (models.Thresholds, error) {
	t, ok := builtinPresets[name]
	if !ok {
		return models.Thresholds{}, fmt.Errorf("unknown preset %q (have: %v)", name, PresetNames())
	}
	return t, nil
}

// PresetNames lists the built-in preset names, sorted.
func PresetNames() []string {
	names := make([]string, 0, len(builtinPresets))
	for name := range builtinPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// presetFile is the YAML shape for user-defined presets.
type presetFile struct {
	Presets map[string]models.Thresholds `yaml:"presets"`
}

// LoadPresetFile reads user-defined presets from a YAML file and merges them
// over the builtins. User presets may shadow builtin names.
func LoadPresetFile(path string) (map[string]models.Thresholds, error) {
	merged := make(map[string]models.Thresholds, len(builtinPresets))
	for name, t := range builtinPresets {
		merged[name] = t
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read preset file: %w", err)
	}
	var pf presetFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse preset file: %w", err)
	}
	for name, t := range pf.Presets {
		merged[name] = t
	}
	return merged, nil
}
