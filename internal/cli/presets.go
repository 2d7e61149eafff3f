package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/coherencelab/glotta/internal/config"
	"github.com/coherencelab/glotta/internal/models"
)

var presetsFile string

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List threshold presets",
	Long: `Presets lists the built-in threshold presets and, with --file, any
presets merged from a YAML file.

Example:
  glotta presets
  glotta presets --file custom-presets.yaml`,
	RunE: runPresets,
}

func init() {
	presetsCmd.Flags().StringVar(&presetsFile, "file", "", "YAML preset file merged over built-ins")
}

func runPresets(cmd *cobra.Command, args []string) error {
	var presets map[string]models.Thresholds
	if presetsFile != "" {
		merged, err := config.LoadPresetFile(presetsFile)
		if err != nil {
			return err
		}
		presets = merged
	} else {
		presets = make(map[string]models.Thresholds)
		for _, name := range config.PresetNames() {
			t, err := config.Preset(name)
			if err != nil {
				continue
			}
			presets[name] = t
		}
	}

	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("%-10s %-18s %-22s %s\n", "preset", "energy_loss_floor", "structural_integrity", "kappa_threshold")
	for _, name := range names {
		t := presets[name]
		marker := ""
		if name == cfg.Preset {
			marker = "  (default)"
		}
		fmt.Printf("%-10s %-18.2f %-22.2f %.2f%s\n",
			name, t.EnergyLossFloor, t.StructuralIntegrityFloor, t.KappaThreshold, marker)
	}
	return nil
}
