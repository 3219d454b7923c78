package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/floriangiral/Bougnat-darts-counter/internal/domain"
)

// Preset is one selectable rule set offered to match creators.
type Preset struct {
	ID            string `json:"id"`
	StartingScore int    `json:"starting_score"`
	CheckIn       string `json:"check_in"`
	CheckOut      string `json:"check_out"`
	Mode          string `json:"mode"`
	LegsToWin     int    `json:"legs_to_win"`
	SetsToWin     int    `json:"sets_to_win"`
}

// GameDefaults holds the preset catalogue. It is a plain value handed to
// whoever needs it; there is no package-level instance.
type GameDefaults struct {
	DefaultPreset string   `json:"default_preset"`
	Presets       []Preset `json:"presets"`
}

// Default returns the built-in catalogue used when no config file is mounted.
func Default() GameDefaults {
	return GameDefaults{
		DefaultPreset: "classic_501",
		Presets: []Preset{
			{ID: "classic_301", StartingScore: 301, CheckIn: "Open", CheckOut: "Double", Mode: "LEGS", LegsToWin: 3, SetsToWin: 1},
			{ID: "classic_501", StartingScore: 501, CheckIn: "Open", CheckOut: "Double", Mode: "LEGS", LegsToWin: 3, SetsToWin: 1},
			{ID: "long_701", StartingScore: 701, CheckIn: "Open", CheckOut: "Double", Mode: "SETS", LegsToWin: 3, SetsToWin: 2},
		},
	}
}

// Load reads a preset catalogue from the given path. The file fully replaces
// the built-in catalogue.
func Load(path string) (GameDefaults, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return GameDefaults{}, fmt.Errorf("failed to read game defaults: %w", err)
	}

	var d GameDefaults
	if err := json.Unmarshal(data, &d); err != nil {
		return GameDefaults{}, fmt.Errorf("failed to unmarshal game defaults: %w", err)
	}
	if len(d.Presets) == 0 {
		return GameDefaults{}, fmt.Errorf("game defaults at %s define no presets", path)
	}
	if _, ok := d.findPreset(d.DefaultPreset); !ok {
		return GameDefaults{}, fmt.Errorf("default preset %q not in catalogue", d.DefaultPreset)
	}
	return d, nil
}

// PresetByID resolves a preset, falling back to the default preset for an
// empty or unknown id.
func (d GameDefaults) PresetByID(id string) Preset {
	if p, ok := d.findPreset(id); ok {
		return p
	}
	p, _ := d.findPreset(d.DefaultPreset)
	return p
}

func (d GameDefaults) findPreset(id string) (Preset, bool) {
	for _, p := range d.Presets {
		if p.ID == id {
			return p, true
		}
	}
	return Preset{}, false
}

// GameConfig converts a preset into the rule set the engine consumes.
// Unknown rule spellings fall back to the conventional Open-in, Double-out.
func (p Preset) GameConfig() domain.GameConfig {
	return domain.GameConfig{
		StartingScore: p.StartingScore,
		CheckIn:       checkRule(p.CheckIn, domain.CheckOpen),
		CheckOut:      checkRule(p.CheckOut, domain.CheckDouble),
		Mode:          matchMode(p.Mode),
		LegsToWin:     p.LegsToWin,
		SetsToWin:     p.SetsToWin,
	}
}

func checkRule(s string, fallback domain.CheckRule) domain.CheckRule {
	switch domain.CheckRule(s) {
	case domain.CheckOpen, domain.CheckDouble, domain.CheckMaster:
		return domain.CheckRule(s)
	default:
		return fallback
	}
}

func matchMode(s string) domain.MatchMode {
	if domain.MatchMode(s) == domain.ModeSets {
		return domain.ModeSets
	}
	return domain.ModeLegs
}
