package repository

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"pokerclock/internal/domain"
)

type yamlPreset struct {
	Name                 string           `yaml:"name"`
	Description          string           `yaml:"description,omitempty"`
	StartingChips        int              `yaml:"starting_chips"`
	DefaultLevelDuration int              `yaml:"default_level_duration_seconds"`
	SoundAlerts          *bool            `yaml:"sound_alerts,omitempty"`
	Breaks               *yamlBreakConfig `yaml:"breaks,omitempty"`
	Levels               []yamlLevel      `yaml:"levels"`
}

type yamlBreakConfig struct {
	Enabled         bool  `yaml:"enabled"`
	DurationSeconds int   `yaml:"duration_seconds"`
	EveryNLevels    int   `yaml:"every_n_levels,omitempty"`
	SpecificLevels  []int `yaml:"specific_levels,omitempty"`
}

type yamlLevel struct {
	SmallBlind      int `yaml:"small_blind"`
	BigBlind        int `yaml:"big_blind"`
	Ante            int `yaml:"ante,omitempty"`
	DurationSeconds int `yaml:"duration_seconds,omitempty"`
}

// ExportPresetYAML writes a preset as a hand-editable YAML file.
func ExportPresetYAML(path string, preset domain.Preset) error {
	cfg := preset.Config
	sound := cfg.SoundAlertsEnabled
	fileData := yamlPreset{
		Name:                 preset.Name,
		Description:          preset.Description,
		StartingChips:        cfg.StartingChips,
		DefaultLevelDuration: cfg.DefaultLevelDuration,
		SoundAlerts:          &sound,
		Breaks: &yamlBreakConfig{
			Enabled:         cfg.BreakConfig.Enabled,
			DurationSeconds: cfg.BreakConfig.Duration,
			EveryNLevels:    cfg.BreakConfig.EveryNLevels,
			SpecificLevels:  cfg.BreakConfig.SpecificLevels,
		},
	}
	for _, l := range cfg.BlindLevels {
		fileData.Levels = append(fileData.Levels, yamlLevel{
			SmallBlind:      l.SmallBlind,
			BigBlind:        l.BigBlind,
			Ante:            l.Ante,
			DurationSeconds: l.Duration,
		})
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal preset yaml: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create preset directory: %w", err)
		}
	}
	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write preset file: %w", err)
	}
	return nil
}

// ImportPresetYAML reads a preset file. Omitted fields take the defaults of a
// new tournament; levels without a duration use the default level duration.
// The returned preset has no ID yet.
func ImportPresetYAML(path string) (domain.Preset, error) {
	rawData, err := os.ReadFile(path)
	if err != nil {
		return domain.Preset{}, fmt.Errorf("read preset file: %w", err)
	}

	var fileData yamlPreset
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return domain.Preset{}, fmt.Errorf("parse preset yaml: %w", err)
	}

	cfg := domain.DefaultTournamentConfig()
	if fileData.Name != "" {
		cfg.Name = fileData.Name
	}
	cfg.Description = fileData.Description
	if fileData.StartingChips > 0 {
		cfg.StartingChips = fileData.StartingChips
	}
	if fileData.DefaultLevelDuration > 0 {
		cfg.DefaultLevelDuration = fileData.DefaultLevelDuration
	}
	if fileData.SoundAlerts != nil {
		cfg.SoundAlertsEnabled = *fileData.SoundAlerts
	}
	if fileData.Breaks != nil {
		cfg.BreakConfig = domain.BreakConfig{
			Enabled:        fileData.Breaks.Enabled,
			Duration:       fileData.Breaks.DurationSeconds,
			EveryNLevels:   fileData.Breaks.EveryNLevels,
			SpecificLevels: append([]int{}, fileData.Breaks.SpecificLevels...),
		}
		if cfg.BreakConfig.Duration <= 0 {
			cfg.BreakConfig.Duration = domain.DefaultBreakConfig().Duration
		}
	}

	levels := make([]domain.BlindLevel, 0, len(fileData.Levels))
	for _, l := range fileData.Levels {
		duration := l.DurationSeconds
		if duration <= 0 {
			duration = cfg.DefaultLevelDuration
		}
		levels = append(levels, domain.BlindLevel{
			SmallBlind: l.SmallBlind,
			BigBlind:   l.BigBlind,
			Ante:       l.Ante,
			Duration:   duration,
		})
	}
	cfg = cfg.WithBlindLevels(levels).WithCurrentLevel(0)

	return domain.Preset{
		Name:        cfg.Name,
		Description: cfg.Description,
		Config:      cfg,
	}, nil
}
