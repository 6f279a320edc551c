package usecase

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"pokerclock/internal/domain"
	"pokerclock/internal/logging"
)

// TournamentService manages the saved tournament and its presets.
type TournamentService struct {
	tournaments domain.TournamentRepository
	presets     domain.PresetRepository
	clock       clockwork.Clock
	newID       func() string
}

// NewTournamentService wires the persistence ports. A nil clock uses the real clock.
func NewTournamentService(tournaments domain.TournamentRepository, presets domain.PresetRepository, clock clockwork.Clock) *TournamentService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &TournamentService{
		tournaments: tournaments,
		presets:     presets,
		clock:       clock,
		newID:       func() string { return uuid.NewString() },
	}
}

// LoadCurrent returns the saved tournament, or the default one if nothing
// usable has been saved. Load failures never stop the clock from starting.
func (s *TournamentService) LoadCurrent() domain.TournamentConfig {
	cfg, found, err := s.tournaments.LoadCurrent()
	if err != nil {
		logging.Warnf("load current tournament: %v", err)
		return domain.DefaultTournamentConfig()
	}
	if !found {
		logging.Debugf("no saved tournament, using defaults")
		return domain.DefaultTournamentConfig()
	}
	return cfg
}

// SaveCurrent validates and stores the active tournament.
func (s *TournamentService) SaveCurrent(cfg domain.TournamentConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return s.tournaments.SaveCurrent(cfg)
}

// ResetCurrent discards the saved tournament and returns the defaults.
func (s *TournamentService) ResetCurrent() (domain.TournamentConfig, error) {
	if err := s.tournaments.ResetCurrent(); err != nil {
		return domain.TournamentConfig{}, err
	}
	return domain.DefaultTournamentConfig(), nil
}

// ListPresets returns the built-in presets followed by the saved ones.
func (s *TournamentService) ListPresets() ([]domain.Preset, error) {
	out := domain.DefaultPresets()
	saved, err := s.presets.ListPresets()
	if err != nil {
		return out, err
	}
	for _, p := range saved {
		if p.IsDefault || domain.IsBuiltinPreset(p.ID) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

// GetPreset looks a preset up by id.
func (s *TournamentService) GetPreset(id string) (domain.Preset, error) {
	presets, err := s.ListPresets()
	if err != nil {
		return domain.Preset{}, err
	}
	for _, p := range presets {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Preset{}, fmt.Errorf("%w: %s", domain.ErrPresetNotFound, id)
}

// SavePreset stores cfg as a new user preset starting at the first level.
func (s *TournamentService) SavePreset(name, description string, cfg domain.TournamentConfig) (domain.Preset, error) {
	if err := cfg.Validate(); err != nil {
		return domain.Preset{}, err
	}
	preset := domain.Preset{
		ID:          s.newID(),
		Name:        name,
		Description: description,
		Config:      cfg.WithCurrentLevel(0),
		CreatedAt:   s.clock.Now().UnixMilli(),
	}
	if err := s.presets.SavePreset(preset); err != nil {
		return domain.Preset{}, err
	}
	logging.Infof("preset saved: %s (%s)", preset.Name, preset.ID)
	return preset, nil
}

// DeletePreset removes a user preset. Built-in presets cannot be deleted.
func (s *TournamentService) DeletePreset(id string) error {
	if domain.IsBuiltinPreset(id) {
		return fmt.Errorf("%w: %s", domain.ErrBuiltinPreset, id)
	}
	return s.presets.DeletePreset(id)
}

// LoadPreset makes a preset the active tournament, positioned at its first level.
func (s *TournamentService) LoadPreset(id string) (domain.TournamentConfig, error) {
	preset, err := s.GetPreset(id)
	if err != nil {
		return domain.TournamentConfig{}, err
	}
	cfg := preset.Config.WithCurrentLevel(0)
	if err := s.SaveCurrent(cfg); err != nil {
		return domain.TournamentConfig{}, err
	}
	return cfg, nil
}

// ImportPreset stores a preset read from outside the application under a new id.
func (s *TournamentService) ImportPreset(preset domain.Preset) (domain.Preset, error) {
	name := preset.Name
	if name == "" {
		name = preset.Config.Name
	}
	return s.SavePreset(name, preset.Description, preset.Config)
}
