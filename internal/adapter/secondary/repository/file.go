package repository

import (
	"errors"
	"fmt"
	"sort"

	"pokerclock/internal/domain"
)

const (
	currentTournamentKey = "pokertimer_current"
	presetsKey           = "pokertimer_presets"
)

// FileRepository implements domain.TournamentRepository and domain.PresetRepository
// on top of a Store. This is a secondary adapter.
type FileRepository struct {
	store *Store
}

// NewFileRepository creates a repository whose documents live under dir.
func NewFileRepository(dir string) (*FileRepository, error) {
	store, err := NewStore(dir)
	if err != nil {
		return nil, err
	}
	return &FileRepository{store: store}, nil
}

// LoadCurrent reads the active tournament.
func (f *FileRepository) LoadCurrent() (domain.TournamentConfig, bool, error) {
	var persisted persistedConfig
	found, err := f.store.Get(currentTournamentKey, &persisted)
	if err != nil || !found {
		return domain.TournamentConfig{}, false, err
	}
	return persisted.toDomain(), true, nil
}

// SaveCurrent persists the active tournament.
func (f *FileRepository) SaveCurrent(config domain.TournamentConfig) error {
	if err := f.store.Put(currentTournamentKey, fromDomainConfig(config)); err != nil {
		return fmt.Errorf("save current tournament: %w", err)
	}
	return nil
}

// ResetCurrent forgets the active tournament so the next load starts from defaults.
func (f *FileRepository) ResetCurrent() error {
	return f.store.Delete(currentTournamentKey)
}

// ListPresets returns saved presets, oldest first.
func (f *FileRepository) ListPresets() ([]domain.Preset, error) {
	persisted, err := f.loadPresets()
	if err != nil {
		return nil, err
	}
	presets := make([]domain.Preset, 0, len(persisted))
	for _, p := range persisted {
		presets = append(presets, p.toDomain())
	}
	sort.SliceStable(presets, func(i, j int) bool {
		return presets[i].CreatedAt < presets[j].CreatedAt
	})
	return presets, nil
}

// SavePreset inserts or replaces the preset with the same ID.
func (f *FileRepository) SavePreset(preset domain.Preset) error {
	var persisted []persistedPreset
	err := f.store.Update(presetsKey, &persisted, func(bool) error {
		for i := range persisted {
			if persisted[i].ID == preset.ID {
				persisted[i] = fromDomainPreset(preset)
				return nil
			}
		}
		persisted = append(persisted, fromDomainPreset(preset))
		return nil
	})
	if err != nil {
		return fmt.Errorf("save preset: %w", err)
	}
	return nil
}

// DeletePreset removes the preset with id.
func (f *FileRepository) DeletePreset(id string) error {
	var persisted []persistedPreset
	err := f.store.Update(presetsKey, &persisted, func(bool) error {
		filtered := persisted[:0]
		for _, p := range persisted {
			if p.ID != id {
				filtered = append(filtered, p)
			}
		}
		if len(filtered) == len(persisted) {
			return domain.ErrPresetNotFound
		}
		persisted = filtered
		return nil
	})
	if errors.Is(err, domain.ErrPresetNotFound) {
		return err
	}
	if err != nil {
		return fmt.Errorf("delete preset: %w", err)
	}
	return nil
}

func (f *FileRepository) loadPresets() ([]persistedPreset, error) {
	var persisted []persistedPreset
	if _, err := f.store.Get(presetsKey, &persisted); err != nil {
		return nil, fmt.Errorf("load presets: %w", err)
	}
	return persisted, nil
}
