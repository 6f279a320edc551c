package repository

import "pokerclock/internal/domain"

// persistedConfig is the JSON shape of a tournament on disk.
// BreakConfig is a pointer so configs written before breaks existed still load.
type persistedConfig struct {
	Name                 string                `json:"name"`
	Description          string                `json:"description,omitempty"`
	StartingChips        int                   `json:"startingChips"`
	BlindLevels          []persistedBlindLevel `json:"blindLevels"`
	DefaultLevelDuration int                   `json:"defaultLevelDuration"`
	SoundAlertsEnabled   bool                  `json:"soundAlertsEnabled"`
	CurrentLevel         int                   `json:"currentLevel"`
	BreakConfig          *persistedBreakConfig `json:"breakConfig,omitempty"`
}

type persistedBlindLevel struct {
	Level      int `json:"level"`
	SmallBlind int `json:"smallBlind"`
	BigBlind   int `json:"bigBlind"`
	Ante       int `json:"ante"`
	Duration   int `json:"duration"`
}

type persistedBreakConfig struct {
	Enabled        bool  `json:"enabled"`
	Duration       int   `json:"duration"`
	EveryNLevels   *int  `json:"everyNLevels"`
	SpecificLevels []int `json:"specificLevels"`
}

type persistedPreset struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Config      persistedConfig `json:"config"`
	CreatedAt   int64           `json:"createdAt"`
	IsDefault   bool            `json:"isDefault"`
}

func fromDomainConfig(c domain.TournamentConfig) persistedConfig {
	levels := make([]persistedBlindLevel, 0, len(c.BlindLevels))
	for _, l := range c.BlindLevels {
		levels = append(levels, persistedBlindLevel(l))
	}
	bc := fromDomainBreakConfig(c.BreakConfig)
	return persistedConfig{
		Name:                 c.Name,
		Description:          c.Description,
		StartingChips:        c.StartingChips,
		BlindLevels:          levels,
		DefaultLevelDuration: c.DefaultLevelDuration,
		SoundAlertsEnabled:   c.SoundAlertsEnabled,
		CurrentLevel:         c.CurrentLevel,
		BreakConfig:          &bc,
	}
}

func fromDomainBreakConfig(bc domain.BreakConfig) persistedBreakConfig {
	out := persistedBreakConfig{
		Enabled:        bc.Enabled,
		Duration:       bc.Duration,
		SpecificLevels: append([]int{}, bc.SpecificLevels...),
	}
	if bc.EveryNLevels > 0 {
		n := bc.EveryNLevels
		out.EveryNLevels = &n
	}
	return out
}

func (p persistedConfig) toDomain() domain.TournamentConfig {
	levels := make([]domain.BlindLevel, 0, len(p.BlindLevels))
	for _, l := range p.BlindLevels {
		levels = append(levels, domain.BlindLevel(l))
	}
	config := domain.TournamentConfig{
		Name:                 p.Name,
		Description:          p.Description,
		StartingChips:        p.StartingChips,
		BlindLevels:          levels,
		DefaultLevelDuration: p.DefaultLevelDuration,
		SoundAlertsEnabled:   p.SoundAlertsEnabled,
		CurrentLevel:         p.CurrentLevel,
		BreakConfig:          domain.DefaultBreakConfig(),
	}
	if p.BreakConfig != nil {
		config.BreakConfig = p.BreakConfig.toDomain()
	}
	return config
}

func (p persistedBreakConfig) toDomain() domain.BreakConfig {
	bc := domain.BreakConfig{
		Enabled:        p.Enabled,
		Duration:       p.Duration,
		SpecificLevels: append([]int{}, p.SpecificLevels...),
	}
	if p.EveryNLevels != nil && *p.EveryNLevels > 0 {
		bc.EveryNLevels = *p.EveryNLevels
	}
	return bc
}

func fromDomainPreset(p domain.Preset) persistedPreset {
	return persistedPreset{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Config:      fromDomainConfig(p.Config),
		CreatedAt:   p.CreatedAt,
		IsDefault:   p.IsDefault,
	}
}

func (p persistedPreset) toDomain() domain.Preset {
	return domain.Preset{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Config:      p.Config.toDomain(),
		CreatedAt:   p.CreatedAt,
		IsDefault:   p.IsDefault,
	}
}
