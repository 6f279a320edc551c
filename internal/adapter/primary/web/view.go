package web

import (
	"pokerclock/internal/domain"
	"pokerclock/internal/usecase"
)

type levelView struct {
	Level      int `json:"level"`
	SmallBlind int `json:"smallBlind"`
	BigBlind   int `json:"bigBlind"`
	Ante       int `json:"ante"`
	Duration   int `json:"duration"`
}

type breakView struct {
	Enabled        bool  `json:"enabled"`
	Duration       int   `json:"duration"`
	EveryNLevels   int   `json:"everyNLevels"`
	SpecificLevels []int `json:"specificLevels"`
}

type configView struct {
	Name                 string      `json:"name"`
	Description          string      `json:"description,omitempty"`
	StartingChips        int         `json:"startingChips"`
	BlindLevels          []levelView `json:"blindLevels"`
	DefaultLevelDuration int         `json:"defaultLevelDuration"`
	SoundAlertsEnabled   bool        `json:"soundAlertsEnabled"`
	CurrentLevel         int         `json:"currentLevel"`
	BreakConfig          *breakView  `json:"breakConfig,omitempty"`
}

type timerView struct {
	IsRunning          bool `json:"isRunning"`
	IsPaused           bool `json:"isPaused"`
	CurrentLevel       int  `json:"currentLevel"`
	TimeRemaining      int  `json:"timeRemaining"`
	TotalElapsed       int  `json:"totalElapsed"`
	IsBreakActive      bool `json:"isBreakActive"`
	BreakTimeRemaining int  `json:"breakTimeRemaining"`
}

type stateView struct {
	Timer          timerView  `json:"timer"`
	Status         string     `json:"status"`
	Name           string     `json:"name"`
	LevelCount     int        `json:"levelCount"`
	Current        *levelView `json:"current"`
	Next           *levelView `json:"next"`
	Clock          string     `json:"clock"`
	Elapsed        string     `json:"elapsed"`
	Warning        string     `json:"warning"`
	BreakAvailable bool       `json:"breakAvailable"`
	Ended          bool       `json:"ended"`
	Muted          bool       `json:"muted"`
}

type presetView struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	CreatedAt   int64      `json:"createdAt"`
	IsDefault   bool       `json:"isDefault"`
	Config      configView `json:"config"`
}

type controlPayload struct {
	Action string `json:"action"`
	Level  *int   `json:"level"`
}

func toLevelView(l domain.BlindLevel) levelView {
	return levelView(l)
}

func toConfigView(c domain.TournamentConfig) configView {
	levels := make([]levelView, 0, len(c.BlindLevels))
	for _, l := range c.BlindLevels {
		levels = append(levels, toLevelView(l))
	}
	bc := c.BreakConfig
	specific := append([]int{}, bc.SpecificLevels...)
	return configView{
		Name:                 c.Name,
		Description:          c.Description,
		StartingChips:        c.StartingChips,
		BlindLevels:          levels,
		DefaultLevelDuration: c.DefaultLevelDuration,
		SoundAlertsEnabled:   c.SoundAlertsEnabled,
		CurrentLevel:         c.CurrentLevel,
		BreakConfig: &breakView{
			Enabled:        bc.Enabled,
			Duration:       bc.Duration,
			EveryNLevels:   bc.EveryNLevels,
			SpecificLevels: specific,
		},
	}
}

func (v configView) toDomain() domain.TournamentConfig {
	levels := make([]domain.BlindLevel, 0, len(v.BlindLevels))
	for _, l := range v.BlindLevels {
		levels = append(levels, domain.BlindLevel(l))
	}
	bc := domain.DefaultBreakConfig()
	if v.BreakConfig != nil {
		bc = domain.BreakConfig{
			Enabled:        v.BreakConfig.Enabled,
			Duration:       v.BreakConfig.Duration,
			EveryNLevels:   v.BreakConfig.EveryNLevels,
			SpecificLevels: append([]int{}, v.BreakConfig.SpecificLevels...),
		}
	}
	// Level numbers come from position, never from the client.
	return domain.TournamentConfig{
		Name:                 v.Name,
		Description:          v.Description,
		StartingChips:        v.StartingChips,
		DefaultLevelDuration: v.DefaultLevelDuration,
		SoundAlertsEnabled:   v.SoundAlertsEnabled,
		CurrentLevel:         v.CurrentLevel,
		BreakConfig:          bc,
	}.WithBlindLevels(levels)
}

func toStateView(snap usecase.Snapshot) stateView {
	st := snap.State
	view := stateView{
		Timer:          timerView(st),
		Status:         snap.Status.String(),
		Name:           snap.Config.Name,
		LevelCount:     len(snap.Config.BlindLevels),
		Clock:          domain.FormatTime(st.TimeRemaining),
		Elapsed:        domain.FormatTime(st.TotalElapsed),
		Warning:        snap.Warning.String(),
		BreakAvailable: snap.BreakAvailable,
		Ended:          snap.Ended,
		Muted:          snap.Muted,
	}
	if st.IsBreakActive {
		view.Clock = domain.FormatTime(st.BreakTimeRemaining)
	}
	if snap.Current != nil {
		cur := toLevelView(*snap.Current)
		view.Current = &cur
	}
	if snap.Next != nil {
		next := toLevelView(*snap.Next)
		view.Next = &next
	}
	return view
}

func toPresetView(p domain.Preset) presetView {
	return presetView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		IsDefault:   p.IsDefault,
		Config:      toConfigView(p.Config),
	}
}
