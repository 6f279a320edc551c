package domain

// TournamentRepository is a secondary port for the active tournament.
// LoadCurrent returns found=false when nothing has been saved yet.
type TournamentRepository interface {
	LoadCurrent() (config TournamentConfig, found bool, err error)
	SaveCurrent(config TournamentConfig) error
	ResetCurrent() error
}

// PresetRepository is a secondary port for user-saved presets.
// Built-in presets are not stored; see DefaultPresets.
type PresetRepository interface {
	ListPresets() ([]Preset, error)
	SavePreset(preset Preset) error
	DeletePreset(id string) error
}

// SoundKind names the alert sounds the clock can request.
type SoundKind string

const (
	SoundWarning     SoundKind = "warning"
	SoundCritical    SoundKind = "critical"
	SoundLevelChange SoundKind = "levelChange"
	SoundBreakStart  SoundKind = "breakStart"
	SoundBreakEnd    SoundKind = "breakEnd"
)

// SoundPlayer is a secondary port for audio alerts.
// Play must not block the caller; failures are the player's problem.
type SoundPlayer interface {
	Play(kind SoundKind)
}
