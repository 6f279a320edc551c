package domain

// BlindLevel is one stage of the forced-bet schedule.
// Durations are whole seconds because the clock ticks once per second.
type BlindLevel struct {
	Level      int
	SmallBlind int
	BigBlind   int
	Ante       int
	Duration   int
}

// BreakConfig decides where scheduled breaks fall.
// EveryNLevels of 0 means the recurring rule is inactive.
type BreakConfig struct {
	Enabled        bool
	Duration       int
	EveryNLevels   int
	SpecificLevels []int
}

// TournamentConfig is the aggregate root owned by the host.
// CurrentLevel is a 0-based index into BlindLevels.
type TournamentConfig struct {
	Name                 string
	Description          string
	StartingChips        int
	BlindLevels          []BlindLevel
	DefaultLevelDuration int
	SoundAlertsEnabled   bool
	CurrentLevel         int
	BreakConfig          BreakConfig
}

// Preset is a named, reusable tournament template.
type Preset struct {
	ID          string
	Name        string
	Description string
	Config      TournamentConfig
	CreatedAt   int64 // unix millis
	IsDefault   bool
}

// TimerState is the mutable runtime state of the clock.
type TimerState struct {
	IsRunning          bool
	IsPaused           bool
	CurrentLevel       int
	TimeRemaining      int
	TotalElapsed       int
	IsBreakActive      bool
	BreakTimeRemaining int
}

// Status is the coarse state the clock is in.
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusPaused
	StatusBreak
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusBreak:
		return "break"
	default:
		return "unknown"
	}
}

// Status derives the coarse state from the flags. A break wins over everything.
func (s TimerState) Status() Status {
	switch {
	case s.IsBreakActive:
		return StatusBreak
	case s.IsRunning && !s.IsPaused:
		return StatusRunning
	case s.IsPaused:
		return StatusPaused
	default:
		return StatusIdle
	}
}

// Ticking reports whether the level countdown should advance on the next tick.
func (s TimerState) Ticking() bool {
	return s.IsRunning && !s.IsPaused && !s.IsBreakActive
}

// BreakTicking reports whether the break countdown should advance on the next tick.
func (s TimerState) BreakTicking() bool {
	return s.IsBreakActive && s.BreakTimeRemaining > 0
}

// DefaultBreakConfig is used when a stored config predates break support.
func DefaultBreakConfig() BreakConfig {
	return BreakConfig{
		Enabled:        false,
		Duration:       300,
		EveryNLevels:   3,
		SpecificLevels: []int{},
	}
}

// DefaultTournamentConfig returns the configuration a fresh install starts with.
func DefaultTournamentConfig() TournamentConfig {
	return TournamentConfig{
		Name:                 "New Tournament",
		StartingChips:        10000,
		BlindLevels:          StandardStructure(),
		DefaultLevelDuration: 600,
		SoundAlertsEnabled:   true,
		CurrentLevel:         0,
		BreakConfig:          DefaultBreakConfig(),
	}
}
