package core

import "pokerclock/internal/domain"

// Machine is the tournament clock state machine. It is not safe for concurrent
// use; the owner must serialize every call (see usecase.Session).
type Machine struct {
	config  domain.TournamentConfig
	state   domain.TimerState
	ended   bool
	effects []Effect
}

// NewMachine builds an idle machine positioned at config.CurrentLevel. A saved
// level the schedule does not have falls back to the first level, and the
// correction is recorded so the host can persist it.
func NewMachine(config domain.TournamentConfig) *Machine {
	m := &Machine{config: config.Clone()}
	level := m.config.CurrentLevel
	if !domain.HasLevel(m.config, level) {
		level = 0
	}
	if level != m.config.CurrentLevel {
		m.config.CurrentLevel = level
		if m.Configured() {
			m.record(levelChanged(level))
		}
	}
	m.state = domain.TimerState{
		CurrentLevel:  level,
		TimeRemaining: domain.LevelDuration(m.config, level),
	}
	return m
}

// State returns a copy of the current timer state.
func (m *Machine) State() domain.TimerState {
	return m.state
}

// Config returns a copy of the config the machine is running against.
func (m *Machine) Config() domain.TournamentConfig {
	return m.config.Clone()
}

// Configured reports whether there is at least one blind level to run.
func (m *Machine) Configured() bool {
	return len(m.config.BlindLevels) > 0
}

// Ended reports whether the final level has run out.
func (m *Machine) Ended() bool {
	return m.ended
}

// Drain returns and clears the effects recorded since the last call.
func (m *Machine) Drain() []Effect {
	effects := m.effects
	m.effects = nil
	return effects
}

// Start runs the level countdown, refilling it first if it is empty.
// Starting an already running clock only re-asserts Running.
func (m *Machine) Start() {
	if !m.Configured() {
		return
	}
	if m.state.IsRunning && !m.state.IsPaused {
		return
	}
	if m.state.TimeRemaining == 0 {
		m.state.TimeRemaining = domain.LevelDuration(m.config, m.state.CurrentLevel)
	}
	m.state.IsRunning = true
	m.state.IsPaused = false
	m.ended = false
}

// Pause freezes a running countdown.
func (m *Machine) Pause() {
	if !m.state.IsRunning || m.state.IsPaused {
		return
	}
	m.pause()
}

// Resume continues a paused countdown from where it stopped. An ended
// clock stays paused until it is reset or moved to another level.
func (m *Machine) Resume() {
	if !m.state.IsPaused {
		return
	}
	if m.ended && m.state.TimeRemaining == 0 {
		return
	}
	m.state.IsRunning = true
	m.state.IsPaused = false
}

// Reset stops the clock and refills the current level. The level is kept.
func (m *Machine) Reset() {
	m.state.IsRunning = false
	m.state.IsPaused = false
	m.state.TotalElapsed = 0
	m.state.TimeRemaining = domain.LevelDuration(m.config, m.state.CurrentLevel)
	m.ended = false
}

// Tick advances the level countdown by one second. Reaching zero advances the
// level, or ends the tournament on the final level.
func (m *Machine) Tick() {
	if !m.state.Ticking() || m.state.TimeRemaining <= 0 {
		return
	}
	prev := m.state.TimeRemaining
	m.state.TimeRemaining--
	m.state.TotalElapsed++

	if kind, ok := domain.CrossedThreshold(prev, m.state.TimeRemaining); ok {
		m.record(playSound(kind))
	}
	if m.state.TimeRemaining == 0 {
		m.Advance()
	}
}

// Advance applies the end-of-level transition. It only acts on a running
// countdown that has reached zero.
func (m *Machine) Advance() {
	if !m.state.Ticking() || m.state.TimeRemaining != 0 {
		return
	}
	next := m.state.CurrentLevel + 1
	if domain.HasLevel(m.config, next) {
		m.moveTo(next)
		if domain.ShouldBreakAtLevel(m.config, next) {
			m.pause()
		}
		return
	}

	m.pause()
	if !m.ended {
		m.ended = true
		m.record(Effect{Type: EffectTimerEnded, Level: m.state.CurrentLevel})
	}
}

// NextLevel moves forward one level. Elapsed time restarts from zero.
func (m *Machine) NextLevel() {
	next := m.state.CurrentLevel + 1
	if !domain.HasLevel(m.config, next) {
		return
	}
	m.state.TotalElapsed = 0
	m.moveTo(next)
}

// PreviousLevel moves back one level. Elapsed time is kept.
func (m *Machine) PreviousLevel() {
	prev := m.state.CurrentLevel - 1
	if !domain.HasLevel(m.config, prev) {
		return
	}
	m.moveTo(prev)
}

// SetLevel jumps to target. A running clock is paused and elapsed time restarts.
// Jumping to the current level is a no-op.
func (m *Machine) SetLevel(target int) error {
	if !domain.HasLevel(m.config, target) {
		return domain.ErrLevelOutOfRange
	}
	if target == m.state.CurrentLevel {
		return nil
	}
	if m.state.IsRunning && !m.state.IsPaused {
		m.pause()
	}
	m.state.TotalElapsed = 0
	m.moveTo(target)
	return nil
}

// StartBreak begins a scheduled break. The level countdown is frozen until it ends.
func (m *Machine) StartBreak() error {
	bc := m.config.BreakConfig
	if !bc.Enabled || bc.Duration <= 0 {
		return domain.ErrBreaksDisabled
	}
	if m.state.IsBreakActive {
		return domain.ErrBreakActive
	}
	m.state.IsBreakActive = true
	m.state.BreakTimeRemaining = bc.Duration
	m.record(playSound(domain.SoundBreakStart))
	return nil
}

// BreakTick advances the break countdown by one second and ends the break at zero.
func (m *Machine) BreakTick() {
	if !m.state.BreakTicking() {
		return
	}
	m.state.BreakTimeRemaining--
	if m.state.BreakTimeRemaining == 0 {
		m.EndBreak()
	}
}

// EndBreak finishes the break regardless of time left.
func (m *Machine) EndBreak() {
	if !m.state.IsBreakActive {
		return
	}
	m.state.IsBreakActive = false
	m.state.BreakTimeRemaining = 0
	m.record(playSound(domain.SoundBreakEnd))
}

// UpdateConfig swaps in a new config from the host. The clock follows the
// config's level when it differs, and an idle clock picks up new durations.
func (m *Machine) UpdateConfig(config domain.TournamentConfig) {
	m.config = config.Clone()
	target := clampLevel(m.config, m.config.CurrentLevel)
	clamped := target != m.config.CurrentLevel
	m.config.CurrentLevel = target

	if target != m.state.CurrentLevel {
		m.state.CurrentLevel = target
		m.state.TimeRemaining = domain.LevelDuration(m.config, target)
		m.ended = false
	} else if !m.state.IsRunning && !m.state.IsPaused {
		m.state.TimeRemaining = domain.LevelDuration(m.config, target)
	}
	if clamped {
		m.record(levelChanged(target))
	}

	if !m.Configured() {
		m.state.IsRunning = false
		m.state.IsPaused = false
	}
	if m.state.IsBreakActive && !m.config.BreakConfig.Enabled {
		m.EndBreak()
	}
}

func (m *Machine) pause() {
	m.state.IsRunning = false
	m.state.IsPaused = true
}

func (m *Machine) moveTo(level int) {
	from := m.state.CurrentLevel
	m.state.CurrentLevel = level
	m.config.CurrentLevel = level
	m.state.TimeRemaining = domain.LevelDuration(m.config, level)
	m.ended = false
	m.record(levelChanged(level))
	if level > from {
		m.record(playSound(domain.SoundLevelChange))
	}
}

func (m *Machine) record(effect Effect) {
	m.effects = append(m.effects, effect)
}

func clampLevel(config domain.TournamentConfig, level int) int {
	if level < 0 || len(config.BlindLevels) == 0 {
		return 0
	}
	if level >= len(config.BlindLevels) {
		return len(config.BlindLevels) - 1
	}
	return level
}
