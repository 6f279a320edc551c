package core

import (
	"errors"
	"testing"

	"pokerclock/internal/domain"
)

func schedule(durations ...int) domain.TournamentConfig {
	levels := make([]domain.BlindLevel, 0, len(durations))
	for i, d := range durations {
		levels = append(levels, domain.BlindLevel{SmallBlind: 25 * (i + 1), BigBlind: 50 * (i + 1), Duration: d})
	}
	return domain.DefaultTournamentConfig().WithBlindLevels(levels)
}

func countEffects(effects []Effect, typ EffectType) int {
	n := 0
	for _, e := range effects {
		if e.Type == typ {
			n++
		}
	}
	return n
}

func sounds(effects []Effect) []domain.SoundKind {
	var out []domain.SoundKind
	for _, e := range effects {
		if e.Type == EffectPlaySound {
			out = append(out, e.Sound)
		}
	}
	return out
}

// TestNewMachineIsIdle verifies the initial state
func TestNewMachineIsIdle(t *testing.T) {
	m := NewMachine(schedule(600, 900).WithCurrentLevel(1))
	st := m.State()

	if st.Status() != domain.StatusIdle {
		t.Errorf("Expected idle, got %s", st.Status())
	}
	if st.CurrentLevel != 1 || st.TimeRemaining != 900 {
		t.Errorf("Expected level 1 with 900s, got level %d with %ds", st.CurrentLevel, st.TimeRemaining)
	}
}

// TestNewMachineUnknownLevelFallsBack verifies an out-of-range saved level restarts at the first level
func TestNewMachineUnknownLevelFallsBack(t *testing.T) {
	m := NewMachine(schedule(600, 900).WithCurrentLevel(7))
	if m.State().CurrentLevel != 0 || m.Config().CurrentLevel != 0 {
		t.Errorf("Expected level 0, got state %d config %d", m.State().CurrentLevel, m.Config().CurrentLevel)
	}
	if got := m.State().TimeRemaining; got != 600 {
		t.Errorf("Expected 600s for the first level, got %d", got)
	}
	effects := m.Drain()
	if len(effects) != 1 || effects[0].Type != EffectLevelChanged || effects[0].Level != 0 {
		t.Errorf("Expected the corrected level to be reported, got %+v", effects)
	}

	if effects := NewMachine(schedule(600, 900).WithCurrentLevel(1)).Drain(); len(effects) != 0 {
		t.Errorf("Expected no effects for a valid saved level, got %+v", effects)
	}
}

// TestStartIsIdempotent verifies a second start changes nothing
func TestStartIsIdempotent(t *testing.T) {
	m := NewMachine(schedule(600))
	m.Start()
	m.Tick()
	first := m.State()

	m.Start()
	if m.State() != first {
		t.Errorf("Expected unchanged state, got %+v vs %+v", m.State(), first)
	}
	if first.Status() != domain.StatusRunning || first.TimeRemaining != 599 {
		t.Errorf("Expected running with 599s, got %s with %d", first.Status(), first.TimeRemaining)
	}
}

// TestStartEmptyScheduleIsNoop verifies an unconfigured clock cannot run
func TestStartEmptyScheduleIsNoop(t *testing.T) {
	m := NewMachine(domain.DefaultTournamentConfig().WithBlindLevels(nil))
	m.Start()
	m.Tick()
	if m.State().IsRunning {
		t.Error("Expected clock not to run without levels")
	}
	if m.Configured() {
		t.Error("Expected Configured false")
	}
}

// TestPauseResume verifies pause freezes and resume continues
func TestPauseResume(t *testing.T) {
	m := NewMachine(schedule(600))
	m.Start()
	m.Tick()
	m.Tick()
	m.Pause()

	frozen := m.State()
	if frozen.Status() != domain.StatusPaused {
		t.Fatalf("Expected paused, got %s", frozen.Status())
	}
	m.Tick()
	if m.State() != frozen {
		t.Error("Expected tick to be ignored while paused")
	}

	m.Resume()
	m.Tick()
	st := m.State()
	if st.Status() != domain.StatusRunning || st.TimeRemaining != 597 || st.TotalElapsed != 3 {
		t.Errorf("Expected running 597/3, got %s %d/%d", st.Status(), st.TimeRemaining, st.TotalElapsed)
	}
}

// TestPauseWhenIdleIsNoop verifies pause only applies to a running clock
func TestPauseWhenIdleIsNoop(t *testing.T) {
	m := NewMachine(schedule(600))
	m.Pause()
	if m.State().Status() != domain.StatusIdle {
		t.Errorf("Expected idle, got %s", m.State().Status())
	}
	m.Resume()
	if m.State().Status() != domain.StatusIdle {
		t.Errorf("Expected resume from idle to be ignored, got %s", m.State().Status())
	}
}

// TestResetThenStart verifies reset refills the level and clears elapsed time
func TestResetThenStart(t *testing.T) {
	m := NewMachine(schedule(120, 300))
	m.Start()
	for i := 0; i < 50; i++ {
		m.Tick()
	}
	m.Reset()
	if m.State().Status() != domain.StatusIdle {
		t.Errorf("Expected idle after reset, got %s", m.State().Status())
	}
	m.Start()

	st := m.State()
	if st.TimeRemaining != 120 || st.TotalElapsed != 0 || st.CurrentLevel != 0 {
		t.Errorf("Expected 120s, 0 elapsed at level 0, got %+v", st)
	}
}

// TestAutoAdvance verifies reaching zero moves to the next level and keeps elapsed time
func TestAutoAdvance(t *testing.T) {
	m := NewMachine(schedule(1, 5))
	m.Start()
	m.Tick()

	st := m.State()
	if st.CurrentLevel != 1 || st.TimeRemaining != 5 {
		t.Errorf("Expected level 1 with 5s, got level %d with %ds", st.CurrentLevel, st.TimeRemaining)
	}
	if !st.IsRunning || st.IsPaused {
		t.Errorf("Expected still running, got %s", st.Status())
	}
	if st.TotalElapsed != 1 {
		t.Errorf("Expected elapsed to carry over, got %d", st.TotalElapsed)
	}
	if m.Config().CurrentLevel != 1 {
		t.Errorf("Expected config level 1, got %d", m.Config().CurrentLevel)
	}

	effects := m.Drain()
	if countEffects(effects, EffectLevelChanged) != 1 {
		t.Errorf("Expected one level change, got %+v", effects)
	}
	if got := sounds(effects); len(got) != 1 || got[0] != domain.SoundLevelChange {
		t.Errorf("Expected levelChange sound, got %v", got)
	}
}

// TestAutoAdvanceIntoBreakLevelPauses verifies a break level pauses the clock
func TestAutoAdvanceIntoBreakLevelPauses(t *testing.T) {
	cfg := schedule(1, 5).WithBreakConfig(domain.BreakConfig{Enabled: true, Duration: 300, EveryNLevels: 2})
	m := NewMachine(cfg)
	m.Start()
	m.Tick()

	st := m.State()
	if st.CurrentLevel != 1 || st.Status() != domain.StatusPaused {
		t.Errorf("Expected paused at level 1, got %s at %d", st.Status(), st.CurrentLevel)
	}
	if st.IsBreakActive {
		t.Error("Expected break offered, not started")
	}
}

// TestTournamentEnd verifies the final level pauses and signals the end once
func TestTournamentEnd(t *testing.T) {
	m := NewMachine(schedule(2))
	m.Start()
	m.Tick()
	m.Tick()

	st := m.State()
	if st.Status() != domain.StatusPaused || st.TimeRemaining != 0 {
		t.Errorf("Expected paused at 0, got %s at %d", st.Status(), st.TimeRemaining)
	}
	if !m.Ended() {
		t.Error("Expected ended")
	}

	m.Tick()
	m.Advance()
	m.Resume()
	m.Advance()
	m.Tick()

	if n := countEffects(m.Drain(), EffectTimerEnded); n != 1 {
		t.Errorf("Expected timer ended exactly once, got %d", n)
	}
}

// TestResumeAfterEndStaysPaused verifies an ended clock cannot be resumed at zero
func TestResumeAfterEndStaysPaused(t *testing.T) {
	m := NewMachine(schedule(1))
	m.Start()
	m.Tick()
	if !m.Ended() {
		t.Fatal("Expected ended")
	}

	m.Resume()
	m.Tick()
	st := m.State()
	if st.Status() != domain.StatusPaused || st.TimeRemaining != 0 {
		t.Errorf("Expected paused at 0, got %s at %d", st.Status(), st.TimeRemaining)
	}

	m.Reset()
	m.Start()
	if st := m.State(); st.Status() != domain.StatusRunning || st.TimeRemaining != 1 || m.Ended() {
		t.Errorf("Expected a fresh run after reset, got %s at %d", st.Status(), st.TimeRemaining)
	}
}

// TestTickNeverGoesNegative verifies a zero countdown is not ticked
func TestTickNeverGoesNegative(t *testing.T) {
	m := NewMachine(schedule(1))
	m.Start()
	m.Tick()
	m.Resume()
	m.Tick()
	if st := m.State(); st.TimeRemaining != 0 || st.TotalElapsed != 1 {
		t.Errorf("Expected 0 remaining and 1 elapsed, got %d and %d", st.TimeRemaining, st.TotalElapsed)
	}
}

// TestThresholdSounds verifies warning and critical fire exactly once
func TestThresholdSounds(t *testing.T) {
	m := NewMachine(schedule(35, 600))
	m.Start()
	for i := 0; i < 34; i++ {
		m.Tick()
	}

	got := sounds(m.Drain())
	want := []domain.SoundKind{domain.SoundWarning, domain.SoundCritical}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

// TestStartBelowThresholdIsSilent verifies no alert when starting inside the warning window
func TestStartBelowThresholdIsSilent(t *testing.T) {
	m := NewMachine(schedule(20))
	m.Start()
	m.Tick()
	if got := sounds(m.Drain()); len(got) != 0 {
		t.Errorf("Expected no sounds, got %v", got)
	}
}

// TestManualNavigation verifies next resets elapsed while previous keeps it
func TestManualNavigation(t *testing.T) {
	m := NewMachine(schedule(100, 200, 300))
	m.Start()
	m.Tick()
	m.Tick()

	m.NextLevel()
	st := m.State()
	if st.CurrentLevel != 1 || st.TimeRemaining != 200 || st.TotalElapsed != 0 {
		t.Errorf("After next: expected level 1, 200s, 0 elapsed, got %+v", st)
	}
	if !st.IsRunning {
		t.Error("Expected next to keep the clock running")
	}

	m.Tick()
	m.PreviousLevel()
	st = m.State()
	if st.CurrentLevel != 0 || st.TimeRemaining != 100 || st.TotalElapsed != 1 {
		t.Errorf("After previous: expected level 0, 100s, 1 elapsed, got %+v", st)
	}

	m.PreviousLevel()
	if m.State().CurrentLevel != 0 {
		t.Error("Expected previous at level 0 to stay")
	}
	m.SetLevel(2)
	m.NextLevel()
	if m.State().CurrentLevel != 2 {
		t.Error("Expected next at last level to stay")
	}
}

// TestLevelChangeSoundDirection verifies only forward moves play the level sound
func TestLevelChangeSoundDirection(t *testing.T) {
	m := NewMachine(schedule(100, 200, 300))

	m.NextLevel()
	if got := sounds(m.Drain()); len(got) != 1 || got[0] != domain.SoundLevelChange {
		t.Errorf("Expected levelChange after next, got %v", got)
	}
	m.PreviousLevel()
	effects := m.Drain()
	if got := sounds(effects); len(got) != 0 {
		t.Errorf("Expected no sound after previous, got %v", got)
	}
	if countEffects(effects, EffectLevelChanged) != 1 {
		t.Error("Expected previous to report a level change")
	}
}

// TestSetLevel verifies jump semantics
func TestSetLevel(t *testing.T) {
	m := NewMachine(schedule(100, 200, 300))
	m.Start()
	m.Tick()

	before := m.State()
	if err := m.SetLevel(0); err != nil {
		t.Fatalf("SetLevel same level: %v", err)
	}
	if m.State() != before {
		t.Error("Expected same-level jump to be a no-op")
	}
	if len(m.Drain()) != 0 {
		t.Error("Expected no effects from a no-op jump")
	}

	if err := m.SetLevel(2); err != nil {
		t.Fatalf("SetLevel: %v", err)
	}
	st := m.State()
	if st.CurrentLevel != 2 || st.TimeRemaining != 300 || st.TotalElapsed != 0 || st.Status() != domain.StatusPaused {
		t.Errorf("Expected paused at level 2 with 300s, got %+v", st)
	}

	if err := m.SetLevel(3); !errors.Is(err, domain.ErrLevelOutOfRange) {
		t.Errorf("Expected ErrLevelOutOfRange, got %v", err)
	}
	if m.State() != st {
		t.Error("Expected out-of-range jump to leave state unchanged")
	}
}

// TestSetLevelWhileIdleStaysIdle verifies jumping does not start a stopped clock
func TestSetLevelWhileIdleStaysIdle(t *testing.T) {
	m := NewMachine(schedule(100, 200))
	_ = m.SetLevel(1)
	if m.State().Status() != domain.StatusIdle {
		t.Errorf("Expected idle, got %s", m.State().Status())
	}
}

// TestBreakCycle verifies a break counts down and ends by itself
func TestBreakCycle(t *testing.T) {
	cfg := schedule(600).WithBreakConfig(domain.BreakConfig{Enabled: true, Duration: 10})
	m := NewMachine(cfg)
	m.Start()
	m.Tick()

	if err := m.StartBreak(); err != nil {
		t.Fatalf("StartBreak: %v", err)
	}
	st := m.State()
	if st.Status() != domain.StatusBreak || st.BreakTimeRemaining != 10 {
		t.Fatalf("Expected break with 10s, got %s %d", st.Status(), st.BreakTimeRemaining)
	}

	m.Tick()
	if m.State().TimeRemaining != 599 {
		t.Error("Expected level countdown frozen during break")
	}
	if err := m.StartBreak(); !errors.Is(err, domain.ErrBreakActive) {
		t.Errorf("Expected ErrBreakActive, got %v", err)
	}

	for i := 0; i < 10; i++ {
		m.BreakTick()
	}
	st = m.State()
	if st.IsBreakActive || st.BreakTimeRemaining != 0 {
		t.Errorf("Expected break ended, got %+v", st)
	}
	if st.Status() != domain.StatusRunning {
		t.Errorf("Expected running after break, got %s", st.Status())
	}

	got := sounds(m.Drain())
	if len(got) != 2 || got[0] != domain.SoundBreakStart || got[1] != domain.SoundBreakEnd {
		t.Errorf("Expected breakStart then breakEnd, got %v", got)
	}
}

// TestStartBreakDisabled verifies breaks need an enabled policy
func TestStartBreakDisabled(t *testing.T) {
	m := NewMachine(schedule(600))
	if err := m.StartBreak(); !errors.Is(err, domain.ErrBreaksDisabled) {
		t.Errorf("Expected ErrBreaksDisabled, got %v", err)
	}
	if m.State().IsBreakActive {
		t.Error("Expected no break")
	}
}

// TestEndBreakEarly verifies a manual end ignores the remaining time
func TestEndBreakEarly(t *testing.T) {
	cfg := schedule(600).WithBreakConfig(domain.BreakConfig{Enabled: true, Duration: 300})
	m := NewMachine(cfg)
	_ = m.StartBreak()
	m.BreakTick()
	m.EndBreak()
	if st := m.State(); st.IsBreakActive || st.BreakTimeRemaining != 0 {
		t.Errorf("Expected break ended, got %+v", st)
	}
	m.EndBreak()
	if got := sounds(m.Drain()); len(got) != 2 {
		t.Errorf("Expected a single breakEnd, got %v", got)
	}
}

// TestUpdateConfigIdleRefills verifies an idle clock picks up a new duration
func TestUpdateConfigIdleRefills(t *testing.T) {
	m := NewMachine(schedule(600))
	cfg := m.Config()
	cfg.BlindLevels[0].Duration = 120
	m.UpdateConfig(cfg)

	if m.State().TimeRemaining != 120 {
		t.Errorf("Expected 120s, got %d", m.State().TimeRemaining)
	}
}

// TestUpdateConfigRunningKeepsCountdown verifies a running clock is not disturbed
func TestUpdateConfigRunningKeepsCountdown(t *testing.T) {
	m := NewMachine(schedule(600))
	m.Start()
	m.Tick()
	cfg := m.Config().WithName("Renamed")
	m.UpdateConfig(cfg)

	if m.State().TimeRemaining != 599 || !m.State().IsRunning {
		t.Errorf("Expected running with 599s, got %+v", m.State())
	}
	if m.Config().Name != "Renamed" {
		t.Errorf("Expected new name, got %q", m.Config().Name)
	}
}

// TestUpdateConfigShrinksSchedule verifies the level is clamped and reported
func TestUpdateConfigShrinksSchedule(t *testing.T) {
	m := NewMachine(schedule(100, 200, 300).WithCurrentLevel(2))
	m.UpdateConfig(schedule(100, 200).WithCurrentLevel(2))

	if m.State().CurrentLevel != 1 || m.State().TimeRemaining != 200 {
		t.Errorf("Expected level 1 with 200s, got %+v", m.State())
	}
	if countEffects(m.Drain(), EffectLevelChanged) != 1 {
		t.Error("Expected the clamped level to be reported")
	}
}

// TestUpdateConfigDisablesBreaks verifies an active break ends when breaks are turned off
func TestUpdateConfigDisablesBreaks(t *testing.T) {
	cfg := schedule(600).WithBreakConfig(domain.BreakConfig{Enabled: true, Duration: 300})
	m := NewMachine(cfg)
	_ = m.StartBreak()

	m.UpdateConfig(cfg.WithBreakConfig(domain.BreakConfig{Enabled: false, Duration: 300}))
	if m.State().IsBreakActive {
		t.Error("Expected break to end")
	}
}

// TestUpdateConfigEmptySchedule verifies clearing the schedule stops the clock
func TestUpdateConfigEmptySchedule(t *testing.T) {
	m := NewMachine(schedule(600))
	m.Start()
	m.UpdateConfig(domain.DefaultTournamentConfig().WithBlindLevels(nil))

	if st := m.State(); st.IsRunning || st.IsPaused {
		t.Errorf("Expected stopped clock, got %s", st.Status())
	}
}

// TestConfigIsolated verifies callers cannot mutate the machine through Config
func TestConfigIsolated(t *testing.T) {
	m := NewMachine(schedule(600))
	cfg := m.Config()
	cfg.BlindLevels[0].Duration = 1
	if m.Config().BlindLevels[0].Duration != 600 {
		t.Error("Expected machine config to be isolated")
	}
}
