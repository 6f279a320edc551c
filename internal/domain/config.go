package domain

// Clone returns a deep copy so callers can never alias another config's slices.
func (c TournamentConfig) Clone() TournamentConfig {
	out := c
	out.BlindLevels = append([]BlindLevel(nil), c.BlindLevels...)
	out.BreakConfig.SpecificLevels = append([]int(nil), c.BreakConfig.SpecificLevels...)
	return out
}

func (c TournamentConfig) WithName(name string) TournamentConfig {
	out := c.Clone()
	out.Name = name
	return out
}

func (c TournamentConfig) WithDescription(description string) TournamentConfig {
	out := c.Clone()
	out.Description = description
	return out
}

func (c TournamentConfig) WithStartingChips(chips int) TournamentConfig {
	out := c.Clone()
	out.StartingChips = chips
	return out
}

// WithBlindLevels replaces the schedule and renumbers it 1..n.
func (c TournamentConfig) WithBlindLevels(levels []BlindLevel) TournamentConfig {
	out := c.Clone()
	out.BlindLevels = renumber(append([]BlindLevel(nil), levels...))
	return out
}

func (c TournamentConfig) WithDefaultLevelDuration(seconds int) TournamentConfig {
	out := c.Clone()
	out.DefaultLevelDuration = seconds
	return out
}

func (c TournamentConfig) WithSoundAlerts(enabled bool) TournamentConfig {
	out := c.Clone()
	out.SoundAlertsEnabled = enabled
	return out
}

func (c TournamentConfig) WithCurrentLevel(index int) TournamentConfig {
	out := c.Clone()
	out.CurrentLevel = index
	return out
}

func (c TournamentConfig) WithBreakConfig(bc BreakConfig) TournamentConfig {
	out := c.Clone()
	out.BreakConfig = bc
	out.BreakConfig.SpecificLevels = append([]int(nil), bc.SpecificLevels...)
	return out
}

// AppendLevel adds a level templated on the last one: blinds and a non-zero
// ante grow by half, duration comes from DefaultLevelDuration.
func (c TournamentConfig) AppendLevel() TournamentConfig {
	next := BlindLevel{SmallBlind: 25, BigBlind: 50, Duration: c.DefaultLevelDuration}
	if n := len(c.BlindLevels); n > 0 {
		last := c.BlindLevels[n-1]
		next.SmallBlind = grow(last.SmallBlind)
		next.BigBlind = grow(last.BigBlind)
		if last.Ante > 0 {
			next.Ante = grow(last.Ante)
		}
	}
	return c.WithBlindLevels(append(c.Clone().BlindLevels, next))
}

// RemoveLevel drops the level at index. The last remaining level cannot be removed.
func (c TournamentConfig) RemoveLevel(index int) (TournamentConfig, error) {
	if !HasLevel(c, index) {
		return c, ErrLevelOutOfRange
	}
	if len(c.BlindLevels) <= 1 {
		return c, ErrLastLevel
	}
	levels := make([]BlindLevel, 0, len(c.BlindLevels)-1)
	levels = append(levels, c.BlindLevels[:index]...)
	levels = append(levels, c.BlindLevels[index+1:]...)
	out := c.WithBlindLevels(levels)
	if out.CurrentLevel >= len(out.BlindLevels) {
		out.CurrentLevel = len(out.BlindLevels) - 1
	}
	return out, nil
}

// ReplaceLevel swaps the level at index; the level number is reassigned.
func (c TournamentConfig) ReplaceLevel(index int, level BlindLevel) (TournamentConfig, error) {
	if !HasLevel(c, index) {
		return c, ErrLevelOutOfRange
	}
	levels := c.Clone().BlindLevels
	levels[index] = level
	return c.WithBlindLevels(levels), nil
}

func renumber(levels []BlindLevel) []BlindLevel {
	for i := range levels {
		levels[i].Level = i + 1
	}
	return levels
}
