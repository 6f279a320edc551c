package domain

// CurrentLevel returns the blind level at index, falling back to the first
// level when index is out of range. ok is false only for an empty schedule.
func CurrentLevel(config TournamentConfig, index int) (BlindLevel, bool) {
	if len(config.BlindLevels) == 0 {
		return BlindLevel{}, false
	}
	if index < 0 || index >= len(config.BlindLevels) {
		return config.BlindLevels[0], true
	}
	return config.BlindLevels[index], true
}

// NextLevel returns the level after index. ok is false at the end of the schedule.
func NextLevel(config TournamentConfig, index int) (BlindLevel, bool) {
	next := index + 1
	if next < 0 || next >= len(config.BlindLevels) {
		return BlindLevel{}, false
	}
	return config.BlindLevels[next], true
}

// HasLevel reports whether index addresses a level in the schedule.
func HasLevel(config TournamentConfig, index int) bool {
	return index >= 0 && index < len(config.BlindLevels)
}

// ShouldBreakAtLevel reports whether the level at the 0-based index is a break level.
func ShouldBreakAtLevel(config TournamentConfig, index int) bool {
	bc := config.BreakConfig
	if !bc.Enabled {
		return false
	}
	levelNumber := index + 1
	for _, specific := range bc.SpecificLevels {
		if specific == levelNumber {
			return true
		}
	}
	if bc.EveryNLevels > 0 && levelNumber > 0 && levelNumber%bc.EveryNLevels == 0 {
		return true
	}
	return false
}

// BreakLevels lists the 1-based level numbers in the schedule that trigger a break.
func BreakLevels(config TournamentConfig) []int {
	var levels []int
	for i := range config.BlindLevels {
		if ShouldBreakAtLevel(config, i) {
			levels = append(levels, i+1)
		}
	}
	return levels
}

// LevelDuration returns the countdown length for the level at index, in seconds.
// It falls back to DefaultLevelDuration when the schedule has nothing usable.
func LevelDuration(config TournamentConfig, index int) int {
	if lvl, ok := CurrentLevel(config, index); ok && lvl.Duration > 0 {
		return lvl.Duration
	}
	if config.DefaultLevelDuration > 0 {
		return config.DefaultLevelDuration
	}
	return 0
}
