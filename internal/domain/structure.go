package domain

import "math"

const structureLevels = 12

// StandardStructure is the classic 12-level progression with 10-minute levels.
// Blinds double after every third level and grow by half otherwise; antes
// begin at level 6.
func StandardStructure() []BlindLevel {
	levels := make([]BlindLevel, 0, structureLevels)
	smallBlind, bigBlind, ante := 25, 50, 0

	for i := 1; i <= structureLevels; i++ {
		levelAnte := 0
		if i >= 6 {
			levelAnte = ante
		}
		levels = append(levels, BlindLevel{
			Level:      i,
			SmallBlind: smallBlind,
			BigBlind:   bigBlind,
			Ante:       levelAnte,
			Duration:   600,
		})

		if i%3 == 0 {
			smallBlind *= 2
			bigBlind *= 2
			ante *= 2
		} else {
			smallBlind = grow(smallBlind)
			bigBlind = grow(bigBlind)
			ante = grow(ante)
		}
		if i == 5 {
			ante = smallBlind
		}
	}
	return levels
}

// TurboStructure is the standard progression with 5-minute levels.
func TurboStructure() []BlindLevel {
	return withDuration(StandardStructure(), 300)
}

// DeepStackStructure is the standard progression with 20-minute levels.
func DeepStackStructure() []BlindLevel {
	return withDuration(StandardStructure(), 1200)
}

// DefaultPresets returns the built-in presets. They are never persisted.
func DefaultPresets() []Preset {
	base := DefaultTournamentConfig()
	return []Preset{
		{
			ID:          "preset_standard",
			Name:        "Standard Tournament",
			Description: "Classic tournament structure with 10-minute levels",
			IsDefault:   true,
			Config: base.WithName("Standard Tournament").
				WithBlindLevels(StandardStructure()).
				WithDefaultLevelDuration(600),
		},
		{
			ID:          "preset_turbo",
			Name:        "Turbo Tournament",
			Description: "Fast-paced tournament with 5-minute levels",
			IsDefault:   true,
			Config: base.WithName("Turbo Tournament").
				WithBlindLevels(TurboStructure()).
				WithDefaultLevelDuration(300),
		},
		{
			ID:          "preset_deepstack",
			Name:        "Deep Stack Tournament",
			Description: "Slow tournament with 20-minute levels",
			IsDefault:   true,
			Config: base.WithName("Deep Stack Tournament").
				WithBlindLevels(DeepStackStructure()).
				WithDefaultLevelDuration(1200),
		},
	}
}

// IsBuiltinPreset reports whether id belongs to a built-in preset.
func IsBuiltinPreset(id string) bool {
	for _, p := range DefaultPresets() {
		if p.ID == id {
			return true
		}
	}
	return false
}

func grow(v int) int {
	return int(math.Round(float64(v) * 1.5))
}

func withDuration(levels []BlindLevel, seconds int) []BlindLevel {
	for i := range levels {
		levels[i].Duration = seconds
	}
	return levels
}
