package domain

import (
	"errors"
	"testing"
)

// TestWithMethodsDoNotAlias verifies updates return independent values
func TestWithMethodsDoNotAlias(t *testing.T) {
	base := threeLevels()
	bc := BreakConfig{Enabled: true, Duration: 300, SpecificLevels: []int{2}}
	updated := base.WithName("Friday").WithBreakConfig(bc)

	bc.SpecificLevels[0] = 9
	updated.BlindLevels[0].SmallBlind = 1

	if base.Name == "Friday" {
		t.Error("Expected base name to be unchanged")
	}
	if base.BlindLevels[0].SmallBlind != 25 {
		t.Errorf("Expected base levels untouched, got %d", base.BlindLevels[0].SmallBlind)
	}
	if updated.BreakConfig.SpecificLevels[0] != 2 {
		t.Errorf("Expected break levels copied, got %v", updated.BreakConfig.SpecificLevels)
	}
}

// TestWithBlindLevelsRenumbers verifies level numbers follow position
func TestWithBlindLevelsRenumbers(t *testing.T) {
	cfg := DefaultTournamentConfig().WithBlindLevels([]BlindLevel{
		{Level: 7, SmallBlind: 10, BigBlind: 20, Duration: 60},
		{Level: 3, SmallBlind: 20, BigBlind: 40, Duration: 60},
	})
	for i, l := range cfg.BlindLevels {
		if l.Level != i+1 {
			t.Errorf("Expected level %d, got %d", i+1, l.Level)
		}
	}
}

// TestAppendLevel verifies new levels grow from the last one
func TestAppendLevel(t *testing.T) {
	cfg := threeLevels().WithDefaultLevelDuration(480).AppendLevel()
	if len(cfg.BlindLevels) != 4 {
		t.Fatalf("Expected 4 levels, got %d", len(cfg.BlindLevels))
	}
	got := cfg.BlindLevels[3]
	want := BlindLevel{Level: 4, SmallBlind: 150, BigBlind: 300, Ante: 38, Duration: 480}
	if got != want {
		t.Errorf("Expected %+v, got %+v", want, got)
	}

	noAnte := DefaultTournamentConfig().WithBlindLevels([]BlindLevel{{SmallBlind: 25, BigBlind: 50, Duration: 60}}).AppendLevel()
	if noAnte.BlindLevels[1].Ante != 0 {
		t.Errorf("Expected no ante, got %d", noAnte.BlindLevels[1].Ante)
	}

	first := DefaultTournamentConfig().WithBlindLevels(nil).AppendLevel()
	if l := first.BlindLevels[0]; l.SmallBlind != 25 || l.BigBlind != 50 || l.Ante != 0 || l.Level != 1 {
		t.Errorf("Expected 25/50 first level, got %+v", l)
	}
}

// TestRemoveLevel verifies removal renumbers and keeps the current level in range
func TestRemoveLevel(t *testing.T) {
	cfg := threeLevels().WithCurrentLevel(2)

	out, err := cfg.RemoveLevel(0)
	if err != nil {
		t.Fatalf("RemoveLevel failed: %v", err)
	}
	if len(out.BlindLevels) != 2 || out.BlindLevels[0].SmallBlind != 50 || out.BlindLevels[0].Level != 1 {
		t.Errorf("Unexpected levels after removal: %+v", out.BlindLevels)
	}
	if out.CurrentLevel != 1 {
		t.Errorf("Expected current level clamped to 1, got %d", out.CurrentLevel)
	}

	if _, err := cfg.RemoveLevel(5); !errors.Is(err, ErrLevelOutOfRange) {
		t.Errorf("Expected ErrLevelOutOfRange, got %v", err)
	}

	single := DefaultTournamentConfig().WithBlindLevels([]BlindLevel{{SmallBlind: 1, BigBlind: 2, Duration: 60}})
	if _, err := single.RemoveLevel(0); !errors.Is(err, ErrLastLevel) {
		t.Errorf("Expected ErrLastLevel, got %v", err)
	}
}

// TestReplaceLevel verifies a replaced level keeps its position number
func TestReplaceLevel(t *testing.T) {
	cfg, err := threeLevels().ReplaceLevel(1, BlindLevel{Level: 42, SmallBlind: 60, BigBlind: 120, Duration: 300})
	if err != nil {
		t.Fatalf("ReplaceLevel failed: %v", err)
	}
	if l := cfg.BlindLevels[1]; l.Level != 2 || l.SmallBlind != 60 || l.Duration != 300 {
		t.Errorf("Unexpected level: %+v", l)
	}
	if _, err := cfg.ReplaceLevel(-1, BlindLevel{}); !errors.Is(err, ErrLevelOutOfRange) {
		t.Errorf("Expected ErrLevelOutOfRange, got %v", err)
	}
}
