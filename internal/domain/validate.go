package domain

import (
	"fmt"
	"strings"
)

// Validate checks a config before it is persisted. It returns a *ValidationError
// listing every problem, or nil.
func (c TournamentConfig) Validate() error {
	if msgs := c.Problems(); len(msgs) > 0 {
		return &ValidationError{Messages: msgs}
	}
	return nil
}

// Problems lists human-readable validation messages in display order.
func (c TournamentConfig) Problems() []string {
	var msgs []string

	if strings.TrimSpace(c.Name) == "" {
		msgs = append(msgs, "Tournament name is required")
	}
	if c.StartingChips <= 0 {
		msgs = append(msgs, "Starting chips must be greater than 0")
	}
	if len(c.BlindLevels) == 0 {
		msgs = append(msgs, "At least one blind level is required")
	}
	for _, lvl := range c.BlindLevels {
		if lvl.SmallBlind <= 0 {
			msgs = append(msgs, fmt.Sprintf("Level %d: Small blind must be greater than 0", lvl.Level))
		}
		if lvl.BigBlind <= lvl.SmallBlind {
			msgs = append(msgs, fmt.Sprintf("Level %d: Big blind must be greater than small blind", lvl.Level))
		}
		if lvl.Ante < 0 {
			msgs = append(msgs, fmt.Sprintf("Level %d: Ante cannot be negative", lvl.Level))
		}
		if lvl.Duration <= 0 {
			msgs = append(msgs, fmt.Sprintf("Level %d: Duration must be greater than 0", lvl.Level))
		}
	}
	if c.BreakConfig.Enabled && c.BreakConfig.Duration <= 0 {
		msgs = append(msgs, "Break duration must be greater than 0")
	}
	return msgs
}
