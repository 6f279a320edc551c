package domain

import (
	"errors"
	"strings"
)

var (
	// ErrNoBlindLevels indicates the schedule is empty and the clock cannot run.
	ErrNoBlindLevels = errors.New("no blind levels configured")

	// ErrLevelOutOfRange indicates a level index outside the schedule.
	ErrLevelOutOfRange = errors.New("level out of range")

	// ErrBreaksDisabled indicates a break was requested while breaks are turned off.
	ErrBreaksDisabled = errors.New("breaks are disabled")

	// ErrBreakActive indicates a break was requested while one is already running.
	ErrBreakActive = errors.New("break already active")

	// ErrPresetNotFound indicates no preset exists with the requested id.
	ErrPresetNotFound = errors.New("preset not found")

	// ErrBuiltinPreset indicates an attempt to modify a built-in preset.
	ErrBuiltinPreset = errors.New("built-in presets cannot be modified")

	// ErrLastLevel indicates an attempt to remove the only remaining blind level.
	ErrLastLevel = errors.New("cannot remove the last blind level")

	// ErrSessionClosed indicates the clock session has been shut down.
	ErrSessionClosed = errors.New("session closed")

	// ErrSessionNotStarted indicates a command was sent before the session loop was running.
	ErrSessionNotStarted = errors.New("session not started")
)

// ValidationError carries every human-readable problem found in a config.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "invalid tournament config: " + strings.Join(e.Messages, "; ")
}
