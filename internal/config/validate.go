package config

import (
	"fmt"
	"strings"
	"time"
)

// Normalize rejects unusable values and fills blanks with defaults.
func Normalize(s Settings) (Settings, error) {
	if strings.TrimSpace(s.DataDir) == "" {
		return s, fmt.Errorf("data dir is required")
	}
	if s.Addr == "" {
		s.Addr = DefaultAddr
	}
	if s.TickInterval < 10*time.Millisecond {
		return s, fmt.Errorf("tick interval must be >=10ms")
	}
	switch s.Sound {
	case "":
		s.Sound = SoundBeep
	case SoundBeep, SoundOff:
	default:
		return s, fmt.Errorf("sound must be %q or %q", SoundBeep, SoundOff)
	}
	return s, nil
}
