package domain

import "fmt"

const (
	// WarningThreshold is the remaining-seconds mark where the clock turns amber.
	WarningThreshold = 30
	// CriticalThreshold is the remaining-seconds mark where the clock turns red.
	CriticalThreshold = 10
)

// Warning classifies how close a countdown is to zero.
type Warning int

const (
	WarningNormal Warning = iota
	WarningSoon
	WarningCritical
)

func (w Warning) String() string {
	switch w {
	case WarningSoon:
		return "warning"
	case WarningCritical:
		return "critical"
	default:
		return "normal"
	}
}

// FormatTime renders seconds as MM:SS. Minutes are not wrapped at 60.
func FormatTime(totalSeconds int) string {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}

// WarningState classifies timeRemaining against the warning thresholds.
func WarningState(timeRemaining int) Warning {
	switch {
	case timeRemaining > WarningThreshold:
		return WarningNormal
	case timeRemaining > CriticalThreshold:
		return WarningSoon
	default:
		return WarningCritical
	}
}

// CrossedThreshold reports the alert to sound when a countdown moves from prev
// to cur. It fires only on the tick that lands exactly on a threshold.
func CrossedThreshold(prev, cur int) (SoundKind, bool) {
	if prev > WarningThreshold && cur == WarningThreshold {
		return SoundWarning, true
	}
	if prev > CriticalThreshold && cur == CriticalThreshold {
		return SoundCritical, true
	}
	return "", false
}

// SecondsToMinutesAndSeconds splits a duration for editing forms.
func SecondsToMinutesAndSeconds(seconds int) (int, int) {
	return seconds / 60, seconds % 60
}

// MinutesAndSecondsToSeconds is the inverse of SecondsToMinutesAndSeconds.
func MinutesAndSecondsToSeconds(minutes, seconds int) int {
	return minutes*60 + seconds
}
