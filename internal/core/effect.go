package core

import "pokerclock/internal/domain"

// EffectType represents the type of side effect to be performed.
type EffectType string

const (
	EffectLevelChanged EffectType = "LevelChanged"
	EffectPlaySound    EffectType = "PlaySound"
	EffectTimerEnded   EffectType = "TimerEnded"
)

// Effect represents a side effect that should be performed by the adapter layer.
// The machine records Effects without executing them, so transitions stay pure.
type Effect struct {
	Type  EffectType
	Level int
	Sound domain.SoundKind
}

func levelChanged(level int) Effect {
	return Effect{Type: EffectLevelChanged, Level: level}
}

func playSound(kind domain.SoundKind) Effect {
	return Effect{Type: EffectPlaySound, Sound: kind}
}
