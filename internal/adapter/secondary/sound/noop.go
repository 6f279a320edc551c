package sound

import "pokerclock/internal/domain"

// NoopPlayer implements domain.SoundPlayer with no-op behavior.
// Useful for testing or machines without an audio device.
type NoopPlayer struct{}

// NewNoopPlayer creates a new no-op sound player.
func NewNoopPlayer() domain.SoundPlayer {
	return &NoopPlayer{}
}

// Play does nothing.
func (n *NoopPlayer) Play(kind domain.SoundKind) {}
