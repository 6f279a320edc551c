package sound

import (
	"sync"
	"time"

	"github.com/gopxl/beep/speaker"

	"pokerclock/internal/domain"
	"pokerclock/internal/logging"
)

// BeepPlayer implements domain.SoundPlayer by synthesizing tones on the speaker.
// If the audio device cannot be opened it stays silent instead of failing.
type BeepPlayer struct {
	mu          sync.Mutex
	initialized bool
	silent      bool
}

// NewBeepPlayer creates a player. Call Init before the first Play.
func NewBeepPlayer() *BeepPlayer {
	return &BeepPlayer{}
}

// Init opens the speaker. A failure switches the player to silent mode and is returned
// for logging only.
func (p *BeepPlayer) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		p.silent = true
		return err
	}
	p.initialized = true
	return nil
}

// Play queues kind on the speaker and returns immediately.
func (p *BeepPlayer) Play(kind domain.SoundKind) {
	defer func() {
		if r := recover(); r != nil {
			logging.Debugf("sound %s failed: %v", kind, r)
		}
	}()

	p.mu.Lock()
	ready := p.initialized && !p.silent
	p.mu.Unlock()
	if !ready {
		return
	}

	streamer, err := Streamer(kind)
	if err != nil {
		logging.Debugf("sound %s: %v", kind, err)
		return
	}
	speaker.Play(streamer)
}

// Close stops anything still playing.
func (p *BeepPlayer) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Clear()
	p.initialized = false
}
