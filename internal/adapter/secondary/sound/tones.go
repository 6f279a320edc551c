package sound

import (
	"fmt"
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"

	"pokerclock/internal/domain"
)

const sampleRate = beep.SampleRate(44100)

type toneStyle int

const (
	styleBeep toneStyle = iota
	styleChime
	styleAlert
)

type toneSpec struct {
	freq     float64
	duration time.Duration
	volume   float64
	style    toneStyle
}

var toneSpecs = map[domain.SoundKind]toneSpec{
	domain.SoundWarning:     {freq: 800, duration: 200 * time.Millisecond, volume: 0.25, style: styleBeep},
	domain.SoundCritical:    {freq: 1000, duration: 300 * time.Millisecond, volume: 0.4, style: styleAlert},
	domain.SoundLevelChange: {freq: 600, duration: 500 * time.Millisecond, volume: 0.35, style: styleChime},
	domain.SoundBreakStart:  {freq: 500, duration: 400 * time.Millisecond, volume: 0.3, style: styleChime},
	domain.SoundBreakEnd:    {freq: 700, duration: 400 * time.Millisecond, volume: 0.3, style: styleChime},
}

// chimeStagger is the delay between the partials of a chime.
const chimeStagger = 50 * time.Millisecond

// Streamer builds the finite stream for an alert sound.
func Streamer(kind domain.SoundKind) (beep.Streamer, error) {
	spec, ok := toneSpecs[kind]
	if !ok {
		return nil, fmt.Errorf("unknown sound %q", kind)
	}
	switch spec.style {
	case styleChime:
		return chime(spec)
	case styleAlert:
		return alert(spec)
	default:
		return tone(spec.freq, spec.duration, spec.volume)
	}
}

// tone is a sine wave that decays exponentially to near silence.
func tone(freq float64, duration time.Duration, volume float64) (beep.Streamer, error) {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil, err
	}
	total := sampleRate.N(duration)
	return &decay{streamer: beep.Take(total, sine), total: total, volume: volume}, nil
}

// chime layers three rising partials, each starting a little after the last.
func chime(spec toneSpec) (beep.Streamer, error) {
	ratios := []float64{1, 1.25, 1.5}
	parts := make([]beep.Streamer, 0, len(ratios))
	for i, ratio := range ratios {
		t, err := tone(spec.freq*ratio, spec.duration, spec.volume*0.6)
		if err != nil {
			return nil, err
		}
		delay := sampleRate.N(time.Duration(i) * chimeStagger)
		parts = append(parts, beep.Seq(beep.Silence(delay), t))
	}
	return beep.Mix(parts...), nil
}

// alert is two short beeps, the second a little higher.
func alert(spec toneSpec) (beep.Streamer, error) {
	half := spec.duration / 2
	first, err := tone(spec.freq, half, spec.volume)
	if err != nil {
		return nil, err
	}
	second, err := tone(spec.freq*1.2, half, spec.volume)
	if err != nil {
		return nil, err
	}
	return beep.Seq(first, second), nil
}

// decay scales a stream from volume down to 1% of it over total samples.
type decay struct {
	streamer beep.Streamer
	position int
	total    int
	volume   float64
}

func (d *decay) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = d.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		progress := 1.0
		if d.total > 0 {
			progress = float64(d.position) / float64(d.total)
		}
		gain := d.volume * math.Pow(0.01, progress)
		samples[i][0] *= gain
		samples[i][1] *= gain
		d.position++
	}
	return n, ok
}

func (d *decay) Err() error { return d.streamer.Err() }
