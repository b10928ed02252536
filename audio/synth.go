package audio

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Wave names an oscillator shape.
type Wave string

const (
	WaveSine     Wave = "sine"
	WaveSquare   Wave = "square"
	WaveSaw      Wave = "saw"
	WaveTriangle Wave = "triangle"
	WaveNoise    Wave = "noise"
)

func (w Wave) valid() bool {
	switch w {
	case WaveSine, WaveSquare, WaveSaw, WaveTriangle, WaveNoise:
		return true
	}
	return false
}

// Recipe describes one synthesized cue. A non-zero FreqEnd sweeps linearly
// from Freq to FreqEnd over Duration. Harmonic mixes in an octave-up voice at
// that weight.
type Recipe struct {
	Wave     Wave          `yaml:"wave"`
	Freq     float64       `yaml:"freq"`
	FreqEnd  float64       `yaml:"freq_end"`
	Duration time.Duration `yaml:"duration"`
	Attack   time.Duration `yaml:"attack"`
	Release  time.Duration `yaml:"release"`
	Volume   float64       `yaml:"volume"`
	Harmonic float64       `yaml:"harmonic"`
}

func (r Recipe) Validate() error {
	if !r.Wave.valid() {
		return fmt.Errorf("%w: wave %q", ErrInvalidRecipe, r.Wave)
	}
	if r.Duration <= 0 {
		return fmt.Errorf("%w: duration %s", ErrInvalidRecipe, r.Duration)
	}
	if r.Freq < 0 || r.FreqEnd < 0 {
		return fmt.Errorf("%w: negative frequency", ErrInvalidRecipe)
	}
	if r.Attack < 0 || r.Release < 0 {
		return fmt.Errorf("%w: negative envelope", ErrInvalidRecipe)
	}
	if r.Harmonic < 0 || r.Harmonic > 1 {
		return fmt.Errorf("%w: harmonic %g outside [0,1]", ErrInvalidRecipe, r.Harmonic)
	}
	return nil
}

// Streamer builds the beep graph for r at the given rate.
func (r Recipe) Streamer(rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	end := r.FreqEnd
	if end == 0 {
		end = r.Freq
	}

	var voice beep.Streamer = newOscillator(r.Freq, end, r.Duration, r.Wave, rate, rng)
	if r.Harmonic > 0 {
		over := newOscillator(2*r.Freq, 2*end, r.Duration, r.Wave, rate, rng)
		voice = beep.Mix(
			newVolume(voice, 1-r.Harmonic),
			newVolume(over, r.Harmonic),
		)
	}

	shaped := newEnvelope(voice, r.Duration, r.Attack, r.Release, rate)
	vol := r.Volume
	if vol == 0 {
		vol = 1
	}
	return newVolume(shaped, vol)
}

type oscillator struct {
	freq     float64
	step     float64
	phase    float64
	duration int
	position int
	wave     Wave
	rate     beep.SampleRate
	rng      *rand.Rand
}

func newOscillator(from, to float64, duration time.Duration, wave Wave, rate beep.SampleRate, rng *rand.Rand) *oscillator {
	samples := rate.N(duration)
	step := 0.0
	if samples > 0 {
		step = (to - from) / float64(samples)
	}
	return &oscillator{
		freq:     from,
		step:     step,
		duration: samples,
		wave:     wave,
		rate:     rate,
		rng:      rng,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveTriangle:
			val = 1 - 4*math.Abs(o.phase-0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.freq += o.step
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope ramps volume up over the attack and down over the release.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

func newEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) *envelope {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	if att+rel > total {
		att = total * att / (att + rel)
		rel = total - att
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: total - att - rel,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales linearly; math.Log2(0) is -Inf so zero means silent.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
