package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/princess-guard/constants"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation
func NewOscillator(freq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	samples := rate.N(duration)
	return &oscillator{
		freq:     freq,
		phase:    0,
		duration: samples,
		position: 0,
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, false
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
		case WaveNoise:
			val = rand.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		// Advance phase
		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

// NewEnvelope creates an ADSR envelope (simplified to just attack/release)
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}

	return &envelope{
		streamer:       s,
		position:       0,
		attackSamples:  att,
		releaseSamples: rel,
		sustainSamples: sus,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, false
		}

		var vol float64 = 1.0

		// Attack phase
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		// Release phase
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			remaining := e.totalSamples - e.position
			vol = float64(remaining) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume wraps s in a volume effect. Log2(0) is -Inf, so zero volume
// becomes silence.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// note builds one shaped oscillator tone
func note(freq float64, wave WaveType, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(freq, duration, wave, rate), duration, attack, release, rate)
}

// CreateKillSound generates a short bright ding for an enemy kill
func CreateKillSound(rate beep.SampleRate) beep.Streamer {
	fund := NewEnvelope(
		NewOscillator(1046.5, constants.KillSoundDuration, WaveSine, rate), // C6
		constants.KillSoundDuration, constants.KillSoundAttack, constants.KillSoundFundamentalRelease, rate)
	over := NewEnvelope(
		NewOscillator(2093.0, constants.KillSoundDuration, WaveSine, rate),
		constants.KillSoundDuration, constants.KillSoundAttack, constants.KillSoundOvertoneRelease, rate)

	return beep.Mix(
		newVolume(fund, 0.7),
		newVolume(over, 0.3),
	)
}

// CreateBonusSound generates a noise sweep followed by a two-note chime for
// the screen clear
func CreateBonusSound(rate beep.SampleRate) beep.Streamer {
	whoosh := note(0, WaveNoise, constants.BonusWhooshDuration, constants.BonusWhooshAttack, constants.BonusWhooshRelease, rate)
	n1 := note(987.77, WaveSquare, constants.BonusNote1Duration, constants.BonusNoteAttack, constants.BonusNote1Release, rate)   // B5
	n2 := note(1318.51, WaveSquare, constants.BonusNote2Duration, constants.BonusNoteAttack, constants.BonusNote2Release, rate) // E6

	return beep.Seq(newVolume(whoosh, 0.6), newVolume(beep.Seq(n1, n2), 0.5))
}

// CreateGameOverSound generates three falling saw notes
func CreateGameOverSound(rate beep.SampleRate) beep.Streamer {
	freqs := []float64{392.0, 311.13, 196.0} // G4, Eb4, G3
	notes := make([]beep.Streamer, 0, len(freqs))
	for _, f := range freqs {
		notes = append(notes, note(f, WaveSaw,
			constants.GameOverNoteDuration, constants.GameOverNoteAttack, constants.GameOverNoteRelease, rate))
	}
	return newVolume(beep.Seq(notes...), 0.5)
}

// CreateStartSound generates a rising two-note cue
func CreateStartSound(rate beep.SampleRate) beep.Streamer {
	n1 := note(523.25, WaveSquare, constants.StartNoteDuration, constants.StartNoteAttack, constants.StartNoteRelease, rate) // C5
	n2 := note(783.99, WaveSquare, constants.StartNoteDuration, constants.StartNoteAttack, constants.StartNoteRelease, rate) // G5
	return newVolume(beep.Seq(n1, n2), 0.4)
}

// GetSoundEffect returns the streamer for soundType at master volume, or nil
// for an unknown type
func GetSoundEffect(soundType SoundType, rate beep.SampleRate, volume float64) beep.Streamer {
	var s beep.Streamer
	switch soundType {
	case SoundKill:
		s = CreateKillSound(rate)
	case SoundBonus:
		s = CreateBonusSound(rate)
	case SoundGameOver:
		s = CreateGameOverSound(rate)
	case SoundStart:
		s = CreateStartSound(rate)
	default:
		return nil
	}
	return newVolume(s, volume)
}
