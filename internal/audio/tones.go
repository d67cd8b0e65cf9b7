package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/Garsondee/vice-streets/internal/game"
)

// WaveType selects an oscillator shape.
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// tone is a synthesized cue: a frequency sweep from Freq to EndFreq.
type tone struct {
	Freq     float64
	EndFreq  float64
	Duration time.Duration
	Wave     WaveType
	Gain     float64
}

var tones = map[game.Cue]tone{
	game.CueShoot:           {Freq: 880, EndFreq: 220, Duration: 60 * time.Millisecond, Wave: WaveSquare, Gain: 0.4},
	game.CueEnemyShoot:      {Freq: 520, EndFreq: 180, Duration: 70 * time.Millisecond, Wave: WaveSquare, Gain: 0.3},
	game.CueReload:          {Freq: 300, EndFreq: 600, Duration: 120 * time.Millisecond, Wave: WaveSaw, Gain: 0.3},
	game.CueHit:             {Freq: 140, EndFreq: 90, Duration: 90 * time.Millisecond, Wave: WaveSaw, Gain: 0.5},
	game.CueExplosion:       {Freq: 1, EndFreq: 1, Duration: 350 * time.Millisecond, Wave: WaveNoise, Gain: 0.6},
	game.CuePickup:          {Freq: 660, EndFreq: 1320, Duration: 100 * time.Millisecond, Wave: WaveSine, Gain: 0.4},
	game.CueUIClick:         {Freq: 1000, EndFreq: 1000, Duration: 25 * time.Millisecond, Wave: WaveSine, Gain: 0.3},
	game.CueMissionComplete: {Freq: 523, EndFreq: 1046, Duration: 500 * time.Millisecond, Wave: WaveSine, Gain: 0.5},
	game.CueGameOver:        {Freq: 440, EndFreq: 110, Duration: 800 * time.Millisecond, Wave: WaveSaw, Gain: 0.5},
	game.CuePurchase:        {Freq: 784, EndFreq: 1568, Duration: 150 * time.Millisecond, Wave: WaveSine, Gain: 0.4},
	game.CueEquip:           {Freq: 392, EndFreq: 392, Duration: 60 * time.Millisecond, Wave: WaveSquare, Gain: 0.3},
}

// oscillator renders a swept wave for a fixed number of samples.
type oscillator struct {
	freq, endFreq float64
	phase         float64
	total         int
	position      int
	wave          WaveType
	rate          beep.SampleRate
	noise         *rand.Rand
}

func newOscillator(t tone, rate beep.SampleRate) *oscillator {
	return &oscillator{
		freq:    t.Freq,
		endFreq: t.EndFreq,
		total:   rate.N(t.Duration),
		wave:    t.Wave,
		rate:    rate,
		noise:   rand.New(rand.NewPCG(uint64(t.Freq), uint64(t.Duration))), // #nosec G404 -- audio noise, not security
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.total {
			return i, i > 0
		}
		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			val = 1
			if o.phase >= 0.5 {
				val = -1
			}
		case WaveSaw:
			val = 2 * (o.phase - 0.5)
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
		}
		// Linear fade-out so cues do not click at the end.
		fade := 1 - float64(o.position)/float64(o.total)
		samples[i][0] = val * fade
		samples[i][1] = val * fade

		progress := float64(o.position) / float64(o.total)
		f := o.freq + (o.endFreq-o.freq)*progress
		o.phase += f / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// withVolume scales s by a linear gain. beep volumes are logarithmic, so a
// zero gain maps to silence.
func withVolume(s beep.Streamer, gain float64) beep.Streamer {
	if gain <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(gain)}
}

// cueStreamer builds the streamer for cue at master volume.
func cueStreamer(cue game.Cue, master float64, rate beep.SampleRate) (beep.Streamer, bool) {
	t, ok := tones[cue]
	if !ok {
		return nil, false
	}
	return withVolume(newOscillator(t, rate), t.Gain*master), true
}
