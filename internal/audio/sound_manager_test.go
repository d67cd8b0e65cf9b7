package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Garsondee/vice-streets/internal/game"
)

func TestTones_CoverEveryCue(t *testing.T) {
	for _, cue := range game.AllCues {
		_, ok := tones[cue]
		assert.True(t, ok, "no tone for cue %q", cue)
	}
}

func TestOscillator_StreamsExactDuration(t *testing.T) {
	rate := beep.SampleRate(1000)
	osc := newOscillator(tone{Freq: 100, EndFreq: 100, Duration: 50 * time.Millisecond, Wave: WaveSine}, rate)

	buf := make([][2]float64, 32)
	n1, ok := osc.Stream(buf)
	require.True(t, ok)
	assert.Equal(t, 32, n1)

	n2, ok := osc.Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, 18, n2)

	n3, ok := osc.Stream(buf)
	assert.False(t, ok)
	assert.Equal(t, 0, n3)
}

func TestOscillator_StaysInRange(t *testing.T) {
	rate := beep.SampleRate(8000)
	for _, w := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		osc := newOscillator(tone{Freq: 440, EndFreq: 110, Duration: 20 * time.Millisecond, Wave: w}, rate)
		buf := make([][2]float64, 256)
		n, _ := osc.Stream(buf)
		for _, s := range buf[:n] {
			assert.LessOrEqual(t, s[0], 1.0)
			assert.GreaterOrEqual(t, s[0], -1.0)
			assert.Equal(t, s[0], s[1], "mono cue should be identical in both channels")
		}
	}
}

func TestWithVolume_ZeroIsSilent(t *testing.T) {
	rate := beep.SampleRate(1000)
	s := withVolume(newOscillator(tone{Freq: 100, EndFreq: 100, Duration: 10 * time.Millisecond, Wave: WaveSquare}, rate), 0)
	buf := make([][2]float64, 10)
	n, _ := s.Stream(buf)
	for _, v := range buf[:n] {
		assert.Equal(t, 0.0, v[0])
	}
}

func TestCueStreamer_UnknownCue(t *testing.T) {
	_, ok := cueStreamer(game.Cue("kazoo"), 1, sampleRate)
	assert.False(t, ok)
}

func TestSoundManager_PlayBeforeInitialize(t *testing.T) {
	sm := NewSoundManager(0.5, zerolog.Nop())
	assert.ErrorIs(t, sm.Play(game.CueShoot), ErrNotInitialized)
	sm.Close() // safe without a device
}

func TestSoundManager_ClampsVolume(t *testing.T) {
	sm := NewSoundManager(4, zerolog.Nop())
	assert.Equal(t, 1.0, sm.volume)
	sm.SetVolume(-1)
	assert.Equal(t, 0.0, sm.volume)
}

func TestSoundManager_Initialize(t *testing.T) {
	sm := NewSoundManager(0.5, zerolog.Nop())
	if err := sm.Initialize(); err != nil {
		t.Logf("no audio device (expected in CI): %v", err)
		return
	}
	defer sm.Close()
	require.NoError(t, sm.Initialize(), "second Initialize should be a no-op")
	assert.NoError(t, sm.Play(game.CueUIClick))
	assert.ErrorIs(t, sm.Play(game.Cue("kazoo")), ErrUnknownCue)
}

func TestSilent_DiscardsCues(t *testing.T) {
	assert.NoError(t, Silent{}.Play(game.CueExplosion))
}
