// Package audio plays the simulation's sound cues through beep.
package audio

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/Garsondee/vice-streets/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// maxVoices caps concurrently mixed cues; extra requests are dropped.
const maxVoices = 16

var (
	// ErrNotInitialized is returned by Play before Initialize succeeds.
	ErrNotInitialized = errors.New("audio: speaker not initialized")
	// ErrUnknownCue is returned by Play for a cue with no tone.
	ErrUnknownCue = errors.New("audio: unknown cue")
)

// SoundManager synthesizes each cue on demand and mixes it into a single
// speaker stream. It implements game.SoundService.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
	log         zerolog.Logger
}

// NewSoundManager creates a manager at the given master volume in [0,1].
func NewSoundManager(volume float64, log zerolog.Logger) *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: min(max(volume, 0), 1),
		log:    log,
	}
}

// Initialize opens the audio device. Calling it twice is a no-op.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return fmt.Errorf("audio: init speaker: %w", err)
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	sm.log.Debug().Int("sampleRate", int(sampleRate)).Msg("speaker initialized")
	return nil
}

// Play queues cue. It never blocks on the device.
func (sm *SoundManager) Play(cue game.Cue) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return ErrNotInitialized
	}
	s, ok := cueStreamer(cue, sm.volume, sampleRate)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCue, cue)
	}
	speaker.Lock()
	defer speaker.Unlock()
	if sm.mixer.Len() >= maxVoices {
		return nil
	}
	sm.mixer.Add(s)
	return nil
}

// SetVolume changes the master volume for cues played from now on.
func (sm *SoundManager) SetVolume(v float64) {
	sm.mu.Lock()
	sm.volume = min(max(v, 0), 1)
	sm.mu.Unlock()
}

// Close silences everything and releases the device.
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}

// Silent is a SoundService that discards every cue.
type Silent struct{}

// Play discards the cue.
func (Silent) Play(game.Cue) error { return nil }

var (
	_ game.SoundService = (*SoundManager)(nil)
	_ game.SoundService = Silent{}
)
