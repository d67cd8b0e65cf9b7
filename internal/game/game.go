package game

import (
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"
)

const (
	defaultWidth        = 1024
	defaultHeight       = 768
	defaultFrameMs      = 16
	defaultRegenDelayMs = 2000

	// seedStream is the fixed second half of the PCG seed.
	seedStream = 0x9e3779b97f4a7c15
)

// Sim is the simulation core. It owns all entity state; collaborators only
// supply input, play sounds and read snapshots. A Sim is not safe for
// concurrent use.
type Sim struct {
	st  *State
	pcg *rand.PCG
	rng *rand.Rand

	input    InputSource
	sound    SoundService
	renderer Renderer
	ui       UIShell

	log     zerolog.Logger
	events  *SimLog
	metrics simMetrics
	cfg     simConfig
}

type simConfig struct {
	width, height       float64
	frameMs             float64
	seed                uint64
	seeded              bool
	regenDelayMs        float64
	collisionCooldownMs float64
}

// Option configures a Sim in New.
type Option func(*Sim)

// WithWorldSize sets the playfield dimensions in pixels.
func WithWorldSize(w, h float64) Option {
	return func(s *Sim) {
		if w > 0 && h > 0 {
			s.cfg.width, s.cfg.height = w, h
		}
	}
}

// WithFrameInterval sets the simulated time per tick.
func WithFrameInterval(d time.Duration) Option {
	return func(s *Sim) {
		if d > 0 {
			s.cfg.frameMs = float64(d) / float64(time.Millisecond)
		}
	}
}

// WithSeed makes every random draw reproducible.
func WithSeed(seed uint64) Option {
	return func(s *Sim) {
		s.cfg.seed = seed
		s.cfg.seeded = true
	}
}

// WithInput sets the polled input source. Defaults to no input.
func WithInput(in InputSource) Option {
	return func(s *Sim) {
		if in != nil {
			s.input = in
		}
	}
}

// WithSound sets the sound backend. Defaults to silence.
func WithSound(snd SoundService) Option {
	return func(s *Sim) {
		if snd != nil {
			s.sound = snd
		}
	}
}

// WithRenderer sets the snapshot consumer called after each Update.
func WithRenderer(r Renderer) Option {
	return func(s *Sim) { s.renderer = r }
}

// WithUIShell sets the HUD consumer called after each Update.
func WithUIShell(ui UIShell) Option {
	return func(s *Sim) { s.ui = ui }
}

// WithLogger sets the diagnostic logger. Defaults to zerolog.Nop.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Sim) { s.log = l }
}

// WithEventLog records gameplay events into sl.
func WithEventLog(sl *SimLog) Option {
	return func(s *Sim) {
		if sl != nil {
			s.events = sl
		}
	}
}

// WithRegenDelay sets the pause between mission completion and the next level.
func WithRegenDelay(d time.Duration) Option {
	return func(s *Sim) {
		if d >= 0 {
			s.cfg.regenDelayMs = float64(d) / float64(time.Millisecond)
		}
	}
}

// WithVehicleCollisionCooldown sets the grace period after a vehicle crash
// during which the same vehicles take no further crash damage. Zero means
// overlapping vehicles take damage every tick.
func WithVehicleCollisionCooldown(d time.Duration) Option {
	return func(s *Sim) {
		if d >= 0 {
			s.cfg.collisionCooldownMs = float64(d) / float64(time.Millisecond)
		}
	}
}

// New builds a simulation with level 1 generated, waiting in the menu.
func New(opts ...Option) *Sim {
	s := &Sim{
		input:  idleInput{},
		sound:  silentSound{},
		log:    zerolog.Nop(),
		events: NewSimLog(false),
		cfg: simConfig{
			width:        defaultWidth,
			height:       defaultHeight,
			frameMs:      defaultFrameMs,
			regenDelayMs: defaultRegenDelayMs,
		},
	}
	for _, o := range opts {
		o(s)
	}
	if !s.cfg.seeded {
		s.cfg.seed = uint64(time.Now().UnixNano()) // #nosec G115 -- seed material only
	}
	s.pcg = rand.NewPCG(s.cfg.seed, seedStream)
	s.rng = rand.New(s.pcg) // #nosec G404 -- gameplay randomness
	s.metrics = defaultMetrics()
	s.reset()
	return s
}

// reset starts a fresh run: level 1, starting economy and catalog.
func (s *Sim) reset() {
	s.st = &State{
		Version: stateVersion,
		Status:  StateMenu,
		Width:   s.cfg.width,
		Height:  s.cfg.height,
		FrameMs: s.cfg.frameMs,
		Level:   1,
		Catalog: DefaultCatalog(),
		Player:  newPlayer(s.cfg.width, s.cfg.height),
	}
	s.generateLevel()
}

// State returns the live state. Callers must treat it as read-only; use
// Snapshot for a copy.
func (s *Sim) State() *State { return s.st }

// Status returns the screen-level game state.
func (s *Sim) Status() GameState { return s.st.Status }

// Events returns the gameplay event log.
func (s *Sim) Events() *SimLog { return s.events }

// Seed returns the seed the random source was built from.
func (s *Sim) Seed() uint64 { return s.cfg.seed }

// Start begins a new run from the menu or after game over. It is a no-op
// while a run is in progress.
func (s *Sim) Start() {
	switch s.st.Status {
	case StateMenu, StateGameOver:
	default:
		return
	}
	if s.st.Status == StateGameOver || s.st.Tick > 0 {
		s.reset()
	}
	s.st.Status = StatePlaying
	s.play(CueUIClick)
	s.log.Info().Uint64("seed", s.cfg.seed).Msg("game started")
}

// TogglePause flips between playing and paused.
func (s *Sim) TogglePause() {
	switch s.st.Status {
	case StatePlaying:
		s.st.Status = StatePaused
	case StatePaused:
		s.st.Status = StatePlaying
	default:
		return
	}
	s.play(CueUIClick)
	s.events.Add(s.st.Tick, "--", "state", "status", s.st.Status.String(), 0)
}

// Resume returns from pause to play.
func (s *Sim) Resume() {
	if s.st.Status == StatePaused {
		s.TogglePause()
	}
}

// ShowMenu leaves the current run suspended in the menu. Start from the
// menu then begins a fresh run.
func (s *Sim) ShowMenu() {
	s.st.Status = StateMenu
	s.play(CueUIClick)
}

// Restart regenerates the current level and resumes play. Score, cash and
// weapons carry over.
func (s *Sim) Restart() {
	s.st.Timers = nil
	s.generateLevel()
	s.st.Status = StatePlaying
	s.play(CueUIClick)
}

// Update runs one frame: poll input once, handle the pause key, step the
// simulation when playing, then hand the results to the renderer and UI.
func (s *Sim) Update() {
	in := s.input.Poll()
	if in.Pause && !s.st.Input.Pause {
		s.TogglePause()
	}
	if s.st.Status == StatePlaying {
		s.Tick(in)
	} else {
		s.st.Input = in
	}
	s.export()
}

// frameInput carries per-tick edge state that handlers may consume.
type frameInput struct {
	interact bool
}

// Tick advances the simulation by one frame using in. It does nothing
// unless the game is playing.
func (s *Sim) Tick(in InputState) {
	st := s.st
	if st.Status != StatePlaying {
		return
	}
	st.Tick++
	st.NowMs += st.FrameMs
	s.metrics.tick()

	s.fireDueEvents()

	f := frameInput{interact: in.Interact && !st.Input.Interact}

	s.updatePlayer(in, &f)
	s.updateEnemies()
	s.updateBullets()
	s.updateEffects()
	s.updateVehicles(in, &f)
	s.refreshCover()
	s.resolveCollisions()
	s.resolveVehicleCollisions()
	s.evaluateMission()

	st.Input = in
}

// export hands a snapshot and HUD to the optional collaborators.
func (s *Sim) export() {
	if s.renderer != nil {
		s.renderer.Render(s.Snapshot())
	}
	if s.ui != nil {
		s.ui.Show(s.HUD())
	}
}
