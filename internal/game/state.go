package game

import (
	"errors"
	"fmt"
)

// stateVersion is bumped whenever State changes shape incompatibly.
const stateVersion = 1

// neverMs marks a timestamp that has not happened yet. It is far enough in
// the past that every cooldown has elapsed and no sighting counts as recent.
const neverMs = -1e9

// GameState is the coarse screen-level state exposed to the UI shell.
type GameState int

const (
	StateMenu GameState = iota
	StatePlaying
	StatePaused
	StateGameOver
)

func (gs GameState) String() string {
	switch gs {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

// Economy is the player's running score and wallet.
type Economy struct {
	Score int `json:"score"`
	Cash  int `json:"cash"`
	Kills int `json:"kills"`
}

// Mission tracks the level objectives. The enemy count is derived from the
// live enemy store.
type Mission struct {
	EvidenceRemaining int  `json:"evidenceRemaining"`
	Completed         bool `json:"completed"`
}

// State is the complete mutable simulation state. It doubles as the render
// snapshot and as the save-game payload.
type State struct {
	Version int       `json:"version"`
	Status  GameState `json:"status"`
	Width   float64   `json:"width"`
	Height  float64   `json:"height"`
	FrameMs float64   `json:"frameMs"`
	Tick    int       `json:"tick"`
	NowMs   float64   `json:"nowMs"`
	Level   int       `json:"level"`
	NextID  int       `json:"nextId"`

	Player   Player   `json:"player"`
	Catalog  []Weapon `json:"catalog"`
	Economy  Economy  `json:"economy"`
	Mission  Mission  `json:"mission"`
	Vehicles Fleet    `json:"vehicles"`
	Cover    Cover    `json:"cover"`

	Enemies    []Enemy     `json:"enemies"`
	Bullets    []Bullet    `json:"bullets"`
	Particles  []Particle  `json:"particles"`
	Explosions []Explosion `json:"explosions"`
	Pickups    []Pickup    `json:"pickups"`
	Evidence   []Evidence  `json:"evidence"`
	Walls      []Wall      `json:"walls"`

	Timers []ScheduledEvent `json:"timers"`
	// Input is the previous tick's input, kept for edge detection.
	Input InputState `json:"input"`
	// RNG is the marshalled random source; only filled in snapshots.
	RNG []byte `json:"rng,omitempty"`
}

// InVehicle reports whether the player is driving.
func (st *State) InVehicle() bool {
	return st.Vehicles.Player != nil
}

// EnemiesRemaining is the live enemy count.
func (st *State) EnemiesRemaining() int {
	return len(st.Enemies)
}

func (st *State) nextID() int {
	st.NextID++
	return st.NextID
}

// clone deep-copies the state. Entities are plain values, so copying each
// slice is enough; the player vehicle is the only pointer.
func (st *State) clone() *State {
	c := *st
	c.Catalog = cloneSlice(st.Catalog)
	c.Vehicles.Free = cloneSlice(st.Vehicles.Free)
	if st.Vehicles.Player != nil {
		v := *st.Vehicles.Player
		c.Vehicles.Player = &v
	}
	c.Cover.Objects = cloneSlice(st.Cover.Objects)
	c.Enemies = cloneSlice(st.Enemies)
	c.Bullets = cloneSlice(st.Bullets)
	c.Particles = cloneSlice(st.Particles)
	c.Explosions = cloneSlice(st.Explosions)
	c.Pickups = cloneSlice(st.Pickups)
	c.Evidence = cloneSlice(st.Evidence)
	c.Walls = cloneSlice(st.Walls)
	c.Timers = cloneSlice(st.Timers)
	c.RNG = cloneSlice(st.RNG)
	return &c
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	copy(out, in)
	return out
}

// Snapshot returns a deep copy of the current state including the RNG
// position, suitable for rendering, saving or a later Restore.
func (s *Sim) Snapshot() *State {
	c := s.st.clone()
	if b, err := s.pcg.MarshalBinary(); err == nil {
		c.RNG = b
	}
	return c
}

// Restore replaces the simulation state with a copy of snap.
func (s *Sim) Restore(snap *State) error {
	if snap == nil {
		return errors.New("restore: nil state")
	}
	if snap.Version != stateVersion {
		return fmt.Errorf("restore: state version %d, want %d", snap.Version, stateVersion)
	}
	if snap.Width <= 0 || snap.Height <= 0 || snap.FrameMs <= 0 {
		return fmt.Errorf("restore: invalid world %vx%v at %vms", snap.Width, snap.Height, snap.FrameMs)
	}
	if len(snap.RNG) > 0 {
		if err := s.pcg.UnmarshalBinary(snap.RNG); err != nil {
			return fmt.Errorf("restore: rng state: %w", err)
		}
	}
	st := snap.clone()
	st.RNG = nil
	s.st = st
	s.log.Info().Int("level", st.Level).Int("tick", st.Tick).Msg("state restored")
	return nil
}
