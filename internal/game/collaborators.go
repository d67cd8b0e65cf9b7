package game

//go:generate go tool mockgen -destination=./mocks/collaborators_mock.go -package=mocks . InputSource,SoundService

// InputState is the polled key and pointer state for one tick.
type InputState struct {
	Up          bool    `json:"up,omitempty"`
	Down        bool    `json:"down,omitempty"`
	Left        bool    `json:"left,omitempty"`
	Right       bool    `json:"right,omitempty"`
	Sprint      bool    `json:"sprint,omitempty"`
	Reload      bool    `json:"reload,omitempty"`
	Interact    bool    `json:"interact,omitempty"`
	Pause       bool    `json:"pause,omitempty"`
	PointerX    float64 `json:"pointerX"`
	PointerY    float64 `json:"pointerY"`
	PointerDown bool    `json:"pointerDown,omitempty"`
}

// InputSource is polled once per Update. The simulation never captures input itself.
type InputSource interface {
	Poll() InputState
}

// Cue names a sound effect.
type Cue string

const (
	CueShoot           Cue = "shoot"
	CueReload          Cue = "reload"
	CueHit             Cue = "hit"
	CueExplosion       Cue = "explosion"
	CuePickup          Cue = "pickup"
	CueEnemyShoot      Cue = "enemyShoot"
	CueUIClick         Cue = "uiClick"
	CueMissionComplete Cue = "missionComplete"
	CueGameOver        Cue = "gameOver"
	CuePurchase        Cue = "purchase"
	CueEquip           Cue = "equip"
)

// AllCues lists every cue the simulation can request.
var AllCues = []Cue{
	CueShoot, CueReload, CueHit, CueExplosion, CuePickup, CueEnemyShoot,
	CueUIClick, CueMissionComplete, CueGameOver, CuePurchase, CueEquip,
}

// SoundService plays named cues. Play must not block; a returned error is
// logged and otherwise ignored.
type SoundService interface {
	Play(cue Cue) error
}

// Renderer receives a read-only snapshot after every Update.
type Renderer interface {
	Render(snap *State)
}

// UIShell receives the derived display values after every Update.
type UIShell interface {
	Show(hud HUD)
}

type silentSound struct{}

func (silentSound) Play(Cue) error { return nil }

type idleInput struct{}

func (idleInput) Poll() InputState { return InputState{} }

// play requests a cue and swallows failures.
func (s *Sim) play(cue Cue) {
	if err := s.sound.Play(cue); err != nil {
		s.log.Warn().Err(err).Str("cue", string(cue)).Msg("sound cue failed")
	}
}
