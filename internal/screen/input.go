package screen

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/vice-streets/internal/game"
)

// Bindings maps simulation actions to keys. Any key in a slice triggers
// the action.
type Bindings struct {
	Up, Down, Left, Right []ebiten.Key
	Sprint, Reload        []ebiten.Key
	Interact, Pause       []ebiten.Key
}

// DefaultBindings is WASD/arrows with shift to sprint, R to reload, E to
// enter or leave a vehicle and Escape or P to pause.
var DefaultBindings = Bindings{
	Up:       []ebiten.Key{ebiten.KeyW, ebiten.KeyArrowUp},
	Down:     []ebiten.Key{ebiten.KeyS, ebiten.KeyArrowDown},
	Left:     []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft},
	Right:    []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight},
	Sprint:   []ebiten.Key{ebiten.KeyShiftLeft, ebiten.KeyShiftRight},
	Reload:   []ebiten.Key{ebiten.KeyR},
	Interact: []ebiten.Key{ebiten.KeyE},
	Pause:    []ebiten.Key{ebiten.KeyEscape, ebiten.KeyP},
}

// Pointer is the cursor position in world pixels and the fire button.
type Pointer struct {
	X, Y int
	Down bool
}

// Translate builds an InputState from a key predicate and pointer reading.
// The simulation does its own edge detection, so held keys pass through.
func (b Bindings) Translate(pressed func(ebiten.Key) bool, p Pointer) game.InputState {
	held := func(keys []ebiten.Key) bool {
		for _, k := range keys {
			if pressed(k) {
				return true
			}
		}
		return false
	}
	return game.InputState{
		Up:          held(b.Up),
		Down:        held(b.Down),
		Left:        held(b.Left),
		Right:       held(b.Right),
		Sprint:      held(b.Sprint),
		Reload:      held(b.Reload),
		Interact:    held(b.Interact),
		Pause:       held(b.Pause),
		PointerX:    float64(p.X),
		PointerY:    float64(p.Y),
		PointerDown: p.Down,
	}
}

// Input polls ebiten's keyboard and mouse. It implements game.InputSource
// and must only be polled from ebiten's Update.
type Input struct {
	Bindings Bindings
}

// Poll implements game.InputSource.
func (in *Input) Poll() game.InputState {
	mx, my := ebiten.CursorPosition()
	return in.Bindings.Translate(ebiten.IsKeyPressed, Pointer{
		X: mx, Y: my,
		Down: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	})
}
