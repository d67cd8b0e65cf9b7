package tui

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/vice-streets/internal/game"
)

// holdTicks is how long one key press keeps an action held. Terminals
// report repeats but never releases, so held state decays instead.
const holdTicks = 6

type action int

const (
	actUp action = iota
	actDown
	actLeft
	actRight
	actSprint
	actReload
	actInteract
	actPause
	actFire
	actionCount
)

var runeActions = map[rune]action{
	'w': actUp, 's': actDown, 'a': actLeft, 'd': actRight,
	'r': actReload, 'e': actInteract, 'p': actPause, ' ': actFire,
}

var keyActions = map[tcell.Key]action{
	tcell.KeyUp: actUp, tcell.KeyDown: actDown,
	tcell.KeyLeft: actLeft, tcell.KeyRight: actRight,
	tcell.KeyEscape: actPause,
}

// KeyInput turns terminal key and mouse events into polled InputState.
// It implements game.InputSource. Not safe for concurrent use: feed events
// and poll from the same loop.
type KeyInput struct {
	held [actionCount]int

	// Pointer in world pixels.
	px, py float64
	// One-shot edge keys fire once and then release on the next poll.
	edges [actionCount]bool
}

// HandleKey records a key press.
func (k *KeyInput) HandleKey(ev *tcell.EventKey) {
	var a action
	var ok bool
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		if unicode.IsUpper(r) {
			k.held[actSprint] = holdTicks
			r = unicode.ToLower(r)
		}
		a, ok = runeActions[r]
	} else {
		a, ok = keyActions[ev.Key()]
	}
	if !ok {
		return
	}
	switch a {
	case actInteract, actPause:
		k.edges[a] = true
	default:
		k.held[a] = holdTicks
	}
}

// SetPointer moves the aim point in world coordinates.
func (k *KeyInput) SetPointer(x, y float64) {
	k.px, k.py = x, y
}

// Fire holds the trigger as a mouse button press would.
func (k *KeyInput) Fire() {
	k.held[actFire] = holdTicks
}

// Poll implements game.InputSource.
func (k *KeyInput) Poll() game.InputState {
	in := game.InputState{
		Up:          k.held[actUp] > 0,
		Down:        k.held[actDown] > 0,
		Left:        k.held[actLeft] > 0,
		Right:       k.held[actRight] > 0,
		Sprint:      k.held[actSprint] > 0,
		Reload:      k.held[actReload] > 0,
		Interact:    k.edges[actInteract],
		Pause:       k.edges[actPause],
		PointerX:    k.px,
		PointerY:    k.py,
		PointerDown: k.held[actFire] > 0,
	}
	for i := range k.held {
		if k.held[i] > 0 {
			k.held[i]--
		}
	}
	k.edges = [actionCount]bool{}
	return in
}
