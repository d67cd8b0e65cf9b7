package tui

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/Garsondee/vice-streets/internal/game"
)

// Runner drives a Sim from a tcell screen at a fixed frame rate.
type Runner struct {
	screen tcell.Screen
	sim    *game.Sim
	input  *KeyInput
	view   *View
	frame  time.Duration
	log    zerolog.Logger
}

// NewRunner creates the input and view for screen. Pass SimOptions to
// game.New and then Bind the result.
func NewRunner(screen tcell.Screen, frame time.Duration, log zerolog.Logger) *Runner {
	return &Runner{
		screen: screen,
		input:  &KeyInput{},
		view:   NewView(screen),
		frame:  frame,
		log:    log,
	}
}

// SimOptions wires the terminal input and view into game.New.
func (r *Runner) SimOptions() []game.Option {
	return []game.Option{
		game.WithInput(r.input),
		game.WithRenderer(r.view),
		game.WithUIShell(r.view),
	}
}

// Bind attaches the sim to drive.
func (r *Runner) Bind(s *game.Sim) { r.sim = s }

// errQuit ends Run without an error.
var errQuit = errors.New("quit")

// Run loops until ctx ends or the player quits.
func (r *Runner) Run(ctx context.Context) error {
	if r.sim == nil {
		return errors.New("tui: no simulation bound")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r.screen.EnableMouse()
	events := make(chan tcell.Event, 64)
	go r.pump(ctx, events)

	ticker := time.NewTicker(r.frame)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if err := r.handleEvent(ev); errors.Is(err, errQuit) {
				r.log.Info().Int("tick", r.sim.State().Tick).Msg("quit")
				return nil
			}
		case <-ticker.C:
			r.sim.Update()
		}
	}
}

// pump forwards screen events until the screen finalises or ctx ends.
func (r *Runner) pump(ctx context.Context, events chan<- tcell.Event) {
	for {
		ev := r.screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

func (r *Runner) handleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return r.handleKey(ev)
	case *tcell.EventMouse:
		x, y := ev.Position()
		wx, wy := r.view.ToWorld(r.sim.State(), x, y)
		r.input.SetPointer(wx, wy)
		if ev.Buttons()&tcell.Button1 != 0 {
			r.input.Fire()
		}
	case *tcell.EventResize:
		r.screen.Sync()
	}
	return nil
}

func (r *Runner) handleKey(ev *tcell.EventKey) error {
	if ev.Key() == tcell.KeyCtrlC {
		return errQuit
	}
	if ev.Key() == tcell.KeyEnter {
		switch r.sim.Status() {
		case game.StateMenu, game.StateGameOver:
			r.sim.Start()
		}
		return nil
	}
	if ev.Key() == tcell.KeyRune {
		switch ru := ev.Rune(); {
		case ru == 'q' && r.sim.Status() != game.StatePlaying:
			return errQuit
		case ru >= '1' && ru <= '4':
			if r.sim.Status() != game.StatePlaying {
				return nil
			}
			catalog := r.sim.Catalog()
			if i := int(ru - '1'); i < len(catalog) {
				if err := r.sim.PurchaseOrEquip(catalog[i].ID); err != nil {
					r.log.Debug().Err(err).Str("weapon", string(catalog[i].ID)).Msg("shop rejected")
				}
			}
			return nil
		}
	}
	r.input.HandleKey(ev)
	return nil
}
