// Package screen is the ebiten desktop front-end: it turns keyboard and
// mouse into simulation input and draws the snapshots it is handed.
package screen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"

	"github.com/Garsondee/vice-streets/internal/game"
	"github.com/Garsondee/vice-streets/internal/storage"
)

const (
	quicksaveName = "quicksave"
	toastTicks    = 120
	reportTicks   = 300
)

// Saver is the subset of storage the front-end needs.
type Saver interface {
	SaveGame(ctx context.Context, name string, st *game.State) (storage.SaveSlot, error)
	FindSave(ctx context.Context, name string) (storage.SaveSlot, error)
	LoadGame(ctx context.Context, id string) (*game.State, error)
}

// Game adapts a Sim to ebiten.Game. It is the sim's input source, renderer
// and UI shell.
type Game struct {
	sim   *game.Sim
	input *Input
	saves Saver
	log   zerolog.Logger

	width, height int

	snap     *game.State
	hud      game.HUD
	showShop bool

	toast      string
	toastTicks int

	copyText func(string) error
}

// New creates the front-end for a world of w×h pixels. saves may be nil to
// disable quicksave.
func New(w, h int, saves Saver, log zerolog.Logger) *Game {
	return &Game{
		input:    &Input{Bindings: DefaultBindings},
		saves:    saves,
		log:      log,
		width:    w,
		height:   h,
		showShop: true,
		copyText: clipboard.WriteAll,
	}
}

// SimOptions wires the front-end into game.New.
func (g *Game) SimOptions() []game.Option {
	return []game.Option{
		game.WithInput(g.input),
		game.WithRenderer(g),
		game.WithUIShell(g),
	}
}

// Bind attaches the sim built with SimOptions.
func (g *Game) Bind(s *game.Sim) {
	g.sim = s
	g.snap = s.Snapshot()
	g.hud = s.HUD()
}

// Render implements game.Renderer.
func (g *Game) Render(snap *game.State) { g.snap = snap }

// Show implements game.UIShell.
func (g *Game) Show(hud game.HUD) { g.hud = hud }

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.sim == nil {
		return errors.New("screen: no simulation bound")
	}
	g.handleMeta(inpututil.IsKeyJustPressed)
	g.sim.Update()
	if g.toastTicks > 0 {
		g.toastTicks--
	}
	return nil
}

var shopKeys = []ebiten.Key{ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4}

// handleMeta processes keys the simulation does not see: run control,
// the armory and save slots. justPressed is injectable for tests.
func (g *Game) handleMeta(justPressed func(ebiten.Key) bool) {
	switch g.sim.Status() {
	case game.StateMenu, game.StateGameOver:
		if justPressed(ebiten.KeyEnter) {
			g.sim.Start()
		}
	case game.StatePaused:
		if justPressed(ebiten.KeyM) {
			g.sim.ShowMenu()
		}
	case game.StatePlaying:
		if justPressed(ebiten.KeyTab) {
			g.showShop = !g.showShop
		}
		catalog := g.sim.Catalog()
		for i, k := range shopKeys {
			if i < len(catalog) && justPressed(k) {
				g.shop(catalog[i])
			}
		}
	}

	if justPressed(ebiten.KeyF5) {
		g.quicksave()
	}
	if justPressed(ebiten.KeyF9) {
		g.quickload()
	}
	if justPressed(ebiten.KeyF8) {
		g.copyReport()
	}
}

func (g *Game) shop(w game.Weapon) {
	err := g.sim.PurchaseOrEquip(w.ID)
	switch {
	case err == nil:
		g.notify("%s ready", w.Name)
	case errors.Is(err, game.ErrInsufficientFunds):
		g.notify("%s costs $%d", w.Name, w.Cost)
	default:
		g.log.Debug().Err(err).Str("weapon", string(w.ID)).Msg("shop rejected")
	}
}

func (g *Game) quicksave() {
	if g.saves == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	slot, err := g.saves.SaveGame(ctx, quicksaveName, g.sim.Snapshot())
	if err != nil {
		g.log.Error().Err(err).Msg("quicksave failed")
		g.notify("save failed")
		return
	}
	g.log.Info().Str("slot", slot.ID).Int("tick", slot.Tick).Msg("quicksaved")
	g.notify("saved")
}

func (g *Game) quickload() {
	if g.saves == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	slot, err := g.saves.FindSave(ctx, quicksaveName)
	if err != nil {
		g.notify("no quicksave")
		return
	}
	st, err := g.saves.LoadGame(ctx, slot.ID)
	if err == nil {
		err = g.sim.Restore(st)
	}
	if err != nil {
		g.log.Error().Err(err).Msg("quickload failed")
		g.notify("load failed")
		return
	}
	g.snap = g.sim.Snapshot()
	g.hud = g.sim.HUD()
	g.notify("loaded")
}

func (g *Game) copyReport() {
	if err := g.copyText(g.sim.DebugReport(reportTicks)); err != nil {
		g.log.Warn().Err(err).Msg("clipboard write failed")
		g.notify("clipboard unavailable")
		return
	}
	g.notify("debug report copied")
}

func (g *Game) notify(format string, args ...any) {
	g.toast = fmt.Sprintf(format, args...)
	g.toastTicks = toastTicks
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.snap != nil {
		drawWorld(screen, g.snap)
	}
	g.drawHUD(screen)
}

// Layout implements ebiten.Game. The logical screen is the world, so cursor
// positions are already world coordinates.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
