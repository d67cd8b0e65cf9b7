package screen

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/Garsondee/vice-streets/internal/game"
	"github.com/Garsondee/vice-streets/internal/storage"
)

type memSaves struct {
	slots map[string]*game.State
}

func (m *memSaves) SaveGame(_ context.Context, name string, st *game.State) (storage.SaveSlot, error) {
	if m.slots == nil {
		m.slots = map[string]*game.State{}
	}
	m.slots[name] = st
	return storage.SaveSlot{ID: name, Name: name, Tick: st.Tick}, nil
}

func (m *memSaves) FindSave(_ context.Context, name string) (storage.SaveSlot, error) {
	if _, ok := m.slots[name]; !ok {
		return storage.SaveSlot{}, storage.ErrNotFound
	}
	return storage.SaveSlot{ID: name, Name: name}, nil
}

func (m *memSaves) LoadGame(_ context.Context, id string) (*game.State, error) {
	st, ok := m.slots[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return st, nil
}

func keys(ks ...ebiten.Key) func(ebiten.Key) bool {
	return func(k ebiten.Key) bool {
		for _, want := range ks {
			if k == want {
				return true
			}
		}
		return false
	}
}

func newBoundGame(t *testing.T, saves Saver) (*Game, *game.Sim) {
	t.Helper()
	g := New(1024, 768, saves, zerolog.Nop())
	s := game.New(append(g.SimOptions(), game.WithSeed(3))...)
	g.Bind(s)
	return g, s
}

func TestTranslate_MapsBindings(t *testing.T) {
	in := DefaultBindings.Translate(keys(ebiten.KeyW, ebiten.KeyArrowRight, ebiten.KeyShiftLeft, ebiten.KeyE),
		Pointer{X: 10, Y: 20, Down: true})
	want := game.InputState{Up: true, Right: true, Sprint: true, Interact: true, PointerX: 10, PointerY: 20, PointerDown: true}
	if in != want {
		t.Fatalf("input = %+v, want %+v", in, want)
	}
	if in := DefaultBindings.Translate(keys(ebiten.KeyP), Pointer{}); !in.Pause {
		t.Fatal("P should pause")
	}
}

func TestHandleMeta_EnterStartsFromMenu(t *testing.T) {
	g, s := newBoundGame(t, nil)
	g.handleMeta(keys(ebiten.KeyEnter))
	if s.Status() != game.StatePlaying {
		t.Fatalf("status = %s", s.Status())
	}
}

func TestHandleMeta_ShopKeys(t *testing.T) {
	g, s := newBoundGame(t, nil)
	s.Start()

	g.handleMeta(keys(ebiten.Key2))
	if !strings.Contains(g.toast, "costs $500") {
		t.Fatalf("toast = %q", g.toast)
	}

	s.State().Economy.Cash = 600
	g.handleMeta(keys(ebiten.Key2))
	if s.State().Player.Weapon != game.WeaponShotgun || s.State().Economy.Cash != 100 {
		t.Fatalf("after purchase weapon=%s cash=%d", s.State().Player.Weapon, s.State().Economy.Cash)
	}

	g.handleMeta(keys(ebiten.Key1))
	if s.State().Player.Weapon != game.WeaponPistol {
		t.Fatal("key 1 should re-equip the pistol")
	}
}

func TestQuicksaveAndLoad(t *testing.T) {
	saves := &memSaves{}
	g, s := newBoundGame(t, saves)
	s.Start()
	for i := 0; i < 10; i++ {
		s.Tick(game.InputState{Right: true})
	}
	g.handleMeta(keys(ebiten.KeyF5))
	x := s.State().Player.X

	for i := 0; i < 10; i++ {
		s.Tick(game.InputState{Down: true})
	}
	g.handleMeta(keys(ebiten.KeyF9))
	if s.State().Tick != 10 || s.State().Player.X != x {
		t.Fatalf("after quickload tick=%d x=%.1f, want 10 and %.1f", s.State().Tick, s.State().Player.X, x)
	}
	if g.toast != "loaded" {
		t.Fatalf("toast = %q", g.toast)
	}
}

func TestQuickload_WithoutSave(t *testing.T) {
	g, _ := newBoundGame(t, &memSaves{})
	g.handleMeta(keys(ebiten.KeyF9))
	if g.toast != "no quicksave" {
		t.Fatalf("toast = %q", g.toast)
	}
}

func TestCopyReport(t *testing.T) {
	g, _ := newBoundGame(t, nil)
	var copied string
	g.copyText = func(s string) error { copied = s; return nil }
	g.handleMeta(keys(ebiten.KeyF8))
	if !strings.Contains(copied, "debug report") {
		t.Fatalf("copied %q", copied)
	}

	g.copyText = func(string) error { return errors.New("no display") }
	g.handleMeta(keys(ebiten.KeyF8))
	if g.toast != "clipboard unavailable" {
		t.Fatalf("toast = %q", g.toast)
	}
}

func TestShopLines_StatusColumn(t *testing.T) {
	lines := shopLines(game.DefaultCatalog(), 600)
	if len(lines) != 5 {
		t.Fatalf("lines = %d", len(lines))
	}
	if !strings.Contains(lines[1], "EQUIPPED") || !strings.Contains(lines[2], "$500") || !strings.Contains(lines[3], "need $200") {
		t.Fatalf("shop lines:\n%s", strings.Join(lines, "\n"))
	}
}

func TestHUDLines_Driving(t *testing.T) {
	lines := hudLines(game.HUD{Mode: game.ModeDriving, VehicleName: "Police Cruiser", VehicleHealthPct: 50, InCover: false})
	if !strings.Contains(strings.Join(lines, "\n"), "Police Cruiser  50%") {
		t.Fatalf("hud lines:\n%s", strings.Join(lines, "\n"))
	}
}

func TestHandleMeta_ShopClosedOutsidePlay(t *testing.T) {
	g, s := newBoundGame(t, nil)
	s.State().Economy.Cash = 600

	g.handleMeta(keys(ebiten.Key2)) // menu
	s.Start()
	s.TogglePause()
	g.handleMeta(keys(ebiten.Key2)) // paused

	st := s.State()
	if st.Player.Weapon != game.WeaponPistol || st.Economy.Cash != 600 {
		t.Fatalf("shop acted while frozen: weapon=%s cash=%d", st.Player.Weapon, st.Economy.Cash)
	}
}
