package screen

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/vice-streets/internal/game"
)

const (
	lineH = 15
	padX  = 8
	padY  = 6
)

var hudFace = text.NewGoXFace(basicfont.Face7x13)

var (
	colPanel       = color.RGBA{R: 8, G: 6, B: 14, A: 210}
	colPanelBorder = color.RGBA{R: 200, G: 60, B: 160, A: 180}
	colText        = color.RGBA{R: 235, G: 235, B: 245, A: 255}
	colAccent      = color.RGBA{R: 255, G: 90, B: 200, A: 255}
	colWarn        = color.RGBA{R: 255, G: 80, B: 80, A: 255}
)

func drawText(dst *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(dst, s, hudFace, op)
}

// panel draws a framed box sized for lines and writes them in c.
func panel(dst *ebiten.Image, x, y float64, lines []string, c color.Color) {
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	w := float32(maxLen*basicfont.Face7x13.Advance + 2*padX)
	h := float32(len(lines)*lineH + 2*padY)
	vector.FillRect(dst, float32(x), float32(y), w, h, colPanel, false)
	vector.StrokeRect(dst, float32(x), float32(y), w, h, 1, colPanelBorder, false)
	for i, l := range lines {
		drawText(dst, l, x+padX, y+padY+float64(i*lineH), c)
	}
}

// hudLines formats the always-on status panel.
func hudLines(h game.HUD) []string {
	ammo := fmt.Sprintf("%d/%d", h.Ammo, h.MaxAmmo)
	if h.Reloading {
		ammo += " RELOADING"
	}
	lines := []string{
		h.MissionTitle,
		h.Objective,
		fmt.Sprintf("HP %3.0f%%  %s %s", h.HealthPct, h.WeaponName, ammo),
		fmt.Sprintf("$%d  score %d  kills %d", h.Cash, h.Score, h.Kills),
	}
	if h.Mode == game.ModeDriving {
		lines = append(lines, fmt.Sprintf("%s %3.0f%%  [E] exit", h.VehicleName, h.VehicleHealthPct))
	}
	if h.InCover {
		lines = append(lines, "IN COVER")
	}
	return lines
}

// shopLines formats the armory as numbered cards.
func shopLines(catalog []game.Weapon, cash int) []string {
	lines := []string{"ARMORY"}
	for i, w := range catalog {
		status := fmt.Sprintf("$%d", w.Cost)
		switch {
		case w.Selected:
			status = "EQUIPPED"
		case w.Owned:
			status = "OWNED"
		case w.Cost > cash:
			status += " (need $" + fmt.Sprint(w.Cost-cash) + ")"
		}
		lines = append(lines, fmt.Sprintf("[%d] %-13s dmg %2.0f  %s", i+1, w.Name, w.Damage, status))
	}
	return lines
}

func overlayLines(h game.HUD) ([]string, color.Color) {
	switch h.Status {
	case game.StateMenu:
		return []string{"VICE STREETS", "", "[Enter] start", "[F9] load quicksave"}, colAccent
	case game.StatePaused:
		return []string{"PAUSED", "", "[Esc] resume  [M] menu", "[F5] quicksave  [F8] copy debug report"}, colAccent
	case game.StateGameOver:
		return []string{"BUSTED", "", fmt.Sprintf("score %d  level %d", h.Score, h.Level), "[Enter] new run"}, colWarn
	}
	return nil, nil
}

func (g *Game) drawHUD(dst *ebiten.Image) {
	h := g.hud
	panel(dst, 8, 8, hudLines(h), colText)
	if g.showShop && g.snap != nil {
		panel(dst, 8, float64(dst.Bounds().Dy())-float64(6*lineH)-2*padY-8, shopLines(g.snap.Catalog, h.Cash), colText)
	}
	if lines, c := overlayLines(h); lines != nil {
		w, hgt := dst.Bounds().Dx(), dst.Bounds().Dy()
		panel(dst, float64(w)/2-170, float64(hgt)/2-40, lines, c)
	}
	if g.toast != "" && g.toastTicks > 0 {
		ebitenutil.DebugPrintAt(dst, g.toast, 8, dst.Bounds().Dy()-20)
	}
}
