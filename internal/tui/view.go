// Package tui is a terminal front-end drawn with tcell. The world is scaled
// down to the terminal's cell grid; the bottom row is the status line.
package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/vice-streets/internal/game"
)

var (
	styleWall     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleCover    = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	styleEvidence = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	stylePickup   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	stylePlayer   = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleVehicle  = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	styleBullet   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleBoom     = tcell.StyleDefault.Foreground(tcell.ColorOrange)
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorFuchsia)
)

var enemyStyles = map[game.AIState]tcell.Style{
	game.AIPatrol: tcell.StyleDefault.Foreground(tcell.ColorPurple),
	game.AIChase:  tcell.StyleDefault.Foreground(tcell.ColorDarkOrange),
	game.AIAttack: tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
}

// View implements game.Renderer and game.UIShell on a tcell screen.
type View struct {
	screen tcell.Screen
	hud    game.HUD
}

// NewView draws onto screen, which must already be initialized.
func NewView(screen tcell.Screen) *View {
	return &View{screen: screen}
}

// cellOf maps world pixels to a cell in the playfield rows.
func (v *View) cellOf(st *game.State, x, y float64) (int, int, bool) {
	cols, rows := v.screen.Size()
	rows-- // status line
	if cols <= 0 || rows <= 0 {
		return 0, 0, false
	}
	cx := int(x * float64(cols) / st.Width)
	cy := int(y * float64(rows) / st.Height)
	if cx < 0 || cy < 0 || cx >= cols || cy >= rows {
		return 0, 0, false
	}
	return cx, cy, true
}

// ToWorld maps a cell back to the world pixel at its centre.
func (v *View) ToWorld(st *game.State, cx, cy int) (float64, float64) {
	cols, rows := v.screen.Size()
	rows--
	if cols <= 0 || rows <= 0 {
		return 0, 0
	}
	return (float64(cx) + 0.5) * st.Width / float64(cols), (float64(cy) + 0.5) * st.Height / float64(rows)
}

func (v *View) put(st *game.State, x, y float64, r rune, style tcell.Style) {
	if cx, cy, ok := v.cellOf(st, x, y); ok {
		v.screen.SetContent(cx, cy, r, nil, style)
	}
}

func (v *View) fill(st *game.State, rect game.Rect, r rune, style tcell.Style) {
	x0, y0, ok0 := v.cellOf(st, max(rect.X, 0), max(rect.Y, 0))
	x1, y1, ok1 := v.cellOf(st, min(rect.X+rect.W, st.Width-1), min(rect.Y+rect.H, st.Height-1))
	if !ok0 || !ok1 {
		return
	}
	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			v.screen.SetContent(cx, cy, r, nil, style)
		}
	}
}

// Render implements game.Renderer.
func (v *View) Render(st *game.State) {
	v.screen.Clear()
	for _, w := range st.Walls {
		v.fill(st, w.Rect, '█', styleWall)
	}
	for _, o := range st.Cover.Objects {
		v.fill(st, o.Rect, '▒', styleCover)
	}
	for _, ev := range st.Evidence {
		x, y := ev.Center()
		v.put(st, x, y, '$', styleEvidence)
	}
	for _, pk := range st.Pickups {
		x, y := pk.Center()
		v.put(st, x, y, '+', stylePickup)
	}
	for _, veh := range st.Vehicles.Free {
		x, y := veh.Center()
		v.put(st, x, y, 'V', styleVehicle)
	}
	for _, e := range st.Enemies {
		x, y := e.Center()
		v.put(st, x, y, 'E', enemyStyles[e.State])
	}
	for _, b := range st.Bullets {
		v.put(st, b.X, b.Y, '·', styleBullet)
	}
	for _, ex := range st.Explosions {
		v.put(st, ex.X, ex.Y, '*', styleBoom)
	}
	if veh := st.Vehicles.Player; veh != nil {
		x, y := veh.Center()
		v.put(st, x, y, '#', stylePlayer)
	} else {
		x, y := st.Player.Center()
		v.put(st, x, y, '@', stylePlayer)
	}
}

// Show implements game.UIShell. It runs after Render each frame, so it
// draws the status line and flushes the screen.
func (v *View) Show(h game.HUD) {
	v.hud = h
	v.drawStatus()
	v.screen.Show()
}

// StatusLine formats the bottom row.
func StatusLine(h game.HUD) string {
	switch h.Status {
	case game.StateMenu:
		return " VICE STREETS  [Enter] start  [q] quit"
	case game.StatePaused:
		return " PAUSED  [p] resume  [q] quit"
	case game.StateGameOver:
		return fmt.Sprintf(" BUSTED  score %d  [Enter] new run  [q] quit", h.Score)
	}
	s := fmt.Sprintf(" L%d HP %.0f%% %s %d/%d $%d %s",
		h.Level, h.HealthPct, h.WeaponName, h.Ammo, h.MaxAmmo, h.Cash, h.Objective)
	if h.Mode == game.ModeDriving {
		s += fmt.Sprintf(" | %s %.0f%%", h.VehicleName, h.VehicleHealthPct)
	}
	if h.InCover {
		s += " | COVER"
	}
	return s
}

func (v *View) drawStatus() {
	cols, rows := v.screen.Size()
	y := rows - 1
	line := []rune(StatusLine(v.hud))
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(line) {
			r = line[x]
		}
		v.screen.SetContent(x, y, r, nil, styleStatus)
	}
}

var (
	_ game.Renderer = (*View)(nil)
	_ game.UIShell  = (*View)(nil)
)
