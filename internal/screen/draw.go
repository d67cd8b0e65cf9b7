package screen

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/vice-streets/internal/game"
)

var (
	colGround   = color.RGBA{R: 24, G: 22, B: 30, A: 255}
	colWall     = color.RGBA{R: 70, G: 66, B: 80, A: 255}
	colWallEdge = color.RGBA{R: 110, G: 104, B: 124, A: 220}
	colPlayer   = color.RGBA{R: 80, G: 220, B: 255, A: 255}
	colInvuln   = color.RGBA{R: 255, G: 255, B: 255, A: 160}
	colEvidence = color.RGBA{R: 255, G: 215, B: 0, A: 255}
	colHealth   = color.RGBA{R: 60, G: 220, B: 90, A: 255}
	colAmmo     = color.RGBA{R: 230, G: 170, B: 60, A: 255}
	colBarBack  = color.RGBA{R: 40, G: 10, B: 10, A: 200}
)

var enemyColors = map[game.AIState]color.RGBA{
	game.AIPatrol: {R: 200, G: 80, B: 200, A: 255},
	game.AIChase:  {R: 255, G: 120, B: 40, A: 255},
	game.AIAttack: {R: 255, G: 40, B: 40, A: 255},
}

var coverColors = map[game.CoverKind]color.RGBA{
	game.CoverBarrier:  {R: 150, G: 130, B: 90, A: 255},
	game.CoverConcrete: {R: 120, G: 120, B: 120, A: 255},
	game.CoverCar:      {R: 90, G: 110, B: 150, A: 255},
	game.CoverDumpster: {R: 60, G: 100, B: 60, A: 255},
}

var vehicleColors = map[game.VehicleKind]color.RGBA{
	game.VehiclePolice: {R: 40, G: 70, B: 200, A: 255},
	game.VehicleSports: {R: 230, G: 30, B: 120, A: 255},
	game.VehicleTruck:  {R: 90, G: 90, B: 60, A: 255},
}

// particlePalettes holds the shades each particle kind picks from at spawn.
var particlePalettes = map[game.ParticleKind][]color.RGBA{
	game.ParticleSpark:  {{R: 255, G: 255, B: 180, A: 255}, {R: 255, G: 220, B: 120, A: 255}, {R: 255, G: 200, B: 80, A: 255}},
	game.ParticleBlood:  {{R: 200, G: 20, B: 20, A: 255}, {R: 160, G: 10, B: 10, A: 255}, {R: 230, G: 40, B: 40, A: 255}},
	game.ParticlePickup: {{R: 120, G: 255, B: 140, A: 255}, {R: 80, G: 220, B: 255, A: 255}, {R: 255, G: 255, B: 255, A: 255}},
	game.ParticleMuzzle: {{R: 255, G: 240, B: 160, A: 255}, {R: 255, G: 200, B: 60, A: 255}, {R: 255, G: 255, B: 255, A: 255}},
	game.ParticleFire:   {{R: 255, G: 120, B: 0, A: 255}, {R: 255, G: 60, B: 0, A: 255}, {R: 255, G: 200, B: 0, A: 255}},
}

func fillRect(dst *ebiten.Image, r game.Rect, c color.Color) {
	vector.FillRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), c, false)
}

func faded(c color.RGBA, alpha float64) color.RGBA {
	a := clamp01(alpha)
	return color.RGBA{
		R: uint8(float64(c.R) * a), G: uint8(float64(c.G) * a),
		B: uint8(float64(c.B) * a), A: uint8(float64(c.A) * a),
	}
}

func clamp01(v float64) float64 { return math.Max(0, math.Min(1, v)) }

// healthBar draws a bar of width w above (x,y) filled to frac.
func healthBar(dst *ebiten.Image, x, y, w, frac float64, c color.Color) {
	vector.FillRect(dst, float32(x), float32(y-6), float32(w), 3, colBarBack, false)
	vector.FillRect(dst, float32(x), float32(y-6), float32(w*clamp01(frac)), 3, c, false)
}

// drawBody draws a rotated rectangle body with a heading line.
func drawBody(dst *ebiten.Image, b game.Body, c color.RGBA) {
	cx, cy := b.Center()
	cos, sin := math.Cos(b.Angle), math.Sin(b.Angle)
	hw, hh := b.Width/2, b.Height/2
	corners := [4][2]float64{{-hw, -hh}, {hw, -hh}, {hw, hh}, {-hw, hh}}

	var path vector.Path
	for i, p := range corners {
		x := float32(cx + p[0]*cos - p[1]*sin)
		y := float32(cy + p[0]*sin + p[1]*cos)
		if i == 0 {
			path.MoveTo(x, y)
		} else {
			path.LineTo(x, y)
		}
	}
	path.Close()
	op := &vector.DrawPathOptions{AntiAlias: true}
	op.ColorScale.ScaleWithColor(c)
	vector.FillPath(dst, &path, nil, op)

	hx, hy := cx+cos*hw, cy+sin*hw
	vector.StrokeLine(dst, float32(cx), float32(cy), float32(hx), float32(hy), 2, color.White, true)
}

// drawWorld renders one snapshot.
func drawWorld(dst *ebiten.Image, st *game.State) {
	dst.Fill(colGround)

	for _, w := range st.Walls {
		fillRect(dst, w.Rect, colWall)
		vector.StrokeRect(dst, float32(w.X), float32(w.Y), float32(w.W), float32(w.H), 1, colWallEdge, false)
	}

	for _, o := range st.Cover.Objects {
		c := coverColors[o.Kind]
		if o.Destructible {
			c = faded(c, 0.4+0.6*o.Health/o.MaxHealth)
		}
		fillRect(dst, o.Rect, c)
	}

	for _, ev := range st.Evidence {
		fillRect(dst, ev.Rect, colEvidence)
	}
	for _, pk := range st.Pickups {
		c := colHealth
		if pk.Kind == game.PickupAmmo {
			c = colAmmo
		}
		fillRect(dst, pk.Rect, c)
	}

	for _, v := range st.Vehicles.Free {
		drawBody(dst, v.Body, vehicleColors[v.Kind])
		healthBar(dst, v.X, v.Y, v.Width, v.Health/v.MaxHealth, colHealth)
	}

	for _, e := range st.Enemies {
		drawBody(dst, e.Body, enemyColors[e.State])
		healthBar(dst, e.X, e.Y, e.Width, e.Health/e.MaxHealth, colHealth)
	}

	if v := st.Vehicles.Player; v != nil {
		drawBody(dst, v.Body, vehicleColors[v.Kind])
	} else {
		c := colPlayer
		if st.Player.InvulnerableMs > 0 && st.Tick%8 < 4 {
			c = colInvuln
		}
		drawBody(dst, st.Player.Body, c)
	}

	for _, b := range st.Bullets {
		c := color.RGBA{R: 255, G: 255, B: 120, A: 255}
		if b.Owner == game.OwnerEnemy {
			c = color.RGBA{R: 255, G: 80, B: 80, A: 255}
		}
		vector.FillRect(dst, float32(b.X), float32(b.Y), float32(b.Size), float32(b.Size), c, false)
	}

	for _, p := range st.Particles {
		pal := particlePalettes[p.Kind]
		c := pal[p.Shade%len(pal)]
		vector.FillRect(dst, float32(p.X), float32(p.Y), 2, 2, faded(c, p.Alpha), false)
	}

	for _, ex := range st.Explosions {
		alpha := float64(ex.Life) / float64(ex.MaxLife)
		vector.StrokeCircle(dst, float32(ex.X), float32(ex.Y), float32(ex.Radius), 3,
			faded(color.RGBA{R: 255, G: 140, B: 20, A: 255}, alpha), true)
	}
}
