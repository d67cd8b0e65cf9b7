package game

import (
	"math"
)

// CoverKind is the archetype of a cover object. It only changes size and
// appearance; all kinds share the same mechanics except concrete, which
// cannot be destroyed.
type CoverKind string

const (
	CoverBarrier  CoverKind = "barrier"
	CoverConcrete CoverKind = "concrete"
	CoverCar      CoverKind = "car"
	CoverDumpster CoverKind = "dumpster"
)

// CoverKinds lists the archetypes in generation order.
var CoverKinds = []CoverKind{CoverBarrier, CoverConcrete, CoverCar, CoverDumpster}

var coverSizes = map[CoverKind][2]float64{
	CoverBarrier:  {60, 20},
	CoverConcrete: {40, 40},
	CoverCar:      {50, 25},
	CoverDumpster: {30, 35},
}

const (
	coverHealth       = 100.0
	placementAttempts = 50

	// Protection bands by angular distance between the incoming bullet and
	// the cover angle.
	coverFullArc    = math.Pi / 4
	coverPartialArc = math.Pi / 2
	coverFull       = 0.8
	coverPartial    = 0.4
)

// CoverObject is a piece of street furniture the player can shelter behind.
type CoverObject struct {
	Rect
	Kind         CoverKind `json:"kind"`
	Health       float64   `json:"health"`
	MaxHealth    float64   `json:"maxHealth"`
	Destructible bool      `json:"destructible"`
}

// Cover holds the level's cover objects and the player's current cover state.
type Cover struct {
	Objects       []CoverObject `json:"objects"`
	PlayerInCover bool          `json:"playerInCover"`
	// CoverAngle points from the sheltering cover's centre to the player.
	CoverAngle float64 `json:"coverAngle"`
}

// Protection returns the damage reduction against a bullet travelling along
// angle: 0.8 inside a quarter-pi arc of the cover angle, 0.4 inside a half-pi
// arc, otherwise none. Out of cover it is always 0.
func (c *Cover) Protection(angle float64) float64 {
	if !c.PlayerInCover {
		return 0
	}
	d := math.Abs(math.Remainder(angle-c.CoverAngle, 2*math.Pi))
	switch {
	case d < coverFullArc:
		return coverFull
	case d < coverPartialArc:
		return coverPartial
	default:
		return 0
	}
}

func newCoverObject(x, y float64, kind CoverKind) CoverObject {
	size := coverSizes[kind]
	return CoverObject{
		Rect:         Rect{X: x, Y: y, W: size[0], H: size[1]},
		Kind:         kind,
		Health:       coverHealth,
		MaxHealth:    coverHealth,
		Destructible: kind != CoverConcrete,
	}
}

// generateCover scatters 6+level cover objects away from walls. After the
// retry budget the last candidate is kept even if it overlaps.
func (s *Sim) generateCover() {
	n := 6 + s.st.Level
	objs := make([]CoverObject, 0, n)
	exhausted := 0
	for i := 0; i < n; i++ {
		kind := CoverKinds[s.rng.IntN(len(CoverKinds))]
		size := coverSizes[kind]
		var x, y float64
		for attempt := 0; ; attempt++ {
			x = s.rng.Float64() * (s.st.Width - size[0])
			y = s.rng.Float64() * (s.st.Height - size[1])
			if !CollidesWithWalls(Rect{X: x, Y: y, W: size[0], H: size[1]}, s.st.Walls) {
				break
			}
			if attempt+1 >= placementAttempts {
				exhausted++
				break
			}
		}
		objs = append(objs, newCoverObject(x, y, kind))
	}
	if exhausted > 0 {
		s.log.Debug().Int("count", exhausted).Msg("cover placement retries exhausted")
	}
	s.st.Cover = Cover{Objects: objs}
}

// refreshCover removes destroyed cover and recomputes whether the player is
// sheltering. The first overlapping object wins.
func (s *Sim) refreshCover() {
	c := &s.st.Cover
	kept := c.Objects[:0]
	for _, o := range c.Objects {
		if o.Destructible && o.Health <= 0 {
			cx, cy := o.Center()
			s.spawnExplosion(cx, cy, ExplosionCover)
			s.events.Add(s.st.Tick, "--", "cover", "destroyed", string(o.Kind), 0)
			continue
		}
		kept = append(kept, o)
	}
	c.Objects = kept

	c.PlayerInCover = false
	if s.st.InVehicle() {
		return
	}
	pr := s.st.Player.Rect()
	px, py := s.st.Player.Center()
	for _, o := range c.Objects {
		if Intersects(pr, o.Rect) {
			cx, cy := o.Center()
			c.PlayerInCover = true
			c.CoverAngle = math.Atan2(py-cy, px-cx)
			return
		}
	}
}
