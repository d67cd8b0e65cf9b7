package game

const (
	// losSteps is the number of segments the sight line is split into;
	// losSteps+1 points are probed, both endpoints included.
	losSteps = 20
	// losProbe is the side of the square probe placed at each sample point.
	losProbe = 5
)

// CollidesWithWalls returns true if r overlaps any wall.
func CollidesWithWalls(r Rect, walls []Wall) bool {
	for _, w := range walls {
		if Intersects(r, w.Rect) {
			return true
		}
	}
	return false
}

// HasLineOfSight samples the segment (x1,y1)->(x2,y2) at evenly spaced points
// and returns false as soon as a probe box at a sample overlaps a wall.
// Walls thinner than the sample spacing can slip between probes; the check is
// deliberately approximate.
func HasLineOfSight(x1, y1, x2, y2 float64, walls []Wall) bool {
	for i := 0; i <= losSteps; i++ {
		t := float64(i) / losSteps
		x := x1 + (x2-x1)*t
		y := y1 + (y2-y1)*t
		if CollidesWithWalls(Rect{X: x, Y: y, W: losProbe, H: losProbe}, walls) {
			return false
		}
	}
	return true
}
