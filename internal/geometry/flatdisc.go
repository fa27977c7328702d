// Package geometry provides boundary-curve math for calibrated input regions.
package geometry

import "math"

// DefaultVerticalScale is the ratio between the visual height and the
// circular math space of a perspective-flattened cast region.
const DefaultVerticalScale = 0.745

// FlatDisc is a minimal cast-region model: a circle in math space that is
// vertically squashed on screen. It is a cheaper alternative to the full
// perspective ellipse when only center, radius and a single scale ratio are
// known.
type FlatDisc struct {
	Center        Point
	Radius        float64
	VerticalScale float64
	YOffset       float64
}

// mathCenter is the circle center in math space, offset on the Y axis.
func (d FlatDisc) mathCenter() Point {
	return Point{X: d.Center.X, Y: d.Center.Y + d.YOffset}
}

// valid reports whether the disc can map points at all.
func (d FlatDisc) valid() bool {
	return !math.IsInf(d.Radius, 0) && !math.IsNaN(d.Radius) &&
		d.Radius > 0 && d.VerticalScale != 0
}

// PointToAngleRatio maps a screen point into the disc: the vertical axis is
// unsquashed, and the point's math-space direction and normalized distance
// come back as (angle in degrees, ratio clamped to [0,1]). A degenerate disc
// or a point on the math center yields (0, 0).
func (d FlatDisc) PointToAngleRatio(p Point) (float64, float64) {
	if !d.valid() {
		return 0, 0
	}
	mc := d.mathCenter()
	dx := p.X - mc.X
	dy := (p.Y - mc.Y) / d.VerticalScale
	r := math.Hypot(dx, dy)
	if r == 0 {
		return 0, 0
	}
	angle := math.Mod(math.Atan2(dy, dx)*180/math.Pi+360, 360)
	ratio := r / d.Radius
	if ratio > 1 {
		ratio = 1
	}
	return angle, ratio
}
