// Package geometry provides boundary-curve math for calibrated input regions.
package geometry

import "math"

// Superellipse parameter limits. The hardness exponent controls corner
// squareness; the blend sharpness controls how quickly the directional
// half-extents take over across quadrants.
const (
	HardnessMin  = 2.0
	HardnessMax  = 4.0
	SharpnessMin = 1.0
	SharpnessMax = 10.0
)

// SuperellipseDistance returns the distance from the center to a blended
// superellipse boundary along the unit direction dir. The per-quadrant radii
// are lerped between the directional half-extents using a tanh weight, which
// keeps the resulting oval continuous even when the spans are asymmetric.
// A zero direction or non-positive spans yield 0.
func SuperellipseDistance(dir Point, spans Spans, hardness, sharpness float64) float64 {
	if dir.X == 0 && dir.Y == 0 {
		return 0
	}
	if spans.Up <= 0 || spans.Down <= 0 || spans.Left <= 0 || spans.Right <= 0 {
		return 0
	}
	p := clampRange(hardness, HardnessMin, HardnessMax)
	k := clampRange(sharpness, SharpnessMin, SharpnessMax)

	u := dir.Unit()
	sx := 0.5 * (1 + math.Tanh(k*u.X))
	sy := 0.5 * (1 + math.Tanh(k*u.Y))
	rx := lerp(spans.Left, spans.Right, sx)
	ry := lerp(spans.Up, spans.Down, sy)

	denom := math.Pow(math.Abs(u.X)/rx, p) + math.Pow(math.Abs(u.Y)/ry, p)
	if denom <= 0 {
		return 0
	}
	return 1 / math.Pow(denom, 1/p)
}

// lerp interpolates linearly between a and b.
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// clampRange bounds v to [lo, hi].
func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
