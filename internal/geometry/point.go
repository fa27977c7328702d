// Package geometry provides boundary-curve math for calibrated input regions.
package geometry

import "math"

// Point is a position or vector in output-surface pixels.
type Point struct {
	X float64
	Y float64
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale returns p scaled by f.
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Len returns the euclidean length of p treated as a vector.
func (p Point) Len() float64 {
	return math.Hypot(p.X, p.Y)
}

// Unit returns p normalized to length 1, or the zero point when p is zero.
func (p Point) Unit() Point {
	l := p.Len()
	if l == 0 {
		return Point{}
	}
	return Point{X: p.X / l, Y: p.Y / l}
}

// AngleDeg returns the direction of p in degrees within [0, 360).
func (p Point) AngleDeg() float64 {
	angle := math.Atan2(p.Y, p.X) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}
	return angle
}

// UnitFromAngleDeg returns the unit vector pointing along angle degrees.
func UnitFromAngleDeg(angle float64) Point {
	rad := angle * math.Pi / 180
	return Point{X: math.Cos(rad), Y: math.Sin(rad)}
}
