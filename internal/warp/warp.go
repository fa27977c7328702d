// Package warp remaps measured pointer angles onto evenly spaced octants.
package warp

import "math"

const (
	// SectorCount is the number of angular sectors around the circle.
	SectorCount = 8
	// SectorSpan is the ideal width of one sector in degrees.
	SectorSpan = 45.0
	// Epsilon is the minimum spacing kept between neighboring bounds.
	Epsilon = 5.0
)

// Bounds holds the eight real-world sector boundary angles in degrees.
// Entries 0, 2, 4 and 6 are pinned to the axis angles 0/90/180/270; the odd
// entries are the adjustable diagonal boundaries.
type Bounds [SectorCount]float64

// Default returns evenly spaced bounds, the identity warp.
func Default() Bounds {
	return Bounds{0, 45, 90, 135, 180, 225, 270, 315}
}

// NormalizeAngle wraps an angle into [0, 360).
func NormalizeAngle(angle float64) float64 {
	angle = math.Mod(angle, 360)
	if angle < 0 {
		angle += 360
	}
	return angle
}

// Valid reports whether the bounds are usable: axis entries pinned, strictly
// increasing, and every neighbor pair at least Epsilon apart (including the
// wraparound from the last entry back to 360).
func (b Bounds) Valid() bool {
	for i := 0; i < SectorCount; i += 2 {
		if b[i] != float64(i)*SectorSpan {
			return false
		}
	}
	for i := 0; i < SectorCount; i++ {
		next := 360.0
		if i+1 < SectorCount {
			next = b[i+1]
		}
		if next-b[i] < Epsilon {
			return false
		}
	}
	return true
}

// Normalize pins the axis entries and clamps each adjustable entry to stay
// at least Epsilon away from both neighbors. Normalizing already-normalized
// bounds returns them unchanged.
func Normalize(b Bounds) Bounds {
	out := b
	for i := 0; i < SectorCount; i += 2 {
		out[i] = float64(i) * SectorSpan
	}
	for i := 1; i < SectorCount; i += 2 {
		lo := out[i-1] + Epsilon
		hi := 360.0 - Epsilon
		if i+1 < SectorCount {
			hi = out[i+1] - Epsilon
		}
		if out[i] < lo {
			out[i] = lo
		}
		if out[i] > hi {
			out[i] = hi
		}
	}
	return out
}

// Warp maps a measured angle onto the ideal evenly spaced octants. It
// returns the warped angle, the sector index, and the position t within the
// sector. Invalid bounds leave the angle unchanged and report ok=false.
func (b Bounds) Warp(angle float64) (ideal float64, sector int, t float64, ok bool) {
	if !b.Valid() {
		return angle, -1, 0, false
	}

	angle = NormalizeAngle(angle)
	for i := 0; i < SectorCount; i++ {
		start := b[i]
		end := 360.0
		if i+1 < SectorCount {
			end = b[i+1]
		}
		if angle < start || angle >= end {
			continue
		}
		span := end - start
		if span < Epsilon {
			span = Epsilon
		}
		t = (angle - start) / span
		if t < 0 {
			t = 0
		}
		if t > 1 {
			t = 1
		}
		idealStart := float64(i) * SectorSpan
		return NormalizeAngle(idealStart + t*SectorSpan), i, t, true
	}

	// Unreachable for valid bounds: b[0] is 0 and the last sector ends at 360.
	return angle, -1, 0, false
}
