// Package calib models per-widget calibration data and its persistence.
package calib

import "math"

// SanitizeGain validates a raw gain value. Non-finite inputs are rejected;
// finite inputs are clamped into [GainMin, GainMax].
func SanitizeGain(raw float64) (float64, bool) {
	if !math.IsInf(raw, 0) && !math.IsNaN(raw) {
		return clamp(raw, GainMin, GainMax), true
	}
	return 0, false
}

// SanitizeAnchor validates a raw anchor distance: finite, integral, positive
// and within limit. Callers treat a false result as "field unset", never as
// zero.
func SanitizeAnchor(raw float64, limit int) (int, bool) {
	v, ok := integral(raw)
	if !ok || v <= 0 || v > limit {
		return 0, false
	}
	return v, true
}

// SanitizeDiagonal validates one raw diagonal component: finite, integral,
// non-zero and within limit.
func SanitizeDiagonal(raw float64, limit int) (int, bool) {
	v, ok := integral(raw)
	if !ok || v == 0 || v > limit || v < -limit {
		return 0, false
	}
	return v, true
}

// SanitizeDiagonalPair validates both components of a diagonal offset and
// its quadrant sign combination. A violated quadrant is rejected outright,
// not clamped.
func SanitizeDiagonalPair(q Quadrant, rawDX, rawDY float64, limit int) (Diagonal, bool) {
	dx, ok := SanitizeDiagonal(rawDX, limit)
	if !ok {
		return Diagonal{}, false
	}
	dy, ok := SanitizeDiagonal(rawDY, limit)
	if !ok {
		return Diagonal{}, false
	}
	if !ValidateQuadrant(q, dx, dy) {
		return Diagonal{}, false
	}
	return Diagonal{DX: dx, DY: dy}, true
}

// SanitizeDeadzone validates a raw deadzone. Non-finite inputs are rejected;
// finite inputs are clamped into [0, DeadzoneMax].
func SanitizeDeadzone(raw float64) (float64, bool) {
	if math.IsInf(raw, 0) || math.IsNaN(raw) {
		return 0, false
	}
	return clamp(raw, 0, DeadzoneMax), true
}

// SanitizeCenter validates a calibrated center: finite and strictly inside
// the surface.
func SanitizeCenter(x, y float64, surfaceW, surfaceH int) (Point, bool) {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return Point{}, false
	}
	if x < 0 || y < 0 || x >= float64(surfaceW) || y >= float64(surfaceH) {
		return Point{}, false
	}
	return Point{X: x, Y: y}, true
}

// ValidateQuadrant reports whether (dx, dy) carries the quadrant's required
// sign combination.
func ValidateQuadrant(q Quadrant, dx, dy int) bool {
	sx, sy := q.Signs()
	if sx == 0 {
		return false
	}
	return dx*sx > 0 && dy*sy > 0
}

// ClampDiagonal forces a dragged offset into its quadrant: components are
// clamped to the limit, the quadrant sign is preserved, and each magnitude
// stays at least one pixel. This is the interactive drag-handle path; unlike
// SanitizeDiagonalPair it never rejects.
func ClampDiagonal(q Quadrant, dx, dy float64, limit int) (Diagonal, bool) {
	sx, sy := q.Signs()
	if sx == 0 {
		return Diagonal{}, false
	}
	return Diagonal{
		DX: clampSigned(dx, sx, limit),
		DY: clampSigned(dy, sy, limit),
	}, true
}

// clampSigned rounds, bounds to [-limit, limit] and forces the sign with a
// minimum magnitude of one.
func clampSigned(v float64, sign, limit int) int {
	value := int(math.Round(v))
	if value > limit {
		value = limit
	}
	if value < -limit {
		value = -limit
	}
	if sign > 0 && value < 1 {
		value = 1
	}
	if sign < 0 && value > -1 {
		value = -1
	}
	return value
}

// integral converts raw to int, rejecting non-finite or fractional values.
func integral(raw float64) (int, bool) {
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return 0, false
	}
	if raw != math.Trunc(raw) {
		return 0, false
	}
	return int(raw), true
}

// clamp bounds v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
