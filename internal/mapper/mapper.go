// Package mapper projects absolute pointer positions onto a bounded
// virtual-joystick target inside the widget's output circle.
package mapper

import (
	"math"

	"github.com/frudas24/joybridge/internal/calib"
	"github.com/frudas24/joybridge/internal/geometry"
	"github.com/frudas24/joybridge/internal/warp"
)

// Superellipse shape used for the smooth fallback boundary.
const (
	fallbackHardness  = 2.2
	fallbackSharpness = 4.0
)

// DefaultCastRadius is the outer input radius assumed when no anchor
// geometry is calibrated at all.
const DefaultCastRadius = 200.0

// Config describes one widget's mapping setup.
type Config struct {
	// Center is the calibrated input center on the output surface.
	Center geometry.Point
	// WidgetCenter is the on-screen center of the joystick widget itself.
	WidgetCenter geometry.Point
	// OutputRadius is the radius of the widget's output circle.
	OutputRadius float64
	// Gains scales raw pointer offsets per axis before normalization.
	Gains calib.Gains
	// Deadzone is the normalized radial cutoff below which output is zero.
	Deadzone float64
	// Anchors are the optional axis boundary distances.
	Anchors *calib.Anchors
	// Diagonals refine the boundary between anchors; only meaningful when
	// Anchors is fully valid.
	Diagonals *calib.Diagonals
	// SmoothFallback requests the blended superellipse boundary when the
	// diagonal contour is unavailable but anchors are valid.
	SmoothFallback bool
	// WarpEnabled applies the angle warp to the measured direction.
	WarpEnabled bool
	// Warp holds the sector boundary angles.
	Warp warp.Bounds
	// Adjust optionally applies a measured angle/radius correction map.
	Adjust *Adjustment
	// Ellipse switches to the perspective model when set and valid. It
	// bypasses the center/gain path entirely.
	Ellipse *geometry.PerspectiveEllipse
	// Flat switches to the squashed-circle model when set. It ranks below
	// Ellipse and above the anchor boundary chain.
	Flat *geometry.FlatDisc
}

// Mapper converts pointer positions into bounded widget targets. The sampled
// boundary contour is built once per configuration.
type Mapper struct {
	cfg     Config
	contour []geometry.Point
}

// New builds a mapper, sampling the diagonal spline contour when the
// calibration provides one.
func New(cfg Config) *Mapper {
	m := &Mapper{cfg: cfg}
	if cfg.Anchors != nil && cfg.Diagonals != nil {
		m.contour = geometry.Contour(
			cfg.Center,
			cfg.Anchors.Spans(),
			cfg.Diagonals.Offsets(),
			geometry.MinContourSamples,
		)
	}
	return m
}

// WidgetCenter returns the on-screen center of the widget.
func (m *Mapper) WidgetCenter() geometry.Point {
	return m.cfg.WidgetCenter
}

// InputCenter returns the calibrated input center.
func (m *Mapper) InputCenter() geometry.Point {
	return m.cfg.Center
}

// Map projects an absolute pointer position onto the widget's output circle.
// Degenerate geometry never produces an out-of-bounds point: the fail-safe
// result is the widget center.
func (m *Mapper) Map(pointer geometry.Point) geometry.Point {
	cfg := m.cfg

	if cfg.Ellipse != nil && cfg.Ellipse.Valid() {
		return m.mapPerspective(pointer)
	}
	if cfg.Flat != nil {
		return m.mapFlat(pointer)
	}

	rel := pointer.Sub(cfg.Center)
	rel.X *= cfg.Gains.X
	rel.Y *= cfg.Gains.Y
	if cfg.Adjust != nil {
		rel = cfg.Adjust.Apply(rel)
	}

	distance := rel.Len()
	if distance == 0 {
		return cfg.WidgetCenter
	}

	angle := rel.AngleDeg()
	if cfg.WarpEnabled {
		if ideal, _, _, ok := cfg.Warp.Warp(angle); ok {
			angle = ideal
		}
	}
	dir := geometry.UnitFromAngleDeg(angle)

	maxDistance := m.boundaryDistance(dir)
	if maxDistance <= 0 {
		return cfg.WidgetCenter
	}

	ratio := distance / maxDistance
	if ratio > 1 {
		ratio = 1
	}
	ratio = ApplyDeadzone(ratio, cfg.Deadzone)
	if ratio == 0 {
		return cfg.WidgetCenter
	}
	return cfg.WidgetCenter.Add(dir.Scale(ratio * cfg.OutputRadius))
}

// mapPerspective resolves the target through the perspective ellipse. The
// model yields a normalized distance directly, so no boundary query runs.
func (m *Mapper) mapPerspective(pointer geometry.Point) geometry.Point {
	cfg := m.cfg

	angleRad, dist := cfg.Ellipse.PointToAngleDistance(pointer)
	if dist <= 0 {
		return cfg.WidgetCenter
	}
	angle := math.Mod(math.Mod(angleRad*180/math.Pi, 360)+360, 360)
	if cfg.WarpEnabled {
		if ideal, _, _, ok := cfg.Warp.Warp(angle); ok {
			angle = ideal
		}
	}
	dir := geometry.UnitFromAngleDeg(angle)
	return cfg.WidgetCenter.Add(dir.Scale(dist * cfg.OutputRadius))
}

// mapFlat resolves the target through the squashed-circle model. The disc
// yields a normalized distance directly, so no boundary query runs.
func (m *Mapper) mapFlat(pointer geometry.Point) geometry.Point {
	cfg := m.cfg

	angle, ratio := cfg.Flat.PointToAngleRatio(pointer)
	if ratio == 0 {
		return cfg.WidgetCenter
	}
	if cfg.WarpEnabled {
		if ideal, _, _, ok := cfg.Warp.Warp(angle); ok {
			angle = ideal
		}
	}
	ratio = ApplyDeadzone(ratio, cfg.Deadzone)
	if ratio == 0 {
		return cfg.WidgetCenter
	}
	dir := geometry.UnitFromAngleDeg(angle)
	return cfg.WidgetCenter.Add(dir.Scale(ratio * cfg.OutputRadius))
}

// boundaryDistance resolves the distance from center to the boundary along
// dir, falling back from spline to superellipse to the gain ellipse.
func (m *Mapper) boundaryDistance(dir geometry.Point) float64 {
	cfg := m.cfg

	if len(m.contour) > 1 {
		if d, ok := geometry.RayDistance(cfg.Center, dir, m.contour); ok && d > 0 {
			return d
		}
	}
	if cfg.Anchors != nil {
		if cfg.SmoothFallback {
			return geometry.SuperellipseDistance(dir, cfg.Anchors.Spans(), fallbackHardness, fallbackSharpness)
		}
		return quadrantEllipseDistance(dir, *cfg.Anchors)
	}
	// No anchors at all: the gain-scaled offset is bounded by a plain circle.
	return DefaultCastRadius
}

// quadrantEllipseDistance returns the boundary distance of the per-quadrant
// ellipse implied by the anchors. For a unit direction this matches the
// anchor-normalized-vector path exactly.
func quadrantEllipseDistance(dir geometry.Point, a calib.Anchors) float64 {
	rx := float64(a.Right)
	if dir.X < 0 {
		rx = float64(a.Left)
	}
	ry := float64(a.Down)
	if dir.Y < 0 {
		ry = float64(a.Up)
	}
	if rx <= 0 || ry <= 0 {
		return 0
	}
	u := dir.Unit()
	nx := u.X / rx
	ny := u.Y / ry
	n := geometry.Point{X: nx, Y: ny}.Len()
	if n == 0 {
		return 0
	}
	return 1 / n
}

// NormalizedVector is the anchor-normalized-vector path: it scales the
// offset by the per-quadrant anchor distances, clamps the result into the
// unit disc and applies the deadzone. It returns false when the anchors are
// unusable.
func NormalizedVector(offset geometry.Point, a calib.Anchors, deadzone float64) (geometry.Point, bool) {
	rx := float64(a.Right)
	if offset.X < 0 {
		rx = float64(a.Left)
	}
	ry := float64(a.Down)
	if offset.Y < 0 {
		ry = float64(a.Up)
	}
	if rx <= 0 || ry <= 0 {
		return geometry.Point{}, false
	}

	n := geometry.Point{X: offset.X / rx, Y: offset.Y / ry}
	length := n.Len()
	if length == 0 {
		return geometry.Point{}, true
	}
	if length > 1 {
		n = n.Scale(1 / length)
		length = 1
	}

	scaled := ApplyDeadzone(length, deadzone)
	if scaled == 0 {
		return geometry.Point{}, true
	}
	return n.Scale(scaled / length), true
}

// ApplyDeadzone rescales a normalized length so the deadzone maps to 0 and
// 1 stays 1. Lengths below the deadzone collapse to zero.
func ApplyDeadzone(length, deadzone float64) float64 {
	if length < deadzone {
		return 0
	}
	if deadzone > 0 {
		scaled := (length - deadzone) / (1 - deadzone)
		if scaled < 0 {
			return 0
		}
		if scaled > 1 {
			return 1
		}
		return scaled
	}
	if length < 0 {
		return 0
	}
	if length > 1 {
		return 1
	}
	return length
}
