// Package calib models per-widget calibration data and its persistence.
package calib

import (
	"math"

	"github.com/frudas24/joybridge/internal/geometry"
	"github.com/frudas24/joybridge/internal/warp"
)

// Calibration value limits.
const (
	GainDefault = 1.0
	GainMin     = 0.5
	GainMax     = 2.0

	DeadzoneDefault = 0.1
	DeadzoneMax     = 0.95

	// AnchorMaxMultiplier bounds anchor distances to 4x the larger surface side.
	AnchorMaxMultiplier = 4

	// DiagonalDefaultScale derives default diagonal offsets from anchors.
	DiagonalDefaultScale = 0.7
)

// Point is a calibrated position in absolute output-surface pixels.
type Point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// Anchors holds the four axis-aligned distances from the calibrated center
// to the movement boundary, in pixels. All four must be positive for the
// anchor geometry to be usable.
type Anchors struct {
	Up    int `yaml:"up" json:"up"`
	Down  int `yaml:"down" json:"down"`
	Left  int `yaml:"left" json:"left"`
	Right int `yaml:"right" json:"right"`
}

// Valid reports whether every anchor distance is positive and within limit.
func (a Anchors) Valid(limit int) bool {
	for _, d := range []int{a.Up, a.Down, a.Left, a.Right} {
		if d <= 0 || d > limit {
			return false
		}
	}
	return true
}

// Spans converts the anchors into geometry half-extents.
func (a Anchors) Spans() geometry.Spans {
	return geometry.Spans{
		Up:    float64(a.Up),
		Down:  float64(a.Down),
		Left:  float64(a.Left),
		Right: float64(a.Right),
	}
}

// Quadrant identifies one diagonal boundary quadrant.
type Quadrant string

// Diagonal quadrants in clockwise order starting at upper-right.
const (
	QuadrantUR Quadrant = "ur"
	QuadrantDR Quadrant = "dr"
	QuadrantDL Quadrant = "dl"
	QuadrantUL Quadrant = "ul"
)

// Quadrants lists all diagonal quadrants in boundary order.
func Quadrants() []Quadrant {
	return []Quadrant{QuadrantUR, QuadrantDR, QuadrantDL, QuadrantUL}
}

// Signs returns the required coordinate signs for the quadrant. The Y axis
// points down, so the upper quadrants require a negative dy.
func (q Quadrant) Signs() (sx, sy int) {
	switch q {
	case QuadrantUR:
		return 1, -1
	case QuadrantDR:
		return 1, 1
	case QuadrantDL:
		return -1, 1
	case QuadrantUL:
		return -1, -1
	default:
		return 0, 0
	}
}

// Diagonal is a calibrated boundary offset from the center, in pixels.
type Diagonal struct {
	DX int `yaml:"dx" json:"dx"`
	DY int `yaml:"dy" json:"dy"`
}

// Diagonals holds one boundary offset per diagonal quadrant.
type Diagonals struct {
	UR Diagonal `yaml:"ur" json:"ur"`
	DR Diagonal `yaml:"dr" json:"dr"`
	DL Diagonal `yaml:"dl" json:"dl"`
	UL Diagonal `yaml:"ul" json:"ul"`
}

// Get returns the offset for a quadrant.
func (d Diagonals) Get(q Quadrant) Diagonal {
	switch q {
	case QuadrantUR:
		return d.UR
	case QuadrantDR:
		return d.DR
	case QuadrantDL:
		return d.DL
	case QuadrantUL:
		return d.UL
	default:
		return Diagonal{}
	}
}

// Set stores the offset for a quadrant.
func (d *Diagonals) Set(q Quadrant, offset Diagonal) {
	switch q {
	case QuadrantUR:
		d.UR = offset
	case QuadrantDR:
		d.DR = offset
	case QuadrantDL:
		d.DL = offset
	case QuadrantUL:
		d.UL = offset
	}
}

// Valid reports whether every quadrant offset is non-zero, within limit, and
// carries the quadrant's sign combination.
func (d Diagonals) Valid(limit int) bool {
	for _, q := range Quadrants() {
		off := d.Get(q)
		if _, ok := SanitizeDiagonal(float64(off.DX), limit); !ok {
			return false
		}
		if _, ok := SanitizeDiagonal(float64(off.DY), limit); !ok {
			return false
		}
		if !ValidateQuadrant(q, off.DX, off.DY) {
			return false
		}
	}
	return true
}

// Offsets converts the diagonals into geometry contour offsets.
func (d Diagonals) Offsets() geometry.ContourOffsets {
	return geometry.ContourOffsets{
		UR: geometry.Offset{DX: float64(d.UR.DX), DY: float64(d.UR.DY)},
		DR: geometry.Offset{DX: float64(d.DR.DX), DY: float64(d.DR.DY)},
		DL: geometry.Offset{DX: float64(d.DL.DX), DY: float64(d.DL.DY)},
		UL: geometry.Offset{DX: float64(d.UL.DX), DY: float64(d.UL.DY)},
	}
}

// Gains is the per-axis input correction pair.
type Gains struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

// DefaultGains returns the neutral gain pair.
func DefaultGains() Gains {
	return Gains{X: GainDefault, Y: GainDefault}
}

// Calibration is the full per-widget calibration value set. Each interactive
// widget owns exactly one Calibration; they are never shared.
type Calibration struct {
	Center       *Point         `yaml:"center,omitempty" json:"center,omitempty"`
	Anchors      *Anchors       `yaml:"anchors,omitempty" json:"anchors,omitempty"`
	Diagonals    *Diagonals     `yaml:"diagonals,omitempty" json:"diagonals,omitempty"`
	Gains        Gains          `yaml:"gains" json:"gains"`
	GainEnabled  bool           `yaml:"gainEnabled" json:"gainEnabled"`
	Deadzone     float64        `yaml:"deadzone" json:"deadzone"`
	WarpEnabled  bool           `yaml:"warpEnabled" json:"warpEnabled"`
	Warp         warp.Bounds    `yaml:"warp,flow" json:"warp"`
	CastTiming   string         `yaml:"castTiming,omitempty" json:"castTiming,omitempty"`
	CancelTarget *Point         `yaml:"cancelTarget,omitempty" json:"cancelTarget,omitempty"`
	Ellipse      *EllipsePoints `yaml:"ellipse,omitempty" json:"ellipse,omitempty"`
	Flat         *FlatParams    `yaml:"flatDisc,omitempty" json:"flatDisc,omitempty"`
	Adjust       []AdjustSample `yaml:"adjust,omitempty" json:"adjust,omitempty"`
}

// FlatParams is the simple squashed-circle cast-region model: a math-space
// radius around the calibrated center plus a vertical scale ratio.
type FlatParams struct {
	Radius        float64 `yaml:"radius" json:"radius"`
	VerticalScale float64 `yaml:"verticalScale" json:"verticalScale"`
	YOffset       float64 `yaml:"yOffset,omitempty" json:"yOffset,omitempty"`
}

// Valid reports whether the parameters describe a usable disc.
func (f FlatParams) Valid() bool {
	return !math.IsNaN(f.Radius) && !math.IsInf(f.Radius, 0) &&
		f.Radius > 0 && f.VerticalScale != 0
}

// AdjustSample is one measured direction correction: at the given angle the
// observed direction was off by Offset degrees and the radius by Scale.
type AdjustSample struct {
	Angle  float64 `yaml:"angle" json:"angle"`
	Offset float64 `yaml:"offset" json:"offset"`
	Scale  float64 `yaml:"scale" json:"scale"`
}

// EllipsePoints are the captured cardinal points of a perspective-skewed
// targeting region. The model is only usable once all five are captured.
type EllipsePoints struct {
	Center *Point `yaml:"center,omitempty" json:"center,omitempty"`
	North  *Point `yaml:"north,omitempty" json:"north,omitempty"`
	South  *Point `yaml:"south,omitempty" json:"south,omitempty"`
	West   *Point `yaml:"west,omitempty" json:"west,omitempty"`
	East   *Point `yaml:"east,omitempty" json:"east,omitempty"`
}

// Complete reports whether every cardinal point is captured.
func (e EllipsePoints) Complete() bool {
	return e.Center != nil && e.North != nil && e.South != nil && e.West != nil && e.East != nil
}

// Model builds the perspective ellipse from the captured points.
func (e EllipsePoints) Model() (geometry.PerspectiveEllipse, bool) {
	if !e.Complete() {
		return geometry.PerspectiveEllipse{}, false
	}
	m := geometry.EllipseFromCardinals(
		geometry.Point{X: e.Center.X, Y: e.Center.Y},
		geometry.Point{X: e.North.X, Y: e.North.Y},
		geometry.Point{X: e.South.X, Y: e.South.Y},
		geometry.Point{X: e.West.X, Y: e.West.Y},
		geometry.Point{X: e.East.X, Y: e.East.Y},
	)
	if !m.Valid() {
		return geometry.PerspectiveEllipse{}, false
	}
	return m, true
}

// DefaultCalibration returns a calibration with neutral values.
func DefaultCalibration() Calibration {
	return Calibration{
		Gains:       DefaultGains(),
		GainEnabled: true,
		Deadzone:    DeadzoneDefault,
		Warp:        warp.Default(),
	}
}

// EffectiveGains returns the saved gains, or neutral gains when disabled.
func (c Calibration) EffectiveGains() Gains {
	if !c.GainEnabled {
		return DefaultGains()
	}
	return c.Gains
}

// EffectiveCenter returns the calibrated center, falling back to the surface
// center when none is set.
func (c Calibration) EffectiveCenter(surfaceW, surfaceH int) geometry.Point {
	if c.Center != nil {
		return geometry.Point{X: c.Center.X, Y: c.Center.Y}
	}
	return geometry.Point{X: float64(surfaceW) / 2, Y: float64(surfaceH) / 2}
}

// AnchorLimit returns the maximum allowed anchor distance for a surface.
func AnchorLimit(surfaceW, surfaceH int) int {
	m := surfaceW
	if surfaceH > m {
		m = surfaceH
	}
	return AnchorMaxMultiplier * m
}

// DefaultDiagonals derives quadrant offsets from the anchors at the fixed
// scale, keeping at least one pixel of magnitude per axis.
func DefaultDiagonals(a Anchors) Diagonals {
	up := scaledMagnitude(a.Up)
	down := scaledMagnitude(a.Down)
	left := scaledMagnitude(a.Left)
	right := scaledMagnitude(a.Right)
	return Diagonals{
		UR: Diagonal{DX: right, DY: -up},
		DR: Diagonal{DX: right, DY: down},
		DL: Diagonal{DX: -left, DY: down},
		UL: Diagonal{DX: -left, DY: -up},
	}
}

// scaledMagnitude applies the default diagonal scale with a 1px floor.
func scaledMagnitude(dist int) int {
	v := int(float64(dist)*DiagonalDefaultScale + 0.5)
	if v < 1 {
		v = 1
	}
	return v
}
