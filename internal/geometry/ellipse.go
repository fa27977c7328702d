// Package geometry provides boundary-curve math for calibrated input regions.
package geometry

import "math"

// CurveMode selects how a normalized radius is shaped before output.
type CurveMode string

const (
	// CurveLinear leaves the radius unchanged.
	CurveLinear CurveMode = "linear"
	// CurveGamma raises the radius to the configured gamma exponent.
	CurveGamma CurveMode = "gamma"
	// CurveSmoothstep applies the cubic smoothstep shaping.
	CurveSmoothstep CurveMode = "smoothstep"
)

// PerspectiveEllipse maps screen points onto a perspective-corrected circle.
// It models a targeting region that appears elliptical and off-center due to
// camera skew, and converts between screen points and (angle, distance)
// pairs on the corrected unit circle.
type PerspectiveEllipse struct {
	CenterX   float64
	CenterY   float64
	RadiusX   float64
	RadiusY   float64
	DXBias    float64
	DYBias    float64
	Deadzone  float64
	MaxRadius float64
	Curve     CurveMode
	Gamma     float64
	AngleBias float64 // degrees
	Scale     float64
}

// EllipseFromCardinals builds a model from the calibrated center and the four
// cardinal boundary points of the on-screen region.
func EllipseFromCardinals(center, north, south, west, east Point) PerspectiveEllipse {
	return PerspectiveEllipse{
		CenterX:   center.X,
		CenterY:   center.Y,
		RadiusX:   (east.X - west.X) / 2,
		RadiusY:   (south.Y - north.Y) / 2,
		DXBias:    (east.X+west.X)/2 - center.X,
		DYBias:    (south.Y+north.Y)/2 - center.Y,
		MaxRadius: 1,
		Curve:     CurveLinear,
		Gamma:     1,
		Scale:     1,
	}
}

// Valid reports whether the model has usable radii.
func (e PerspectiveEllipse) Valid() bool {
	return e.RadiusX > 0 && e.RadiusY > 0
}

// CorrectedCenter returns the bias-adjusted center.
func (e PerspectiveEllipse) CorrectedCenter() Point {
	return Point{X: e.CenterX + e.DXBias, Y: e.CenterY + e.DYBias}
}

// PointToAngleDistance converts a screen point into a corrected angle
// (radians) and a normalized distance. Distances inside the deadzone map
// to zero.
func (e PerspectiveEllipse) PointToAngleDistance(p Point) (float64, float64) {
	cc := e.CorrectedCenter()
	u := (p.X - cc.X) / e.RadiusX
	v := (p.Y - cc.Y) / e.RadiusY
	rawRadius := math.Hypot(u, v)
	rawAngle := math.Atan2(v, u) + e.AngleBias*math.Pi/180

	if rawRadius <= e.Deadzone {
		return rawAngle, 0
	}

	clamped := math.Min(rawRadius, e.MaxRadius)
	curved := clamped
	if clamped <= 1 {
		curved = e.applyCurve(clamped)
	}
	curved *= e.Scale
	curved = math.Max(0, math.Min(curved, e.MaxRadius))
	return rawAngle, curved
}

// AngleDistanceToPoint converts a corrected angle (radians) and normalized
// distance back into a screen point. It is the inverse of
// PointToAngleDistance outside the deadzone.
func (e PerspectiveEllipse) AngleDistanceToPoint(angle, distance float64) Point {
	distance = math.Max(0, distance)
	if e.Scale > 0 {
		distance /= e.Scale
	}
	distance = math.Min(distance, e.MaxRadius)

	raw := distance
	if distance <= 1 {
		raw = e.inverseCurve(distance)
	}

	cc := e.CorrectedCenter()
	a := angle - e.AngleBias*math.Pi/180
	return Point{
		X: cc.X + e.RadiusX*raw*math.Cos(a),
		Y: cc.Y + e.RadiusY*raw*math.Sin(a),
	}
}

// applyCurve shapes a normalized radius per the configured curve mode.
func (e PerspectiveEllipse) applyCurve(radius float64) float64 {
	switch e.Curve {
	case CurveGamma:
		return math.Pow(radius, math.Max(e.Gamma, 1e-6))
	case CurveSmoothstep:
		return radius * radius * (3 - 2*radius)
	default:
		return radius
	}
}

// inverseCurve inverts applyCurve.
func (e PerspectiveEllipse) inverseCurve(distance float64) float64 {
	switch e.Curve {
	case CurveGamma:
		return math.Pow(distance, 1/math.Max(e.Gamma, 1e-6))
	case CurveSmoothstep:
		return inverseSmoothstep(distance)
	default:
		return distance
	}
}

// inverseSmoothstep is the analytic inverse of x²(3-2x) on [0,1].
func inverseSmoothstep(distance float64) float64 {
	distance = math.Max(0, math.Min(distance, 1))
	return 0.5 - math.Sin(math.Asin(1-2*distance)/3)
}
