package geometry

import (
	"math"
	"testing"
)

func testEllipse(curve CurveMode) PerspectiveEllipse {
	return PerspectiveEllipse{
		CenterX:   500,
		CenterY:   400,
		RadiusX:   180,
		RadiusY:   120,
		DXBias:    12,
		DYBias:    -8,
		MaxRadius: 1,
		Curve:     curve,
		Gamma:     1.8,
		AngleBias: 15,
		Scale:     1,
	}
}

// TestPerspectiveEllipse_RoundTrip verifies AngleDistanceToPoint inverts
// PointToAngleDistance for every curve mode outside the deadzone.
func TestPerspectiveEllipse_RoundTrip(t *testing.T) {
	for _, curve := range []CurveMode{CurveLinear, CurveGamma, CurveSmoothstep} {
		e := testEllipse(curve)
		for deg := 0.0; deg < 360; deg += 17 {
			for _, r := range []float64{0.15, 0.4, 0.75, 0.99} {
				a := deg * math.Pi / 180
				p := e.AngleDistanceToPoint(a, r)
				gotA, gotR := e.PointToAngleDistance(p)

				if math.Abs(gotR-r) > 1e-6 {
					t.Fatalf("%s: distance round-trip %v -> %v at %v deg", curve, r, gotR, deg)
				}
				diff := math.Mod(gotA-a, 2*math.Pi)
				if diff > math.Pi {
					diff -= 2 * math.Pi
				}
				if diff < -math.Pi {
					diff += 2 * math.Pi
				}
				if math.Abs(diff) > 1e-6 {
					t.Fatalf("%s: angle round-trip %v -> %v", curve, a, gotA)
				}
			}
		}
	}
}

// TestPerspectiveEllipse_DeadzoneZeroes checks points inside the deadzone
// report zero distance.
func TestPerspectiveEllipse_DeadzoneZeroes(t *testing.T) {
	e := testEllipse(CurveLinear)
	e.Deadzone = 0.2

	cc := e.CorrectedCenter()
	_, d := e.PointToAngleDistance(Point{X: cc.X + 0.1*e.RadiusX, Y: cc.Y})
	if d != 0 {
		t.Fatalf("distance inside deadzone = %v, want 0", d)
	}
}

// TestPerspectiveEllipse_FromCardinals checks the model built from cardinal
// boundary points recovers radii and center bias.
func TestPerspectiveEllipse_FromCardinals(t *testing.T) {
	center := Point{X: 500, Y: 400}
	e := EllipseFromCardinals(center,
		Point{X: 510, Y: 290}, // north
		Point{X: 510, Y: 530}, // south
		Point{X: 330, Y: 405}, // west
		Point{X: 690, Y: 405}, // east
	)

	if !e.Valid() {
		t.Fatal("expected valid model")
	}
	if e.RadiusX != 180 || e.RadiusY != 120 {
		t.Fatalf("radii = (%v, %v), want (180, 120)", e.RadiusX, e.RadiusY)
	}
	cc := e.CorrectedCenter()
	if cc.X != 510 || cc.Y != 410 {
		t.Fatalf("corrected center = %+v, want (510, 410)", cc)
	}
}

// TestPerspectiveEllipse_ClampsAtMaxRadius verifies distances saturate at
// the configured ceiling.
func TestPerspectiveEllipse_ClampsAtMaxRadius(t *testing.T) {
	e := testEllipse(CurveLinear)
	cc := e.CorrectedCenter()
	_, d := e.PointToAngleDistance(Point{X: cc.X + 3*e.RadiusX, Y: cc.Y})
	if d != e.MaxRadius {
		t.Fatalf("distance = %v, want clamped to %v", d, e.MaxRadius)
	}
}
