package mapper

import (
	"math"
	"testing"

	"github.com/frudas24/joybridge/internal/calib"
	"github.com/frudas24/joybridge/internal/geometry"
	"github.com/frudas24/joybridge/internal/warp"
)

func testConfig() Config {
	anchors := &calib.Anchors{Up: 100, Down: 120, Left: 90, Right: 110}
	diagonals := calib.DefaultDiagonals(*anchors)
	return Config{
		Center:       geometry.Point{X: 400, Y: 300},
		WidgetCenter: geometry.Point{X: 400, Y: 300},
		OutputRadius: 80,
		Gains:        calib.Gains{X: 1, Y: 1},
		Anchors:      anchors,
		Diagonals:    &diagonals,
	}
}

// TestMapper_AxisRatio checks the cardinal case: a pointer halfway to the
// up anchor lands halfway up the output circle.
func TestMapper_AxisRatio(t *testing.T) {
	m := New(testConfig())
	got := m.Map(geometry.Point{X: 400, Y: 250})

	want := geometry.Point{X: 400, Y: 300 - 0.5*80}
	if math.Abs(got.X-want.X) > 1 || math.Abs(got.Y-want.Y) > 1 {
		t.Fatalf("Map() = %+v, want about %+v", got, want)
	}
}

// TestMapper_ClampsToOutputCircle verifies that pointers beyond the boundary
// saturate at the output radius.
func TestMapper_ClampsToOutputCircle(t *testing.T) {
	m := New(testConfig())
	got := m.Map(geometry.Point{X: 400 + 500, Y: 300})

	dist := got.Sub(geometry.Point{X: 400, Y: 300}).Len()
	if math.Abs(dist-80) > 0.5 {
		t.Fatalf("clamped distance = %v, want 80", dist)
	}
}

// TestMapper_CenterIsFailSafe checks that a pointer exactly on the center
// maps to the widget center.
func TestMapper_CenterIsFailSafe(t *testing.T) {
	m := New(testConfig())
	got := m.Map(geometry.Point{X: 400, Y: 300})
	if got != (geometry.Point{X: 400, Y: 300}) {
		t.Fatalf("Map(center) = %+v, want widget center", got)
	}
}

// TestMapper_DeadzoneCollapsesToCenter verifies small offsets collapse to
// the widget center and the remainder rescales to the full range.
func TestMapper_DeadzoneCollapsesToCenter(t *testing.T) {
	cfg := testConfig()
	cfg.Deadzone = 0.5
	m := New(cfg)

	inside := m.Map(geometry.Point{X: 400, Y: 300 - 40})
	if inside != cfg.WidgetCenter {
		t.Fatalf("inside deadzone mapped to %+v, want widget center", inside)
	}

	edge := m.Map(geometry.Point{X: 400, Y: 300 - 100})
	dist := edge.Sub(cfg.WidgetCenter).Len()
	if math.Abs(dist-80) > 1 {
		t.Fatalf("boundary distance = %v, want 80 after deadzone rescale", dist)
	}
}

// TestMapper_GainStretchesOffset checks that axis gains scale the raw offset
// before normalization.
func TestMapper_GainStretchesOffset(t *testing.T) {
	cfg := testConfig()
	cfg.Gains = calib.Gains{X: 1, Y: 2}
	m := New(cfg)

	// 50px up with 2x gain behaves like 100px, saturating the up anchor.
	got := m.Map(geometry.Point{X: 400, Y: 250})
	dist := got.Sub(cfg.WidgetCenter).Len()
	if math.Abs(dist-80) > 1 {
		t.Fatalf("gained distance = %v, want 80", dist)
	}
}

// TestMapper_NoAnchorsUsesDefaultRadius verifies the circular fallback when
// no anchor geometry exists.
func TestMapper_NoAnchorsUsesDefaultRadius(t *testing.T) {
	cfg := testConfig()
	cfg.Anchors = nil
	cfg.Diagonals = nil
	m := New(cfg)

	got := m.Map(geometry.Point{X: 400 + DefaultCastRadius/2, Y: 300})
	want := geometry.Point{X: 400 + 0.5*80, Y: 300}
	if math.Abs(got.X-want.X) > 0.5 || math.Abs(got.Y-want.Y) > 0.5 {
		t.Fatalf("Map() = %+v, want %+v", got, want)
	}
}

// TestMapper_SuperellipseFallback checks the smooth boundary path used when
// no diagonal contour is available.
func TestMapper_SuperellipseFallback(t *testing.T) {
	cfg := testConfig()
	cfg.Diagonals = nil
	cfg.SmoothFallback = true
	m := New(cfg)

	got := m.Map(geometry.Point{X: 400 + 55, Y: 300})
	want := geometry.Point{X: 400 + 0.5*80, Y: 300}
	if math.Abs(got.X-want.X) > 1 || math.Abs(got.Y-want.Y) > 1 {
		t.Fatalf("Map() = %+v, want about %+v", got, want)
	}
}

// TestMapper_WarpRedirectsAngle verifies that a warped direction changes
// where the output lands.
func TestMapper_WarpRedirectsAngle(t *testing.T) {
	cfg := testConfig()
	cfg.WarpEnabled = true
	b := warp.Default()
	b[1] = 60 // the sector boundary nominally at 45 degrees sits at 60
	cfg.Warp = b
	m := New(cfg)

	// 60 degrees measured should map onto the ideal 45-degree diagonal.
	rel := geometry.UnitFromAngleDeg(60).Scale(30)
	got := m.Map(cfg.Center.Add(rel))

	out := got.Sub(cfg.WidgetCenter)
	angle := out.AngleDeg()
	if math.Abs(angle-45) > 0.5 {
		t.Fatalf("warped output angle = %v, want 45", angle)
	}
}

// TestMapper_PerspectiveEllipsePath verifies the perspective model bypasses
// the anchor geometry when captured.
func TestMapper_PerspectiveEllipsePath(t *testing.T) {
	cfg := testConfig()
	cfg.Ellipse = &geometry.PerspectiveEllipse{
		CenterX:   400,
		CenterY:   300,
		RadiusX:   100,
		RadiusY:   100,
		MaxRadius: 1,
		Curve:     geometry.CurveLinear,
		Gamma:     1,
		Scale:     1,
	}
	m := New(cfg)

	got := m.Map(geometry.Point{X: 450, Y: 300})
	want := geometry.Point{X: 400 + 0.5*80, Y: 300}
	if math.Abs(got.X-want.X) > 1e-9 || math.Abs(got.Y-want.Y) > 1e-9 {
		t.Fatalf("Map() = %+v, want %+v", got, want)
	}
}

// TestNormalizedVector_QuadrantAnchors checks the per-quadrant scaling of
// the anchor-normalized path.
func TestNormalizedVector_QuadrantAnchors(t *testing.T) {
	a := calib.Anchors{Up: 100, Down: 120, Left: 90, Right: 110}

	got, ok := NormalizedVector(geometry.Point{X: 0, Y: -50}, a, 0)
	if !ok {
		t.Fatal("NormalizedVector() rejected valid anchors")
	}
	if math.Abs(got.Y-(-0.5)) > 1e-9 || got.X != 0 {
		t.Fatalf("normalized = %+v, want (0, -0.5)", got)
	}

	got, ok = NormalizedVector(geometry.Point{X: 55, Y: 0}, a, 0)
	if !ok || math.Abs(got.X-0.5) > 1e-9 {
		t.Fatalf("normalized = %+v, want (0.5, 0)", got)
	}
}

// TestNormalizedVector_ClampsOutside verifies values past the anchors clamp
// onto the unit circle.
func TestNormalizedVector_ClampsOutside(t *testing.T) {
	a := calib.Anchors{Up: 100, Down: 100, Left: 100, Right: 100}
	got, ok := NormalizedVector(geometry.Point{X: 300, Y: 0}, a, 0)
	if !ok || math.Abs(got.Len()-1) > 1e-9 {
		t.Fatalf("normalized = %+v, want unit length", got)
	}
}

// TestApplyDeadzone_Rescale covers the rescale endpoints.
func TestApplyDeadzone_Rescale(t *testing.T) {
	if got := ApplyDeadzone(0.05, 0.1); got != 0 {
		t.Fatalf("below deadzone = %v, want 0", got)
	}
	if got := ApplyDeadzone(0.1, 0.1); got != 0 {
		t.Fatalf("at deadzone = %v, want 0", got)
	}
	if got := ApplyDeadzone(1, 0.1); got != 1 {
		t.Fatalf("full deflection = %v, want 1", got)
	}
	mid := ApplyDeadzone(0.55, 0.1)
	if math.Abs(mid-0.5) > 1e-9 {
		t.Fatalf("midpoint = %v, want 0.5", mid)
	}
}

// TestAdjustment_InterpolatesAcrossZero checks circular interpolation of
// measured corrections, including the wrap at 0 degrees.
func TestAdjustment_InterpolatesAcrossZero(t *testing.T) {
	adj := NewAdjustment([]Sample{
		{AngleDeg: 350, Offset: 10, Scale: 1},
		{AngleDeg: 10, Offset: -10, Scale: 1},
	})

	offset, _ := adj.At(0)
	if math.Abs(offset) > 1e-9 {
		t.Fatalf("At(0) offset = %v, want 0", offset)
	}
	offset, _ = adj.At(355)
	if math.Abs(offset-5) > 1e-9 {
		t.Fatalf("At(355) offset = %v, want 5", offset)
	}
}

// TestAdjustment_ClampsScale verifies scale corrections stay within the
// supported range.
func TestAdjustment_ClampsScale(t *testing.T) {
	adj := NewAdjustment([]Sample{{AngleDeg: 0, Offset: 0, Scale: 9}})
	_, scale := adj.At(123)
	if scale != 2 {
		t.Fatalf("scale = %v, want clamped 2", scale)
	}
}
