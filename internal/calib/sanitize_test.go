package calib

import (
	"math"
	"testing"
)

// TestSanitizeGain_ClampsRange verifies gains clamp into the allowed range.
func TestSanitizeGain_ClampsRange(t *testing.T) {
	if v, ok := SanitizeGain(1.3); !ok || v != 1.3 {
		t.Fatalf("expected 1.3, got %v ok=%v", v, ok)
	}
	if v, ok := SanitizeGain(0.1); !ok || v != GainMin {
		t.Fatalf("expected clamp to %v, got %v ok=%v", GainMin, v, ok)
	}
	if v, ok := SanitizeGain(9); !ok || v != GainMax {
		t.Fatalf("expected clamp to %v, got %v ok=%v", GainMax, v, ok)
	}
}

// TestSanitizeGain_RejectsNonFinite verifies NaN and inf report no value.
func TestSanitizeGain_RejectsNonFinite(t *testing.T) {
	if _, ok := SanitizeGain(math.NaN()); ok {
		t.Fatalf("expected NaN to be rejected")
	}
	if _, ok := SanitizeGain(math.Inf(1)); ok {
		t.Fatalf("expected +inf to be rejected")
	}
}

// TestSanitizeAnchor_Bounds verifies anchor validation rules.
func TestSanitizeAnchor_Bounds(t *testing.T) {
	limit := AnchorLimit(1920, 1080)
	if limit != 4*1920 {
		t.Fatalf("expected limit %d, got %d", 4*1920, limit)
	}
	if v, ok := SanitizeAnchor(250, limit); !ok || v != 250 {
		t.Fatalf("expected 250, got %v ok=%v", v, ok)
	}
	if _, ok := SanitizeAnchor(0, limit); ok {
		t.Fatalf("expected zero anchor to be rejected")
	}
	if _, ok := SanitizeAnchor(-5, limit); ok {
		t.Fatalf("expected negative anchor to be rejected")
	}
	if _, ok := SanitizeAnchor(float64(limit)+1, limit); ok {
		t.Fatalf("expected over-limit anchor to be rejected")
	}
	if _, ok := SanitizeAnchor(10.5, limit); ok {
		t.Fatalf("expected fractional anchor to be rejected")
	}
}

// TestSanitizeDiagonalPair_QuadrantSigns verifies sign validation per quadrant.
func TestSanitizeDiagonalPair_QuadrantSigns(t *testing.T) {
	limit := 1000
	if d, ok := SanitizeDiagonalPair(QuadrantUR, 70, -70, limit); !ok || d.DX != 70 || d.DY != -70 {
		t.Fatalf("expected valid UR pair, got %+v ok=%v", d, ok)
	}
	if _, ok := SanitizeDiagonalPair(QuadrantUR, 70, 70, limit); ok {
		t.Fatalf("expected UR with positive dy to be rejected")
	}
	if _, ok := SanitizeDiagonalPair(QuadrantDL, 70, 70, limit); ok {
		t.Fatalf("expected DL with positive dx to be rejected")
	}
	if _, ok := SanitizeDiagonalPair(QuadrantDR, 70, 0, limit); ok {
		t.Fatalf("expected zero component to be rejected")
	}
}

// TestClampDiagonal_DragHandlePath verifies clamping preserves sign with 1px floor.
func TestClampDiagonal_DragHandlePath(t *testing.T) {
	limit := 100
	d, ok := ClampDiagonal(QuadrantUR, -30, 40, limit)
	if !ok {
		t.Fatalf("expected clamped value")
	}
	if d.DX != 1 || d.DY != -1 {
		t.Fatalf("expected (1,-1), got %+v", d)
	}

	d, _ = ClampDiagonal(QuadrantDR, 500, 500, limit)
	if d.DX != limit || d.DY != limit {
		t.Fatalf("expected limit clamp, got %+v", d)
	}
}

// TestSanitizeDeadzone_Range verifies the deadzone clamp and rejection rules.
func TestSanitizeDeadzone_Range(t *testing.T) {
	if v, ok := SanitizeDeadzone(0.3); !ok || v != 0.3 {
		t.Fatalf("expected 0.3, got %v ok=%v", v, ok)
	}
	if v, ok := SanitizeDeadzone(2); !ok || v != DeadzoneMax {
		t.Fatalf("expected clamp to %v, got %v ok=%v", DeadzoneMax, v, ok)
	}
	if v, ok := SanitizeDeadzone(-1); !ok || v != 0 {
		t.Fatalf("expected clamp to 0, got %v ok=%v", v, ok)
	}
	if _, ok := SanitizeDeadzone(math.NaN()); ok {
		t.Fatalf("expected NaN to be rejected")
	}
}

// TestSanitizeCenter_InsideSurface verifies center bounds checking.
func TestSanitizeCenter_InsideSurface(t *testing.T) {
	if p, ok := SanitizeCenter(960, 540, 1920, 1080); !ok || p.X != 960 || p.Y != 540 {
		t.Fatalf("expected valid center, got %+v ok=%v", p, ok)
	}
	if _, ok := SanitizeCenter(1920, 540, 1920, 1080); ok {
		t.Fatalf("expected x at width to be rejected")
	}
	if _, ok := SanitizeCenter(-1, 540, 1920, 1080); ok {
		t.Fatalf("expected negative x to be rejected")
	}
}

// TestDefaultDiagonals_ScaleAndSigns verifies defaults derive from anchors.
func TestDefaultDiagonals_ScaleAndSigns(t *testing.T) {
	a := Anchors{Up: 100, Down: 120, Left: 90, Right: 110}
	d := DefaultDiagonals(a)
	want := Diagonals{
		UR: Diagonal{DX: 77, DY: -70},
		DR: Diagonal{DX: 77, DY: 84},
		DL: Diagonal{DX: -63, DY: 84},
		UL: Diagonal{DX: -63, DY: -70},
	}
	if d != want {
		t.Fatalf("expected %+v, got %+v", want, d)
	}
	if !d.Valid(1000) {
		t.Fatalf("expected derived diagonals to be valid")
	}
}

// TestAnchorsValid_RequiresAllFour verifies partial anchors are invalid.
func TestAnchorsValid_RequiresAllFour(t *testing.T) {
	a := Anchors{Up: 100, Down: 120, Left: 90, Right: 110}
	if !a.Valid(1000) {
		t.Fatalf("expected valid anchors")
	}
	a.Left = 0
	if a.Valid(1000) {
		t.Fatalf("expected missing left anchor to invalidate")
	}
}
