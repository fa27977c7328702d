package warp

import (
	"math"
	"testing"
)

// TestWarp_IdentityOnDefaultBounds verifies default bounds leave angles alone.
func TestWarp_IdentityOnDefaultBounds(t *testing.T) {
	b := Default()
	for _, angle := range []float64{0, 10, 44.9, 45, 90, 135.5, 270, 359.9} {
		ideal, _, _, ok := b.Warp(angle)
		if !ok {
			t.Fatalf("warp failed for %v", angle)
		}
		if math.Abs(ideal-angle) > 1e-9 {
			t.Fatalf("expected identity for %v, got %v", angle, ideal)
		}
	}
}

// TestWarp_RemapsSectorBoundary verifies a shifted diagonal bound remaps linearly.
func TestWarp_RemapsSectorBoundary(t *testing.T) {
	b := Default()
	b[1] = 60 // first diagonal measured at 60 instead of 45

	// The measured boundary itself maps onto the ideal 45.
	ideal, sector, tt, ok := b.Warp(60)
	if !ok || sector != 1 {
		t.Fatalf("expected sector 1, got sector=%d ok=%v", sector, ok)
	}
	if math.Abs(ideal-45) > 1e-9 || tt != 0 {
		t.Fatalf("expected ideal 45 at t=0, got %v at t=%v", ideal, tt)
	}

	// Halfway through the stretched first sector maps onto 22.5.
	ideal, sector, _, ok = b.Warp(30)
	if !ok || sector != 0 {
		t.Fatalf("expected sector 0, got sector=%d ok=%v", sector, ok)
	}
	if math.Abs(ideal-22.5) > 1e-9 {
		t.Fatalf("expected ideal 22.5, got %v", ideal)
	}
}

// TestWarp_Monotonic verifies warped angles never decrease across the circle.
func TestWarp_Monotonic(t *testing.T) {
	b := Bounds{0, 30, 90, 160, 180, 230, 270, 340}
	prev := -1.0
	for i := 0; i < 3600; i++ {
		angle := float64(i) * 0.1
		ideal, _, _, ok := b.Warp(angle)
		if !ok {
			t.Fatalf("warp failed for %v", angle)
		}
		if ideal < prev-1e-9 {
			t.Fatalf("warp not monotonic at %v: %v < %v", angle, ideal, prev)
		}
		prev = ideal
	}
}

// TestWarp_InvalidBoundsPassthrough verifies invalid bounds leave angles unchanged.
func TestWarp_InvalidBoundsPassthrough(t *testing.T) {
	b := Default()
	b[2] = 80 // axis entry moved off 90

	ideal, sector, _, ok := b.Warp(123)
	if ok || sector != -1 {
		t.Fatalf("expected failure for invalid bounds, got sector=%d ok=%v", sector, ok)
	}
	if ideal != 123 {
		t.Fatalf("expected passthrough angle, got %v", ideal)
	}
}

// TestNormalize_Idempotent verifies normalizing twice changes nothing.
func TestNormalize_Idempotent(t *testing.T) {
	in := Bounds{3, 2, 88, 180, 181, 226, 270, 359}
	once := Normalize(in)
	twice := Normalize(once)
	if once != twice {
		t.Fatalf("normalize not idempotent: %v vs %v", once, twice)
	}
	if !once.Valid() {
		t.Fatalf("normalized bounds not valid: %v", once)
	}
}

// TestNormalize_ClampsToEpsilon verifies adjustable entries keep epsilon spacing.
func TestNormalize_ClampsToEpsilon(t *testing.T) {
	in := Default()
	in[1] = 1   // too close to bound 0
	in[7] = 359 // too close to 360 wraparound
	out := Normalize(in)
	if out[1] != Epsilon {
		t.Fatalf("expected %v, got %v", Epsilon, out[1])
	}
	if out[7] != 360-Epsilon {
		t.Fatalf("expected %v, got %v", 360-Epsilon, out[7])
	}
}

// TestNormalizeAngle_Wraps verifies wrap behavior for negatives and overflow.
func TestNormalizeAngle_Wraps(t *testing.T) {
	if got := NormalizeAngle(-90); got != 270 {
		t.Fatalf("expected 270, got %v", got)
	}
	if got := NormalizeAngle(720); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := NormalizeAngle(359.5); got != 359.5 {
		t.Fatalf("expected 359.5, got %v", got)
	}
}
