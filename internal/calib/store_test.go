package calib

import (
	"path/filepath"
	"testing"
)

// TestStore_LoadMissingFile verifies a missing file loads as empty.
func TestStore_LoadMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nope", "profiles.yaml"))
	if err := s.Load(); err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	c := s.Get("walk")
	if c.Gains != DefaultGains() || c.Deadzone != DeadzoneDefault {
		t.Fatalf("expected defaults for unknown widget, got %+v", c)
	}
}

// TestStore_SaveLoadRoundTrip verifies profiles survive persistence.
func TestStore_SaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	s := NewStore(path)

	s.SetCenter("walk", &Point{X: 960, Y: 540}, OriginUser)
	s.SetAnchors("walk", &Anchors{Up: 100, Down: 120, Left: 90, Right: 110}, 4000, OriginUser)
	s.SetGains("walk", Gains{X: 1.2, Y: 0.8}, OriginUser)
	s.SetDeadzone("walk", 0.15, OriginUser)
	if err := s.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	other := NewStore(path)
	if err := other.Load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	c := other.Get("walk")
	if c.Center == nil || c.Center.X != 960 || c.Center.Y != 540 {
		t.Fatalf("expected center to round-trip, got %+v", c.Center)
	}
	if c.Anchors == nil || *c.Anchors != (Anchors{Up: 100, Down: 120, Left: 90, Right: 110}) {
		t.Fatalf("expected anchors to round-trip, got %+v", c.Anchors)
	}
	if c.Gains != (Gains{X: 1.2, Y: 0.8}) {
		t.Fatalf("expected gains to round-trip, got %+v", c.Gains)
	}
	if c.Deadzone != 0.15 {
		t.Fatalf("expected deadzone to round-trip, got %v", c.Deadzone)
	}
}

// TestStore_SetAnchorsDerivesDiagonals verifies default diagonals appear once.
func TestStore_SetAnchorsDerivesDiagonals(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "profiles.yaml"))
	a := Anchors{Up: 100, Down: 120, Left: 90, Right: 110}
	s.SetAnchors("skill", &a, 4000, OriginUser)

	c := s.Get("skill")
	if c.Diagonals == nil {
		t.Fatalf("expected derived diagonals")
	}
	if *c.Diagonals != DefaultDiagonals(a) {
		t.Fatalf("expected defaults %+v, got %+v", DefaultDiagonals(a), *c.Diagonals)
	}

	// An explicit diagonal must survive a later anchor update.
	s.SetDiagonal("skill", QuadrantUR, Diagonal{DX: 50, DY: -40}, OriginUser)
	s.SetAnchors("skill", &a, 4000, OriginUser)
	c = s.Get("skill")
	if c.Diagonals.UR != (Diagonal{DX: 50, DY: -40}) {
		t.Fatalf("expected explicit diagonal to survive, got %+v", c.Diagonals.UR)
	}
}

// TestStore_ClearAnchorsClearsDiagonals verifies reset removes both fields.
func TestStore_ClearAnchorsClearsDiagonals(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "profiles.yaml"))
	a := Anchors{Up: 100, Down: 120, Left: 90, Right: 110}
	s.SetAnchors("skill", &a, 4000, OriginUser)
	s.SetAnchors("skill", nil, 4000, OriginUser)

	c := s.Get("skill")
	if c.Anchors != nil || c.Diagonals != nil {
		t.Fatalf("expected cleared anchors and diagonals, got %+v %+v", c.Anchors, c.Diagonals)
	}
}

// TestStore_TuningGainsOverlay verifies staged gains shadow the saved pair
// until committed or discarded, and never reach disk.
func TestStore_TuningGainsOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	s := NewStore(path)
	s.SetGains("walk", Gains{X: 1.0, Y: 1.0}, OriginUser)

	s.SetTuningGains("walk", Gains{X: 1.5, Y: 0.8})
	g, ok := s.TuningGains("walk")
	if !ok || g != (Gains{X: 1.5, Y: 0.8}) {
		t.Fatalf("expected staged gains, got %+v ok=%v", g, ok)
	}
	if s.Get("walk").Gains != (Gains{X: 1.0, Y: 1.0}) {
		t.Fatal("staged gains must not touch the saved pair")
	}

	s.DiscardTuningGains("walk")
	if _, ok := s.TuningGains("walk"); ok {
		t.Fatal("expected discard to clear the overlay")
	}
	if s.Get("walk").Gains != (Gains{X: 1.0, Y: 1.0}) {
		t.Fatal("discard must not change the saved pair")
	}

	s.SetTuningGains("walk", Gains{X: 1.5, Y: 0.8})
	s.CommitTuningGains("walk", OriginUser)
	if _, ok := s.TuningGains("walk"); ok {
		t.Fatal("expected commit to clear the overlay")
	}
	if s.Get("walk").Gains != (Gains{X: 1.5, Y: 0.8}) {
		t.Fatalf("expected committed gains, got %+v", s.Get("walk").Gains)
	}

	// Commit with nothing staged is a no-op.
	s.CommitTuningGains("skill", OriginUser)
	if s.Get("skill").Gains != DefaultGains() {
		t.Fatal("empty commit must not change gains")
	}

	if err := s.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	s.SetTuningGains("walk", Gains{X: 0.6, Y: 0.6})
	other := NewStore(path)
	if err := other.Load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if _, ok := other.TuningGains("walk"); ok {
		t.Fatal("staged gains must not persist")
	}
}

// TestStore_NotifiesOrigin verifies subscribers see field names and origins.
func TestStore_NotifiesOrigin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	s := NewStore(path)

	type change struct {
		widget string
		field  string
		origin Origin
	}
	var seen []change
	s.Subscribe(func(widgetID, field string, origin Origin) {
		seen = append(seen, change{widgetID, field, origin})
	})

	s.SetDeadzone("walk", 0.2, OriginUser)
	if len(seen) != 1 || seen[0] != (change{"walk", "deadzone", OriginUser}) {
		t.Fatalf("unexpected notifications: %+v", seen)
	}
	if err := s.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	other := NewStore(path)
	var restored []change
	other.Subscribe(func(widgetID, field string, origin Origin) {
		restored = append(restored, change{widgetID, field, origin})
	})
	if err := other.Load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(restored) != 1 || restored[0].origin != OriginRestore {
		t.Fatalf("expected one restore notification, got %+v", restored)
	}
}
