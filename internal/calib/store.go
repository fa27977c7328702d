// Package calib models per-widget calibration data and its persistence.
package calib

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/frudas24/joybridge/internal/warp"
	"gopkg.in/yaml.v3"
)

// Origin tells change subscribers whether a mutation came from the user or
// from programmatic rehydration. Restores must not trigger side effects such
// as overlay refresh loops.
type Origin int

const (
	// OriginUser marks a user-driven edit.
	OriginUser Origin = iota
	// OriginRestore marks programmatic rehydration from disk.
	OriginRestore
)

// String returns the origin name.
func (o Origin) String() string {
	if o == OriginRestore {
		return "restore"
	}
	return "user"
}

// ChangeFunc receives calibration change notifications.
type ChangeFunc func(widgetID, field string, origin Origin)

// Store holds one calibration profile per widget, persists them as YAML and
// notifies subscribers on change. Missing files load as an empty store.
type Store struct {
	mu       sync.RWMutex
	path     string
	profiles map[string]Calibration
	tuning   map[string]Gains
	watchers []ChangeFunc
}

// storeFile is the on-disk YAML layout.
type storeFile struct {
	Profiles map[string]Calibration `yaml:"profiles"`
}

// NewStore creates a store backed by the given path.
func NewStore(path string) *Store {
	return &Store{
		path:     path,
		profiles: make(map[string]Calibration),
		tuning:   make(map[string]Gains),
	}
}

// Subscribe registers a change callback. Subscribers are retained for the
// store's lifetime.
func (s *Store) Subscribe(fn ChangeFunc) {
	if fn == nil {
		return
	}
	s.mu.Lock()
	s.watchers = append(s.watchers, fn)
	s.mu.Unlock()
}

// Load reads profiles from disk and notifies subscribers with OriginRestore.
// A missing file leaves the store empty.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	var file storeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parse %s: %w", s.path, err)
	}

	s.mu.Lock()
	if file.Profiles != nil {
		s.profiles = file.Profiles
	}
	ids := make([]string, 0, len(s.profiles))
	for id := range s.profiles {
		ids = append(ids, id)
	}
	s.mu.Unlock()

	for _, id := range ids {
		s.notify(id, "profile", OriginRestore)
	}
	return nil
}

// Save writes all profiles to disk, creating parent directories as needed.
func (s *Store) Save() error {
	s.mu.RLock()
	file := storeFile{Profiles: make(map[string]Calibration, len(s.profiles))}
	for id, c := range s.profiles {
		file.Profiles[id] = c
	}
	s.mu.RUnlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(file)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0o600)
}

// Get returns a copy of the widget's calibration, or defaults when none is
// stored yet.
func (s *Store) Get(widgetID string) Calibration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.profiles[widgetID]; ok {
		return c
	}
	return DefaultCalibration()
}

// Update mutates the widget's calibration through fn and notifies
// subscribers. The field name describes which part changed.
func (s *Store) Update(widgetID, field string, origin Origin, fn func(*Calibration)) {
	s.mu.Lock()
	c, ok := s.profiles[widgetID]
	if !ok {
		c = DefaultCalibration()
	}
	fn(&c)
	s.profiles[widgetID] = c
	s.mu.Unlock()

	s.notify(widgetID, field, origin)
}

// SetCenter stores a calibrated center. A nil point clears it.
func (s *Store) SetCenter(widgetID string, p *Point, origin Origin) {
	s.Update(widgetID, "center", origin, func(c *Calibration) {
		c.Center = p
	})
}

// SetAnchors stores anchor distances and derives default diagonals when none
// are set yet. A nil value clears anchors and diagonals together.
func (s *Store) SetAnchors(widgetID string, a *Anchors, limit int, origin Origin) {
	s.Update(widgetID, "anchors", origin, func(c *Calibration) {
		c.Anchors = a
		if a == nil {
			c.Diagonals = nil
			return
		}
		if c.Diagonals == nil || !c.Diagonals.Valid(limit) {
			d := DefaultDiagonals(*a)
			c.Diagonals = &d
		}
	})
}

// SetDiagonal stores one quadrant offset.
func (s *Store) SetDiagonal(widgetID string, q Quadrant, offset Diagonal, origin Origin) {
	s.Update(widgetID, "diagonals", origin, func(c *Calibration) {
		if c.Diagonals == nil {
			c.Diagonals = &Diagonals{}
		}
		c.Diagonals.Set(q, offset)
	})
}

// SetGains stores the gain pair.
func (s *Store) SetGains(widgetID string, g Gains, origin Origin) {
	s.Update(widgetID, "gains", origin, func(c *Calibration) {
		c.Gains = g
	})
}

// SetGainEnabled toggles gain application.
func (s *Store) SetGainEnabled(widgetID string, enabled bool, origin Origin) {
	s.Update(widgetID, "gains", origin, func(c *Calibration) {
		c.GainEnabled = enabled
	})
}

// TuningGains returns the widget's transient tuning gains, if staged.
func (s *Store) TuningGains(widgetID string) (Gains, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.tuning[widgetID]
	return g, ok
}

// SetTuningGains stages a transient gain pair for live preview. The overlay
// shadows the saved gains until committed or discarded and is never written
// to disk.
func (s *Store) SetTuningGains(widgetID string, g Gains) {
	s.mu.Lock()
	s.tuning[widgetID] = g
	s.mu.Unlock()
	s.notify(widgetID, "tuningGains", OriginUser)
}

// CommitTuningGains promotes the staged overlay into the saved gains. A
// widget without a staged overlay is left untouched.
func (s *Store) CommitTuningGains(widgetID string, origin Origin) {
	s.mu.Lock()
	g, ok := s.tuning[widgetID]
	delete(s.tuning, widgetID)
	s.mu.Unlock()
	if !ok {
		return
	}
	s.SetGains(widgetID, g, origin)
}

// DiscardTuningGains drops the staged overlay without saving it.
func (s *Store) DiscardTuningGains(widgetID string) {
	s.mu.Lock()
	_, ok := s.tuning[widgetID]
	delete(s.tuning, widgetID)
	s.mu.Unlock()
	if ok {
		s.notify(widgetID, "tuningGains", OriginUser)
	}
}

// SetDeadzone stores the deadzone.
func (s *Store) SetDeadzone(widgetID string, dz float64, origin Origin) {
	s.Update(widgetID, "deadzone", origin, func(c *Calibration) {
		c.Deadzone = dz
	})
}

// SetWarp stores normalized angle-warp bounds.
func (s *Store) SetWarp(widgetID string, enabled bool, bounds warp.Bounds, origin Origin) {
	s.Update(widgetID, "warp", origin, func(c *Calibration) {
		c.WarpEnabled = enabled
		c.Warp = bounds
	})
}

// SetAdjust stores the measured direction-correction samples. An empty
// slice clears them.
func (s *Store) SetAdjust(widgetID string, samples []AdjustSample, origin Origin) {
	s.Update(widgetID, "adjust", origin, func(c *Calibration) {
		if len(samples) == 0 {
			c.Adjust = nil
			return
		}
		c.Adjust = append([]AdjustSample(nil), samples...)
	})
}

// SetCancelTarget stores the on-surface cancel-casting position.
func (s *Store) SetCancelTarget(widgetID string, p *Point, origin Origin) {
	s.Update(widgetID, "cancelTarget", origin, func(c *Calibration) {
		c.CancelTarget = p
	})
}

// SetEllipsePoint stores one captured cardinal of the perspective region.
// A nil point clears the whole capture.
func (s *Store) SetEllipsePoint(widgetID, name string, p *Point, origin Origin) {
	s.Update(widgetID, "ellipse", origin, func(c *Calibration) {
		if p == nil {
			c.Ellipse = nil
			return
		}
		if c.Ellipse == nil {
			c.Ellipse = &EllipsePoints{}
		}
		switch name {
		case "center":
			c.Ellipse.Center = p
		case "north":
			c.Ellipse.North = p
		case "south":
			c.Ellipse.South = p
		case "west":
			c.Ellipse.West = p
		case "east":
			c.Ellipse.East = p
		}
	})
}

// SetFlat stores the squashed-circle region parameters. A nil value clears
// the model.
func (s *Store) SetFlat(widgetID string, f *FlatParams, origin Origin) {
	s.Update(widgetID, "flatDisc", origin, func(c *Calibration) {
		if f == nil {
			c.Flat = nil
			return
		}
		v := *f
		c.Flat = &v
	})
}

// SetCastTiming stores the skill cast-timing mode name.
func (s *Store) SetCastTiming(widgetID, timing string, origin Origin) {
	s.Update(widgetID, "castTiming", origin, func(c *Calibration) {
		c.CastTiming = timing
	})
}

// notify invokes subscribers outside the store lock.
func (s *Store) notify(widgetID, field string, origin Origin) {
	s.mu.RLock()
	watchers := make([]ChangeFunc, len(s.watchers))
	copy(watchers, s.watchers)
	s.mu.RUnlock()

	for _, fn := range watchers {
		fn(widgetID, field, origin)
	}
}
