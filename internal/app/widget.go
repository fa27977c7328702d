// Package app wires configuration, widgets, and the control plane together.
package app

import (
	"math"
	"strconv"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"

	"github.com/frudas24/joybridge/internal/calib"
	"github.com/frudas24/joybridge/internal/geometry"
	"github.com/frudas24/joybridge/internal/gesture"
	"github.com/frudas24/joybridge/internal/mapper"
	"github.com/frudas24/joybridge/internal/session"
	"github.com/frudas24/joybridge/internal/touch"
	"github.com/frudas24/joybridge/internal/warp"
)

// machine is the gesture surface both state machines share.
type machine interface {
	Press(pointer geometry.Point)
	Motion(pointer geometry.Point)
	Release()
	Cancel()
}

// Widget binds one calibration profile to one gesture machine. It caches
// the pointer mapper and rebuilds it after any calibration change.
type Widget struct {
	id       string
	store    *calib.Store
	center   geometry.Point
	radius   float64
	surfaceW int
	surfaceH int

	machine machine
	skill   *gesture.Skill

	mu     sync.Mutex
	cached *mapper.Mapper
}

// NewWalkWidget builds the joystick widget.
func NewWalkWidget(id string, store *calib.Store, emitter *touch.Emitter, ids gesture.Allocator, sched gesture.Scheduler, cfg gesture.WalkConfig, center geometry.Point, radius float64) *Widget {
	w := newWidget(id, store, emitter, center, radius)
	w.machine = gesture.NewWalk(id, cfg, emitter, ids, sched, w.Mapper)
	return w
}

// NewSkillWidget builds the skill-casting widget.
func NewSkillWidget(id string, store *calib.Store, emitter *touch.Emitter, ids gesture.Allocator, cfg gesture.SkillConfig, center geometry.Point, radius float64) *Widget {
	w := newWidget(id, store, emitter, center, radius)
	w.skill = gesture.NewSkill(id, cfg, emitter, ids, w.Mapper, func() gesture.CastTiming {
		return gesture.ParseCastTiming(store.Get(id).CastTiming)
	})
	w.machine = w.skill
	return w
}

func newWidget(id string, store *calib.Store, emitter *touch.Emitter, center geometry.Point, radius float64) *Widget {
	surfaceW, surfaceH := emitter.SurfaceSize()
	return &Widget{
		id:       id,
		store:    store,
		center:   center,
		radius:   radius,
		surfaceW: surfaceW,
		surfaceH: surfaceH,
	}
}

// ID returns the widget identifier.
func (w *Widget) ID() string { return w.id }

// Press forwards a pointer press to the gesture machine.
func (w *Widget) Press(pointer geometry.Point) { w.machine.Press(pointer) }

// Motion forwards pointer movement to the gesture machine.
func (w *Widget) Motion(pointer geometry.Point) { w.machine.Motion(pointer) }

// Release forwards the pointer release to the gesture machine.
func (w *Widget) Release() { w.machine.Release() }

// Cancel aborts any in-flight gesture.
func (w *Widget) Cancel() { w.machine.Cancel() }

// Close shuts the gesture machine down.
func (w *Widget) Close() {
	if w.skill != nil {
		w.skill.Close()
		return
	}
	w.machine.Cancel()
}

// CancelCast forwards the cancel-casting interrupt. A zero target falls back
// to the calibrated cancel position; without either the interrupt is a no-op.
func (w *Widget) CancelCast(target geometry.Point) {
	if w.skill == nil {
		return
	}
	if target == (geometry.Point{}) {
		stored := w.store.Get(w.id).CancelTarget
		if stored == nil {
			return
		}
		target = geometry.Point{X: stored.X, Y: stored.Y}
	}
	w.skill.CancelCast(target)
}

// Invalidate drops the cached mapper so the next gesture sees the latest
// calibration.
func (w *Widget) Invalidate() {
	w.mu.Lock()
	w.cached = nil
	w.mu.Unlock()
}

// Mapper returns the current pointer mapper, rebuilding it when stale.
func (w *Widget) Mapper() gesture.PointMapper {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cached == nil {
		w.cached = w.buildMapper()
	}
	return w.cached
}

func (w *Widget) buildMapper() *mapper.Mapper {
	c := w.store.Get(w.id)
	limit := calib.AnchorLimit(w.surfaceW, w.surfaceH)

	gains := c.EffectiveGains()
	if staged, ok := w.store.TuningGains(w.id); ok {
		gains = staged
	}

	cfg := mapper.Config{
		Center:       c.EffectiveCenter(w.surfaceW, w.surfaceH),
		WidgetCenter: w.center,
		OutputRadius: w.radius,
		Gains:        gains,
		Deadzone:     c.Deadzone,
		WarpEnabled:  c.WarpEnabled,
		Warp:         c.Warp,
	}
	if c.Anchors != nil && c.Anchors.Valid(limit) {
		cfg.Anchors = c.Anchors
		if c.Diagonals != nil && c.Diagonals.Valid(limit) {
			cfg.Diagonals = c.Diagonals
		} else {
			cfg.SmoothFallback = true
		}
	}
	if c.Ellipse != nil {
		if model, ok := c.Ellipse.Model(); ok {
			model.Deadzone = c.Deadzone
			cfg.Ellipse = &model
		}
	}
	if c.Flat != nil && c.Flat.Valid() {
		cfg.Flat = &geometry.FlatDisc{
			Center:        cfg.Center,
			Radius:        c.Flat.Radius,
			VerticalScale: c.Flat.VerticalScale,
			YOffset:       c.Flat.YOffset,
		}
	}
	if len(c.Adjust) > 0 {
		samples := make([]mapper.Sample, len(c.Adjust))
		for i, s := range c.Adjust {
			samples[i] = mapper.Sample{AngleDeg: s.Angle, Offset: s.Offset, Scale: s.Scale}
		}
		cfg.Adjust = mapper.NewAdjustment(samples)
	}
	return mapper.New(cfg)
}

// CalibClick consumes one capture click. It updates exactly one calibration
// field; rejected values change nothing.
func (w *Widget) CalibClick(step string, pointer geometry.Point) bool {
	c := w.store.Get(w.id)
	center := c.EffectiveCenter(w.surfaceW, w.surfaceH)
	limit := calib.AnchorLimit(w.surfaceW, w.surfaceH)

	switch step {
	case session.StepCenter:
		p, ok := calib.SanitizeCenter(pointer.X, pointer.Y, w.surfaceW, w.surfaceH)
		if !ok {
			return false
		}
		w.store.SetCenter(w.id, &p, calib.OriginUser)
		return true

	case session.StepAnchorUp:
		return w.setAnchor(c, limit, center.Y-pointer.Y, func(a *calib.Anchors, v int) { a.Up = v })
	case session.StepAnchorDown:
		return w.setAnchor(c, limit, pointer.Y-center.Y, func(a *calib.Anchors, v int) { a.Down = v })
	case session.StepAnchorLeft:
		return w.setAnchor(c, limit, center.X-pointer.X, func(a *calib.Anchors, v int) { a.Left = v })
	case session.StepAnchorRight:
		return w.setAnchor(c, limit, pointer.X-center.X, func(a *calib.Anchors, v int) { a.Right = v })

	case session.StepDiagonalUR, session.StepDiagonalDR, session.StepDiagonalDL, session.StepDiagonalUL:
		if c.Anchors == nil || !c.Anchors.Valid(limit) {
			return false
		}
		q := quadrantForStep(step)
		// Click coordinates are fractional; the captured offset is rounded
		// to the nearest pixel before validation.
		d, ok := calib.SanitizeDiagonalPair(q, math.Round(pointer.X-center.X), math.Round(pointer.Y-center.Y), limit)
		if !ok {
			return false
		}
		w.store.SetDiagonal(w.id, q, d, calib.OriginUser)
		return true

	case session.StepCancelTarget:
		p, ok := calib.SanitizeCenter(pointer.X, pointer.Y, w.surfaceW, w.surfaceH)
		if !ok {
			return false
		}
		w.store.SetCancelTarget(w.id, &p, calib.OriginUser)
		return true

	case session.StepEllipseCenter, session.StepEllipseNorth, session.StepEllipseSouth,
		session.StepEllipseWest, session.StepEllipseEast:
		p, ok := calib.SanitizeCenter(pointer.X, pointer.Y, w.surfaceW, w.surfaceH)
		if !ok {
			return false
		}
		w.store.SetEllipsePoint(w.id, strings.TrimPrefix(step, "ellipse_"), &p, calib.OriginUser)
		return true
	}
	return false
}

// setAnchor captures one axis distance from a calibration click. The click
// lands on fractional coordinates, so the distance is rounded to the nearest
// pixel; the strict integral check stays on the config path.
func (w *Widget) setAnchor(c calib.Calibration, limit int, raw float64, assign func(*calib.Anchors, int)) bool {
	v, ok := calib.SanitizeAnchor(math.Round(raw), limit)
	if !ok {
		return false
	}
	anchors := calib.Anchors{}
	if c.Anchors != nil {
		anchors = *c.Anchors
	}
	assign(&anchors, v)
	w.store.SetAnchors(w.id, &anchors, limit, calib.OriginUser)
	return true
}

func quadrantForStep(step string) calib.Quadrant {
	switch step {
	case session.StepDiagonalUR:
		return calib.QuadrantUR
	case session.StepDiagonalDR:
		return calib.QuadrantDR
	case session.StepDiagonalDL:
		return calib.QuadrantDL
	default:
		return calib.QuadrantUL
	}
}

// Set updates one calibration field by key. Values go through the same
// sanitizers as capture clicks; rejected values change nothing.
func (w *Widget) Set(key, value string) bool {
	c := w.store.Get(w.id)
	limit := calib.AnchorLimit(w.surfaceW, w.surfaceH)

	switch key {
	case "gain_x", "gain_y":
		raw, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return false
		}
		g, ok := calib.SanitizeGain(raw)
		if !ok {
			return false
		}
		gains := c.Gains
		if key == "gain_x" {
			gains.X = g
		} else {
			gains.Y = g
		}
		w.store.SetGains(w.id, gains, calib.OriginUser)
		return true

	case "tune_gain_x", "tune_gain_y":
		raw, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return false
		}
		g, ok := calib.SanitizeGain(raw)
		if !ok {
			return false
		}
		gains, staged := w.store.TuningGains(w.id)
		if !staged {
			gains = c.EffectiveGains()
		}
		if key == "tune_gain_x" {
			gains.X = g
		} else {
			gains.Y = g
		}
		w.store.SetTuningGains(w.id, gains)
		return true

	case "tune_commit":
		w.store.CommitTuningGains(w.id, calib.OriginUser)
		return true

	case "tune_discard":
		w.store.DiscardTuningGains(w.id)
		return true

	case "gain_enabled":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return false
		}
		w.store.SetGainEnabled(w.id, enabled, calib.OriginUser)
		return true

	case "deadzone":
		raw, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return false
		}
		dz, ok := calib.SanitizeDeadzone(raw)
		if !ok {
			return false
		}
		w.store.SetDeadzone(w.id, dz, calib.OriginUser)
		return true

	case "warp_enabled":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return false
		}
		w.store.SetWarp(w.id, enabled, warp.Normalize(c.Warp), calib.OriginUser)
		return true

	case "cast_timing":
		switch gesture.CastTiming(value) {
		case gesture.CastOnRelease, gesture.CastImmediate, gesture.CastManual:
			w.store.SetCastTiming(w.id, value, calib.OriginUser)
			return true
		}
		return false

	case "anchors_reset":
		w.store.SetAnchors(w.id, nil, limit, calib.OriginUser)
		return true

	case "flat_radius", "flat_scale", "flat_offset_y":
		raw, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsNaN(raw) || math.IsInf(raw, 0) {
			return false
		}
		flat := calib.FlatParams{VerticalScale: geometry.DefaultVerticalScale}
		if c.Flat != nil {
			flat = *c.Flat
		}
		switch key {
		case "flat_radius":
			if raw <= 0 {
				return false
			}
			flat.Radius = raw
		case "flat_scale":
			if raw == 0 {
				return false
			}
			flat.VerticalScale = raw
		case "flat_offset_y":
			flat.YOffset = raw
		}
		w.store.SetFlat(w.id, &flat, calib.OriginUser)
		return true

	case "flat_reset":
		w.store.SetFlat(w.id, nil, calib.OriginUser)
		return true
	}

	if idx, ok := warpBoundIndex(key); ok {
		raw, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return false
		}
		bounds := c.Warp
		bounds[idx] = raw
		w.store.SetWarp(w.id, c.WarpEnabled, warp.Normalize(bounds), calib.OriginUser)
		return true
	}

	if q, ok := diagonalKey(key); ok {
		dx, dy, ok := parsePair(value)
		if !ok {
			return false
		}
		// Drag-handle path: clamp into the quadrant instead of rejecting.
		d, ok := calib.ClampDiagonal(q, dx, dy, limit)
		if !ok {
			return false
		}
		w.store.SetDiagonal(w.id, q, d, calib.OriginUser)
		return true
	}

	log.WithFields(log.Fields{"widget": w.id, "key": key}).Debug("unknown calibration key")
	return false
}

// warpBoundIndex parses keys of the form warp_0 .. warp_7.
func warpBoundIndex(key string) (int, bool) {
	rest, found := strings.CutPrefix(key, "warp_")
	if !found {
		return 0, false
	}
	idx, err := strconv.Atoi(rest)
	if err != nil || idx < 0 || idx > 7 {
		return 0, false
	}
	return idx, true
}

// diagonalKey parses keys of the form diagonal_ur .. diagonal_ul.
func diagonalKey(key string) (calib.Quadrant, bool) {
	rest, found := strings.CutPrefix(key, "diagonal_")
	if !found {
		return "", false
	}
	q := calib.Quadrant(rest)
	for _, known := range calib.Quadrants() {
		if q == known {
			return q, true
		}
	}
	return "", false
}

// parsePair parses a "dx,dy" value.
func parsePair(value string) (float64, float64, bool) {
	a, b, found := strings.Cut(value, ",")
	if !found {
		return 0, 0, false
	}
	dx, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
	if err != nil {
		return 0, 0, false
	}
	dy, err := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if err != nil {
		return 0, 0, false
	}
	return dx, dy, true
}
