// Package gesture drives the walk and skill touch state machines.
package gesture

import (
	"sync"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/frudas24/joybridge/internal/geometry"
	"github.com/frudas24/joybridge/internal/touch"
)

// Interpolation and press timing defaults.
const (
	DefaultMoveSteps    = 6
	DefaultStepInterval = 20 * time.Millisecond
	DefaultLongPress    = 300 * time.Millisecond
)

// PointMapper resolves pointer positions for one widget.
type PointMapper interface {
	// Map projects an absolute pointer position into the output circle.
	Map(pointer geometry.Point) geometry.Point
	// WidgetCenter is the on-screen center of the widget.
	WidgetCenter() geometry.Point
	// InputCenter is the calibrated pointer-side center.
	InputCenter() geometry.Point
}

// Allocator is the pointer-slot surface the machines need.
type Allocator interface {
	Acquire(owner string) (int, bool)
	Release(owner string)
}

type walkState int

const (
	walkInactive walkState = iota
	walkMoving
	walkHolding
)

// WalkConfig tunes the walk machine's timing.
type WalkConfig struct {
	MoveSteps    int
	StepInterval time.Duration
	LongPress    time.Duration
}

func (c *WalkConfig) fill() {
	if c.MoveSteps <= 0 {
		c.MoveSteps = DefaultMoveSteps
	}
	if c.StepInterval <= 0 {
		c.StepInterval = DefaultStepInterval
	}
	if c.LongPress <= 0 {
		c.LongPress = DefaultLongPress
	}
}

// Walk is the joystick "walk" gesture. A press drives the touch point from
// the widget center to the mapped target in fixed steps, then holds there.
// Short taps auto-release after a hold proportional to the drag distance;
// presses held past the long-press threshold follow the pointer until
// released.
type Walk struct {
	owner   string
	cfg     WalkConfig
	emitter *touch.Emitter
	ids     Allocator
	sched   Scheduler
	mapper  func() PointMapper

	mu    sync.Mutex
	state walkState
	gen   uint64
	pid   int

	pos         geometry.Point
	start       geometry.Point
	target      geometry.Point
	lastPointer geometry.Point

	tween       *gween.Tween
	pressed     bool
	released    bool
	longPressed bool

	cancelStep func() bool
	cancelHold func() bool
	cancelLong func() bool
}

// NewWalk builds a walk machine for the named widget. The mapper callback
// is consulted on every press so calibration edits take effect immediately.
func NewWalk(owner string, cfg WalkConfig, emitter *touch.Emitter, ids Allocator, sched Scheduler, mapper func() PointMapper) *Walk {
	cfg.fill()
	return &Walk{
		owner:   owner,
		cfg:     cfg,
		emitter: emitter,
		ids:     ids,
		sched:   sched,
		mapper:  mapper,
	}
}

// Press handles a pointer press at the given surface position.
func (w *Walk) Press(pointer geometry.Point) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.lastPointer = pointer
	switch w.state {
	case walkInactive:
		pid, ok := w.ids.Acquire(w.owner)
		if !ok {
			return
		}
		m := w.mapper()
		w.pid = pid
		w.pos = m.WidgetCenter()
		w.start = w.pos
		w.target = m.Map(pointer)
		w.pressed = true
		w.released = false
		w.longPressed = false
		w.state = walkMoving
		w.emitter.Emit(touch.ActionDown, w.pid, w.pos)
		w.tween = gween.New(0, 1, float32(w.cfg.MoveSteps), ease.Linear)
		w.scheduleStep()
		w.armLongPress()

	case walkMoving:
		// Target stays locked; only the press timing resets.
		w.pressed = true
		w.released = false
		w.armLongPress()

	case walkHolding:
		w.pressed = true
		w.released = false
		w.stopHold()
		w.target = w.mapper().Map(pointer)
		w.pos = w.target
		w.emitter.Emit(touch.ActionMove, w.pid, w.pos)
		w.armLongPress()
	}
}

// Motion handles pointer movement. While the interpolation is in flight the
// target stays locked unless the press already counts as a long press.
func (w *Walk) Motion(pointer geometry.Point) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.lastPointer = pointer
	switch w.state {
	case walkHolding:
		w.target = w.mapper().Map(pointer)
		w.pos = w.target
		w.emitter.Emit(touch.ActionMove, w.pid, w.pos)
	case walkMoving:
		if !w.longPressed {
			return
		}
		w.stopStep()
		w.state = walkHolding
		w.target = w.mapper().Map(pointer)
		w.pos = w.target
		w.emitter.Emit(touch.ActionMove, w.pid, w.pos)
	}
}

// Release handles the pointer going up. Long presses finish immediately;
// short taps keep walking until the distance-proportional hold expires.
func (w *Walk) Release() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state == walkInactive {
		return
	}
	w.pressed = false
	w.stopLong()

	if w.longPressed {
		w.finishLocked()
		return
	}
	w.released = true
	if w.state == walkHolding {
		w.armHold()
	}
	// While Moving the release is consumed when interpolation completes.
}

// Cancel aborts the gesture immediately, emitting the final UP.
func (w *Walk) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state == walkInactive {
		return
	}
	w.finishLocked()
}

// Active reports whether a gesture is in flight.
func (w *Walk) Active() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state != walkInactive
}

// scheduleStep arms the next interpolation tick. Caller holds the lock.
func (w *Walk) scheduleStep() {
	gen := w.gen
	w.cancelStep = w.sched.AfterFunc(w.cfg.StepInterval, func() { w.step(gen) })
}

func (w *Walk) step(gen uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if gen != w.gen || w.state != walkMoving {
		return
	}

	progress, done := w.tween.Update(1)
	w.pos = w.start.Add(w.target.Sub(w.start).Scale(float64(progress)))
	w.emitter.Emit(touch.ActionMove, w.pid, w.pos)

	if !done {
		w.scheduleStep()
		return
	}
	w.state = walkHolding
	if w.released && !w.pressed {
		w.armHold()
	}
}

// armLongPress restarts the long-press timer. Caller holds the lock.
func (w *Walk) armLongPress() {
	w.stopLong()
	gen := w.gen
	w.cancelLong = w.sched.AfterFunc(w.cfg.LongPress, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if gen != w.gen || w.state == walkInactive {
			return
		}
		w.longPressed = true
	})
}

// armHold starts the auto-release timer for a short tap. Caller holds the
// lock.
func (w *Walk) armHold() {
	w.stopHold()
	surfaceW, surfaceH := w.emitter.SurfaceSize()
	d := HoldDuration(w.mapper().InputCenter(), w.lastPointer, surfaceW, surfaceH)
	gen := w.gen
	w.cancelHold = w.sched.AfterFunc(d, func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		if gen != w.gen || w.state != walkHolding {
			return
		}
		w.finishLocked()
	})
}

// finishLocked emits the final UP, frees the pointer slot and invalidates
// every outstanding timer. Caller holds the lock.
func (w *Walk) finishLocked() {
	w.stopStep()
	w.stopHold()
	w.stopLong()
	w.gen++
	w.emitter.Emit(touch.ActionUp, w.pid, w.pos)
	w.ids.Release(w.owner)
	w.state = walkInactive
	w.pressed = false
	w.released = false
	w.longPressed = false
	w.tween = nil
}

func (w *Walk) stopStep() {
	if w.cancelStep != nil {
		w.cancelStep()
		w.cancelStep = nil
	}
}

func (w *Walk) stopHold() {
	if w.cancelHold != nil {
		w.cancelHold()
		w.cancelHold = nil
	}
}

func (w *Walk) stopLong() {
	if w.cancelLong != nil {
		w.cancelLong()
		w.cancelLong = nil
	}
}
