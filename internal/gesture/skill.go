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

// CastTiming selects when a skill cast finishes.
type CastTiming string

const (
	// CastOnRelease finishes when the pointer is released; a release during
	// the interpolation is consumed once the touch reaches the target.
	CastOnRelease CastTiming = "onRelease"
	// CastImmediate finishes the instant the interpolation completes.
	CastImmediate CastTiming = "immediate"
	// CastManual locks the cast at the target; a second press finishes it.
	CastManual CastTiming = "manual"
)

// ParseCastTiming maps a stored timing string onto a mode, defaulting to
// CastOnRelease for unknown values.
func ParseCastTiming(s string) CastTiming {
	switch CastTiming(s) {
	case CastImmediate:
		return CastImmediate
	case CastManual:
		return CastManual
	default:
		return CastOnRelease
	}
}

// queueCap bounds the per-widget event queue. Producers drop silently when
// it is full; the queue orders events, it does not apply backpressure.
const queueCap = 64

type skillState int

const (
	skillInactive skillState = iota
	skillMoving
	skillActive
	skillLocked
	skillCanceling
)

type skillEventKind int

const (
	evPress skillEventKind = iota
	evRelease
	evMotion
	evCancelCast
)

type skillEvent struct {
	kind skillEventKind
	pos  geometry.Point
}

// SkillConfig tunes the skill machine's timing.
type SkillConfig struct {
	MoveSteps    int
	StepInterval time.Duration
}

func (c *SkillConfig) fill() {
	if c.MoveSteps <= 0 {
		c.MoveSteps = DefaultMoveSteps
	}
	if c.StepInterval <= 0 {
		c.StepInterval = DefaultStepInterval
	}
}

// Skill is the skill-casting gesture. Input events flow through an ordered
// FIFO consumed by one goroutine per widget; at most one interpolation task
// is in flight at a time.
type Skill struct {
	owner   string
	cfg     SkillConfig
	emitter *touch.Emitter
	ids     Allocator
	mapper  func() PointMapper
	timing  func() CastTiming
	sleep   func(time.Duration)

	queue chan skillEvent
	done  chan struct{}
	stop  sync.Once

	mu            sync.Mutex
	state         skillState
	pid           int
	pos           geometry.Point
	target        geometry.Point
	releasedEarly bool
	pendingCancel *geometry.Point
	flowGen       uint64
}

// NewSkill builds a skill machine for the named widget and starts its
// consumer goroutine. The timing callback is consulted at each completion
// so calibration edits take effect without restarting the gesture.
func NewSkill(owner string, cfg SkillConfig, emitter *touch.Emitter, ids Allocator, mapper func() PointMapper, timing func() CastTiming) *Skill {
	cfg.fill()
	s := &Skill{
		owner:   owner,
		cfg:     cfg,
		emitter: emitter,
		ids:     ids,
		mapper:  mapper,
		timing:  timing,
		sleep:   time.Sleep,
		queue:   make(chan skillEvent, queueCap),
		done:    make(chan struct{}),
	}
	go s.loop()
	return s
}

// Press enqueues a pointer press.
func (s *Skill) Press(pointer geometry.Point) { s.enqueue(skillEvent{kind: evPress, pos: pointer}) }

// Release enqueues a pointer release.
func (s *Skill) Release() { s.enqueue(skillEvent{kind: evRelease}) }

// Motion enqueues a pointer move.
func (s *Skill) Motion(pointer geometry.Point) { s.enqueue(skillEvent{kind: evMotion, pos: pointer}) }

// CancelCast enqueues the cancel-casting interrupt. The target is the
// on-surface position of the cancel region; the touch is dragged there and
// released regardless of the timing mode.
func (s *Skill) CancelCast(target geometry.Point) {
	s.enqueue(skillEvent{kind: evCancelCast, pos: target})
}

// Cancel aborts the gesture immediately, emitting the final UP. Unlike the
// queued events it takes effect without waiting for the consumer.
func (s *Skill) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != skillInactive {
		s.finishLocked()
	}
}

// Close cancels any in-flight gesture and stops the consumer goroutine.
func (s *Skill) Close() {
	s.Cancel()
	s.stop.Do(func() { close(s.done) })
}

// Active reports whether a gesture is in flight.
func (s *Skill) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state != skillInactive
}

func (s *Skill) enqueue(ev skillEvent) {
	select {
	case s.queue <- ev:
	default:
		// Full queue: drop. The queue buffers and orders, nothing more.
	}
}

func (s *Skill) loop() {
	for {
		select {
		case ev := <-s.queue:
			s.handle(ev)
		case <-s.done:
			return
		}
	}
}

func (s *Skill) handle(ev skillEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == skillCanceling {
		// Input is ignored until the cancel flow completes.
		return
	}

	switch ev.kind {
	case evPress:
		s.handlePress(ev.pos)
	case evRelease:
		s.handleRelease()
	case evMotion:
		s.handleMotion(ev.pos)
	case evCancelCast:
		s.handleCancelCast(ev.pos)
	}
}

func (s *Skill) handlePress(pointer geometry.Point) {
	switch s.state {
	case skillInactive:
		pid, ok := s.ids.Acquire(s.owner)
		if !ok {
			return
		}
		m := s.mapper()
		s.pid = pid
		s.pos = m.WidgetCenter()
		s.target = m.Map(pointer)
		s.releasedEarly = false
		s.pendingCancel = nil
		s.state = skillMoving
		s.emitter.Emit(touch.ActionDown, s.pid, s.pos)
		s.startFlowLocked()

	case skillMoving:
		// Target is locked until the interpolation completes.

	case skillActive:
		s.target = s.mapper().Map(pointer)
		s.pos = s.target
		s.emitter.Emit(touch.ActionMove, s.pid, s.pos)

	case skillLocked:
		// Second press confirms a manually locked cast.
		s.finishLocked()
	}
}

func (s *Skill) handleRelease() {
	switch s.state {
	case skillMoving:
		if s.timing() == CastOnRelease {
			s.releasedEarly = true
		}
	case skillActive:
		if s.timing() == CastOnRelease {
			s.finishLocked()
		}
	}
}

func (s *Skill) handleMotion(pointer geometry.Point) {
	switch s.state {
	case skillMoving:
		// Target is locked until the interpolation completes.
	case skillActive, skillLocked:
		s.target = s.mapper().Map(pointer)
		s.pos = s.target
		s.emitter.Emit(touch.ActionMove, s.pid, s.pos)
	}
}

func (s *Skill) handleCancelCast(target geometry.Point) {
	switch s.state {
	case skillInactive:
		return
	case skillMoving:
		// Never interrupt a move mid-flight; apply once it completes.
		t := target
		s.pendingCancel = &t
	case skillActive, skillLocked:
		s.state = skillCanceling
		s.target = target
		s.startFlowLocked()
	}
}

// startFlowLocked launches the single interpolation task. Any previous flow
// observes the bumped generation and exits. Caller holds the lock.
func (s *Skill) startFlowLocked() {
	s.flowGen++
	gen := s.flowGen
	start := s.pos
	go s.flow(gen, start)
}

func (s *Skill) flow(gen uint64, start geometry.Point) {
	tween := gween.New(0, 1, float32(s.cfg.MoveSteps), ease.Linear)
	for {
		s.sleep(s.cfg.StepInterval)

		s.mu.Lock()
		if gen != s.flowGen {
			s.mu.Unlock()
			return
		}
		progress, done := tween.Update(1)
		s.pos = start.Add(s.target.Sub(start).Scale(float64(progress)))
		s.emitter.Emit(touch.ActionMove, s.pid, s.pos)
		if done {
			s.completeFlowLocked()
			s.mu.Unlock()
			return
		}
		s.mu.Unlock()
	}
}

// completeFlowLocked resolves the state transition after an interpolation
// reaches its target. Caller holds the lock.
func (s *Skill) completeFlowLocked() {
	if s.pendingCancel != nil {
		target := *s.pendingCancel
		s.pendingCancel = nil
		s.state = skillCanceling
		s.target = target
		s.startFlowLocked()
		return
	}
	if s.state == skillCanceling {
		s.finishLocked()
		return
	}

	switch s.timing() {
	case CastImmediate:
		s.finishLocked()
	case CastManual:
		s.state = skillLocked
	default: // CastOnRelease
		if s.releasedEarly {
			s.finishLocked()
			return
		}
		s.state = skillActive
	}
}

// finishLocked emits the final UP, frees the pointer slot and invalidates
// any in-flight interpolation. Caller holds the lock.
func (s *Skill) finishLocked() {
	s.flowGen++
	s.emitter.Emit(touch.ActionUp, s.pid, s.pos)
	s.ids.Release(s.owner)
	s.state = skillInactive
	s.releasedEarly = false
	s.pendingCancel = nil
}
