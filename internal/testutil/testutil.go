// Package testutil provides fakes for the gesture and touch tests.
package testutil

import (
	"sort"
	"sync"
	"time"

	"github.com/frudas24/joybridge/internal/touch"
)

// RecordSink captures every emitted touch event in order.
type RecordSink struct {
	mu     sync.Mutex
	events []touch.Event
	err    error
}

// Emit records the event and returns the configured error, if any.
func (s *RecordSink) Emit(ev touch.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, ev)
	return s.err
}

// Events returns a copy of everything emitted so far.
func (s *RecordSink) Events() []touch.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]touch.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Actions returns just the action sequence, for compact assertions.
func (s *RecordSink) Actions() []touch.Action {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]touch.Action, len(s.events))
	for i, ev := range s.events {
		out[i] = ev.Action
	}
	return out
}

// Reset discards recorded events.
func (s *RecordSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
}

// FailWith makes subsequent Emit calls return err.
func (s *RecordSink) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

type manualTimer struct {
	id  uint64
	due time.Duration
	fn  func()
}

// ManualScheduler implements the gesture scheduler against a virtual clock.
// Timers only fire when the test advances the clock.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	nextID uint64
	timers []*manualTimer
}

// NewManualScheduler creates a scheduler at virtual time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc registers fn to run once the clock has advanced by d. The
// returned cancel reports whether it prevented the callback.
func (m *ManualScheduler) AfterFunc(d time.Duration, fn func()) func() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	t := &manualTimer{id: m.nextID, due: m.now + d, fn: fn}
	m.timers = append(m.timers, t)
	return func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, other := range m.timers {
			if other.id == t.id {
				m.timers = append(m.timers[:i], m.timers[i+1:]...)
				return true
			}
		}
		return false
	}
}

// Advance moves the virtual clock forward, firing due timers in order.
// Callbacks run without the scheduler lock held, so they may schedule new
// timers; timers scheduled within the advanced window fire too.
func (m *ManualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	deadline := m.now + d
	m.mu.Unlock()

	for {
		m.mu.Lock()
		sort.Slice(m.timers, func(i, j int) bool { return m.timers[i].due < m.timers[j].due })
		if len(m.timers) == 0 || m.timers[0].due > deadline {
			m.now = deadline
			m.mu.Unlock()
			return
		}
		t := m.timers[0]
		m.timers = m.timers[1:]
		if t.due > m.now {
			m.now = t.due
		}
		m.mu.Unlock()

		t.fn()
	}
}

// Pending returns how many timers are armed.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}
