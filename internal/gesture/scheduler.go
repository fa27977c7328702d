// Package gesture drives the walk and skill touch state machines.
package gesture

import "time"

// Scheduler abstracts delayed callbacks so the state machines can run under
// a manually stepped clock in tests. The returned cancel reports whether it
// prevented the callback from firing.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) (cancel func() bool)
}

// TimerScheduler runs callbacks on real time.Timer instances.
type TimerScheduler struct{}

// AfterFunc schedules fn after d on a real timer.
func (TimerScheduler) AfterFunc(d time.Duration, fn func()) func() bool {
	t := time.AfterFunc(d, fn)
	return t.Stop
}
