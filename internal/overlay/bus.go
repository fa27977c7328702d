// Package overlay carries fire-and-forget notifications toward the
// calibration-guide renderer. The core never draws pixels itself.
package overlay

import "sync"

// Action is the kind of overlay notification.
type Action string

// Overlay actions in widget-lifecycle order.
const (
	ActionRegister   Action = "register"
	ActionUnregister Action = "unregister"
	ActionStart      Action = "start"
	ActionStop       Action = "stop"
	ActionRefresh    Action = "refresh"
	ActionTuneStart  Action = "tune_start"
	ActionTuneStop   Action = "tune_stop"
)

// Notice is one overlay notification.
type Notice struct {
	WidgetID string `json:"widget"`
	Action   Action `json:"action"`
}

// Bus is a typed publish/subscribe channel for overlay notices. Publishing
// never blocks: a subscriber whose buffer is full misses the notice.
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[int]chan Notice
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Notice)}
}

// Subscribe registers a subscriber with the given buffer size and returns
// its channel plus an unsubscribe function. Unsubscribing closes the channel.
func (b *Bus) Subscribe(buffer int) (<-chan Notice, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Notice, buffer)

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = ch
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers the notice to every subscriber without blocking.
func (b *Bus) Publish(n Notice) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- n:
		default:
		}
	}
}
