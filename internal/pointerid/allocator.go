// Package pointerid allocates exclusive touch pointer slots per gesture.
package pointerid

import "sync"

// SlotCount is the number of simultaneous touch pointers the remote
// protocol supports.
const SlotCount = 10

// Allocator hands out at most one pointer slot per owner. Acquire and
// Release calls are strictly paired; releasing an owner without a slot is
// a no-op, and acquiring twice returns the already-held slot.
type Allocator struct {
	mu     sync.Mutex
	owners map[string]int
	used   [SlotCount]bool
}

// NewAllocator creates an empty allocator.
func NewAllocator() *Allocator {
	return &Allocator{owners: make(map[string]int)}
}

// Acquire reserves a slot for the owner. It returns the held slot when the
// owner already has one, and false when all slots are taken.
func (a *Allocator) Acquire(owner string) (int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if id, ok := a.owners[owner]; ok {
		return id, true
	}
	for id := 0; id < SlotCount; id++ {
		if !a.used[id] {
			a.used[id] = true
			a.owners[owner] = id
			return id, true
		}
	}
	return 0, false
}

// Release frees the owner's slot. Releasing twice is harmless.
func (a *Allocator) Release(owner string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id, ok := a.owners[owner]
	if !ok {
		return
	}
	delete(a.owners, owner)
	a.used[id] = false
}

// Lookup returns the owner's slot without allocating.
func (a *Allocator) Lookup(owner string) (int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	id, ok := a.owners[owner]
	return id, ok
}
