package pointerid

import "testing"

// TestAllocator_PairsAcquireRelease verifies strict pairing across a sequence.
func TestAllocator_PairsAcquireRelease(t *testing.T) {
	a := NewAllocator()

	id, ok := a.Acquire("walk")
	if !ok {
		t.Fatalf("expected slot")
	}

	// Re-acquire while held returns the same slot, no second allocation.
	again, ok := a.Acquire("walk")
	if !ok || again != id {
		t.Fatalf("expected same slot %d, got %d ok=%v", id, again, ok)
	}

	a.Release("walk")
	if _, ok := a.Lookup("walk"); ok {
		t.Fatalf("expected slot gone after release")
	}

	// Double release is a no-op and must not free someone else's slot.
	other, _ := a.Acquire("skill")
	a.Release("walk")
	if got, ok := a.Lookup("skill"); !ok || got != other {
		t.Fatalf("expected skill slot %d intact, got %d ok=%v", other, got, ok)
	}
}

// TestAllocator_Exhaustion verifies allocation fails when all slots are taken.
func TestAllocator_Exhaustion(t *testing.T) {
	a := NewAllocator()
	for i := 0; i < SlotCount; i++ {
		if _, ok := a.Acquire(string(rune('a' + i))); !ok {
			t.Fatalf("expected slot %d", i)
		}
	}
	if _, ok := a.Acquire("overflow"); ok {
		t.Fatalf("expected exhaustion")
	}

	a.Release("a")
	if id, ok := a.Acquire("overflow"); !ok || id != 0 {
		t.Fatalf("expected freed slot 0, got %d ok=%v", id, ok)
	}
}

// TestAllocator_DistinctOwners verifies owners get distinct slots.
func TestAllocator_DistinctOwners(t *testing.T) {
	a := NewAllocator()
	walk, _ := a.Acquire("walk")
	skill, _ := a.Acquire("skill")
	if walk == skill {
		t.Fatalf("expected distinct slots, both got %d", walk)
	}
}
