package species

import "github.com/pthm-cable/wildwood/rng"

// Arena is a fixed-capacity, index-addressed slot pool. Slot id 0 means the
// slot is empty and its payload holds the zero value; the slot index is the
// public identity used across population boundaries.
//
// Empty slots are tracked in a shuffled free-list, so claiming a random
// empty slot is O(1) and exhaustion is detected exactly instead of by
// bounded probing.
type Arena[T any] struct {
	ids   []uint32
	slots []T
	free  []int
	src   rng.Source

	nextID uint32
}

// NewArena creates an arena with the given capacity (clamped to at least 1).
func NewArena[T any](capacity int, src rng.Source) *Arena[T] {
	if capacity < 1 {
		capacity = 1
	}
	a := &Arena[T]{
		ids:   make([]uint32, capacity),
		slots: make([]T, capacity),
		src:   src,
	}
	a.free = src.Perm(capacity)
	return a
}

// Capacity returns the fixed slot count.
func (a *Arena[T]) Capacity() int { return len(a.ids) }

// Alive returns the number of occupied slots.
func (a *Arena[T]) Alive() int { return len(a.ids) - len(a.free) }

// Occupied reports whether slot i holds a living entity.
func (a *Arena[T]) Occupied(i int) bool {
	return i >= 0 && i < len(a.ids) && a.ids[i] != 0
}

// ID returns the slot id at i (0 for empty slots).
func (a *Arena[T]) ID(i int) uint32 {
	if i < 0 || i >= len(a.ids) {
		return 0
	}
	return a.ids[i]
}

// At returns the payload pointer for slot i. Only meaningful while
// Occupied(i) holds.
func (a *Arena[T]) At(i int) *T { return &a.slots[i] }

// Claim occupies a random empty slot with v and returns its index.
// Returns (-1, false) when the arena is full; callers degrade to
// fewer-created-than-requested.
func (a *Arena[T]) Claim(v T) (int, bool) {
	n := len(a.free)
	if n == 0 {
		return -1, false
	}
	j := 0
	if n > 1 {
		j = a.src.Intn(n)
	}
	idx := a.free[j]
	a.free[j] = a.free[n-1]
	a.free = a.free[:n-1]

	a.nextID++
	if a.nextID == 0 {
		a.nextID = 1
	}
	a.ids[idx] = a.nextID
	a.slots[idx] = v
	return idx, true
}

// Release empties slot i and reports whether it was occupied. Releasing an
// empty slot is a no-op, which keeps death-cause counters non-negative.
func (a *Arena[T]) Release(i int) bool {
	if !a.Occupied(i) {
		return false
	}
	a.ids[i] = 0
	var zero T
	a.slots[i] = zero
	a.free = append(a.free, i)
	return true
}

// Indices returns the occupied slot indices in ascending order.
func (a *Arena[T]) Indices() []int {
	out := make([]int, 0, a.Alive())
	for i, id := range a.ids {
		if id != 0 {
			out = append(out, i)
		}
	}
	return out
}

// Reset empties every slot and reshuffles the free-list.
func (a *Arena[T]) Reset() {
	var zero T
	for i := range a.ids {
		a.ids[i] = 0
		a.slots[i] = zero
	}
	a.free = a.src.Perm(len(a.ids))
}
