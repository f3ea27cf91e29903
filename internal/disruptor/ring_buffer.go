package disruptor

import "fmt"

// RingBuffer is a fixed ring of pre-allocated slots indexed by a
// monotonically increasing position. The size is a power of two so the
// slot index is pos & (size-1). Slots carry no locks; ownership is decided
// by the cursors.
type RingBuffer[T any] struct {
	slots []T
	mask  int64
}

// NewRingBuffer allocates a ring of size slots. It panics unless size is a
// positive power of two.
func NewRingBuffer[T any](size int) *RingBuffer[T] {
	if !IsPowerOfTwo(size) {
		panic(fmt.Sprintf("disruptor: ring size %d is not a power of two", size))
	}
	return &RingBuffer[T]{
		slots: make([]T, size),
		mask:  int64(size - 1),
	}
}

// At returns the slot for pos.
func (r *RingBuffer[T]) At(pos int64) *T { return &r.slots[pos&r.mask] }

// Index returns the slot index for pos.
func (r *RingBuffer[T]) Index(pos int64) int64 { return pos & r.mask }

// Len returns the number of slots.
func (r *RingBuffer[T]) Len() int { return len(r.slots) }

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }
