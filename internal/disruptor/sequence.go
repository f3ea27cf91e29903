// Package disruptor provides the lock-free primitives that connect the
// vertex producers and tile consumers of the rasterization pipeline.
//
// A ring of pre-allocated slots is shared between writers and readers.
// Each participant owns a cursor whose position is the last slot it has
// published. Readers follow writers (they may not read past what was
// published) and writers follow readers (they may not overwrite a slot
// before every reader has released it). Nothing here takes a lock: waiting
// is a progressive backoff of busy spinning, yielding and short sleeps.
//
// Failures travel along the same edges. A cursor can be marked EOF or
// alerted with an error; any cursor waiting on it receives that error from
// its next wait instead of blocking forever.
package disruptor

import (
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

const (
	signalNone int32 = iota
	signalEOF
	signalAlert
)

// Sequence is a padded atomic position plus a one-shot signal flag.
//
// The padding keeps two sequences written by different goroutines off the
// same cache line.
type Sequence struct {
	_      cpu.CacheLinePad
	value  atomic.Int64
	signal atomic.Int32
	_      cpu.CacheLinePad
}

// NewSequence returns a sequence positioned at v.
func NewSequence(v int64) *Sequence {
	s := &Sequence{}
	s.value.Store(v)
	return s
}

// Get returns the current position.
func (s *Sequence) Get() int64 { return s.value.Load() }

// Acquire returns the current position. Go atomics are sequentially
// consistent, so Acquire and Get only differ in intent at the call site:
// Acquire is used when the caller goes on to read slot contents.
func (s *Sequence) Acquire() int64 { return s.value.Load() }

// Store publishes v.
func (s *Sequence) Store(v int64) { s.value.Store(v) }

// IncrementAndGet adds n and returns the new position.
func (s *Sequence) IncrementAndGet(n int64) int64 { return s.value.Add(n) }

// EOF reports whether the sequence was marked end-of-stream.
func (s *Sequence) EOF() bool { return s.signal.Load() == signalEOF }

// Alerted reports whether any signal (EOF or alert) was raised.
func (s *Sequence) Alerted() bool { return s.signal.Load() != signalNone }

// raise sets the signal if none is set yet. The first signal wins and is
// never cleared.
func (s *Sequence) raise(sig int32) bool {
	return s.signal.CompareAndSwap(signalNone, sig)
}
