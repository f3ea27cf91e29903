package disruptor

import (
	"errors"
	"sync/atomic"
)

// cursor is the state shared by every cursor role.
//
// Slots in [begin, end) may be processed without waiting. begin and end are
// owned by the goroutine driving the cursor; only seq and the alert are
// touched by other goroutines.
type cursor struct {
	name    string
	begin   int64
	end     int64
	seq     *Sequence
	alert   atomic.Pointer[error]
	barrier Barrier
}

func (c *cursor) init(name string) {
	c.name = name
	c.seq = NewSequence(-1)
	c.barrier.lastMin.Store(-1)
}

// Name returns the debug name of the cursor.
func (c *cursor) Name() string { return c.name }

// Begin returns one past the last published slot.
func (c *cursor) Begin() int64 { return c.begin }

// End returns one past the last slot known to be available as of the last
// wait.
func (c *cursor) End() int64 { return c.end }

// Follow makes this cursor wait on f.
func (c *cursor) Follow(f Follower) { c.barrier.Follow(f) }

// Position returns the published sequence.
func (c *cursor) Position() *Sequence { return c.seq }

// Publish makes slot p visible to every follower of this cursor.
func (c *cursor) Publish(p int64) {
	if p < 0 {
		panic("disruptor: publish of negative position")
	}
	c.begin = p + 1
	c.seq.Store(p)
}

// SetEOF marks the end of the stream. Followers that wait for a position
// past the last publish receive ErrEOF.
func (c *cursor) SetEOF() { c.seq.raise(signalEOF) }

// SetAlert stores err and signals it to every follower. Only the first
// signal is kept; a nil err is recorded as ErrAlert.
func (c *cursor) SetAlert(err error) {
	if err == nil {
		err = ErrAlert
	}
	if c.alert.CompareAndSwap(nil, &err) {
		c.seq.raise(signalAlert)
	}
}

// Err reports the signal raised on this cursor, if any.
func (c *cursor) Err() error {
	switch c.seq.signal.Load() {
	case signalEOF:
		return ErrEOF
	case signalAlert:
		if p := c.alert.Load(); p != nil {
			return *p
		}
		return ErrAlert
	}
	return nil
}

// ReadCursor tracks a consumer. It follows one or more writers.
type ReadCursor struct {
	cursor
}

// NewReadCursor creates a reader positioned before the first slot.
func NewReadCursor(name string) *ReadCursor {
	r := &ReadCursor{}
	r.init(name)
	return r
}

// WaitFor blocks until pos has been published by every followed writer and
// returns the new end, which is greater than pos.
//
// On failure the reader signals its own followers: ErrEOF marks it EOF,
// anything else alerts it with the same error.
func (r *ReadCursor) WaitFor(pos int64) (int64, error) {
	m, err := r.barrier.WaitFor(pos)
	if err != nil {
		if errors.Is(err, ErrEOF) {
			r.SetEOF()
		} else {
			r.SetAlert(err)
		}
		return r.end, err
	}
	r.end = m + 1
	return r.end, nil
}

// CheckEnd refreshes End without blocking.
func (r *ReadCursor) CheckEnd() int64 {
	r.end = r.barrier.Min() + 1
	return r.end
}

// WriteCursor tracks a single producer writing into a ring of size slots.
type WriteCursor struct {
	cursor
	size int64
}

// NewWriteCursor creates a writer for a ring of the given size.
func NewWriteCursor(name string, size int64) *WriteCursor {
	w := &WriteCursor{size: size}
	w.init(name)
	w.end = size
	return w
}

// Size returns the ring size the cursor was created for.
func (w *WriteCursor) Size() int64 { return w.size }

// WaitFor blocks until slot pos may be written, i.e. every follower has
// released pos-size, and returns the new end.
func (w *WriteCursor) WaitFor(pos int64) (int64, error) {
	m, err := w.barrier.WaitFor(pos - w.size)
	if err != nil {
		w.SetAlert(err)
		return w.end, err
	}
	w.end = m + w.size
	return w.end, nil
}

// WaitNext waits until Begin is writable and returns it. Single producer
// only; several producers must use SharedWriteCursor.Claim.
func (w *WriteCursor) WaitNext() (int64, error) {
	if _, err := w.WaitFor(w.begin); err != nil {
		return 0, err
	}
	return w.begin, nil
}

// CheckEnd refreshes End without blocking.
func (w *WriteCursor) CheckEnd() int64 {
	w.end = w.barrier.Min() + w.size
	return w.end
}

// SharedWriteCursor lets several producers write into one ring. Producers
// reserve slots with Claim and publish them in claim order with
// PublishAfter.
//
//	pos, err := w.Claim(1)
//	// fill slot pos
//	err = w.PublishAfter(pos, pos-1)
type SharedWriteCursor struct {
	WriteCursor
	claim *Sequence
}

// NewSharedWriteCursor creates a multi-producer writer for a ring of the
// given size.
func NewSharedWriteCursor(name string, size int64) *SharedWriteCursor {
	s := &SharedWriteCursor{claim: NewSequence(0)}
	s.init(name)
	s.size = size
	s.end = size
	return s
}

// Claim atomically reserves n contiguous slots and blocks until the last
// of them may be written. It returns the first reserved slot.
//
// Claim is safe for concurrent use. A failed wait alerts the cursor so the
// other producers stop as well.
func (s *SharedWriteCursor) Claim(n int64) (int64, error) {
	if err := s.Err(); err != nil {
		return 0, err
	}
	pos := s.claim.IncrementAndGet(n)
	if _, err := s.barrier.WaitFor(pos - 1 - s.size); err != nil {
		s.SetAlert(err)
		return 0, err
	}
	return pos - n, nil
}

// PublishAfter publishes pos once after has been published. Producers
// that claimed earlier slots therefore always become visible first.
//
// If the cursor is alerted while waiting (another producer failed) the
// alert is returned instead of spinning forever.
func (s *SharedWriteCursor) PublishAfter(pos, after int64) error {
	if pos <= after {
		panic("disruptor: publish position not after predecessor")
	}
	for n := 0; s.seq.Acquire() != after; n++ {
		if err := s.Err(); err != nil {
			return err
		}
		backoff(n)
	}
	s.seq.Store(pos)
	return nil
}
