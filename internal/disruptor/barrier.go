package disruptor

import (
	"errors"
	"math"
	"runtime"
	"sync/atomic"
	"time"
)

// Backoff tuning for Barrier.WaitFor and SharedWriteCursor.PublishAfter.
const (
	spinTries     = 128
	yieldTries    = 1024
	sleepInterval = 50 * time.Microsecond
)

// backoff pauses the caller according to how many times it has already
// polled: busy spin first, then yield the processor, then sleep.
func backoff(n int) {
	switch {
	case n < spinTries:
	case n < spinTries+yieldTries:
		runtime.Gosched()
	default:
		time.Sleep(sleepInterval)
	}
}

// Follower is anything a Barrier can wait on.
type Follower interface {
	// Position returns the sequence holding the last published slot.
	Position() *Sequence

	// Err returns nil while the follower is healthy, ErrEOF after
	// end-of-stream, or the alert error.
	Err() error
}

// Barrier blocks until every cursor it follows has moved past a position.
//
// WaitFor may be called from several goroutines at once (producers sharing
// one write cursor). The cached minimum only ever grows.
type Barrier struct {
	limits  []Follower
	lastMin atomic.Int64
}

// Follow adds f to the set of cursors this barrier waits on.
// Not safe to call once waiting has started.
func (b *Barrier) Follow(f Follower) {
	b.limits = append(b.limits, f)
}

// Min returns the minimum published position of every followed cursor
// without blocking. With nothing followed it returns math.MaxInt64.
func (b *Barrier) Min() int64 {
	if len(b.limits) == 0 {
		return math.MaxInt64
	}
	minPos := int64(math.MaxInt64)
	for _, f := range b.limits {
		if p := f.Position().Acquire(); p < minPos {
			minPos = p
		}
	}
	return b.raise(minPos)
}

// WaitFor blocks until every followed cursor has published pos and returns
// the minimum of their positions. The result is never smaller than a result
// returned before.
//
// If a followed cursor is alerted the alert error is returned. If it hits
// end-of-stream before pos, ErrEOF is returned.
func (b *Barrier) WaitFor(pos int64) (int64, error) {
	if last := b.lastMin.Load(); last >= pos {
		return last, nil
	}

	minPos := int64(math.MaxInt64)
	for _, f := range b.limits {
		seq := f.Position()
		cur := seq.Acquire()
		for n := 0; cur < pos; n++ {
			if seq.Alerted() {
				if err := f.Err(); !errors.Is(err, ErrEOF) {
					return b.lastMin.Load(), err
				}
				// EOF: give the final publish a chance to land.
				if cur = seq.Acquire(); cur < pos {
					return b.lastMin.Load(), ErrEOF
				}
				break
			}
			backoff(n)
			cur = seq.Acquire()
		}
		if seq.Alerted() {
			if err := f.Err(); err != nil && !errors.Is(err, ErrEOF) {
				return b.lastMin.Load(), err
			}
		}
		if cur < minPos {
			minPos = cur
		}
	}
	if minPos == math.MaxInt64 {
		// Nothing to follow: every position is available.
		return pos, nil
	}
	return b.raise(minPos), nil
}

// raise lifts lastMin to v when v is larger and returns the resulting value.
func (b *Barrier) raise(v int64) int64 {
	for {
		last := b.lastMin.Load()
		if v <= last {
			return last
		}
		if b.lastMin.CompareAndSwap(last, v) {
			return v
		}
	}
}
