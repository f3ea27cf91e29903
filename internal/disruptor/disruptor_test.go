package disruptor

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// =============================================================================
// Sequence Tests
// =============================================================================

func TestSequence_Basics(t *testing.T) {
	s := NewSequence(-1)
	if got := s.Get(); got != -1 {
		t.Errorf("Get() = %d, want -1", got)
	}
	s.Store(5)
	if got := s.Acquire(); got != 5 {
		t.Errorf("Acquire() = %d, want 5", got)
	}
	if got := s.IncrementAndGet(3); got != 8 {
		t.Errorf("IncrementAndGet(3) = %d, want 8", got)
	}
}

func TestSequence_FirstSignalWins(t *testing.T) {
	s := NewSequence(0)
	if s.Alerted() {
		t.Fatal("new sequence should not be alerted")
	}
	if !s.raise(signalEOF) {
		t.Fatal("first raise should succeed")
	}
	if s.raise(signalAlert) {
		t.Error("second raise should be ignored")
	}
	if !s.EOF() {
		t.Error("EOF() = false, want true")
	}
}

// =============================================================================
// RingBuffer Tests
// =============================================================================

func TestRingBuffer_PowerOfTwo(t *testing.T) {
	tests := []struct {
		size      int
		wantPanic bool
	}{
		{1, false},
		{2, false},
		{64, false},
		{0, true},
		{3, true},
		{63, true},
		{-8, true},
	}
	for _, tt := range tests {
		func() {
			defer func() {
				r := recover()
				if (r != nil) != tt.wantPanic {
					t.Errorf("NewRingBuffer(%d) panic = %v, want panic %v", tt.size, r, tt.wantPanic)
				}
			}()
			NewRingBuffer[int](tt.size)
		}()
	}
}

func TestRingBuffer_Wraps(t *testing.T) {
	rb := NewRingBuffer[int](8)
	*rb.At(3) = 42
	if got := *rb.At(11); got != 42 {
		t.Errorf("At(11) = %d, want 42", got)
	}
	if got := rb.Index(17); got != 1 {
		t.Errorf("Index(17) = %d, want 1", got)
	}
	if rb.Len() != 8 {
		t.Errorf("Len() = %d, want 8", rb.Len())
	}
}

// =============================================================================
// Cursor Tests
// =============================================================================

func TestCursor_InitialState(t *testing.T) {
	r := NewReadCursor("r")
	if r.Begin() != 0 || r.End() != 0 || r.Position().Get() != -1 {
		t.Errorf("reader = (%d, %d, %d), want (0, 0, -1)", r.Begin(), r.End(), r.Position().Get())
	}
	w := NewWriteCursor("w", 16)
	if w.Begin() != 0 || w.End() != 16 || w.Size() != 16 {
		t.Errorf("writer = (%d, %d, size %d), want (0, 16, size 16)", w.Begin(), w.End(), w.Size())
	}
}

func TestCursor_AlertKeepsFirstError(t *testing.T) {
	errFirst := errors.New("first")
	r := NewReadCursor("r")
	r.SetAlert(errFirst)
	r.SetAlert(errors.New("second"))
	r.SetEOF()
	if err := r.Err(); !errors.Is(err, errFirst) {
		t.Errorf("Err() = %v, want %v", err, errFirst)
	}
}

func TestCursor_NilAlert(t *testing.T) {
	r := NewReadCursor("r")
	r.SetAlert(nil)
	if err := r.Err(); !errors.Is(err, ErrAlert) {
		t.Errorf("Err() = %v, want ErrAlert", err)
	}
}

// Single producer, single consumer through a ring smaller than the stream.
// Every value must arrive once, in order, and no unread slot may be
// overwritten.
func TestCursor_SingleProducerOrdering(t *testing.T) {
	const (
		size  = 8
		count = 1000
	)
	rb := NewRingBuffer[int](size)
	w := NewWriteCursor("w", size)
	r := NewReadCursor("r")
	r.Follow(w)
	w.Follow(r)

	go func() {
		pos, end := w.Begin(), w.End()
		for i := range count {
			if pos >= end {
				var err error
				if end, err = w.WaitFor(pos); err != nil {
					return
				}
			}
			*rb.At(pos) = i
			w.Publish(pos)
			pos++
		}
		w.SetEOF()
	}()

	var got []int
	pos, end := r.Begin(), r.End()
	for {
		if pos == end {
			if end > 0 {
				r.Publish(end - 1)
			}
			var err error
			end, err = r.WaitFor(end)
			if errors.Is(err, ErrEOF) {
				break
			}
			if err != nil {
				t.Fatalf("WaitFor() error = %v", err)
			}
		}
		got = append(got, *rb.At(pos))
		pos++
	}

	want := make([]int, count)
	for i := range want {
		want[i] = i
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("received stream mismatch (-want +got):\n%s", diff)
	}
}

// Five slots claimed by two producers and published in scrambled order are
// observed by the consumer in claim order.
func TestSharedWriteCursor_PublishInClaimOrder(t *testing.T) {
	const size = 8
	rb := NewRingBuffer[string](size)
	w := NewSharedWriteCursor("w", size)
	r := NewReadCursor("r")
	r.Follow(w)
	w.Follow(r)

	labels := []string{"a0", "b0", "a1", "b1", "a2"}
	for i, l := range labels {
		pos, err := w.Claim(1)
		if err != nil {
			t.Fatalf("Claim() error = %v", err)
		}
		if pos != int64(i) {
			t.Fatalf("Claim() = %d, want %d", pos, i)
		}
		*rb.At(pos) = l
	}

	// Producer "a" owns the even claims, "b" the odd ones. Both start with
	// their last claim so every publish but the first has to wait.
	var wg sync.WaitGroup
	for _, owned := range [][]int64{{4, 2, 0}, {3, 1}} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, p := range owned {
				go func() {
					if err := w.PublishAfter(p, p-1); err != nil {
						t.Errorf("PublishAfter(%d) error = %v", p, err)
					}
				}()
				time.Sleep(time.Millisecond)
			}
		}()
	}

	var got []string
	pos, end := r.Begin(), r.End()
	for len(got) < len(labels) {
		if pos == end {
			var err error
			if end, err = r.WaitFor(end); err != nil {
				t.Fatalf("WaitFor() error = %v", err)
			}
		}
		got = append(got, *rb.At(pos))
		pos++
	}
	wg.Wait()

	if diff := cmp.Diff(labels, got); diff != "" {
		t.Errorf("claim order mismatch (-want +got):\n%s", diff)
	}
}

func TestSharedWriteCursor_ConcurrentProducers(t *testing.T) {
	const (
		size      = 16
		producers = 4
		perWorker = 250
	)
	rb := NewRingBuffer[int](size)
	w := NewSharedWriteCursor("w", size)
	r := NewReadCursor("r")
	r.Follow(w)
	w.Follow(r)

	var wg sync.WaitGroup
	for p := range producers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perWorker {
				pos, err := w.Claim(1)
				if err != nil {
					t.Errorf("Claim() error = %v", err)
					return
				}
				*rb.At(pos) = p*perWorker + i
				if err := w.PublishAfter(pos, pos-1); err != nil {
					t.Errorf("PublishAfter() error = %v", err)
					return
				}
			}
		}()
	}

	seen := make(map[int]bool)
	pos, end := r.Begin(), r.End()
	for len(seen) < producers*perWorker {
		if pos == end {
			if end > 0 {
				r.Publish(end - 1)
			}
			var err error
			if end, err = r.WaitFor(end); err != nil {
				t.Fatalf("WaitFor() error = %v", err)
			}
		}
		v := *rb.At(pos)
		if seen[v] {
			t.Fatalf("value %d observed twice at %d", v, pos)
		}
		seen[v] = true
		pos++
	}
	r.Publish(pos - 1)
	wg.Wait()
}

// A failed producer must not leave the other producers spinning in
// PublishAfter or the reader blocked in WaitFor.
func TestSharedWriteCursor_AlertUnblocksEveryone(t *testing.T) {
	errBoom := errors.New("boom")
	w := NewSharedWriteCursor("w", 8)
	r := NewReadCursor("r")
	r.Follow(w)
	w.Follow(r)

	if _, err := w.Claim(1); err != nil {
		t.Fatalf("Claim() error = %v", err)
	}
	second, err := w.Claim(1)
	if err != nil {
		t.Fatalf("Claim() error = %v", err)
	}

	done := make(chan error, 2)
	go func() { done <- w.PublishAfter(second, second-1) }()
	go func() {
		_, err := r.WaitFor(0)
		done <- err
	}()

	// The owner of the first slot fails instead of publishing it.
	w.SetAlert(errBoom)

	for range 2 {
		select {
		case err := <-done:
			if !errors.Is(err, errBoom) {
				t.Errorf("error = %v, want %v", err, errBoom)
			}
		case <-time.After(5 * time.Second):
			t.Fatal("alert did not unblock waiters")
		}
	}
	if !errors.Is(r.Err(), errBoom) {
		t.Errorf("reader Err() = %v, want propagated alert", r.Err())
	}
}

func TestReadCursor_EOF(t *testing.T) {
	w := NewWriteCursor("w", 4)
	r := NewReadCursor("r")
	r.Follow(w)

	w.Publish(0)
	w.Publish(1)
	w.SetEOF()

	end, err := r.WaitFor(0)
	if err != nil {
		t.Fatalf("WaitFor(0) error = %v", err)
	}
	if end != 2 {
		t.Errorf("WaitFor(0) = %d, want 2", end)
	}
	if _, err := r.WaitFor(2); !errors.Is(err, ErrEOF) {
		t.Errorf("WaitFor(2) error = %v, want ErrEOF", err)
	}
	if !r.Position().EOF() {
		t.Error("reader should be marked EOF after hitting the end")
	}
}

// =============================================================================
// Barrier Tests
// =============================================================================

func TestBarrier_Monotonic(t *testing.T) {
	a := NewWriteCursor("a", 16)
	b := NewWriteCursor("b", 16)
	r := NewReadCursor("r")
	r.Follow(a)
	r.Follow(b)

	a.Publish(5)
	b.Publish(3)
	got, err := r.barrier.WaitFor(2)
	if err != nil || got != 3 {
		t.Fatalf("WaitFor(2) = (%d, %v), want (3, nil)", got, err)
	}

	// A smaller request after a larger result never goes backwards.
	got, err = r.barrier.WaitFor(0)
	if err != nil || got != 3 {
		t.Errorf("WaitFor(0) = (%d, %v), want (3, nil)", got, err)
	}

	b.Publish(7)
	if got := r.barrier.Min(); got != 5 {
		t.Errorf("Min() = %d, want 5", got)
	}
	if got := r.barrier.raise(1); got != 5 {
		t.Errorf("raise(1) = %d, want 5", got)
	}
}

func TestBarrier_Empty(t *testing.T) {
	var b Barrier
	b.lastMin.Store(-1)
	got, err := b.WaitFor(10)
	if err != nil || got != 10 {
		t.Errorf("WaitFor(10) = (%d, %v), want (10, nil)", got, err)
	}
}

func TestBarrier_WaitsForPublish(t *testing.T) {
	w := NewWriteCursor("w", 8)
	r := NewReadCursor("r")
	r.Follow(w)

	go func() {
		time.Sleep(5 * time.Millisecond)
		w.Publish(0)
	}()

	end, err := r.WaitFor(0)
	if err != nil {
		t.Fatalf("WaitFor(0) error = %v", err)
	}
	if end != 1 {
		t.Errorf("WaitFor(0) = %d, want 1", end)
	}
}

func TestBackoff_DoesNotBlockLong(t *testing.T) {
	start := time.Now()
	for i := range spinTries + yieldTries + 2 {
		backoff(i)
	}
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("backoff took %v", elapsed)
	}
}
