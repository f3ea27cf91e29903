package disruptor

import "errors"

// ErrEOF is returned by a wait when a followed cursor reached end-of-stream
// before the requested position.
var ErrEOF = errors.New("disruptor: eof")

// ErrAlert is stored when a cursor is alerted without a cause.
var ErrAlert = errors.New("disruptor: alert")
