package match

import "sync/atomic"

// Sequence hands out monotonic ids. The session owning the games owns the
// sequences; tests inject fresh ones.
type Sequence interface {
	Next() int64
}

// Counter is a Sequence starting at a given value.
type Counter struct {
	next atomic.Int64
}

// NewCounter returns a Counter whose first id is start.
func NewCounter(start int64) *Counter {
	c := &Counter{}
	c.next.Store(start)
	return c
}

// Next implements Sequence.
func (c *Counter) Next() int64 {
	return c.next.Add(1) - 1
}

// Reset makes start the next id handed out.
func (c *Counter) Reset(start int64) {
	c.next.Store(start)
}
