package planner

import "sync/atomic"

// Clock is a monotonic logical clock stamping plans with seq numbers.
//
// Sequence numbers, not wall-clock timestamps, order plans. This keeps
// listings deterministic and lets tests pin exact values.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations),
// though the planner itself is synchronous and single-threaded per call.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a new clock starting at a specific sequence number.
// Used to resume from a persisted position.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current sequence number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
