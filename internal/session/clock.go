package session

import "sync/atomic"

// Clock is a monotonic logical clock. Answer events are stamped with a
// strictly increasing seq from it, so rebuild applies them in exactly
// the order they were recorded regardless of wall-clock behavior.
//
// A session is single-goroutine, but the clock is atomic anyway so a
// caller fanning answers in from a concurrent collector cannot mint
// duplicate seqs.
type Clock struct {
	seq atomic.Int64
}

// Next returns the next sequence number. The first call returns 1.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last issued sequence number without advancing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
