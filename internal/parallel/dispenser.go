package parallel

import "sync/atomic"

// IndexDispenser hands out the indices 0..limit-1 exactly once each, in
// increasing order, to whichever goroutine asks next. It is the claim-next
// primitive behind dynamic scheduling: fast workers simply claim more.
type IndexDispenser struct {
	next  atomic.Uint64
	limit uint64
}

// NewIndexDispenser returns a dispenser over [0, limit).
func NewIndexDispenser(limit uint64) *IndexDispenser {
	return &IndexDispenser{limit: limit}
}

// Claim returns the next unclaimed index. ok is false once the range is
// exhausted; every later call also returns false.
func (d *IndexDispenser) Claim() (index uint64, ok bool) {
	i := d.next.Add(1) - 1
	if i >= d.limit {
		return 0, false
	}
	return i, true
}

// Claimed reports how many indices have been handed out, capped at the limit.
func (d *IndexDispenser) Claimed() uint64 {
	n := d.next.Load()
	if n > d.limit {
		return d.limit
	}
	return n
}

// Limit returns the size of the range.
func (d *IndexDispenser) Limit() uint64 { return d.limit }
