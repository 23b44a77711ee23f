// Package clock provides the logical clock purchases are timestamped with.
// Heights are monotonically non-decreasing counters, not wall-clock time.
package clock

import "sync/atomic"

// Logical is a monotonic counter clock. Height reads the current value;
// Advance moves it forward. The ticketing engine reads the clock but never
// advances it: progression belongs to whatever drives the ledger forward
// (block production in the original deployment, a ticker in ours).
type Logical struct {
	height atomic.Uint64
}

func NewLogical() *Logical {
	return &Logical{}
}

func (c *Logical) Height() uint64 {
	return c.height.Load()
}

// Advance increments the clock by one and returns the new height.
func (c *Logical) Advance() uint64 {
	return c.height.Add(1)
}

// Fixed always reports the same height. Test helper.
type Fixed uint64

func (f Fixed) Height() uint64 {
	return uint64(f)
}
