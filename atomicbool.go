package disruptor

import "sync/atomic"

// atomicBool is a tiny wrapper used by the lite wait strategies to elide
// condition-variable broadcasts when no waiter is parked.
type atomicBool struct {
	v atomic.Bool
}

func (b *atomicBool) set(value bool) {
	b.v.Store(value)
}

// swap stores value and returns the previous value, mirroring
// AtomicBoolean.getAndSet in the original wait strategies.
func (b *atomicBool) swap(value bool) bool {
	return b.v.Swap(value)
}
