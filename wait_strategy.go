package disruptor

import "context"

// WaitStrategy is the policy a consumer uses to wait for a target sequence
// to become available. Implementations must call barrier.CheckAlert at
// every potential resume point so an alerted barrier is honored within one
// iteration, must check ctx.Err() the same way for cancellation, and must
// never hold a lock across a caller's code.
type WaitStrategy interface {
	// WaitFor blocks until dependentSequence reaches target, the barrier
	// is alerted (ErrAlert), ctx is done (ErrInterrupted), or a
	// strategy-specific timeout elapses (ErrTimeout). On success it
	// returns a sequence >= target that the caller may use as an upper
	// bound for batching.
	WaitFor(ctx context.Context, target int64, cursor *Sequence, dependentSequence sequenceReader, barrier *SequenceBarrier) (int64, error)

	// SignalAllWhenBlocking wakes any goroutine parked inside WaitFor.
	// Called by a sequencer after every publish.
	SignalAllWhenBlocking()
}
