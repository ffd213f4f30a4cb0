package disruptor

import (
	"context"
	"runtime"
	"time"
)

// PhasedBackoffWaitStrategy spins for spinDuration, then yields for
// yieldDuration, then delegates to a configured fallback strategy
// (typically Sleeping or Blocking) for as long as the wait continues.
// Adaptive: cheap for the common case where a publish arrives quickly,
// without pinning a core indefinitely when it doesn't.
type PhasedBackoffWaitStrategy struct {
	spinDuration  time.Duration
	yieldDuration time.Duration
	fallback      WaitStrategy
}

// NewPhasedBackoffWaitStrategy constructs a PhasedBackoffWaitStrategy.
func NewPhasedBackoffWaitStrategy(spinDuration, yieldDuration time.Duration, fallback WaitStrategy) *PhasedBackoffWaitStrategy {
	return &PhasedBackoffWaitStrategy{
		spinDuration:  spinDuration,
		yieldDuration: yieldDuration,
		fallback:      fallback,
	}
}

// NewPhasedBackoffWaitStrategyWithSleep builds a PhasedBackoffWaitStrategy
// falling back to a SleepingWaitStrategy, matching the original's most
// common configuration.
func NewPhasedBackoffWaitStrategyWithSleep(spinDuration, yieldDuration time.Duration) *PhasedBackoffWaitStrategy {
	return NewPhasedBackoffWaitStrategy(spinDuration, yieldDuration, NewDefaultSleepingWaitStrategy())
}

func (w *PhasedBackoffWaitStrategy) WaitFor(ctx context.Context, target int64, cursor *Sequence, dependentSequence sequenceReader, barrier *SequenceBarrier) (int64, error) {
	deadline := time.Now().Add(w.spinDuration)

	for {
		available := dependentSequence.Get()
		if available >= target {
			return available, nil
		}
		if err := barrier.CheckAlert(); err != nil {
			return 0, err
		}
		if ctx.Err() != nil {
			return 0, ErrInterrupted
		}
		if time.Now().After(deadline) {
			break
		}
	}

	deadline = time.Now().Add(w.yieldDuration)
	for {
		available := dependentSequence.Get()
		if available >= target {
			return available, nil
		}
		if err := barrier.CheckAlert(); err != nil {
			return 0, err
		}
		if ctx.Err() != nil {
			return 0, ErrInterrupted
		}
		if time.Now().After(deadline) {
			break
		}
		runtime.Gosched()
	}

	return w.fallback.WaitFor(ctx, target, cursor, dependentSequence, barrier)
}

func (w *PhasedBackoffWaitStrategy) SignalAllWhenBlocking() {
	w.fallback.SignalAllWhenBlocking()
}
