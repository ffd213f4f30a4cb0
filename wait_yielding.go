package disruptor

import (
	"context"
	"runtime"
)

const yieldingSpinTries = 100

// YieldingWaitStrategy spins for a fixed number of iterations and then
// yields the goroutine to the scheduler on every subsequent iteration.
// Lower latency than SleepingWaitStrategy at the cost of more CPU.
type YieldingWaitStrategy struct {
	spinTries int
}

// NewYieldingWaitStrategy constructs a YieldingWaitStrategy.
func NewYieldingWaitStrategy() *YieldingWaitStrategy {
	return &YieldingWaitStrategy{spinTries: yieldingSpinTries}
}

func (w *YieldingWaitStrategy) WaitFor(ctx context.Context, target int64, cursor *Sequence, dependentSequence sequenceReader, barrier *SequenceBarrier) (int64, error) {
	counter := w.spinTries

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

		if counter == 0 {
			runtime.Gosched()
		} else {
			counter--
		}
	}
}

func (w *YieldingWaitStrategy) SignalAllWhenBlocking() {
}
