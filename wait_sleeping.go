package disruptor

import (
	"context"
	"runtime"
	"time"
)

const sleepingSpinThreshold = 100

// SleepingWaitStrategy spins for a number of iterations, then yields for a
// number of iterations, then parks for sleepTime repeatedly. A good
// compromise between latency and CPU usage; it never calls
// SignalAllWhenBlocking's underlying wakeup because it never blocks on one.
type SleepingWaitStrategy struct {
	retries   int
	sleepTime time.Duration
}

// NewSleepingWaitStrategy constructs a SleepingWaitStrategy with the given
// retry count and sleep interval.
func NewSleepingWaitStrategy(retries int, sleepTime time.Duration) *SleepingWaitStrategy {
	return &SleepingWaitStrategy{retries: retries, sleepTime: sleepTime}
}

// NewDefaultSleepingWaitStrategy constructs a SleepingWaitStrategy with the
// same defaults as the original (200 retries, 100ns sleep).
func NewDefaultSleepingWaitStrategy() *SleepingWaitStrategy {
	return NewSleepingWaitStrategy(200, 100*time.Nanosecond)
}

func (w *SleepingWaitStrategy) WaitFor(ctx context.Context, target int64, cursor *Sequence, dependentSequence sequenceReader, barrier *SequenceBarrier) (int64, error) {
	counter := w.retries

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

		switch {
		case counter > sleepingSpinThreshold:
			counter--
		case counter > 0:
			runtime.Gosched()
			counter--
		default:
			time.Sleep(w.sleepTime)
		}
	}
}

func (w *SleepingWaitStrategy) SignalAllWhenBlocking() {
}
