package disruptor

import (
	"context"
	"time"
)

// TimeoutBlockingWaitStrategy behaves like BlockingWaitStrategy but wakes
// periodically even without a publish, failing with ErrTimeout so the
// batch processor can invoke the handler's OnTimeout hook and resume.
type TimeoutBlockingWaitStrategy struct {
	wake    *broadcaster
	timeout time.Duration
}

// NewTimeoutBlockingWaitStrategy constructs a strategy that times out after timeout.
func NewTimeoutBlockingWaitStrategy(timeout time.Duration) *TimeoutBlockingWaitStrategy {
	return &TimeoutBlockingWaitStrategy{wake: newBroadcaster(), timeout: timeout}
}

func (w *TimeoutBlockingWaitStrategy) WaitFor(ctx context.Context, target int64, cursor *Sequence, dependentSequence sequenceReader, barrier *SequenceBarrier) (int64, error) {
	for {
		gen := w.wake.generation()
		if cursor.Get() >= target {
			break
		}
		if err := barrier.CheckAlert(); err != nil {
			return 0, err
		}

		timer := time.NewTimer(w.timeout)
		select {
		case <-gen:
			timer.Stop()
		case <-ctx.Done():
			timer.Stop()
			return 0, ErrInterrupted
		case <-timer.C:
			return 0, ErrTimeout
		}
	}

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
	}
}

func (w *TimeoutBlockingWaitStrategy) SignalAllWhenBlocking() {
	w.wake.signal()
}

// LiteTimeoutBlockingWaitStrategy combines TimeoutBlockingWaitStrategy's
// periodic wakeup with LiteBlockingWaitStrategy's signal-elision optimization.
type LiteTimeoutBlockingWaitStrategy struct {
	wake         *broadcaster
	timeout      time.Duration
	signalNeeded atomicBool
}

// NewLiteTimeoutBlockingWaitStrategy constructs a strategy that times out after timeout.
func NewLiteTimeoutBlockingWaitStrategy(timeout time.Duration) *LiteTimeoutBlockingWaitStrategy {
	return &LiteTimeoutBlockingWaitStrategy{wake: newBroadcaster(), timeout: timeout}
}

func (w *LiteTimeoutBlockingWaitStrategy) WaitFor(ctx context.Context, target int64, cursor *Sequence, dependentSequence sequenceReader, barrier *SequenceBarrier) (int64, error) {
	for cursor.Get() < target {
		w.signalNeeded.set(true)
		gen := w.wake.generation()

		if cursor.Get() >= target {
			break
		}
		if err := barrier.CheckAlert(); err != nil {
			return 0, err
		}

		timer := time.NewTimer(w.timeout)
		select {
		case <-gen:
			timer.Stop()
		case <-ctx.Done():
			timer.Stop()
			return 0, ErrInterrupted
		case <-timer.C:
			return 0, ErrTimeout
		}
	}

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
	}
}

func (w *LiteTimeoutBlockingWaitStrategy) SignalAllWhenBlocking() {
	if w.signalNeeded.swap(false) {
		w.wake.signal()
	}
}
