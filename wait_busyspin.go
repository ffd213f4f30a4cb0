package disruptor

import "context"

// BusySpinWaitStrategy never yields the processor: it spins tightly,
// checking the alert flag every iteration. Lowest possible latency;
// dedicates a whole core to the waiting consumer. Relies on Go's
// asynchronous goroutine preemption rather than an explicit yield to keep
// the rest of the runtime alive under GOMAXPROCS=1.
type BusySpinWaitStrategy struct{}

// NewBusySpinWaitStrategy constructs a BusySpinWaitStrategy.
func NewBusySpinWaitStrategy() *BusySpinWaitStrategy {
	return &BusySpinWaitStrategy{}
}

func (w *BusySpinWaitStrategy) WaitFor(ctx context.Context, target int64, cursor *Sequence, dependentSequence sequenceReader, barrier *SequenceBarrier) (int64, error) {
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

func (w *BusySpinWaitStrategy) SignalAllWhenBlocking() {
}
