package disruptor

import "context"

// BlockingWaitStrategy parks on a broadcaster while waiting for the
// producer cursor and spins checking the alert flag while waiting for
// dependent (upstream) consumers. CPU-frugal, at the cost of a wakeup's
// worth of latency when a publish happens.
type BlockingWaitStrategy struct {
	wake *broadcaster
}

// NewBlockingWaitStrategy constructs a ready-to-use BlockingWaitStrategy.
func NewBlockingWaitStrategy() *BlockingWaitStrategy {
	return &BlockingWaitStrategy{wake: newBroadcaster()}
}

func (w *BlockingWaitStrategy) WaitFor(ctx context.Context, target int64, cursor *Sequence, dependentSequence sequenceReader, barrier *SequenceBarrier) (int64, error) {
	for {
		gen := w.wake.generation()
		if cursor.Get() >= target {
			break
		}
		if err := barrier.CheckAlert(); err != nil {
			return 0, err
		}
		select {
		case <-gen:
		case <-ctx.Done():
			return 0, ErrInterrupted
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

func (w *BlockingWaitStrategy) SignalAllWhenBlocking() {
	w.wake.signal()
}

// LiteBlockingWaitStrategy behaves like BlockingWaitStrategy but elides the
// broadcast when no waiter has registered interest since the last one,
// trading a signalNeeded flag for fewer wakeups under light contention.
type LiteBlockingWaitStrategy struct {
	wake         *broadcaster
	signalNeeded atomicBool
}

// NewLiteBlockingWaitStrategy constructs a ready-to-use LiteBlockingWaitStrategy.
func NewLiteBlockingWaitStrategy() *LiteBlockingWaitStrategy {
	return &LiteBlockingWaitStrategy{wake: newBroadcaster()}
}

func (w *LiteBlockingWaitStrategy) WaitFor(ctx context.Context, target int64, cursor *Sequence, dependentSequence sequenceReader, barrier *SequenceBarrier) (int64, error) {
	for cursor.Get() < target {
		w.signalNeeded.set(true)
		gen := w.wake.generation()

		if cursor.Get() >= target {
			break
		}
		if err := barrier.CheckAlert(); err != nil {
			return 0, err
		}
		select {
		case <-gen:
		case <-ctx.Done():
			return 0, ErrInterrupted
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

func (w *LiteBlockingWaitStrategy) SignalAllWhenBlocking() {
	if w.signalNeeded.swap(false) {
		w.wake.signal()
	}
}
