package disruptor

import (
	"context"
	"sync/atomic"
)

// SequenceBarrier is the consumer-facing coordination object: it combines
// the sequencer's cursor, an optional composite of upstream consumer
// cursors, a wait strategy, and a sticky alert flag.
type SequenceBarrier struct {
	sequencer         Sequencer
	waitStrategy      WaitStrategy
	cursorSequence    *Sequence
	dependentSequence sequenceReader
	alerted           atomic.Bool
}

func newSequenceBarrier(sequencer Sequencer, waitStrategy WaitStrategy, cursorSequence *Sequence, dependentSequences []*Sequence) *SequenceBarrier {
	var dependent sequenceReader
	if len(dependentSequences) == 0 {
		dependent = cursorSequence
	} else {
		dependent = newFixedSequenceGroup(dependentSequences)
	}

	return &SequenceBarrier{
		sequencer:         sequencer,
		waitStrategy:      waitStrategy,
		cursorSequence:    cursorSequence,
		dependentSequence: dependent,
	}
}

// WaitFor blocks until target is safe to read, or returns early with a
// sequence less than target on timeout, or fails with ErrAlert or
// ErrInterrupted.
func (b *SequenceBarrier) WaitFor(ctx context.Context, target int64) (int64, error) {
	if err := b.CheckAlert(); err != nil {
		return 0, err
	}
	if ctx.Err() != nil {
		return 0, ErrInterrupted
	}

	available, err := b.waitStrategy.WaitFor(ctx, target, b.cursorSequence, b.dependentSequence, b)
	if err != nil {
		return 0, err
	}

	if available < target {
		return available, nil
	}

	return b.sequencer.HighestPublished(target, available), nil
}

// Cursor returns the barrier's dependent sequence value: how far this
// barrier's consumer may safely advance.
func (b *SequenceBarrier) Cursor() int64 {
	return b.dependentSequence.Get()
}

// Alert sets the sticky alert flag and wakes any parked waiter so it
// rechecks on its next iteration.
func (b *SequenceBarrier) Alert() {
	b.alerted.Store(true)
	b.waitStrategy.SignalAllWhenBlocking()
}

// ClearAlert resets the alert flag. A no-op if it was not set.
func (b *SequenceBarrier) ClearAlert() {
	b.alerted.Store(false)
}

// CheckAlert returns ErrAlert if the barrier is currently alerted.
func (b *SequenceBarrier) CheckAlert() error {
	if b.alerted.Load() {
		return ErrAlert
	}
	return nil
}

// IsAlerted reports whether the barrier is currently alerted.
func (b *SequenceBarrier) IsAlerted() bool {
	return b.alerted.Load()
}
