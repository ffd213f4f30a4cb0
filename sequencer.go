package disruptor

import "math/bits"

// Sequencer coordinates claiming sequences for access to a ring buffer
// while tracking the gating sequences of the consumers that must not be
// overrun. SingleProducerSequencer and MultiProducerSequencer are the two
// implementations; pick the former only when exactly one goroutine will
// ever call Next/TryNext/PublishOne/PublishRange on it.
type Sequencer interface {
	// BufferSize returns the fixed capacity this sequencer sequences over.
	BufferSize() int64

	// Cursor returns the sequencer's own cursor: the highest claimed
	// sequence for MultiProducerSequencer, the highest published sequence
	// for SingleProducerSequencer.
	Cursor() int64

	// HasAvailableCapacity reports, without blocking, whether n more
	// sequences could be claimed right now. The answer is advisory under
	// concurrent claims.
	HasAvailableCapacity(n int) bool

	// RemainingCapacity estimates the number of slots not yet claimed by
	// a producer or not yet released by the slowest gating consumer.
	RemainingCapacity() int64

	// Next blocks until n sequences (1 <= n <= BufferSize) can be safely
	// claimed and returns the highest sequence of the claimed range.
	Next(n int) (int64, error)

	// TryNext behaves like Next but fails with ErrInsufficientCapacity
	// instead of blocking when there is no room.
	TryNext(n int) (int64, error)

	// PublishOne publishes a single claimed sequence, making its slot
	// visible to consumers, and wakes any parked waiters.
	PublishOne(sequence int64)

	// PublishRange publishes every sequence in [lo, hi].
	PublishRange(lo, hi int64)

	// IsAvailable reports whether sequence has been published and its
	// slot may be read.
	IsAvailable(sequence int64) bool

	// HighestPublished returns the highest sequence in [lowerBound,
	// availableSequence] that is contiguously published starting at
	// lowerBound.
	HighestPublished(lowerBound, availableSequence int64) int64

	// Claim administratively repositions the cursor, e.g. while priming a
	// buffer before any consumer has attached. The caller is responsible
	// for ensuring no data past the new cursor is still relied upon; its
	// behavior otherwise is undefined by design.
	Claim(sequence int64)

	// AddGatingSequences registers consumer sequences the sequencer must
	// not let its cursor outrun by more than BufferSize.
	AddGatingSequences(sequences ...*Sequence)

	// RemoveGatingSequence removes every occurrence of sequence from the
	// gating set, identified by pointer identity. Reports whether
	// anything was removed.
	RemoveGatingSequence(sequence *Sequence) bool

	// MinimumGatingSequence returns the minimum value across the gating
	// set, or the sequencer's own cursor if the set is empty.
	MinimumGatingSequence() int64

	// NewBarrier builds a SequenceBarrier that tracks dependentSequences,
	// or the sequencer's own cursor if none are given.
	NewBarrier(dependentSequences ...*Sequence) *SequenceBarrier

	// WaitStrategy returns the wait strategy this sequencer was built with.
	WaitStrategy() WaitStrategy
}

// log2 returns the base-2 logarithm of n, which must be a power of two.
func log2(n int64) int64 {
	return int64(bits.TrailingZeros64(uint64(n)))
}

// minimumSequence returns the minimum Get() across sequences, or
// fallback if sequences is empty.
func minimumSequence(sequences []*Sequence, fallback int64) int64 {
	minimum := fallback
	for _, s := range sequences {
		v := s.Get()
		if v < minimum {
			minimum = v
		}
	}
	return minimum
}
