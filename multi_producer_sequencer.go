package disruptor

import (
	"sync/atomic"
	"time"
)

// MultiProducerSequencer is a Sequencer safe for concurrent use by any
// number of producer goroutines. It tracks per-slot publication state in
// availableBuffer rather than relying on a single published-up-to cursor,
// because producers may claim a contiguous range and then publish it out of
// order relative to other producers' claims.
type MultiProducerSequencer struct {
	bufferSize   int64
	waitStrategy WaitStrategy
	cursor       *Sequence
	gating       *gatingSequences

	gatingSequenceCache *Sequence

	// availableBuffer[i] holds the lap count at which slot i was last
	// published. isAvailable compares the lap a reader expects against
	// what's stored; a match means that lap's publish reached this slot.
	availableBuffer []atomic.Int32
	indexMask       int64
	indexShift      int64
}

// NewMultiProducerSequencer constructs a MultiProducerSequencer over a ring
// buffer of the given capacity, which must be a power of two.
func NewMultiProducerSequencer(bufferSize int64, waitStrategy WaitStrategy) (*MultiProducerSequencer, error) {
	if bufferSize < 1 || bufferSize&(bufferSize-1) != 0 {
		return nil, ErrInvalidBufferSize
	}

	availableBuffer := make([]atomic.Int32, bufferSize)
	for i := range availableBuffer {
		availableBuffer[i].Store(-1)
	}

	return &MultiProducerSequencer{
		bufferSize:          bufferSize,
		waitStrategy:        waitStrategy,
		cursor:              NewSequence(InitialSequenceValue),
		gating:              newGatingSequences(),
		gatingSequenceCache: NewSequence(InitialSequenceValue),
		availableBuffer:     availableBuffer,
		indexMask:           bufferSize - 1,
		indexShift:          log2(bufferSize),
	}, nil
}

func (s *MultiProducerSequencer) BufferSize() int64 { return s.bufferSize }

func (s *MultiProducerSequencer) Cursor() int64 { return s.cursor.Get() }

func (s *MultiProducerSequencer) HasAvailableCapacity(n int) bool {
	return s.hasAvailableCapacity(int64(n), s.cursor.Get())
}

func (s *MultiProducerSequencer) hasAvailableCapacity(n, cursorValue int64) bool {
	wrapPoint := (cursorValue + n) - s.bufferSize
	cachedGatingSequence := s.gatingSequenceCache.Get()

	if wrapPoint > cachedGatingSequence || cachedGatingSequence > cursorValue {
		minSequence := s.gating.minimum(cursorValue)
		s.gatingSequenceCache.Set(minSequence)
		if wrapPoint > minSequence {
			return false
		}
	}

	return true
}

func (s *MultiProducerSequencer) RemainingCapacity() int64 {
	cursorValue := s.cursor.Get()
	consumed := s.gating.minimum(cursorValue)
	produced := cursorValue
	return s.bufferSize - (produced - consumed)
}

func (s *MultiProducerSequencer) Next(n int) (int64, error) {
	if n < 1 || int64(n) > s.bufferSize {
		return 0, ErrInvalidClaimSize
	}

	current := s.cursor.GetAndAdd(int64(n))
	nextSequence := current + int64(n)
	wrapPoint := nextSequence - s.bufferSize
	cachedGatingSequence := s.gatingSequenceCache.Get()

	if wrapPoint > cachedGatingSequence || cachedGatingSequence > current {
		for {
			gatingSequence := s.gating.minimum(current)
			if wrapPoint <= gatingSequence {
				s.gatingSequenceCache.Set(gatingSequence)
				break
			}
			time.Sleep(time.Nanosecond)
		}
	}

	return nextSequence, nil
}

func (s *MultiProducerSequencer) TryNext(n int) (int64, error) {
	if n < 1 || int64(n) > s.bufferSize {
		return 0, ErrInvalidClaimSize
	}

	for {
		current := s.cursor.Get()
		next := current + int64(n)

		if !s.hasAvailableCapacity(int64(n), current) {
			return 0, ErrInsufficientCapacity
		}

		if s.cursor.CompareAndSet(current, next) {
			return next, nil
		}
	}
}

func (s *MultiProducerSequencer) PublishOne(sequence int64) {
	s.setAvailable(sequence)
	s.waitStrategy.SignalAllWhenBlocking()
}

func (s *MultiProducerSequencer) PublishRange(lo, hi int64) {
	for sequence := lo; sequence <= hi; sequence++ {
		s.setAvailable(sequence)
	}
	s.waitStrategy.SignalAllWhenBlocking()
}

func (s *MultiProducerSequencer) setAvailable(sequence int64) {
	s.availableBuffer[s.calculateIndex(sequence)].Store(s.calculateAvailabilityFlag(sequence))
}

func (s *MultiProducerSequencer) IsAvailable(sequence int64) bool {
	index := s.calculateIndex(sequence)
	flag := s.calculateAvailabilityFlag(sequence)
	return s.availableBuffer[index].Load() == flag
}

func (s *MultiProducerSequencer) HighestPublished(lowerBound, availableSequence int64) int64 {
	for sequence := lowerBound; sequence <= availableSequence; sequence++ {
		if !s.IsAvailable(sequence) {
			return sequence - 1
		}
	}
	return availableSequence
}

// calculateAvailabilityFlag returns the lap count at which sequence wraps
// into its slot, used as the value stored in availableBuffer to distinguish
// a fresh publish from a stale one left by a previous lap.
func (s *MultiProducerSequencer) calculateAvailabilityFlag(sequence int64) int32 {
	return int32(sequence >> s.indexShift)
}

func (s *MultiProducerSequencer) calculateIndex(sequence int64) int64 {
	return sequence & s.indexMask
}

func (s *MultiProducerSequencer) Claim(sequence int64) {
	s.cursor.Set(sequence)
}

func (s *MultiProducerSequencer) AddGatingSequences(sequences ...*Sequence) {
	s.gating.add(s.Cursor, sequences...)
}

func (s *MultiProducerSequencer) RemoveGatingSequence(sequence *Sequence) bool {
	return s.gating.remove(sequence)
}

func (s *MultiProducerSequencer) MinimumGatingSequence() int64 {
	return s.gating.minimum(s.Cursor())
}

func (s *MultiProducerSequencer) NewBarrier(dependentSequences ...*Sequence) *SequenceBarrier {
	return newSequenceBarrier(s, s.waitStrategy, s.cursor, dependentSequences)
}

func (s *MultiProducerSequencer) WaitStrategy() WaitStrategy { return s.waitStrategy }
