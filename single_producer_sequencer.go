package disruptor

import "runtime"

// SingleProducerSequencer is a Sequencer for exactly one producer goroutine.
// Next/TryNext/PublishOne/PublishRange must never be called concurrently;
// in normal builds doing so corrupts nextValue and cachedValue silently
// rather than panicking, matching the original's documented contract. Builds
// with the disruptordebug tag panic on overlapping Next/TryNext/Claim calls.
type SingleProducerSequencer struct {
	bufferSize   int64
	waitStrategy WaitStrategy
	cursor       *Sequence
	gating       *gatingSequences

	// nextValue and cachedValue are touched only by the single producer and
	// therefore need no atomics; cursor is still a *Sequence because
	// consumers read it concurrently.
	nextValue   int64
	cachedValue int64

	guard claimGuard
}

// NewSingleProducerSequencer constructs a SingleProducerSequencer over a
// ring buffer of the given capacity, which must be a power of two.
func NewSingleProducerSequencer(bufferSize int64, waitStrategy WaitStrategy) (*SingleProducerSequencer, error) {
	if bufferSize < 1 || bufferSize&(bufferSize-1) != 0 {
		return nil, ErrInvalidBufferSize
	}

	return &SingleProducerSequencer{
		bufferSize:   bufferSize,
		waitStrategy: waitStrategy,
		cursor:       NewSequence(InitialSequenceValue),
		gating:       newGatingSequences(),
		nextValue:    InitialSequenceValue,
		cachedValue:  InitialSequenceValue,
	}, nil
}

func (s *SingleProducerSequencer) BufferSize() int64 { return s.bufferSize }

func (s *SingleProducerSequencer) Cursor() int64 { return s.cursor.Get() }

func (s *SingleProducerSequencer) HasAvailableCapacity(n int) bool {
	return s.hasAvailableCapacity(int64(n))
}

// hasAvailableCapacity is shared by HasAvailableCapacity and TryNext. It
// refreshes the producer's cached view of the slowest gating consumer only
// when the cheap check against the stale cache is inconclusive.
func (s *SingleProducerSequencer) hasAvailableCapacity(n int64) bool {
	nextValue := s.nextValue
	wrapPoint := (nextValue + n) - s.bufferSize
	cachedGatingSequence := s.cachedValue

	if wrapPoint > cachedGatingSequence || cachedGatingSequence > nextValue {
		minSequence := s.gating.minimum(nextValue)
		s.cachedValue = minSequence
		if wrapPoint > minSequence {
			return false
		}
	}

	return true
}

func (s *SingleProducerSequencer) RemainingCapacity() int64 {
	nextValue := s.nextValue
	consumed := s.gating.minimum(nextValue)
	produced := nextValue
	return s.bufferSize - (produced - consumed)
}

func (s *SingleProducerSequencer) Next(n int) (int64, error) {
	s.guard.enter()
	defer s.guard.exit()

	if n < 1 || int64(n) > s.bufferSize {
		return 0, ErrInvalidClaimSize
	}

	nextValue := s.nextValue
	nextSequence := nextValue + int64(n)
	wrapPoint := nextSequence - s.bufferSize
	cachedGatingSequence := s.cachedValue

	if wrapPoint > cachedGatingSequence || cachedGatingSequence > nextValue {
		s.cursor.SetVolatile(nextValue)

		spin := 0
		for wrapPoint > s.gating.minimum(nextValue) {
			spin++
			if spin%64 == 0 {
				runtime.Gosched()
			}
		}

		s.cachedValue = s.gating.minimum(nextValue)
	}

	s.nextValue = nextSequence
	return nextSequence, nil
}

func (s *SingleProducerSequencer) TryNext(n int) (int64, error) {
	s.guard.enter()
	defer s.guard.exit()

	if n < 1 || int64(n) > s.bufferSize {
		return 0, ErrInvalidClaimSize
	}

	if !s.hasAvailableCapacity(int64(n)) {
		return 0, ErrInsufficientCapacity
	}

	s.nextValue += int64(n)
	return s.nextValue, nil
}

func (s *SingleProducerSequencer) PublishOne(sequence int64) {
	s.cursor.SetRelease(sequence)
	s.waitStrategy.SignalAllWhenBlocking()
}

func (s *SingleProducerSequencer) PublishRange(lo, hi int64) {
	s.PublishOne(hi)
}

func (s *SingleProducerSequencer) IsAvailable(sequence int64) bool {
	currentSequence := s.cursor.Get()
	return sequence <= currentSequence && sequence > currentSequence-s.bufferSize
}

func (s *SingleProducerSequencer) HighestPublished(lowerBound, availableSequence int64) int64 {
	return availableSequence
}

func (s *SingleProducerSequencer) Claim(sequence int64) {
	s.guard.enter()
	defer s.guard.exit()

	s.nextValue = sequence
	s.cursor.SetRelease(sequence)
}

func (s *SingleProducerSequencer) AddGatingSequences(sequences ...*Sequence) {
	s.gating.add(s.Cursor, sequences...)
}

func (s *SingleProducerSequencer) RemoveGatingSequence(sequence *Sequence) bool {
	return s.gating.remove(sequence)
}

func (s *SingleProducerSequencer) MinimumGatingSequence() int64 {
	return s.gating.minimum(s.Cursor())
}

func (s *SingleProducerSequencer) NewBarrier(dependentSequences ...*Sequence) *SequenceBarrier {
	return newSequenceBarrier(s, s.waitStrategy, s.cursor, dependentSequences)
}

func (s *SingleProducerSequencer) WaitStrategy() WaitStrategy { return s.waitStrategy }
