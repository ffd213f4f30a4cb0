package disruptor

// EventFactory constructs one freshly allocated, empty event. RingBuffer
// calls it exactly Capacity times at construction to pre-fill every slot.
type EventFactory[T any] func() T

// EventTranslator mutates an event in place given the sequence it has been
// assigned. Used by convenience publish helpers so callers never handle a
// raw pointer into the ring themselves.
type EventTranslator[T any] func(event *T, sequence int64)

// DataProvider is the read side of a ring buffer, decoupled from its
// sequencing so consumers can be tested against a fake provider.
type DataProvider[T any] interface {
	Get(sequence int64) *T
}

// RingBuffer is a fixed-capacity, pre-allocated array of events addressed
// by sequence modulo capacity. It is never reallocated or resized after
// construction; ownership of a slot between claim and publish belongs
// exclusively to the claiming producer, and between publish and the
// slowest consumer's advance the slot is read-only.
type RingBuffer[T any] struct {
	mask    int64
	entries []T
}

// NewRingBuffer allocates a ring of the given capacity, which must be a
// positive power of two, and fills every slot via factory.
func NewRingBuffer[T any](capacity int64, factory EventFactory[T]) (*RingBuffer[T], error) {
	if capacity < 1 || capacity&(capacity-1) != 0 {
		return nil, ErrInvalidBufferSize
	}
	entries := make([]T, capacity)
	for i := range entries {
		entries[i] = factory()
	}
	return &RingBuffer[T]{mask: capacity - 1, entries: entries}, nil
}

// Get returns a pointer to the slot holding sequence, for in-place reads or writes.
func (r *RingBuffer[T]) Get(sequence int64) *T {
	return &r.entries[sequence&r.mask]
}

// Capacity returns the fixed number of slots in the ring.
func (r *RingBuffer[T]) Capacity() int64 {
	return r.mask + 1
}

// Publish claims the next sequence on sequencer, hands the slot to
// translator, and publishes it. This is the convenience path most callers
// use instead of manually calling Next/Get/PublishOne.
func Publish[T any](ring *RingBuffer[T], sequencer Sequencer, translator EventTranslator[T]) (int64, error) {
	sequence, err := sequencer.Next(1)
	if err != nil {
		return 0, err
	}
	translator(ring.Get(sequence), sequence)
	sequencer.PublishOne(sequence)
	return sequence, nil
}

// TryPublish is the non-blocking counterpart of Publish: it returns
// ErrInsufficientCapacity instead of blocking when the ring is full.
func TryPublish[T any](ring *RingBuffer[T], sequencer Sequencer, translator EventTranslator[T]) (int64, error) {
	sequence, err := sequencer.TryNext(1)
	if err != nil {
		return 0, err
	}
	translator(ring.Get(sequence), sequence)
	sequencer.PublishOne(sequence)
	return sequence, nil
}
