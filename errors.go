package disruptor

import "github.com/pkg/errors"

// ErrInsufficientCapacity is returned by the TryNext family when the ring
// buffer has no room for the requested claim without blocking.
var ErrInsufficientCapacity = errors.New("disruptor: insufficient ring buffer capacity")

// ErrAlert is returned by a WaitStrategy (and surfaces through
// SequenceBarrier.WaitFor) when the barrier has been alerted while a
// goroutine was parked waiting for a sequence.
var ErrAlert = errors.New("disruptor: sequence barrier alerted")

// ErrTimeout is returned by timing wait strategies when their deadline
// elapses before the awaited sequence becomes available.
var ErrTimeout = errors.New("disruptor: wait strategy timed out")

// ErrInterrupted is returned by a WaitStrategy (and surfaces through
// SequenceBarrier.WaitFor) when the context.Context passed to
// BatchEventProcessor.Run is cancelled while a goroutine was parked
// waiting for a sequence. The Go analogue of interrupting the consumer
// thread in the original.
var ErrInterrupted = errors.New("disruptor: wait interrupted by context cancellation")

// ErrUnsupportedRewind is handed to the ExceptionHandler (wrapped with the
// handler's error text) when a handler returns a RewindableError but does not
// embed Rewindable, or when no BatchRewindStrategy was configured.
var ErrUnsupportedRewind = errors.New("disruptor: rewindable error from a non-rewindable handler")

// ErrIllegalState is returned by BatchEventProcessor.Run when the processor
// is already running.
var ErrIllegalState = errors.New("disruptor: processor is already running")

// ErrInvalidBufferSize is returned by ring buffer and sequencer
// constructors when the requested capacity is not a positive power of two.
var ErrInvalidBufferSize = errors.New("disruptor: buffer size must be a positive power of two")

// ErrInvalidClaimSize is returned by Next/TryNext when n is outside [1, bufferSize].
var ErrInvalidClaimSize = errors.New("disruptor: claim size must be between 1 and the buffer size")
