package disruptor

import (
	"context"
	"sync/atomic"

	"github.com/pkg/errors"
)

type processorState int32

const (
	processorIdle processorState = iota
	processorHalted
	processorRunning
)

// BatchEventProcessor drives an EventHandler over a RingBuffer: it owns one
// Sequence, waits on one SequenceBarrier, and reads batches of events as
// they become available, dispatching each to the handler in order. Run a
// BatchEventProcessor in its own goroutine; Halt stops it from any other.
type BatchEventProcessor[T any] struct {
	dataProvider     DataProvider[T]
	barrier          *SequenceBarrier
	handler          EventHandler[T]
	batchLimitOffset int64
	sequence         *Sequence

	batchRewindStrategy BatchRewindStrategy
	rewindCapable       bool
	retriesAttempted    int

	exceptionHandler atomic.Pointer[ExceptionHandler[T]]
	running          atomic.Int32

	batchStartHandler BatchStartHandler
	lifecycleAware    LifecycleAware
	timeoutHandler    TimeoutHandler
}

// NewBatchEventProcessor constructs a BatchEventProcessor reading from
// dataProvider, gated by barrier, dispatching to handler in batches no
// larger than maxBatchSize. batchRewindStrategy may be nil, in which case a
// RewindableError returned by handler is not replayed: it reaches the
// ExceptionHandler wrapped as ErrUnsupportedRewind and the failing sequence
// is skipped.
func NewBatchEventProcessor[T any](
	dataProvider DataProvider[T],
	barrier *SequenceBarrier,
	handler EventHandler[T],
	maxBatchSize int,
	batchRewindStrategy BatchRewindStrategy,
) (*BatchEventProcessor[T], error) {
	if maxBatchSize < 1 {
		return nil, ErrInvalidClaimSize
	}

	p := &BatchEventProcessor[T]{
		dataProvider:        dataProvider,
		barrier:             barrier,
		handler:             handler,
		batchLimitOffset:    int64(maxBatchSize - 1),
		sequence:            NewSequence(InitialSequenceValue),
		batchRewindStrategy: batchRewindStrategy,
	}
	if _, ok := handler.(rewindable); ok {
		p.rewindCapable = true
	}

	if h, ok := handler.(BatchStartHandler); ok {
		p.batchStartHandler = h
	}
	if h, ok := handler.(LifecycleAware); ok {
		p.lifecycleAware = h
	}
	if h, ok := handler.(TimeoutHandler); ok {
		p.timeoutHandler = h
	}
	if h, ok := handler.(SequenceCallbackAware); ok {
		h.SetSequenceCallback(p.sequence.SetRelease)
	}

	defaultHandler := ExceptionHandler[T](NewLoggingExceptionHandler[T](defaultProcessorLogger()))
	p.exceptionHandler.Store(&defaultHandler)

	return p, nil
}

// Sequence returns the processor's own progress cursor, suitable for
// passing to AddGatingSequences or another barrier as a dependency.
func (p *BatchEventProcessor[T]) Sequence() *Sequence { return p.sequence }

// SetExceptionHandler replaces the handler used for errors this processor
// cannot route any other way.
func (p *BatchEventProcessor[T]) SetExceptionHandler(handler ExceptionHandler[T]) {
	p.exceptionHandler.Store(&handler)
}

func (p *BatchEventProcessor[T]) getExceptionHandler() ExceptionHandler[T] {
	return *p.exceptionHandler.Load()
}

// Halt stops the processor at its next opportunity to check: it will finish
// dispatching the rest of the batch in flight, then return from Run.
func (p *BatchEventProcessor[T]) Halt() {
	p.running.Store(int32(processorHalted))
	p.barrier.Alert()
}

// IsRunning reports whether the processor is currently running or halted
// mid-shutdown, as opposed to never having been started or having fully
// stopped.
func (p *BatchEventProcessor[T]) IsRunning() bool {
	return p.running.Load() != int32(processorIdle)
}

// Run blocks, dispatching events to the handler, until Halt is called or ctx
// is cancelled. Handler errors are routed to the ExceptionHandler and do not
// end Run. It is an error to call Run concurrently on the same processor
// from two goroutines.
func (p *BatchEventProcessor[T]) Run(ctx context.Context) error {
	if !p.running.CompareAndSwap(int32(processorIdle), int32(processorRunning)) {
		if p.running.Load() == int32(processorRunning) {
			return ErrIllegalState
		}
		p.notifyStart()
		p.notifyShutdown()
		return nil
	}

	p.barrier.ClearAlert()
	p.notifyStart()

	var runErr error
	defer func() {
		p.notifyShutdown()
		p.running.Store(int32(processorIdle))
	}()

	if p.running.Load() == int32(processorRunning) {
		runErr = p.processEvents(ctx)
	}

	return runErr
}

func (p *BatchEventProcessor[T]) processEvents(ctx context.Context) error {
	var event *T
	nextSequence := p.sequence.Get() + 1

	for {
		startOfBatchSequence := nextSequence

		availableSequence, err := p.barrier.WaitFor(ctx, nextSequence)
		if err == ErrTimeout {
			p.notifyTimeout(p.sequence.Get())
			continue
		}
		if err == ErrInterrupted {
			return ctx.Err()
		}
		if err == ErrAlert {
			if p.running.Load() != int32(processorRunning) {
				return nil
			}
			continue
		}

		endOfBatchSequence := min64(nextSequence+p.batchLimitOffset, availableSequence)

		if nextSequence <= endOfBatchSequence && p.batchStartHandler != nil {
			p.batchStartHandler.OnBatchStart(endOfBatchSequence-nextSequence+1, availableSequence-nextSequence+1)
		}

		rewound := false
		for nextSequence <= endOfBatchSequence {
			event = p.dataProvider.Get(nextSequence)

			handlerErr := p.handler.OnEvent(event, nextSequence, nextSequence == endOfBatchSequence)
			if handlerErr == nil {
				nextSequence++
				continue
			}

			if rewindable, ok := handlerErr.(*RewindableError); ok {
				nextSequence = p.attemptRewind(rewindable, startOfBatchSequence, nextSequence)
				rewound = true
				break
			}

			p.getExceptionHandler().HandleEventError(handlerErr, nextSequence, event)
			p.sequence.SetRelease(nextSequence)
			nextSequence++
		}

		if rewound {
			continue
		}

		p.retriesAttempted = 0
		p.sequence.SetRelease(endOfBatchSequence)
	}
}

// attemptRewind consults the configured BatchRewindStrategy and either
// returns startOfBatchSequence to replay the batch or, if the handler isn't
// rewind-capable, the strategy declines, or none was configured, routes err
// to the ExceptionHandler for failedSequence and advances past that sequence
// so the processor doesn't spin on it forever.
func (p *BatchEventProcessor[T]) attemptRewind(err *RewindableError, startOfBatchSequence, failedSequence int64) int64 {
	if !p.rewindCapable || p.batchRewindStrategy == nil {
		p.retriesAttempted = 0
		p.getExceptionHandler().HandleEventError(errors.Wrap(ErrUnsupportedRewind, err.Error()), failedSequence, nil)
		p.sequence.SetRelease(failedSequence)
		return failedSequence + 1
	}

	p.retriesAttempted++
	if p.batchRewindStrategy.HandleRewindException(err, p.retriesAttempted) == RewindActionRewind {
		return startOfBatchSequence
	}

	p.retriesAttempted = 0
	p.getExceptionHandler().HandleEventError(err, failedSequence, nil)
	p.sequence.SetRelease(failedSequence)
	return failedSequence + 1
}

func (p *BatchEventProcessor[T]) notifyTimeout(sequence int64) {
	if p.timeoutHandler == nil {
		return
	}
	if err := p.timeoutHandler.OnTimeout(sequence); err != nil {
		p.getExceptionHandler().HandleEventError(err, sequence, nil)
	}
}

func (p *BatchEventProcessor[T]) notifyStart() {
	if p.lifecycleAware == nil {
		return
	}
	if err := p.lifecycleAware.OnStart(); err != nil {
		p.getExceptionHandler().HandleStartError(err)
	}
}

func (p *BatchEventProcessor[T]) notifyShutdown() {
	if p.lifecycleAware == nil {
		return
	}
	if err := p.lifecycleAware.OnShutdown(); err != nil {
		p.getExceptionHandler().HandleShutdownError(err)
	}
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
