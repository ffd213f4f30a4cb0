package disruptor

import (
	"context"
	"sync"
	"sync/atomic"
)

// ReqReplyStats mirrors the counters the original bounded queue tracked,
// repurposed here to describe a request/reply exchange built on the
// sequencer/ring-buffer/batch-processor core instead of a raw MPMC ring.
type ReqReplyStats struct {
	EnqueueAttempts        uint64
	EnqueueFailedQueueFull uint64
	Success                uint64
	Cancelled              uint64
}

type reqReplySlot[Req, Resp any] struct {
	request  Req
	response Resp
	reply    chan error
}

// reqReplyHandler adapts a plain handle function into an EventHandler so it
// can drive a BatchEventProcessor: every claimed slot is a request awaiting
// a response, and replying is just sending on the channel the caller is
// blocked reading from (or, for DoNoWait, nobody).
type reqReplyHandler[Req, Resp any] struct {
	handle func(Req) (Resp, error)
}

func (h *reqReplyHandler[Req, Resp]) OnEvent(event *reqReplySlot[Req, Resp], sequence int64, endOfBatch bool) error {
	resp, err := h.handle(event.request)
	event.response = resp
	if event.reply != nil {
		event.reply <- err
		event.reply = nil
	}
	return nil
}

// ReqReply is a request/reply convenience layer over a single-slot-per-call
// ring buffer: Do publishes a request and blocks for its response (or ctx
// cancellation), DoNoWait publishes without waiting for one. One dedicated
// goroutine runs the handler via Start; callers may be any number of
// concurrent producer goroutines.
type ReqReply[Req, Resp any] struct {
	ring      *RingBuffer[reqReplySlot[Req, Resp]]
	sequencer Sequencer
	processor *BatchEventProcessor[reqReplySlot[Req, Resp]]
	replyPool sync.Pool

	enqueueAttempts        atomic.Uint64
	enqueueFailedQueueFull atomic.Uint64
	success                atomic.Uint64
	cancelled              atomic.Uint64
}

// NewReqReply constructs a ReqReply backed by a ring of capacity slots
// (a positive power of two), dispatching every published request to handle
// from the single goroutine started by Start.
func NewReqReply[Req, Resp any](capacity int64, waitStrategy WaitStrategy, handle func(Req) (Resp, error)) (*ReqReply[Req, Resp], error) {
	ring, err := NewRingBuffer(capacity, func() reqReplySlot[Req, Resp] {
		return reqReplySlot[Req, Resp]{}
	})
	if err != nil {
		return nil, err
	}

	sequencer, err := NewMultiProducerSequencer(capacity, waitStrategy)
	if err != nil {
		return nil, err
	}

	barrier := sequencer.NewBarrier()
	handler := &reqReplyHandler[Req, Resp]{handle: handle}
	processor, err := NewBatchEventProcessor[reqReplySlot[Req, Resp]](ring, barrier, handler, int(capacity), nil)
	if err != nil {
		return nil, err
	}
	sequencer.AddGatingSequences(processor.Sequence())

	return &ReqReply[Req, Resp]{
		ring:      ring,
		sequencer: sequencer,
		processor: processor,
	}, nil
}

// Start runs the handler goroutine until ctx is cancelled or Stop is
// called. Callers must not call Start twice concurrently.
func (r *ReqReply[Req, Resp]) Start(ctx context.Context) {
	go func() {
		_ = r.processor.Run(ctx)
	}()
}

// Stop halts the handler goroutine at its next opportunity to check.
func (r *ReqReply[Req, Resp]) Stop() {
	r.processor.Halt()
}

// Do publishes req and blocks for its response, or returns ctx.Err() if ctx
// is done first. It never blocks waiting for ring capacity: a full ring
// fails immediately with ErrInsufficientCapacity so a slow handler can't
// turn a burst of callers into an unbounded pile of blocked goroutines.
func (r *ReqReply[Req, Resp]) Do(ctx context.Context, req Req) (Resp, error) {
	var zero Resp

	chv := r.replyPool.Get()
	var ch chan error
	if chv == nil {
		ch = make(chan error, 1)
	} else {
		ch = chv.(chan error)
	}

	r.enqueueAttempts.Add(1)
	sequence, err := r.sequencer.TryNext(1)
	if err != nil {
		r.enqueueFailedQueueFull.Add(1)
		return zero, ErrInsufficientCapacity
	}

	slot := r.ring.Get(sequence)
	slot.request = req
	slot.response = zero
	slot.reply = ch
	r.sequencer.PublishOne(sequence)

	select {
	case err := <-ch:
		r.success.Add(1)
		resp := slot.response
		r.replyPool.Put(ch)
		return resp, err
	case <-ctx.Done():
		r.cancelled.Add(1)
		return zero, ctx.Err()
	}
}

// DoNoWait publishes req without waiting for a response, discarding
// whatever handle returns. Reports whether the request was accepted.
func (r *ReqReply[Req, Resp]) DoNoWait(req Req) bool {
	r.enqueueAttempts.Add(1)
	sequence, err := r.sequencer.TryNext(1)
	if err != nil {
		r.enqueueFailedQueueFull.Add(1)
		return false
	}

	slot := r.ring.Get(sequence)
	slot.request = req
	slot.reply = nil
	r.sequencer.PublishOne(sequence)

	return true
}

// Stats returns a snapshot of the exchange's counters.
func (r *ReqReply[Req, Resp]) Stats() ReqReplyStats {
	return ReqReplyStats{
		EnqueueAttempts:        r.enqueueAttempts.Load(),
		EnqueueFailedQueueFull: r.enqueueFailedQueueFull.Load(),
		Success:                r.success.Load(),
		Cancelled:              r.cancelled.Load(),
	}
}
