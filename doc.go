// Package disruptor implements a lock-free, single-writer-principle
// ring buffer for high-throughput in-process event exchange.
//
// Producers claim slots from a Sequencer, write into the RingBuffer, and
// publish the claimed sequence. Independent consumers are driven by a
// BatchEventProcessor that waits on a SequenceBarrier for newly published
// sequences, reads the corresponding slots in batches and advances its own
// cursor, which the sequencer's gating set in turn treats as backpressure.
//
// There are two sequencer variants: SingleProducerSequencer for the case
// where exactly one goroutine ever claims sequences, and
// MultiProducerSequencer for concurrent claims from many goroutines. Both
// implement the Sequencer interface and share the same RingBuffer and
// SequenceBarrier machinery.
package disruptor
