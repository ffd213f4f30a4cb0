package disruptor

import (
	"sync"
	"testing"
)

// BenchmarkSingleProducerSequencerClaimPublish measures one goroutine's
// claim/publish throughput against a consumer that drains as fast as it
// can.
func BenchmarkSingleProducerSequencerClaimPublish(b *testing.B) {
	const capacity = 1 << 16

	seqr, err := NewSingleProducerSequencer(capacity, NewBusySpinWaitStrategy())
	if err != nil {
		b.Fatal(err)
	}
	consumer := NewSequence(InitialSequenceValue)
	seqr.AddGatingSequences(consumer)

	done := make(chan struct{})
	go func() {
		for processed := 0; processed < b.N; {
			if seqr.Cursor() > consumer.Get() {
				consumer.SetRelease(seqr.Cursor())
				processed = int(seqr.Cursor()) + 1
			}
		}
		close(done)
	}()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		seq, err := seqr.Next(1)
		if err != nil {
			b.Fatal(err)
		}
		seqr.PublishOne(seq)
	}
	<-done
	b.StopTimer()
}

// BenchmarkMultiProducerSequencerClaimPublish measures claim/publish
// throughput under contention from several producer goroutines.
func BenchmarkMultiProducerSequencerClaimPublish(b *testing.B) {
	const (
		capacity  = 1 << 16
		producers = 8
	)

	seqr, err := NewMultiProducerSequencer(capacity, NewBusySpinWaitStrategy())
	if err != nil {
		b.Fatal(err)
	}
	consumer := NewSequence(InitialSequenceValue)
	seqr.AddGatingSequences(consumer)

	stop := make(chan struct{})
	go func() {
		for {
			select {
			case <-stop:
				return
			default:
			}
			highest := seqr.HighestPublished(consumer.Get()+1, seqr.Cursor())
			if highest > consumer.Get() {
				consumer.SetRelease(highest)
			}
		}
	}()

	perProducer := b.N / producers
	var wg sync.WaitGroup

	b.ResetTimer()
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				seq, err := seqr.Next(1)
				if err != nil {
					b.Error(err)
					return
				}
				seqr.PublishOne(seq)
			}
		}()
	}
	wg.Wait()
	b.StopTimer()
	close(stop)
}

// BenchmarkRingBufferPublish measures the convenience Publish path,
// including the translator call, against a single-producer sequencer.
func BenchmarkRingBufferPublish(b *testing.B) {
	const capacity = 1 << 16

	ring, err := NewRingBuffer[int64](capacity, func() int64 { return 0 })
	if err != nil {
		b.Fatal(err)
	}
	seqr, err := NewSingleProducerSequencer(capacity, NewBusySpinWaitStrategy())
	if err != nil {
		b.Fatal(err)
	}
	consumer := NewSequence(InitialSequenceValue)
	seqr.AddGatingSequences(consumer)

	done := make(chan struct{})
	go func() {
		for processed := 0; processed < b.N; {
			if seqr.Cursor() > consumer.Get() {
				consumer.SetRelease(seqr.Cursor())
				processed = int(seqr.Cursor()) + 1
			}
		}
		close(done)
	}()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, err := Publish(ring, seqr, func(event *int64, sequence int64) {
			*event = sequence
		})
		if err != nil {
			b.Fatal(err)
		}
	}
	<-done
	b.StopTimer()
}
