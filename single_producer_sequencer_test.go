package disruptor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewSingleProducerSequencerRejectsBadCapacity(t *testing.T) {
	_, err := NewSingleProducerSequencer(3, NewBusySpinWaitStrategy())
	require.ErrorIs(t, err, ErrInvalidBufferSize)
}

func TestSingleProducerSequencerClaimPublishCycle(t *testing.T) {
	seqr, err := NewSingleProducerSequencer(8, NewBusySpinWaitStrategy())
	require.NoError(t, err)

	seq, err := seqr.Next(1)
	require.NoError(t, err)
	require.Equal(t, int64(0), seq)
	require.False(t, seqr.IsAvailable(0))

	seqr.PublishOne(seq)
	require.True(t, seqr.IsAvailable(0))
	require.Equal(t, int64(0), seqr.Cursor())
}

func TestSingleProducerSequencerPublishRangePublishesOnlyHigh(t *testing.T) {
	seqr, err := NewSingleProducerSequencer(8, NewBusySpinWaitStrategy())
	require.NoError(t, err)

	hi, err := seqr.Next(3)
	require.NoError(t, err)
	require.Equal(t, int64(2), hi)

	seqr.PublishRange(0, hi)
	require.Equal(t, int64(2), seqr.Cursor())
	require.Equal(t, int64(2), seqr.HighestPublished(0, 2))
}

func TestSingleProducerSequencerTryNextFailsWhenFull(t *testing.T) {
	seqr, err := NewSingleProducerSequencer(4, NewBusySpinWaitStrategy())
	require.NoError(t, err)

	consumer := NewSequence(InitialSequenceValue)
	seqr.AddGatingSequences(consumer)

	for i := 0; i < 4; i++ {
		_, err := seqr.TryNext(1)
		require.NoError(t, err)
	}

	_, err = seqr.TryNext(1)
	require.ErrorIs(t, err, ErrInsufficientCapacity)

	require.False(t, seqr.HasAvailableCapacity(1))
	consumer.Set(0)
	require.True(t, seqr.HasAvailableCapacity(1))
}

func TestSingleProducerSequencerNextBlocksUntilConsumerAdvances(t *testing.T) {
	seqr, err := NewSingleProducerSequencer(2, NewBusySpinWaitStrategy())
	require.NoError(t, err)

	consumer := NewSequence(InitialSequenceValue)
	seqr.AddGatingSequences(consumer)

	for i := 0; i < 2; i++ {
		seq, err := seqr.Next(1)
		require.NoError(t, err)
		seqr.PublishOne(seq)
	}

	done := make(chan int64, 1)
	go func() {
		seq, err := seqr.Next(1)
		require.NoError(t, err)
		done <- seq
	}()

	select {
	case <-done:
		t.Fatal("Next returned before the gating consumer advanced")
	case <-time.After(50 * time.Millisecond):
	}

	consumer.SetRelease(0)

	select {
	case seq := <-done:
		require.Equal(t, int64(2), seq)
	case <-time.After(time.Second):
		t.Fatal("Next never unblocked after consumer advanced")
	}
}

func TestSingleProducerSequencerRemainingCapacity(t *testing.T) {
	seqr, err := NewSingleProducerSequencer(4, NewBusySpinWaitStrategy())
	require.NoError(t, err)
	consumer := NewSequence(InitialSequenceValue)
	seqr.AddGatingSequences(consumer)

	require.Equal(t, int64(4), seqr.RemainingCapacity())

	_, err = seqr.Next(2)
	require.NoError(t, err)
	require.Equal(t, int64(2), seqr.RemainingCapacity())
}

func TestSingleProducerSequencerClaimRepositions(t *testing.T) {
	seqr, err := NewSingleProducerSequencer(8, NewBusySpinWaitStrategy())
	require.NoError(t, err)

	seqr.Claim(5)
	require.Equal(t, int64(5), seqr.Cursor())

	seq, err := seqr.Next(1)
	require.NoError(t, err)
	require.Equal(t, int64(6), seq)
}

func TestSingleProducerSequencerRejectsInvalidClaimSize(t *testing.T) {
	seqr, err := NewSingleProducerSequencer(8, NewBusySpinWaitStrategy())
	require.NoError(t, err)

	_, err = seqr.Next(0)
	require.ErrorIs(t, err, ErrInvalidClaimSize)

	_, err = seqr.Next(9)
	require.ErrorIs(t, err, ErrInvalidClaimSize)
}

func TestSingleProducerSequencerNewBarrierWithoutDependents(t *testing.T) {
	seqr, err := NewSingleProducerSequencer(8, NewBusySpinWaitStrategy())
	require.NoError(t, err)

	barrier := seqr.NewBarrier()
	seq, err := seqr.Next(1)
	require.NoError(t, err)
	seqr.PublishOne(seq)

	available, err := barrier.WaitFor(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, int64(0), available)
}
