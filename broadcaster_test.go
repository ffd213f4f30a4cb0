package disruptor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBroadcasterSignalWakesAllWaiters(t *testing.T) {
	b := newBroadcaster()

	const waiters = 5
	woke := make(chan struct{}, waiters)
	for i := 0; i < waiters; i++ {
		go func() {
			<-b.generation()
			woke <- struct{}{}
		}()
	}

	time.Sleep(10 * time.Millisecond)
	b.signal()

	for i := 0; i < waiters; i++ {
		select {
		case <-woke:
		case <-time.After(time.Second):
			t.Fatal("not every waiter woke up")
		}
	}
}

func TestBroadcasterGenerationAdvancesOnSignal(t *testing.T) {
	b := newBroadcaster()
	gen1 := b.generation()
	b.signal()
	gen2 := b.generation()

	require.NotEqual(t, gen1, gen2)

	select {
	case <-gen1:
	default:
		t.Fatal("old generation should be closed after signal")
	}
}
