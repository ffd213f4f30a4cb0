package disruptor

import "sync"

// broadcaster is the channel-based stand-in for the original strategies'
// "mutex + condition variable" wait/notifyAll: every SignalAllWhenBlocking
// call swaps in a fresh generation channel and closes the old one, waking
// every goroutine currently selecting on it. A closed channel can be
// observed any number of times, so there is no lost-wakeup window between
// a waiter reading the current generation and parking on it.
type broadcaster struct {
	mu sync.Mutex
	ch chan struct{}
}

func newBroadcaster() *broadcaster {
	return &broadcaster{ch: make(chan struct{})}
}

// generation returns the channel that closes on the next signal.
func (b *broadcaster) generation() chan struct{} {
	b.mu.Lock()
	ch := b.ch
	b.mu.Unlock()
	return ch
}

// signal wakes every goroutine parked on the current generation.
func (b *broadcaster) signal() {
	b.mu.Lock()
	old := b.ch
	b.ch = make(chan struct{})
	b.mu.Unlock()
	close(old)
}
