//go:build disruptordebug

package disruptor

import "sync/atomic"

// claimGuard catches the single-producer contract violation the original
// only documents: calling Next/TryNext/Claim from more than one goroutine
// at a time corrupts nextValue/cachedValue silently. Built only under the
// disruptordebug tag so production builds pay nothing for it.
type claimGuard struct {
	busy atomic.Bool
}

func (g *claimGuard) enter() {
	if !g.busy.CompareAndSwap(false, true) {
		panic("disruptor: concurrent Next/TryNext/Claim call on a SingleProducerSequencer")
	}
}

func (g *claimGuard) exit() {
	g.busy.Store(false)
}
