package disruptor

import "sync/atomic"

// gatingSequences is a lock-free-readable, copy-on-write holder for the set
// of consumer sequences a sequencer must not overrun. Readers acquire-load
// the current slice and iterate it without ever blocking; writers serialize
// through a CAS loop over the pointer.
type gatingSequences struct {
	slice atomic.Pointer[[]*Sequence]
}

func newGatingSequences() *gatingSequences {
	g := &gatingSequences{}
	empty := make([]*Sequence, 0)
	g.slice.Store(&empty)
	return g
}

// load returns the current snapshot of the gating set. Callers must treat
// the returned slice as immutable.
func (g *gatingSequences) load() []*Sequence {
	return *g.slice.Load()
}

// add appends toAdd to the set with copy-on-write CAS. Every added sequence
// is set to cursorValue once before the CAS and once more after it commits,
// closing the narrow race where the cursor advances while the CAS is in
// flight (mirrors the original Disruptor's SequenceGroups.addSequences).
func (g *gatingSequences) add(getCursor func() int64, toAdd ...*Sequence) {
	if len(toAdd) == 0 {
		return
	}
	for {
		current := g.slice.Load()
		cursorValue := getCursor()
		updated := make([]*Sequence, len(*current)+len(toAdd))
		copy(updated, *current)
		for i, seq := range toAdd {
			seq.Set(cursorValue)
			updated[len(*current)+i] = seq
		}
		if g.slice.CompareAndSwap(current, &updated) {
			break
		}
	}

	cursorValue := getCursor()
	for _, seq := range toAdd {
		seq.Set(cursorValue)
	}
}

// remove deletes every occurrence of target, compared by pointer identity,
// from the set. Reports whether anything was removed.
func (g *gatingSequences) remove(target *Sequence) bool {
	for {
		current := g.slice.Load()
		removed := 0
		for _, seq := range *current {
			if seq == target {
				removed++
			}
		}
		if removed == 0 {
			return false
		}

		updated := make([]*Sequence, 0, len(*current)-removed)
		for _, seq := range *current {
			if seq != target {
				updated = append(updated, seq)
			}
		}

		if g.slice.CompareAndSwap(current, &updated) {
			return true
		}
	}
}

// minimum returns the lowest value in the set, or fallback if it is empty.
func (g *gatingSequences) minimum(fallback int64) int64 {
	return minimumSequence(g.load(), fallback)
}
