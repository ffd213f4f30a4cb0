package disruptor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFixedSequenceGroupReturnsMinimum(t *testing.T) {
	a := NewSequence(5)
	b := NewSequence(2)
	c := NewSequence(8)

	g := newFixedSequenceGroup([]*Sequence{a, b, c})
	require.Equal(t, int64(2), g.Get())

	b.Set(100)
	require.Equal(t, int64(5), g.Get())
}

func TestFixedSequenceGroupEmptyIsMaxInt64(t *testing.T) {
	g := newFixedSequenceGroup(nil)
	require.Equal(t, int64(1<<63-1), g.Get())
}
