package disruptor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRewindableErrorUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &RewindableError{Cause: cause}
	require.Equal(t, "rewinding batch: boom", err.Error())
	require.Same(t, cause, errors.Unwrap(err))
}

func TestRewindableErrorWithoutCause(t *testing.T) {
	err := &RewindableError{}
	require.Equal(t, "rewinding batch", err.Error())
}

func TestSimpleBatchRewindStrategyAlwaysRewinds(t *testing.T) {
	var s SimpleBatchRewindStrategy
	require.Equal(t, RewindActionRewind, s.HandleRewindException(&RewindableError{}, 1))
	require.Equal(t, RewindActionRewind, s.HandleRewindException(&RewindableError{}, 1000))
}

func TestMaxAttemptsBatchRewindStrategy(t *testing.T) {
	s := MaxAttemptsBatchRewindStrategy{MaxAttempts: 3}
	require.Equal(t, RewindActionRewind, s.HandleRewindException(&RewindableError{}, 1))
	require.Equal(t, RewindActionRewind, s.HandleRewindException(&RewindableError{}, 2))
	require.Equal(t, RewindActionThrow, s.HandleRewindException(&RewindableError{}, 3))
	require.Equal(t, RewindActionThrow, s.HandleRewindException(&RewindableError{}, 4))
}
