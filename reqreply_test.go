package disruptor

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReqReplyDoReturnsHandlerResponse(t *testing.T) {
	rr, err := NewReqReply[int, string](16, NewYieldingWaitStrategy(), func(req int) (string, error) {
		return strconv.Itoa(req * 2), nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rr.Start(ctx)
	defer rr.Stop()

	resp, err := rr.Do(context.Background(), 21)
	require.NoError(t, err)
	require.Equal(t, "42", resp)

	stats := rr.Stats()
	require.Equal(t, uint64(1), stats.EnqueueAttempts)
	require.Equal(t, uint64(1), stats.Success)
}

func TestReqReplyDoPropagatesHandlerError(t *testing.T) {
	boom := errInjected{}
	rr, err := NewReqReply[int, string](16, NewYieldingWaitStrategy(), func(req int) (string, error) {
		return "", boom
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rr.Start(ctx)
	defer rr.Stop()

	_, err = rr.Do(context.Background(), 1)
	require.ErrorIs(t, err, boom)
}

type errInjected struct{}

func (errInjected) Error() string { return "injected failure" }

func TestReqReplyDoCancelledContext(t *testing.T) {
	block := make(chan struct{})
	rr, err := NewReqReply[int, string](16, NewYieldingWaitStrategy(), func(req int) (string, error) {
		<-block
		return "", nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rr.Start(ctx)
	defer func() {
		close(block)
		rr.Stop()
	}()

	callCtx, callCancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer callCancel()

	_, err = rr.Do(callCtx, 1)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestReqReplyDoNoWait(t *testing.T) {
	var wg sync.WaitGroup
	wg.Add(1)
	rr, err := NewReqReply[int, int](16, NewYieldingWaitStrategy(), func(req int) (int, error) {
		defer wg.Done()
		return req, nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rr.Start(ctx)
	defer rr.Stop()

	require.True(t, rr.DoNoWait(7))
	wg.Wait()
}

func TestReqReplyConcurrentCallers(t *testing.T) {
	rr, err := NewReqReply[int, int](64, NewYieldingWaitStrategy(), func(req int) (int, error) {
		return req * req, nil
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rr.Start(ctx)
	defer rr.Stop()

	const callers = 32
	var wg sync.WaitGroup
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(n int) {
			defer wg.Done()
			resp, err := rr.Do(context.Background(), n)
			require.NoError(t, err)
			require.Equal(t, n*n, resp)
		}(i)
	}
	wg.Wait()
}
