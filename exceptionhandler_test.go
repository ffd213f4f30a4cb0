package disruptor

import (
	"errors"
	"testing"

	"go.uber.org/zap/zaptest/observer"

	"go.uber.org/zap"

	"github.com/stretchr/testify/require"
)

func newObservedExceptionHandler() (*LoggingExceptionHandler[int], *observer.ObservedLogs) {
	core, logs := observer.New(zap.ErrorLevel)
	handler := NewLoggingExceptionHandler[int](zap.New(core))
	return handler, logs
}

func TestLoggingExceptionHandlerHandleEventError(t *testing.T) {
	handler, logs := newObservedExceptionHandler()
	event := 42

	handler.HandleEventError(errors.New("handler failed"), 7, &event)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	require.Equal(t, "event handler failed", entry.Message)
}

func TestLoggingExceptionHandlerHandleStartError(t *testing.T) {
	handler, logs := newObservedExceptionHandler()
	handler.HandleStartError(errors.New("start failed"))

	require.Equal(t, 1, logs.Len())
	require.Equal(t, "event handler OnStart failed", logs.All()[0].Message)
}

func TestLoggingExceptionHandlerHandleShutdownError(t *testing.T) {
	handler, logs := newObservedExceptionHandler()
	handler.HandleShutdownError(errors.New("shutdown failed"))

	require.Equal(t, 1, logs.Len())
	require.Equal(t, "event handler OnShutdown failed", logs.All()[0].Message)
}
