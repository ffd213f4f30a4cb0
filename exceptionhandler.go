package disruptor

import "go.uber.org/zap"

// ExceptionHandler is notified of errors that reach a BatchEventProcessor's
// driver loop: a non-rewindable error from OnEvent, a failed OnStart or
// OnShutdown lifecycle hook, or a failed OnTimeout.
type ExceptionHandler[T any] interface {
	HandleEventError(err error, sequence int64, event *T)
	HandleStartError(err error)
	HandleShutdownError(err error)
}

// LoggingExceptionHandler logs every error via a structured zap.Logger
// rather than halting the processor, matching the original's default of
// printing to stderr and continuing to the next event.
type LoggingExceptionHandler[T any] struct {
	logger *zap.Logger
}

// NewLoggingExceptionHandler constructs a LoggingExceptionHandler writing
// through logger.
func NewLoggingExceptionHandler[T any](logger *zap.Logger) *LoggingExceptionHandler[T] {
	return &LoggingExceptionHandler[T]{logger: logger}
}

func (h *LoggingExceptionHandler[T]) HandleEventError(err error, sequence int64, event *T) {
	h.logger.Error("event handler failed",
		zap.Error(err),
		zap.Int64("sequence", sequence),
	)
}

func (h *LoggingExceptionHandler[T]) HandleStartError(err error) {
	h.logger.Error("event handler OnStart failed", zap.Error(err))
}

func (h *LoggingExceptionHandler[T]) HandleShutdownError(err error) {
	h.logger.Error("event handler OnShutdown failed", zap.Error(err))
}
