package disruptor

import "go.uber.org/zap"

// defaultProcessorLogger backs the default ExceptionHandler every
// BatchEventProcessor starts with before SetExceptionHandler is called.
// It falls back to zap.NewNop if zap.NewProduction fails,
// so a processor is never left without somewhere to put an error.
func defaultProcessorLogger() *zap.Logger {
	logger, err := zap.NewProduction()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
