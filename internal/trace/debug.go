//go:build xsum_debug

package trace

import (
	"sync"

	"go.uber.org/zap"
)

var (
	loggerOnce sync.Once
	logger     *zap.Logger
)

func getLogger() *zap.Logger {
	loggerOnce.Do(func() {
		cfg := zap.NewDevelopmentConfig()
		l, err := cfg.Build()
		if err != nil {
			// Tracing is a debugging aid; if it can't initialize, fall back
			// to a no-op rather than taking the whole program down.
			logger = zap.NewNop()
			return
		}
		logger = l
	})
	return logger
}

func event(op string, fields ...zap.Field) {
	getLogger().Debug(op, fields...)
}
