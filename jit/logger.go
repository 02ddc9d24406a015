package jit

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the JIT's logger instance. It uses a no-op logger by
// default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// debug gates debugf; enable with SetDebug(true).
var debug = false

// SetDebug turns front-end/type-inference bailout tracing on or off.
func SetDebug(v bool) { debug = v }

func debugf(format string, args ...any) {
	if debug {
		Logger().Sugar().Debugf(format, args...)
	}
}
