package vm

import (
	"sync"

	"go.uber.org/zap"
)

// logger is the package-wide sink for VM tracing, which covers JIT
// promotion decisions only. It defaults to a no-op
// logger, exactly as the teacher's engine/logger.go does, so the library
// stays silent until an embedder calls SetLogger.
var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the package's active zap logger, lazily defaulting to
// zap.NewNop().
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger installs l as the package's logger.
func SetLogger(l *zap.Logger) {
	logger = l
}

var debug = false

// SetDebug toggles debugf's verbose bytecode-dispatch/JIT-promotion/
// OSR-exit tracing.
func SetDebug(v bool) { debug = v }

func debugf(format string, args ...any) {
	if debug {
		Logger().Sugar().Debugf(format, args...)
	}
}
