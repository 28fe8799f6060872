package native

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the native boundary's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger installs a logger for lifecycle tracing. Must be called before
// the first use of the package.
func SetLogger(l *zap.Logger) {
	logger = l
}

func debugf(format string, args ...any) {
	Logger().Sugar().Debugf(format, args...)
}
