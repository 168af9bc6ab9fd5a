// FILE: lixenwraith/translog/default.go
package translog

import (
	"sync"
	"sync/atomic"
)

// Global instance for package-level functions
var (
	defaultLogger     atomic.Pointer[Logger]
	defaultLoggerOnce sync.Once
)

// Default returns the package-level logger, creating a console logger on first use
func Default() *Logger {
	defaultLoggerOnce.Do(func() {
		if defaultLogger.Load() == nil {
			defaultLogger.CompareAndSwap(nil, New(SuppressNoTransportWarning()))
		}
	})
	return defaultLogger.Load()
}

// SetDefault replaces the package-level logger and returns the previous one
func SetDefault(l *Logger) *Logger {
	if l == nil {
		return nil
	}
	return defaultLogger.Swap(l)
}

// Default package-level functions that delegate to the default logger

// Fatal logs a message at fatal level without exiting
func Fatal(msg string, params ...any) {
	Default().log(LevelFatal, msg, params)
}

// Error logs a message at error level
func Error(msg string, params ...any) {
	Default().log(LevelError, msg, params)
}

// Warn logs a message at warning level
func Warn(msg string, params ...any) {
	Default().log(LevelWarn, msg, params)
}

// Info logs a message at info level
func Info(msg string, params ...any) {
	Default().log(LevelInfo, msg, params)
}

// Debug logs a message at debug level
func Debug(msg string, params ...any) {
	Default().log(LevelDebug, msg, params)
}

// Flush flushes the transports of the default logger
func Flush() {
	Default().Flush()
}
