// FILE: lixenwraith/translog/compat/gnet.go
package compat

import (
	"fmt"
	"os"

	"github.com/lixenwraith/translog"
	"github.com/panjf2000/gnet/v2/pkg/logging"
)

var _ logging.Logger = (*GnetAdapter)(nil)

// GnetAdapter wraps translog.Logger to implement gnet logging.Logger interface
type GnetAdapter struct {
	logger       *translog.Logger
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(logger *translog.Logger, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		logger: logger,
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// Debugf logs at debug level with printf-style formatting
func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.logger.Debug("%s", fmt.Sprintf(format, args...), sourceMeta("gnet"))
}

// Infof logs at info level with printf-style formatting
func (a *GnetAdapter) Infof(format string, args ...any) {
	a.logger.Info("%s", fmt.Sprintf(format, args...), sourceMeta("gnet"))
}

// Warnf logs at warn level with printf-style formatting
func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.logger.Warn("%s", fmt.Sprintf(format, args...), sourceMeta("gnet"))
}

// Errorf logs at error level with printf-style formatting
func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.logger.Error("%s", fmt.Sprintf(format, args...), sourceMeta("gnet"))
}

// Fatalf logs at fatal level, flushes and triggers the fatal handler
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.logger.Fatal("%s", msg, sourceMeta("gnet"))

	// Ensure log is flushed before exit
	a.logger.Flush()

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}

// sourceMeta tags entries with the adapter they came through
func sourceMeta(source string) translog.Meta {
	return translog.Meta{"source": source}
}
