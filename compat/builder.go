// FILE: lixenwraith/translog/compat/builder.go
package compat

import (
	"fmt"

	"github.com/lixenwraith/translog"
	"go.uber.org/zap"
)

// Builder creates gnet, fasthttp and zap adapters that share one translog.Logger.
// The logger is either supplied or built once from a Config.
type Builder struct {
	logger *translog.Logger
	logCfg *translog.Config
	err    error
}

// NewBuilder creates a new adapter builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithLogger makes every adapter write through l. WithConfig is then ignored.
func (b *Builder) WithLogger(l *translog.Logger) *Builder {
	if l == nil {
		b.err = fmt.Errorf("translog/compat: nil logger")
		return b
	}
	b.logger = l
	return b
}

// WithConfig sets the configuration of the logger built on first use.
// Without it the default configuration applies.
func (b *Builder) WithConfig(cfg *translog.Config) *Builder {
	b.logCfg = cfg
	return b
}

// getLogger returns the supplied or cached logger, building it on first call
func (b *Builder) getLogger() (*translog.Logger, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.logger != nil {
		return b.logger, nil
	}

	cfg := b.logCfg
	if cfg == nil {
		cfg = translog.DefaultConfig()
	}

	l, err := translog.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}

	// Later builds share this logger
	b.logger = l
	return l, nil
}

// BuildGnet returns a gnet logging.Logger
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(l, opts...), nil
}

// BuildStructuredGnet returns a gnet logger that lifts key=%verb pairs into metadata
func (b *Builder) BuildStructuredGnet(opts ...GnetOption) (*StructuredGnetAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewStructuredGnetAdapter(l, opts...), nil
}

// BuildFastHTTP returns a fasthttp.Logger with keyword based level detection
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(l, opts...), nil
}

// BuildZap creates a *zap.Logger writing through the logger
func (b *Builder) BuildZap(opts ...zap.Option) (*zap.Logger, error) {
	l, err := b.getLogger()
	if err != nil {
		return nil, err
	}
	return NewZapLogger(l, opts...), nil
}

// GetLogger returns the logger shared by the adapters
func (b *Builder) GetLogger() (*translog.Logger, error) {
	return b.getLogger()
}

// Example:
//
//	logger, _ := translog.NewBuilder().LevelString("debug").Label("edge").Build()
//	b := compat.NewBuilder().WithLogger(logger)
//	zl, _ := b.BuildZap()
//	defer zl.Sync()
//	fl, _ := b.BuildFastHTTP()
//	srv := &fasthttp.Server{Handler: h, Logger: fl}
