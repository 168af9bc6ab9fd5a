// FILE: lixenwraith/translog/compat/zap.go
package compat

import (
	"github.com/lixenwraith/translog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ zapcore.Core = (*ZapCore)(nil)

// ZapCore is a zapcore.Core writing through a translog.Logger.
// Level gating follows the logger threshold; zap fields become metadata.
type ZapCore struct {
	logger *translog.Logger
	fields []zapcore.Field
}

// NewZapCore creates a core backed by logger
func NewZapCore(logger *translog.Logger) *ZapCore {
	return &ZapCore{logger: logger}
}

// NewZapLogger returns a *zap.Logger whose entries go to logger
func NewZapLogger(logger *translog.Logger, opts ...zap.Option) *zap.Logger {
	return zap.New(NewZapCore(logger), opts...)
}

// Enabled reports whether the logger threshold admits lvl
func (c *ZapCore) Enabled(lvl zapcore.Level) bool {
	return translog.ShouldPublish(c.logger.Level(), fromZapLevel(lvl))
}

// With returns a core carrying additional fields
func (c *ZapCore) With(fields []zapcore.Field) zapcore.Core {
	combined := make([]zapcore.Field, 0, len(c.fields)+len(fields))
	combined = append(combined, c.fields...)
	combined = append(combined, fields...)
	return &ZapCore{logger: c.logger, fields: combined}
}

// Check adds this core to ce when the entry is enabled
func (c *ZapCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

// Write converts the entry and its fields into a log call
func (c *ZapCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	meta := translog.Meta(enc.Fields)
	meta["source"] = "zap"
	if ent.LoggerName != "" {
		meta["logger"] = ent.LoggerName
	}
	if ent.Caller.Defined {
		meta["caller"] = ent.Caller.TrimmedPath()
	}
	if ent.Stack != "" {
		meta["stack"] = ent.Stack
	}

	c.logger.Log(fromZapLevel(ent.Level), "%s", ent.Message, meta)
	// zap runs the panic or fatal hook right after Write
	if ent.Level > zapcore.ErrorLevel {
		c.logger.Flush()
	}
	return nil
}

// Sync flushes the logger transports
func (c *ZapCore) Sync() error {
	c.logger.Flush()
	return nil
}

// fromZapLevel maps zap levels onto translog levels; panic levels map to FATAL
func fromZapLevel(lvl zapcore.Level) translog.Level {
	switch {
	case lvl < zapcore.InfoLevel:
		return translog.LevelDebug
	case lvl == zapcore.InfoLevel:
		return translog.LevelInfo
	case lvl == zapcore.WarnLevel:
		return translog.LevelWarn
	case lvl == zapcore.ErrorLevel:
		return translog.LevelError
	default:
		return translog.LevelFatal
	}
}
