// FILE: lixenwraith/translog/builder.go
package translog

import (
	"io"
	"time"
)

// Builder provides a fluent API for building loggers.
// It wraps a Config instance and provides chainable methods for setting values.
type Builder struct {
	cfg           *Config
	opts          []Option
	consoleWriter io.Writer
	err           error // Accumulate errors for deferred handling
}

// NewBuilder creates a new builder with default values
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build creates a new Logger with the specified configuration
func (b *Builder) Build() (*Logger, error) {
	if b.err != nil {
		return nil, b.err
	}
	return newFromConfig(b.cfg, b.consoleWriter, b.opts...)
}

// Config returns a copy of the accumulated configuration
func (b *Builder) Config() *Config {
	return b.cfg.Clone()
}

// Level sets the log level
func (b *Builder) Level(level Level) *Builder {
	b.cfg.Level = level.String()
	return b
}

// LevelString sets the log level from a string
func (b *Builder) LevelString(level string) *Builder {
	if b.err != nil {
		return b
	}
	if _, err := ParseLevel(level); err != nil {
		b.err = err
		return b
	}
	b.cfg.Level = level
	return b
}

// Label sets the logger label
func (b *Builder) Label(label string) *Builder {
	b.cfg.Label = label
	return b
}

// Disabled turns the logger off
func (b *Builder) Disabled(disabled bool) *Builder {
	b.cfg.Disabled = disabled
	return b
}

// HideMeta suppresses metadata output
func (b *Builder) HideMeta(hide bool) *Builder {
	b.cfg.HideMeta = hide
	return b
}

// Format sets the output format
func (b *Builder) Format(format string) *Builder {
	b.cfg.Format = format
	return b
}

// TimestampFormat sets the timestamp layout
func (b *Builder) TimestampFormat(layout string) *Builder {
	b.cfg.TimestampFormat = layout
	return b
}

// Color enables colored level names on the console
func (b *Builder) Color(enable bool) *Builder {
	b.cfg.Color = enable
	return b
}

// EnableConsole toggles the console transport
func (b *Builder) EnableConsole(enable bool) *Builder {
	b.cfg.EnableConsole = enable
	return b
}

// ConsoleTarget selects "stdout" or "stderr"
func (b *Builder) ConsoleTarget(target string) *Builder {
	b.cfg.ConsoleTarget = target
	return b
}

// ConsoleWriter sends console output to w instead of stdout/stderr
func (b *Builder) ConsoleWriter(w io.Writer) *Builder {
	b.consoleWriter = w
	return b
}

// BatchSize sets the console batch size
func (b *Builder) BatchSize(size int) *Builder {
	b.cfg.BatchSize = int64(size)
	return b
}

// Debounce sets the console debounce interval
func (b *Builder) Debounce(d time.Duration) *Builder {
	b.cfg.DebounceMs = d.Milliseconds()
	return b
}

// File enables the rotating file transport at path
func (b *Builder) File(path string) *Builder {
	b.cfg.EnableFile = true
	b.cfg.FilePath = path
	return b
}

// FileBatchSize sets the file transport batch size
func (b *Builder) FileBatchSize(size int) *Builder {
	b.cfg.FileBatchSize = int64(size)
	return b
}

// FileDebounce sets the file transport debounce interval
func (b *Builder) FileDebounce(d time.Duration) *Builder {
	b.cfg.FileDebounceMs = d.Milliseconds()
	return b
}

// MaxSizeMB sets the file size that triggers rotation
func (b *Builder) MaxSizeMB(size int64) *Builder {
	b.cfg.MaxSizeMB = size
	return b
}

// MaxBackups sets how many rotated files are kept
func (b *Builder) MaxBackups(n int64) *Builder {
	b.cfg.MaxBackups = n
	return b
}

// MaxAgeDays sets how long rotated files are kept
func (b *Builder) MaxAgeDays(days int64) *Builder {
	b.cfg.MaxAgeDays = days
	return b
}

// Compress gzips rotated files
func (b *Builder) Compress(enable bool) *Builder {
	b.cfg.Compress = enable
	return b
}

// Override applies "key=value" overrides to the configuration
func (b *Builder) Override(overrides ...string) *Builder {
	if b.err != nil {
		return b
	}
	b.err = b.cfg.ApplyOverride(overrides...)
	return b
}

// DefaultMeta sets metadata attached to every entry
func (b *Builder) DefaultMeta(meta map[string]any) *Builder {
	b.opts = append(b.opts, WithDefaultMeta(meta))
	return b
}

// Transport registers an additional transport
func (b *Builder) Transport(t *Transport) *Builder {
	b.opts = append(b.opts, WithTransports(t))
	return b
}

// ErrorOutput redirects internal diagnostics
func (b *Builder) ErrorOutput(w io.Writer) *Builder {
	b.opts = append(b.opts, WithErrorOutput(w))
	return b
}

// Example usage:
// logger, err := translog.NewBuilder().
//
//	LevelString("debug").
//	Label("api").
//	Format("json").
//	File("/var/log/app/api.log").
//	Build()
//
// if err == nil {
//
//	 defer logger.Destroy()
//	 logger.Info("logger initialized")
//
// }
