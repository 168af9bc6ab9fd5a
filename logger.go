// FILE: lixenwraith/translog/logger.go
package translog

import (
	"io"
	"os"
	"sync"
	"sync/atomic"
)

// Logger is the public logging facade. Children created with Child share the
// same Manager and therefore the same transports.
type Logger struct {
	label    string
	level    atomic.Int64
	disabled atomic.Bool
	hideMeta bool
	meta     *metaStore
	manager  *Manager
	errOut   io.Writer
}

// clientOptions collects Option values. Pointer fields distinguish unset from zero.
type clientOptions struct {
	label           *string
	level           *Level
	disabled        *bool
	hideMeta        bool
	transports      []*Transport
	meta            map[string]any
	metaSet         bool
	suppressWarning bool
	errOut          io.Writer
}

// Option configures a Logger
type Option func(*clientOptions)

// WithLabel sets the logger label
func WithLabel(label string) Option {
	return func(o *clientOptions) { o.label = &label }
}

// WithLevel sets the logger threshold, INFO by default
func WithLevel(level Level) Option {
	return func(o *clientOptions) { o.level = &level }
}

// WithDisabled turns every severity method into a no-op
func WithDisabled(disabled bool) Option {
	return func(o *clientOptions) { o.disabled = &disabled }
}

// Disabled is shorthand for WithDisabled(true)
func Disabled() Option {
	return WithDisabled(true)
}

// WithHideMeta hides metadata on the default console transport
func WithHideMeta(hide bool) Option {
	return func(o *clientOptions) { o.hideMeta = hide }
}

// WithTransports registers transports. Without any, a console transport is used.
// Ignored by Child, which always shares the parent's transports.
func WithTransports(transports ...*Transport) Option {
	return func(o *clientOptions) { o.transports = append(o.transports, transports...) }
}

// WithDefaultMeta sets metadata attached to every entry of the logger
func WithDefaultMeta(meta map[string]any) Option {
	return func(o *clientOptions) {
		o.meta = meta
		o.metaSet = true
	}
}

// SuppressNoTransportWarning silences the warning printed when no transports are given
func SuppressNoTransportWarning() Option {
	return func(o *clientOptions) { o.suppressWarning = true }
}

// WithErrorOutput redirects internal diagnostics, stderr by default
func WithErrorOutput(w io.Writer) Option {
	return func(o *clientOptions) { o.errOut = w }
}

// New creates a logger
func New(opts ...Option) *Logger {
	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}

	l := &Logger{
		hideMeta: o.hideMeta,
		meta:     newMetaStore(o.meta),
		manager:  NewManager(),
		errOut:   o.errOut,
	}
	if l.errOut == nil {
		l.errOut = os.Stderr
	}
	if o.label != nil {
		l.label = *o.label
	}
	level := LevelInfo
	if o.level != nil {
		level = *o.level
	}
	l.level.Store(int64(level))
	if o.disabled != nil {
		l.disabled.Store(*o.disabled)
	}

	transports := o.transports
	if len(transports) == 0 {
		transports = []*Transport{NewConsoleTransport(ConsoleConfig{HideMeta: o.hideMeta})}
		if !o.suppressWarning {
			internalLog(l.errOut, "no transports configured, logging to console")
		}
	}
	l.manager.Add(transports...)
	l.injectDefaults()

	return l
}

// injectDefaults pushes the logger level, enabled state and label to
// transports that were created without them
func (l *Logger) injectDefaults() {
	level := l.Level()
	enabled := !l.disabled.Load()
	label := l.label
	l.manager.InjectOptions(InjectOptions{
		Level:   &level,
		Enabled: &enabled,
		Label:   &label,
	})
}

// Child creates a logger sharing this logger's transports.
// Label, level and disabled state default to the parent's current values.
// Without WithDefaultMeta the child shares the parent's metadata store, so
// later SetMeta calls on either are visible to both.
func (l *Logger) Child(opts ...Option) *Logger {
	var o clientOptions
	for _, opt := range opts {
		opt(&o)
	}

	c := &Logger{
		label:    l.label,
		hideMeta: l.hideMeta,
		meta:     l.meta,
		manager:  l.manager,
		errOut:   l.errOut,
	}
	if o.label != nil {
		c.label = *o.label
	}
	if o.level != nil {
		c.level.Store(int64(*o.level))
	} else {
		c.level.Store(l.level.Load())
	}
	if o.disabled != nil {
		c.disabled.Store(*o.disabled)
	} else {
		c.disabled.Store(l.disabled.Load())
	}
	if o.metaSet {
		c.meta = newMetaStore(o.meta)
	}
	if o.errOut != nil {
		c.errOut = o.errOut
	}
	return c
}

// AddTransport registers a transport on the shared manager and fills its
// unset level, enabled state and label from this logger
func (l *Logger) AddTransport(t *Transport) {
	level := l.Level()
	enabled := !l.disabled.Load()
	label := l.label
	t.injectDefaults(&level, &enabled, &label)
	l.manager.Add(t)
}

// Fatal logs at FATAL. It does not exit the process.
func (l *Logger) Fatal(msg string, params ...any) {
	l.log(LevelFatal, msg, params)
}

// Error logs at ERROR
func (l *Logger) Error(msg string, params ...any) {
	l.log(LevelError, msg, params)
}

// Warn logs at WARN
func (l *Logger) Warn(msg string, params ...any) {
	l.log(LevelWarn, msg, params)
}

// Info logs at INFO
func (l *Logger) Info(msg string, params ...any) {
	l.log(LevelInfo, msg, params)
}

// Debug logs at DEBUG
func (l *Logger) Debug(msg string, params ...any) {
	l.log(LevelDebug, msg, params)
}

// Log logs at an arbitrary level
func (l *Logger) Log(level Level, msg string, params ...any) {
	l.log(level, msg, params)
}

// SetLevel changes this logger's threshold. Transports keep their own.
func (l *Logger) SetLevel(level Level) {
	l.level.Store(int64(level))
}

// Level returns this logger's threshold
func (l *Logger) Level() Level {
	return Level(l.level.Load())
}

// LevelName returns the name of this logger's threshold
func (l *Logger) LevelName() string {
	return l.Level().String()
}

// Label returns the logger label
func (l *Logger) Label() string {
	return l.label
}

// SetDisabled toggles the logger. Transports are not affected.
func (l *Logger) SetDisabled(disabled bool) {
	l.disabled.Store(disabled)
}

// IsDisabled reports whether the logger drops every call
func (l *Logger) IsDisabled() bool {
	return l.disabled.Load()
}

// SetMeta sets a default metadata key on the (possibly shared) store
func (l *Logger) SetMeta(key string, value any) {
	l.meta.set(key, value)
}

// DeleteMeta removes a default metadata key
func (l *Logger) DeleteMeta(key string) {
	l.meta.delete(key)
}

// DefaultMeta returns a copy of the default metadata
func (l *Logger) DefaultMeta() Meta {
	return l.meta.snapshot()
}

// Transports returns the transports of the shared manager
func (l *Logger) Transports() []*Transport {
	return l.manager.All()
}

// Manager returns the shared transport manager
func (l *Logger) Manager() *Manager {
	return l.manager
}

// Flush flushes every shared transport
func (l *Logger) Flush() {
	l.manager.Flush()
}

// Destroy flushes and destroys every shared transport, affecting parents and children
func (l *Logger) Destroy() error {
	return l.manager.Destroy()
}

// metaStore is default metadata shared by reference between a logger and
// the children that did not set their own
type metaStore struct {
	mu   sync.RWMutex
	data map[string]any
}

func newMetaStore(initial map[string]any) *metaStore {
	m := &metaStore{data: make(map[string]any, len(initial))}
	for k, v := range initial {
		m.data[k] = v
	}
	return m
}

func (m *metaStore) set(key string, value any) {
	m.mu.Lock()
	m.data[key] = value
	m.mu.Unlock()
}

func (m *metaStore) delete(key string) {
	m.mu.Lock()
	delete(m.data, key)
	m.mu.Unlock()
}

func (m *metaStore) snapshot() Meta {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.data) == 0 {
		return nil
	}
	out := make(Meta, len(m.data))
	for k, v := range m.data {
		out[k] = v
	}
	return out
}
