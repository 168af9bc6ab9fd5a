// FILE: lixenwraith/translog/transport.go
package translog

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrTransportNotReady is returned when a transport is used before its level
// and enabled flag are set, either explicitly or through manager injection.
var ErrTransportNotReady = errors.New("transport level or enabled state not set")

// Sender delivers a batch of entries somewhere. Implementations get
// queueing, batching, debouncing and retry from Transport.
// A Sender must not log through the transport that drives it.
type Sender interface {
	SendBatch(ctx context.Context, logs []Entry) error
}

// SenderFunc adapts a function to the Sender interface
type SenderFunc func(ctx context.Context, logs []Entry) error

// SendBatch calls f(ctx, logs)
func (f SenderFunc) SendBatch(ctx context.Context, logs []Entry) error {
	return f(ctx, logs)
}

// TransportConfig is the unresolved transport configuration.
// Level and Enabled stay nil until set explicitly or injected by a Manager.
type TransportConfig struct {
	BatchSize    int
	Debounce     time.Duration
	Level        *Level
	Enabled      *bool
	Label        string
	ErrorHandler func(err error, batch []Entry)
}

// Options is a fully resolved transport configuration
type Options struct {
	BatchSize    int
	Debounce     time.Duration
	Level        Level
	Enabled      bool
	Label        string
	ErrorHandler func(err error, batch []Entry)
}

// Resolve converts the configuration into Options once level and enabled are known
func (c TransportConfig) Resolve() (Options, error) {
	if c.Level == nil || c.Enabled == nil {
		return Options{}, fmtErrorf("%w", ErrTransportNotReady)
	}
	return Options{
		BatchSize:    c.BatchSize,
		Debounce:     c.Debounce,
		Level:        *c.Level,
		Enabled:      *c.Enabled,
		Label:        c.Label,
		ErrorHandler: c.ErrorHandler,
	}, nil
}

// clamp forces batch size >= 1 and debounce >= 0
func (c *TransportConfig) clamp() {
	if c.BatchSize < 1 {
		c.BatchSize = 1
	}
	if c.Debounce < 0 {
		c.Debounce = 0
	}
}

// TransportOption modifies a TransportConfig
type TransportOption func(*TransportConfig)

// WithBatchSize sets the queue length that triggers an immediate flush
func WithBatchSize(n int) TransportOption {
	return func(c *TransportConfig) { c.BatchSize = n }
}

// WithDebounce sets the quiet period after the last enqueue before flushing
func WithDebounce(d time.Duration) TransportOption {
	return func(c *TransportConfig) { c.Debounce = d }
}

// WithTransportLevel sets the transport threshold
func WithTransportLevel(level Level) TransportOption {
	return func(c *TransportConfig) { c.Level = &level }
}

// WithEnabled sets the enabled flag
func WithEnabled(enabled bool) TransportOption {
	return func(c *TransportConfig) { c.Enabled = &enabled }
}

// WithTransportLabel sets the transport label
func WithTransportLabel(label string) TransportOption {
	return func(c *TransportConfig) { c.Label = label }
}

// WithErrorHandler replaces the default stderr report of failed sends.
// The handler is called without transport locks held.
func WithErrorHandler(fn func(err error, batch []Entry)) TransportOption {
	return func(c *TransportConfig) { c.ErrorHandler = fn }
}

// Transport is the queue, batch and debounce engine shared by all sinks.
// It is safe for concurrent use.
type Transport struct {
	mu       sync.Mutex // Guards queue, timer and config
	sendMu   sync.Mutex // Serializes sends to keep FIFO order
	sender   Sender
	config   TransportConfig
	queue    []Entry
	timer    *time.Timer
	timerGen uint64

	// enabledInjected is set while the enabled flag comes from a logger
	enabledInjected bool

	ctx    context.Context
	cancel context.CancelFunc
	id     string
	state  transportState
}

// NewTransport creates a transport driving sender with the generic defaults
func NewTransport(sender Sender, opts ...TransportOption) *Transport {
	return newTransport(sender, TransportConfig{
		BatchSize: DefaultBatchSize,
		Debounce:  DefaultDebounce,
	}, opts...)
}

func newTransport(sender Sender, defaults TransportConfig, opts ...TransportOption) *Transport {
	if sender == nil {
		panic(errorPrefix + "nil sender")
	}

	cfg := defaults
	for _, opt := range opts {
		opt(&cfg)
	}
	cfg.clamp()

	ctx, cancel := context.WithCancel(context.Background())
	return &Transport{
		sender: sender,
		config: cfg,
		ctx:    ctx,
		cancel: cancel,
		id:     uuid.NewString(),
	}
}

// Enqueue adds an entry to the queue.
// It returns ErrTransportNotReady before level and enabled are set. Disabled
// or destroyed transports drop the entry, and entries below the transport
// threshold are filtered. Reaching the batch size flushes on the calling
// goroutine, otherwise the debounce timer is restarted.
func (t *Transport) Enqueue(entry Entry) error {
	t.mu.Lock()

	if t.config.Level == nil || t.config.Enabled == nil {
		t.mu.Unlock()
		return fmtErrorf("%w: transport %s", ErrTransportNotReady, t.id)
	}

	if t.state.Destroyed.Load() || !*t.config.Enabled {
		t.mu.Unlock()
		t.state.Dropped.Add(1)
		return nil
	}

	if !ShouldPublish(*t.config.Level, entry.Level) {
		t.mu.Unlock()
		t.state.Filtered.Add(1)
		return nil
	}

	if entry.Label == "" {
		entry.Label = t.config.Label
	}
	t.queue = append(t.queue, entry)
	t.state.Enqueued.Add(1)

	if len(t.queue) >= t.config.BatchSize {
		t.stopTimerLocked()
		t.mu.Unlock()
		t.performFlush()
		return nil
	}

	t.armTimerLocked()
	t.mu.Unlock()
	return nil
}

// Flush cancels any pending debounce and sends the queue now
func (t *Transport) Flush() {
	t.mu.Lock()
	t.stopTimerLocked()
	t.mu.Unlock()

	t.performFlush()
}

// performFlush swaps out the queue and sends it.
// A failed batch goes back to the front of the queue and waits for the next trigger.
// The error handler runs after the send lock is released, so it may flush
// or log through a logger sharing this transport.
func (t *Transport) performFlush() {
	t.sendMu.Lock()

	t.mu.Lock()
	if len(t.queue) == 0 {
		t.mu.Unlock()
		t.sendMu.Unlock()
		return
	}
	batch := t.queue
	t.queue = nil
	label := t.config.Label
	handler := t.config.ErrorHandler
	t.mu.Unlock()

	err := t.send(batch)
	if err == nil {
		t.state.Sent.Add(uint64(len(batch)))
		t.state.Batches.Add(1)
		t.sendMu.Unlock()
		return
	}

	t.mu.Lock()
	t.queue = append(batch[:len(batch):len(batch)], t.queue...)
	t.mu.Unlock()

	t.state.Failures.Add(1)
	t.state.Requeued.Add(uint64(len(batch)))
	t.sendMu.Unlock()

	if handler != nil {
		handler(err, batch)
		return
	}
	internalLog(nil, "transport %q failed to send batch of %d entries: %v", label, len(batch), err)
}

// send calls the sender, converting a panic into an error
func (t *Transport) send(batch []Entry) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmtErrorf("sender panic: %v", r)
		}
	}()
	return t.sender.SendBatch(t.ctx, batch)
}

// Configure merges options into the current configuration.
// A changed debounce interval restarts a pending timer with the new value.
// Queued entries are kept.
func (t *Transport) Configure(opts ...TransportOption) {
	t.mu.Lock()
	defer t.mu.Unlock()

	prevDebounce := t.config.Debounce
	prevEnabled := t.config.Enabled
	for _, opt := range opts {
		opt(&t.config)
	}
	if t.config.Enabled != prevEnabled {
		t.enabledInjected = false
	}
	t.config.clamp()

	if t.config.Debounce != prevDebounce {
		t.stopTimerLocked()
		if len(t.queue) > 0 && !t.state.Destroyed.Load() {
			t.armTimerLocked()
		}
	}
}

// Enable resumes accepting entries
func (t *Transport) Enable() {
	t.mu.Lock()
	enabled := true
	t.config.Enabled = &enabled
	t.enabledInjected = false
	t.mu.Unlock()
}

// Disable flushes pending entries and stops accepting new ones.
// Entries arriving while disabled are dropped, not buffered.
func (t *Transport) Disable() {
	t.mu.Lock()
	enabled := false
	t.config.Enabled = &enabled
	t.enabledInjected = false
	t.stopTimerLocked()
	t.mu.Unlock()

	t.performFlush()
}

// Destroy flushes, stops the timer and releases the sender.
// The transport drops every entry afterwards.
func (t *Transport) Destroy() error {
	if !t.state.Destroyed.CompareAndSwap(false, true) {
		return nil
	}

	t.mu.Lock()
	t.stopTimerLocked()
	t.mu.Unlock()

	t.performFlush()
	t.cancel()

	if closer, ok := t.sender.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			return fmtErrorf("failed to close transport %q sender: %w", t.Label(), err)
		}
	}
	return nil
}

// SetLabel replaces the transport label
func (t *Transport) SetLabel(label string) {
	t.mu.Lock()
	t.config.Label = label
	t.mu.Unlock()
}

// SetLevel replaces the transport threshold
func (t *Transport) SetLevel(level Level) {
	t.mu.Lock()
	t.config.Level = &level
	t.mu.Unlock()
}

// Options returns the resolved configuration, or ErrTransportNotReady
func (t *Transport) Options() (Options, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.config.Resolve()
}

// Config returns the raw configuration, with nil fields where nothing was set
func (t *Transport) Config() TransportConfig {
	t.mu.Lock()
	defer t.mu.Unlock()
	cfg := t.config
	if cfg.Level != nil {
		level := *cfg.Level
		cfg.Level = &level
	}
	if cfg.Enabled != nil {
		enabled := *cfg.Enabled
		cfg.Enabled = &enabled
	}
	return cfg
}

// Label returns the transport label
func (t *Transport) Label() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.config.Label
}

// Enabled reports whether the transport accepts entries; false until set
func (t *Transport) Enabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.config.Enabled != nil && *t.config.Enabled && !t.state.Destroyed.Load()
}

// ID returns the unique transport identifier
func (t *Transport) ID() string {
	return t.id
}

// QueueLen returns the number of entries waiting to be sent
func (t *Transport) QueueLen() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.queue)
}

// Stats returns a snapshot of the transport counters
func (t *Transport) Stats() TransportStats {
	stats := t.state.snapshot()
	t.mu.Lock()
	stats.ID = t.id
	stats.Label = t.config.Label
	stats.QueueLen = len(t.queue)
	t.mu.Unlock()
	return stats
}

// injectDefaults fills level, enabled and label only where they are unset
func (t *Transport) injectDefaults(level *Level, enabled *bool, label *string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if level != nil && t.config.Level == nil {
		lv := *level
		t.config.Level = &lv
	}
	if enabled != nil && t.config.Enabled == nil {
		en := *enabled
		t.config.Enabled = &en
		t.enabledInjected = true
	}
	if label != nil && t.config.Label == "" {
		t.config.Label = *label
	}
}

// refreshInjectedEnabled replaces an enabled flag that was injected by a
// logger. Explicitly configured transports are left alone.
func (t *Transport) refreshInjectedEnabled(enabled bool) {
	t.mu.Lock()
	if !t.enabledInjected {
		t.mu.Unlock()
		return
	}
	t.config.Enabled = &enabled
	if enabled {
		t.mu.Unlock()
		return
	}
	t.stopTimerLocked()
	t.mu.Unlock()

	t.performFlush()
}
