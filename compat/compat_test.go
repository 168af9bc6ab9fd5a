// FILE: lixenwraith/translog/compat/compat_test.go
package compat

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/translog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// recorder collects every entry sent to it
type recorder struct {
	mu      sync.Mutex
	entries []translog.Entry
}

func (r *recorder) SendBatch(_ context.Context, logs []translog.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, logs...)
	return nil
}

func (r *recorder) all() []translog.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]translog.Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// createTestCompatBuilder creates a standard setup for compatibility adapter tests
func createTestCompatBuilder(t *testing.T) (*Builder, *translog.Logger, *recorder) {
	t.Helper()
	rec := &recorder{}
	appLogger := translog.New(
		translog.WithLevel(translog.LevelDebug),
		translog.WithTransports(translog.NewTransport(rec, translog.WithBatchSize(1))),
	)
	t.Cleanup(func() { _ = appLogger.Destroy() })

	builder := NewBuilder().WithLogger(appLogger)
	return builder, appLogger, rec
}

// TestCompatBuilder verifies the compatibility builder can be initialized correctly
func TestCompatBuilder(t *testing.T) {
	t.Run("with existing logger", func(t *testing.T) {
		builder, logger, _ := createTestCompatBuilder(t)

		gnetAdapter, err := builder.BuildGnet()
		require.NoError(t, err)
		assert.NotNil(t, gnetAdapter)
		assert.Equal(t, logger, gnetAdapter.logger)
	})

	t.Run("with config", func(t *testing.T) {
		logCfg := translog.DefaultConfig()
		logCfg.Level = "warn"

		builder := NewBuilder().WithConfig(logCfg)
		fasthttpAdapter, err := builder.BuildFastHTTP()
		require.NoError(t, err)
		assert.NotNil(t, fasthttpAdapter)

		logger1, err := builder.GetLogger()
		require.NoError(t, err)
		defer logger1.Destroy()
		assert.Equal(t, translog.LevelWarn, logger1.Level())

		// The created logger is cached
		logger2, err := builder.GetLogger()
		require.NoError(t, err)
		assert.Same(t, logger1, logger2)
	})

	t.Run("nil logger", func(t *testing.T) {
		_, err := NewBuilder().WithLogger(nil).BuildGnet()
		assert.Error(t, err)
	})

	t.Run("invalid config", func(t *testing.T) {
		logCfg := translog.DefaultConfig()
		logCfg.Format = "xml"
		_, err := NewBuilder().WithConfig(logCfg).BuildZap()
		assert.Error(t, err)
	})
}

// TestGnetAdapter tests the gnet adapter's levels and metadata
func TestGnetAdapter(t *testing.T) {
	builder, _, rec := createTestCompatBuilder(t)

	var fatalMsg string
	adapter, err := builder.BuildGnet(WithFatalHandler(func(msg string) {
		fatalMsg = msg
	}))
	require.NoError(t, err)

	adapter.Debugf("gnet debug id=%d", 1)
	adapter.Infof("gnet info id=%d", 2)
	adapter.Warnf("gnet warn id=%d", 3)
	adapter.Errorf("gnet error id=%d", 4)
	adapter.Fatalf("gnet fatal id=%d", 5)

	expected := []struct {
		level translog.Level
		msg   string
	}{
		{translog.LevelDebug, "gnet debug id=1"},
		{translog.LevelInfo, "gnet info id=2"},
		{translog.LevelWarn, "gnet warn id=3"},
		{translog.LevelError, "gnet error id=4"},
		{translog.LevelFatal, "gnet fatal id=5"},
	}

	entries := rec.all()
	require.Len(t, entries, len(expected))
	for i, entry := range entries {
		assert.Equal(t, expected[i].level, entry.Level)
		assert.Equal(t, expected[i].msg, entry.Message)
		assert.Equal(t, "gnet", entry.Meta["source"])
	}
	assert.Equal(t, "gnet fatal id=5", fatalMsg, "Custom fatal handler should have been called")
}

// TestStructuredGnetAdapter tests the gnet adapter with structured field extraction
func TestStructuredGnetAdapter(t *testing.T) {
	builder, _, rec := createTestCompatBuilder(t)

	adapter, err := builder.BuildStructuredGnet()
	require.NoError(t, err)

	adapter.Infof("request served status=%d client_ip=%s", 200, "127.0.0.1")
	adapter.Warnf("user %s logged in", "bob")

	entries := rec.all()
	require.Len(t, entries, 2)

	assert.Equal(t, translog.LevelInfo, entries[0].Level)
	assert.Equal(t, "request served", entries[0].Message)
	assert.Equal(t, 200, entries[0].Meta["status"])
	assert.Equal(t, "127.0.0.1", entries[0].Meta["client_ip"])
	assert.Equal(t, "gnet", entries[0].Meta["source"])

	// Verbs without keys fall back to plain formatting
	assert.Equal(t, translog.LevelWarn, entries[1].Level)
	assert.Equal(t, "user bob logged in", entries[1].Message)
	assert.Equal(t, translog.Meta{"source": "gnet"}, entries[1].Meta)
}

func TestParseFormat(t *testing.T) {
	testCases := []struct {
		name   string
		format string
		args   []any
		msg    string
		meta   translog.Meta
	}{
		{
			name:   "key value pairs",
			format: "conn opened fd=%d addr: %s",
			args:   []any{7, "10.0.0.1"},
			msg:    "conn opened",
			meta:   translog.Meta{"fd": 7, "addr": "10.0.0.1"},
		},
		{
			name:   "no pairs",
			format: "plain %s",
			args:   []any{"text"},
			msg:    "plain text",
		},
		{
			name:   "argument count mismatch",
			format: "n=%d",
			args:   []any{1, 2},
			msg:    "n=1%!(EXTRA int=2)",
		},
		{
			name:   "literal percent kept",
			format: "load 100%% cpu=%d",
			args:   []any{3},
			msg:    "load 100%",
			meta:   translog.Meta{"cpu": 3},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			msg, meta := parseFormat(tc.format, tc.args)
			assert.Equal(t, tc.msg, msg)
			assert.Equal(t, tc.meta, meta)
		})
	}
}

// TestFastHTTPAdapter tests the fasthttp adapter's level detection
func TestFastHTTPAdapter(t *testing.T) {
	builder, _, rec := createTestCompatBuilder(t)

	adapter, err := builder.BuildFastHTTP()
	require.NoError(t, err)

	testMessages := []string{
		"this is some informational message",
		"a debug message for the developers",
		"warning: something might be wrong",
		"an error occurred while processing",
	}
	for _, msg := range testMessages {
		adapter.Printf("%s", msg)
	}

	expectedLevels := []translog.Level{
		translog.LevelInfo, translog.LevelDebug, translog.LevelWarn, translog.LevelError,
	}

	entries := rec.all()
	require.Len(t, entries, 4)
	for i, entry := range entries {
		assert.Equal(t, expectedLevels[i], entry.Level)
		assert.Equal(t, testMessages[i], entry.Message)
		assert.Equal(t, "fasthttp", entry.Meta["source"])
	}
}

func TestFastHTTPAdapterDefaultLevel(t *testing.T) {
	builder, _, rec := createTestCompatBuilder(t)

	adapter, err := builder.BuildFastHTTP(
		WithDefaultLevel(translog.LevelWarn),
		WithLevelDetector(nil),
	)
	require.NoError(t, err)

	adapter.Printf("request failed: %d", 500)

	entries := rec.all()
	require.Len(t, entries, 1)
	assert.Equal(t, translog.LevelWarn, entries[0].Level)
	assert.Equal(t, "request failed: 500", entries[0].Message)
}

func TestDetectLogLevel(t *testing.T) {
	level, ok := DetectLogLevel("PANIC recovered")
	assert.True(t, ok)
	assert.Equal(t, translog.LevelError, level)

	level, ok = DetectLogLevel("deprecated option")
	assert.True(t, ok)
	assert.Equal(t, translog.LevelWarn, level)

	_, ok = DetectLogLevel("served 200")
	assert.False(t, ok)
}

// TestZapCore tests the zap bridge
func TestZapCore(t *testing.T) {
	builder, logger, rec := createTestCompatBuilder(t)

	zl, err := builder.BuildZap()
	require.NoError(t, err)

	zl.Info("hello", zap.String("k", "v"), zap.Int("n", 3))
	zl.With(zap.String("req", "r1")).Named("db").Error("query failed")

	entries := rec.all()
	require.Len(t, entries, 2)

	assert.Equal(t, translog.LevelInfo, entries[0].Level)
	assert.Equal(t, "hello", entries[0].Message)
	assert.Equal(t, "v", entries[0].Meta["k"])
	assert.EqualValues(t, 3, entries[0].Meta["n"])
	assert.Equal(t, "zap", entries[0].Meta["source"])

	assert.Equal(t, translog.LevelError, entries[1].Level)
	assert.Equal(t, "r1", entries[1].Meta["req"])
	assert.Equal(t, "db", entries[1].Meta["logger"])

	t.Run("level gating", func(t *testing.T) {
		logger.SetLevel(translog.LevelWarn)
		defer logger.SetLevel(translog.LevelDebug)

		assert.False(t, zl.Core().Enabled(zapcore.DebugLevel))
		assert.True(t, zl.Core().Enabled(zapcore.ErrorLevel))

		zl.Info("dropped")
		assert.Len(t, rec.all(), 2)
	})

	assert.NoError(t, zl.Sync())
}

func TestFromZapLevel(t *testing.T) {
	assert.Equal(t, translog.LevelDebug, fromZapLevel(zapcore.DebugLevel))
	assert.Equal(t, translog.LevelInfo, fromZapLevel(zapcore.InfoLevel))
	assert.Equal(t, translog.LevelWarn, fromZapLevel(zapcore.WarnLevel))
	assert.Equal(t, translog.LevelError, fromZapLevel(zapcore.ErrorLevel))
	assert.Equal(t, translog.LevelFatal, fromZapLevel(zapcore.DPanicLevel))
	assert.Equal(t, translog.LevelFatal, fromZapLevel(zapcore.FatalLevel))
}

// fatalHookRecorder records transport state when zap invokes the fatal hook
type fatalHookRecorder struct {
	transport *translog.Transport
	queued    int
	sent      uint64
	called    bool
}

func (h *fatalHookRecorder) OnWrite(*zapcore.CheckedEntry, []zapcore.Field) {
	h.called = true
	h.queued = h.transport.QueueLen()
	h.sent = h.transport.Stats().Sent
}

// TestZapCoreFlushesBeforeFatal checks that entries above ERROR are delivered
// before zap hands control to its fatal hook
func TestZapCoreFlushesBeforeFatal(t *testing.T) {
	rec := &recorder{}
	tr := translog.NewTransport(rec, translog.WithBatchSize(10), translog.WithDebounce(time.Hour))
	logger := translog.New(translog.WithLevel(translog.LevelDebug), translog.WithTransports(tr))
	defer logger.Destroy()

	hook := &fatalHookRecorder{transport: tr}
	zl := NewZapLogger(logger, zap.WithFatalHook(hook))

	zl.Info("buffered")
	assert.Equal(t, 1, tr.QueueLen())

	zl.Fatal("shutting down")
	require.True(t, hook.called)
	assert.Equal(t, 0, hook.queued)
	assert.Equal(t, uint64(2), hook.sent)

	entries := rec.all()
	require.Len(t, entries, 2)
	assert.Equal(t, translog.LevelFatal, entries[1].Level)

	// DPanic does not panic outside development mode but is still flushed
	zl.DPanic("dpanic")
	assert.Equal(t, 0, tr.QueueLen())
	assert.Len(t, rec.all(), 3)
}
