// FILE: lixenwraith/translog/watch_test.go
package translog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: info\n"), 0o644))

	logger, rec := createTestLogger(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, logger.WatchConfig(ctx, path))

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0o644))
	require.Eventually(t, func() bool { return logger.Level() == LevelDebug }, 2*time.Second, 10*time.Millisecond)

	// The reloaded level reaches the transports as well
	logger.Debug("now visible")
	assert.Equal(t, []string{"now visible"}, rec.messages())

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n  disabled: true\n"), 0o644))
	require.Eventually(t, logger.IsDisabled, 2*time.Second, 10*time.Millisecond)
}

func TestWatchConfigInvalidReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o644))

	errOut := &syncBuffer{}
	logger, _ := createTestLogger(t, WithLevel(LevelWarn), WithErrorOutput(errOut))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, logger.WatchConfig(ctx, path))

	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: loud\n"), 0o644))
	require.Eventually(t, func() bool {
		return len(errOut.String()) > 0
	}, 2*time.Second, 10*time.Millisecond)

	assert.Contains(t, errOut.String(), "failed to reload configuration")
	assert.Equal(t, LevelWarn, logger.Level())
}

func TestWatchConfigMissingFile(t *testing.T) {
	logger, _ := createTestLogger(t)
	err := logger.WatchConfig(context.Background(), filepath.Join(t.TempDir(), "none.toml"))
	assert.Error(t, err)
}

func TestReloadConfigDisabledToggle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toggle.toml")

	cfg := DefaultConfig()
	cfg.Disabled = true
	require.NoError(t, cfg.SaveConfig(path))

	inherited := &recordingSender{}
	explicit := &recordingSender{}
	explicitTransport := NewTransport(explicit, WithBatchSize(1), WithEnabled(false))
	logger := New(Disabled(), WithTransports(NewTransport(inherited, WithBatchSize(1)), explicitTransport))
	defer logger.Destroy()
	require.False(t, logger.Transports()[0].Enabled())

	cfg.Disabled = false
	require.NoError(t, cfg.SaveConfig(path))
	require.NoError(t, logger.reloadConfig(path))

	logger.Info("after reload")
	logger.Flush()

	assert.False(t, logger.IsDisabled())
	assert.Equal(t, []string{"after reload"}, inherited.messages())
	// An explicitly disabled transport keeps its own setting
	assert.False(t, explicitTransport.Enabled())
	assert.Empty(t, explicit.messages())

	// Disabling again through the file stops the inherited transport too
	cfg.Disabled = true
	require.NoError(t, cfg.SaveConfig(path))
	require.NoError(t, logger.reloadConfig(path))
	assert.False(t, logger.Transports()[0].Enabled())
}

func TestWatchConfigReenables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "live.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  disabled: true\n"), 0o644))

	rec := &recordingSender{}
	logger := New(Disabled(), WithTransports(NewTransport(rec, WithBatchSize(1))))
	defer logger.Destroy()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, logger.WatchConfig(ctx, path))

	require.NoError(t, os.WriteFile(path, []byte("log:\n  disabled: false\n"), 0o644))
	require.Eventually(t, func() bool {
		return !logger.IsDisabled() && logger.Transports()[0].Enabled()
	}, 2*time.Second, 10*time.Millisecond)

	logger.Info("back on")
	assert.Equal(t, []string{"back on"}, rec.messages())
}
