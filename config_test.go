// FILE: lixenwraith/translog/config_test.go
package translog

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.NotNil(t, cfg)
	assert.Equal(t, "info", cfg.Level)
	assert.True(t, cfg.EnableConsole)
	assert.False(t, cfg.EnableFile)
	assert.Equal(t, TargetStdout, cfg.ConsoleTarget)
	assert.Equal(t, FormatTxt, cfg.Format)
	assert.Equal(t, time.RFC3339Nano, cfg.TimestampFormat)
	assert.Equal(t, int64(ConsoleBatchSize), cfg.BatchSize)
	assert.Equal(t, int64(DefaultBatchSize), cfg.FileBatchSize)
	assert.Equal(t, int64(300), cfg.FileDebounceMs)
	assert.NoError(t, cfg.Validate())

	// Callers get independent copies
	cfg.Level = "debug"
	assert.Equal(t, "info", DefaultConfig().Level)
}

func TestConfigClone(t *testing.T) {
	cfg1 := DefaultConfig()
	cfg1.Label = "one"

	cfg2 := cfg1.Clone()
	cfg1.Label = "two"

	assert.Equal(t, "one", cfg2.Label)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*Config)
		wantError string
	}{
		{
			name:   "valid config",
			modify: func(c *Config) {},
		},
		{
			name:      "invalid level",
			modify:    func(c *Config) { c.Level = "loud" },
			wantError: "unknown level",
		},
		{
			name:      "invalid format",
			modify:    func(c *Config) { c.Format = "xml" },
			wantError: "invalid format",
		},
		{
			name:      "empty timestamp format",
			modify:    func(c *Config) { c.TimestampFormat = " " },
			wantError: "timestamp_format cannot be empty",
		},
		{
			name:      "invalid console target",
			modify:    func(c *Config) { c.ConsoleTarget = "stdlog" },
			wantError: "invalid console_target",
		},
		{
			name:      "zero batch size",
			modify:    func(c *Config) { c.FileBatchSize = 0 },
			wantError: "batch sizes must be at least 1",
		},
		{
			name:      "negative debounce",
			modify:    func(c *Config) { c.DebounceMs = -1 },
			wantError: "debounce intervals cannot be negative",
		},
		{
			name:      "negative rotation limit",
			modify:    func(c *Config) { c.MaxBackups = -1 },
			wantError: "file rotation limits cannot be negative",
		},
		{
			name: "file without path",
			modify: func(c *Config) {
				c.EnableFile = true
				c.FilePath = ""
			},
			wantError: "file_path cannot be empty",
		},
		{
			name:      "no transports",
			modify:    func(c *Config) { c.EnableConsole = false },
			wantError: "at least one of enable_console or enable_file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantError == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantError)
		})
	}
}

func TestConfigFileRoundTrip(t *testing.T) {
	for _, name := range []string{"translog.toml", "translog.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)

			cfg := DefaultConfig()
			cfg.Level = "debug"
			cfg.Label = "svc"
			cfg.Format = FormatJSON
			cfg.EnableFile = true
			cfg.FilePath = "/var/log/svc.log"
			cfg.FileBatchSize = 25
			cfg.Compress = true
			require.NoError(t, cfg.SaveConfig(path))

			loaded, err := NewConfigFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestNewConfigFromFile(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		for _, name := range []string{"absent.toml", "absent.yml"} {
			cfg, err := NewConfigFromFile(filepath.Join(t.TempDir(), name))
			require.NoError(t, err, name)
			assert.Equal(t, DefaultConfig(), cfg, name)
		}
	})

	t.Run("partial yaml keeps defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "partial.yaml")
		require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n  batch_size: 4\n"), 0o644))

		cfg, err := NewConfigFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "warn", cfg.Level)
		assert.Equal(t, int64(4), cfg.BatchSize)
		assert.Equal(t, FormatTxt, cfg.Format)
	})

	t.Run("invalid values rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("log:\n  format: xml\n"), 0o644))

		_, err := NewConfigFromFile(path)
		assert.Error(t, err)
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		_, err := NewFromConfig(nil)
		assert.Error(t, err)
	})

	t.Run("console and file", func(t *testing.T) {
		var out bytes.Buffer
		cfg := DefaultConfig()
		cfg.Label = "cfg"
		cfg.Level = "warn"
		cfg.EnableFile = true
		cfg.FilePath = filepath.Join(t.TempDir(), "out.log")

		logger, err := newFromConfig(cfg, &out)
		require.NoError(t, err)

		transports := logger.Transports()
		require.Len(t, transports, 2)
		fileOpts, err := transports[1].Options()
		require.NoError(t, err)
		assert.Equal(t, LevelWarn, fileOpts.Level)
		assert.Equal(t, DefaultBatchSize, fileOpts.BatchSize)
		assert.Equal(t, "cfg", fileOpts.Label)

		logger.Info("skipped")
		logger.Warn("kept")
		require.NoError(t, logger.Destroy())

		assert.NotContains(t, out.String(), "skipped")
		assert.Contains(t, out.String(), "WARN [cfg] kept")

		data, err := os.ReadFile(cfg.FilePath)
		require.NoError(t, err)
		assert.Contains(t, string(data), "WARN [cfg] kept")
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.BatchSize = 0
		_, err := NewFromConfig(cfg)
		assert.Error(t, err)
	})
}
