// FILE: lixenwraith/translog/config.go
package translog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/lixenwraith/config"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds all logger configuration values
type Config struct {
	// Logger settings
	Level                      string `toml:"level" yaml:"level"` // Level name: fatal, error, warn, info, debug, silent
	Label                      string `toml:"label" yaml:"label"`
	Disabled                   bool   `toml:"disabled" yaml:"disabled"`
	HideMeta                   bool   `toml:"hide_meta" yaml:"hide_meta"`
	SuppressNoTransportWarning bool   `toml:"suppress_no_transport_warning" yaml:"suppress_no_transport_warning"`

	// Console transport
	EnableConsole   bool   `toml:"enable_console" yaml:"enable_console"`
	ConsoleTarget   string `toml:"console_target" yaml:"console_target"` // "stdout" or "stderr"
	Format          string `toml:"format" yaml:"format"`                 // "txt" or "json"
	TimestampFormat string `toml:"timestamp_format" yaml:"timestamp_format"`
	Color           bool   `toml:"color" yaml:"color"`
	BatchSize       int64  `toml:"batch_size" yaml:"batch_size"`
	DebounceMs      int64  `toml:"debounce_ms" yaml:"debounce_ms"`

	// File transport
	EnableFile     bool   `toml:"enable_file" yaml:"enable_file"`
	FilePath       string `toml:"file_path" yaml:"file_path"`
	FileBatchSize  int64  `toml:"file_batch_size" yaml:"file_batch_size"`
	FileDebounceMs int64  `toml:"file_debounce_ms" yaml:"file_debounce_ms"`
	MaxSizeMB      int64  `toml:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups     int64  `toml:"max_backups" yaml:"max_backups"`
	MaxAgeDays     int64  `toml:"max_age_days" yaml:"max_age_days"`
	Compress       bool   `toml:"compress" yaml:"compress"`
}

// defaultConfig is the single source for all configurable default values
var defaultConfig = Config{
	Level:                      "info",
	Label:                      "",
	Disabled:                   false,
	HideMeta:                   false,
	SuppressNoTransportWarning: false,

	EnableConsole:   true,
	ConsoleTarget:   TargetStdout,
	Format:          FormatTxt,
	TimestampFormat: time.RFC3339Nano,
	Color:           false,
	BatchSize:       ConsoleBatchSize,
	DebounceMs:      int64(ConsoleDebounce / time.Millisecond),

	EnableFile:     false,
	FilePath:       "./logs/app.log",
	FileBatchSize:  DefaultBatchSize,
	FileDebounceMs: int64(DefaultDebounce / time.Millisecond),
	MaxSizeMB:      10,
	MaxBackups:     5,
	MaxAgeDays:     0,
	Compress:       false,
}

// configPrefix is the section holding logger settings in config files
const configPrefix = "log."

// DefaultConfig returns a copy of the default configuration
func DefaultConfig() *Config {
	// Create a copy to prevent modifications to the original
	copiedConfig := defaultConfig
	return &copiedConfig
}

// configFile is the on-disk layout, settings live under a "log" section
type configFile struct {
	Log Config `toml:"log" yaml:"log"`
}

// NewConfigFromFile loads configuration from a TOML or YAML file and returns a validated Config.
// A missing file yields the defaults.
func NewConfigFromFile(path string) (*Config, error) {
	var (
		cfg *Config
		err error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cfg, err = loadYAML(path)
	default:
		cfg, err = loadTOML(path)
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadTOML reads a TOML file through lixenwraith/config
func loadTOML(path string) (*Config, error) {
	cfg := DefaultConfig()

	// Use lixenwraith/config as a loader
	loader := config.New()

	// Register the struct to enable proper unmarshaling
	if err := loader.RegisterStruct(configPrefix, *cfg); err != nil {
		return nil, fmtErrorf("failed to register config struct: %w", err)
	}

	// Load from file (handles file not found gracefully)
	if err := loader.Load(path, nil); err != nil && !errors.Is(err, config.ErrConfigNotFound) {
		return nil, fmtErrorf("failed to load config from %s: %w", path, err)
	}

	if err := extractConfig(loader, configPrefix, cfg); err != nil {
		return nil, fmtErrorf("failed to extract config values: %w", err)
	}
	return cfg, nil
}

// loadYAML reads a YAML file over the defaults
func loadYAML(path string) (*Config, error) {
	file := configFile{Log: *DefaultConfig()}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &file.Log, nil
		}
		return nil, fmtErrorf("failed to read config from %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmtErrorf("failed to parse config from %s: %w", path, err)
	}
	return &file.Log, nil
}

// SaveConfig writes the configuration under a "log" section, as YAML for
// .yaml/.yml paths and TOML otherwise
func (c *Config) SaveConfig(path string) error {
	file := configFile{Log: *c}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(file)
	default:
		data, err = toml.Marshal(file)
	}
	if err != nil {
		return fmtErrorf("failed to encode config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmtErrorf("failed to create config directory '%s': %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmtErrorf("failed to write config to %s: %w", path, err)
	}
	return nil
}

// extractConfig extracts values from lixenwraith/config into our Config struct
func extractConfig(loader *config.Config, prefix string, cfg *Config) error {
	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		fieldValue := v.Field(i)

		// Get the toml tag to determine the config key
		tomlTag := field.Tag.Get("toml")
		if tomlTag == "" {
			continue
		}

		val, found := loader.Get(prefix + tomlTag)
		if !found {
			continue // Use default value
		}

		if err := setFieldValue(fieldValue, val); err != nil {
			return fmt.Errorf("failed to set field %s: %w", field.Name, err)
		}
	}

	return nil
}

// setFieldValue sets a reflect.Value with proper type conversion
func setFieldValue(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		strVal, ok := value.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", value)
		}
		field.SetString(strVal)

	case reflect.Int64:
		switch v := value.(type) {
		case int64:
			field.SetInt(v)
		case int:
			field.SetInt(int64(v))
		case float64:
			// Some decoders report whole numbers as floats
			if v != float64(int64(v)) {
				return fmt.Errorf("expected integer, got %v", v)
			}
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("expected int64, got %T", value)
		}

	case reflect.Bool:
		boolVal, ok := value.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", value)
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.Level); err != nil {
		return err
	}

	if c.Format != FormatTxt && c.Format != FormatJSON {
		return fmtErrorf("invalid format: '%s' (use txt or json)", c.Format)
	}

	if strings.TrimSpace(c.TimestampFormat) == "" {
		return fmtErrorf("timestamp_format cannot be empty")
	}

	if c.ConsoleTarget != TargetStdout && c.ConsoleTarget != TargetStderr {
		return fmtErrorf("invalid console_target: '%s' (use stdout or stderr)", c.ConsoleTarget)
	}

	if c.BatchSize < 1 || c.FileBatchSize < 1 {
		return fmtErrorf("batch sizes must be at least 1")
	}

	if c.DebounceMs < 0 || c.FileDebounceMs < 0 {
		return fmtErrorf("debounce intervals cannot be negative")
	}

	if c.MaxSizeMB < 0 || c.MaxBackups < 0 || c.MaxAgeDays < 0 {
		return fmtErrorf("file rotation limits cannot be negative")
	}

	// Cross-field validations
	if c.EnableFile && strings.TrimSpace(c.FilePath) == "" {
		return fmtErrorf("file_path cannot be empty when enable_file is set")
	}

	if !c.EnableConsole && !c.EnableFile {
		return fmtErrorf("at least one of enable_console or enable_file must be set")
	}

	return nil
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	copiedConfig := *c
	return &copiedConfig
}

// NewFromConfig creates a logger with the transports described by cfg.
// Extra options are applied after the configuration.
func NewFromConfig(cfg *Config, opts ...Option) (*Logger, error) {
	return newFromConfig(cfg, nil, opts...)
}

// newFromConfig allows the console writer to be replaced, os.Stdout/os.Stderr otherwise
func newFromConfig(cfg *Config, consoleWriter io.Writer, opts ...Option) (*Logger, error) {
	if cfg == nil {
		return nil, fmtErrorf("configuration cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmtErrorf("invalid configuration: %w", err)
	}

	level, _ := ParseLevel(cfg.Level)

	var transports []*Transport
	if cfg.EnableConsole {
		w := consoleWriter
		if w == nil {
			w = os.Stdout
			if cfg.ConsoleTarget == TargetStderr {
				w = os.Stderr
			}
		}
		transports = append(transports, NewConsoleTransport(ConsoleConfig{
			Writer:          w,
			Format:          cfg.Format,
			TimestampFormat: cfg.TimestampFormat,
			HideMeta:        cfg.HideMeta,
			Color:           cfg.Color,
		},
			WithBatchSize(int(cfg.BatchSize)),
			WithDebounce(time.Duration(cfg.DebounceMs)*time.Millisecond),
		))
	}

	if cfg.EnableFile {
		ft, err := NewFileTransport(FileConfig{
			Path:            cfg.FilePath,
			Format:          cfg.Format,
			TimestampFormat: cfg.TimestampFormat,
			HideMeta:        cfg.HideMeta,
			MaxSizeMB:       int(cfg.MaxSizeMB),
			MaxBackups:      int(cfg.MaxBackups),
			MaxAgeDays:      int(cfg.MaxAgeDays),
			Compress:        cfg.Compress,
		},
			WithBatchSize(int(cfg.FileBatchSize)),
			WithDebounce(time.Duration(cfg.FileDebounceMs)*time.Millisecond),
		)
		if err != nil {
			for _, t := range transports {
				_ = t.Destroy()
			}
			return nil, err
		}
		transports = append(transports, ft)
	}

	base := []Option{
		WithLabel(cfg.Label),
		WithLevel(level),
		WithDisabled(cfg.Disabled),
		WithHideMeta(cfg.HideMeta),
		WithTransports(transports...),
	}
	if cfg.SuppressNoTransportWarning {
		base = append(base, SuppressNoTransportWarning())
	}

	return New(append(base, opts...)...), nil
}
