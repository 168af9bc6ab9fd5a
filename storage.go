// FILE: lixenwraith/translog/storage.go
package translog

import (
	"os"
	"path/filepath"

	"github.com/lixenwraith/translog/formatter"
	"gopkg.in/natefinch/lumberjack.v2"
)

// FileConfig configures the rotating file transport
type FileConfig struct {
	Path            string
	Format          string // FormatTxt or FormatJSON
	TimestampFormat string
	HideMeta        bool
	MaxSizeMB       int // Rotate after this size, 0 uses the lumberjack default
	MaxBackups      int
	MaxAgeDays      int
	Compress        bool
}

// fileSender is a WriterSender that owns its rotating writer
type fileSender struct {
	*WriterSender
	file *lumberjack.Logger
}

// Close closes the current log file
func (s *fileSender) Close() error {
	return s.file.Close()
}

// Rotate forces a rotation of the current log file
func (s *fileSender) Rotate() error {
	return s.file.Rotate()
}

// NewFileTransport creates a transport appending lines to a rotating file.
// It uses the generic batch and debounce defaults. Destroy closes the file.
func NewFileTransport(cfg FileConfig, opts ...TransportOption) (*Transport, error) {
	if cfg.Path == "" {
		return nil, fmtErrorf("file transport requires a path")
	}

	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmtErrorf("failed to create log directory '%s': %w", dir, err)
	}

	file := &lumberjack.Logger{
		Filename:   cfg.Path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}

	f := formatter.New().
		Type(cfg.Format).
		TimestampFormat(cfg.TimestampFormat).
		HideMeta(cfg.HideMeta)

	sender := &fileSender{
		WriterSender: NewWriterSender(file, func(entry Entry) []byte {
			return f.Line(entry.Time, entry.Level.String(), entry.Label, entry.Message, entry.Meta)
		}),
		file: file,
	}

	return NewTransport(sender, opts...), nil
}

// RotateFile forces rotation when t is a file transport
func RotateFile(t *Transport) error {
	fs, ok := t.sender.(*fileSender)
	if !ok {
		return fmtErrorf("transport %q is not a file transport", t.Label())
	}
	// Pending entries belong to the current file
	t.Flush()
	return fs.Rotate()
}
