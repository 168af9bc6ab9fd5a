// FILE: lixenwraith/translog/console.go
package translog

import (
	"bytes"
	"context"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/lixenwraith/translog/formatter"
)

// WriterSender writes each entry of a batch to an io.Writer as one line.
// The whole batch goes out in a single Write call.
type WriterSender struct {
	mu     sync.Mutex
	w      io.Writer
	render func(Entry) []byte
}

// NewWriterSender creates a sender rendering entries with render
func NewWriterSender(w io.Writer, render func(Entry) []byte) *WriterSender {
	return &WriterSender{w: w, render: render}
}

// SendBatch renders the batch in order and writes it
func (s *WriterSender) SendBatch(ctx context.Context, logs []Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	for _, entry := range logs {
		buf.Write(s.render(entry))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write(buf.Bytes()); err != nil {
		return fmtErrorf("failed to write batch: %w", err)
	}
	return nil
}

// ConsoleConfig configures the console transport
type ConsoleConfig struct {
	Writer          io.Writer // Defaults to os.Stdout
	Format          string    // FormatTxt or FormatJSON
	TimestampFormat string
	HideMeta        bool
	Color           bool // Colorize level names in txt output

	// FormatFunc replaces the formatter for the message line. Metadata is
	// still appended unless HideMeta is set.
	FormatFunc func(entry Entry) string
}

// NewConsoleTransport creates a transport printing one line per entry.
// It defaults to batch size 1 and no debounce, so entries print as they arrive.
func NewConsoleTransport(cfg ConsoleConfig, opts ...TransportOption) *Transport {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	sender := NewWriterSender(w, consoleRenderer(cfg))
	return newTransport(sender, TransportConfig{
		BatchSize: ConsoleBatchSize,
		Debounce:  ConsoleDebounce,
	}, opts...)
}

// consoleRenderer builds the per-entry render function for cfg
func consoleRenderer(cfg ConsoleConfig) func(Entry) []byte {
	if cfg.FormatFunc != nil {
		return func(entry Entry) []byte {
			var buf bytes.Buffer
			_ = PrintMessage(&buf, cfg.FormatFunc(entry), entry.Meta, cfg.HideMeta)
			return buf.Bytes()
		}
	}

	f := formatter.New().
		Type(cfg.Format).
		TimestampFormat(cfg.TimestampFormat).
		HideMeta(cfg.HideMeta)
	if cfg.Color {
		f.LevelStyle(styleLevel)
	}
	return func(entry Entry) []byte {
		return f.Line(entry.Time, entry.Level.String(), entry.Label, entry.Message, entry.Meta)
	}
}

var levelStyles = map[string]lipgloss.Style{
	"FATAL": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
	"ERROR": lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
	"WARN":  lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	"INFO":  lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	"DEBUG": lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

func styleLevel(name string) string {
	if style, ok := levelStyles[name]; ok {
		return style.Render(name)
	}
	return name
}
