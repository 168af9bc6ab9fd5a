// Package formatter renders log entries into single output lines.
package formatter

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/lixenwraith/translog/sanitizer"
)

// Formatter renders entries as "txt" or "json" lines.
// A configured Formatter holds no mutable state and is safe for concurrent use.
type Formatter struct {
	sanitizer       *sanitizer.Sanitizer
	format          string
	timestampFormat string
	hideMeta        bool
	levelStyle      func(string) string
}

// New creates a txt formatter with the provided sanitizer, which must keep values on one line
func New(s ...*sanitizer.Sanitizer) *Formatter {
	var san *sanitizer.Sanitizer
	if len(s) > 0 && s[0] != nil {
		san = s[0]
	} else {
		san = sanitizer.New().Policy(sanitizer.PolicyLine)
	}
	return &Formatter{
		sanitizer:       san,
		format:          "txt",
		timestampFormat: time.RFC3339Nano,
	}
}

// Type sets the output format ("txt" or "json")
func (f *Formatter) Type(format string) *Formatter {
	if format == "json" {
		f.format = format
	} else {
		f.format = "txt"
	}
	return f
}

// TimestampFormat sets the timestamp layout
func (f *Formatter) TimestampFormat(format string) *Formatter {
	if format != "" {
		f.timestampFormat = format
	}
	return f
}

// HideMeta suppresses metadata rendering
func (f *Formatter) HideMeta(hide bool) *Formatter {
	f.hideMeta = hide
	return f
}

// LevelStyle decorates the level name in txt output, e.g. with terminal colors
func (f *Formatter) LevelStyle(style func(string) string) *Formatter {
	f.levelStyle = style
	return f
}

// FormatMessage renders timestamp, level, label and message into one line without a newline.
// The label is omitted along with its brackets when empty.
func (f *Formatter) FormatMessage(timestamp time.Time, level, label, message string) string {
	var sb strings.Builder
	sb.Grow(len(message) + len(label) + 48)

	sb.WriteString(timestamp.Format(f.timestampFormat))
	sb.WriteByte(' ')
	if f.levelStyle != nil {
		sb.WriteString(f.levelStyle(level))
	} else {
		sb.WriteString(level)
	}
	if label != "" {
		sb.WriteString(" [")
		sb.WriteString(f.sanitizer.Sanitize(label))
		sb.WriteByte(']')
	}
	sb.WriteByte(' ')
	sb.WriteString(f.sanitizer.Sanitize(message))
	return sb.String()
}

// Line renders a complete newline-terminated output line in the configured format
func (f *Formatter) Line(timestamp time.Time, level, label, message string, meta map[string]any) []byte {
	if f.format == "json" {
		return f.formatJSON(timestamp, level, label, message, meta)
	}

	line := f.FormatMessage(timestamp, level, label, message)
	buf := make([]byte, 0, len(line)+64)
	buf = append(buf, line...)
	if len(meta) > 0 && !f.hideMeta {
		buf = append(buf, ' ')
		buf = append(buf, RenderMeta(meta)...)
	}
	return append(buf, '\n')
}

type jsonLine struct {
	Time    string         `json:"time"`
	Level   string         `json:"level"`
	Label   string         `json:"label,omitempty"`
	Message string         `json:"message"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// formatJSON emits one JSON object per line
func (f *Formatter) formatJSON(timestamp time.Time, level, label, message string, meta map[string]any) []byte {
	rec := jsonLine{
		Time:    timestamp.Format(f.timestampFormat),
		Level:   level,
		Label:   label,
		Message: message,
	}
	if !f.hideMeta {
		rec.Meta = meta
	}

	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		// Metadata that cannot be encoded is replaced rather than dropping the line
		rec.Meta = map[string]any{"_marshal_error": err.Error()}
		b.Reset()
		_ = enc.Encode(rec)
	}
	return b.Bytes()
}

// RenderMeta renders metadata as a compact JSON object with sorted keys
func RenderMeta(meta map[string]any) string {
	var b bytes.Buffer
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(meta); err == nil {
		return strings.TrimSuffix(b.String(), "\n")
	}

	// Fallback for values JSON rejects, such as NaN
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(',')
		}
		kb, _ := json.Marshal(k)
		sb.Write(kb)
		sb.WriteByte(':')
		vb, err := json.Marshal(meta[k])
		if err != nil {
			vb, _ = json.Marshal(sanitizer.Stringify(meta[k]))
		}
		sb.Write(vb)
	}
	sb.WriteByte('}')
	return sb.String()
}
