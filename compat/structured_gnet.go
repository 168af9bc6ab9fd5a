// FILE: lixenwraith/translog/compat/structured_gnet.go
package compat

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lixenwraith/translog"
)

var (
	// Pattern to detect common structured patterns like "key=%v" or "key: %v"
	keyValuePattern = regexp.MustCompile(`(\w+)\s*[:=]\s*%[vsdqxXeEfFgGpbcU]`)
	// Any printf verb, used to check that every argument has a key
	verbPattern = regexp.MustCompile(`%[-+# 0-9.]*[a-zA-Z]`)
)

// parseFormat attempts to extract structured fields from printf-style format strings.
// The literal text becomes the message and each key=%v pair a metadata field.
// Formats with verbs outside key=value pairs fall back to plain formatting.
func parseFormat(format string, args []any) (string, translog.Meta) {
	matches := keyValuePattern.FindAllStringSubmatchIndex(format, -1)
	verbs := verbPattern.FindAllStringIndex(strings.ReplaceAll(format, "%%", ""), -1)
	if len(matches) == 0 || len(matches) != len(args) || len(verbs) != len(matches) {
		return fmt.Sprintf(format, args...), nil
	}

	meta := make(translog.Meta, len(matches)+1)
	var text strings.Builder
	lastEnd := 0

	for i, match := range matches {
		// Text before this match is part of the message
		text.WriteString(format[lastEnd:match[0]])
		text.WriteByte(' ')

		key := format[match[2]:match[3]]
		meta[key] = args[i]
		lastEnd = match[1]
	}
	text.WriteString(format[lastEnd:])

	msg := strings.ReplaceAll(text.String(), "%%", "%")
	return strings.Join(strings.Fields(msg), " "), meta
}

// StructuredGnetAdapter provides enhanced structured logging for gnet
type StructuredGnetAdapter struct {
	*GnetAdapter
	extractFields bool
}

// NewStructuredGnetAdapter creates a gnet adapter with structured field extraction
func NewStructuredGnetAdapter(logger *translog.Logger, opts ...GnetOption) *StructuredGnetAdapter {
	return &StructuredGnetAdapter{
		GnetAdapter:   NewGnetAdapter(logger, opts...),
		extractFields: true,
	}
}

// logStructured parses the format and logs at level
func (a *StructuredGnetAdapter) logStructured(level translog.Level, format string, args []any) {
	msg, meta := parseFormat(format, args)
	if meta == nil {
		meta = translog.Meta{}
	}
	meta["source"] = "gnet"
	a.logger.Log(level, "%s", msg, meta)
}

// Debugf logs with structured field extraction
func (a *StructuredGnetAdapter) Debugf(format string, args ...any) {
	if a.extractFields {
		a.logStructured(translog.LevelDebug, format, args)
	} else {
		a.GnetAdapter.Debugf(format, args...)
	}
}

// Infof logs with structured field extraction
func (a *StructuredGnetAdapter) Infof(format string, args ...any) {
	if a.extractFields {
		a.logStructured(translog.LevelInfo, format, args)
	} else {
		a.GnetAdapter.Infof(format, args...)
	}
}

// Warnf logs with structured field extraction
func (a *StructuredGnetAdapter) Warnf(format string, args ...any) {
	if a.extractFields {
		a.logStructured(translog.LevelWarn, format, args)
	} else {
		a.GnetAdapter.Warnf(format, args...)
	}
}

// Errorf logs with structured field extraction
func (a *StructuredGnetAdapter) Errorf(format string, args ...any) {
	if a.extractFields {
		a.logStructured(translog.LevelError, format, args)
	} else {
		a.GnetAdapter.Errorf(format, args...)
	}
}
