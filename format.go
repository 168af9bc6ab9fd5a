// FILE: lixenwraith/translog/format.go
package translog

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/lixenwraith/translog/formatter"
)

// Interpolate resolves printf-like placeholders in template.
//
// Supported tokens, each consuming one parameter:
//
//	%s %v  fmt.Sprint of the value
//	%d %i  integer (floats are truncated)
//	%f     floating point
//	%j %o %O  JSON encoding of the value
//
// "%%" is a literal percent sign. A token without a remaining parameter is
// kept verbatim. Parameters left over after the template are appended,
// separated by single spaces.
func Interpolate(template string, params []any) string {
	if len(params) == 0 && !strings.Contains(template, "%%") {
		return template
	}

	var sb strings.Builder
	sb.Grow(len(template) + 16*len(params))
	next := 0

	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '%' || i+1 >= len(template) {
			sb.WriteByte(c)
			continue
		}
		verb := template[i+1]
		if verb == '%' {
			sb.WriteByte('%')
			i++
			continue
		}
		if !isPlaceholder(verb) || next >= len(params) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteString(formatParam(verb, params[next]))
		next++
		i++
	}

	for ; next < len(params); next++ {
		sb.WriteByte(' ')
		sb.WriteString(fmt.Sprint(params[next]))
	}
	return sb.String()
}

// countPlaceholders returns how many parameters the template consumes
func countPlaceholders(template string) int {
	n := 0
	for i := 0; i+1 < len(template); i++ {
		if template[i] != '%' {
			continue
		}
		if template[i+1] == '%' {
			i++
			continue
		}
		if isPlaceholder(template[i+1]) {
			n++
			i++
		}
	}
	return n
}

func isPlaceholder(verb byte) bool {
	switch verb {
	case 's', 'v', 'd', 'i', 'f', 'j', 'o', 'O':
		return true
	}
	return false
}

func formatParam(verb byte, v any) string {
	switch verb {
	case 'd', 'i':
		switch n := v.(type) {
		case int:
			return strconv.Itoa(n)
		case int64:
			return strconv.FormatInt(n, 10)
		case int32:
			return strconv.FormatInt(int64(n), 10)
		case uint:
			return strconv.FormatUint(uint64(n), 10)
		case uint64:
			return strconv.FormatUint(n, 10)
		case float32:
			return strconv.FormatFloat(math.Trunc(float64(n)), 'f', -1, 64)
		case float64:
			return strconv.FormatFloat(math.Trunc(n), 'f', -1, 64)
		case string:
			if parsed, err := strconv.ParseFloat(n, 64); err == nil {
				return strconv.FormatFloat(math.Trunc(parsed), 'f', -1, 64)
			}
			return "NaN"
		}
		return fmt.Sprint(v)
	case 'f':
		switch n := v.(type) {
		case float64:
			return strconv.FormatFloat(n, 'f', -1, 64)
		case float32:
			return strconv.FormatFloat(float64(n), 'f', -1, 32)
		case string:
			if parsed, err := strconv.ParseFloat(n, 64); err == nil {
				return strconv.FormatFloat(parsed, 'f', -1, 64)
			}
			return "NaN"
		}
		return fmt.Sprint(v)
	case 'j', 'o', 'O':
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprint(v)
		}
		return string(data)
	default:
		return fmt.Sprint(v)
	}
}

// FormatMessage renders a single console line with the default formatter
func FormatMessage(entry Entry, label string) string {
	if entry.Label != "" {
		label = entry.Label
	}
	return formatter.New().FormatMessage(entry.Time, entry.Level.String(), label, entry.Message)
}

// PrintMessage writes an already formatted line to w, followed by the
// metadata rendering unless meta is empty or hideMeta is set.
func PrintMessage(w io.Writer, formatted string, meta Meta, hideMeta bool) error {
	var sb strings.Builder
	sb.Grow(len(formatted) + 64)
	sb.WriteString(formatted)
	if len(meta) > 0 && !hideMeta {
		sb.WriteByte(' ')
		sb.WriteString(formatter.RenderMeta(meta))
	}
	sb.WriteByte('\n')
	_, err := io.WriteString(w, sb.String())
	return err
}
