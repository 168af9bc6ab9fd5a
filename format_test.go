// FILE: lixenwraith/translog/format_test.go
package translog

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpolate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		params   []any
		want     string
	}{
		{"no params", "plain message", nil, "plain message"},
		{"string", "hello %s", []any{"world"}, "hello world"},
		{"value", "got %v", []any{[]int{1, 2}}, "got [1 2]"},
		{"integer", "count=%d", []any{42}, "count=42"},
		{"integer alias", "count=%i", []any{int64(7)}, "count=7"},
		{"float truncated by %d", "n=%d", []any{3.9}, "n=3"},
		{"numeric string", "n=%d", []any{"12.5"}, "n=12"},
		{"non numeric string", "n=%d", []any{"abc"}, "n=NaN"},
		{"float", "ratio=%f", []any{0.25}, "ratio=0.25"},
		{"json", "obj=%j", []any{map[string]int{"a": 1}}, `obj={"a":1}`},
		{"json object alias", "obj=%o", []any{[]string{"x"}}, `obj=["x"]`},
		{"literal percent", "100%% done", nil, "100% done"},
		{"missing param kept", "%s and %s", []any{"one"}, "one and %s"},
		{"leftover params appended", "start", []any{"a", 2}, "start a 2"},
		{"unknown verb kept", "%x %s", []any{"y"}, "%x y"},
		{"trailing percent", "50%", nil, "50%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Interpolate(tt.template, tt.params))
		})
	}
}

func TestCountPlaceholders(t *testing.T) {
	assert.Equal(t, 0, countPlaceholders("none"))
	assert.Equal(t, 2, countPlaceholders("%s %d"))
	assert.Equal(t, 1, countPlaceholders("%% %s"))
	assert.Equal(t, 0, countPlaceholders("%x %"))
}

func TestFormatMessage(t *testing.T) {
	ts := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	line := FormatMessage(Entry{Time: ts, Level: LevelWarn, Message: "disk low"}, "api")
	assert.Equal(t, "2024-01-02T03:04:05Z WARN [api] disk low", line)

	// The entry label wins over the fallback
	line = FormatMessage(Entry{Time: ts, Level: LevelInfo, Label: "db", Message: "ok"}, "api")
	assert.Equal(t, "2024-01-02T03:04:05Z INFO [db] ok", line)

	line = FormatMessage(Entry{Time: ts, Level: LevelInfo, Message: "ok"}, "")
	assert.Equal(t, "2024-01-02T03:04:05Z INFO ok", line)
}

func TestPrintMessage(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, PrintMessage(&buf, "line", Meta{"k": "v"}, false))
	assert.Equal(t, "line {\"k\":\"v\"}\n", buf.String())

	buf.Reset()
	require.NoError(t, PrintMessage(&buf, "line", Meta{"k": "v"}, true))
	assert.Equal(t, "line\n", buf.String())

	buf.Reset()
	require.NoError(t, PrintMessage(&buf, "line", nil, false))
	assert.False(t, strings.Contains(buf.String(), "{"))
}
