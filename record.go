// FILE: lixenwraith/translog/record.go
package translog

import (
	"fmt"
	"time"
)

// Split is a variadic log call separated into its parts
type Split struct {
	Message string
	Params  []any
	Meta    Meta
}

// SplitParams separates a call into message template, interpolation
// parameters and optional trailing metadata.
//
// The first argument is the template, non-strings are printed with fmt.Sprint.
// A trailing Meta or map[string]any becomes metadata unless a placeholder in
// the template would consume it.
func SplitParams(args []any) Split {
	if len(args) == 0 {
		return Split{}
	}

	var msg string
	switch m := args[0].(type) {
	case string:
		msg = m
	case nil:
		msg = ""
	default:
		msg = fmt.Sprint(m)
	}
	return splitParams(msg, args[1:])
}

func splitParams(msg string, params []any) Split {
	split := Split{Message: msg}
	if len(params) == 0 {
		return split
	}

	last := params[len(params)-1]
	raw, isBag := metaBag(last)
	if isBag && countPlaceholders(msg) < len(params) {
		split.Meta = SanitizeMeta(raw)
		params = params[:len(params)-1]
	}
	if len(params) > 0 {
		split.Params = params
	}
	return split
}

// metaBag reports whether v is a metadata object
func metaBag(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case Meta:
		return m, true
	case map[string]any:
		return m, true
	}
	return nil, false
}

// log handles the core logging logic shared by all severity methods
func (l *Logger) log(level Level, msg string, params []any) {
	if l.disabled.Load() {
		return
	}
	// Below threshold: no entry is built and no transport is touched
	if !ShouldPublish(l.Level(), level) {
		return
	}

	split := splitParams(msg, params)

	entry := Entry{
		Time:    time.Now(),
		Level:   level,
		Label:   l.label,
		Message: Interpolate(split.Message, split.Params),
		Meta:    SanitizeMeta(mergeMeta(l.meta.snapshot(), split.Meta)),
	}

	if err := l.manager.Enqueue(entry); err != nil {
		internalLog(l.errOut, "failed to enqueue %s entry: %v", level, err)
	}
}
