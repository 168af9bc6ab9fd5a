// FILE: lixenwraith/translog/type.go
package translog

import (
	"time"

	"github.com/lixenwraith/translog/sanitizer"
)

// Entry is a single log record, built once per call and passed by value.
// Meta is shared between transports and must be treated as read-only.
type Entry struct {
	Time    time.Time
	Level   Level
	Label   string // Label of the emitting logger, may be empty
	Message string // Already interpolated
	Meta    Meta
}

// Meta is structured log metadata. After SanitizeMeta every value is a
// string, a number, a bool or nil.
type Meta map[string]any

// SanitizeMeta normalizes raw metadata to serializable primitives
func SanitizeMeta(raw map[string]any) Meta {
	if len(raw) == 0 {
		return nil
	}
	return Meta(sanitizer.Fields(raw))
}

// merge returns a new Meta with over applied on top of base
func mergeMeta(base, over Meta) Meta {
	if len(base) == 0 && len(over) == 0 {
		return nil
	}
	out := make(Meta, len(base)+len(over))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}
