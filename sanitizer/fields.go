package sanitizer

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/davecgh/go-spew/spew"
)

// dumper renders composite values compactly and deterministically
var dumper = &spew.ConfigState{
	Indent:                  " ",
	MaxDepth:                10,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
	SortKeys:                true,
}

// Fields returns a copy of raw in which every value is a string, a number,
// a bool or nil. Any other value is replaced by a deterministic string form.
func Fields(raw map[string]any) map[string]any {
	if raw == nil {
		return nil
	}
	out := make(map[string]any, len(raw))
	for k, v := range raw {
		out[k] = Value(v)
	}
	return out
}

// Value normalizes a single metadata value
func Value(v any) any {
	if v == nil {
		return nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return v
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return nil
		}
	}

	return Stringify(v)
}

// Stringify converts a non-primitive value to its string representation
func Stringify(v any) string {
	switch val := v.(type) {
	case error:
		return val.Error()
	case time.Time:
		return val.Format(time.RFC3339Nano)
	case fmt.Stringer:
		return val.String()
	case []byte:
		if utf8.Valid(val) {
			return string(val)
		}
		return hex.EncodeToString(val)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Func, reflect.Chan, reflect.UnsafePointer:
		return fmt.Sprintf("%T", v)
	case reflect.Complex64, reflect.Complex128:
		return fmt.Sprintf("%v", v)
	case reflect.Map, reflect.Slice, reflect.Array:
		if data, err := json.Marshal(v); err == nil {
			return string(data)
		}
	}

	return strings.TrimSpace(dumper.Sprintf("%+v", v))
}
