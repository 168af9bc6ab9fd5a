// FILE: lixenwraith/translog/level.go
package translog

import (
	"errors"
	"fmt"
	"strings"
)

// Level is a log severity. Lower values are more severe.
type Level int

// Log level constants, most severe first
const (
	LevelFatal Level = iota
	LevelError
	LevelWarn
	LevelInfo
	LevelDebug
	// LevelSilent is a threshold that never publishes, not a severity to emit
	LevelSilent
)

// ErrUnknownLevel is returned by ParseLevel for names outside the level set
var ErrUnknownLevel = errors.New("unknown level")

var levelNames = map[Level]string{
	LevelFatal:  "FATAL",
	LevelError:  "ERROR",
	LevelWarn:   "WARN",
	LevelInfo:   "INFO",
	LevelDebug:  "DEBUG",
	LevelSilent: "SILENT",
}

// String returns the upper-case level name
func (lv Level) String() string {
	if name, ok := levelNames[lv]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(lv))
}

// Levels returns the publishable levels, most severe first
func Levels() []Level {
	return []Level{LevelFatal, LevelError, LevelWarn, LevelInfo, LevelDebug}
}

// ShouldPublish reports whether a record at level passes the current threshold.
// A SILENT threshold publishes nothing.
func ShouldPublish(current, level Level) bool {
	if current == LevelSilent {
		return false
	}
	return level <= current
}

// ParseLevel converts a level name to its Level, case-insensitive
func ParseLevel(name string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fatal":
		return LevelFatal, nil
	case "error":
		return LevelError, nil
	case "warn":
		return LevelWarn, nil
	case "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "silent":
		return LevelSilent, nil
	default:
		return 0, fmtErrorf("%w: '%s' (use fatal, error, warn, info, debug, silent)", ErrUnknownLevel, name)
	}
}

// IsValidLevel reports whether ParseLevel would accept name
func IsValidLevel(name string) bool {
	_, err := ParseLevel(name)
	return err == nil
}
