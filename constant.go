// FILE: lixenwraith/translog/constant.go
package translog

import (
	"time"
)

// Transport defaults
const (
	// Generic batching defaults for any transport
	DefaultBatchSize = 10
	DefaultDebounce  = 300 * time.Millisecond

	// Console flushes every entry as it arrives
	ConsoleBatchSize = 1
	ConsoleDebounce  = 0 * time.Millisecond
)

// Output formats understood by the formatter
const (
	FormatTxt  = "txt"
	FormatJSON = "json"
)

// Console targets
const (
	TargetStdout = "stdout"
	TargetStderr = "stderr"
)

// Internal diagnostics
const (
	// Prefix for all errors and internal messages of the package
	errorPrefix = "translog: "
	// Heartbeat floor to avoid flooding the transports
	minHeartbeatInterval = 10 * time.Millisecond
)
