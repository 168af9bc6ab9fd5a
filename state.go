// FILE: lixenwraith/translog/state.go
package translog

import (
	"sync/atomic"
)

// transportState holds the runtime counters of a transport
type transportState struct {
	Enqueued  atomic.Uint64 // Entries accepted into the queue
	Sent      atomic.Uint64 // Entries delivered by successful sends
	Batches   atomic.Uint64 // Successful SendBatch calls
	Failures  atomic.Uint64 // Failed SendBatch calls, including panics
	Requeued  atomic.Uint64 // Entries put back at the queue front after a failure
	Filtered  atomic.Uint64 // Entries rejected by the transport level
	Dropped   atomic.Uint64 // Entries discarded while disabled or destroyed
	Destroyed atomic.Bool
}

// TransportStats is a point-in-time copy of transport counters
type TransportStats struct {
	ID       string
	Label    string
	Enqueued uint64
	Sent     uint64
	Batches  uint64
	Failures uint64
	Requeued uint64
	Filtered uint64
	Dropped  uint64
	QueueLen int
}

// snapshot copies the counters; queue length and identity are filled by the caller
func (s *transportState) snapshot() TransportStats {
	return TransportStats{
		Enqueued: s.Enqueued.Load(),
		Sent:     s.Sent.Load(),
		Batches:  s.Batches.Load(),
		Failures: s.Failures.Load(),
		Requeued: s.Requeued.Load(),
		Filtered: s.Filtered.Load(),
		Dropped:  s.Dropped.Load(),
	}
}
