// FILE: lixenwraith/translog/heartbeat.go
package translog

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"
)

// StartHeartbeat periodically logs transport and runtime statistics at DEBUG
// until ctx is done. The returned function stops it early and waits for exit.
func (l *Logger) StartHeartbeat(ctx context.Context, interval time.Duration) (stop func()) {
	if interval < minHeartbeatInterval {
		interval = minHeartbeatInterval
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	start := time.Now()
	var sequence atomic.Uint64

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				seq := sequence.Add(1)
				l.logProcHeartbeat(seq, start)
				l.logSysHeartbeat(seq)
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

// logProcHeartbeat logs aggregated transport statistics
func (l *Logger) logProcHeartbeat(sequence uint64, start time.Time) {
	var sent, failures, requeued, dropped uint64
	queued := 0
	transports := l.manager.All()
	for _, t := range transports {
		s := t.Stats()
		sent += s.Sent
		failures += s.Failures
		requeued += s.Requeued
		dropped += s.Dropped
		queued += s.QueueLen
	}

	l.Debug("heartbeat", Meta{
		"type":         "proc",
		"sequence":     sequence,
		"uptime_hours": fmt.Sprintf("%.2f", time.Since(start).Hours()),
		"transports":   len(transports),
		"sent":         sent,
		"failures":     failures,
		"requeued":     requeued,
		"dropped":      dropped,
		"queued":       queued,
	})
}

// logSysHeartbeat logs runtime memory statistics
func (l *Logger) logSysHeartbeat(sequence uint64) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	l.Debug("heartbeat", Meta{
		"type":          "sys",
		"sequence":      sequence,
		"alloc_mb":      fmt.Sprintf("%.2f", float64(memStats.Alloc)/(1000*1000)),
		"sys_mb":        fmt.Sprintf("%.2f", float64(memStats.Sys)/(1000*1000)),
		"num_gc":        memStats.NumGC,
		"num_goroutine": runtime.NumGoroutine(),
	})
}
