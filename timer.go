// FILE: lixenwraith/translog/timer.go
package translog

import (
	"time"
)

// Debounce timer management. All helpers require t.mu to be held.
//
// Each armed timer captures the current generation. Stopping bumps the
// generation so a callback that already fired but has not yet acquired the
// lock sees a stale value and returns without flushing.

// armTimerLocked cancels any pending timer and starts a new one
func (t *Transport) armTimerLocked() {
	t.stopTimerLocked()
	gen := t.timerGen
	t.timer = time.AfterFunc(t.config.Debounce, func() {
		t.onDebounce(gen)
	})
}

// stopTimerLocked cancels the pending timer, if any
func (t *Transport) stopTimerLocked() {
	t.timerGen++
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// onDebounce is the timer callback
func (t *Transport) onDebounce(gen uint64) {
	t.mu.Lock()
	if gen != t.timerGen {
		t.mu.Unlock()
		return
	}
	t.timer = nil
	t.mu.Unlock()

	t.performFlush()
}
