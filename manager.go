// FILE: lixenwraith/translog/manager.go
package translog

import (
	"sync"
)

// InjectOptions holds defaults pushed down to transports. Nil fields are skipped.
type InjectOptions struct {
	Level   *Level
	Enabled *bool
	Label   *string
}

// Manager owns an ordered set of transports and fans entries out to all of them.
// A Manager is shared by a logger and all of its children, so membership
// changes and transport state are visible to every holder.
type Manager struct {
	mu         sync.RWMutex
	transports []*Transport
}

// NewManager creates a manager with the given transports
func NewManager(transports ...*Transport) *Manager {
	m := &Manager{}
	m.Add(transports...)
	return m
}

// Add appends transports. The same instance may be added more than once.
func (m *Manager) Add(transports ...*Transport) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range transports {
		if t != nil {
			m.transports = append(m.transports, t)
		}
	}
}

// Remove drops every occurrence of t and reports whether any was found
func (m *Manager) Remove(t *Transport) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.transports[:0]
	removed := false
	for _, existing := range m.transports {
		if existing == t {
			removed = true
			continue
		}
		kept = append(kept, existing)
	}
	// Clear the tail so removed transports can be collected
	for i := len(kept); i < len(m.transports); i++ {
		m.transports[i] = nil
	}
	m.transports = kept
	return removed
}

// Enqueue forwards entry to every transport. Each transport applies its own
// level and enabled state. Errors from individual transports are combined.
func (m *Manager) Enqueue(entry Entry) error {
	var err error
	for _, t := range m.All() {
		err = combineErrors(err, t.Enqueue(entry))
	}
	return err
}

// Flush flushes every transport
func (m *Manager) Flush() {
	for _, t := range m.All() {
		t.Flush()
	}
}

// Destroy destroys every transport and clears the set
func (m *Manager) Destroy() error {
	m.mu.Lock()
	transports := m.transports
	m.transports = nil
	m.mu.Unlock()

	var err error
	for _, t := range transports {
		err = combineErrors(err, t.Destroy())
	}
	return err
}

// SetLevel overrides the level of every transport
func (m *Manager) SetLevel(level Level) {
	for _, t := range m.All() {
		t.SetLevel(level)
	}
}

// InjectOptions assigns level, enabled and label on transports that do not
// already have them. Explicit per-transport configuration always wins.
func (m *Manager) InjectOptions(opts InjectOptions) {
	for _, t := range m.All() {
		t.injectDefaults(opts.Level, opts.Enabled, opts.Label)
	}
}

// Count returns the number of registered transports
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.transports)
}

// All returns a copy of the registered transports in insertion order
func (m *Manager) All() []*Transport {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Transport, len(m.transports))
	copy(out, m.transports)
	return out
}
