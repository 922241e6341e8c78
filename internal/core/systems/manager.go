package systems

import (
	"fmt"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/zeusync/shoalsync/internal/core/models"
)

type entry struct {
	system    System
	enabled   atomic.Bool
	processed atomic.Uint64
}

// Manager keeps systems in execution order. Registration is guarded by a
// mutex; agents are updated through a Pipeline taken once per tick.
type Manager struct {
	mu      sync.RWMutex
	entries []*entry
	byName  map[string]*entry
}

func NewManager(systems ...System) (*Manager, error) {
	m := &Manager{byName: make(map[string]*entry)}
	for _, s := range systems {
		if err := m.Register(s); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Register adds s enabled. Systems of equal priority keep registration order.
func (m *Manager) Register(s System) error {
	if s == nil {
		return ErrNilSystem
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byName[s.Name()]; exists {
		return fmt.Errorf("%w: %s", ErrSystemExists, s.Name())
	}

	e := &entry{system: s}
	e.enabled.Store(true)
	m.byName[s.Name()] = e
	m.entries = append(m.entries, e)
	slices.SortStableFunc(m.entries, func(a, b *entry) int {
		return int(b.system.Priority()) - int(a.system.Priority())
	})
	return nil
}

func (m *Manager) Unregister(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSystemNotFound, name)
	}
	delete(m.byName, name)
	m.entries = slices.DeleteFunc(m.entries, func(x *entry) bool { return x == e })
	return nil
}

func (m *Manager) Enable(name string) error  { return m.setEnabled(name, true) }
func (m *Manager) Disable(name string) error { return m.setEnabled(name, false) }

func (m *Manager) setEnabled(name string, enabled bool) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrSystemNotFound, name)
	}
	e.enabled.Store(enabled)
	return nil
}

// Get returns the system registered under name.
func (m *Manager) Get(name string) (System, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.byName[name]
	if !ok {
		return nil, false
	}
	return e.system, true
}

// Pipeline is the enabled systems of one tick in execution order.
// It never locks, so many workers can share it.
type Pipeline struct {
	entries []*entry
}

// Snapshot copies the enabled systems. Changes made to the manager
// afterwards do not affect the returned pipeline.
func (m *Manager) Snapshot() Pipeline {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entries := make([]*entry, 0, len(m.entries))
	for _, e := range m.entries {
		if e.enabled.Load() {
			entries = append(entries, e)
		}
	}
	return Pipeline{entries: entries}
}

// Apply runs every system of the pipeline on one agent, highest priority first.
func (p Pipeline) Apply(ctx *Context, id models.AgentID, agent *models.AgentState) {
	for _, e := range p.entries {
		e.system.Update(ctx, id, agent)
		e.processed.Add(1)
	}
}

// Len is the number of systems the pipeline runs.
func (p Pipeline) Len() int { return len(p.entries) }

// ExecutionOrder lists system names in the order Apply runs them.
func (m *Manager) ExecutionOrder() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, len(m.entries))
	for i, e := range m.entries {
		names[i] = e.system.Name()
	}
	return names
}

// Metrics returns the counters of the named system.
func (m *Manager) Metrics(name string) (Metrics, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.byName[name]
	if !ok {
		return Metrics{}, false
	}
	return e.metrics(), true
}

// AllMetrics returns the counters of every system in execution order.
func (m *Manager) AllMetrics() []Metrics {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Metrics, len(m.entries))
	for i, e := range m.entries {
		out[i] = e.metrics()
	}
	return out
}

func (e *entry) metrics() Metrics {
	state := StateDisabled
	if e.enabled.Load() {
		state = StateEnabled
	}
	return Metrics{
		Name:              e.system.Name(),
		Priority:          e.system.Priority(),
		State:             state,
		EntitiesProcessed: e.processed.Load(),
	}
}
