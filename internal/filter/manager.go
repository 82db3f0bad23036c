package filter

import (
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Iron-Ham/sift/internal/event"
	"github.com/Iron-Ham/sift/internal/logging"
)

// AllSentinel is the GetFilter query that returns every state. It is
// compared case-insensitively.
const AllSentinel = "all"

// Manager holds the filter states for one source list and the output of
// the last activation.
type Manager[T any] struct {
	mu       sync.RWMutex
	id       string
	source   []T
	states   []State[T]
	filtered []T

	// activated names the filters filtered was computed with.
	activated []string

	// gen numbers activations as they read the states; stored is the
	// number of the one whose output is in filtered.
	gen    uint64
	stored uint64

	bus    *event.Bus
	logger *logging.Logger
}

// Init creates a Manager over a snapshot of list with every descriptor
// inactive and without payload. Until the first Activate the output equals
// the snapshot. Later changes to list are not seen by the manager.
func Init[T any](list []T, descriptors []Descriptor[T], opts ...Option) *Manager[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.id == "" {
		o.id = uuid.NewString()
	}
	if o.bus == nil {
		o.bus = event.NewBusWithLogger(o.logger)
	}
	if o.logger == nil {
		o.logger = logging.NopLogger()
	}

	states := make([]State[T], 0, len(descriptors))
	for _, d := range descriptors {
		states = append(states, newState(d))
	}

	source := slices.Clone(list)
	m := &Manager[T]{
		id:       o.id,
		source:   source,
		states:   states,
		filtered: source,
		bus:      o.bus,
		logger:   o.logger.WithManager(o.id),
	}
	m.logger.Debug("filter manager initialized",
		"items", len(source),
		"filters", len(states))
	return m
}

// ID returns the manager's identifier, as carried by its events.
func (m *Manager[T]) ID() string {
	return m.id
}

// Bus returns the bus the manager publishes on.
func (m *Manager[T]) Bus() *event.Bus {
	return m.bus
}

// firstPayload maps the optional payload argument to a single value.
func firstPayload(payload []any) any {
	if len(payload) == 0 {
		return nil
	}
	return payload[0]
}

// indexLocked returns the index of the first state named name, or -1.
// Callers must hold mu.
func (m *Manager[T]) indexLocked(name string) int {
	return slices.IndexFunc(m.states, func(s State[T]) bool {
		return s.Name == name
	})
}

// update runs fn under the lock on the first state named name and publishes
// the event fn returns. Nothing happens when no state matches.
func (m *Manager[T]) update(op, name string, fn func(s *State[T]) event.Event) {
	m.mu.Lock()
	i := m.indexLocked(name)
	if i < 0 {
		m.mu.Unlock()
		m.logger.WithFilter(name).Debug("unknown filter ignored", "op", op)
		return
	}
	ev := fn(&m.states[i])
	active, payload := m.states[i].Active, m.states[i].Payload
	m.mu.Unlock()

	m.logger.WithFilter(name).Debug("filter staged",
		"op", op,
		"active", active,
		"payload", payload)
	m.bus.Publish(ev)
}

// Apply marks the named filter active and sets its payload. The output is
// not recomputed until Activate. Unknown names are ignored.
func (m *Manager[T]) Apply(name string, payload ...any) *Manager[T] {
	p := firstPayload(payload)
	m.update("apply", name, func(s *State[T]) event.Event {
		s.Active = true
		s.Payload = p
		return event.NewFilterAppliedEvent(m.id, name, p)
	})
	return m
}

// Remove marks the named filter inactive. Like Apply it overwrites the
// payload, so a Remove without payload clears it. Unknown names are ignored.
func (m *Manager[T]) Remove(name string, payload ...any) *Manager[T] {
	p := firstPayload(payload)
	m.update("remove", name, func(s *State[T]) event.Event {
		s.Active = false
		s.Payload = p
		return event.NewFilterRemovedEvent(m.id, name, p)
	})
	return m
}

// Toggle flips the named filter's activation and overwrites its payload.
// Unknown names are ignored.
func (m *Manager[T]) Toggle(name string, payload ...any) *Manager[T] {
	p := firstPayload(payload)
	m.update("toggle", name, func(s *State[T]) event.Event {
		s.Active = !s.Active
		s.Payload = p
		return event.NewFilterToggledEvent(m.id, name, s.Active, p)
	})
	return m
}

// Reset deactivates every filter. Payloads are kept.
func (m *Manager[T]) Reset() *Manager[T] {
	m.mu.Lock()
	for i := range m.states {
		m.states[i].Active = false
	}
	count := len(m.states)
	m.mu.Unlock()

	m.logger.Debug("filters reset", "count", count)
	m.bus.Publish(event.NewFilterResetEvent(m.id, count))
	return m
}

// Activate recomputes the output: the items of the source snapshot, in
// order, that satisfy every active filter. With no active filter the output
// is the whole snapshot. When activations overlap, the output of the one
// that read the states last is kept and earlier ones are discarded.
func (m *Manager[T]) Activate() {
	m.mu.Lock()
	m.gen++
	gen := m.gen
	active := m.activeLocked()
	source := m.source
	m.mu.Unlock()

	filtered := make([]T, 0, len(source))
	for _, item := range source {
		if matchesAll(item, active) {
			filtered = append(filtered, item)
		}
	}

	names := make([]string, len(active))
	for i, s := range active {
		names[i] = s.Name
	}

	m.mu.Lock()
	if gen < m.stored {
		m.mu.Unlock()
		m.logger.Debug("superseded activation discarded", "active", names)
		return
	}
	m.filtered = filtered
	m.activated = names
	m.stored = gen
	m.mu.Unlock()

	m.logger.Debug("filters activated",
		"active", names,
		"total", len(source),
		"matched", len(filtered))
	m.bus.Publish(event.NewFilteredEvent(m.id, names, len(source), len(filtered), slices.Clone(filtered)))
}

// activeLocked copies the active states. Callers must hold mu.
func (m *Manager[T]) activeLocked() []State[T] {
	active := make([]State[T], 0, len(m.states))
	for _, s := range m.states {
		if s.Active {
			active = append(active, s)
		}
	}
	return active
}

func matchesAll[T any](item T, active []State[T]) bool {
	for _, s := range active {
		if !s.Matches(item) {
			return false
		}
	}
	return true
}

// Filtered returns a copy of the output of the last activation.
func (m *Manager[T]) Filtered() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.filtered)
}

// Output returns the last activated output together with the names of the
// filters it was computed with. Unlike ActiveNames, the names never include
// changes staged after that activation.
func (m *Manager[T]) Output() (items []T, activated []string) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.filtered), slices.Clone(m.activated)
}

// Source returns a copy of the source snapshot.
func (m *Manager[T]) Source() []T {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.source)
}

// GetFilter looks up filter state. The query "all", in any letter case,
// returns every state; any other query returns the first state whose name
// matches exactly.
func (m *Manager[T]) GetFilter(name string) Lookup[T] {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if strings.EqualFold(name, AllSentinel) {
		return Lookup[T]{All: slices.Clone(m.states)}
	}
	if i := m.indexLocked(name); i >= 0 {
		s := m.states[i]
		return Lookup[T]{State: &s}
	}
	return Lookup[T]{}
}

// States returns a copy of every state in declaration order.
func (m *Manager[T]) States() []State[T] {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.states)
}

// ActiveNames returns the names of the currently active filters in
// declaration order. This is staged state and may differ from what the
// current output was computed with.
func (m *Manager[T]) ActiveNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var names []string
	for _, s := range m.states {
		if s.Active {
			names = append(names, s.Name)
		}
	}
	return names
}

// HasActive reports whether any filter is active.
func (m *Manager[T]) HasActive() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.ContainsFunc(m.states, func(s State[T]) bool { return s.Active })
}

// Subscribe registers fn to run after every Activate of this manager with
// the new output. It returns an ID for Unsubscribe.
func (m *Manager[T]) Subscribe(fn func(items []T)) string {
	return m.bus.Subscribe(event.TypeFiltered, func(e event.Event) {
		fe, ok := e.(event.FilteredEvent)
		if !ok || fe.ManagerID != m.id {
			return
		}
		items, ok := fe.Items.([]T)
		if !ok {
			return
		}
		fn(items)
	})
}

// Unsubscribe removes an observer registered with Subscribe.
func (m *Manager[T]) Unsubscribe(id string) bool {
	return m.bus.Unsubscribe(id)
}
