// Package event defines event types for decoupling components in sift.
package event

import "time"

// Event is the interface that all events must implement.
type Event interface {
	// EventType returns a string identifier for this event type.
	// Convention: "category.action" (e.g., "filter.applied").
	EventType() string

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Event type identifiers.
const (
	TypeFilterApplied   = "filter.applied"
	TypeFilterRemoved   = "filter.removed"
	TypeFilterToggled   = "filter.toggled"
	TypeFilterReset     = "filter.reset"
	TypeFiltered        = "filter.activated"
	TypeDatasetReloaded = "dataset.reloaded"
)

// baseEvent provides common fields for all events.
// Embed this in concrete event types to satisfy the Event interface.
type baseEvent struct {
	eventType string
	timestamp time.Time
}

func (e baseEvent) EventType() string    { return e.eventType }
func (e baseEvent) Timestamp() time.Time { return e.timestamp }

// newBaseEvent creates a baseEvent with the current time.
func newBaseEvent(eventType string) baseEvent {
	return baseEvent{
		eventType: eventType,
		timestamp: time.Now(),
	}
}

// -----------------------------------------------------------------------------
// Filter State Events
// -----------------------------------------------------------------------------

// FilterChangedEvent is emitted when apply, remove, or toggle updates a
// declared filter. Operations on undeclared names emit nothing.
type FilterChangedEvent struct {
	baseEvent
	ManagerID string // Manager that owns the filter
	Filter    string // Filter name
	Active    bool   // Activation flag after the operation
	Payload   any    // Payload after the operation
}

func newFilterChangedEvent(eventType, managerID, name string, active bool, payload any) FilterChangedEvent {
	return FilterChangedEvent{
		baseEvent: newBaseEvent(eventType),
		ManagerID: managerID,
		Filter:    name,
		Active:    active,
		Payload:   payload,
	}
}

// NewFilterAppliedEvent creates a FilterChangedEvent for an apply.
func NewFilterAppliedEvent(managerID, name string, payload any) FilterChangedEvent {
	return newFilterChangedEvent(TypeFilterApplied, managerID, name, true, payload)
}

// NewFilterRemovedEvent creates a FilterChangedEvent for a remove.
func NewFilterRemovedEvent(managerID, name string, payload any) FilterChangedEvent {
	return newFilterChangedEvent(TypeFilterRemoved, managerID, name, false, payload)
}

// NewFilterToggledEvent creates a FilterChangedEvent for a toggle.
func NewFilterToggledEvent(managerID, name string, active bool, payload any) FilterChangedEvent {
	return newFilterChangedEvent(TypeFilterToggled, managerID, name, active, payload)
}

// FilterResetEvent is emitted when every filter of a manager is deactivated.
type FilterResetEvent struct {
	baseEvent
	ManagerID string
	Count     int // Number of filters that were reset
}

// NewFilterResetEvent creates a FilterResetEvent.
func NewFilterResetEvent(managerID string, count int) FilterResetEvent {
	return FilterResetEvent{
		baseEvent: newBaseEvent(TypeFilterReset),
		ManagerID: managerID,
		Count:     count,
	}
}

// -----------------------------------------------------------------------------
// Output Events
// -----------------------------------------------------------------------------

// FilteredEvent is emitted after an activation replaced the filtered output.
// Items holds the new output as the manager's typed slice ([]T); typed
// subscribers assert it back.
type FilteredEvent struct {
	baseEvent
	ManagerID string
	Active    []string // Names of the filters that took part, declaration order
	Total     int      // Size of the source snapshot
	Matched   int      // Size of the new output
	Items     any
}

// NewFilteredEvent creates a FilteredEvent.
func NewFilteredEvent(managerID string, active []string, total, matched int, items any) FilteredEvent {
	return FilteredEvent{
		baseEvent: newBaseEvent(TypeFiltered),
		ManagerID: managerID,
		Active:    active,
		Total:     total,
		Matched:   matched,
		Items:     items,
	}
}

// -----------------------------------------------------------------------------
// Data Events
// -----------------------------------------------------------------------------

// DatasetReloadedEvent is emitted when a watched dataset file changed and
// was read again.
type DatasetReloadedEvent struct {
	baseEvent
	Paths   []string // Files that changed
	Records int      // Record count after the reload
	Err     error    // Non-nil when the reload failed
}

// NewDatasetReloadedEvent creates a DatasetReloadedEvent.
func NewDatasetReloadedEvent(paths []string, records int, err error) DatasetReloadedEvent {
	return DatasetReloadedEvent{
		baseEvent: newBaseEvent(TypeDatasetReloaded),
		Paths:     paths,
		Records:   records,
		Err:       err,
	}
}
