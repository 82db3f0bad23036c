// Package event provides a pub-sub event bus for decoupled communication
// between the filter core, the terminal UI, and the dataset watcher.
//
// Filter managers publish an event for every mutation and for every
// activation. Consumers subscribe without holding a reference to the
// manager's internals, which is how the UI learns that the filtered output
// changed.
//
// # Main Types
//
//   - [Event]: Interface that all events must implement, providing EventType() and Timestamp()
//   - [Bus]: Synchronous pub-sub dispatcher with thread-safe operations
//   - [Handler]: Function type for event handlers (func(Event))
//
// # Event Categories
//
// Filter state:
//   - [FilterChangedEvent]: apply, remove, or toggle touched a named filter
//   - [FilterResetEvent]: every filter of a manager was deactivated
//
// Output:
//   - [FilteredEvent]: activation recomputed the filtered output
//
// Data:
//   - [DatasetReloadedEvent]: a watched dataset file changed on disk
//
// # Thread Safety
//
// The [Bus] type is safe for concurrent use. Handlers are called
// synchronously in registration order, and a panicking handler does not
// prevent other handlers from being called.
//
// # Basic Usage
//
//	bus := event.NewBus()
//
//	bus.Subscribe(event.TypeFiltered, func(e event.Event) {
//	    filtered := e.(event.FilteredEvent)
//	    log.Printf("%d of %d items match", filtered.Matched, filtered.Total)
//	})
//
//	bus.SubscribeAll(func(e event.Event) {
//	    log.Printf("Event: %s at %v", e.EventType(), e.Timestamp())
//	})
//
// # Event Type Naming Convention
//
// Event types follow the pattern "category.action":
//   - filter.applied, filter.removed, filter.toggled, filter.reset
//   - filter.activated
//   - dataset.reloaded
package event
