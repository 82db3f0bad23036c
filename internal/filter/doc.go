// Package filter provides a stateful, two-phase filter manager for an
// in-memory list.
//
// Callers declare named predicates with [MakeFilter], hand them to [Init]
// together with the source list, stage activation changes with
// [Manager.Apply], [Manager.Remove], [Manager.Toggle] and [Manager.Reset],
// and then recompute the output explicitly with [Manager.Activate]. Staging
// never touches the output; only Activate does.
//
// # Main Types
//
//   - [Descriptor]: an immutable name/predicate pair
//   - [State]: a descriptor plus its activation flag and payload
//   - [Manager]: owns the states, the source snapshot, and the output
//   - [Lookup]: the result of [Manager.GetFilter]
//
// # Usage
//
//	year := filter.MakeFilter("year", func(b Book, _ any) bool { return b.Year > 2000 })
//	genre := filter.MakeFilter("genre", func(b Book, p any) bool { return b.Genre == p })
//
//	m := filter.Init(books, []filter.Descriptor[Book]{year, genre})
//	m.Apply("year").Apply("genre", "Fantasy")
//	m.Activate()
//	recent := m.Filtered()
//
// # Lookup
//
// GetFilter("all") (any letter case) returns every state in declaration
// order. Any other name is matched exactly; the first state with that name
// wins. Unknown names yield a Lookup whose Found method reports false.
//
// # Payloads
//
// Apply, Remove and Toggle all overwrite the payload of the named filter,
// including when they deactivate it. Reset deactivates everything and
// leaves payloads alone, so a later Apply without a payload runs with nil.
//
// # Observing Output
//
// Every manager publishes on an [event.Bus]. [Manager.Subscribe] registers
// a typed observer that runs after each Activate with the new output.
//
// # Thread Safety
//
// Manager is safe for concurrent use. Activate evaluates the states in
// effect at the moment it is called; predicates run without holding the
// manager's lock. When activations overlap, the output of the one that
// read the states last wins and [Manager.Output] pairs it with the filters
// it was computed with. A panicking predicate propagates to the caller of
// Activate and the previous output stays in place.
package filter
