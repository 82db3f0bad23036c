package filter

// Predicate decides whether item belongs to the filtered output. payload is
// whatever was passed to the last Apply, Remove or Toggle of the filter, or
// nil.
type Predicate[T any] func(item T, payload any) bool

// Descriptor pairs a filter name with its predicate.
type Descriptor[T any] struct {
	Name      string
	Predicate Predicate[T]
}

// MakeFilter builds a Descriptor. Neither argument is validated; uniqueness
// of names is the caller's concern.
func MakeFilter[T any](name string, predicate Predicate[T]) Descriptor[T] {
	return Descriptor[T]{Name: name, Predicate: predicate}
}

// State is the runtime view of one declared filter.
type State[T any] struct {
	Name      string
	Predicate Predicate[T]
	Active    bool
	Payload   any
}

func newState[T any](d Descriptor[T]) State[T] {
	return State[T]{Name: d.Name, Predicate: d.Predicate}
}

// Matches reports whether item passes this filter with its current payload.
func (s State[T]) Matches(item T) bool {
	return s.Predicate(item, s.Payload)
}

// Lookup is the result of Manager.GetFilter. Exactly one of All and State
// is set when the query matched; both are empty otherwise.
type Lookup[T any] struct {
	All   []State[T] // Set for the "all" sentinel
	State *State[T]  // Set for a single name match
}

// Found reports whether the query matched anything.
func (l Lookup[T]) Found() bool {
	return l.All != nil || l.State != nil
}

// IsAll reports whether the query was the "all" sentinel.
func (l Lookup[T]) IsAll() bool {
	return l.All != nil
}
