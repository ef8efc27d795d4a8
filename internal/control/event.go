package control

// UpdateEvent is emitted each time a control commits a new value.
type UpdateEvent[V any] struct {
	EmittedBy Widget
	OldValue  V
	NewValue  V
}

// UpdateListener observes value changes of a Control[V].
type UpdateListener[V any] interface {
	OnUpdate(event UpdateEvent[V]) error
}

// ListenerFunc adapts a function to UpdateListener.
type ListenerFunc[V any] func(event UpdateEvent[V]) error

// OnUpdate calls f(event).
func (f ListenerFunc[V]) OnUpdate(event UpdateEvent[V]) error {
	return f(event)
}

// Change is an UpdateEvent with its value type erased, for hosts that
// observe widgets of different kinds.
type Change struct {
	EmittedBy Widget
	Old       any
	New       any
}
