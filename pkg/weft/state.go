package weft

import (
	"github.com/weft-dev/weft/pkg/graph"
	"github.com/weft-dev/weft/pkg/ident"
)

// StateHolder stores a piece of application state together with a version
// counter. Signals over the holder report identity based on the version, so
// consumers see exactly one identity change per mutation. Version 0 means
// uninitialized.
type StateHolder[T any] struct {
	value   T
	version uint32
}

// NewStateHolder returns a holder initialized with value (version 1).
func NewStateHolder[T any](value T) StateHolder[T] {
	return StateHolder[T]{value: value, version: 1}
}

// IsInitialized reports whether the state has ever been set.
func (s *StateHolder[T]) IsInitialized() bool { return s.version != 0 }

// Get returns the current value.
func (s *StateHolder[T]) Get() T { return s.value }

// Version returns the mutation counter.
func (s *StateHolder[T]) Version() uint32 { return s.version }

// Set stores a new value and bumps the version.
func (s *StateHolder[T]) Set(value T) {
	s.value = value
	s.version++
}

// Mutate gives direct access to the stored value, counting one mutation.
// Use it atomically: mutate inside fn and let the reference go; holding it
// across other runtime activity hands out stale views.
func (s *StateHolder[T]) Mutate(fn func(*T)) {
	s.version++
	fn(&s.value)
}

// stateSignal is the bidirectional signal over a StateHolder.
type stateSignal[T any] struct {
	state *StateHolder[T]
}

// MakeStateSignal wraps an externally owned StateHolder in a signal.
func MakeStateSignal[T any](state *StateHolder[T]) Duplex[T] {
	return stateSignal[T]{state: state}
}

func (s stateSignal[T]) HasValue() bool     { return s.state.IsInitialized() }
func (s stateSignal[T]) Read() T            { return s.state.Get() }
func (s stateSignal[T]) ValueID() ident.ID  { return ident.Of(s.state.Version()) }
func (s stateSignal[T]) ReadyToWrite() bool { return true }
func (s stateSignal[T]) Write(v T) error    { s.state.Set(v); return nil }

// GetState returns a signal carrying persistent local state stored in the
// graph at the current point in the traversal, initialized to initial on
// first use.
func GetState[T any](ctx Context, initial T) Duplex[T] {
	state, isNew := graph.Get[StateHolder[T]](ctx.Data())
	if isNew {
		state.Set(initial)
	}
	return stateSignal[T]{state: state}
}

// GetStateFrom is GetState with the initial value drawn from a signal: the
// returned signal has no value until the initializer does (or a value is
// written explicitly).
func GetStateFrom[T any](ctx Context, initial Readable[T]) Duplex[T] {
	state, _ := graph.Get[StateHolder[T]](ctx.Data())
	if !state.IsInitialized() && initial.HasValue() {
		state.Set(initial.Read())
	}
	return stateSignal[T]{state: state}
}
