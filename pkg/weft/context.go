package weft

import (
	"fmt"

	"github.com/weft-dev/weft/pkg/graph"
)

// DynamicChecks enables additional runtime validation of context access,
// mirroring the dynamic-checking configuration of the component system.
// The core accessors always verify presence (absence is a programming
// error either way); with DynamicChecks on, typed component lookups also
// report type mismatches with detailed panics instead of bare assertions.
// Set it at startup and leave it alone afterwards.
var DynamicChecks bool

// Storage is the backing store for a context: direct pointers for the hot
// components plus a generic bag for host extensions. Deriving a context
// copies the (small) storage struct: WithoutData shares the bag, while With
// and Without give the new context its own copy of the bag.
type Storage struct {
	sys    *System
	data   *graph.Traversal
	events *EventTraversal
	timing *Timing

	// dataless marks a context whose data capability has been removed, as
	// inside event-handler bodies. The traversal pointer is retained so
	// that Abort can still mark it unwinding.
	dataless bool

	// bag holds host-supplied components keyed by tag values.
	bag map[any]any
}

// Context is the heterogeneous component bag threaded through a traversal.
// It is a small value; pass it by value, never retain it across traversals.
type Context struct {
	s *Storage
}

// System returns the system component.
func (c Context) System() *System {
	if c.s == nil || c.s.sys == nil {
		panic(&ProgrammerError{Msg: "weft: context has no system", Err: ErrComponentNotFound})
	}
	return c.s.sys
}

// Data returns the data traversal component. It panics on a dataless
// context (such as the one passed to event handlers).
func (c Context) Data() *graph.Traversal {
	if c.s == nil || c.s.data == nil || c.s.dataless {
		panic(&ProgrammerError{Msg: "weft: context has no data traversal", Err: ErrComponentNotFound})
	}
	return c.s.data
}

// Events returns the event traversal component.
func (c Context) Events() *EventTraversal {
	if c.s == nil || c.s.events == nil {
		panic(&ProgrammerError{Msg: "weft: context has no event traversal", Err: ErrComponentNotFound})
	}
	return c.s.events
}

// Timing returns the timing component.
func (c Context) Timing() *Timing {
	if c.s == nil || c.s.timing == nil {
		panic(&ProgrammerError{Msg: "weft: context has no timing component", Err: ErrComponentNotFound})
	}
	return c.s.timing
}

// HasData reports whether the context carries the data capability.
func (c Context) HasData() bool {
	return c.s != nil && c.s.data != nil && !c.s.dataless
}

// WithoutData returns a copy of the context with the data capability
// removed. Code holding the result cannot fetch graph data, which keeps
// conditional code paths (like event handlers) from disturbing slot order.
func (c Context) WithoutData() Context {
	ns := *c.s
	ns.dataless = true
	return Context{s: &ns}
}

// With returns a context extended with a host component under the given
// tag. The tag is typically a dedicated zero-size struct type value. The
// new context shares the hot components and copies the bag.
func With(c Context, tag, component any) Context {
	ns := *c.s
	bag := make(map[any]any, len(c.s.bag)+1)
	for k, v := range c.s.bag {
		bag[k] = v
	}
	bag[tag] = component
	ns.bag = bag
	return Context{s: &ns}
}

// Without returns a context with the tagged component removed.
func Without(c Context, tag any) Context {
	ns := *c.s
	bag := make(map[any]any, len(c.s.bag))
	for k, v := range c.s.bag {
		if k != tag {
			bag[k] = v
		}
	}
	ns.bag = bag
	return Context{s: &ns}
}

// Has reports whether the context carries a component under tag.
func Has(c Context, tag any) bool {
	_, ok := c.s.bag[tag]
	return ok
}

// Component returns the component stored under tag, asserting its type. It
// panics (with ErrComponentNotFound as the cause) when the component is
// absent.
func Component[T any](c Context, tag any) T {
	v, err := TryComponent[T](c, tag)
	if err != nil {
		panic(&ProgrammerError{Msg: fmt.Sprintf("weft: component %v", tag), Err: err})
	}
	return v
}

// TryComponent is Component with an error return instead of a panic.
func TryComponent[T any](c Context, tag any) (T, error) {
	var zero T
	v, ok := c.s.bag[tag]
	if !ok {
		return zero, ErrComponentNotFound
	}
	t, ok := v.(T)
	if !ok {
		if DynamicChecks {
			return zero, fmt.Errorf("weft: component %v holds %T, caller wants %T: %w",
				tag, v, zero, ErrComponentNotFound)
		}
		return zero, ErrComponentNotFound
	}
	return t, nil
}
