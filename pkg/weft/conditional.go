package weft

import "github.com/weft-dev/weft/pkg/ident"

// muxSignal dispatches value and write by the value of a condition.
type muxSignal[T any] struct {
	cond Readable[bool]
	t, f Duplex[T]
}

// Conditional is the ternary operator for signals: it yields t while cond's
// value is true and f while it is false. Both branches are fully evaluated
// as signals, but only the selected one is ever read or written.
func Conditional[T any](cond Readable[bool], t, f Duplex[T]) Duplex[T] {
	return muxSignal[T]{cond: cond, t: t, f: f}
}

// ConditionalRead is Conditional over read-only branches.
func ConditionalRead[T any](cond Readable[bool], t, f Readable[T]) Readable[T] {
	return muxSignal[T]{cond: cond, t: FakeWritability(t), f: FakeWritability(f)}
}

func (s muxSignal[T]) chosen() Duplex[T] {
	if s.cond.Read() {
		return s.t
	}
	return s.f
}

func (s muxSignal[T]) HasValue() bool {
	return s.cond.HasValue() && s.chosen().HasValue()
}

func (s muxSignal[T]) Read() T { return s.chosen().Read() }

func (s muxSignal[T]) ValueID() ident.ID {
	if !s.cond.HasValue() {
		return ident.Null
	}
	return ident.Pair(ident.Of(s.cond.Read()), ident.Ref(s.chosen().ValueID()))
}

func (s muxSignal[T]) ReadyToWrite() bool {
	return s.cond.HasValue() && s.chosen().ReadyToWrite()
}

func (s muxSignal[T]) Write(v T) error { return s.chosen().Write(v) }
