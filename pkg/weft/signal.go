package weft

import "github.com/weft-dev/weft/pkg/ident"

// Untyped is the part of the signal interface that is independent of the
// carried value type.
type Untyped interface {
	// HasValue reports whether the signal currently carries a value.
	HasValue() bool

	// ValueID returns the identity of the current value. If HasValue is
	// true, the identity is equal across two calls exactly when the value
	// has not changed; a signal that does not know its value yet may return
	// ident.Null. Identity stability is the mechanism the runtime uses to
	// decide when cached results must be invalidated.
	ValueID() ident.ID
}

// Readable is a signal that can be read. Signals borrow their sources and
// are scoped to a single traversal: they may be copied freely but must not
// be stored across traversals.
type Readable[T any] interface {
	Untyped

	// Read returns the current value. Only meaningful while HasValue.
	Read() T
}

// Writable is a signal that can be written.
type Writable[T any] interface {
	// ReadyToWrite reports whether a write would be accepted.
	ReadyToWrite() bool

	// Write stores a new value. It returns a *ValidationError when the
	// value is rejected; any other behavior on a signal that is not ready
	// to write is undefined.
	Write(v T) error
}

// Duplex is a bidirectional signal.
type Duplex[T any] interface {
	Readable[T]
	Writable[T]
}

// Number constrains the numeric value types the arithmetic combinators
// operate on.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Integer constrains the value types the shift and bitwise combinators
// operate on.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// HasValue reports whether s currently has a value. A nil signal has none.
func HasValue[T any](s Readable[T]) bool {
	return s != nil && s.HasValue()
}

// ReadOr returns s's value, or fallback when s has none.
func ReadOr[T any](s Readable[T], fallback T) T {
	if HasValue(s) {
		return s.Read()
	}
	return fallback
}

// WriteSignal writes v to s if s is ready; otherwise it is a no-op.
func WriteSignal[T any](s Writable[T], v T) error {
	if s.ReadyToWrite() {
		return s.Write(v)
	}
	return nil
}

// lazyReader provides storage for signals that generate their values
// lazily, computing at most once per signal lifetime.
type lazyReader[T any] struct {
	done bool
	v    T
}

func (l *lazyReader[T]) read(gen func() T) T {
	if !l.done {
		l.v = gen()
		l.done = true
	}
	return l.v
}

// allHaveValues reports whether every given signal has a value.
func allHaveValues(signals ...Untyped) bool {
	for _, s := range signals {
		if !s.HasValue() {
			return false
		}
	}
	return true
}
