package weft

import "github.com/weft-dev/weft/pkg/ident"

// emptySignal never has a value and is never ready to write.
type emptySignal[T any] struct{}

// Empty returns a signal that never has a value. It type-checks in both
// directions but never carries anything and never accepts a write.
func Empty[T any]() Duplex[T] {
	return emptySignal[T]{}
}

func (emptySignal[T]) HasValue() bool          { return false }
func (emptySignal[T]) ValueID() ident.ID       { return ident.Null }
func (emptySignal[T]) Read() (zero T)          { return }
func (emptySignal[T]) ReadyToWrite() bool      { return false }
func (emptySignal[T]) Write(T) error           { return nil }

// valueSignal is a read-only constant whose identity is the value itself.
type valueSignal[T comparable] struct {
	v T
}

// Value returns a read-only signal carrying the constant v. The value
// itself serves as the identity, so two Value signals over equal values are
// interchangeable. String literals come through here too.
func Value[T comparable](v T) Readable[T] {
	return valueSignal[T]{v: v}
}

func (s valueSignal[T]) HasValue() bool    { return true }
func (s valueSignal[T]) ValueID() ident.ID { return ident.Of(s.v) }
func (s valueSignal[T]) Read() T           { return s.v }

// constSignal carries a value of arbitrary type. Its identity is Unit: the
// value is constant for the signal's lifetime, so it never changes.
type constSignal[T any] struct {
	v T
}

// Constant returns a read-only signal carrying v for value types that have
// no natural ordering (structs, slices). Its identity is ident.Unit.
func Constant[T any](v T) Readable[T] {
	return constSignal[T]{v: v}
}

func (s constSignal[T]) HasValue() bool    { return true }
func (s constSignal[T]) ValueID() ident.ID { return ident.Unit }
func (s constSignal[T]) Read() T           { return s.v }

// directSignal is a bidirectional view of a cell the caller owns.
type directSignal[T comparable] struct {
	p *T
}

// Direct returns a bidirectional signal that directly exposes the value at
// p. Reads and identity reflect the current contents; writes store through
// the pointer immediately.
func Direct[T comparable](p *T) Duplex[T] {
	return directSignal[T]{p: p}
}

func (s directSignal[T]) HasValue() bool    { return true }
func (s directSignal[T]) ValueID() ident.ID { return ident.ByRef(s.p) }
func (s directSignal[T]) Read() T           { return *s.p }
func (s directSignal[T]) ReadyToWrite() bool { return true }
func (s directSignal[T]) Write(v T) error   { *s.p = v; return nil }

// directReadSignal is the read-only form of Direct.
type directReadSignal[T comparable] struct {
	p *T
}

// DirectRead returns a read-only signal exposing the value at p.
func DirectRead[T comparable](p *T) Readable[T] {
	return directReadSignal[T]{p: p}
}

func (s directReadSignal[T]) HasValue() bool    { return true }
func (s directReadSignal[T]) ValueID() ident.ID { return ident.ByRef(s.p) }
func (s directReadSignal[T]) Read() T           { return *s.p }

// readerFuncSignal computes its value on demand, at most once per signal
// lifetime, with the value itself as its identity.
type readerFuncSignal[T comparable] struct {
	read *lazyReader[T]
	gen  func() T
}

// ReaderFunc returns a read-only signal whose value is produced by gen. The
// function is invoked at most once per traversal-scoped signal instance,
// and the value serves as its own identity.
func ReaderFunc[T comparable](gen func() T) Readable[T] {
	return readerFuncSignal[T]{read: &lazyReader[T]{}, gen: gen}
}

func (s readerFuncSignal[T]) HasValue() bool    { return true }
func (s readerFuncSignal[T]) ValueID() ident.ID { return ident.Of(s.read.read(s.gen)) }
func (s readerFuncSignal[T]) Read() T           { return s.read.read(s.gen) }

// funcSignal assembles a signal from explicit callbacks. Nil callbacks
// default to "no value" / "not ready" / Null identity.
type funcSignal[T any] struct {
	hasValue func() bool
	read     func() T
	id       func() ident.ID
	ready    func() bool
	write    func(T) error
}

// MakeReader builds a read-only signal from callbacks. id may be nil, in
// which case the signal reports ident.Null (callers relying on identity
// should supply one).
func MakeReader[T any](hasValue func() bool, read func() T, id func() ident.ID) Readable[T] {
	return funcSignal[T]{hasValue: hasValue, read: read, id: id}
}

// MakeWriter builds a write-only signal from callbacks.
func MakeWriter[T any](ready func() bool, write func(T) error) Writable[T] {
	return funcSignal[T]{ready: ready, write: write}
}

// MakeDuplex builds a bidirectional signal from callbacks.
func MakeDuplex[T any](
	hasValue func() bool,
	read func() T,
	id func() ident.ID,
	ready func() bool,
	write func(T) error,
) Duplex[T] {
	return funcSignal[T]{hasValue: hasValue, read: read, id: id, ready: ready, write: write}
}

func (s funcSignal[T]) HasValue() bool {
	return s.hasValue != nil && s.hasValue()
}

func (s funcSignal[T]) ValueID() ident.ID {
	if s.id == nil {
		return ident.Null
	}
	return s.id()
}

func (s funcSignal[T]) Read() (zero T) {
	if s.read == nil {
		return
	}
	return s.read()
}

func (s funcSignal[T]) ReadyToWrite() bool {
	return s.ready != nil && s.ready()
}

func (s funcSignal[T]) Write(v T) error {
	if s.write == nil {
		return nil
	}
	return s.write(v)
}

// AlwaysHasValue and AlwaysReady are clear, concise readiness callbacks for
// MakeReader and friends.
func AlwaysHasValue() bool { return true }
func AlwaysReady() bool    { return true }
