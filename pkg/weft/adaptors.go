package weft

import "github.com/weft-dev/weft/pkg/ident"

// fallbackSignal reads from primary when it has a value and from fallback
// otherwise; all writes go to primary.
type fallbackSignal[T any] struct {
	primary  Duplex[T]
	fallback Readable[T]
}

// AddFallback yields a signal whose value is primary's if it has one and
// fallback's otherwise. Writes go directly to primary.
func AddFallback[T any](primary Duplex[T], fallback Readable[T]) Duplex[T] {
	return fallbackSignal[T]{primary: primary, fallback: fallback}
}

// AddReadFallback is AddFallback for read-only operands.
func AddReadFallback[T any](primary, fallback Readable[T]) Readable[T] {
	return fallbackSignal[T]{primary: FakeWritability(primary), fallback: fallback}
}

func (s fallbackSignal[T]) HasValue() bool {
	return s.primary.HasValue() || s.fallback.HasValue()
}

func (s fallbackSignal[T]) Read() T {
	if s.primary.HasValue() {
		return s.primary.Read()
	}
	return s.fallback.Read()
}

func (s fallbackSignal[T]) ValueID() ident.ID {
	// The identity carries which side supplied the value, so switching from
	// fallback to an equal primary value still reads as a change.
	if s.primary.HasValue() {
		return ident.Pair(ident.Of(true), ident.Ref(s.primary.ValueID()))
	}
	return ident.Pair(ident.Of(false), ident.Ref(s.fallback.ValueID()))
}

func (s fallbackSignal[T]) ReadyToWrite() bool { return s.primary.ReadyToWrite() }
func (s fallbackSignal[T]) Write(v T) error    { return s.primary.Write(v) }

// maskingSignal is identical to its primary while the condition is true and
// present; otherwise it has no value and is not ready.
type maskingSignal[T any] struct {
	primary Duplex[T]
	cond    Readable[bool]
}

// Mask does the equivalent of bit masking on an individual signal: while
// cond has the value true, the result behaves exactly like s; otherwise it
// is empty and not ready to write. Write itself is not gated: it always
// passes through to s.
func Mask[T any](s Duplex[T], cond Readable[bool]) Duplex[T] {
	return maskingSignal[T]{primary: s, cond: cond}
}

// MaskRead is Mask for a read-only signal.
func MaskRead[T any](s Readable[T], cond Readable[bool]) Readable[T] {
	return maskingSignal[T]{primary: FakeWritability(s), cond: cond}
}

func (s maskingSignal[T]) masked() bool {
	return !(s.cond.HasValue() && s.cond.Read())
}

func (s maskingSignal[T]) HasValue() bool {
	return !s.masked() && s.primary.HasValue()
}

func (s maskingSignal[T]) ValueID() ident.ID {
	if s.masked() {
		return ident.Null
	}
	return s.primary.ValueID()
}

func (s maskingSignal[T]) Read() T { return s.primary.Read() }

func (s maskingSignal[T]) ReadyToWrite() bool {
	return !s.masked() && s.primary.ReadyToWrite()
}

func (s maskingSignal[T]) Write(v T) error { return s.primary.Write(v) }

// presenceSignal observes whether another signal has a value.
type presenceSignal struct {
	wrapped Untyped
}

// HasValueSignal yields a boolean signal indicating whether s has a value.
// The returned signal itself always has a value.
func HasValueSignal(s Untyped) Readable[bool] {
	return presenceSignal{wrapped: s}
}

func (s presenceSignal) HasValue() bool    { return true }
func (s presenceSignal) ValueID() ident.ID { return ident.Of(s.wrapped.HasValue()) }
func (s presenceSignal) Read() bool        { return s.wrapped.HasValue() }

// readinessSignal observes whether another signal is ready to write.
type readinessSignal[T any] struct {
	wrapped Writable[T]
}

// ReadyToWriteSignal yields a boolean signal indicating whether s is ready
// to write. The returned signal always has a value.
func ReadyToWriteSignal[T any](s Writable[T]) Readable[bool] {
	return readinessSignal[T]{wrapped: s}
}

func (s readinessSignal[T]) HasValue() bool    { return true }
func (s readinessSignal[T]) ValueID() ident.ID { return ident.Of(s.wrapped.ReadyToWrite()) }
func (s readinessSignal[T]) Read() bool        { return s.wrapped.ReadyToWrite() }

// castSignal statically converts the value type of another signal.
type castSignal[To, From Number] struct {
	wrapped Readable[From]
	read    *lazyReader[To]
}

// Cast yields a proxy for s with the value type To, converting values with
// a static numeric conversion. The conversion is lazy and cached once per
// signal lifetime.
func Cast[To, From Number](s Readable[From]) Readable[To] {
	return castSignal[To, From]{wrapped: s, read: &lazyReader[To]{}}
}

func (s castSignal[To, From]) HasValue() bool    { return s.wrapped.HasValue() }
func (s castSignal[To, From]) ValueID() ident.ID { return s.wrapped.ValueID() }
func (s castSignal[To, From]) Read() To {
	return s.read.read(func() To { return To(s.wrapped.Read()) })
}

// simplifiedIDSignal reuses the wrapped signal's behavior but reports the
// value itself as the identity.
type simplifiedIDSignal[T comparable] struct {
	wrapped Duplex[T]
}

// SimplifyID yields a wrapper for s with the exact same read/write behavior
// but whose identity is simply the value. Useful when a small value was
// projected out of a larger structure and inherits a composite identity
// that changes superfluously.
func SimplifyID[T comparable](s Duplex[T]) Duplex[T] {
	return simplifiedIDSignal[T]{wrapped: s}
}

// SimplifyReadID is SimplifyID for a read-only signal.
func SimplifyReadID[T comparable](s Readable[T]) Readable[T] {
	return simplifiedIDSignal[T]{wrapped: FakeWritability(s)}
}

func (s simplifiedIDSignal[T]) HasValue() bool { return s.wrapped.HasValue() }
func (s simplifiedIDSignal[T]) ValueID() ident.ID {
	if !s.wrapped.HasValue() {
		return ident.Null
	}
	return ident.Of(s.wrapped.Read())
}
func (s simplifiedIDSignal[T]) Read() T           { return s.wrapped.Read() }
func (s simplifiedIDSignal[T]) ReadyToWrite() bool { return s.wrapped.ReadyToWrite() }
func (s simplifiedIDSignal[T]) Write(v T) error   { return s.wrapped.Write(v) }

// readabilityFaker pretends a write-only signal can also be read. It never
// actually has a value.
type readabilityFaker[T any] struct {
	wrapped Writable[T]
}

// FakeReadability yields a wrapper for s that type-checks as bidirectional.
// It never has a value; the write direction passes through unchanged.
func FakeReadability[T any](s Writable[T]) Duplex[T] {
	return readabilityFaker[T]{wrapped: s}
}

func (s readabilityFaker[T]) HasValue() bool     { return false }
func (s readabilityFaker[T]) ValueID() ident.ID  { return ident.Null }
func (s readabilityFaker[T]) Read() (zero T)     { return }
func (s readabilityFaker[T]) ReadyToWrite() bool { return s.wrapped.ReadyToWrite() }
func (s readabilityFaker[T]) Write(v T) error    { return s.wrapped.Write(v) }

// writabilityFaker pretends a read-only signal can also be written. It is
// never actually ready to write.
type writabilityFaker[T any] struct {
	wrapped Readable[T]
}

// FakeWritability yields a wrapper for s that type-checks as bidirectional.
// It is never ready to write; the read direction passes through unchanged.
func FakeWritability[T any](s Readable[T]) Duplex[T] {
	return writabilityFaker[T]{wrapped: s}
}

func (s writabilityFaker[T]) HasValue() bool     { return s.wrapped.HasValue() }
func (s writabilityFaker[T]) ValueID() ident.ID  { return s.wrapped.ValueID() }
func (s writabilityFaker[T]) Read() T            { return s.wrapped.Read() }
func (s writabilityFaker[T]) ReadyToWrite() bool { return false }
func (s writabilityFaker[T]) Write(T) error      { return nil }
