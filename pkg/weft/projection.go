package weft

import "github.com/weft-dev/weft/pkg/ident"

// fieldSignal projects a field out of a structure signal.
type fieldSignal[S, F any] struct {
	structure Duplex[S]
	name      string
	sel       func(*S) *F
}

// Field projects a named field out of a structure signal. sel receives a
// pointer to a copy of the structure and returns a pointer to the field
// within it; name distinguishes fields of the same structure for identity
// purposes and should be the field's name.
//
// The write path is read-modify-write: Write reads the structure, mutates
// the field in the copy, and writes the copy back. Updates to other fields
// that land between that read and write are lost; keep writes within one
// action so the window stays inside a single perform.
func Field[S, F any](structure Duplex[S], name string, sel func(*S) *F) Duplex[F] {
	return fieldSignal[S, F]{structure: structure, name: name, sel: sel}
}

// FieldRead is Field over a read-only structure signal.
func FieldRead[S, F any](structure Readable[S], name string, sel func(*S) *F) Readable[F] {
	return fieldSignal[S, F]{structure: FakeWritability(structure), name: name, sel: sel}
}

func (s fieldSignal[S, F]) HasValue() bool { return s.structure.HasValue() }

func (s fieldSignal[S, F]) Read() F {
	v := s.structure.Read()
	return *s.sel(&v)
}

func (s fieldSignal[S, F]) ValueID() ident.ID {
	return ident.Pair(ident.Ref(s.structure.ValueID()), ident.Of(s.name))
}

func (s fieldSignal[S, F]) ReadyToWrite() bool {
	return s.structure.HasValue() && s.structure.ReadyToWrite()
}

func (s fieldSignal[S, F]) Write(v F) error {
	structure := s.structure.Read()
	*s.sel(&structure) = v
	return s.structure.Write(structure)
}

// subscriptSignal projects an element out of a slice signal.
type subscriptSignal[E any] struct {
	container Duplex[[]E]
	index     Readable[int]
}

// At projects the element at index out of a slice signal.
//
// Writes are read-modify-write on a fresh copy of the slice, with the same
// read-commit window as Field.
func At[E any](container Duplex[[]E], index Readable[int]) Duplex[E] {
	return subscriptSignal[E]{container: container, index: index}
}

// AtRead is At over a read-only slice signal.
func AtRead[E any](container Readable[[]E], index Readable[int]) Readable[E] {
	return subscriptSignal[E]{container: FakeWritability(container), index: index}
}

func (s subscriptSignal[E]) HasValue() bool {
	return s.container.HasValue() && s.index.HasValue() &&
		s.index.Read() >= 0 && s.index.Read() < len(s.container.Read())
}

func (s subscriptSignal[E]) Read() E {
	return s.container.Read()[s.index.Read()]
}

func (s subscriptSignal[E]) ValueID() ident.ID {
	if !s.index.HasValue() {
		return ident.Null
	}
	return ident.Pair(ident.Ref(s.container.ValueID()), ident.Ref(s.index.ValueID()))
}

func (s subscriptSignal[E]) ReadyToWrite() bool {
	return s.HasValue() && s.container.ReadyToWrite()
}

func (s subscriptSignal[E]) Write(v E) error {
	src := s.container.Read()
	dst := make([]E, len(src))
	copy(dst, src)
	dst[s.index.Read()] = v
	return s.container.Write(dst)
}

// keySignal projects a value out of a map signal.
type keySignal[K comparable, V any] struct {
	container Duplex[map[K]V]
	key       Readable[K]
}

// AtKey projects the value under key out of a map signal. Writes copy the
// map before storing, with the same read-commit window as Field.
func AtKey[K comparable, V any](container Duplex[map[K]V], key Readable[K]) Duplex[V] {
	return keySignal[K, V]{container: container, key: key}
}

func (s keySignal[K, V]) HasValue() bool {
	if !s.container.HasValue() || !s.key.HasValue() {
		return false
	}
	_, ok := s.container.Read()[s.key.Read()]
	return ok
}

func (s keySignal[K, V]) Read() V {
	return s.container.Read()[s.key.Read()]
}

func (s keySignal[K, V]) ValueID() ident.ID {
	if !s.key.HasValue() {
		return ident.Null
	}
	return ident.Pair(ident.Ref(s.container.ValueID()), ident.Ref(s.key.ValueID()))
}

func (s keySignal[K, V]) ReadyToWrite() bool {
	return s.container.HasValue() && s.key.HasValue() && s.container.ReadyToWrite()
}

func (s keySignal[K, V]) Write(v V) error {
	src := s.container.Read()
	dst := make(map[K]V, len(src))
	for k, val := range src {
		dst[k] = val
	}
	dst[s.key.Read()] = v
	return s.container.Write(dst)
}
