package graph

import "github.com/weft-dev/weft/pkg/ident"

// Keyed is a cache cell guarded by a captured identity. The key is
// presented at each retrieval; when it changes, the cell is invalidated and
// must be recomputed.
type Keyed[T any] struct {
	key   ident.Captured
	valid bool
	value T
}

// GetKeyed retrieves the keyed cell at the current point in the traversal,
// refreshing its key. The second result is true iff the value needs to be
// (re)computed.
func GetKeyed[T any](t *Traversal, key ident.ID) (*Keyed[T], bool) {
	kd, _ := GetCached[Keyed[T]](t)
	if !kd.key.Matches(key) {
		kd.valid = false
		kd.key.Capture(key)
	}
	return kd, !kd.valid
}

// Valid reports whether the cell holds a value computed for its current key.
func (k *Keyed[T]) Valid() bool { return k.valid }

// Get returns the cached value. Only meaningful while Valid.
func (k *Keyed[T]) Get() T { return k.value }

// Set stores a value computed for the current key.
func (k *Keyed[T]) Set(v T) {
	k.value = v
	k.valid = true
}

// Invalidate discards the value and the key.
func (k *Keyed[T]) Invalidate() {
	var zero T
	k.value = zero
	k.valid = false
	k.key.Clear()
}

// ID returns the identity of the current key, or ident.Null if no key has
// been captured.
func (k *Keyed[T]) ID() ident.ID {
	if k.key.IsSet() {
		return k.key.Get()
	}
	return ident.Null
}
