package weft

import (
	"github.com/weft-dev/weft/pkg/graph"
	"github.com/weft-dev/weft/pkg/ident"
)

// KeyedSignal is a bidirectional view of a keyed cache cell. Its identity
// is the key that guards the cell, so consumers see a change exactly when
// the key changes.
type KeyedSignal[T any] struct {
	d *graph.Keyed[T]
}

func (s KeyedSignal[T]) HasValue() bool     { return s.d.Valid() }
func (s KeyedSignal[T]) Read() T            { return s.d.Get() }
func (s KeyedSignal[T]) ValueID() ident.ID  { return s.d.ID() }
func (s KeyedSignal[T]) ReadyToWrite() bool { return true }
func (s KeyedSignal[T]) Write(v T) error    { s.d.Set(v); return nil }

// GetKeyedData retrieves cached data keyed by an identity: when the key
// changes, the cell is invalidated. The second result is true iff the value
// needs to be (re)computed — compute it and Write it to the signal.
//
// This is the memoization primitive for expensive conversions (text
// rendering, parsed forms, apply results).
func GetKeyedData[T any](ctx Context, key ident.ID) (KeyedSignal[T], bool) {
	kd, recompute := graph.GetKeyed[T](ctx.Data(), key)
	return KeyedSignal[T]{d: kd}, recompute
}
