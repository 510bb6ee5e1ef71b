// Package ident provides value identities: small tokens that answer the
// question "are these two reactive values the same value?".
//
// An identity is not the value itself. It is a cheap, comparable stand-in
// that is equal across two observations exactly when the underlying value
// has not changed. The runtime uses identity stability to decide when
// cached results must be invalidated.
package ident

import (
	"fmt"
	"reflect"
)

// ID is a value identity.
//
// Two IDs match only if their dynamic kinds match and their payloads are
// equal. Less defines a strict weak ordering that is total across kinds
// (IDs of different kinds are ordered by a kind tag first), so for any two
// IDs a and b of the same kind, Match(a, b) == (!a.Less(b) && !b.Less(a)).
type ID interface {
	// Matches reports whether other identifies the same value.
	Matches(other ID) bool

	// Less orders this ID before other. IDs of different kinds are ordered
	// by kind tag, making the order total.
	Less(other ID) bool

	// Clone returns an owning copy of the ID that is safe to retain across
	// traversals. By-reference IDs copy their referent.
	Clone() ID

	// Key returns a comparable representation of the ID. Two IDs match
	// exactly when their Keys compare equal with ==. Keys are usable as
	// Go map keys.
	Key() any
}

// Null is the identity of "no value". It matches only itself.
var Null ID = nullID{}

// Unit is the identity of the single shared value. It matches only itself.
var Unit ID = unitID{}

// Match reports whether a and b identify the same value. Either side may
// be nil; nil only matches nil.
func Match(a, b ID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Key() == b.Key()
}

// crossLess orders IDs of different dynamic kinds by their type names.
func crossLess(a, b ID) bool {
	return reflect.TypeOf(a).String() < reflect.TypeOf(b).String()
}

// lessValue orders two values of the same comparable type. The predeclared
// scalar types use their native order (false sorts before true); all other
// types, including defined types over scalars, fall back to comparing
// formatted forms, which keeps the order deterministic.
func lessValue(a, b any) bool {
	switch av := a.(type) {
	case int:
		return av < b.(int)
	case int8:
		return av < b.(int8)
	case int16:
		return av < b.(int16)
	case int32:
		return av < b.(int32)
	case int64:
		return av < b.(int64)
	case uint:
		return av < b.(uint)
	case uint8:
		return av < b.(uint8)
	case uint16:
		return av < b.(uint16)
	case uint32:
		return av < b.(uint32)
	case uint64:
		return av < b.(uint64)
	case uintptr:
		return av < b.(uintptr)
	case float32:
		return av < b.(float32)
	case float64:
		return av < b.(float64)
	case string:
		return av < b.(string)
	case bool:
		return !av && b.(bool)
	default:
		if a == b {
			return false
		}
		return fmt.Sprint(a) < fmt.Sprint(b)
	}
}

type nullID struct{}

func (nullID) Matches(other ID) bool { _, ok := other.(nullID); return ok }
func (n nullID) Less(other ID) bool {
	if _, ok := other.(nullID); ok {
		return false
	}
	return crossLess(n, other)
}
func (n nullID) Clone() ID { return n }
func (n nullID) Key() any  { return n }

type unitID struct{}

func (unitID) Matches(other ID) bool { _, ok := other.(unitID); return ok }
func (u unitID) Less(other ID) bool {
	if _, ok := other.(unitID); ok {
		return false
	}
	return crossLess(u, other)
}
func (u unitID) Clone() ID { return u }
func (u unitID) Key() any  { return u }

// valueID is an identity that carries a copy of a comparable value.
type valueID[T comparable] struct {
	v T
}

// Of returns an identity carrying a copy of v. Two Of identities match when
// their value types and values match.
func Of[T comparable](v T) ID {
	return valueID[T]{v: v}
}

func (s valueID[T]) Matches(other ID) bool {
	o, ok := other.(valueID[T])
	return ok && o.v == s.v
}

func (s valueID[T]) Less(other ID) bool {
	if o, ok := other.(valueID[T]); ok {
		return lessValue(s.v, o.v)
	}
	return crossLess(s, other)
}

func (s valueID[T]) Clone() ID { return s }
func (s valueID[T]) Key() any  { return s }

// refID is an identity that points to an externally held value. The value
// is only copied when the ID is cloned.
type refID[T comparable] struct {
	p *T
}

// ByRef returns an identity for the value at p without copying it. The
// caller must keep *p alive and stable for as long as the ID is in use;
// Clone (and therefore Captured.Capture) takes a copy.
func ByRef[T comparable](p *T) ID {
	return refID[T]{p: p}
}

func (r refID[T]) Matches(other ID) bool {
	o, ok := other.(refID[T])
	return ok && *o.p == *r.p
}

func (r refID[T]) Less(other ID) bool {
	if o, ok := other.(refID[T]); ok {
		return lessValue(*r.p, *o.p)
	}
	return crossLess(r, other)
}

func (r refID[T]) Clone() ID {
	v := *r.p
	return refID[T]{p: &v}
}

// refKey normalizes a refID to its pointee so that two refIDs over equal
// values share a key, while staying distinct from Of identities.
type refKey[T comparable] struct {
	v T
}

func (r refID[T]) Key() any { return refKey[T]{v: *r.p} }

// pairID combines two identities with lexicographic ordering.
type pairID struct {
	first, second ID
}

// Pair combines two identities into one. The pair matches another pair
// when both halves match; ordering is lexicographic.
func Pair(first, second ID) ID {
	return pairID{first: first, second: second}
}

// Combine folds any number of identities into nested pairs. With a single
// argument it returns that argument unchanged.
func Combine(first ID, rest ...ID) ID {
	id := first
	for _, r := range rest {
		id = Pair(id, r)
	}
	return id
}

func (p pairID) Matches(other ID) bool {
	o, ok := other.(pairID)
	return ok && p.first.Matches(o.first) && p.second.Matches(o.second)
}

func (p pairID) Less(other ID) bool {
	if o, ok := other.(pairID); ok {
		return p.first.Less(o.first) ||
			(!o.first.Less(p.first) && p.second.Less(o.second))
	}
	return crossLess(p, other)
}

func (p pairID) Clone() ID {
	return pairID{first: p.first.Clone(), second: p.second.Clone()}
}

func (p pairID) Key() any {
	type pairKey struct{ a, b any }
	return pairKey{a: p.first.Key(), b: p.second.Key()}
}

// refWrapper borrows another identity without owning it.
type refWrapper struct {
	inner ID
}

// Ref borrows an existing identity. The wrapper matches whatever its
// referent matches, and Clone clones the referent, so Ref(x) and x are
// interchangeable for comparison and capture.
func Ref(id ID) ID {
	return refWrapper{inner: id}
}

func unwrap(id ID) ID {
	for {
		w, ok := id.(refWrapper)
		if !ok {
			return id
		}
		id = w.inner
	}
}

func (r refWrapper) Matches(other ID) bool { return unwrap(r).Matches(unwrap(other)) }
func (r refWrapper) Less(other ID) bool    { return unwrap(r).Less(unwrap(other)) }
func (r refWrapper) Clone() ID             { return r.inner.Clone() }
func (r refWrapper) Key() any              { return unwrap(r).Key() }
