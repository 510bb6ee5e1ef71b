package graph

import (
	"fmt"

	"github.com/weft-dev/weft/pkg/ident"
)

// Traversal is the cursor for one pass over a graph. It tracks the active
// block, the slot where the next data node will be read or written, the
// active naming map, and the named-block bookkeeping used for garbage
// collection.
//
// A Traversal is single-use and confined to the goroutine running the pass.
type Traversal struct {
	graph       *Graph
	activeMap   *NamingMap
	activeBlock *Block

	// predicted is the next named-block reference expected under the active
	// block, assuming the same visit order as the previous pass.
	predicted *namedRef

	// used accumulates the references consumed this pass; usedTail is where
	// the next one is appended.
	used     *namedRef
	usedTail **namedRef

	// nextData is the slot where the next visited data node lives.
	nextData **node

	gcEnabled     bool
	cacheClearing bool

	// unwinding is set when the pass is being abandoned (abort or panic);
	// scope exits then skip garbage collection and park in-flight named
	// references on the graph's holding list.
	unwinding bool
}

// Graph returns the graph being traversed.
func (t *Traversal) Graph() *Graph { return t.graph }

// GCEnabled reports whether named-block garbage collection is active.
func (t *Traversal) GCEnabled() bool { return t.gcEnabled }

// SetGCEnabled toggles garbage collection. Disable it before traversals
// that do not visit the entire active graph; visiting named blocks out of
// their previous order then panics with ErrBlockOutOfOrder.
func (t *Traversal) SetGCEnabled(on bool) { t.gcEnabled = on }

// CacheClearing reports whether inactive blocks have their caches cleared.
func (t *Traversal) CacheClearing() bool { return t.cacheClearing }

// SetCacheClearing toggles cache clearing of inactive blocks.
func (t *Traversal) SetCacheClearing(on bool) { t.cacheClearing = on }

// MarkUnwinding records that the pass is being abandoned. Scope exits after
// this point restore cursor state but skip garbage collection.
func (t *Traversal) MarkUnwinding() { t.unwinding = true }

// Unwinding reports whether the pass is being abandoned.
func (t *Traversal) Unwinding() bool { return t.unwinding }

// WithoutCacheClearing runs body with cache clearing suppressed, restoring
// the previous setting afterwards.
func (t *Traversal) WithoutCacheClearing(body func()) {
	old := t.cacheClearing
	t.cacheClearing = false
	defer func() { t.cacheClearing = old }()
	body()
}

// Get returns the slot of type T at the current point in the traversal and
// advances past it. The second result is true if the slot was just created.
//
// A given call site must request the same type in the same order on every
// pass; a mismatch panics with a *ProgrammerError.
func Get[T any](t *Traversal) (*T, bool) {
	if n := *t.nextData; n != nil {
		v, ok := n.value.(*T)
		if !ok {
			panic(&ProgrammerError{Msg: fmt.Sprintf(
				"graph: data slot type mismatch: slot holds %T, caller wants %T",
				n.value, (*T)(nil))})
		}
		t.nextData = &n.next
		return v, false
	}
	v := new(T)
	n := &node{value: v}
	*t.nextData = n
	t.nextData = &n.next
	return v, true
}

// GetCached is like Get, but the slot is understood to hold a cached value
// that the application can regenerate. The cell is dropped whenever the
// enclosing block's caches are cleared.
func GetCached[T any](t *Traversal) (*T, bool) {
	h, _ := Get[cachedHolder](t)
	if h.data != nil {
		v, ok := h.data.(*T)
		if !ok {
			panic(&ProgrammerError{Msg: fmt.Sprintf(
				"graph: cached slot type mismatch: cell holds %T, caller wants %T",
				h.data, (*T)(nil))})
		}
		return v, false
	}
	v := new(T)
	h.data = v
	return v, true
}

// ScopedBlock saves the cursor's block-local state on entry to a child
// block and restores it on End. On a normal garbage-collected exit, the
// child's named-block list is replaced by the references used during the
// scope and the leftover predicted references are released.
type ScopedBlock struct {
	t *Traversal

	oldBlock     *Block
	oldPredicted *namedRef
	oldUsed      *namedRef
	oldUsedTail  **namedRef
	oldNextData  **node
}

// BeginBlock enters a child block, returning the guard that must be ended.
func (t *Traversal) BeginBlock(b *Block) ScopedBlock {
	sb := ScopedBlock{
		t:            t,
		oldBlock:     t.activeBlock,
		oldPredicted: t.predicted,
		oldUsed:      t.used,
		oldUsedTail:  t.usedTail,
		oldNextData:  t.nextData,
	}

	t.activeBlock = b
	t.predicted = b.namedRefs
	t.used = nil
	t.usedTail = &t.used
	t.nextData = &b.nodes

	b.cacheClear = false

	return sb
}

// End leaves the scope. Safe to call more than once.
func (sb *ScopedBlock) End() {
	if sb.t == nil {
		return
	}
	t := sb.t

	if t.gcEnabled {
		if !t.unwinding {
			t.activeBlock.namedRefs = t.used
			releaseRefList(t.predicted)
		} else {
			// The reference chains may be partially re-linked; park them on
			// the holding list so the blocks survive until a complete
			// traversal re-references them.
			t.graph.hold(t.used)
			t.graph.hold(t.predicted)
			t.activeBlock.namedRefs = nil
		}
	}

	t.activeBlock = sb.oldBlock
	t.predicted = sb.oldPredicted
	t.used = sb.oldUsed
	t.usedTail = sb.oldUsedTail
	t.nextData = sb.oldNextData

	sb.t = nil
}

// Scope runs body inside the given child block. If body panics, the scope
// is unwound without garbage collection and the panic continues.
func (t *Traversal) Scope(b *Block, body func()) {
	sb := t.BeginBlock(b)
	done := false
	defer func() {
		if !done {
			t.unwinding = true
		}
		sb.End()
	}()
	body()
	done = true
}

// ScopedTraversal manages a whole pass: it roots the cursor at the graph's
// root block and activates the root naming map.
type ScopedTraversal struct {
	root ScopedBlock
}

// BeginTraversal initializes t as a traversal of g with GC and cache
// clearing enabled, and enters the root block.
func BeginTraversal(g *Graph, t *Traversal) ScopedTraversal {
	t.graph = g
	t.gcEnabled = true
	t.cacheClearing = true
	t.unwinding = false
	st := ScopedTraversal{root: t.BeginBlock(&g.root)}
	t.activeMap = retrieveNamingMap(t)
	return st
}

// End leaves the root block, completing the pass.
func (st *ScopedTraversal) End() {
	st.root.End()
}

// retrieveNamingMap fetches a naming map stored at the current point in the
// traversal, registering it with the graph on first use.
func retrieveNamingMap(t *Traversal) *NamingMap {
	mn, isNew := Get[mapNode](t)
	if isNew {
		mn.m.blocks = make(map[any]*NamedBlock)
		mn.graph = t.graph
		mn.next = t.graph.mapList
		if t.graph.mapList != nil {
			t.graph.mapList.prev = mn
		}
		t.graph.mapList = mn
	}
	return &mn.m
}

// NamingContext scopes a naming map: identities used within one context can
// be reused within another without conflict.
type NamingContext struct {
	t *Traversal
	m *NamingMap
}

// BeginNaming opens a naming context at the current point in the traversal.
func BeginNaming(t *Traversal) NamingContext {
	return NamingContext{t: t, m: retrieveNamingMap(t)}
}

// End closes the context. It exists for symmetry; naming contexts hold no
// scoped cursor state.
func (nc *NamingContext) End() {}

// Enter activates the named block for id, creating it on first use, and
// returns the scope guard.
func (nc *NamingContext) Enter(id ident.ID) NamedScope {
	return nc.enter(id, false)
}

// EnterManual is Enter with the manual-delete flag: the block persists until
// Graph.DeleteNamed removes it, regardless of garbage collection.
func (nc *NamingContext) EnterManual(id ident.ID) NamedScope {
	return nc.enter(id, true)
}

func (nc *NamingContext) enter(id ident.ID, manual bool) NamedScope {
	nb := findNamedBlock(nc.t, nc.m, id, manual)
	return NamedScope{sb: nc.t.BeginBlock(&nb.block)}
}

// Scope runs body inside the named block for id.
func (nc *NamingContext) Scope(id ident.ID, body func()) {
	nb := findNamedBlock(nc.t, nc.m, id, false)
	nc.t.Scope(&nb.block, body)
}

// NamedScope is the guard for an active named block.
type NamedScope struct {
	sb ScopedBlock
}

// End leaves the named block.
func (ns *NamedScope) End() { ns.sb.End() }

// recordUsage appends a reference to the traversal's used list and
// activates it.
func recordUsage(t *Traversal, r *namedRef) {
	*t.usedTail = r
	t.usedTail = &r.next
	r.next = nil
	activateRef(r)
}

// findNamedBlock resolves id within map m.
//
// If the sequence of named-block visits matches the previous pass (which it
// generally does), the predicted reference is the one we want and the
// lookup is O(1). Otherwise the map is consulted, creating the block on
// first use; that path requires garbage collection to be enabled.
func findNamedBlock(t *Traversal, m *NamingMap, id ident.ID, manual bool) *NamedBlock {
	if p := t.predicted; p != nil && p.block.owner == m && p.block.id.Matches(id) {
		t.predicted = p.next
		if t.gcEnabled {
			recordUsage(t, p)
		}
		return p.block
	}

	if !t.gcEnabled {
		panic(&ProgrammerError{Msg: "graph: named block out of order", Err: ErrBlockOutOfOrder})
	}

	nb, ok := m.lookup(id)
	if !ok {
		nb = &NamedBlock{owner: m, manualDelete: manual}
		nb.block.cacheClear = true
		nb.id.Capture(id)
		m.insert(nb)
	}

	ref := &namedRef{block: nb}
	nb.refCount++
	recordUsage(t, ref)

	return nb
}
