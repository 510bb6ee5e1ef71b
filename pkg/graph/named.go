package graph

import "github.com/weft-dev/weft/pkg/ident"

// NamedBlock is a data block addressed by value identity within a naming
// map. Named blocks may move freely between positions in the graph as long
// as they keep the same identity.
type NamedBlock struct {
	block Block

	id ident.Captured

	// refCount counts the block-slot references that co-own this block.
	refCount int

	// activeCount counts the references currently in use this pass. When it
	// drops to zero the block's recomputable caches are cleared.
	activeCount int

	// manualDelete prevents garbage collection; the block persists until
	// DeleteNamed is called or its map is destroyed.
	manualDelete bool

	// owner is the naming map this block belongs to, or nil once the map
	// has been destroyed. The map entry is a non-owning back-reference.
	owner *NamingMap
}

// Block returns the underlying data block.
func (nb *NamedBlock) Block() *Block { return &nb.block }

// namedRef is one reference to a named block, stored in the per-block
// reference lists. References share ownership of the named block.
type namedRef struct {
	block  *NamedBlock
	active bool
	next   *namedRef
}

// NamingMap maps identities to named blocks. IDs used within one map can
// be reused within another without conflict.
type NamingMap struct {
	blocks map[any]*NamedBlock
}

func (m *NamingMap) lookup(id ident.ID) (*NamedBlock, bool) {
	nb, ok := m.blocks[id.Key()]
	return nb, ok
}

func (m *NamingMap) insert(nb *NamedBlock) {
	m.blocks[nb.id.Get().Key()] = nb
}

func (m *NamingMap) remove(nb *NamedBlock) {
	delete(m.blocks, nb.id.Get().Key())
}

// mapNode stores a naming map as a data node and links it into the graph's
// map list so that its destruction unlinks it.
type mapNode struct {
	m          NamingMap
	graph      *Graph
	next, prev *mapNode
}

func (mn *mapNode) unlink() {
	// Detach any named blocks still in the map from the map itself. Blocks
	// with live references survive; unreferenced ones are destroyed.
	for _, nb := range mn.m.blocks {
		nb.owner = nil
		if nb.refCount == 0 {
			ClearBlock(&nb.block)
		}
	}
	mn.m.blocks = nil

	if mn.next != nil {
		mn.next.prev = mn.prev
	}
	if mn.prev != nil {
		mn.prev.next = mn.next
	} else if mn.graph != nil {
		mn.graph.mapList = mn.next
	}
	mn.graph = nil
}

// activateRef marks a reference as in use this pass, bumping the block's
// active count.
func activateRef(r *namedRef) {
	if !r.active {
		r.block.activeCount++
		r.active = true
	}
}

// deactivateRef marks a reference unused. When the block's active count
// reaches zero its recomputable caches are cleared.
func deactivateRef(r *namedRef) {
	if r.active {
		r.block.activeCount--
		if r.block.activeCount == 0 {
			ClearCache(&r.block.block)
		}
		r.active = false
	}
}

// releaseRef drops a reference's share of ownership. The order is
// deterministic: the reference is deactivated (possibly clearing caches)
// first, then unlinked from the block, and only then is the block destroyed
// or cache-cleared if this was the last reference.
func releaseRef(r *namedRef) {
	nb := r.block
	if nb == nil {
		return
	}
	deactivateRef(r)
	r.block = nil

	nb.refCount--
	if nb.refCount != 0 {
		return
	}
	if nb.owner != nil {
		if nb.manualDelete {
			ClearCache(&nb.block)
			return
		}
		nb.owner.remove(nb)
		nb.owner = nil
	}
	ClearBlock(&nb.block)
}

func releaseRefList(head *namedRef) {
	for head != nil {
		next := head.next
		releaseRef(head)
		head = next
	}
}
