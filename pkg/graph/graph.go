package graph

import "github.com/weft-dev/weft/pkg/ident"

// Graph stores the data associated with a traversal function: a root block,
// the list of naming maps registered through it, and a holding list of
// named-block references that disappeared from an interrupted traversal.
type Graph struct {
	root Block

	mapList *mapNode

	// holding keeps references alive after an aborted traversal. The blocks
	// they reference would otherwise be destroyed even though the next
	// complete traversal would re-reference them. CollectUnused drains the
	// list once such a traversal has finished.
	holding *namedRef
}

// Root returns the graph's root block.
func (g *Graph) Root() *Block { return &g.root }

// hold prepends a reference list to the holding list.
func (g *Graph) hold(head *namedRef) {
	for head != nil {
		next := head.next
		head.next = g.holding
		g.holding = head
		head = next
	}
}

// CollectUnused releases the references parked on the holding list. Call it
// after a complete (unaborted) refresh traversal; any named block that the
// traversal re-referenced survives, the rest are collected.
func (g *Graph) CollectUnused() {
	head := g.holding
	g.holding = nil
	releaseRefList(head)
}

// Clear destroys all data in the graph.
func (g *Graph) Clear() {
	g.CollectUnused()
	ClearBlock(&g.root)
}

// DeleteNamed deletes the data associated with a named block, as identified
// by id, across all of the graph's naming maps. A block that is still
// referenced merely loses its manual-delete protection and is collected by
// the next refresh that no longer references it.
func (g *Graph) DeleteNamed(id ident.ID) {
	for mn := g.mapList; mn != nil; mn = mn.next {
		nb, ok := mn.m.lookup(id)
		if !ok {
			continue
		}
		if nb.refCount != 0 {
			nb.manualDelete = false
			continue
		}
		mn.m.remove(nb)
		nb.owner = nil
		ClearBlock(&nb.block)
	}
}
