package graph

// node is one entry in a block's data list. value always holds a *T for
// the T requested at the call site that created it.
type node struct {
	next  *node
	value any
}

// cachedHolder owns a recomputable cache cell. Clearing a block's caches
// drops the cell; persistent data in sibling nodes is untouched.
type cachedHolder struct {
	data any
}

// Block is an ordered store of data nodes plus the named-block references
// that appeared within it during the last garbage-collected traversal.
//
// During a single traversal, either all nodes in a block are visited or all
// are bypassed, and visited nodes always appear in the same order. A block
// is owned by its containing block (or by the graph root).
type Block struct {
	nodes *node

	// cacheClear is true once the block's caches have been released. It
	// guards ClearCache against redundant recursion.
	cacheClear bool

	namedRefs *namedRef
}

// NewBlock returns an empty block. The zero value is also ready to use;
// this exists for call sites that want a heap block explicitly.
func NewBlock() *Block {
	return &Block{cacheClear: true}
}

// clearNodes tears down per-node resources reachable from a node list.
// Child blocks release their named references recursively, and naming maps
// unlink themselves from the graph.
func clearNodes(n *node) {
	for ; n != nil; n = n.next {
		switch v := n.value.(type) {
		case *Block:
			ClearBlock(v)
		case *mapNode:
			v.unlink()
		}
	}
}

// clearCacheNodes drops every cache cell in a node list and recurses into
// child blocks.
func clearCacheNodes(n *node) {
	for ; n != nil; n = n.next {
		switch v := n.value.(type) {
		case *cachedHolder:
			v.data = nil
		case *Block:
			ClearCache(v)
		}
	}
}

// ClearCache releases all recomputable data within a block: cache cells are
// dropped, child blocks are processed recursively, and every named-block
// reference is deactivated. Persistent state is preserved. The operation is
// idempotent.
func ClearCache(b *Block) {
	if b.cacheClear {
		return
	}
	clearCacheNodes(b.nodes)
	for r := b.namedRefs; r != nil; r = r.next {
		deactivateRef(r)
	}
	b.cacheClear = true
}

// ClearBlock removes all data from a block, releasing named-block
// references (which may destroy the named blocks they co-own) and
// recursively clearing child blocks.
func ClearBlock(b *Block) {
	clearNodes(b.nodes)
	b.nodes = nil
	releaseRefList(b.namedRefs)
	b.namedRefs = nil
	b.cacheClear = true
}
