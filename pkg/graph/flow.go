package graph

// Branch allocates a child block for one syntactic branch. When taken, body
// runs inside the block; when not taken, the block's caches are cleared (if
// cache clearing is enabled) so that recomputable data in the inactive
// branch is released.
func Branch(t *Traversal, taken bool, body func()) {
	b, _ := Get[Block](t)
	if taken {
		t.Scope(b, body)
	} else if t.cacheClearing {
		ClearCache(b)
	}
}

// LoopScope manages the per-iteration blocks of a loop. Iteration blocks
// form a chain: each iteration's block holds the next iteration's block as
// its first node, so clearing one clears all that follow it.
type LoopScope struct {
	t     *Traversal
	block *Block
}

// BeginLoop fetches the first iteration block at the current point in the
// traversal.
func BeginLoop(t *Traversal) LoopScope {
	b, _ := Get[Block](t)
	return LoopScope{t: t, block: b}
}

// Iter runs one iteration inside the current block and advances to the
// next.
func (l *LoopScope) Iter(body func()) {
	sb := l.t.BeginBlock(l.block)
	done := false
	defer func() {
		if !done {
			l.t.unwinding = true
		}
		sb.End()
	}()
	// The next iteration's block is the first node of this one.
	b, _ := Get[Block](l.t)
	l.block = b
	body()
	done = true
}

// End clears the block that the next iteration would have used. The loop
// has ended, so whatever state lived in the remaining chain belongs to
// iterations that no longer exist.
func (l *LoopScope) End() {
	if !l.t.unwinding {
		ClearBlock(l.block)
	}
}
