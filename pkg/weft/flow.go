package weft

import (
	"github.com/weft-dev/weft/pkg/graph"
	"github.com/weft-dev/weft/pkg/ident"
)

// IsTrue reports whether s has a value and that value is true.
func IsTrue(s Readable[bool]) bool {
	return s.HasValue() && s.Read()
}

// IsFalse reports whether s has a value and that value is false.
func IsFalse(s Readable[bool]) bool {
	return s.HasValue() && !s.Read()
}

// IfChain is the builder returned by If. Every branch hooks up its own data
// block whether or not it is taken, so the graph's control-flow skeleton
// stays stable.
type IfChain struct {
	ctx Context

	// open is true while a later branch may still run: no branch has been
	// taken and every condition so far had a (false) value. A condition
	// with no value closes the chain without taking a branch.
	open bool
}

// If enters body when cond has the value true. Branch conditions with no
// value run neither the branch nor any later Else.
func If(ctx Context, cond Readable[bool], body func(Context)) *IfChain {
	c := &IfChain{ctx: ctx, open: true}
	return c.ElseIf(cond, body)
}

// ElseIf adds a branch taken when no earlier branch ran and cond is true.
func (c *IfChain) ElseIf(cond Readable[bool], body func(Context)) *IfChain {
	taken := c.open && IsTrue(cond)
	c.open = c.open && IsFalse(cond)
	c.branch(taken, body)
	return c
}

// Else adds a final branch taken when no earlier branch ran and every
// earlier condition had a value.
func (c *IfChain) Else(body func(Context)) {
	c.branch(c.open, body)
	c.open = false
}

func (c *IfChain) branch(taken bool, body func(Context)) {
	graph.Branch(c.ctx.Data(), taken, func() {
		body(c.ctx)
	})
}

// IfBool is If for a raw boolean condition.
func IfBool(ctx Context, cond bool, body func(Context)) *IfChain {
	c := &IfChain{ctx: ctx, open: true}
	c.branch(cond, body)
	c.open = !cond
	return c
}

// Switch dispatches on the value of a signal. Each case's state lives in a
// named block keyed by the case value, so inactive cases keep their state;
// the blocks are entered with manual-delete, surviving until the switch
// call site itself is collected.
//
// def may be nil. At most one body runs per traversal.
func Switch[K comparable](ctx Context, value Readable[K], cases map[K]func(Context), def func(Context)) {
	nc := graph.BeginNaming(ctx.Data())
	defer nc.End()

	if !value.HasValue() {
		return
	}

	v := value.Read()
	body, ok := cases[v]
	var id ident.ID
	if ok {
		id = ident.Of(v)
	} else {
		if def == nil {
			return
		}
		body = def
		id = ident.Of("_weft_default_case")
	}

	ns := nc.EnterManual(id)
	defer ns.End()
	body(ctx)
}

// ForEach runs body for each element of items inside a per-iteration data
// block. Iteration state is positional: it stays with the index, not the
// element. Use ForEachKeyed when elements carry identity.
func ForEach[E any](ctx Context, items []E, body func(ctx Context, index int, item E)) {
	lp := graph.BeginLoop(ctx.Data())
	for i, item := range items {
		i, item := i, item
		lp.Iter(func() {
			body(ctx, i, item)
		})
	}
	lp.End()
}

// ForEachKeyed runs body for each element inside a named block identified
// by key(item). State follows the identity: reordering, inserting, or
// removing elements preserves each surviving element's state.
func ForEachKeyed[E any](ctx Context, items []E, key func(E) ident.ID, body func(ctx Context, item E)) {
	nc := graph.BeginNaming(ctx.Data())
	defer nc.End()
	for _, item := range items {
		item := item
		nc.Scope(key(item), func() {
			body(ctx, item)
		})
	}
}

// transformData caches the mapped items of one Transform call site.
type transformData[U any] struct {
	ids     []ident.Captured
	values  []U
	valid   []bool
	count   int
	version uint32
}

// transformSignal carries the mapped sequence once every item has a value.
type transformSignal[U any] struct {
	d *transformData[U]
}

func (s transformSignal[U]) HasValue() bool {
	return len(s.d.valid) > 0 && s.d.count == len(s.d.valid) || (len(s.d.valid) == 0 && s.d.version > 0)
}

func (s transformSignal[U]) ValueID() ident.ID { return ident.Of(s.d.version) }

func (s transformSignal[U]) Read() []U { return s.d.values }

// Transform maps a sequence through a traversal-aware function, following
// dataflow semantics: the result has a value once every item signal does,
// and items are re-mapped whenever their identities change. f runs for
// every element on every pass so that events reach the mapped content.
func Transform[E any, U any](
	ctx Context, items []E, f func(ctx Context, item E) Readable[U],
) Readable[[]U] {
	slot, _ := graph.GetCached[*transformData[U]](ctx.Data())
	if *slot == nil {
		*slot = &transformData[U]{version: 1}
	}
	d := *slot

	if len(d.values) != len(items) {
		d.ids = make([]ident.Captured, len(items))
		d.values = make([]U, len(items))
		d.valid = make([]bool, len(items))
		d.count = 0
		d.version++
	}

	lp := graph.BeginLoop(ctx.Data())
	for i, item := range items {
		i, item := i, item
		lp.Iter(func() {
			mapped := f(ctx, item)
			if !IsRefresh(ctx) {
				return
			}
			if mapped.HasValue() {
				if !d.ids[i].Matches(mapped.ValueID()) {
					d.ids[i].Capture(mapped.ValueID())
					d.values[i] = mapped.Read()
					if !d.valid[i] {
						d.valid[i] = true
						d.count++
					}
					d.version++
				}
			} else if d.valid[i] {
				d.valid[i] = false
				d.ids[i].Clear()
				d.count--
				d.version++
			}
		})
	}
	lp.End()

	return transformSignal[U]{d: d}
}
