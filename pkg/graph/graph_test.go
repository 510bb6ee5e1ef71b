package graph

import (
	"errors"
	"testing"

	"github.com/weft-dev/weft/pkg/ident"
)

func intID(v int) ident.ID { return ident.Of(v) }

// runPass drives one traversal over g, mirroring what a system dispatcher
// does: on panic the traversal is marked unwinding before the scopes close.
func runPass(t *testing.T, g *Graph, gc bool, body func(tr *Traversal)) {
	t.Helper()
	var tr Traversal
	st := BeginTraversal(g, &tr)
	done := false
	defer func() {
		if !done {
			tr.MarkUnwinding()
		}
		st.End()
	}()
	tr.SetGCEnabled(gc)
	tr.SetCacheClearing(gc)
	body(&tr)
	done = true
}

func TestSlotStability(t *testing.T) {
	var g Graph
	var first, second *int

	runPass(t, &g, true, func(tr *Traversal) {
		p, isNew := Get[int](tr)
		if !isNew {
			t.Error("first pass should create the slot")
		}
		*p = 42
		first = p
	})

	runPass(t, &g, true, func(tr *Traversal) {
		p, isNew := Get[int](tr)
		if isNew {
			t.Error("second pass should reuse the slot")
		}
		second = p
	})

	if first != second {
		t.Error("the same call site must see the same slot on every pass")
	}
	if *second != 42 {
		t.Errorf("slot value not preserved: got %d", *second)
	}
}

func TestSlotOrderIsPerCallSequence(t *testing.T) {
	var g Graph
	var a1, b1 *int

	runPass(t, &g, true, func(tr *Traversal) {
		a1, _ = Get[int](tr)
		b1, _ = Get[int](tr)
		*a1, *b1 = 1, 2
	})

	runPass(t, &g, true, func(tr *Traversal) {
		a2, _ := Get[int](tr)
		b2, _ := Get[int](tr)
		if a2 != a1 || b2 != b1 {
			t.Error("slots must be assigned in visit order")
		}
		if *a2 != 1 || *b2 != 2 {
			t.Error("slot values out of order")
		}
	})
}

func TestSlotTypeMismatchPanics(t *testing.T) {
	var g Graph
	runPass(t, &g, true, func(tr *Traversal) {
		_, _ = Get[int](tr)
	})

	recovered := func() (r any) {
		defer func() { r = recover() }()
		runPass(t, &g, true, func(tr *Traversal) {
			_, _ = Get[string](tr)
		})
		return nil
	}()

	if recovered == nil {
		t.Fatal("type mismatch must panic")
	}
	if _, ok := recovered.(*ProgrammerError); !ok {
		t.Fatalf("panic should carry *ProgrammerError, got %T", recovered)
	}
}

func TestCachedDataClearedInUntakenBranch(t *testing.T) {
	var g Graph

	visit := func(taken bool) (persistentNew, cachedNew bool) {
		runPass(t, &g, true, func(tr *Traversal) {
			Branch(tr, taken, func() {
				_, persistentNew = Get[int](tr)
				_, cachedNew = GetCached[int](tr)
			})
		})
		return
	}

	if p, c := visit(true); !p || !c {
		t.Error("first taken pass should create both slots")
	}
	if p, c := visit(true); p || c {
		t.Error("second taken pass should reuse both slots")
	}

	visit(false) // branch not taken: caches cleared, persistent data kept

	if p, c := visit(true); p || !c {
		t.Errorf("after an untaken pass, persistent data survives (new=%v) and caches are rebuilt (new=%v)", p, c)
	}
}

func TestClearCacheIsIdempotent(t *testing.T) {
	var b Block
	b.cacheClear = false
	ClearCache(&b)
	ClearCache(&b) // must not recurse or panic
	if !b.cacheClear {
		t.Error("cacheClear flag should be set")
	}
}

func TestLoopBlocksArePositional(t *testing.T) {
	var g Graph

	iterate := func(n int) []*int {
		var slots []*int
		runPass(t, &g, true, func(tr *Traversal) {
			lp := BeginLoop(tr)
			for i := 0; i < n; i++ {
				lp.Iter(func() {
					p, _ := Get[int](tr)
					slots = append(slots, p)
				})
			}
			lp.End()
		})
		return slots
	}

	first := iterate(3)
	second := iterate(3)
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("iteration %d lost its slot", i)
		}
	}
}

func TestLoopEndClearsAbandonedIterations(t *testing.T) {
	var g Graph

	iterate := func(n int) []bool {
		var isNew []bool
		runPass(t, &g, true, func(tr *Traversal) {
			lp := BeginLoop(tr)
			for i := 0; i < n; i++ {
				lp.Iter(func() {
					_, n := Get[int](tr)
					isNew = append(isNew, n)
				})
			}
			lp.End()
		})
		return isNew
	}

	iterate(3)
	// Shrinking clears the chain from the abandoned block onward.
	iterate(1)
	fresh := iterate(3)
	if fresh[0] {
		t.Error("surviving iteration should keep its data")
	}
	if !fresh[1] || !fresh[2] {
		t.Error("iterations beyond a shrink should have been cleared")
	}
}

func TestKeyedDataInvalidation(t *testing.T) {
	var g Graph

	fetch := func(key int) (recompute bool, kd *Keyed[string]) {
		runPass(t, &g, true, func(tr *Traversal) {
			kd, recompute = GetKeyed[string](tr, intID(key))
			if recompute {
				kd.Set("computed")
			}
		})
		return
	}

	if r, _ := fetch(1); !r {
		t.Error("first fetch must recompute")
	}
	if r, kd := fetch(1); r || kd.Get() != "computed" {
		t.Error("same key should reuse the cached value")
	}
	if r, _ := fetch(2); !r {
		t.Error("key change must invalidate")
	}
}

func TestProgrammerErrorUnwraps(t *testing.T) {
	err := &ProgrammerError{Msg: "x", Err: ErrBlockOutOfOrder}
	if !errors.Is(err, ErrBlockOutOfOrder) {
		t.Error("ProgrammerError should unwrap to its cause")
	}
}
