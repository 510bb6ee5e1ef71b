package weft

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/weft-dev/weft/pkg/graph"
	"github.com/weft-dev/weft/pkg/ident"
)

func TestIfElseChain(t *testing.T) {
	branch := ""
	cond := NewStateHolder(1)

	sys := NewSystem(func(ctx Context) {
		n := MakeStateSignal(&cond)
		If(ctx, Eq(n, Value(1)), func(Context) {
			branch = "one"
		}).ElseIf(Eq(n, Value(2)), func(Context) {
			branch = "two"
		}).Else(func(Context) {
			branch = "other"
		})
	})

	sys.Refresh()
	if branch != "one" {
		t.Errorf("branch = %q", branch)
	}

	cond.Set(2)
	sys.Refresh()
	if branch != "two" {
		t.Errorf("branch = %q", branch)
	}

	cond.Set(9)
	sys.Refresh()
	if branch != "other" {
		t.Errorf("branch = %q", branch)
	}
}

func TestIfWithoutConditionValueRunsNothing(t *testing.T) {
	ran := ""

	sys := NewSystem(func(ctx Context) {
		If(ctx, Empty[bool](), func(Context) {
			ran = "if"
		}).Else(func(Context) {
			ran = "else"
		})
	})

	sys.Refresh()
	if ran != "" {
		t.Errorf("a condition without a value must run neither branch, ran %q", ran)
	}
}

func TestIfBranchStateIsIndependent(t *testing.T) {
	cond := NewStateHolder(true)
	var taken, nottaken *int

	sys := NewSystem(func(ctx Context) {
		c := MakeStateSignal(&cond)
		If(ctx, c, func(ctx Context) {
			p, _ := getStateSlot(ctx)
			taken = p
		}).Else(func(ctx Context) {
			p, _ := getStateSlot(ctx)
			nottaken = p
		})
	})

	sys.Refresh()
	firstTaken := taken

	cond.Set(false)
	sys.Refresh()

	cond.Set(true)
	sys.Refresh()

	if taken != firstTaken {
		t.Error("branch persistent state must survive passes where the branch is untaken")
	}
	if nottaken == taken {
		t.Error("branches must have separate storage")
	}
}

func TestSwitchKeepsPerCaseState(t *testing.T) {
	sel := NewStateHolder(1)
	var caseSlots []*int

	sys := NewSystem(func(ctx Context) {
		v := MakeStateSignal(&sel)
		Switch(ctx, v, map[int]func(Context){
			1: func(ctx Context) {
				p, _ := getStateSlot(ctx)
				caseSlots = append(caseSlots, p)
			},
			2: func(Context) {},
		}, nil)
	})

	sys.Refresh()
	sel.Set(2)
	sys.Refresh()
	sel.Set(1)
	sys.Refresh()

	if len(caseSlots) != 2 {
		t.Fatalf("case 1 entered %d times", len(caseSlots))
	}
	if caseSlots[0] != caseSlots[1] {
		t.Error("case state must persist while other cases are active")
	}
}

func TestSwitchDefault(t *testing.T) {
	ran := ""
	sys := NewSystem(func(ctx Context) {
		Switch(ctx, Value(99), map[int]func(Context){
			1: func(Context) { ran = "one" },
		}, func(Context) { ran = "default" })
	})
	sys.Refresh()
	if ran != "default" {
		t.Errorf("ran = %q", ran)
	}
}

func TestForEachKeyedReorder(t *testing.T) {
	// Named per-item state survives reordering without destruction.
	items := NewStateHolder([]string{"a", "b", "c"})
	slots := map[string]*string{}

	sys := NewSystem(func(ctx Context) {
		ForEachKeyed(ctx, items.Get(), func(s string) ident.ID {
			return ident.Of(s)
		}, func(ctx Context, item string) {
			p, isNew := getStringSlot(ctx)
			if isNew {
				*p = item
			}
			slots[item] = p
		})
	})

	sys.Refresh()
	before := map[string]*string{"a": slots["a"], "b": slots["b"], "c": slots["c"]}

	items.Set([]string{"c", "a", "b"})
	sys.Refresh()

	for _, name := range []string{"a", "b", "c"} {
		if slots[name] != before[name] {
			t.Errorf("item %q lost its state across reorder", name)
		}
		if *slots[name] != name {
			t.Errorf("item %q state corrupted: %q", name, *slots[name])
		}
	}
}

func TestForEachPositional(t *testing.T) {
	items := NewStateHolder(3)
	var values []int

	sys := NewSystem(func(ctx Context) {
		n := items.Get()
		list := make([]int, n)
		for i := range list {
			list[i] = i * 10
		}
		values = values[:0]
		ForEach(ctx, list, func(ctx Context, i int, item int) {
			values = append(values, item)
		})
	})

	sys.Refresh()
	if len(values) != 3 || values[2] != 20 {
		t.Errorf("values = %v", values)
	}

	items.Set(1)
	sys.Refresh()
	if len(values) != 1 {
		t.Errorf("values after shrink = %v", values)
	}
}

func TestTransform(t *testing.T) {
	calls := 0
	var result []int
	var has bool

	sys := NewSystem(func(ctx Context) {
		out := Transform(ctx, []string{"a", "bb", "ccc"}, func(ctx Context, item string) Readable[int] {
			calls++
			return Value(len(item))
		})
		OnRefresh(ctx, func(Context) {
			has = out.HasValue()
			if has {
				result = out.Read()
			}
		})
	})

	sys.Refresh()
	if !has {
		t.Fatal("transform of all-valued items should have a value")
	}
	if diff := cmp.Diff([]int{1, 2, 3}, result); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}

	sys.Refresh()
	if !has {
		t.Error("transform should stay valid across idle refreshes")
	}
	if calls < 6 {
		t.Error("the mapping function runs every pass to keep dataflow alive")
	}
}

// getStateSlot fetches a persistent int slot at the current point in the
// traversal.
func getStateSlot(ctx Context) (*int, bool) {
	return graph.Get[int](ctx.Data())
}

func getStringSlot(ctx Context) (*string, bool) {
	return graph.Get[string](ctx.Data())
}
