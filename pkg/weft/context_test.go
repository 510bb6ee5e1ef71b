package weft

import (
	"errors"
	"testing"
)

type testTag struct{}

func TestContextComponents(t *testing.T) {
	sys := NewSystem(func(ctx Context) {
		if !Has(With(ctx, testTag{}, 42), testTag{}) {
			t.Error("added component should be present")
		}
		if Has(ctx, testTag{}) {
			t.Error("extension must not leak into the original context")
		}

		extended := With(ctx, testTag{}, 42)
		if got := Component[int](extended, testTag{}); got != 42 {
			t.Errorf("component = %d", got)
		}

		removed := Without(extended, testTag{})
		if _, err := TryComponent[int](removed, testTag{}); !errors.Is(err, ErrComponentNotFound) {
			t.Errorf("expected ErrComponentNotFound, got %v", err)
		}

		// The hot components survive extension.
		if extended.System() != ctx.System() {
			t.Error("hot components must be shared")
		}
	})
	sys.Refresh()
}

func TestComponentAbsencePanics(t *testing.T) {
	sys := NewSystem(func(ctx Context) {
		defer func() {
			r := recover()
			pe, ok := r.(*ProgrammerError)
			if !ok || !errors.Is(pe, ErrComponentNotFound) {
				t.Errorf("expected component-not-found panic, got %#v", r)
			}
		}()
		Component[int](ctx, testTag{})
	})
	sys.Refresh()
}

func TestHandlersGetDatalessContexts(t *testing.T) {
	type poke struct{}
	checked := false

	sys := NewSystem(func(ctx Context) {
		if !ctx.HasData() {
			t.Error("controller context must carry data")
		}
		OnEvent(ctx, func(hctx Context, _ *poke) {
			checked = true
			if hctx.HasData() {
				t.Error("handler context must be dataless")
			}
			defer func() {
				if recover() == nil {
					t.Error("fetching data from a handler must panic")
				}
			}()
			hctx.Data()
		})
	})

	sys.Refresh()
	sys.Dispatch(&poke{})
	if !checked {
		t.Error("handler did not run")
	}
}

func TestDynamicChecksTypeMismatch(t *testing.T) {
	DynamicChecks = true
	defer func() { DynamicChecks = false }()

	sys := NewSystem(func(ctx Context) {
		extended := With(ctx, testTag{}, "a string")
		_, err := TryComponent[int](extended, testTag{})
		if !errors.Is(err, ErrComponentNotFound) {
			t.Errorf("type mismatch should report component-not-found, got %v", err)
		}
	})
	sys.Refresh()
}
