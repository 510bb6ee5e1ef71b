package weft

import (
	"github.com/weft-dev/weft/pkg/graph"
	"github.com/weft-dev/weft/pkg/ident"
)

// ApplyStatus is the state of an eager application's cached result.
type ApplyStatus uint8

const (
	// ApplyUncomputed means the result has not been produced for the
	// current inputs.
	ApplyUncomputed ApplyStatus = iota

	// ApplyReady means the cached result is current.
	ApplyReady

	// ApplyFailed means the function returned an error; the failure is
	// latched until an input identity changes.
	ApplyFailed
)

// applyData is the graph-cached result of one Apply call site.
type applyData[R any] struct {
	version uint32
	result  R
	status  ApplyStatus
	err     error
}

func (d *applyData[R]) reset() {
	if d.status != ApplyUncomputed {
		d.version++
		d.status = ApplyUncomputed
		d.err = nil
	}
}

// ApplySignal is the read-only result of Apply. Its identity is an internal
// version counter that bumps whenever the result is recomputed.
type ApplySignal[R any] struct {
	d *applyData[R]
}

func (s ApplySignal[R]) HasValue() bool    { return s.d.status == ApplyReady }
func (s ApplySignal[R]) ValueID() ident.ID { return ident.Of(s.d.version) }
func (s ApplySignal[R]) Read() R           { return s.d.result }

// Status returns the application's current status.
func (s ApplySignal[R]) Status() ApplyStatus { return s.d.status }

// Err returns the latched error after a failed application, or nil.
func (s ApplySignal[R]) Err() error { return s.d.err }

// processApplyArg invalidates the cached result when the argument's value
// identity has changed since the last refresh. Each argument gets its own
// captured identity in the graph.
func processApplyArg[R any](ctx Context, d *applyData[R], argsReady *bool, arg Untyped) {
	cached, _ := graph.GetCached[ident.Captured](ctx.Data())
	if !IsRefresh(ctx) {
		return
	}
	if !arg.HasValue() {
		d.reset()
		*argsReady = false
	} else if !cached.Matches(arg.ValueID()) {
		d.reset()
		cached.Capture(arg.ValueID())
	}
}

// Apply yields a signal carrying f applied to arg's value. Unlike
// LazyApply, the application is eager and memoized in the data graph: f
// runs during a refresh when the argument's identity has changed, and the
// cached result is reused until then. An error return is latched as
// ApplyFailed and never propagated further.
func Apply[A, R any](ctx Context, f func(A) (R, error), arg Readable[A]) ApplySignal[R] {
	d, _ := graph.GetCached[applyData[R]](ctx.Data())
	argsReady := true
	processApplyArg(ctx, d, &argsReady, arg)
	if IsRefresh(ctx) && d.status == ApplyUncomputed && argsReady {
		r, err := f(arg.Read())
		if err != nil {
			d.status = ApplyFailed
			d.err = err
		} else {
			d.result = r
			d.status = ApplyReady
		}
	}
	return ApplySignal[R]{d: d}
}

// Apply2 is Apply over two argument signals.
func Apply2[A, B, R any](
	ctx Context, f func(A, B) (R, error), a Readable[A], b Readable[B],
) ApplySignal[R] {
	d, _ := graph.GetCached[applyData[R]](ctx.Data())
	argsReady := true
	processApplyArg(ctx, d, &argsReady, a)
	processApplyArg(ctx, d, &argsReady, b)
	if IsRefresh(ctx) && d.status == ApplyUncomputed && argsReady {
		r, err := f(a.Read(), b.Read())
		if err != nil {
			d.status = ApplyFailed
			d.err = err
		} else {
			d.result = r
			d.status = ApplyReady
		}
	}
	return ApplySignal[R]{d: d}
}

// Lift turns a plain function into an Apply-style combinator.
func Lift[A, R any](f func(A) (R, error)) func(Context, Readable[A]) ApplySignal[R] {
	return func(ctx Context, arg Readable[A]) ApplySignal[R] {
		return Apply(ctx, f, arg)
	}
}

// Lift2 is Lift for two-argument functions.
func Lift2[A, B, R any](
	f func(A, B) (R, error),
) func(Context, Readable[A], Readable[B]) ApplySignal[R] {
	return func(ctx Context, a Readable[A], b Readable[B]) ApplySignal[R] {
		return Apply2(ctx, f, a, b)
	}
}
