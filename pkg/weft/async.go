package weft

import (
	"github.com/weft-dev/weft/pkg/graph"
	"github.com/weft-dev/weft/pkg/ident"
)

// AsyncStatus is the state of an asynchronous operation's result.
type AsyncStatus uint8

const (
	// AsyncUnready means the operation has not been launched for the
	// current inputs.
	AsyncUnready AsyncStatus = iota

	// AsyncLaunched means the launcher has been invoked and the result is
	// pending.
	AsyncLaunched

	// AsyncComplete means the result has arrived.
	AsyncComplete

	// AsyncFailed means the launcher returned an error; the failure is
	// latched until an input identity changes.
	AsyncFailed
)

// asyncData is the graph-cached state of one Async call site. It is held
// behind a pointer so that a completion callback can outlive the cache
// cell: a stale callback finds a version mismatch (or an orphaned
// allocation) and is discarded.
type asyncData[R any] struct {
	version uint32
	result  R
	status  AsyncStatus
	err     error
}

func (d *asyncData[R]) reset() {
	if d.status != AsyncUnready {
		d.version++
		d.status = AsyncUnready
		d.err = nil
	}
}

// AsyncSignal is the read-only result of Async. Its identity is an internal
// version counter that bumps whenever the operation is reset.
type AsyncSignal[R any] struct {
	d *asyncData[R]
}

func (s AsyncSignal[R]) HasValue() bool    { return s.d.status == AsyncComplete }
func (s AsyncSignal[R]) ValueID() ident.ID { return ident.Of(s.d.version) }
func (s AsyncSignal[R]) Read() R           { return s.d.result }

// Status returns the operation's current status.
func (s AsyncSignal[R]) Status() AsyncStatus { return s.d.status }

// Err returns the latched launch error, or nil.
func (s AsyncSignal[R]) Err() error { return s.d.err }

func processAsyncArg[R any](ctx Context, d *asyncData[R], argsReady *bool, arg Untyped) {
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

func launchAsync[R any](ctx Context, d *asyncData[R], argsReady bool, launch func(report func(R)) error) {
	if !IsRefresh(ctx) || d.status != AsyncUnready || !argsReady {
		return
	}

	sys := ctx.System()
	version := d.version
	report := func(result R) {
		// Discard stale completions: the inputs changed (version bumped) or
		// the cache cell was dropped and reallocated since the launch.
		if d.version == version && d.status == AsyncLaunched {
			d.result = result
			d.status = AsyncComplete
			d.version++
		}
		sys.Refresh()
	}

	d.status = AsyncLaunched
	if err := launch(report); err != nil {
		d.status = AsyncFailed
		d.err = err
	}
}

// Async yields a signal for the result of an asynchronous operation.
//
// During a refresh, when the operation is unlaunched and the argument has a
// value, launcher is invoked with the argument value and a report callback.
// The launcher may hand the callback to work running elsewhere, but the
// callback must be delivered back on the goroutine driving the system
// (typically by posting through the host's external interface); it records
// the result and triggers a refresh. An argument identity change resets the
// operation, bumps the version, and relaunches; completions from a stale
// launch are discarded by version check. A launcher error is latched as
// AsyncFailed.
func Async[A, R any](
	ctx Context, launcher func(ctx Context, report func(R), arg A) error, arg Readable[A],
) AsyncSignal[R] {
	slot, _ := graph.GetCached[*asyncData[R]](ctx.Data())
	if *slot == nil {
		*slot = &asyncData[R]{}
	}
	d := *slot

	argsReady := true
	processAsyncArg(ctx, d, &argsReady, arg)
	launchAsync(ctx, d, argsReady, func(report func(R)) error {
		return launcher(ctx.WithoutData(), report, arg.Read())
	})

	return AsyncSignal[R]{d: d}
}

// Async0 is Async with no argument signals: the operation launches on the
// first refresh and relaunches only after the cache cell is cleared.
func Async0[R any](
	ctx Context, launcher func(ctx Context, report func(R)) error,
) AsyncSignal[R] {
	slot, _ := graph.GetCached[*asyncData[R]](ctx.Data())
	if *slot == nil {
		*slot = &asyncData[R]{}
	}
	d := *slot

	launchAsync(ctx, d, true, func(report func(R)) error {
		return launcher(ctx.WithoutData(), report)
	})

	return AsyncSignal[R]{d: d}
}
