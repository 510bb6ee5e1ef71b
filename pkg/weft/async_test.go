package weft

import (
	"errors"
	"testing"

	"github.com/weft-dev/weft/pkg/ident"
)

func TestAsyncLatch(t *testing.T) {
	// UNREADY -> LAUNCHED on refresh, COMPLETE via the report callback,
	// reset and relaunch on input change, stale completions discarded.
	launches := 0
	var report func(string)
	var status AsyncStatus
	var value string
	var id ident.ID
	var setInput Action

	sys := NewSystem(func(ctx Context) {
		input := GetState(ctx, "a")
		setInput = Copy[string](input, Value("b"))

		res := Async(ctx, func(_ Context, r func(string), arg string) error {
			launches++
			report = r
			return nil
		}, input)

		OnRefresh(ctx, func(Context) {
			status = res.Status()
			value = ReadOr[string](res, "")
			id = res.ValueID().Clone()
		})
	})

	// Refresh 1: launched, no value yet.
	sys.Refresh()
	if launches != 1 || status != AsyncLaunched || value != "" {
		t.Fatalf("after launch: launches=%d status=%v value=%q", launches, status, value)
	}
	preComplete := id

	// External completion arrives (delivered on the driving goroutine); the
	// callback records the result and refreshes.
	firstReport := report
	firstReport("done")
	if status != AsyncComplete || value != "done" {
		t.Errorf("after completion: status=%v value=%q", status, value)
	}
	if ident.Match(preComplete, id) {
		t.Error("completion must bump the version")
	}

	// Input change: reset to unready, relaunch, old results discarded.
	if err := PerformAction(setInput); err != nil {
		t.Fatal(err)
	}
	sys.Refresh()
	if launches != 2 || status != AsyncLaunched {
		t.Errorf("after input change: launches=%d status=%v", launches, status)
	}

	// A completion from the stale launch must be ignored.
	firstReport("stale")
	if value == "stale" {
		t.Error("stale completion must be discarded")
	}

	report("fresh")
	if status != AsyncComplete || value != "fresh" {
		t.Errorf("fresh completion: status=%v value=%q", status, value)
	}
}

func TestAsyncLauncherFailure(t *testing.T) {
	boom := errors.New("launch failed")
	launches := 0
	var status AsyncStatus
	var err error

	sys := NewSystem(func(ctx Context) {
		res := Async(ctx, func(_ Context, _ func(int), _ int) error {
			launches++
			return boom
		}, Value(1))
		OnRefresh(ctx, func(Context) {
			status = res.Status()
			err = res.Err()
		})
	})

	sys.Refresh()
	sys.Refresh()

	if launches != 1 {
		t.Errorf("failed launch must not retry with unchanged inputs, ran %d times", launches)
	}
	if status != AsyncFailed || !errors.Is(err, boom) {
		t.Errorf("status=%v err=%v", status, err)
	}
}

func TestAsyncWaitsForArguments(t *testing.T) {
	launches := 0

	sys := NewSystem(func(ctx Context) {
		_ = Async(ctx, func(_ Context, _ func(int), _ int) error {
			launches++
			return nil
		}, Empty[int]())
	})

	sys.Refresh()
	if launches != 0 {
		t.Error("launcher must not run before arguments have values")
	}
}

func TestAsync0LaunchesOnce(t *testing.T) {
	launches := 0
	var status AsyncStatus

	var report func(int)
	sys := NewSystem(func(ctx Context) {
		res := Async0(ctx, func(_ Context, r func(int)) error {
			launches++
			report = r
			return nil
		})
		OnRefresh(ctx, func(Context) { status = res.Status() })
	})

	sys.Refresh()
	report(7)
	sys.Refresh()

	if launches != 1 {
		t.Errorf("launches = %d, want 1", launches)
	}
	if status != AsyncComplete {
		t.Errorf("status = %v", status)
	}
}
