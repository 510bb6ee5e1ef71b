package weft

import (
	"sync"
	"time"
)

// ExternalInterface is the host's side of the runtime. Hosts override it to
// integrate the refresh loop with their own scheduler and clock.
type ExternalInterface interface {
	// RequestAnimationRefresh is called once per batch when something is
	// animating and the system wants another refresh soon.
	RequestAnimationRefresh()

	// TickCount returns the host's monotonic millisecond counter. It is
	// free to wrap; deltas are computed as signed.
	TickCount() uint32
}

// Timing carries the tick counter for one traversal. The counter is
// sampled once per pass, so it is consistent within a single frame.
type Timing struct {
	Ticks uint32
}

var (
	tickEpochOnce sync.Once
	tickEpoch     time.Time
)

// DefaultTickCount returns milliseconds from a steady monotonic source with
// an arbitrary start point. Wrapping is expected and tolerated.
func DefaultTickCount() uint32 {
	tickEpochOnce.Do(func() { tickEpoch = time.Now() })
	return uint32(time.Since(tickEpoch) / time.Millisecond)
}

// RequestAnimationRefresh asks the system to refresh again quickly enough
// for smooth animation. The external hook fires at most once per batch; the
// refresh-needed flag coalesces further requests until the refresh runs.
func RequestAnimationRefresh(ctx Context) {
	sys := ctx.System()
	if !sys.refreshNeeded {
		if sys.external != nil {
			sys.external.RequestAnimationRefresh()
		}
		sys.refreshNeeded = true
	}
}

// AnimationTick returns the millisecond tick counter for this traversal.
// Calling it implies something is animating, so it also requests a refresh.
func AnimationTick(ctx Context) uint32 {
	RequestAnimationRefresh(ctx)
	return ctx.Timing().Ticks
}

// AnimationTickSignal is AnimationTick as a read-only signal.
func AnimationTickSignal(ctx Context) Readable[uint32] {
	return Value(AnimationTick(ctx))
}

// AnimationTicksLeft returns the number of ticks remaining until end, or 0
// once the time has passed. While nonzero it keeps the system refreshing
// (requests are only issued during refresh events).
func AnimationTicksLeft(ctx Context, end uint32) uint32 {
	remaining := int32(end - ctx.Timing().Ticks)
	if remaining <= 0 {
		return 0
	}
	if IsRefresh(ctx) {
		RequestAnimationRefresh(ctx)
	}
	return uint32(remaining)
}
