package weft

import (
	"sync/atomic"
	"time"

	"github.com/weft-dev/weft/pkg/graph"
	"github.com/weft-dev/weft/pkg/ident"
)

// System owns a data graph, the controller that traverses it, and the
// refresh bookkeeping. One system serves one logical scene; it is not safe
// for concurrent use — drive it from a single goroutine (typically an event
// loop) and deliver external callbacks back onto that goroutine.
type System struct {
	graph      graph.Graph
	controller func(Context)

	refreshNeeded bool

	external ExternalInterface

	counters counters
}

// NewSystem creates a system around the given controller. The controller is
// called once per event, including refreshes; it must be deterministic with
// respect to its control-flow annotations, with side effects confined to
// actions.
func NewSystem(controller func(Context)) *System {
	return &System{controller: controller}
}

// Graph returns the system's data graph.
func (s *System) Graph() *graph.Graph { return &s.graph }

// SetExternal installs the host's external interface. Pass nil to revert to
// the default clock and no-op refresh requests.
func (s *System) SetExternal(e ExternalInterface) { s.external = e }

// NeedsRefresh reports whether an animation refresh has been requested and
// not yet delivered.
func (s *System) NeedsRefresh() bool { return s.refreshNeeded }

// Refresh runs a refresh traversal: garbage collection and cache clearing
// are enabled, and after a complete (unaborted) pass the graph's holding
// list is collected.
func (s *System) Refresh() {
	s.refreshNeeded = false

	ev := EventTraversal{event: &RefreshEvent{}}
	if s.routeEvent(&ev, nil) {
		s.graph.CollectUnused()
	}
	s.counters.refreshes.Add(1)
}

// Dispatch delivers an untargeted event: every region visits it, handlers
// opt in by type. event must be a pointer to the event value. A refresh
// follows so that observation side effects (animation requests, GC) settle.
func (s *System) Dispatch(event any) {
	ev := EventTraversal{event: event}
	s.routeEvent(&ev, nil)
	s.counters.events.Add(1)
	s.Refresh()
}

// DispatchTargeted delivers an event to the single node identified by
// target, pruning regions off the path to its routing region. A refresh
// follows the delivery.
func (s *System) DispatchTargeted(event any, target RoutableNodeID) {
	ev := EventTraversal{event: event, targeted: true, targetID: target.ID}
	s.routeEvent(&ev, target.Region)
	s.counters.targetedEvents.Add(1)
	s.Refresh()
}

// routeEvent runs one dispatch, swallowing the abort sentinel. It reports
// whether the traversal ran to completion.
func (s *System) routeEvent(ev *EventTraversal, target *RoutingRegion) (completed bool) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(traversalAborted); ok {
				s.counters.aborts.Add(1)
				debugf("traversal aborted")
				return
			}
			panic(r)
		}
	}()
	s.route(ev, target)
	return true
}

// route builds the path to the target by recursing up the parent chain, so
// the path lives entirely on the stack, then invokes the controller.
func (s *System) route(ev *EventTraversal, target *RoutingRegion) {
	if target != nil {
		path := routingPath{node: target, rest: ev.pathToTarget}
		ev.pathToTarget = &path
		s.route(ev, target.parent)
		return
	}
	s.invokeController(ev)
}

func (s *System) invokeController(ev *EventTraversal) {
	_, isRefresh := ev.event.(*RefreshEvent)

	var tr graph.Traversal
	st := graph.BeginTraversal(&s.graph, &tr)
	done := false
	defer func() {
		if !done {
			tr.MarkUnwinding()
		}
		st.End()
	}()

	// Only refresh events decide when data is no longer needed.
	tr.SetGCEnabled(isRefresh)
	tr.SetCacheClearing(isRefresh)

	ticks := DefaultTickCount()
	if s.external != nil {
		ticks = s.external.TickCount()
	}
	timing := Timing{Ticks: ticks}

	storage := Storage{sys: s, data: &tr, events: ev, timing: &timing}
	s.controller(Context{s: &storage})
	done = true
	s.counters.traversals.Add(1)
}

// counters aggregates dispatch statistics.
type counters struct {
	traversals     atomic.Int64
	refreshes      atomic.Int64
	events         atomic.Int64
	targetedEvents atomic.Int64
	aborts         atomic.Int64
}

// CountersSnapshot is a point-in-time copy of the system's dispatch
// statistics.
type CountersSnapshot struct {
	Traversals     int64
	Refreshes      int64
	Events         int64
	TargetedEvents int64
	Aborts         int64

	CollectedAt time.Time
}

// Counters returns a snapshot of the system's dispatch statistics.
func (s *System) Counters() CountersSnapshot {
	return CountersSnapshot{
		Traversals:     s.counters.traversals.Load(),
		Refreshes:      s.counters.refreshes.Load(),
		Events:         s.counters.events.Load(),
		TargetedEvents: s.counters.targetedEvents.Load(),
		Aborts:         s.counters.aborts.Load(),
		CollectedAt:    time.Now(),
	}
}

// DeleteNamedBlock deletes the data associated with the named block
// identified by id. Intended for blocks entered with manual-delete; a block
// that is still referenced merely loses its manual-delete protection.
func DeleteNamedBlock(ctx Context, id ident.ID) {
	ctx.Data().Graph().DeleteNamed(id)
}
