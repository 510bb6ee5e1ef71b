package weft

// RefreshEvent is the event dispatched by System.Refresh. Refresh
// traversals are the only ones that run garbage collection and cache
// clearing; observation-side-effect code hangs off OnRefresh.
type RefreshEvent struct{}

// EventTraversal is the state for one dispatch: the event payload, whether
// delivery is targeted, and the routing bookkeeping used to prune the
// traversal down to the target's region chain.
type EventTraversal struct {
	activeRegion **RoutingRegion
	targeted     bool
	pathToTarget *routingPath
	event        any
	targetID     NodeID
}

// Event returns the event payload (a pointer to the dispatched event).
func (ev *EventTraversal) Event() any { return ev.event }

// Targeted reports whether this dispatch is aimed at a single node.
func (ev *EventTraversal) Targeted() bool { return ev.targeted }

// TargetID returns the identity of the targeted node, or nil for
// untargeted dispatches.
func (ev *EventTraversal) TargetID() NodeID { return ev.targetID }

// traversalAborted is the sentinel recovered only by the dispatcher.
type traversalAborted struct{}

// Abort unwinds the current traversal without visiting subsequent regions.
// Scope guards restore cursor state on the way out; garbage collection is
// deferred to the next full refresh. Semantically this is a normal return.
func Abort(ctx Context) {
	if ctx.s != nil && ctx.s.data != nil {
		ctx.s.data.MarkUnwinding()
	}
	panic(traversalAborted{})
}

// IsRefresh reports whether the current event is a refresh.
func IsRefresh(ctx Context) bool {
	_, ok := ctx.Events().event.(*RefreshEvent)
	return ok
}

// OnRefresh invokes handler only during a refresh event. The handler
// receives a dataless context: handlers run conditionally, so letting them
// fetch graph data would break slot stability.
func OnRefresh(ctx Context, handler func(Context)) {
	if IsRefresh(ctx) {
		handler(ctx.WithoutData())
	}
}

// OnEvent invokes handler if the current event's type is *E. The handler
// receives a dataless context and the event payload.
func OnEvent[E any](ctx Context, handler func(Context, *E)) {
	if e, ok := ctx.Events().event.(*E); ok {
		handler(ctx.WithoutData(), e)
	}
}

// DetectEvent returns the current event if its type is *E.
func DetectEvent[E any](ctx Context) (*E, bool) {
	e, ok := ctx.Events().event.(*E)
	return e, ok
}

// OnTargetedEvent invokes handler if the current event's type is *E and the
// dispatch targets the given node identity. After the handler runs, the
// traversal is aborted: the event has arrived, nothing beyond this node
// needs to see it.
func OnTargetedEvent[E any](ctx Context, id NodeID, handler func(Context, *E)) {
	ev := ctx.Events()
	if e, ok := ev.event.(*E); ok && ev.targeted && ev.targetID == id {
		handler(ctx.WithoutData(), e)
		Abort(ctx)
	}
}
