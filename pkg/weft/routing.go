package weft

import "github.com/weft-dev/weft/pkg/graph"

// RoutingRegion is a node in the hierarchical region tree rebuilt on every
// traversal. Targeted events are routed by walking the target's parent
// chain and pruning sibling regions that are not on the path.
type RoutingRegion struct {
	parent *RoutingRegion
}

// routingPath is one link of the path from the root to a target region,
// assembled on the stack while routing.
type routingPath struct {
	node *RoutingRegion
	rest *routingPath
}

// nodeIdentity is the allocation whose address serves as a node's identity.
type nodeIdentity struct {
	_ byte
}

// NodeID identifies a logical node within the traversal. Identities are
// allocated from cached graph data, so a node keeps its identity for as
// long as its cache cell survives.
type NodeID *nodeIdentity

// GetNodeID returns the identity of the node at the current point in the
// traversal.
func GetNodeID(ctx Context) NodeID {
	p, _ := graph.GetCached[nodeIdentity](ctx.Data())
	return NodeID(p)
}

// RoutableNodeID packages a node's identity with the routing region that
// was active when it was observed, which is enough to route an event back
// to it.
type RoutableNodeID struct {
	ID     NodeID
	Region *RoutingRegion
}

// Valid reports whether the ID identifies an actual node.
func (r RoutableNodeID) Valid() bool { return r.ID != nil }

// MakeRoutableNodeID packages id with the currently active routing region.
func MakeRoutableNodeID(ctx Context, id NodeID) RoutableNodeID {
	return RoutableNodeID{ID: id, Region: ActiveRegion(ctx)}
}

// GetRoutableNodeID returns a routable identity for the node at the current
// point in the traversal.
func GetRoutableNodeID(ctx Context) RoutableNodeID {
	return MakeRoutableNodeID(ctx, GetNodeID(ctx))
}

// ActiveRegion returns the innermost routing region entered so far, or nil
// outside any region.
func ActiveRegion(ctx Context) *RoutingRegion {
	ev := ctx.Events()
	if ev.activeRegion == nil {
		return nil
	}
	return *ev.activeRegion
}

// Region enters a routing region for the duration of body. The region
// record persists in the graph across traversals; its parent link is
// re-established each pass.
//
// During an untargeted dispatch, body always runs. During a targeted
// dispatch, body runs only while this region lies on the path to the
// target; sibling regions off the path are pruned without being entered.
func Region(ctx Context, body func(Context)) {
	ev := ctx.Events()

	slot, _ := graph.Get[*RoutingRegion](ctx.Data())
	if *slot == nil {
		*slot = &RoutingRegion{}
	}
	r := *slot

	if ev.activeRegion != nil {
		if r.parent != *ev.activeRegion {
			r.parent = *ev.activeRegion
		}
	} else {
		r.parent = nil
	}

	oldParent := ev.activeRegion
	ev.activeRegion = slot
	defer func() { ev.activeRegion = oldParent }()

	relevant := true
	if ev.targeted {
		if ev.pathToTarget != nil && ev.pathToTarget.node == r {
			ev.pathToTarget = ev.pathToTarget.rest
		} else {
			relevant = false
		}
	}

	// The body gets its own data block so that pruning it during a targeted
	// dispatch cannot shift the slots of whatever follows the region.
	graph.Branch(ctx.Data(), relevant, func() {
		body(ctx)
	})
}
