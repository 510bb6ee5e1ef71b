// Package weft is a declarative immediate-mode reactive runtime.
//
// An application describes its content as a single controller function that
// the runtime invokes once per event, including the refresh events that keep
// derived state current. As the controller runs, the runtime transparently
// attaches persistent state, cached results, and event delivery to each
// logical node it encounters, using the data graph in pkg/graph.
//
// The building blocks:
//
//   - Signals: values that change over time, carrying a payload and a stable
//     value identity, with read/write capability directions enforced by the
//     type system (Readable, Writable, Duplex).
//   - Actions: deferred, readiness-gated effects with latched
//     read-then-write semantics.
//   - Events: a typed pump that re-runs the controller for refreshes,
//     broadcast events, and targeted events routed through a region tree.
//
// The runtime is single-threaded and cooperative: one traversal runs at a
// time, and everything scoped to a traversal (signals, actions, contexts)
// must not be retained across it.
package weft
