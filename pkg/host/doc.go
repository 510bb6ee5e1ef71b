// Package host binds a weft system to a network host.
//
// The runtime core treats its host as an external collaborator: something
// that drives the refresh loop, delivers user events, and consumes whatever
// the controller emits. This package provides such a host over HTTP: each
// websocket connection gets its own system driven by a single event-loop
// goroutine (the runtime is cooperative and single-threaded), a line-based
// sink the application renders into, and JSON frames in both directions.
// Prometheus metrics and OpenTelemetry spans cover the dispatch path.
package host
