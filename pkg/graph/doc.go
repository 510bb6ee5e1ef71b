// Package graph implements the data graph: a lazily constructed persistent
// store keyed by the control-flow path of a traversal.
//
// Applications describe their content by calling a traversal function
// repeatedly. Each call site that requests data is a node in the graph, and
// the graph guarantees that the same call site, reached along the same
// control-flow path, sees the same storage slot on every traversal. Branches
// are annotated with child blocks, dynamically ordered content is annotated
// with named blocks, and the graph garbage-collects whatever a complete
// refresh traversal no longer visits.
package graph
