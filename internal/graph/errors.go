package graph

import "errors"

// Sentinel errors for graph operations.
var (
	// ErrDuplicateName is returned when creating a node whose name is
	// already registered in the graph's name index.
	ErrDuplicateName = errors.New("duplicate node name")

	// ErrNodeNotFound is returned when a name or NodeID does not resolve
	// to a node in this graph.
	ErrNodeNotFound = errors.New("node not found")

	// ErrUnsupportedOperation is returned when wiring or value mutation is
	// attempted against a node kind that cannot accept it, e.g. connecting
	// a producer into an Input or Constant node.
	ErrUnsupportedOperation = errors.New("operation not supported for node kind")

	// ErrNotAnInput is returned when a derivative or weight is requested
	// against a producer that is not currently wired as an input.
	ErrNotAnInput = errors.New("node is not a wired input")

	// ErrNoInputs is returned when a derivative is requested on a node
	// kind that has no inputs to differentiate against.
	ErrNoInputs = errors.New("node kind has no inputs")

	// ErrCycleDetected is returned when a forward or backward traversal
	// revisits a node already on the current path. The graph must be a
	// DAG; cyclic wiring is reported instead of recursing forever.
	ErrCycleDetected = errors.New("cycle detected in graph")
)
