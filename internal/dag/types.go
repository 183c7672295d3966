package dag

import "sync"

// Graph is a collection of nodes and their dependencies, representing a DAG.
// All operations on the graph are concurrency-safe.
type Graph struct {
	// mutex protects the nodes map during concurrent access.
	mutex sync.RWMutex
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[int]*node
	// order records node IDs in insertion order.
	order []int
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using IDs),
// not by direct struct manipulation.
type node struct {
	id int
	// deps holds the IDs this node depends on (predecessors), in insertion order.
	deps []int
	// dependents holds the IDs that depend on this node (successors), in insertion order.
	dependents []int
}

// CycleError reports a dependency cycle. Path lists the node IDs on the
// cycle, starting and ending with the same node.
type CycleError struct {
	Path []int
}
