// Package core defines the graph contract shared by every storage representation
// of a collaboration graph, and its sparse adjacency-list implementation.
//
// A collaboration graph G = (V, E) is directed, weighted and simple:
//
//   - V holds opaque user IDs; a node is never removed once registered.
//   - E holds at most one edge per ordered pair (u, v). Inserting the same pair
//     again adds to its weight instead of creating a parallel edge.
//   - (u→v) and (v→u) are anti-parallel and stored independently.
//   - Self-loops are rejected (ErrLoopNotAllowed) and counted, never stored.
//   - Weights are strictly positive int64 values; zero means "no edge".
//
// Representations:
//
//	AdjacencyList (this package)   O(V+E) space, O(1) AddEdge, O(d) Neighbors
//	matrix.AdjacencyMatrix         O(V²) space, O(1) AddEdge, O(V) Neighbors
//
// Both satisfy Graph and emit identical Nodes()/Edges() sequences, so the
// aggregator, merger and exporter never depend on which one was chosen:
//
//	var newGraph core.Factory = core.ListFactory
//	g := newGraph(core.WithCategory(core.CategoryComments))
//	_, _ = g.AddEdge("alice", "bob", 1, core.WithEdgeType("comment"))
//	_, _ = g.AddEdge("alice", "bob", 1, core.WithEdgeType("comment"))
//	w, _ := g.EdgeWeight("alice", "bob") // 2
//
// Errors:
//
//	ErrEmptyNodeID     - node ID is the empty string.
//	ErrNodeNotFound    - lookup on a node that was never registered.
//	ErrEdgeNotFound    - lookup on an ordered pair without an edge.
//	ErrBadWeight       - non-positive weight.
//	ErrLoopNotAllowed  - source == target.
package core
