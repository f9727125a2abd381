// Package matrix provides the dense adjacency-matrix representation of a
// collaboration graph.
//
// The package provides:
//
//   - Dense: a growable square int64 buffer, row-major in one flat slice, whose
//     capacity is a power of two and doubles on demand (never shrinks).
//   - AdjacencyMatrix: a core.Graph over Dense with a permanent node→index
//     bijection, O(1) weight lookups and O(V²) memory.
//
// Nodes are discovered incrementally from the input stream. Growing the buffer
// one row at a time would copy O(V²) entries per insertion; doubling amortizes
// the copies to O(V²) across all V insertions. Every growth event copies the
// live block into the top-left corner of the new buffer, so previously recorded
// weights survive unchanged.
//
// A cell value of 0 means "no edge". The graph contract forbids non-positive
// weights, so a genuine zero-weight edge can never be requested.
//
// Matrices suit small or dense graphs; use core.AdjacencyList for sparse ones.
// Both emit identical Nodes()/Edges() sequences.
package matrix
