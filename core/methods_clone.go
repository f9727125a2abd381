// SPDX-License-Identifier: MIT
//
// File: methods_clone.go
// Role: Copy a graph into any representation.
// Determinism:
//   - The copy registers nodes in g.Nodes() order and replays g.Edges(), so node
//     order, edge order, weights and tags all carry over.
// Concurrency:
//   - Only reads g; the copy belongs to the caller.

package core

import "fmt"

// CloneEmpty returns a graph built by newGraph with g's category and nodes but no edges.
// Complexity: O(V).
func CloneEmpty(g Graph, newGraph Factory) (Graph, error) {
	nodes := g.Nodes()
	clone := newGraph(WithCategory(g.Category()), WithCapacity(len(nodes)))
	for _, id := range nodes {
		if err := clone.AddNode(id); err != nil {
			return nil, fmt.Errorf("CloneEmpty: %w", err)
		}
	}

	return clone, nil
}

// Clone returns a deep copy of g built by newGraph. Passing the other
// representation's factory converts between list and matrix.
// The dropped self-loop counter is not carried over.
// Complexity: O(V + E) graph operations.
func Clone(g Graph, newGraph Factory) (Graph, error) {
	clone, err := CloneEmpty(g, newGraph)
	if err != nil {
		return nil, err
	}
	for _, e := range g.Edges() {
		if _, err = clone.AddEdge(e.Source, e.Target, e.Weight, WithEdgeType(e.Type)); err != nil {
			return nil, fmt.Errorf("Clone: %q->%q: %w", e.Source, e.Target, err)
		}
	}

	return clone, nil
}
