// SPDX-License-Identifier: MIT
//
// File: methods_adjacent.go
// Role: Neighborhood and degree queries of AdjacencyList.
// Determinism:
//   - Neighbors() is ordered by target insertion index.

package core

import "fmt"

// Neighbors returns the outgoing (target, weight) pairs of id.
//
// A registered node without outgoing edges yields an empty, non-nil slice.
// Errors: ErrEmptyNodeID, ErrNodeNotFound.
// Complexity: O(d log d) for out-degree d.
func (g *AdjacencyList) Neighbors(id string) ([]Neighbor, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n, err := g.lookup(id)
	if err != nil {
		return nil, fmt.Errorf("AdjacencyList.Neighbors(%q): %w", id, err)
	}

	row := sortedOut(n, make([]*orderedPair, 0, n.out.Len()))
	out := make([]Neighbor, 0, len(row))
	for _, p := range row {
		out = append(out, Neighbor{ID: p.id, Weight: p.cell.weight})
	}

	return out, nil
}

// OutDegree returns the number of distinct targets of id. O(1).
// Errors: ErrEmptyNodeID, ErrNodeNotFound.
func (g *AdjacencyList) OutDegree(id string) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n, err := g.lookup(id)
	if err != nil {
		return 0, fmt.Errorf("AdjacencyList.OutDegree(%q): %w", id, err)
	}

	return n.out.Len(), nil
}

// InDegree returns the number of distinct sources pointing at id. O(1).
// Errors: ErrEmptyNodeID, ErrNodeNotFound.
func (g *AdjacencyList) InDegree(id string) (int, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	n, err := g.lookup(id)
	if err != nil {
		return 0, fmt.Errorf("AdjacencyList.InDegree(%q): %w", id, err)
	}

	return n.in, nil
}
