// SPDX-License-Identifier: MIT
//
// File: methods_edges.go
// Role: Edge insertion (aggregating) and edge queries of AdjacencyList.
// Determinism:
//   - Edges() returns (source index, target index) order.
// Concurrency:
//   - AddEdge under the write lock; queries under the read lock.

package core

import (
	"fmt"
	"sort"
)

// AddEdge adds weight to the edge source→target, creating the edge and any missing
// endpoint on first use.
//
// Implementation:
//   - Stage 1: ValidateEdge (empty id, weight, self-loop). A self-loop is counted and
//     reported as ErrLoopNotAllowed without touching the registry.
//   - Stage 2: Ensure both endpoints exist (auto-registration, no NotFound here).
//   - Stage 3: Aggregate into the existing cell or create a new one.
//
// Returns the post-update weight of the edge.
// Errors: ErrEmptyNodeID, ErrBadWeight, ErrLoopNotAllowed.
// Complexity: O(1) amortized (+ O(k log k) when a composite tag set is merged).
func (g *AdjacencyList) AddEdge(source, target string, weight int64, opts ...EdgeOption) (int64, error) {
	if err := ValidateEdge(source, target, weight); err != nil {
		if err == ErrLoopNotAllowed {
			g.mu.Lock()
			g.droppedLoops++
			g.mu.Unlock()
		}
		return 0, err
	}
	tag := GatherEdgeOptions(opts...).Type

	g.mu.Lock()
	defer g.mu.Unlock()

	from := g.ensureNode(source)
	to := g.ensureNode(target)

	if c, ok := from.out.Get(target); ok {
		c.weight += weight
		c.tag = MergeTags(c.tag, tag)
		g.totalWeight += weight
		return c.weight, nil
	}

	from.out.Set(target, &listCell{target: to, weight: weight, tag: MergeTags("", tag)})
	to.in++
	g.edgeCount++
	g.totalWeight += weight

	return weight, nil
}

// HasEdge reports whether source→target has an edge. Unknown nodes report false.
// Complexity: O(1).
func (g *AdjacencyList) HasEdge(source, target string) bool {
	_, ok := g.EdgeWeight(source, target)
	return ok
}

// EdgeWeight returns the weight of source→target, or (0, false) when absent.
// Complexity: O(1).
func (g *AdjacencyList) EdgeWeight(source, target string) (int64, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	c, ok := g.cell(source, target)
	if !ok {
		return 0, false
	}

	return c.weight, true
}

// Edge returns a snapshot of source→target.
// Errors: ErrEdgeNotFound (wrapped with the pair).
func (g *AdjacencyList) Edge(source, target string) (Edge, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	c, ok := g.cell(source, target)
	if !ok {
		return Edge{}, fmt.Errorf("AdjacencyList.Edge(%q,%q): %w", source, target, ErrEdgeNotFound)
	}

	return Edge{Source: source, Target: target, Weight: c.weight, Type: c.tag}, nil
}

// Edges returns every edge ordered by source index, then target index.
// Complexity: O(E + Σ d·log d) where d is an out-degree.
func (g *AdjacencyList) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Edge, 0, g.edgeCount)
	var row []*orderedPair
	for src := g.nodes.Oldest(); src != nil; src = src.Next() {
		row = sortedOut(src.Value, row[:0])
		for _, p := range row {
			out = append(out, Edge{Source: src.Key, Target: p.id, Weight: p.cell.weight, Type: p.cell.tag})
		}
	}

	return out
}

// cell returns the stored cell for source→target. Caller holds g.mu.
func (g *AdjacencyList) cell(source, target string) (*listCell, bool) {
	n, ok := g.nodes.Get(source)
	if !ok {
		return nil, false
	}

	return n.out.Get(target)
}

// orderedPair is a scratch row entry used to sort an out-map by target index.
type orderedPair struct {
	id   string
	cell *listCell
}

// sortedOut appends n's out-cells to buf sorted by target insertion index.
func sortedOut(n *listNode, buf []*orderedPair) []*orderedPair {
	for p := n.out.Oldest(); p != nil; p = p.Next() {
		buf = append(buf, &orderedPair{id: p.Key, cell: p.Value})
	}
	sort.Slice(buf, func(i, j int) bool { return buf[i].cell.target.index < buf[j].cell.target.index })

	return buf
}
