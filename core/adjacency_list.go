// SPDX-License-Identifier: MIT
//
// File: adjacency_list.go
// Role: Sparse Graph backend: ordered node registry → ordered out-map of edge cells.
// Determinism:
//   - Node order is registration order (ordered registry, never map iteration).
//   - Edge order is (source index, target index), matching the matrix backend.
// Concurrency:
//   - One sync.RWMutex guards the registry and counters.

package core

import (
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// listNode is one registry entry.
// index is the permanent insertion index; out maps target ID → edge cell in
// first-insertion order; in counts incoming edges so InDegree stays O(1).
type listNode struct {
	index int
	out   *orderedmap.OrderedMap[string, *listCell]
	in    int
}

// listCell is the stored state of one ordered pair.
type listCell struct {
	target *listNode
	weight int64
	tag    string
}

// AdjacencyList is the O(V+E) Graph implementation for sparse collaboration graphs,
// where most user pairs never interact.
type AdjacencyList struct {
	mu sync.RWMutex

	category Category

	// nodes is the ordered registry: node ID → listNode.
	nodes *orderedmap.OrderedMap[string, *listNode]

	// Incrementally maintained counters; Stats() never rescans.
	edgeCount    int
	totalWeight  int64
	droppedLoops int
}

var _ Graph = (*AdjacencyList)(nil)

// NewAdjacencyList creates an empty list-backed graph.
// Complexity: O(1).
func NewAdjacencyList(opts ...GraphOption) *AdjacencyList {
	cfg := GatherOptions(opts...)

	return &AdjacencyList{
		category: cfg.Category,
		nodes:    orderedmap.New[string, *listNode](),
	}
}

// ListFactory is the Factory for the adjacency-list representation.
func ListFactory(opts ...GraphOption) Graph {
	return NewAdjacencyList(opts...)
}

// Representation reports RepresentationList.
func (g *AdjacencyList) Representation() Representation { return RepresentationList }

// Category reports the construction-time category.
func (g *AdjacencyList) Category() Category { return g.category }

// AddNode registers id if absent (idempotent).
// Errors: ErrEmptyNodeID.
// Complexity: O(1) amortized.
func (g *AdjacencyList) AddNode(id string) error {
	if id == "" {
		return ErrEmptyNodeID
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	g.ensureNode(id)

	return nil
}

// HasNode reports whether id was registered.
func (g *AdjacencyList) HasNode(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.nodes.Get(id)

	return ok
}

// NodeCount returns the number of registered nodes. O(1).
func (g *AdjacencyList) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.nodes.Len()
}

// EdgeCount returns the number of distinct ordered pairs with an edge. O(1).
func (g *AdjacencyList) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return g.edgeCount
}

// Nodes returns node IDs in registration order.
// Complexity: O(V).
func (g *AdjacencyList) Nodes() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]string, 0, g.nodes.Len())
	for pair := g.nodes.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}

	return out
}

// Stats returns counters maintained during construction. O(1).
func (g *AdjacencyList) Stats() Stats {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return NewStats(RepresentationList, g.category, g.nodes.Len(), g.edgeCount, g.totalWeight, g.droppedLoops)
}

// ensureNode returns the registry entry for id, creating it when missing.
// Caller must hold g.mu for writing.
func (g *AdjacencyList) ensureNode(id string) *listNode {
	if n, ok := g.nodes.Get(id); ok {
		return n
	}
	n := &listNode{
		index: g.nodes.Len(), // index == insertion order, never reused
		out:   orderedmap.New[string, *listCell](),
	}
	g.nodes.Set(id, n)

	return n
}

// lookup returns the registry entry for id or ErrNodeNotFound.
// Caller must hold g.mu (read or write).
func (g *AdjacencyList) lookup(id string) (*listNode, error) {
	if id == "" {
		return nil, ErrEmptyNodeID
	}
	n, ok := g.nodes.Get(id)
	if !ok {
		return nil, ErrNodeNotFound
	}

	return n, nil
}
