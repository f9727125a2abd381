// SPDX-License-Identifier: MIT
//
// File: api.go
// Role: The graph contract every representation satisfies, plus read-only helpers
//       that work purely through it (Stats, Equal).
// Policy:
//   - Aggregator, merger and exporter depend on Graph only; never on a concrete backend.
//   - Nodes()/Edges() are the single enumeration surface for reproducible output.

package core

import "sort"

// Graph is the capability set shared by the list and matrix representations.
//
// Contract:
//   - AddNode is idempotent.
//   - AddEdge auto-registers missing endpoints, aggregates repeated insertions for the
//     same ordered pair by adding weights, and returns the post-update weight.
//     A self-loop is a no-op reported as ErrLoopNotAllowed and counted in Stats.
//   - Lookups on unknown nodes (Neighbors, InDegree, OutDegree) return ErrNodeNotFound.
//   - (u→v) and (v→u) are independent edges.
//   - Nodes() is insertion order; Edges() is ordered by source insertion index, then
//     target insertion index. Both representations produce identical sequences.
//
// Concurrency:
//   - Single writer during construction; any number of concurrent readers afterwards.
type Graph interface {
	Representation() Representation
	Category() Category

	AddNode(id string) error
	AddEdge(source, target string, weight int64, opts ...EdgeOption) (int64, error)

	HasNode(id string) bool
	HasEdge(source, target string) bool
	EdgeWeight(source, target string) (int64, bool)
	Edge(source, target string) (Edge, error)

	Neighbors(id string) ([]Neighbor, error)
	InDegree(id string) (int, error)
	OutDegree(id string) (int, error)

	NodeCount() int
	EdgeCount() int

	Nodes() []string
	Edges() []Edge

	Stats() Stats
}

// Factory creates an empty Graph. Consumers receive a Factory instead of a concrete
// constructor so the same pipeline runs over either representation.
type Factory func(opts ...GraphOption) Graph

// Stats is a read-only summary of a graph, suitable for logs and export metadata.
type Stats struct {
	Representation   Representation
	Category         Category
	NodeCount        int
	EdgeCount        int
	TotalWeight      int64
	Density          float64
	DroppedSelfLoops int
}

// NewStats assembles a Stats value and derives the directed density E / (V·(V-1)).
func NewStats(rep Representation, cat Category, nodes, edges int, total int64, dropped int) Stats {
	s := Stats{
		Representation:   rep,
		Category:         cat,
		NodeCount:        nodes,
		EdgeCount:        edges,
		TotalWeight:      total,
		DroppedSelfLoops: dropped,
	}
	if nodes > 1 {
		s.Density = float64(edges) / float64(nodes*(nodes-1))
	}

	return s
}

// Equal reports whether a and b hold the same node set and the same edges with
// identical weights and tags. Insertion order and representation are ignored.
// Complexity: O(V log V + E log E).
func Equal(a, b Graph) bool {
	if a.NodeCount() != b.NodeCount() || a.EdgeCount() != b.EdgeCount() {
		return false
	}

	an, bn := a.Nodes(), b.Nodes()
	sort.Strings(an)
	sort.Strings(bn)
	for i := range an {
		if an[i] != bn[i] {
			return false
		}
	}

	ae, be := a.Edges(), b.Edges()
	SortEdges(ae)
	SortEdges(be)
	for i := range ae {
		if ae[i] != be[i] {
			return false
		}
	}

	return true
}

// SortEdges orders edges lexicographically by (Source, Target) in place.
func SortEdges(edges []Edge) {
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})
}
