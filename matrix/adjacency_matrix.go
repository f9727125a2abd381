// SPDX-License-Identifier: MIT
//
// File: adjacency_matrix.go
// Role: Dense core.Graph backend.
//
// AdjacencyMatrix stores weights in a Dense square addressed by node index.
// A cell value of 0 means "no edge"; core.ValidateEdge forbids non-positive
// weights, so every stored edge is distinguishable from an empty cell.
//
// Index assignment is permanent: a node keeps the index it received on
// registration, so index order == insertion order and export order is stable.
//
// Complexity:
//   - AddNode: O(1) amortized (doubling growth, O(V²) total over V insertions).
//   - AddEdge/HasEdge/EdgeWeight: O(1).
//   - Neighbors/InDegree/OutDegree: O(V) row or column scan.
//   - Edges: O(V²).

package matrix

import (
	"fmt"
	"sync"

	"github.com/katalvlaran/collabgraph/core"
)

// cell addresses one (row, col) pair of the tag side table.
type cell struct{ row, col int }

// AdjacencyMatrix is the O(V²) core.Graph implementation.
type AdjacencyMatrix struct {
	mu sync.RWMutex

	category core.Category

	vertexIndex   map[string]int // node ID → row/col index
	vertexByIndex []string       // reverse lookup by index
	mat           *Dense         // weights, 0 == no edge
	tags          map[cell]string

	edgeCount    int
	totalWeight  int64
	droppedLoops int
}

var _ core.Graph = (*AdjacencyMatrix)(nil)

// NewAdjacencyMatrix creates an empty matrix-backed graph.
// core.WithCapacity pre-sizes the buffer (rounded up to a power of two).
// A hint too large to allocate is dropped and the buffer starts at MinCapacity.
// Complexity: O(capacity²).
func NewAdjacencyMatrix(opts ...core.GraphOption) *AdjacencyMatrix {
	cfg := core.GatherOptions(opts...)
	mat, err := NewDense(cfg.Capacity)
	if err != nil {
		mat, _ = NewDense(0)
	}

	return &AdjacencyMatrix{
		category:      cfg.Category,
		vertexIndex:   make(map[string]int, mat.Capacity()),
		vertexByIndex: make([]string, 0, mat.Capacity()),
		mat:           mat,
		tags:          make(map[cell]string),
	}
}

// Factory is the core.Factory for the adjacency-matrix representation.
func Factory(opts ...core.GraphOption) core.Graph {
	return NewAdjacencyMatrix(opts...)
}

// Representation reports core.RepresentationMatrix.
func (am *AdjacencyMatrix) Representation() core.Representation { return core.RepresentationMatrix }

// Category reports the construction-time category.
func (am *AdjacencyMatrix) Category() core.Category { return am.category }

// Capacity returns the allocated dimension of the weight buffer.
func (am *AdjacencyMatrix) Capacity() int {
	am.mu.RLock()
	defer am.mu.RUnlock()

	return am.mat.Capacity()
}

// Growths returns how many times the weight buffer was reallocated.
func (am *AdjacencyMatrix) Growths() int {
	am.mu.RLock()
	defer am.mu.RUnlock()

	return am.mat.Growths()
}

// AddNode registers id if absent (idempotent).
// Errors: core.ErrEmptyNodeID, ErrCapacityOverflow.
func (am *AdjacencyMatrix) AddNode(id string) error {
	if id == "" {
		return core.ErrEmptyNodeID
	}
	am.mu.Lock()
	defer am.mu.Unlock()

	_, err := am.ensureNode(id)

	return err
}

// HasNode reports whether id was registered.
func (am *AdjacencyMatrix) HasNode(id string) bool {
	am.mu.RLock()
	defer am.mu.RUnlock()

	_, ok := am.vertexIndex[id]

	return ok
}

// AddEdge adds weight to the cell (source, target), registering missing endpoints.
// Stage 1 (Validate): core.ValidateEdge; self-loops are counted and rejected.
// Stage 2 (Prepare): resolve or assign indices, growing the buffer if needed.
// Stage 3 (Execute): accumulate weight and merge the tag.
// Returns the post-update weight.
func (am *AdjacencyMatrix) AddEdge(source, target string, weight int64, opts ...core.EdgeOption) (int64, error) {
	if err := core.ValidateEdge(source, target, weight); err != nil {
		if err == core.ErrLoopNotAllowed {
			am.mu.Lock()
			am.droppedLoops++
			am.mu.Unlock()
		}
		return 0, err
	}
	tag := core.GatherEdgeOptions(opts...).Type

	am.mu.Lock()
	defer am.mu.Unlock()

	i, err := am.ensureNode(source)
	if err != nil {
		return 0, fmt.Errorf("AdjacencyMatrix.AddEdge(%q,%q): %w", source, target, err)
	}
	j, err := am.ensureNode(target)
	if err != nil {
		return 0, fmt.Errorf("AdjacencyMatrix.AddEdge(%q,%q): %w", source, target, err)
	}

	w, err := am.mat.Add(i, j, weight)
	if err != nil {
		return 0, fmt.Errorf("AdjacencyMatrix.AddEdge(%q,%q): %w", source, target, err)
	}
	if w == weight { // cell was empty before this insertion
		am.edgeCount++
	}
	am.totalWeight += weight
	if merged := core.MergeTags(am.tags[cell{i, j}], tag); merged != "" {
		am.tags[cell{i, j}] = merged
	}

	return w, nil
}

// HasEdge reports whether source→target has an edge. Unknown nodes report false.
func (am *AdjacencyMatrix) HasEdge(source, target string) bool {
	_, ok := am.EdgeWeight(source, target)
	return ok
}

// EdgeWeight returns the weight of source→target, or (0, false) when absent.
func (am *AdjacencyMatrix) EdgeWeight(source, target string) (int64, bool) {
	am.mu.RLock()
	defer am.mu.RUnlock()

	i, j, ok := am.pair(source, target)
	if !ok {
		return 0, false
	}
	w, _ := am.mat.At(i, j) // indices come from vertexIndex, always in range
	if w == 0 {
		return 0, false
	}

	return w, true
}

// Edge returns a snapshot of source→target or core.ErrEdgeNotFound.
func (am *AdjacencyMatrix) Edge(source, target string) (core.Edge, error) {
	am.mu.RLock()
	defer am.mu.RUnlock()

	i, j, ok := am.pair(source, target)
	if ok {
		if w, _ := am.mat.At(i, j); w != 0 {
			return core.Edge{Source: source, Target: target, Weight: w, Type: am.tags[cell{i, j}]}, nil
		}
	}

	return core.Edge{}, fmt.Errorf("AdjacencyMatrix.Edge(%q,%q): %w", source, target, core.ErrEdgeNotFound)
}

// NodeCount returns the number of registered nodes. O(1).
func (am *AdjacencyMatrix) NodeCount() int {
	am.mu.RLock()
	defer am.mu.RUnlock()

	return len(am.vertexByIndex)
}

// EdgeCount returns the number of non-zero cells. O(1).
func (am *AdjacencyMatrix) EdgeCount() int {
	am.mu.RLock()
	defer am.mu.RUnlock()

	return am.edgeCount
}

// Nodes returns node IDs in index (insertion) order.
func (am *AdjacencyMatrix) Nodes() []string {
	am.mu.RLock()
	defer am.mu.RUnlock()

	out := make([]string, len(am.vertexByIndex))
	copy(out, am.vertexByIndex)

	return out
}

// Edges returns every edge by row, then column: the same order as the list backend.
func (am *AdjacencyMatrix) Edges() []core.Edge {
	am.mu.RLock()
	defer am.mu.RUnlock()

	out := make([]core.Edge, 0, am.edgeCount)
	var i, j int
	for i = 0; i < am.mat.Size(); i++ {
		row := am.mat.Row(i)
		for j = range row {
			if row[j] == 0 {
				continue
			}
			out = append(out, core.Edge{
				Source: am.vertexByIndex[i],
				Target: am.vertexByIndex[j],
				Weight: row[j],
				Type:   am.tags[cell{i, j}],
			})
		}
	}

	return out
}

// Neighbors returns the non-zero cells of id's row in column order.
// Errors: core.ErrEmptyNodeID, core.ErrNodeNotFound.
func (am *AdjacencyMatrix) Neighbors(id string) ([]core.Neighbor, error) {
	am.mu.RLock()
	defer am.mu.RUnlock()

	i, err := am.lookup(id)
	if err != nil {
		return nil, fmt.Errorf("AdjacencyMatrix.Neighbors(%q): %w", id, err)
	}
	out := make([]core.Neighbor, 0)
	for j, w := range am.mat.Row(i) {
		if w != 0 {
			out = append(out, core.Neighbor{ID: am.vertexByIndex[j], Weight: w})
		}
	}

	return out, nil
}

// OutDegree counts non-zero cells in id's row. O(V).
func (am *AdjacencyMatrix) OutDegree(id string) (int, error) {
	am.mu.RLock()
	defer am.mu.RUnlock()

	i, err := am.lookup(id)
	if err != nil {
		return 0, fmt.Errorf("AdjacencyMatrix.OutDegree(%q): %w", id, err)
	}
	d := 0
	for _, w := range am.mat.Row(i) {
		if w != 0 {
			d++
		}
	}

	return d, nil
}

// InDegree counts non-zero cells in id's column. O(V).
func (am *AdjacencyMatrix) InDegree(id string) (int, error) {
	am.mu.RLock()
	defer am.mu.RUnlock()

	j, err := am.lookup(id)
	if err != nil {
		return 0, fmt.Errorf("AdjacencyMatrix.InDegree(%q): %w", id, err)
	}
	d := 0
	var i int
	for i = 0; i < am.mat.Size(); i++ {
		if am.mat.Row(i)[j] != 0 {
			d++
		}
	}

	return d, nil
}

// Stats returns counters maintained during construction. O(1).
func (am *AdjacencyMatrix) Stats() core.Stats {
	am.mu.RLock()
	defer am.mu.RUnlock()

	return core.NewStats(core.RepresentationMatrix, am.category,
		len(am.vertexByIndex), am.edgeCount, am.totalWeight, am.droppedLoops)
}

// ensureNode returns id's index, assigning the next one (and growing) if absent.
// Caller holds am.mu for writing.
func (am *AdjacencyMatrix) ensureNode(id string) (int, error) {
	if i, ok := am.vertexIndex[id]; ok {
		return i, nil
	}
	i, err := am.mat.Extend()
	if err != nil {
		return 0, err
	}
	am.vertexIndex[id] = i
	am.vertexByIndex = append(am.vertexByIndex, id)

	return i, nil
}

// lookup resolves id or returns a core sentinel. Caller holds am.mu.
func (am *AdjacencyMatrix) lookup(id string) (int, error) {
	if id == "" {
		return 0, core.ErrEmptyNodeID
	}
	i, ok := am.vertexIndex[id]
	if !ok {
		return 0, core.ErrNodeNotFound
	}

	return i, nil
}

// pair resolves both endpoints. Caller holds am.mu.
func (am *AdjacencyMatrix) pair(source, target string) (int, int, bool) {
	i, ok := am.vertexIndex[source]
	if !ok {
		return 0, 0, false
	}
	j, ok := am.vertexIndex[target]
	if !ok {
		return 0, 0, false
	}

	return i, j, true
}
