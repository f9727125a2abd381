// SPDX-License-Identifier: MIT
//
// File: bfs.go
// Role: Breadth-first reachability over a core.Graph and strong connectivity.
// Determinism:
//   - Forward neighbors come from core.Graph.Neighbors (node insertion order);
//     Backward neighbors from core.Graph.Edges (source insertion order).

package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/collabgraph/core"
)

type queueItem struct {
	id    string
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	next    func(id string) ([]core.Neighbor, error)
	opts    Options
	ctx     context.Context
	queue   []queueItem
	visited map[string]bool
	res     *Result
}

// BFS runs breadth-first search on g from start.
// Errors: ErrGraphNil, ErrStartNodeNotFound, ErrOptionViolation, context errors,
// graph lookup errors, or a wrapped OnVisit error.
// Complexity: O(V + E); Backward adds one O(E) pass to index incoming edges.
func BFS(g core.Graph, start string, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.HasNode(start) {
		return nil, fmt.Errorf("BFS(%q): %w", start, ErrStartNodeNotFound)
	}

	n := g.NodeCount()
	w := &walker{
		next:    g.Neighbors,
		opts:    o,
		ctx:     o.Ctx,
		queue:   make([]queueItem, 0, n),
		visited: make(map[string]bool, n),
		res: &Result{
			Order:  make([]string, 0, n),
			Depth:  make(map[string]int, n),
			Parent: make(map[string]string, n),
		},
	}
	if o.Direction == Backward {
		w.next = incoming(g)
	}

	w.enqueue(start, 0, "")

	return w.res, w.loop()
}

// incoming indexes g's edges by target.
func incoming(g core.Graph) func(string) ([]core.Neighbor, error) {
	in := make(map[string][]core.Neighbor, g.NodeCount())
	for _, e := range g.Edges() {
		in[e.Target] = append(in[e.Target], core.Neighbor{ID: e.Source, Weight: e.Weight})
	}

	return func(id string) ([]core.Neighbor, error) { return in[id], nil }
}

func (w *walker) enqueue(id string, d int, parent string) {
	w.visited[id] = true
	w.res.Depth[id] = d
	if parent != "" {
		w.res.Parent[id] = parent
	}
	w.queue = append(w.queue, queueItem{id: id, depth: d})
}

func (w *walker) loop() error {
	for len(w.queue) > 0 {
		if err := w.ctx.Err(); err != nil {
			return err
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.id)
		if err := w.opts.OnVisit(item.id, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %q: %w", item.id, err)
		}
		if w.opts.MaxDepth > 0 && item.depth >= w.opts.MaxDepth {
			continue
		}

		neighbors, err := w.next(item.id)
		if err != nil {
			return fmt.Errorf("bfs: neighbors of %q: %w", item.id, err)
		}
		for _, nb := range neighbors {
			if nb.Weight < w.opts.MinWeight || w.visited[nb.ID] {
				continue
			}
			w.enqueue(nb.ID, item.depth+1, item.id)
		}
	}

	return nil
}

// IsStronglyConnected reports whether every node reaches every other node.
// Graphs with fewer than two nodes are strongly connected.
//
// Implementation:
//   - Stage 1: Forward BFS from the first node must reach all nodes.
//   - Stage 2: Backward BFS from the same node must reach all nodes.
//
// Complexity: O(V + E).
func IsStronglyConnected(ctx context.Context, g core.Graph) (bool, error) {
	if g == nil {
		return false, ErrGraphNil
	}
	ids := g.Nodes()
	if len(ids) < 2 {
		return true, nil
	}
	for _, d := range []Direction{Forward, Backward} {
		res, err := BFS(g, ids[0], WithContext(ctx), WithDirection(d))
		if err != nil {
			return false, err
		}
		if len(res.Order) != len(ids) {
			return false, nil
		}
	}

	return true, nil
}
