// SPDX-License-Identifier: MIT

// Package bfs provides breadth-first reachability over a collaboration graph,
// returning hop distances, parent links and visit order.
//
// What
//
//   - Forward traversal follows interactions as recorded (actor → recipient).
//   - Backward traversal follows them in reverse (who reached the start user).
//   - IsStronglyConnected checks that every user reaches every other user.
//   - WithMinWeight restricts traversal to edges above an interaction threshold.
//
// Determinism
//
//	Neighbors are enqueued in the graph's own deterministic order, so the
//	visit sequence is identical under the list and matrix representations.
//
// Complexity (V = nodes, E = edges)
//
//   - Time:   O(V + E)
//   - Memory: O(V), plus O(E) for the incoming-edge index of a Backward run.
//
// Usage
//
//	res, err := bfs.BFS(g, "alice", bfs.WithDirection(bfs.Backward), bfs.WithMaxDepth(2))
//	ok, err := bfs.IsStronglyConnected(ctx, g)
package bfs
