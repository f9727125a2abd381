// SPDX-License-Identifier: MIT

package bfs_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/katalvlaran/collabgraph/bfs"
	"github.com/katalvlaran/collabgraph/core"
	"github.com/katalvlaran/collabgraph/matrix"
)

// ring builds a directed ring of n users, strongly connected by construction.
func ring(f core.Factory, n int) core.Graph {
	g := f(core.WithCapacity(n))
	for i := 0; i < n; i++ {
		_, _ = g.AddEdge("u"+strconv.Itoa(i), "u"+strconv.Itoa((i+1)%n), 1)
	}

	return g
}

func BenchmarkIsStronglyConnected_List(b *testing.B) {
	g := ring(core.ListFactory, 1000)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = bfs.IsStronglyConnected(ctx, g)
	}
}

func BenchmarkIsStronglyConnected_Matrix(b *testing.B) {
	g := ring(matrix.Factory, 1000)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = bfs.IsStronglyConnected(ctx, g)
	}
}
