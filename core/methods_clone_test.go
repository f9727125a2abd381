// SPDX-License-Identifier: MIT

package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/collabgraph/core"
	"github.com/katalvlaran/collabgraph/matrix"
)

func TestClone_ConvertsRepresentation(t *testing.T) {
	src := triangle(t, core.ListFactory)
	require.NoError(t, src.AddNode(UserDave))

	dst, err := core.Clone(src, matrix.Factory)
	require.NoError(t, err)
	require.Equal(t, core.RepresentationMatrix, dst.Representation())
	require.Equal(t, src.Category(), dst.Category())
	require.Equal(t, src.Nodes(), dst.Nodes())
	require.Equal(t, src.Edges(), dst.Edges())

	// The copy is independent.
	mustAddEdge(t, dst, UserDave, UserAlice, Weight1, "")
	require.False(t, src.HasEdge(UserDave, UserAlice))
}

func TestCloneEmpty(t *testing.T) {
	src := triangle(t, matrix.Factory)

	dst, err := core.CloneEmpty(src, core.ListFactory)
	require.NoError(t, err)
	require.Equal(t, src.Nodes(), dst.Nodes())
	require.Equal(t, 0, dst.EdgeCount())
}
