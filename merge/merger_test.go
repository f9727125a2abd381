// SPDX-License-Identifier: MIT

package merge_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/collabgraph/aggregate"
	"github.com/katalvlaran/collabgraph/core"
	"github.com/katalvlaran/collabgraph/matrix"
	"github.com/katalvlaran/collabgraph/merge"
)

// kindGraph aggregates (source, target) pairs of one kind.
func kindGraph(t *testing.T, k aggregate.Kind, pairs ...[2]string) core.Graph {
	t.Helper()
	records := make([]aggregate.Record, len(pairs))
	for i, p := range pairs {
		records[i] = aggregate.Record{Source: p[0], Target: p[1], Kind: k}
	}
	g, _, err := aggregate.New(aggregate.Config{}).Aggregate(core.Category(k), records)
	require.NoError(t, err)

	return g
}

func TestMerge_WeightedSum(t *testing.T) {
	comments := kindGraph(t, aggregate.KindComment, [2]string{"A", "B"}, [2]string{"A", "B"})
	reviews := kindGraph(t, aggregate.KindReview, [2]string{"A", "B"})

	m, err := merge.New(merge.Config{})
	require.NoError(t, err)
	g, err := m.Merge(core.CategoryIntegrated,
		merge.Source{Kind: aggregate.KindComment, Graph: comments},
		merge.Source{Kind: aggregate.KindReview, Graph: reviews})
	require.NoError(t, err)

	e, err := g.Edge("A", "B")
	require.NoError(t, err)
	require.Equal(t, int64(2*2+1*4), e.Weight)
	require.Equal(t, "comment|review", e.Type)
	require.Equal(t, core.CategoryIntegrated, g.Category())
}

func TestMerge_AntiParallelStaySeparate(t *testing.T) {
	merges := kindGraph(t, aggregate.KindMerge, [2]string{"A", "B"})
	comments := kindGraph(t, aggregate.KindComment, [2]string{"B", "A"})

	m, err := merge.New(merge.Config{})
	require.NoError(t, err)
	g, err := m.Merge(core.CategoryIntegrated,
		merge.Source{Kind: aggregate.KindMerge, Graph: merges},
		merge.Source{Kind: aggregate.KindComment, Graph: comments})
	require.NoError(t, err)

	w, _ := g.EdgeWeight("A", "B")
	require.Equal(t, merge.DefaultMergeWeight, w)
	w, _ = g.EdgeWeight("B", "A")
	require.Equal(t, merge.DefaultCommentWeight, w)
}

func TestMerge_OrderIndependent(t *testing.T) {
	sources := []merge.Source{
		{Kind: aggregate.KindMerge, Graph: kindGraph(t, aggregate.KindMerge, [2]string{"D", "C"}, [2]string{"A", "B"})},
		{Kind: aggregate.KindComment, Graph: kindGraph(t, aggregate.KindComment, [2]string{"B", "A"}, [2]string{"C", "A"})},
		{Kind: aggregate.KindReview, Graph: kindGraph(t, aggregate.KindReview, [2]string{"A", "B"}, [2]string{"E", "D"})},
		{Kind: aggregate.KindIssueOpened, Graph: kindGraph(t, aggregate.KindIssueOpened, [2]string{"A", "C"})},
	}
	reversed := []merge.Source{sources[3], sources[2], sources[1], sources[0]}

	for _, f := range []core.Factory{core.ListFactory, matrix.Factory} {
		m, err := merge.New(merge.Config{New: f})
		require.NoError(t, err)
		a, err := m.Merge(core.CategoryIntegrated, sources...)
		require.NoError(t, err)
		b, err := m.Merge(core.CategoryIntegrated, reversed...)
		require.NoError(t, err)

		require.Empty(t, cmp.Diff(a.Nodes(), b.Nodes()))
		require.Empty(t, cmp.Diff(a.Edges(), b.Edges()))
		// comment sources come first in canonical order
		require.Equal(t, []string{"B", "A", "C", "E", "D"}, a.Nodes())
	}
}

func TestMerge_UnitWeightsCountInteractions(t *testing.T) {
	reviews := kindGraph(t, aggregate.KindReview, [2]string{"A", "B"}, [2]string{"A", "B"})
	merges := kindGraph(t, aggregate.KindMerge, [2]string{"A", "B"}, [2]string{"C", "B"})

	m, err := merge.New(merge.Config{
		Weights:  merge.UnitWeights(aggregate.KindReview, aggregate.KindMerge),
		Required: []aggregate.Kind{},
	})
	require.NoError(t, err)
	g, err := m.Merge(core.CategoryReviews,
		merge.Source{Kind: aggregate.KindReview, Graph: reviews},
		merge.Source{Kind: aggregate.KindMerge, Graph: merges})
	require.NoError(t, err)

	require.Equal(t, []core.Edge{
		{Source: "A", Target: "B", Weight: 3, Type: "merge|review"},
		{Source: "C", Target: "B", Weight: 1, Type: "merge"},
	}, g.Edges())
}

func TestMerge_OptionalKindSkipped(t *testing.T) {
	closures := kindGraph(t, aggregate.KindClosure, [2]string{"X", "Y"})
	comments := kindGraph(t, aggregate.KindComment, [2]string{"A", "B"})

	m, err := merge.New(merge.Config{})
	require.NoError(t, err)
	g, err := m.Merge(core.CategoryIntegrated,
		merge.Source{Kind: aggregate.KindClosure, Graph: closures},
		merge.Source{Kind: aggregate.KindComment, Graph: comments})
	require.NoError(t, err)
	require.False(t, g.HasNode("X"))
	require.Equal(t, 1, g.EdgeCount())

	// with a closure multiplier the closure graph contributes
	w := merge.DefaultWeights()
	w[aggregate.KindClosure] = 6
	m, err = merge.New(merge.Config{Weights: w})
	require.NoError(t, err)
	g, err = m.Merge(core.CategoryIntegrated, merge.Source{Kind: aggregate.KindClosure, Graph: closures})
	require.NoError(t, err)
	got, ok := g.EdgeWeight("X", "Y")
	require.True(t, ok)
	require.Equal(t, int64(6), got)
}

func TestMerge_NilSource(t *testing.T) {
	m, err := merge.New(merge.Config{})
	require.NoError(t, err)
	_, err = m.Merge(core.CategoryIntegrated, merge.Source{Kind: aggregate.KindComment})
	require.ErrorIs(t, err, merge.ErrNilSource)
}

func TestNew_ConfigurationError(t *testing.T) {
	w := merge.WeightTable{
		aggregate.KindComment: 2,
		aggregate.KindMerge:   -1,
		aggregate.KindClosure: 0,
	}
	_, err := merge.New(merge.Config{Weights: w})
	require.ErrorIs(t, err, merge.ErrConfiguration)

	var cerr *merge.ConfigurationError
	require.True(t, errors.As(err, &cerr))
	require.Equal(t, []aggregate.Kind{aggregate.KindIssueOpened, aggregate.KindReview}, cerr.Missing)
	require.Equal(t, []aggregate.Kind{aggregate.KindClosure, aggregate.KindMerge}, cerr.Invalid)
	require.Contains(t, err.Error(), "missing multiplier for issue_opened, review")
}

func TestWeights_CopiedOnNew(t *testing.T) {
	w := merge.DefaultWeights()
	m, err := merge.New(merge.Config{Weights: w})
	require.NoError(t, err)

	w[aggregate.KindComment] = 100
	require.Equal(t, merge.DefaultCommentWeight, m.Weights()[aggregate.KindComment])
}
