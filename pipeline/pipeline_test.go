// SPDX-License-Identifier: MIT

package pipeline_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/collabgraph/aggregate"
	"github.com/katalvlaran/collabgraph/core"
	"github.com/katalvlaran/collabgraph/export"
	"github.com/katalvlaran/collabgraph/merge"
	"github.com/katalvlaran/collabgraph/pipeline"
)

func issueComment(src, dst, issue string) aggregate.Record {
	return aggregate.Record{Source: src, Target: dst, Kind: aggregate.KindComment,
		Subject: issue, SubjectKind: aggregate.SubjectIssue}
}

func prRecord(src, dst string, k aggregate.Kind, pr string) aggregate.Record {
	return aggregate.Record{Source: src, Target: dst, Kind: k,
		Subject: pr, SubjectKind: aggregate.SubjectPullRequest}
}

// fixture covers every kind, one invalid record and one self-interaction.
func fixture() []aggregate.Record {
	return []aggregate.Record{
		issueComment("alice", "bob", "#1"),
		issueComment("alice", "bob", "#1"),
		prRecord("carol", "bob", aggregate.KindComment, "#2"),
		{Source: "alice", Target: "bob", Kind: aggregate.KindClosure, Subject: "#1", SubjectKind: aggregate.SubjectIssue},
		prRecord("carol", "alice", aggregate.KindReview, "#3"),
		prRecord("carol", "alice", aggregate.KindReview, "#3"),
		prRecord("carol", "alice", aggregate.KindMerge, "#3"),
		prRecord("dave", "dave", aggregate.KindMerge, "#4"),
		{Source: "", Target: "bob", Kind: aggregate.KindComment},
	}
}

func newPipeline(t *testing.T, cfg pipeline.Config) (*pipeline.Pipeline, *pipeline.Metrics) {
	t.Helper()
	if cfg.Metrics == nil {
		cfg.Metrics = pipeline.NewMetrics(prometheus.NewRegistry())
	}
	p, err := pipeline.New(cfg)
	require.NoError(t, err)

	return p, cfg.Metrics
}

func TestRun_BuildsEveryCategory(t *testing.T) {
	p, m := newPipeline(t, pipeline.Config{})
	res, err := p.Run(context.Background(), fixture())
	require.NoError(t, err)
	require.NotEmpty(t, res.RunID)
	require.Equal(t, core.RepresentationList, res.Representation)
	require.Equal(t, pipeline.CategoryOrder, res.Categories())

	comments := res.Graphs[core.CategoryComments]
	require.Equal(t, []core.Edge{
		{Source: "alice", Target: "bob", Weight: 2, Type: "comment"},
		{Source: "carol", Target: "bob", Weight: 1, Type: "comment"},
	}, comments.Edges())

	opened := res.Kinds[aggregate.KindIssueOpened]
	require.Equal(t, []core.Edge{
		{Source: "bob", Target: "alice", Weight: 1, Type: "issue_opened"},
	}, opened.Edges())

	reviews := res.Graphs[core.CategoryReviews]
	require.Equal(t, core.CategoryReviews, reviews.Category())
	require.Equal(t, []core.Edge{
		{Source: "carol", Target: "alice", Weight: 3, Type: "merge|review"},
	}, reviews.Edges())
	require.True(t, reviews.HasNode("dave"))

	integrated := res.Graphs[core.CategoryIntegrated]
	require.Equal(t, []string{"alice", "bob", "carol", "dave"}, integrated.Nodes())
	require.Equal(t, []core.Edge{
		{Source: "alice", Target: "bob", Weight: 2 * merge.DefaultCommentWeight, Type: "comment"},
		{Source: "bob", Target: "alice", Weight: merge.DefaultIssueOpenedWeight, Type: "issue_opened"},
		{Source: "carol", Target: "alice", Weight: 2*merge.DefaultReviewWeight + merge.DefaultMergeWeight, Type: "merge|review"},
		{Source: "carol", Target: "bob", Weight: merge.DefaultCommentWeight, Type: "comment"},
	}, integrated.Edges())

	require.Len(t, res.Invalid, 1)
	require.ErrorIs(t, res.Invalid[0], aggregate.ErrInvalidRecord)
	require.Equal(t, 1, res.DroppedSelfLoops())

	require.Equal(t, 7.0, testutil.ToFloat64(m.Records.WithLabelValues("accepted")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Records.WithLabelValues("derived")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Records.WithLabelValues("invalid")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Records.WithLabelValues("self_loop")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.SelfLoops.WithLabelValues("merge")))
	require.Equal(t, 4.0, testutil.ToFloat64(m.Nodes.WithLabelValues("integrated")))
	require.Equal(t, 4.0, testutil.ToFloat64(m.Edges.WithLabelValues("integrated")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("ok")))
}

func TestRun_RepresentationsAgree(t *testing.T) {
	list, _ := newPipeline(t, pipeline.Config{Representation: core.RepresentationList})
	mat, _ := newPipeline(t, pipeline.Config{Representation: core.RepresentationMatrix})

	a, err := list.Run(context.Background(), fixture())
	require.NoError(t, err)
	b, err := mat.Run(context.Background(), fixture())
	require.NoError(t, err)
	require.Equal(t, core.RepresentationMatrix, b.Representation)

	for _, c := range pipeline.CategoryOrder {
		ga, gb := a.Graphs[c], b.Graphs[c]
		require.Equal(t, core.RepresentationMatrix, gb.Representation())
		require.Empty(t, cmp.Diff(ga.Nodes(), gb.Nodes()), c)
		require.Empty(t, cmp.Diff(ga.Edges(), gb.Edges()), c)

		var xa, xb bytes.Buffer
		require.NoError(t, export.WriteGEXF(&xa, ga))
		require.NoError(t, export.WriteGEXF(&xb, gb))
		require.Equal(t, xa.String(), xb.String(), c)
	}
}

func TestRun_ConfigurationErrorKeepsCategoryGraphs(t *testing.T) {
	p, m := newPipeline(t, pipeline.Config{
		Weights: merge.WeightTable{aggregate.KindComment: 2},
	})
	res, err := p.Run(context.Background(), fixture())
	require.ErrorIs(t, err, merge.ErrConfiguration)

	var cerr *merge.ConfigurationError
	require.True(t, errors.As(err, &cerr))
	require.Equal(t, []aggregate.Kind{aggregate.KindIssueOpened, aggregate.KindReview, aggregate.KindMerge}, cerr.Missing)

	require.NotNil(t, res)
	require.Equal(t, []core.Category{core.CategoryComments, core.CategoryClosures, core.CategoryReviews}, res.Categories())
	require.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("config_error")))
}

func TestRun_SharedIssueSubjectOrderIndependent(t *testing.T) {
	records := []aggregate.Record{
		issueComment("carol", "alice", "#1"),
		issueComment("carol", "bob", "#1"),
	}
	reversed := []aggregate.Record{records[1], records[0]}

	var runs [2]*pipeline.Result
	for i, in := range [][]aggregate.Record{records, reversed} {
		p, _ := newPipeline(t, pipeline.Config{})
		res, err := p.Run(context.Background(), in)
		require.NoError(t, err)
		runs[i] = res
	}

	want := []core.Edge{
		{Source: "alice", Target: "carol", Weight: 1, Type: "issue_opened"},
		{Source: "bob", Target: "carol", Weight: 1, Type: "issue_opened"},
	}
	for _, res := range runs {
		require.ElementsMatch(t, want, res.Kinds[aggregate.KindIssueOpened].Edges())
	}
	require.ElementsMatch(t,
		runs[0].Graphs[core.CategoryIntegrated].Edges(),
		runs[1].Graphs[core.CategoryIntegrated].Edges())
}

func TestRun_IssueOpenedInputRejected(t *testing.T) {
	p, m := newPipeline(t, pipeline.Config{})
	res, err := p.Run(context.Background(), []aggregate.Record{
		issueComment("carol", "alice", "#1"),
		{Source: "alice", Target: "carol", Kind: aggregate.KindIssueOpened, Subject: "#1", SubjectKind: aggregate.SubjectIssue},
	})
	require.NoError(t, err)

	require.Len(t, res.Invalid, 1)
	require.ErrorIs(t, res.Invalid[0], aggregate.ErrDerivedKind)
	w, ok := res.Kinds[aggregate.KindIssueOpened].EdgeWeight("alice", "carol")
	require.True(t, ok)
	require.Equal(t, int64(1), w)
	require.Equal(t, 1.0, testutil.ToFloat64(m.Records.WithLabelValues("accepted")))
	require.Equal(t, 1.0, testutil.ToFloat64(m.Records.WithLabelValues("derived")))
}

func TestRun_ClosureWeightIncluded(t *testing.T) {
	w := merge.DefaultWeights()
	w[aggregate.KindClosure] = 1
	p, _ := newPipeline(t, pipeline.Config{Weights: w})

	res, err := p.Run(context.Background(), fixture())
	require.NoError(t, err)
	e, err := res.Graphs[core.CategoryIntegrated].Edge("alice", "bob")
	require.NoError(t, err)
	require.Equal(t, int64(2*2+1), e.Weight)
	require.Equal(t, "closure|comment", e.Type)
}

func TestRun_EmptyInput(t *testing.T) {
	p, _ := newPipeline(t, pipeline.Config{})
	res, err := p.Run(context.Background(), nil)
	require.NoError(t, err)
	for _, c := range pipeline.CategoryOrder {
		require.Equal(t, 0, res.Graphs[c].NodeCount(), c)
	}
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p, m := newPipeline(t, pipeline.Config{})
	res, err := p.Run(ctx, fixture())
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, res)
	require.Equal(t, 1.0, testutil.ToFloat64(m.Runs.WithLabelValues("error")))
}

func TestExport_WritesEveryCategory(t *testing.T) {
	dir := t.TempDir()
	p, _ := newPipeline(t, pipeline.Config{Concurrency: 2})
	res, err := p.Run(context.Background(), fixture())
	require.NoError(t, err)

	files, err := p.Export(context.Background(), res, dir)
	require.NoError(t, err)
	require.Len(t, files, len(pipeline.CategoryOrder))

	require.Equal(t, []string{
		filepath.Join(dir, "graph_4_integrated.gexf"),
		filepath.Join(dir, "graph_4_integrated_nodes.csv"),
		filepath.Join(dir, "graph_4_integrated_edges.csv"),
	}, files[core.CategoryIntegrated].Paths())

	data, err := os.ReadFile(filepath.Join(dir, "graph_3_reviews.gexf"))
	require.NoError(t, err)
	require.Contains(t, string(data), "<creator>collabgraph</creator>")
	require.NotContains(t, string(data), res.RunID)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 4*len(export.DefaultFormats()))
}

func TestExport_DeterministicAcrossRuns(t *testing.T) {
	render := func() []byte {
		dir := t.TempDir()
		p, _ := newPipeline(t, pipeline.Config{Formats: []export.Format{export.FormatGEXF}})
		res, err := p.Run(context.Background(), fixture())
		require.NoError(t, err)
		_, err = p.Export(context.Background(), res, dir)
		require.NoError(t, err)
		data, err := os.ReadFile(filepath.Join(dir, "graph_4_integrated.gexf"))
		require.NoError(t, err)
		return data
	}
	require.Equal(t, render(), render())
}

func TestFileName(t *testing.T) {
	require.Equal(t, "graph_1_comments", pipeline.FileName(core.CategoryComments))
	require.Equal(t, "graph_2_closures", pipeline.FileName(core.CategoryClosures))
	require.Equal(t, "graph_3_reviews", pipeline.FileName(core.CategoryReviews))
	require.Equal(t, "graph_4_integrated", pipeline.FileName(core.CategoryIntegrated))
	require.Equal(t, "graph_issue_opened", pipeline.FileName("issue_opened"))
}

func TestNewFactory(t *testing.T) {
	f, err := pipeline.NewFactory(core.RepresentationMatrix)
	require.NoError(t, err)
	require.Equal(t, core.RepresentationMatrix, f().Representation())

	_, err = pipeline.NewFactory("tree")
	require.ErrorIs(t, err, core.ErrUnknownRepresentation)

	_, err = pipeline.New(pipeline.Config{Representation: "tree"})
	require.ErrorIs(t, err, core.ErrUnknownRepresentation)
}
