// SPDX-License-Identifier: MIT

package aggregate_test

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/katalvlaran/collabgraph/aggregate"
	"github.com/katalvlaran/collabgraph/core"
	"github.com/katalvlaran/collabgraph/matrix"
)

func rec(src, dst string, k aggregate.Kind) aggregate.Record {
	return aggregate.Record{Source: src, Target: dst, Kind: k}
}

var factories = map[string]core.Factory{
	"list":   core.ListFactory,
	"matrix": matrix.Factory,
}

func TestAggregate_CountsPerOrderedPair(t *testing.T) {
	records := []aggregate.Record{
		rec("alice", "bob", aggregate.KindComment),
		rec("alice", "bob", aggregate.KindComment),
		rec("bob", "alice", aggregate.KindComment),
		rec("carol", "bob", aggregate.KindComment),
	}
	for name, f := range factories {
		t.Run(name, func(t *testing.T) {
			g, rep, err := aggregate.New(aggregate.Config{New: f}).Aggregate(core.CategoryComments, records)
			require.NoError(t, err)
			require.Equal(t, core.CategoryComments, g.Category())

			w, ok := g.EdgeWeight("alice", "bob")
			require.True(t, ok)
			require.Equal(t, int64(2), w)
			w, ok = g.EdgeWeight("bob", "alice")
			require.True(t, ok)
			require.Equal(t, int64(1), w)
			require.Equal(t, 3, g.EdgeCount())
			require.Equal(t, []string{"alice", "bob", "carol"}, g.Nodes())

			e, err := g.Edge("carol", "bob")
			require.NoError(t, err)
			require.Equal(t, "comment", e.Type)

			require.Equal(t, aggregate.Report{Category: core.CategoryComments, Seen: 4, Accepted: 4}, rep)
		})
	}
}

func TestAggregate_Commutative(t *testing.T) {
	users := []string{"alice", "bob", "carol", "dave", "erin"}
	kinds := []aggregate.Kind{aggregate.KindReview, aggregate.KindMerge}
	rng := rand.New(rand.NewSource(42))
	records := make([]aggregate.Record, 300)
	for i := range records {
		records[i] = rec(users[rng.Intn(len(users))], users[rng.Intn(len(users))], kinds[rng.Intn(len(kinds))])
	}
	shuffled := append([]aggregate.Record(nil), records...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

	agg := aggregate.New(aggregate.Config{})
	a, ra, err := agg.Aggregate(core.CategoryReviews, records)
	require.NoError(t, err)
	b, rb, err := agg.Aggregate(core.CategoryReviews, shuffled)
	require.NoError(t, err)

	require.True(t, core.Equal(a, b))
	require.Equal(t, ra.DroppedSelfLoops, rb.DroppedSelfLoops)
	require.Equal(t, ra.Accepted, rb.Accepted)
}

func TestAggregate_SelfInteractionDropped(t *testing.T) {
	records := []aggregate.Record{
		rec("alice", "alice", aggregate.KindClosure),
		rec("bob", "alice", aggregate.KindClosure),
		rec("bob", "bob", aggregate.KindClosure),
	}
	for name, f := range factories {
		t.Run(name, func(t *testing.T) {
			g, rep, err := aggregate.New(aggregate.Config{New: f}).Aggregate(core.CategoryClosures, records)
			require.NoError(t, err)
			require.Equal(t, 2, rep.DroppedSelfLoops)
			require.Equal(t, 1, rep.Accepted)
			require.Equal(t, 2, g.Stats().DroppedSelfLoops)

			// endpoints of a dropped loop are still registered
			require.True(t, g.HasNode("alice"))
			for _, id := range g.Nodes() {
				require.False(t, g.HasEdge(id, id))
			}
		})
	}
}

func TestAggregate_InvalidRecordsSkipped(t *testing.T) {
	obsCore, logs := observer.New(zap.DebugLevel)
	agg := aggregate.New(aggregate.Config{Logger: zap.New(obsCore)})

	records := []aggregate.Record{
		rec("", "bob", aggregate.KindComment),
		rec("alice", "  ", aggregate.KindComment),
		rec("alice", "bob", "like"),
		rec("alice", "bob", aggregate.KindComment),
	}
	g, rep, err := agg.Aggregate(core.CategoryComments, records)
	require.NoError(t, err)
	require.Equal(t, 1, g.EdgeCount())
	require.Equal(t, 3, rep.SkippedInvalid)
	require.Len(t, rep.Invalid, 3)

	var verr *aggregate.ValidationError
	require.True(t, errors.As(rep.Invalid[0], &verr))
	require.Equal(t, "Source", verr.Field)
	require.ErrorIs(t, rep.Invalid[2], aggregate.ErrInvalidRecord)

	require.Equal(t, 3, logs.FilterMessage("skipping invalid record").Len())
	summary := logs.FilterMessage("aggregated interactions").All()
	require.Len(t, summary, 1)
	require.Equal(t, int64(3), summary[0].ContextMap()["skipped_invalid"])
}

func TestReport_Add(t *testing.T) {
	r := aggregate.Report{Category: "x", Seen: 1, Accepted: 1}
	r.Add(aggregate.Report{Seen: 3, Accepted: 1, SkippedInvalid: 1, DroppedSelfLoops: 1, Invalid: []error{aggregate.ErrInvalidRecord}})
	require.Equal(t, aggregate.Report{
		Category: "x", Seen: 4, Accepted: 2, SkippedInvalid: 1, DroppedSelfLoops: 1,
		Invalid: []error{aggregate.ErrInvalidRecord},
	}, r)
}
