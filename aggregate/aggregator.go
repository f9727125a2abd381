// SPDX-License-Identifier: MIT
//
// File: aggregator.go
// Role: Turn a homogeneous record sequence into one simple directed weighted graph.
// Determinism:
//   - Edge weights equal interaction counts per ordered pair; permuting the input
//     never changes edges, weights or tags (addition and tag union commute).
// Concurrency:
//   - An Aggregator holds no mutable state; one Aggregate call owns its graph.
//     Independent categories may be aggregated on separate goroutines.

package aggregate

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/katalvlaran/collabgraph/core"
)

// Config wires an Aggregator.
type Config struct {
	// New creates the empty graph for each Aggregate call. Defaults to core.ListFactory.
	New core.Factory

	// Logger receives per-record debug events and a per-graph summary. Defaults to zap.NewNop().
	Logger *zap.Logger
}

// Report counts what happened to every record of one aggregation.
type Report struct {
	Category         core.Category
	Seen             int
	Accepted         int
	SkippedInvalid   int
	DroppedSelfLoops int

	// Invalid holds one *ValidationError per skipped record, in input order.
	Invalid []error
}

// Add folds o's counters into r. Category is kept.
func (r *Report) Add(o Report) {
	r.Seen += o.Seen
	r.Accepted += o.Accepted
	r.SkippedInvalid += o.SkippedInvalid
	r.DroppedSelfLoops += o.DroppedSelfLoops
	r.Invalid = append(r.Invalid, o.Invalid...)
}

// Aggregator converts interaction records into graphs through the core.Graph contract only.
type Aggregator struct {
	newGraph core.Factory
	log      *zap.Logger
}

// New creates an Aggregator, filling Config defaults.
func New(cfg Config) *Aggregator {
	if cfg.New == nil {
		cfg.New = core.ListFactory
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Aggregator{newGraph: cfg.New, log: cfg.Logger}
}

// Aggregate builds a fresh graph of the given category from records.
//
// Implementation:
//   - Stage 1: Create an empty graph tagged with category.
//   - Stage 2: AggregateInto it.
//
// The graph is only returned after the whole sequence was consumed.
func (a *Aggregator) Aggregate(category core.Category, records []Record) (core.Graph, Report, error) {
	g := a.newGraph(core.WithCategory(category))
	rep, err := a.AggregateInto(g, records)
	if err != nil {
		return nil, rep, err
	}

	return g, rep, nil
}

// AggregateInto adds records to an existing graph under construction.
//
// Per record:
//   - invalid (blank or non-printable endpoint, unknown kind): skipped, counted, error kept in Report.Invalid;
//   - both endpoints registered (idempotent), then AddEdge(source, target, 1) tagged with the kind;
//   - self-interaction: AddEdge rejects it with core.ErrLoopNotAllowed; counted as dropped.
//
// Errors: any other graph error aborts the run and is returned wrapped.
// Complexity: O(n) graph operations.
func (a *Aggregator) AggregateInto(g core.Graph, records []Record) (Report, error) {
	rep := Report{Category: g.Category()}
	var err error
	for _, r := range records {
		rep.Seen++
		if err = r.check(); err != nil {
			rep.SkippedInvalid++
			rep.Invalid = append(rep.Invalid, err)
			a.log.Debug("skipping invalid record", zap.Error(err))
			continue
		}

		if err = g.AddNode(r.Source); err != nil {
			return rep, fmt.Errorf("aggregate: add node %q: %w", r.Source, err)
		}
		if err = g.AddNode(r.Target); err != nil {
			return rep, fmt.Errorf("aggregate: add node %q: %w", r.Target, err)
		}

		_, err = g.AddEdge(r.Source, r.Target, 1, core.WithEdgeType(string(r.Kind)))
		switch {
		case err == nil:
			rep.Accepted++
		case errors.Is(err, core.ErrLoopNotAllowed):
			rep.DroppedSelfLoops++
			a.log.Debug("dropped self-loop",
				zap.String("user", r.Source),
				zap.String("kind", string(r.Kind)))
		default:
			return rep, fmt.Errorf("aggregate: add edge %q->%q: %w", r.Source, r.Target, err)
		}
	}

	a.log.Info("aggregated interactions",
		zap.String("category", string(rep.Category)),
		zap.String("representation", string(g.Representation())),
		zap.Int("records", rep.Seen),
		zap.Int("accepted", rep.Accepted),
		zap.Int("skipped_invalid", rep.SkippedInvalid),
		zap.Int("dropped_self_loops", rep.DroppedSelfLoops),
		zap.Int("nodes", g.NodeCount()),
		zap.Int("edges", g.EdgeCount()))

	return rep, nil
}
