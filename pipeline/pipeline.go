// SPDX-License-Identifier: MIT
//
// File: pipeline.go
// Role: End-to-end run: records → per-kind graphs → category graphs → integrated graph → files.
// Concurrency:
//   - Per-kind graphs are built on separate goroutines; each goroutine owns its graph.
//   - Composition starts only after every build finished, so merges read frozen graphs.
//   - Export runs one goroutine per category over read-only graphs.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/collabgraph/aggregate"
	"github.com/katalvlaran/collabgraph/core"
	"github.com/katalvlaran/collabgraph/export"
	"github.com/katalvlaran/collabgraph/merge"
)

// Run statuses.
const (
	statusOK          = "ok"
	statusConfigError = "config_error"
	statusError       = "error"
)

// Creator is written into GEXF metadata.
const Creator = "collabgraph"

// CategoryOrder lists the output categories in export order.
var CategoryOrder = []core.Category{
	core.CategoryComments,
	core.CategoryClosures,
	core.CategoryReviews,
	core.CategoryIntegrated,
}

// FileName returns the base file name of a category graph.
func FileName(c core.Category) string {
	for i, known := range CategoryOrder {
		if c == known {
			return fmt.Sprintf("graph_%d_%s", i+1, c)
		}
	}

	return "graph_" + string(c)
}

var descriptions = map[core.Category]string{
	core.CategoryComments:   "Comments on issues and pull requests (commenter -> author)",
	core.CategoryClosures:   "Issues closed by another user (closer -> author)",
	core.CategoryReviews:    "Pull request reviews and merges (reviewer/merger -> author)",
	core.CategoryIntegrated: "Integrated collaboration graph (weighted sum of all interactions)",
}

// Config wires a Pipeline.
type Config struct {
	// Representation selects the graph backend. Defaults to core.RepresentationList.
	Representation core.Representation

	// Weights are the integrated-graph multipliers. Defaults to merge.DefaultWeights().
	// An incomplete table only fails the integrated graph.
	Weights merge.WeightTable

	// Formats to export. Defaults to export.DefaultFormats().
	Formats []export.Format

	// Concurrency bounds parallel builds and exports. Defaults to one goroutine per kind.
	Concurrency int

	// Logger defaults to zap.NewNop().
	Logger *zap.Logger

	// Metrics defaults to collectors on a private registry.
	Metrics *Metrics
}

// Pipeline builds and exports the collaboration graphs of one record set.
type Pipeline struct {
	cfg      Config
	newGraph core.Factory
	log      *zap.Logger
	metrics  *Metrics
}

// New fills Config defaults and resolves the representation.
// Errors: core.ErrUnknownRepresentation.
func New(cfg Config) (*Pipeline, error) {
	if cfg.Representation == "" {
		cfg.Representation = core.RepresentationList
	}
	if cfg.Weights == nil {
		cfg.Weights = merge.DefaultWeights()
	}
	if len(cfg.Formats) == 0 {
		cfg.Formats = export.DefaultFormats()
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = len(aggregate.Kinds())
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NewMetrics(prometheus.NewRegistry())
	}

	f, err := NewFactory(cfg.Representation)
	if err != nil {
		return nil, err
	}

	return &Pipeline{cfg: cfg, newGraph: f, log: cfg.Logger, metrics: cfg.Metrics}, nil
}

// Result holds everything one Run produced.
type Result struct {
	RunID          string
	Representation core.Representation

	// Kinds holds one graph per interaction kind, issue_opened included.
	Kinds map[aggregate.Kind]core.Graph

	// Graphs holds the category graphs. The integrated graph is absent when
	// the weight table was rejected.
	Graphs map[core.Category]core.Graph

	// Reports holds the aggregation counters per kind.
	Reports map[aggregate.Kind]aggregate.Report

	// Invalid holds one *aggregate.ValidationError per skipped record.
	Invalid []error
}

// Categories returns the categories present in r, in CategoryOrder.
func (r *Result) Categories() []core.Category {
	out := make([]core.Category, 0, len(CategoryOrder))
	for _, c := range CategoryOrder {
		if _, ok := r.Graphs[c]; ok {
			out = append(out, c)
		}
	}

	return out
}

// DroppedSelfLoops sums dropped self-interactions over every kind.
func (r *Result) DroppedSelfLoops() int {
	n := 0
	for _, rep := range r.Reports {
		n += rep.DroppedSelfLoops
	}

	return n
}

// kindCategory labels the per-kind graphs; comment and closure graphs are
// the comments and closures category graphs as-is.
func kindCategory(k aggregate.Kind) core.Category {
	switch k {
	case aggregate.KindComment:
		return core.CategoryComments
	case aggregate.KindClosure:
		return core.CategoryClosures
	default:
		return core.Category(k)
	}
}

// Run builds every graph from records.
//
// Implementation:
//   - Stage 1: Drop invalid records, partition by kind, derive issue_opened records.
//   - Stage 2: Aggregate every kind concurrently.
//   - Stage 3: Compose comments, closures and reviews (review + merge counts).
//   - Stage 4: Merge the integrated graph with the configured weights.
//
// Errors: a *merge.ConfigurationError from Stage 4 is returned wrapped together
// with a Result holding the three category graphs. Any other error returns a nil Result.
func (p *Pipeline) Run(ctx context.Context, records []aggregate.Record) (*Result, error) {
	res := &Result{
		RunID:          uuid.NewString(),
		Representation: p.cfg.Representation,
		Kinds:          make(map[aggregate.Kind]core.Graph),
		Graphs:         make(map[core.Category]core.Graph),
		Reports:        make(map[aggregate.Kind]aggregate.Report),
	}
	log := p.log.With(zap.String("run_id", res.RunID))
	start := time.Now()

	valid, invalid := aggregate.Filter(records)
	res.Invalid = invalid
	p.metrics.Records.WithLabelValues(resultInvalid).Add(float64(len(invalid)))
	for _, err := range invalid {
		log.Warn("skipping invalid record", zap.Error(err))
	}

	parts := aggregate.Partition(valid)
	parts[aggregate.KindIssueOpened] = append(parts[aggregate.KindIssueOpened],
		aggregate.DeriveIssueOpened(parts[aggregate.KindComment])...)

	kinds := aggregate.Kinds()
	graphs := make([]core.Graph, len(kinds))
	reports := make([]aggregate.Report, len(kinds))
	agg := aggregate.New(aggregate.Config{New: p.newGraph, Logger: log})

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(p.cfg.Concurrency)
	for i, k := range kinds {
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			g, rep, err := agg.Aggregate(kindCategory(k), parts[k])
			if err != nil {
				return fmt.Errorf("Run: aggregate %s: %w", k, err)
			}
			graphs[i], reports[i] = g, rep
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		p.metrics.Runs.WithLabelValues(statusError).Inc()
		return nil, err
	}

	for i, k := range kinds {
		res.Kinds[k] = graphs[i]
		res.Reports[k] = reports[i]
		accepted := resultAccepted
		if k.Derived() {
			accepted = resultDerived
		}
		p.metrics.Records.WithLabelValues(accepted).Add(float64(reports[i].Accepted))
		p.metrics.Records.WithLabelValues(resultSelfLoop).Add(float64(reports[i].DroppedSelfLoops))
		p.metrics.SelfLoops.WithLabelValues(string(k)).Add(float64(reports[i].DroppedSelfLoops))
	}

	if err := ctx.Err(); err != nil {
		p.metrics.Runs.WithLabelValues(statusError).Inc()
		return nil, err
	}

	res.Graphs[core.CategoryComments] = res.Kinds[aggregate.KindComment]
	res.Graphs[core.CategoryClosures] = res.Kinds[aggregate.KindClosure]

	counts, err := merge.New(merge.Config{
		Weights:  merge.UnitWeights(aggregate.KindReview, aggregate.KindMerge),
		Required: []aggregate.Kind{},
		New:      p.newGraph,
		Logger:   log,
	})
	if err != nil {
		p.metrics.Runs.WithLabelValues(statusError).Inc()
		return nil, fmt.Errorf("Run: reviews graph: %w", err)
	}
	reviews, err := counts.Merge(core.CategoryReviews,
		merge.Source{Kind: aggregate.KindReview, Graph: res.Kinds[aggregate.KindReview]},
		merge.Source{Kind: aggregate.KindMerge, Graph: res.Kinds[aggregate.KindMerge]})
	if err != nil {
		p.metrics.Runs.WithLabelValues(statusError).Inc()
		return nil, fmt.Errorf("Run: reviews graph: %w", err)
	}
	res.Graphs[core.CategoryReviews] = reviews

	integrated, err := p.integrate(log, res)
	if err != nil {
		p.observe(res)
		var cerr *merge.ConfigurationError
		if errors.As(err, &cerr) {
			p.metrics.Runs.WithLabelValues(statusConfigError).Inc()
			log.Error("integrated graph not built", zap.Error(err))
			return res, fmt.Errorf("Run: integrated graph: %w", err)
		}
		p.metrics.Runs.WithLabelValues(statusError).Inc()
		return nil, fmt.Errorf("Run: integrated graph: %w", err)
	}
	res.Graphs[core.CategoryIntegrated] = integrated
	p.observe(res)
	p.metrics.Runs.WithLabelValues(statusOK).Inc()

	log.Info("run complete",
		zap.String("representation", string(res.Representation)),
		zap.Int("records", len(records)),
		zap.Int("invalid", len(invalid)),
		zap.Int("dropped_self_loops", res.DroppedSelfLoops()),
		zap.Int("integrated_nodes", integrated.NodeCount()),
		zap.Int("integrated_edges", integrated.EdgeCount()),
		zap.Duration("elapsed", time.Since(start)))

	return res, nil
}

func (p *Pipeline) integrate(log *zap.Logger, res *Result) (core.Graph, error) {
	m, err := merge.New(merge.Config{Weights: p.cfg.Weights, New: p.newGraph, Logger: log})
	if err != nil {
		return nil, err
	}
	sources := make([]merge.Source, 0, len(res.Kinds))
	for _, k := range aggregate.Kinds() {
		sources = append(sources, merge.Source{Kind: k, Graph: res.Kinds[k]})
	}

	return m.Merge(core.CategoryIntegrated, sources...)
}

func (p *Pipeline) observe(res *Result) {
	for c, g := range res.Graphs {
		p.metrics.Nodes.WithLabelValues(string(c)).Set(float64(g.NodeCount()))
		p.metrics.Edges.WithLabelValues(string(c)).Set(float64(g.EdgeCount()))
	}
}

// Export writes every category graph of res into dir, one goroutine per graph.
// Errors: the first export error; other graphs may still have been written.
func (p *Pipeline) Export(ctx context.Context, res *Result, dir string) (map[core.Category]export.Files, error) {
	log := p.log.With(zap.String("run_id", res.RunID))
	out := make(map[core.Category]export.Files, len(res.Graphs))
	var mu sync.Mutex

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(p.cfg.Concurrency)
	for _, c := range res.Categories() {
		g := res.Graphs[c]
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			ex := &export.Exporter{
				Dir:    dir,
				GEXF:   []export.GEXFOption{export.WithCreator(Creator), export.WithDescription(descriptions[c])},
				Logger: log,
			}
			start := time.Now()
			files, err := ex.Export(FileName(c), g, p.cfg.Formats...)
			p.metrics.ExportDuration.WithLabelValues(string(c)).Observe(time.Since(start).Seconds())
			if err != nil {
				return fmt.Errorf("Export(%s): %w", c, err)
			}
			mu.Lock()
			out[c] = files
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return out, err
	}

	return out, nil
}
