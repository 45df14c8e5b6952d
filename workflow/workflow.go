// SPDX-License-Identifier: MIT

package workflow

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/gemcat/adjacency"
	"github.com/katalvlaran/gemcat/expression"
	"github.com/katalvlaran/gemcat/gemerr"
	"github.com/katalvlaran/gemcat/internal/logging"
	"github.com/katalvlaran/gemcat/internal/metrics"
	"github.com/katalvlaran/gemcat/network"
	"github.com/katalvlaran/gemcat/ranking"
)

// Condition names used in logs and metrics.
const (
	BaselineCondition   = "baseline"
	ComparisonCondition = "comparison"
	SingleCondition     = "condition"
)

// ErrDisjointGenes is returned in strict identifier mode when the expression
// data shares no gene with the model.
var ErrDisjointGenes = gemerr.New(gemerr.ErrIdentifierMismatch, "workflow: expression data shares no gene with the model")

// Workflow is a configured pipeline. It holds no per-run state and may be
// used by several goroutines at once.
type Workflow struct {
	cfg        Config
	integrator *expression.Integrator
	transform  adjacency.Transform
	log        logging.Logger
	rec        metrics.Recorder
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithLogger sets the Logger (default: no-op).
func WithLogger(l logging.Logger) Option {
	return func(w *Workflow) {
		if l != nil {
			w.log = l
		}
	}
}

// WithRecorder sets the metrics Recorder (default: no-op).
func WithRecorder(r metrics.Recorder) Option {
	return func(w *Workflow) {
		if r != nil {
			w.rec = r
		}
	}
}

// New validates cfg and resolves its policies.
func New(cfg Config, opts ...Option) (*Workflow, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	// Validate accepts any case; store the canonical names.
	cfg.Integration, _ = expression.ParsePolicy(string(cfg.Integration))
	cfg.Adjacency, _ = adjacency.ParsePolicy(string(cfg.Adjacency))
	ig, err := expression.NewIntegrator(
		expression.WithPolicy(cfg.Integration),
		expression.WithGeneFill(cfg.GeneFill),
	)
	if err != nil {
		return nil, err
	}
	tr, err := adjacency.Lookup(cfg.Adjacency)
	if err != nil {
		return nil, err
	}

	w := &Workflow{
		cfg:        cfg,
		integrator: ig,
		transform:  tr,
		log:        logging.NewNop(),
		rec:        metrics.Noop(),
	}
	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Config returns the configuration the Workflow was built with.
func (w *Workflow) Config() Config { return w.cfg }

// Condition is the outcome of one pipeline pass.
type Condition struct {
	// Name is "baseline", "comparison" or "condition".
	Name string

	// Activity holds one activity per reaction.
	Activity expression.Activity

	// Coverage reports how well the data matched the model genes.
	Coverage expression.Coverage

	// Adjacency is the weighted species graph.
	Adjacency *adjacency.Adjacency

	// Ranking holds the centrality vector.
	Ranking *ranking.Result

	// Elapsed is the wall time of the pass.
	Elapsed time.Duration
}

// Score runs a single condition and returns its centrality.
func (w *Workflow) Score(ctx context.Context, model *network.Model, data expression.GeneExpression) (*Condition, error) {
	if model == nil {
		return nil, ErrNilModel
	}

	return w.score(ctx, SingleCondition, model, data)
}

// Run scores baseline and comparison over model and combines them per the
// configured Combine mode.
func (w *Workflow) Run(ctx context.Context, model *network.Model, baseline, comparison expression.GeneExpression) (*Result, error) {
	if model == nil {
		return nil, ErrNilModel
	}

	var base, comp *Condition
	if w.cfg.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() (err error) {
			base, err = w.score(gctx, BaselineCondition, model, baseline)
			return err
		})
		g.Go(func() (err error) {
			comp, err = w.score(gctx, ComparisonCondition, model, comparison)
			return err
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		var err error
		if base, err = w.score(ctx, BaselineCondition, model, baseline); err != nil {
			return nil, err
		}
		if comp, err = w.score(ctx, ComparisonCondition, model, comparison); err != nil {
			return nil, err
		}
	}

	cmp, err := CompareCentrality(base.Ranking, comp.Ranking, w.cfg.Combine, w.cfg.ZeroBaseline)
	if err != nil {
		return nil, err
	}
	if len(cmp.ZeroBaseline) > 0 {
		w.log.Warn("zero baseline centrality, ratio is undefined",
			logging.Int("species", len(cmp.ZeroBaseline)),
			logging.Strings("ids", head(cmp.ZeroBaseline, 10)))
	}

	return &Result{
		IDs:        cmp.IDs,
		Scores:     cmp.Scores,
		Combine:    w.cfg.Combine,
		Baseline:   base,
		Comparison: comp,
	}, nil
}

// score is one pass of the pipeline.
func (w *Workflow) score(ctx context.Context, name string, model *network.Model, data expression.GeneExpression) (cond *Condition, err error) {
	start := time.Now()
	stop := metrics.Timer(w.rec, name)
	defer func() { stop(err == nil) }()
	log := w.log.With(logging.String("condition", name))

	act, cov, err := w.integrator.Integrate(model, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if cov.Disjoint() {
		w.rec.IdentifierMismatch(name)
		if w.cfg.StrictIdentifiers {
			return nil, fmt.Errorf("%s: %d model genes, %d data genes: %w", name, cov.ModelGenes, cov.DataGenes, ErrDisjointGenes)
		}
		log.Warn("expression data shares no gene with the model, every rule evaluates on the gene fill value",
			logging.Int("model_genes", cov.ModelGenes),
			logging.Int("data_genes", cov.DataGenes),
			logging.Float64("gene_fill", w.cfg.GeneFill))
	} else {
		log.Debug("gene coverage",
			logging.Int("matched", cov.Matched),
			logging.Int("model_genes", cov.ModelGenes),
			logging.Float64("fraction", cov.Fraction()))
	}

	adj, err := w.transform(model, act, adjacency.WithReversible(w.cfg.Reversible))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	rank, err := ranking.PageRank(adj,
		ranking.WithContext(ctx),
		ranking.WithDamping(w.cfg.Damping),
		ranking.WithTolerance(w.cfg.Tolerance),
		ranking.WithMaxIterations(w.cfg.MaxIterations),
		ranking.WithStrict(w.cfg.StrictConvergence),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	w.rec.RankingIterations(name, rank.Iterations, rank.Converged)
	if !rank.Converged {
		log.Warn("ranking did not converge, using last iterate",
			logging.Int("iterations", rank.Iterations),
			logging.Float64("residual", rank.Residual))
	}

	cond = &Condition{
		Name:      name,
		Activity:  act,
		Coverage:  cov,
		Adjacency: adj,
		Ranking:   rank,
		Elapsed:   time.Since(start),
	}
	log.Debug("condition scored",
		logging.Int("species", adj.Len()),
		logging.Int("edges", adj.Edges()),
		logging.Int("iterations", rank.Iterations),
		logging.Duration("elapsed", cond.Elapsed))

	return cond, nil
}

func head(ids []string, n int) []string {
	if len(ids) <= n {
		return ids
	}

	return ids[:n]
}
