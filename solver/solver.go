// Package solver runs the full maximum-clique pipeline on one graph: greedy
// heuristic, relaxation model, branch-and-bound, validation. It turns a
// config.Config into the option sets of the underlying packages and reports
// the run as a report.Record.
package solver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/katalvlaran/maxclique/bnb"
	"github.com/katalvlaran/maxclique/config"
	"github.com/katalvlaran/maxclique/core"
	"github.com/katalvlaran/maxclique/heuristic"
	"github.com/katalvlaran/maxclique/internal/rng"
	"github.com/katalvlaran/maxclique/relax"
	"github.com/katalvlaran/maxclique/report"
)

// TracerName is the instrumentation name of the solver's spans.
const TracerName = "maxclique.solver"

// Random streams derived from config.Config.Seed.
const (
	streamHeuristic uint64 = iota + 1
	streamCuts
	streamBranching
)

type options struct {
	log       logrus.FieldLogger
	source    string
	reference *int
	oracle    relax.Oracle
	observer  bnb.Observer
	tracer    trace.Tracer
}

// Option configures Solve.
type Option func(*options)

// WithLogger sets the logger handed to every stage.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithSource names the graph in the record, typically its file name.
func WithSource(name string) Option { return func(o *options) { o.source = name } }

// WithReference attaches a known optimum to the record.
func WithReference(size int) Option {
	return func(o *options) { o.reference = &size }
}

// WithOracle replaces the relaxation oracle (default: relax.SimplexOracle).
func WithOracle(or relax.Oracle) Option {
	return func(o *options) {
		if or != nil {
			o.oracle = or
		}
	}
}

// WithObserver installs branch-and-bound hooks.
func WithObserver(obs bnb.Observer) Option {
	return func(o *options) { o.observer = obs }
}

// WithTracerProvider takes spans from tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		if tp != nil {
			o.tracer = tp.Tracer(TracerName)
		}
	}
}

func discard() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)

	return l
}

// Solve finds a maximum clique of g under cfg.
//
// On timeout the record holds the incumbent with TimedOut set and the error
// matches bnb.ErrSearchTimedOut. Any other failure returns the partially
// filled record with Error set.
func Solve(ctx context.Context, g *core.Graph, cfg config.Config, opts ...Option) (rec report.Record, err error) {
	if g == nil {
		return report.Record{}, core.ErrNilGraph
	}
	if err := cfg.Validate(); err != nil {
		return report.Record{}, err
	}
	o := options{
		log:    discard(),
		oracle: relax.NewSimplexOracle(),
		tracer: otel.Tracer(TracerName),
	}
	for _, opt := range opts {
		opt(&o)
	}

	rec = report.Record{
		RunID:     report.NewRunID(),
		Source:    o.source,
		Vertices:  g.VertexCount(),
		Edges:     g.EdgeCount(),
		Reference: o.reference,
	}
	log := o.log.WithFields(logrus.Fields{"run_id": rec.RunID, "source": rec.Source})

	ctx, span := o.tracer.Start(ctx, "solver.Solve", trace.WithAttributes(
		attribute.String("maxclique.run_id", rec.RunID),
		attribute.String("maxclique.source", rec.Source),
		attribute.Int("maxclique.vertices", rec.Vertices),
		attribute.Int("maxclique.edges", rec.Edges),
	))
	start := time.Now()
	defer func() {
		rec.Elapsed = time.Since(start)
		span.SetAttributes(
			attribute.Int("maxclique.heuristic_size", rec.HeuristicSize),
			attribute.Int("maxclique.clique_size", rec.CliqueSize),
			attribute.Int("maxclique.calls", rec.Calls),
			attribute.Bool("maxclique.timed_out", rec.TimedOut),
		)
		switch {
		case err == nil:
			span.SetStatus(codes.Ok, "")
		case errors.Is(err, bnb.ErrSearchTimedOut):
			span.AddEvent("time limit reached")
			span.SetStatus(codes.Ok, "")
		default:
			rec.Error = err.Error()
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	initial, err := runHeuristic(ctx, g, cfg, o, log)
	if err != nil {
		return rec, err
	}
	rec.HeuristicSize = len(initial)

	model, err := buildModel(ctx, g, cfg, o, log)
	if err != nil {
		return rec, err
	}

	engineOpts := []bnb.Option{
		bnb.WithTolerance(cfg.Search.AbsTol),
		bnb.WithTimeLimit(cfg.Search.TimeLimit),
		bnb.WithProgressEvery(cfg.Search.ProgressEvery),
		bnb.WithLogger(log),
	}
	if cfg.Search.RandomBranching > 0 {
		engineOpts = append(engineOpts, bnb.WithRandomBranching(cfg.Search.RandomBranching, rng.DeriveSeed(cfg.Seed, streamBranching)))
	}
	if o.observer != nil {
		engineOpts = append(engineOpts, bnb.WithObserver(o.observer))
	}
	eng, err := bnb.New(model, g, heuristic.Solution(initial, g.VertexCount()), engineOpts...)
	if err != nil {
		return rec, fmt.Errorf("solver: %w", err)
	}

	_, bnbSpan := o.tracer.Start(ctx, "bnb.Run")
	res, err := eng.Run(ctx)
	bnbSpan.SetAttributes(attribute.Int("maxclique.max_depth", res.Stats.MaxDepth))
	bnbSpan.End()

	rec.CliqueSize = res.Value
	rec.Clique = res.Clique
	rec.IsClique = core.IsClique(g, res.Clique)
	rec.TimedOut = res.TimedOut
	rec.Calls = res.Stats.Calls
	rec.MaxDepth = res.Stats.MaxDepth

	fields := logrus.Fields{
		"heuristic": rec.HeuristicSize,
		"clique":    rec.CliqueSize,
		"calls":     rec.Calls,
		"max_depth": rec.MaxDepth,
	}
	switch {
	case errors.Is(err, bnb.ErrSearchTimedOut):
		log.WithFields(fields).Warn("search timed out")
		return rec, err
	case err != nil:
		return rec, fmt.Errorf("solver: %w", err)
	}
	log.WithFields(fields).Info("maximum clique found")

	return rec, nil
}

func runHeuristic(ctx context.Context, g *core.Graph, cfg config.Config, o options, log logrus.FieldLogger) ([]int, error) {
	_, span := o.tracer.Start(ctx, "heuristic.FindClique")
	defer span.End()

	clique, err := heuristic.FindClique(g,
		heuristic.WithSeed(rng.DeriveSeed(cfg.Seed, streamHeuristic)),
		heuristic.WithTopK(cfg.Heuristic.TopK),
		heuristic.WithTrials(cfg.Heuristic.Trials),
		heuristic.WithStrategies(cfg.HeuristicStrategies()...),
		heuristic.WithLogger(log),
	)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("solver: heuristic: %w", err)
	}
	span.SetAttributes(attribute.Int("maxclique.size", len(clique)))
	log.WithField("size", len(clique)).Debug("heuristic clique")

	return clique, nil
}

func buildModel(ctx context.Context, g *core.Graph, cfg config.Config, o options, log logrus.FieldLogger) (*relax.Model, error) {
	_, span := o.tracer.Start(ctx, "relax.Build")
	defer span.End()

	mopts := []relax.ModelOption{
		relax.WithSeed(rng.DeriveSeed(cfg.Seed, streamCuts)),
		relax.WithLogger(log),
	}
	if cfg.Model.Cuts {
		mopts = append(mopts,
			relax.WithCutStrategies(cfg.CutStrategies()...),
			relax.WithCutTrials(cfg.Model.CutTrials),
			relax.WithMinCutSize(cfg.Model.MinCutSize),
		)
	} else {
		mopts = append(mopts, relax.WithoutCuts())
	}
	if cfg.Model.Integer {
		mopts = append(mopts, relax.WithIntegerVariables())
	}

	m := relax.NewModel(o.oracle, mopts...)
	if err := m.Build(g); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("solver: model: %w", err)
	}
	st := m.Stats()
	span.SetAttributes(
		attribute.Int("maxclique.cuts", st.Cuts),
		attribute.Int("maxclique.complement_edges", st.ComplementEdges),
	)

	return m, nil
}
