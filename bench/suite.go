package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/maxclique/bnb"
	"github.com/katalvlaran/maxclique/config"
	"github.com/katalvlaran/maxclique/dimacs"
	"github.com/katalvlaran/maxclique/report"
	"github.com/katalvlaran/maxclique/solver"
)

type options struct {
	log      logrus.FieldLogger
	solve    []solver.Option
	onRecord func(report.Record)
}

// Option configures RunSuite.
type Option func(*options)

// WithLogger sets the suite logger. It is also handed to the solver.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithSolverOptions appends options to every solver run. Runs execute
// concurrently, so anything stateful passed here must be safe for
// concurrent use.
func WithSolverOptions(opts ...solver.Option) Option {
	return func(o *options) { o.solve = append(o.solve, opts...) }
}

// OnRecord is called once per finished instance, never concurrently.
func OnRecord(fn func(report.Record)) Option {
	return func(o *options) { o.onRecord = fn }
}

// RunSuite solves each instance, read from dir, with up to cfg.Bench.Jobs
// instances in flight. Records come back in instance order.
//
// Per-instance failures (unreadable file, timeout, solver error) are
// recorded in the instance's record and do not stop the suite. The returned
// error is non-nil only when ctx ends before every instance has run.
func RunSuite(ctx context.Context, dir string, instances []Instance, cfg config.Config, opts ...Option) ([]report.Record, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	o := options{log: l}
	for _, opt := range opts {
		opt(&o)
	}

	records := make([]report.Record, len(instances))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.Bench.Jobs)
	for i, in := range instances {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			rec := runOne(gctx, dir, in, cfg, o)
			records[i] = rec

			mu.Lock()
			defer mu.Unlock()
			o.log.WithFields(logrus.Fields{
				"instance":  in.Name,
				"clique":    rec.CliqueSize,
				"reference": in.Optimum,
				"timed_out": rec.TimedOut,
				"elapsed":   rec.Elapsed,
			}).Info("instance finished")
			if o.onRecord != nil {
				o.onRecord(rec)
			}

			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return records, fmt.Errorf("bench: suite interrupted: %w", err)
	}

	return records, nil
}

func runOne(ctx context.Context, dir string, in Instance, cfg config.Config, o options) report.Record {
	path := filepath.Join(dir, in.Name)
	base := report.Record{RunID: report.NewRunID(), Source: in.Name}
	if in.Known() {
		ref := in.Optimum
		base.Reference = &ref
	}

	dg, err := dimacs.ReadFile(path)
	if err != nil {
		o.log.WithError(err).WithField("instance", in.Name).Error("cannot read instance")
		base.Error = err.Error()
		return base
	}

	sopts := append([]solver.Option{
		solver.WithLogger(o.log.WithField("instance", in.Name)),
		solver.WithSource(in.Name),
	}, o.solve...)
	if in.Known() {
		sopts = append(sopts, solver.WithReference(in.Optimum))
	}

	rec, err := solver.Solve(ctx, dg.Graph, cfg, sopts...)
	if err != nil && !errors.Is(err, bnb.ErrSearchTimedOut) {
		o.log.WithError(err).WithField("instance", in.Name).Error("instance failed")
	}

	return rec
}
