package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/maxclique/bench"
	"github.com/katalvlaran/maxclique/bnb"
	"github.com/katalvlaran/maxclique/config"
	"github.com/katalvlaran/maxclique/dimacs"
	"github.com/katalvlaran/maxclique/report"
	"github.com/katalvlaran/maxclique/solver"
)

// searchFlags are the engine and model overrides shared by solve and bench.
type searchFlags struct {
	absTol          float64
	timeLimit       time.Duration
	noCuts          bool
	randomBranching float64
}

func (f *searchFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.Float64Var(&f.absTol, "abs-tol", bnb.DefaultTolerance, "absolute tolerance for integrality and bound checks")
	fl.DurationVar(&f.timeLimit, "time-limit", 0, "stop the search after this long and report the best clique (0 = no limit)")
	fl.BoolVar(&f.noCuts, "no-cuts", false, "build the model without independent-set cuts")
	fl.Float64Var(&f.randomBranching, "random-branching", 0, "probability of a weighted random branching choice per node")
}

// apply overlays explicitly set flags on cfg.
func (f *searchFlags) apply(cmd *cobra.Command, cfg config.Config) (config.Config, error) {
	fl := cmd.Flags()
	if fl.Changed("abs-tol") {
		cfg.Search.AbsTol = f.absTol
	}
	if fl.Changed("time-limit") {
		cfg.Search.TimeLimit = f.timeLimit
	}
	if fl.Changed("no-cuts") {
		cfg.Model.Cuts = !f.noCuts
	}
	if fl.Changed("random-branching") {
		cfg.Search.RandomBranching = f.randomBranching
	}

	return cfg, cfg.Validate()
}

func newSolveCmd(a *app) *cobra.Command {
	var (
		search  searchFlags
		asJSON  bool
		tracing bool
	)
	cmd := &cobra.Command{
		Use:   "solve <file.clq>",
		Short: "Find a maximum clique of one DIMACS graph",
		Long: `Reads a DIMACS graph and prints a maximum clique with search statistics.

When --time-limit elapses the best clique found so far is printed together
with a TIME OUT marker and the command still succeeds.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := search.apply(cmd, a.cfg)
			if err != nil {
				return err
			}
			return a.solve(cmd.Context(), args[0], cfg, asJSON, tracing)
		},
	}
	search.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result record as JSON")
	cmd.Flags().BoolVar(&tracing, "trace", false, "print OpenTelemetry spans to stderr")

	return cmd
}

func (a *app) solve(ctx context.Context, path string, cfg config.Config, asJSON, tracing bool) error {
	g, err := dimacs.ReadFile(path)
	if err != nil {
		return err
	}
	name := filepath.Base(path)
	a.log.WithFields(logrus.Fields{
		"source":   name,
		"vertices": g.VertexCount(),
		"edges":    g.EdgeCount(),
	}).Info("graph loaded")
	if desc := g.Description(); desc != "" {
		a.log.Debug(desc)
	}

	opts := []solver.Option{solver.WithLogger(a.log), solver.WithSource(name)}
	if in, ok := bench.Lookup(name); ok && in.Known() {
		opts = append(opts, solver.WithReference(in.Optimum))
	}
	if tracing {
		tp, err := newTracerProvider(a.errOut)
		if err != nil {
			return err
		}
		defer a.shutdownTracing(tp)
		opts = append(opts, solver.WithTracerProvider(tp))
	}
	stop, err := a.serveMetrics()
	if err != nil {
		return err
	}
	defer stop()

	rec, err := solver.Solve(ctx, g.Graph, cfg, opts...)
	interrupted := errors.Is(err, context.Canceled)
	if err != nil && !interrupted && !errors.Is(err, bnb.ErrSearchTimedOut) {
		return err
	}

	if asJSON {
		if werr := report.WriteJSON(a.out, []report.Record{rec}); werr != nil {
			return werr
		}
	} else if _, werr := fmt.Fprint(a.out, report.Summary(rec)); werr != nil {
		return werr
	}
	if interrupted {
		return err
	}

	return nil
}
