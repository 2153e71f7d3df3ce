package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/katalvlaran/maxclique/config"
)

// app carries state shared by every subcommand.
type app struct {
	out    io.Writer
	errOut io.Writer

	configPath  string
	verbose     bool
	seed        int64
	metricsAddr string

	cfg config.Config
	log *logrus.Logger
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:   "maxclique",
		Short: "Exact maximum clique search by LP-based branch and bound",
		Long: `maxclique finds a maximum clique of an undirected graph. A greedy
heuristic seeds the incumbent, then a depth-first branch and bound over the
linear relaxation of the clique formulation proves optimality.

Settings come from built-in defaults, an optional --config file, MAXCLIQUE_*
environment variables and finally command-line flags.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.SetOut(out)
	root.SetErr(errOut)

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "YAML or JSON config file")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging, including solver progress")
	pf.Int64Var(&a.seed, "seed", 0, "seed for every randomized component (overrides config)")
	pf.StringVar(&a.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while running, e.g. :9090")

	root.AddCommand(newSolveCmd(a), newBenchCmd(a), newGenerateCmd(a))

	return root
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = a.seed
	}
	if a.verbose {
		cfg.Log.Level = logrus.DebugLevel.String()
	}
	a.cfg = cfg
	a.log = cfg.Logger()
	a.log.SetOutput(a.errOut)

	return nil
}

// serveMetrics starts the metrics endpoint when --metrics-addr is set and
// returns a function that stops it.
func (a *app) serveMetrics() (func(), error) {
	if a.metricsAddr == "" {
		return func() {}, nil
	}
	ln, err := net.Listen("tcp", a.metricsAddr)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.WithError(err).Error("metrics serving failed")
		}
	}()
	a.log.WithField("addr", ln.Addr().String()).Info("serving metrics")

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}

// newTracerProvider installs a provider that pretty-prints finished spans
// to w.
func newTracerProvider(w io.Writer) (*sdktrace.TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, fmt.Errorf("trace exporter: %w", err)
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(attribute.String("service.name", "maxclique"))),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)

	return tp, nil
}

func (a *app) shutdownTracing(tp *sdktrace.TracerProvider) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := tp.Shutdown(ctx); err != nil {
		a.log.WithError(err).Warn("trace shutdown failed")
	}
}
