// Command maxclique finds maximum cliques in DIMACS graphs by LP-based
// branch and bound.
//
//	maxclique solve brock200_2.clq --time-limit 10m
//	maxclique bench --dir benchmarks --set medium --jobs 4 --out results.csv
//	maxclique generate --kind random --n 60 --p 0.7 --seed 3 > g.clq
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
