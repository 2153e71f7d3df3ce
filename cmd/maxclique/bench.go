package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/maxclique/bench"
	"github.com/katalvlaran/maxclique/report"
)

func newBenchCmd(a *app) *cobra.Command {
	var (
		search searchFlags
		dir    string
		set    string
		jobs   int
		out    string
	)
	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Run a catalogued DIMACS benchmark set",
		Long: `Solves every instance of a benchmark set found in --dir and writes one
record per instance. Records go to stdout as CSV unless --out names a file;
a .json suffix selects JSON.

Sets: easy, medium, hard, all.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := search.apply(cmd, a.cfg)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("dir") {
				cfg.Bench.Dir = dir
			}
			if cmd.Flags().Changed("jobs") {
				cfg.Bench.Jobs = jobs
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			s, err := bench.ParseSet(set)
			if err != nil {
				return err
			}
			instances, err := bench.Catalog(s)
			if err != nil {
				return err
			}

			stop, err := a.serveMetrics()
			if err != nil {
				return err
			}
			defer stop()

			records, runErr := bench.RunSuite(cmd.Context(), cfg.Bench.Dir, instances, cfg,
				bench.WithLogger(a.log))
			if err := a.writeRecords(out, records); err != nil {
				return err
			}
			if out != "" {
				fmt.Fprintln(a.out, tally(records, out))
			}

			return runErr
		},
	}
	search.register(cmd)
	fl := cmd.Flags()
	fl.StringVar(&dir, "dir", "benchmarks", "directory holding the .clq files")
	fl.StringVar(&set, "set", string(bench.Easy), "benchmark set: easy, medium, hard or all")
	fl.IntVar(&jobs, "jobs", 1, "instances solved concurrently")
	fl.StringVarP(&out, "out", "o", "", "write records to this file (.csv or .json)")

	return cmd
}

func (a *app) writeRecords(path string, records []report.Record) error {
	var w io.Writer = a.out
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("bench: %w", err)
		}
		defer f.Close()
		w = f
	}
	if strings.HasSuffix(path, ".json") {
		return report.WriteJSON(w, records)
	}

	return report.WriteCSV(w, records)
}

func tally(records []report.Record, path string) string {
	var optimal, timedOut, failed int
	for _, r := range records {
		switch {
		case r.Error != "":
			failed++
		case r.TimedOut:
			timedOut++
		case r.Optimal():
			optimal++
		}
	}

	return fmt.Sprintf("%d instances: %d optimal, %d timed out, %d failed; records in %s",
		len(records), optimal, timedOut, failed, path)
}
