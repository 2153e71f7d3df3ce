package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/maxclique/builder"
	"github.com/katalvlaran/maxclique/config"
	"github.com/katalvlaran/maxclique/core"
	"github.com/katalvlaran/maxclique/dimacs"
	"github.com/katalvlaran/maxclique/report"
)

func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())

	return out.String(), errOut.String(), err
}

func writeGraph(t *testing.T, dir, name string, g *core.Graph) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, dimacs.WriteFile(p, g, name))

	return p
}

func TestSolve_Text(t *testing.T) {
	t.Parallel()
	p := writeGraph(t, t.TempDir(), "k4.clq", builder.MustBuild(nil, builder.Complete(4)))

	out, stderr, err := run(t, "solve", p, "--verbose")
	require.NoError(t, err)
	assert.Contains(t, out, "k4.clq: 4 vertices, 6 edges")
	assert.Contains(t, out, "clique size: 4")
	assert.Contains(t, out, "clique: x1 x2 x3 x4")
	assert.Contains(t, out, "is clique: true")
	assert.NotContains(t, out, "TIME OUT")
	assert.Contains(t, stderr, "graph loaded")
}

func TestSolve_JSON(t *testing.T) {
	t.Parallel()
	p := writeGraph(t, t.TempDir(), "c5.clq", builder.MustBuild(nil, builder.Cycle(5)))

	out, _, err := run(t, "solve", p, "--json", "--seed", "7", "--abs-tol", "1e-5")
	require.NoError(t, err)

	var recs []report.Record
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "c5.clq", recs[0].Source)
	assert.Equal(t, 2, recs[0].CliqueSize)
	assert.True(t, recs[0].IsClique)
}

func TestSolve_CatalogueReference(t *testing.T) {
	t.Parallel()
	p := writeGraph(t, t.TempDir(), "johnson8-2-4.clq", builder.MustBuild(nil, builder.Complete(4)))

	out, _, err := run(t, "solve", p)
	require.NoError(t, err)
	assert.Contains(t, out, "reference optimum: 4")
}

func TestSolve_TimeoutSucceeds(t *testing.T) {
	t.Parallel()
	p := writeGraph(t, t.TempDir(), "e6.clq", builder.MustBuild(nil, builder.Empty(6)))

	out, _, err := run(t, "solve", p, "--no-cuts", "--time-limit", "1ns")
	require.NoError(t, err)
	assert.Contains(t, out, "TIME OUT")
	assert.Contains(t, out, "clique size: 1")
}

func TestSolve_Errors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	p := writeGraph(t, dir, "k3.clq", builder.MustBuild(nil, builder.Complete(3)))

	_, _, err := run(t, "solve")
	assert.Error(t, err)

	_, _, err = run(t, "solve", filepath.Join(dir, "missing.clq"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, _, err = run(t, "solve", p, "--abs-tol", "0.7")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	bad := filepath.Join(dir, "bad.clq")
	require.NoError(t, os.WriteFile(bad, []byte("p edge 3 1\n"), 0o600))
	_, _, err = run(t, "solve", bad)
	assert.ErrorIs(t, err, dimacs.ErrGraphFormat)
}

func TestSolve_ConfigFile(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	p := writeGraph(t, dir, "k3.clq", builder.MustBuild(nil, builder.Complete(3)))

	cfg := filepath.Join(dir, "maxclique.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("model:\n  cuts: false\nlog:\n  format: json\n  level: debug\n"), 0o600))
	out, stderr, err := run(t, "solve", p, "--config", cfg)
	require.NoError(t, err)
	assert.Contains(t, out, "clique size: 3")
	assert.Contains(t, stderr, `"msg":"graph loaded"`)

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("search:\n  abs_tol: -1\n"), 0o600))
	_, _, err = run(t, "solve", p, "--config", broken)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestSolve_Trace(t *testing.T) {
	t.Parallel()
	p := writeGraph(t, t.TempDir(), "k3.clq", builder.MustBuild(nil, builder.Complete(3)))

	_, stderr, err := run(t, "solve", p, "--trace")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"Name": "solver.Solve"`)
	assert.Contains(t, stderr, `"Name": "bnb.Run"`)
}

func TestGenerate(t *testing.T) {
	t.Parallel()
	first, _, err := run(t, "generate", "--kind", "random", "--n", "12", "--p", "0.4", "--seed", "2")
	require.NoError(t, err)
	second, _, err := run(t, "generate", "--kind", "random", "--n", "12", "--p", "0.4", "--seed", "2")
	require.NoError(t, err)
	assert.Equal(t, first, second, "same seed, same graph")

	g, err := dimacs.Read(strings.NewReader(first))
	require.NoError(t, err)
	assert.Equal(t, 12, g.VertexCount())
	assert.Equal(t, "generated by maxclique: kind=random n=12 p=0.4 seed=2", g.Description())

	out := filepath.Join(t.TempDir(), "c5.clq")
	_, _, err = run(t, "generate", "--kind", "cycle", "--n", "5", "-o", out)
	require.NoError(t, err)
	g, err = dimacs.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, 5, g.EdgeCount())

	_, _, err = run(t, "generate", "--kind", "hypercube")
	assert.Error(t, err)
	_, _, err = run(t, "generate", "--kind", "random", "--p", "2")
	assert.ErrorIs(t, err, builder.ErrInvalidProbability)
}

func TestBench(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	// Stand-in for a catalogued instance whose optimum is 4.
	writeGraph(t, dir, "johnson8-2-4.clq", builder.MustBuild(nil, builder.Complete(4)))
	out := filepath.Join(t.TempDir(), "results.csv")

	stdout, _, err := run(t, "bench", "--dir", dir, "--set", "easy", "--jobs", "2", "--out", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "9 instances: 1 optimal, 0 timed out, 8 failed")

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 10)
	assert.Equal(t, report.Header, rows[0])
	assert.Equal(t, "johnson8-2-4.clq", rows[1][1])
	assert.Equal(t, "4", rows[1][5])
}

func TestBench_StdoutAndErrors(t *testing.T) {
	t.Parallel()
	stdout, _, err := run(t, "bench", "--dir", t.TempDir(), "--set", "hard")
	require.NoError(t, err)
	rows, err := csv.NewReader(strings.NewReader(stdout)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 13)

	_, _, err = run(t, "bench", "--set", "legendary")
	assert.Error(t, err)
	_, _, err = run(t, "bench", "--jobs", "0")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}
