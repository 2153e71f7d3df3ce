package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/maxclique/coloring"
	"github.com/katalvlaran/maxclique/relax"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))

	return p
}

func mapLookup(m map[string]string) lookupFunc {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, relax.DefaultCutStrategies, cfg.CutStrategies())
	assert.Equal(t, coloring.AllStrategies(), cfg.HeuristicStrategies())
	assert.Zero(t, cfg.Search.TimeLimit)
}

func TestLoad_NoPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	p := writeFile(t, "maxclique.yaml", `
seed: 42
search:
  abs_tol: 0.001
  time_limit: 90s
model:
  cuts: false
  cut_strategies: [largest_first]
heuristic:
  top_k: 3
log:
  level: debug
`)
	cfg, err := Load(p)
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 0.001, cfg.Search.AbsTol)
	assert.Equal(t, 90*time.Second, cfg.Search.TimeLimit)
	assert.False(t, cfg.Model.Cuts)
	assert.Equal(t, []coloring.Strategy{coloring.LargestFirst}, cfg.CutStrategies())
	assert.Equal(t, 3, cfg.Heuristic.TopK)
	assert.Equal(t, "debug", cfg.Log.Level)
	// untouched keys keep their defaults
	assert.Equal(t, Default().Heuristic.Trials, cfg.Heuristic.Trials)
	assert.Equal(t, Default().Model.CutTrials, cfg.Model.CutTrials)
}

func TestLoad_JSON(t *testing.T) {
	p := writeFile(t, "maxclique.json", `{"seed": 7, "bench": {"jobs": 4}}`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Seed)
	assert.Equal(t, 4, cfg.Bench.Jobs)
}

func TestLoad_FileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeFile(t, "bad.yaml", "search: [1, 2"))
	require.Error(t, err)

	_, err = Load(writeFile(t, "invalid.yaml", "search:\n  abs_tol: 0.7\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	p := writeFile(t, "maxclique.yaml", "seed: 42\n")
	t.Setenv("MAXCLIQUE_SEED", "9")
	t.Setenv("MAXCLIQUE_TIME_LIMIT", "1m30s")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, int64(9), cfg.Seed)
	assert.Equal(t, 90*time.Second, cfg.Search.TimeLimit)
}

func TestLoadEnv(t *testing.T) {
	t.Parallel()
	cfg := Default()
	err := loadEnv(&cfg, mapLookup(map[string]string{
		"MAXCLIQUE_ABS_TOL":              "1e-3",
		"MAXCLIQUE_RANDOM_BRANCHING":     "0.25",
		"MAXCLIQUE_PROGRESS_EVERY":       "0",
		"MAXCLIQUE_CUTS":                 "false",
		"MAXCLIQUE_CUT_STRATEGIES":       " largest_first, smallest_last ,",
		"MAXCLIQUE_CUT_TRIALS":           "5",
		"MAXCLIQUE_MIN_CUT_SIZE":         "4",
		"MAXCLIQUE_INTEGER":              "true",
		"MAXCLIQUE_HEURISTIC_TOP_K":      "2",
		"MAXCLIQUE_HEURISTIC_TRIALS":     "10",
		"MAXCLIQUE_HEURISTIC_STRATEGIES": "",
		"MAXCLIQUE_BENCH_DIR":            "/data/dimacs",
		"MAXCLIQUE_BENCH_JOBS":           "8",
		"MAXCLIQUE_LOG_LEVEL":            "warn",
		"MAXCLIQUE_LOG_FORMAT":           "json",
	}))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 1e-3, cfg.Search.AbsTol)
	assert.Equal(t, 0.25, cfg.Search.RandomBranching)
	assert.Equal(t, 0, cfg.Search.ProgressEvery)
	assert.False(t, cfg.Model.Cuts)
	assert.Equal(t, []string{"largest_first", "smallest_last"}, cfg.Model.CutStrategies)
	assert.Equal(t, 5, cfg.Model.CutTrials)
	assert.Equal(t, 4, cfg.Model.MinCutSize)
	assert.True(t, cfg.Model.Integer)
	assert.Equal(t, 2, cfg.Heuristic.TopK)
	assert.Equal(t, 10, cfg.Heuristic.Trials)
	assert.Empty(t, cfg.Heuristic.Strategies)
	assert.Empty(t, cfg.HeuristicStrategies())
	assert.Equal(t, "/data/dimacs", cfg.Bench.Dir)
	assert.Equal(t, 8, cfg.Bench.Jobs)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadEnv_Malformed(t *testing.T) {
	t.Parallel()
	cfg := Default()
	err := loadEnv(&cfg, mapLookup(map[string]string{
		"MAXCLIQUE_SEED":       "abc",
		"MAXCLIQUE_TIME_LIMIT": "soon",
	}))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "MAXCLIQUE_SEED")
	assert.Contains(t, err.Error(), "MAXCLIQUE_TIME_LIMIT")
}

func TestValidate(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"zero tolerance", func(c *Config) { c.Search.AbsTol = 0 }, "abs_tol"},
		{"half tolerance", func(c *Config) { c.Search.AbsTol = 0.5 }, "abs_tol"},
		{"negative time limit", func(c *Config) { c.Search.TimeLimit = -time.Second }, "time_limit"},
		{"branching probability", func(c *Config) { c.Search.RandomBranching = 1.5 }, "random_branching"},
		{"negative progress", func(c *Config) { c.Search.ProgressEvery = -1 }, "progress_every"},
		{"no cut strategies", func(c *Config) { c.Model.CutStrategies = nil }, "cut_strategies"},
		{"unknown cut strategy", func(c *Config) { c.Model.CutStrategies = []string{"rainbow"} }, "rainbow"},
		{"cut trials", func(c *Config) { c.Model.CutTrials = 0 }, "cut_trials"},
		{"min cut size", func(c *Config) { c.Model.MinCutSize = 1 }, "min_cut_size"},
		{"top k", func(c *Config) { c.Heuristic.TopK = 0 }, "top_k"},
		{"heuristic trials", func(c *Config) { c.Heuristic.Trials = 0 }, "heuristic.trials"},
		{"unknown heuristic strategy", func(c *Config) { c.Heuristic.Strategies = []string{"x"} }, "heuristic.strategies"},
		{"jobs", func(c *Config) { c.Bench.Jobs = 0 }, "bench.jobs"},
		{"log level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestValidate_CutSettingsIgnoredWithoutCuts(t *testing.T) {
	t.Parallel()
	cfg := Default()
	cfg.Model.Cuts = false
	cfg.Model.CutStrategies = nil
	cfg.Model.CutTrials = 0
	assert.NoError(t, cfg.Validate())
}

func TestLogger(t *testing.T) {
	t.Parallel()
	cfg := Default()
	cfg.Log.Level, cfg.Log.Format = "debug", "json"
	l := cfg.Logger()
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)

	l = Default().Logger()
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, l.Formatter)
}
