// Package config loads solver settings from defaults, an optional YAML file
// and MAXCLIQUE_* environment variables, in that order of precedence.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/maxclique/bnb"
	"github.com/katalvlaran/maxclique/coloring"
	"github.com/katalvlaran/maxclique/heuristic"
	"github.com/katalvlaran/maxclique/relax"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config is the full solver configuration.
type Config struct {
	// Seed drives every randomized component. Zero selects the fixed default.
	Seed int64 `yaml:"seed" json:"seed"`

	Search    SearchConfig    `yaml:"search" json:"search"`
	Model     ModelConfig     `yaml:"model" json:"model"`
	Heuristic HeuristicConfig `yaml:"heuristic" json:"heuristic"`
	Bench     BenchConfig     `yaml:"bench" json:"bench"`
	Log       LogConfig       `yaml:"log" json:"log"`
}

// SearchConfig tunes the branch-and-bound engine.
type SearchConfig struct {
	AbsTol    float64       `yaml:"abs_tol" json:"abs_tol"`
	TimeLimit time.Duration `yaml:"time_limit" json:"time_limit"` // 0 means unlimited
	// RandomBranching is the per-node probability of a weighted random
	// branching pick. Zero keeps the deterministic rule.
	RandomBranching float64 `yaml:"random_branching" json:"random_branching"`
	ProgressEvery   int     `yaml:"progress_every" json:"progress_every"`
}

// ModelConfig tunes the relaxation model.
type ModelConfig struct {
	Cuts          bool     `yaml:"cuts" json:"cuts"`
	CutStrategies []string `yaml:"cut_strategies" json:"cut_strategies"`
	CutTrials     int      `yaml:"cut_trials" json:"cut_trials"`
	MinCutSize    int      `yaml:"min_cut_size" json:"min_cut_size"`
	Integer       bool     `yaml:"integer" json:"integer"`
}

// HeuristicConfig tunes the greedy heuristic.
type HeuristicConfig struct {
	TopK       int      `yaml:"top_k" json:"top_k"`
	Trials     int      `yaml:"trials" json:"trials"`
	Strategies []string `yaml:"strategies" json:"strategies"`
}

// BenchConfig tunes benchmark suites.
type BenchConfig struct {
	Dir  string `yaml:"dir" json:"dir"`
	Jobs int    `yaml:"jobs" json:"jobs"`
}

// LogConfig selects log level and format.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"` // text or json
}

// Default returns the built-in configuration. It mirrors the package
// defaults of relax, heuristic and bnb.
func Default() Config {
	return Config{
		Seed: 1,
		Search: SearchConfig{
			AbsTol:        bnb.DefaultTolerance,
			ProgressEvery: bnb.DefaultProgressEvery,
		},
		Model: ModelConfig{
			Cuts:          true,
			CutStrategies: names(relax.DefaultCutStrategies),
			CutTrials:     relax.DefaultCutTrials,
			MinCutSize:    relax.DefaultMinCutSize,
		},
		Heuristic: HeuristicConfig{
			TopK:       heuristic.DefaultTopK,
			Trials:     heuristic.DefaultTrials,
			Strategies: names(coloring.AllStrategies()),
		},
		Bench: BenchConfig{
			Dir:  "benchmarks",
			Jobs: 1,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func names(ss []coloring.Strategy) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = string(s)
	}

	return out
}

// Load returns Default overlaid with the file at path (skipped when path is
// empty) and then with MAXCLIQUE_* environment variables, and validates the
// result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := loadEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// loadFile decodes YAML, or JSON for .json files, over cfg.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if strings.HasSuffix(path, ".json") {
		if err := json.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("config: parse %s: %w", path, err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	return nil
}

type lookupFunc func(key string) (string, bool)

// loadEnv applies MAXCLIQUE_* overrides. Malformed values wrap
// ErrInvalidConfig.
func loadEnv(cfg *Config, lookup lookupFunc) error {
	var errs []error
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	list := func(key string, dst *[]string) {
		if v, ok := lookup(key); ok {
			*dst = splitList(v)
		}
	}
	parse := func(key string, set func(string) error) {
		v, ok := lookup(key)
		if !ok {
			return
		}
		if err := set(v); err != nil {
			errs = append(errs, fmt.Errorf("%s=%q: %w", key, v, err))
		}
	}

	parse("MAXCLIQUE_SEED", func(v string) (err error) {
		cfg.Seed, err = strconv.ParseInt(v, 10, 64)
		return err
	})
	parse("MAXCLIQUE_ABS_TOL", func(v string) (err error) {
		cfg.Search.AbsTol, err = strconv.ParseFloat(v, 64)
		return err
	})
	parse("MAXCLIQUE_TIME_LIMIT", func(v string) (err error) {
		cfg.Search.TimeLimit, err = time.ParseDuration(v)
		return err
	})
	parse("MAXCLIQUE_RANDOM_BRANCHING", func(v string) (err error) {
		cfg.Search.RandomBranching, err = strconv.ParseFloat(v, 64)
		return err
	})
	parse("MAXCLIQUE_PROGRESS_EVERY", func(v string) (err error) {
		cfg.Search.ProgressEvery, err = strconv.Atoi(v)
		return err
	})
	parse("MAXCLIQUE_CUTS", func(v string) (err error) {
		cfg.Model.Cuts, err = strconv.ParseBool(v)
		return err
	})
	list("MAXCLIQUE_CUT_STRATEGIES", &cfg.Model.CutStrategies)
	parse("MAXCLIQUE_CUT_TRIALS", func(v string) (err error) {
		cfg.Model.CutTrials, err = strconv.Atoi(v)
		return err
	})
	parse("MAXCLIQUE_MIN_CUT_SIZE", func(v string) (err error) {
		cfg.Model.MinCutSize, err = strconv.Atoi(v)
		return err
	})
	parse("MAXCLIQUE_INTEGER", func(v string) (err error) {
		cfg.Model.Integer, err = strconv.ParseBool(v)
		return err
	})
	parse("MAXCLIQUE_HEURISTIC_TOP_K", func(v string) (err error) {
		cfg.Heuristic.TopK, err = strconv.Atoi(v)
		return err
	})
	parse("MAXCLIQUE_HEURISTIC_TRIALS", func(v string) (err error) {
		cfg.Heuristic.Trials, err = strconv.Atoi(v)
		return err
	})
	list("MAXCLIQUE_HEURISTIC_STRATEGIES", &cfg.Heuristic.Strategies)
	str("MAXCLIQUE_BENCH_DIR", &cfg.Bench.Dir)
	parse("MAXCLIQUE_BENCH_JOBS", func(v string) (err error) {
		cfg.Bench.Jobs, err = strconv.Atoi(v)
		return err
	})
	str("MAXCLIQUE_LOG_LEVEL", &cfg.Log.Level)
	str("MAXCLIQUE_LOG_FORMAT", &cfg.Log.Format)

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: environment: %w", ErrInvalidConfig, err)
	}

	return nil
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}

	return out
}

// Validate checks ranges and names. Every error wraps ErrInvalidConfig.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Search.AbsTol > 0 && c.Search.AbsTol < 0.5, "search.abs_tol %g not in (0, 0.5)", c.Search.AbsTol)
	check(c.Search.TimeLimit >= 0, "search.time_limit %s is negative", c.Search.TimeLimit)
	check(c.Search.RandomBranching >= 0 && c.Search.RandomBranching <= 1,
		"search.random_branching %g not in [0, 1]", c.Search.RandomBranching)
	check(c.Search.ProgressEvery >= 0, "search.progress_every %d is negative", c.Search.ProgressEvery)

	if c.Model.Cuts {
		check(len(c.Model.CutStrategies) > 0, "model.cut_strategies is empty")
		check(c.Model.CutTrials >= 1, "model.cut_trials %d < 1", c.Model.CutTrials)
		check(c.Model.MinCutSize >= 2, "model.min_cut_size %d < 2", c.Model.MinCutSize)
	}
	for _, s := range c.Model.CutStrategies {
		_, err := coloring.ParseStrategy(s)
		check(err == nil, "model.cut_strategies: unknown strategy %q", s)
	}

	check(c.Heuristic.TopK >= 1, "heuristic.top_k %d < 1", c.Heuristic.TopK)
	check(c.Heuristic.Trials >= 1, "heuristic.trials %d < 1", c.Heuristic.Trials)
	for _, s := range c.Heuristic.Strategies {
		_, err := coloring.ParseStrategy(s)
		check(err == nil, "heuristic.strategies: unknown strategy %q", s)
	}

	check(c.Bench.Jobs >= 1, "bench.jobs %d < 1", c.Bench.Jobs)

	_, err := logrus.ParseLevel(c.Log.Level)
	check(err == nil, "log.level %q is not a logrus level", c.Log.Level)
	check(c.Log.Format == "text" || c.Log.Format == "json", "log.format %q is not text or json", c.Log.Format)

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}

	return nil
}

// CutStrategies returns the parsed cut strategies. Call after Validate.
func (c Config) CutStrategies() []coloring.Strategy { return parseAll(c.Model.CutStrategies) }

// HeuristicStrategies returns the parsed heuristic strategies. Call after
// Validate.
func (c Config) HeuristicStrategies() []coloring.Strategy { return parseAll(c.Heuristic.Strategies) }

func parseAll(names []string) []coloring.Strategy {
	out := make([]coloring.Strategy, 0, len(names))
	for _, n := range names {
		if s, err := coloring.ParseStrategy(n); err == nil {
			out = append(out, s)
		}
	}

	return out
}

// Logger builds a logrus logger from the Log section. Call after Validate.
func (c Config) Logger() *logrus.Logger {
	l := logrus.New()
	if lvl, err := logrus.ParseLevel(c.Log.Level); err == nil {
		l.SetLevel(lvl)
	}
	if c.Log.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return l
}
