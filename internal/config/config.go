// SPDX-License-Identifier: MIT

// Package config loads gemcat settings from an optional YAML file and
// GEMCAT_* environment variables, in that order of precedence (environment
// wins). Nested keys map to variables by upper-casing and replacing "." with
// "_", e.g. workflow.gene_fill → GEMCAT_WORKFLOW_GENE_FILL.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/katalvlaran/gemcat/adjacency"
	"github.com/katalvlaran/gemcat/expression"
	"github.com/katalvlaran/gemcat/internal/logging"
	"github.com/katalvlaran/gemcat/workflow"
)

const envPrefix = "GEMCAT"

// Config is the root configuration.
type Config struct {
	Log      logging.Config `mapstructure:"log"`
	Workflow Workflow       `mapstructure:"workflow"`
	Models   Models         `mapstructure:"models"`
	Metrics  Metrics        `mapstructure:"metrics"`
}

// Workflow mirrors workflow.Config with plain types for decoding.
type Workflow struct {
	Integration       string  `mapstructure:"integration"`
	Adjacency         string  `mapstructure:"adjacency"`
	GeneFill          float64 `mapstructure:"gene_fill"`
	Reversible        bool    `mapstructure:"reversible"`
	Combine           string  `mapstructure:"combine"`
	ZeroBaseline      string  `mapstructure:"zero_baseline"`
	Damping           float64 `mapstructure:"damping"`
	Tolerance         float64 `mapstructure:"tolerance"`
	MaxIterations     int     `mapstructure:"max_iterations"`
	StrictConvergence bool    `mapstructure:"strict_convergence"`
	StrictIdentifiers bool    `mapstructure:"strict_identifiers"`
	Parallel          bool    `mapstructure:"parallel"`
}

// Models configures the well-known model store.
type Models struct {
	// CacheDir is the store root. Empty means <user cache dir>/gemcat/models.
	CacheDir string `mapstructure:"cache_dir"`
}

// Metrics configures metric export.
type Metrics struct {
	// Textfile, if set, receives the Prometheus text exposition at exit.
	Textfile string `mapstructure:"textfile"`
}

// newViper returns a Viper with the env mapping and every default
// registered. Registering defaults is what makes AutomaticEnv visible to
// Unmarshal for keys absent from the file.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := workflow.DefaultConfig()
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output_paths", []string{"stderr"})
	v.SetDefault("workflow.integration", string(d.Integration))
	v.SetDefault("workflow.adjacency", string(d.Adjacency))
	v.SetDefault("workflow.gene_fill", d.GeneFill)
	v.SetDefault("workflow.reversible", d.Reversible)
	v.SetDefault("workflow.combine", string(d.Combine))
	v.SetDefault("workflow.zero_baseline", string(d.ZeroBaseline))
	v.SetDefault("workflow.damping", d.Damping)
	v.SetDefault("workflow.tolerance", d.Tolerance)
	v.SetDefault("workflow.max_iterations", d.MaxIterations)
	v.SetDefault("workflow.strict_convergence", d.StrictConvergence)
	v.SetDefault("workflow.strict_identifiers", d.StrictIdentifiers)
	v.SetDefault("workflow.parallel", d.Parallel)
	v.SetDefault("models.cache_dir", "")
	v.SetDefault("metrics.textfile", "")

	return v
}

// Load reads path (skipped when empty), applies environment overrides and
// defaults, and validates the result.
func Load(path string) (*Config, error) {
	v := newViper()
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.finalize(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns the configuration Load produces with no file and no
// environment overrides.
func Default() *Config {
	d := workflow.DefaultConfig()
	cfg := &Config{
		Log: logging.Config{Level: "info", Format: "console", OutputPaths: []string{"stderr"}},
		Workflow: Workflow{
			Integration:       string(d.Integration),
			Adjacency:         string(d.Adjacency),
			GeneFill:          d.GeneFill,
			Reversible:        d.Reversible,
			Combine:           string(d.Combine),
			ZeroBaseline:      string(d.ZeroBaseline),
			Damping:           d.Damping,
			Tolerance:         d.Tolerance,
			MaxIterations:     d.MaxIterations,
			StrictConvergence: d.StrictConvergence,
			StrictIdentifiers: d.StrictIdentifiers,
			Parallel:          d.Parallel,
		},
	}
	_ = cfg.finalize()

	return cfg
}

// finalize fills derived defaults and validates.
func (c *Config) finalize() error {
	if c.Models.CacheDir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			base = os.TempDir()
		}
		c.Models.CacheDir = filepath.Join(base, "gemcat", "models")
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.WorkflowConfig(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	return nil
}

// WorkflowConfig converts the decoded section into a validated workflow.Config.
func (c *Config) WorkflowConfig() (workflow.Config, error) {
	w := c.Workflow
	integration, err := expression.ParsePolicy(w.Integration)
	if err != nil {
		return workflow.Config{}, err
	}
	adj, err := adjacency.ParsePolicy(w.Adjacency)
	if err != nil {
		return workflow.Config{}, err
	}
	combine, err := workflow.ParseCombine(w.Combine)
	if err != nil {
		return workflow.Config{}, err
	}
	zero, err := workflow.ParseZeroBaseline(w.ZeroBaseline)
	if err != nil {
		return workflow.Config{}, err
	}

	out := workflow.Config{
		Integration:       integration,
		Adjacency:         adj,
		GeneFill:          w.GeneFill,
		Reversible:        w.Reversible,
		Combine:           combine,
		ZeroBaseline:      zero,
		Damping:           w.Damping,
		Tolerance:         w.Tolerance,
		MaxIterations:     w.MaxIterations,
		StrictConvergence: w.StrictConvergence,
		StrictIdentifiers: w.StrictIdentifiers,
		Parallel:          w.Parallel,
	}

	return out, out.Validate()
}
