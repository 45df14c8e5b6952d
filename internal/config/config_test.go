// SPDX-License-Identifier: MIT

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/gemcat/adjacency"
	"github.com/katalvlaran/gemcat/expression"
	"github.com/katalvlaran/gemcat/gemerr"
	"github.com/katalvlaran/gemcat/internal/config"
	"github.com/katalvlaran/gemcat/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gemcat.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

// TestLoad_Defaults matches workflow.DefaultConfig without file or env.
func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	wf, err := cfg.WorkflowConfig()
	require.NoError(t, err)
	assert.Equal(t, workflow.DefaultConfig(), wf)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NotEmpty(t, cfg.Models.CacheDir)
	assert.Equal(t, config.Default().Workflow, cfg.Workflow)
}

// TestLoad_FileAndEnv: the file overrides defaults and the environment overrides the file.
func TestLoad_FileAndEnv(t *testing.T) {
	path := writeYAML(t, `
log:
  level: debug
workflow:
  integration: average
  adjacency: half
  gene_fill: 0.5
  max_iterations: 250
models:
  cache_dir: /tmp/gemcat-models
metrics:
  textfile: /tmp/gemcat.prom
`)
	t.Setenv("GEMCAT_WORKFLOW_ADJACENCY", "full")
	t.Setenv("GEMCAT_WORKFLOW_STRICT_CONVERGENCE", "true")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	wf, err := cfg.WorkflowConfig()
	require.NoError(t, err)
	assert.Equal(t, expression.Average, wf.Integration)
	assert.Equal(t, adjacency.Full, wf.Adjacency)
	assert.Equal(t, 0.5, wf.GeneFill)
	assert.Equal(t, 250, wf.MaxIterations)
	assert.True(t, wf.StrictConvergence)
	assert.Equal(t, 0.85, wf.Damping)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/gemcat-models", cfg.Models.CacheDir)
	assert.Equal(t, "/tmp/gemcat.prom", cfg.Metrics.Textfile)
}

// TestLoad_Invalid reports configuration errors.
func TestLoad_Invalid(t *testing.T) {
	_, err := config.Load(writeYAML(t, "workflow:\n  adjacency: quarter\n"))
	require.ErrorIs(t, err, adjacency.ErrUnknownPolicy)
	require.ErrorIs(t, err, gemerr.ErrConfiguration)

	_, err = config.Load(writeYAML(t, "workflow:\n  damping: 3\n"))
	require.ErrorIs(t, err, workflow.ErrInvalidConfig)

	_, err = config.Load(writeYAML(t, "log:\n  level: loud\n"))
	require.Error(t, err)

	_, err = config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
