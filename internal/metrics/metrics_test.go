// SPDX-License-Identifier: MIT

package metrics_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/katalvlaran/gemcat/internal/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestPrometheus_Textfile records every metric and checks the exported text.
func TestPrometheus_Textfile(t *testing.T) {
	p := metrics.NewPrometheus()
	done := metrics.Timer(p, "baseline")
	done(true)
	p.ConditionDone("comparison", false, 20*time.Millisecond)
	p.RankingIterations("baseline", 42, true)
	p.IdentifierMismatch("comparison")

	families, err := p.Registry().Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{
		"gemcat_condition_runs_total",
		"gemcat_condition_seconds",
		"gemcat_ranking_iterations",
		"gemcat_identifier_mismatch_total",
	}, names)

	path := filepath.Join(t.TempDir(), "gemcat.prom")
	require.NoError(t, p.WriteTextfile(path))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(raw)
	assert.Contains(t, text, `gemcat_condition_runs_total{condition="baseline",success="true"} 1`)
	assert.Contains(t, text, `gemcat_condition_runs_total{condition="comparison",success="false"} 1`)
	assert.Contains(t, text, `gemcat_identifier_mismatch_total{condition="comparison"} 1`)
	assert.Contains(t, text, `gemcat_ranking_iterations_sum{condition="baseline",converged="true"} 42`)
}

// TestPrometheus_WriteTextfileError surfaces an unwritable path.
func TestPrometheus_WriteTextfileError(t *testing.T) {
	p := metrics.NewPrometheus()
	require.Error(t, p.WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom")))
}

// TestNoop accepts every call.
func TestNoop(t *testing.T) {
	r := metrics.Noop()
	r.ConditionDone("x", true, time.Second)
	r.RankingIterations("x", 1, false)
	r.IdentifierMismatch("x")
	metrics.Timer(r, "x")(false)
}
