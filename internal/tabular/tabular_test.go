// SPDX-License-Identifier: MIT

package tabular_test

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/gemcat/expression"
	"github.com/katalvlaran/gemcat/internal/tabular"
	"github.com/katalvlaran/gemcat/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestReadExpression_CSVAndTSV detects the delimiter and selects by name.
func TestReadExpression_CSVAndTSV(t *testing.T) {
	csvData := "gene,control,treated\nHK1,1.0,2.5\nGPI,0.8,\nPFKL,1,0.25\n"
	got, err := tabular.ReadExpression(strings.NewReader(csvData), "treated")
	require.NoError(t, err)
	assert.Equal(t, expression.GeneExpression{"HK1": 2.5, "PFKL": 0.25}, got)

	tsvData := "gene\tfold\nHK1\t3\nGPI\t0.5"
	got, err = tabular.ReadExpression(strings.NewReader(tsvData), "")
	require.NoError(t, err)
	assert.Equal(t, expression.GeneExpression{"HK1": 3, "GPI": 0.5}, got)
}

// TestReadExpression_Errors covers column selection and cell failures.
func TestReadExpression_Errors(t *testing.T) {
	multi := "gene,a,b\nx,1,2\n"
	_, err := tabular.ReadExpression(strings.NewReader(multi), "")
	require.ErrorIs(t, err, tabular.ErrColumnRequired)

	_, err = tabular.ReadExpression(strings.NewReader(multi), "c")
	require.ErrorIs(t, err, tabular.ErrNoColumn)

	_, err = tabular.ReadExpression(strings.NewReader("gene,a\nx,1\nx,2\n"), "a")
	require.ErrorIs(t, err, tabular.ErrDuplicateGene)

	_, err = tabular.ReadExpression(strings.NewReader("gene,a\nx,high\n"), "a")
	require.ErrorIs(t, err, tabular.ErrBadNumber)

	_, err = tabular.ReadExpression(strings.NewReader(""), "")
	require.ErrorIs(t, err, tabular.ErrEmpty)

	_, err = tabular.ReadExpression(strings.NewReader("gene\nx\n"), "")
	require.ErrorIs(t, err, tabular.ErrEmpty)
}

// TestReadExpressionFile checks extension filtering.
func TestReadExpressionFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "expr.tsv")
	require.NoError(t, os.WriteFile(good, []byte("gene\tv\ng1\t2\n"), 0o600))

	got, err := tabular.ReadExpressionFile(good, "v")
	require.NoError(t, err)
	assert.Equal(t, expression.GeneExpression{"g1": 2}, got)

	_, err = tabular.ReadExpressionFile(filepath.Join(dir, "expr.xlsx"), "v")
	require.ErrorIs(t, err, tabular.ErrExtension)

	_, err = tabular.ReadExpressionFile(filepath.Join(dir, "absent.csv"), "v")
	require.Error(t, err)
}

// TestOutputPath coerces unknown extensions to csv.
func TestOutputPath(t *testing.T) {
	p, d, changed := tabular.OutputPath("out/results.tsv")
	assert.Equal(t, "out/results.tsv", p)
	assert.Equal(t, '\t', d)
	assert.False(t, changed)

	p, d, changed = tabular.OutputPath("out/results.xlsx")
	assert.Equal(t, "out/results.csv", p)
	assert.Equal(t, ',', d)
	assert.True(t, changed)
}

// TestWriteResults renders header and rows including non-finite scores.
func TestWriteResults(t *testing.T) {
	var buf bytes.Buffer
	err := tabular.WriteResults(&buf, []workflow.Entry{
		{ID: "atp_c", Score: 1.5, Baseline: 0.2, Comparison: 0.3},
		{ID: "x", Score: math.NaN()},
	}, '\t')
	require.NoError(t, err)
	assert.Equal(t, "metabolite\tscore\tbaseline\tcomparison\natp_c\t1.5\t0.2\t0.3\nx\tNaN\t0\t0\n", buf.String())
}
