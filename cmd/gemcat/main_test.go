// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const toyModel = "../../internal/modelio/testdata/toy.json"

// execute runs the CLI with an isolated cache and log file.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	base := []string{"--models-dir", filepath.Join(dir, "models"), "-l", filepath.Join(dir, "gemcat.log")}
	cmd.SetArgs(append(base, args...))
	err := cmd.ExecuteContext(context.Background())

	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))

	return p
}

// TestRank_ImplicitBaseline scores identical conditions, so every ratio is 1.
func TestRank_ImplicitBaseline(t *testing.T) {
	expr := writeFile(t, "fold.csv", "gene,fold\nHK1,1\nGPI,1\n")

	out, err := execute(t, toyModel, expr)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "metabolite,score,baseline,comparison", lines[0])
	for _, l := range lines[1:] {
		fields := strings.Split(l, ",")
		require.Len(t, fields, 4)
		assert.Equal(t, "1", fields[1], l)
	}
}

// TestRank_DifferenceToTSV writes a tsv file and uses difference scoring.
func TestRank_DifferenceToTSV(t *testing.T) {
	expr := writeFile(t, "expr.tsv", "gene\tcontrol\ttreated\nHK1\t1\t4\nGPI\t1\t0.25\n")
	outPath := filepath.Join(t.TempDir(), "out.tsv")

	stdout, err := execute(t, "-e", "treated", "-b", expr, "-c", "control",
		"--combine", "difference", "--adjacency", "full", "-o", outPath, toyModel, expr)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "metabolite\tscore\tbaseline\tcomparison", lines[0])
}

// TestRank_OutfileCoercedToCSV replaces an unknown extension.
func TestRank_OutfileCoercedToCSV(t *testing.T) {
	expr := writeFile(t, "fold.csv", "gene,fold\nHK1,2\n")
	dir := t.TempDir()

	_, err := execute(t, "-o", filepath.Join(dir, "out.xlsx"), toyModel, expr)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "out.csv"))
}

// TestRank_Errors covers argument, model and table failures.
func TestRank_Errors(t *testing.T) {
	expr := writeFile(t, "two.csv", "gene,a,b\nHK1,1,2\n")

	_, err := execute(t, toyModel)
	require.Error(t, err)

	_, err = execute(t, "no-such-model.json", expr)
	require.Error(t, err)

	_, err = execute(t, toyModel, expr)
	require.Error(t, err, "two value columns need -e")

	_, err = execute(t, "--damping", "1.5", "-e", "a", toyModel, expr)
	require.Error(t, err)

	disjoint := writeFile(t, "other.csv", "gene,v\nNOPE,3\n")
	_, err = execute(t, "--strict-identifiers", toyModel, disjoint)
	require.Error(t, err)
}

// TestModelsList shows the catalog with nothing cached.
func TestModelsList(t *testing.T) {
	out, err := execute(t, "models", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "recon3d")
	assert.Contains(t, out, "ratgem")

	_, err = execute(t, "models", "fetch", "unknown")
	require.Error(t, err)

	_, err = execute(t, "models", "wipe")
	require.NoError(t, err)
}

// TestSubnetworks reports the toy model as one component.
func TestSubnetworks(t *testing.T) {
	out, err := execute(t, "subnetworks", toyModel)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "metabolite,component,size", lines[0])
	for _, l := range lines[1:] {
		assert.True(t, strings.HasSuffix(l, ",0,5"), l)
	}
}
