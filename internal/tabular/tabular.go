// SPDX-License-Identifier: MIT

// Package tabular reads expression tables and writes ranked results as
// delimited text.
//
// Expression tables have a header row. The first column holds gene
// identifiers; every other column is one condition. Comma and tab
// delimiters are detected from the header line.
package tabular

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/katalvlaran/gemcat/expression"
	"github.com/katalvlaran/gemcat/gemerr"
	"github.com/katalvlaran/gemcat/workflow"
)

// Sentinel errors.
var (
	// ErrNoColumn is returned when the requested column is not in the header.
	ErrNoColumn = gemerr.New(gemerr.ErrInvalidInput, "tabular: column not found")

	// ErrColumnRequired is returned when no column is named and the table has several.
	ErrColumnRequired = gemerr.New(gemerr.ErrInvalidInput, "tabular: table has several value columns, name one")

	// ErrDuplicateGene is returned when a gene identifier repeats.
	ErrDuplicateGene = gemerr.New(gemerr.ErrInvalidInput, "tabular: duplicate gene identifier")

	// ErrBadNumber is returned for a cell that is not a number.
	ErrBadNumber = gemerr.New(gemerr.ErrInvalidInput, "tabular: not a number")

	// ErrEmpty is returned for a table without a header or value column.
	ErrEmpty = gemerr.New(gemerr.ErrInvalidInput, "tabular: empty table")

	// ErrExtension is returned for an expression file that is not .csv, .tsv or .txt.
	ErrExtension = gemerr.New(gemerr.ErrInvalidInput, "tabular: unsupported expression file extension")
)

// ReadExpressionFile opens path and reads column from it.
func ReadExpressionFile(path, column string) (expression.GeneExpression, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
	default:
		return nil, fmt.Errorf("%q: %w", path, ErrExtension)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("tabular: %w", err)
	}
	defer f.Close()

	data, err := ReadExpression(f, column)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return data, nil
}

// ReadExpression reads one value column keyed by the first column. With an
// empty column name the table must have exactly one value column. Empty
// cells are skipped, so those genes fall back to the gene fill value.
func ReadExpression(r io.Reader, column string) (expression.GeneExpression, error) {
	br := bufio.NewReader(r)
	header, err := br.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("tabular: %w", err)
	}
	if strings.TrimSpace(header) == "" {
		return nil, ErrEmpty
	}

	cr := csv.NewReader(io.MultiReader(strings.NewReader(header), br))
	cr.Comma = sniff(header)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("tabular: header: %w", err)
	}
	col, err := selectColumn(head, column)
	if err != nil {
		return nil, err
	}

	out := make(expression.GeneExpression)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("tabular: %w", err)
		}
		line, _ := cr.FieldPos(0)
		gene := strings.TrimSpace(rec[0])
		if gene == "" {
			continue
		}
		if _, dup := out[gene]; dup {
			return nil, fmt.Errorf("line %d gene %q: %w", line, gene, ErrDuplicateGene)
		}
		if col >= len(rec) || strings.TrimSpace(rec[col]) == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[col]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d gene %q value %q: %w", line, gene, rec[col], ErrBadNumber)
		}
		out[gene] = v
	}

	return out, nil
}

// sniff picks tab when the header has more tabs than commas.
func sniff(header string) rune {
	if strings.Count(header, "\t") > strings.Count(header, ",") {
		return '\t'
	}

	return ','
}

func selectColumn(head []string, column string) (int, error) {
	if len(head) < 2 {
		return 0, fmt.Errorf("header %q: %w", strings.Join(head, ","), ErrEmpty)
	}
	if column == "" {
		if len(head) > 2 {
			return 0, fmt.Errorf("columns %q: %w", head[1:], ErrColumnRequired)
		}
		return 1, nil
	}
	for i := 1; i < len(head); i++ {
		if strings.TrimSpace(head[i]) == column {
			return i, nil
		}
	}

	return 0, fmt.Errorf("%q not in %q: %w", column, head[1:], ErrNoColumn)
}

// OutputPath returns the path results should be written to and its
// delimiter. Extensions other than .csv and .tsv are replaced by .csv;
// changed reports that replacement so the caller can warn.
func OutputPath(path string) (out string, delim rune, changed bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return path, ',', false
	case ".tsv":
		return path, '\t', false
	default:
		return strings.TrimSuffix(path, filepath.Ext(path)) + ".csv", ',', true
	}
}

// WriteResults writes one row per entry with a header.
func WriteResults(w io.Writer, entries []workflow.Entry, delim rune) error {
	cw := csv.NewWriter(w)
	cw.Comma = delim
	if err := cw.Write([]string{"metabolite", "score", "baseline", "comparison"}); err != nil {
		return fmt.Errorf("tabular: %w", err)
	}
	for _, e := range entries {
		rec := []string{e.ID, formatFloat(e.Score), formatFloat(e.Baseline), formatFloat(e.Comparison)}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("tabular: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("tabular: %w", err)
	}

	return nil
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
