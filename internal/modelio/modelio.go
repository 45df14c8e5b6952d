// SPDX-License-Identifier: MIT

// Package modelio reads genome-scale model files into a network.Model.
//
// Supported formats, chosen by file extension:
//
//	.json        COBRA JSON (cobrapy / BiGG export)
//	.xml, .sbml  SBML Level 3 with the FBC v2 package
//
// MATLAB .mat files are recognised and rejected with ErrUnsupportedFormat.
package modelio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/katalvlaran/gemcat/gemerr"
	"github.com/katalvlaran/gemcat/network"
)

// Sentinel errors.
var (
	// ErrUnsupportedFormat is returned for an extension no reader handles.
	ErrUnsupportedFormat = gemerr.New(gemerr.ErrInvalidInput, "modelio: unsupported model format")

	// ErrMalformed is returned when a file decodes but does not describe a model.
	ErrMalformed = gemerr.New(gemerr.ErrStructural, "modelio: malformed model file")
)

// Format names a model file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatSBML Format = "sbml"
	FormatMAT  Format = "mat"
)

// FormatOf infers the format from path's extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".xml", ".sbml":
		return FormatSBML, nil
	case ".mat":
		return FormatMAT, nil
	default:
		return "", fmt.Errorf("%q: %w", path, ErrUnsupportedFormat)
	}
}

// LoadFile opens path and decodes it according to its extension.
// A missing file yields an error matching fs.ErrNotExist.
func LoadFile(path string) (*network.Model, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("modelio: %w", err)
	}
	defer f.Close()

	m, err := Load(f, format)
	if err != nil {
		return nil, fmt.Errorf("modelio: %s: %w", path, err)
	}

	return m, nil
}

// Load decodes r in the given format.
func Load(r io.Reader, format Format) (*network.Model, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatSBML:
		return ReadSBML(r)
	case FormatMAT:
		return nil, fmt.Errorf("MATLAB models must be converted to SBML or JSON first: %w", ErrUnsupportedFormat)
	default:
		return nil, fmt.Errorf("format %q: %w", format, ErrUnsupportedFormat)
	}
}

// sortTerms orders terms by canonical species index so map-decoded
// stoichiometry is deterministic.
func sortTerms(terms []network.Term, index map[string]int) {
	sort.Slice(terms, func(i, j int) bool {
		a, aok := index[terms[i].Species]
		b, bok := index[terms[j].Species]
		if aok && bok && a != b {
			return a < b
		}
		return terms[i].Species < terms[j].Species
	})
}
