// SPDX-License-Identifier: MIT

package workflow

import (
	"fmt"
	"math"
	"sort"

	"github.com/katalvlaran/gemcat/ranking"
)

// Comparison is the per-species combination of two centrality vectors.
type Comparison struct {
	// IDs are the shared species in baseline order.
	IDs []string

	// Scores maps each shared species to its differential score.
	Scores map[string]float64

	// Dropped lists species present in only one vector, sorted.
	Dropped []string

	// ZeroBaseline lists shared species whose baseline score is zero (ratio mode).
	ZeroBaseline []string
}

// CompareCentrality combines baseline and comparison by identifier. When the
// two vectors come from different models only the intersection is scored and
// the rest is reported in Dropped; an empty intersection is ErrNoOverlap.
func CompareCentrality(baseline, comparison *ranking.Result, mode Combine, zero ZeroBaseline) (*Comparison, error) {
	if baseline == nil || comparison == nil {
		return nil, fmt.Errorf("%w: nil centrality", ErrInvalidConfig)
	}
	if _, err := ParseCombine(string(mode)); err != nil {
		return nil, err
	}
	if _, err := ParseZeroBaseline(string(zero)); err != nil {
		return nil, err
	}

	out := &Comparison{Scores: make(map[string]float64, len(baseline.IDs))}
	for _, id := range baseline.IDs {
		b := baseline.Scores[id]
		c, ok := comparison.Scores[id]
		if !ok {
			out.Dropped = append(out.Dropped, id)
			continue
		}
		out.IDs = append(out.IDs, id)
		if mode == Difference {
			out.Scores[id] = c - b
			continue
		}
		if b == 0 {
			if zero == ZeroFail {
				return nil, fmt.Errorf("CompareCentrality: species %q: %w", id, ErrZeroBaseline)
			}
			out.ZeroBaseline = append(out.ZeroBaseline, id)
		}
		out.Scores[id] = c / b
	}
	for _, id := range comparison.IDs {
		if _, ok := baseline.Scores[id]; !ok {
			out.Dropped = append(out.Dropped, id)
		}
	}
	sort.Strings(out.Dropped)

	if len(out.IDs) == 0 {
		return nil, ErrNoOverlap
	}

	return out, nil
}

// Result is the outcome of Run.
type Result struct {
	// IDs are the species in canonical model order.
	IDs []string

	// Scores maps species to differential score.
	Scores map[string]float64

	// Combine is the mode that produced Scores.
	Combine Combine

	// Baseline and Comparison hold the per-condition details.
	Baseline   *Condition
	Comparison *Condition
}

// Entry is one row of a ranked result.
type Entry struct {
	ID         string
	Score      float64
	Baseline   float64
	Comparison float64
}

// Ranked returns one Entry per species ordered by descending score. NaN
// scores sort last; ties are broken by ID.
func (r *Result) Ranked() []Entry {
	out := make([]Entry, 0, len(r.IDs))
	for _, id := range r.IDs {
		e := Entry{ID: id, Score: r.Scores[id]}
		if r.Baseline != nil {
			e.Baseline = r.Baseline.Ranking.Scores[id]
		}
		if r.Comparison != nil {
			e.Comparison = r.Comparison.Ranking.Scores[id]
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Score, out[j].Score
		an, bn := math.IsNaN(a), math.IsNaN(b)
		switch {
		case an != bn:
			return bn
		case !an && a != b:
			return a > b
		default:
			return out[i].ID < out[j].ID
		}
	})

	return out
}
