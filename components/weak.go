// SPDX-License-Identifier: MIT

package components

import (
	"context"
	"fmt"
	"sort"

	"github.com/katalvlaran/gemcat/matrix"
)

// walker encapsulates mutable BFS state.
type walker struct {
	ctx     context.Context
	opts    Options
	ids     []string
	nbrs    [][]int // undirected neighbour lists
	queue   []int
	comp    []int // component per node, -1 while unvisited
	members [][]int
}

// Weak returns the weakly connected components of g.
// Returns ErrGraphNil or ErrShape for bad input, ErrOptionViolation for bad
// options, or the context error on cancellation.
func Weak(g Graph, opts ...Option) (*Result, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	ids := g.IDs()
	m := g.Matrix()
	n := len(ids)
	if m == nil || m.Rows() != n || m.Cols() != n {
		return nil, fmt.Errorf("Weak: %d ids: %w", n, ErrShape)
	}

	w := &walker{
		ctx:   o.Ctx,
		opts:  o,
		ids:   ids,
		nbrs:  undirected(m, o.MinWeight),
		queue: make([]int, 0, n),
		comp:  make([]int, n),
	}
	for i := range w.comp {
		w.comp[i] = -1
	}

	for start := 0; start < n; start++ {
		if w.comp[start] >= 0 {
			continue
		}
		if err := w.loop(start, len(w.members)); err != nil {
			return nil, err
		}
	}

	return w.result(), nil
}

// undirected returns sorted, de-duplicated neighbour lists ignoring direction.
func undirected(m *matrix.Sparse, minWeight float64) [][]int {
	n := m.Rows()
	sets := make([]map[int]struct{}, n)
	for i := range sets {
		sets[i] = make(map[int]struct{})
	}
	for i := 0; i < n; i++ {
		cols, vals := m.Row(i)
		for k, j := range cols {
			if i == j || vals[k] <= minWeight {
				continue
			}
			sets[i][j] = struct{}{}
			sets[j][i] = struct{}{}
		}
	}

	nbrs := make([][]int, n)
	for i, s := range sets {
		list := make([]int, 0, len(s))
		for j := range s {
			list = append(list, j)
		}
		sort.Ints(list)
		nbrs[i] = list
	}

	return nbrs
}

// loop runs one BFS from start, labelling every reached node with c.
func (w *walker) loop(start, c int) error {
	w.members = append(w.members, nil)
	w.enqueue(start, c)
	for len(w.queue) > 0 {
		// cancellation check (once per loop)
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		cur := w.queue[0]
		w.queue = w.queue[1:]
		for _, nbr := range w.nbrs[cur] {
			if w.comp[nbr] < 0 {
				w.enqueue(nbr, c)
			}
		}
	}

	return nil
}

// enqueue marks node i as part of component c and adds it to the queue.
func (w *walker) enqueue(i, c int) {
	w.comp[i] = c
	w.members[c] = append(w.members[c], i)
	w.opts.OnVisit(w.ids[i], c)
	w.queue = append(w.queue, i)
}

func (w *walker) result() *Result {
	res := &Result{
		Components: make([][]string, len(w.members)),
		Of:         make(map[string]int, len(w.ids)),
	}
	for c, idx := range w.members {
		sort.Ints(idx)
		names := make([]string, len(idx))
		for k, i := range idx {
			names[k] = w.ids[i]
			res.Of[w.ids[i]] = c
		}
		res.Components[c] = names
	}

	return res
}
