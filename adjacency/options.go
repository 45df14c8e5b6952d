// SPDX-License-Identifier: MIT

package adjacency

// Options holds the knobs shared by every Transform.
type Options struct {
	// Reversible lets reversible reactions contribute their backward edges.
	Reversible bool
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns Options with Reversible enabled.
func DefaultOptions() Options { return Options{Reversible: true} }

// WithReversible toggles backward edges of reversible reactions.
func WithReversible(on bool) Option {
	return func(o *Options) { o.Reversible = on }
}
