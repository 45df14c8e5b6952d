// SPDX-License-Identifier: MIT

// Package metrics records per-condition pipeline measurements.
//
// The workflow receives a Recorder by injection; the no-op Recorder is the
// default. The Prometheus Recorder keeps its own registry, and since gemcat
// is a batch tool it exports by writing the registry to a textfile
// (node-exporter textfile collector format) instead of serving HTTP.
package metrics

import "time"

// Recorder is the measurement surface used by the workflow.
type Recorder interface {
	// ConditionDone counts one finished condition run and its duration.
	ConditionDone(condition string, success bool, elapsed time.Duration)

	// RankingIterations records the power-iteration count of one ranking.
	RankingIterations(condition string, iterations int, converged bool)

	// IdentifierMismatch counts expression data sharing no gene with the model.
	IdentifierMismatch(condition string)
}

type noopRecorder struct{}

func (noopRecorder) ConditionDone(string, bool, time.Duration) {}
func (noopRecorder) RankingIterations(string, int, bool)       {}
func (noopRecorder) IdentifierMismatch(string)                 {}

// Noop returns a Recorder that drops everything.
func Noop() Recorder { return noopRecorder{} }

// Timer starts a clock for condition and returns the function that stops it.
func Timer(r Recorder, condition string) func(success bool) {
	start := time.Now()

	return func(success bool) {
		r.ConditionDone(condition, success, time.Since(start))
	}
}
