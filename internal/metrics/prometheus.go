// SPDX-License-Identifier: MIT

package metrics

import (
	"fmt"
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

const namespace = "gemcat"

// Prometheus is a Recorder backed by a private Prometheus registry.
type Prometheus struct {
	registry   *prom.Registry
	runs       *prom.CounterVec
	seconds    *prom.HistogramVec
	iterations *prom.HistogramVec
	mismatch   *prom.CounterVec
}

// NewPrometheus registers the gemcat collectors on a fresh registry.
func NewPrometheus() *Prometheus {
	p := &Prometheus{
		registry: prom.NewRegistry(),
		runs: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "condition_runs_total",
			Help:      "Condition runs by outcome.",
		}, []string{"condition", "success"}),
		seconds: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "condition_seconds",
			Help:      "Wall time of one condition run.",
			Buckets:   prom.ExponentialBuckets(0.001, 4, 10),
		}, []string{"condition"}),
		iterations: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "ranking_iterations",
			Help:      "Power iterations performed by one ranking.",
			Buckets:   prom.LinearBuckets(10, 10, 10),
		}, []string{"condition", "converged"}),
		mismatch: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "identifier_mismatch_total",
			Help:      "Expression data sets sharing no gene with the model.",
		}, []string{"condition"}),
	}
	p.registry.MustRegister(p.runs, p.seconds, p.iterations, p.mismatch)

	return p
}

// ConditionDone implements Recorder.
func (p *Prometheus) ConditionDone(condition string, success bool, elapsed time.Duration) {
	p.runs.WithLabelValues(condition, strconv.FormatBool(success)).Inc()
	p.seconds.WithLabelValues(condition).Observe(elapsed.Seconds())
}

// RankingIterations implements Recorder.
func (p *Prometheus) RankingIterations(condition string, iterations int, converged bool) {
	p.iterations.WithLabelValues(condition, strconv.FormatBool(converged)).Observe(float64(iterations))
}

// IdentifierMismatch implements Recorder.
func (p *Prometheus) IdentifierMismatch(condition string) {
	p.mismatch.WithLabelValues(condition).Inc()
}

// Registry exposes the underlying registry, e.g. for a push gateway.
func (p *Prometheus) Registry() *prom.Registry { return p.registry }

// WriteTextfile atomically writes the registry in text exposition format.
func (p *Prometheus) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("metrics: write %s: %w", path, err)
	}

	return nil
}
