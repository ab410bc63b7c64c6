// Package metrics exports search telemetry to Prometheus.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/custodia-labs/proxsearch/internal/core/domain"
	"github.com/custodia-labs/proxsearch/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.SearchObserver = (*Observer)(nil)

// Namespace prefixes every metric name.
const Namespace = "proxsearch"

// OutcomeOK labels searches that completed without error.
const OutcomeOK = "ok"

// Observer records search latency, outcome and result counts.
type Observer struct {
	duration *prometheus.HistogramVec
	searches *prometheus.CounterVec
	results  *prometheus.HistogramVec
}

// NewObserver creates the collectors and registers them on reg.
// A nil reg uses prometheus.DefaultRegisterer. Collectors already
// registered under the same name are reused.
func NewObserver(reg prometheus.Registerer) (*Observer, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "search_duration_seconds",
		Help:      "Time spent running an advanced search.",
		Buckets:   []float64{.0005, .001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"mode"})
	searches := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "searches_total",
		Help:      "Advanced searches by mode and outcome.",
	}, []string{"mode", "outcome"})
	results := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "search_results",
		Help:      "Number of results returned per search.",
		Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 75},
	}, []string{"mode"})

	var err error
	o := &Observer{}
	if o.duration, err = register(reg, duration); err != nil {
		return nil, fmt.Errorf("register duration histogram: %w", err)
	}
	if o.searches, err = register(reg, searches); err != nil {
		return nil, fmt.Errorf("register search counter: %w", err)
	}
	if o.results, err = register(reg, results); err != nil {
		return nil, fmt.Errorf("register results histogram: %w", err)
	}
	return o, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	err := reg.Register(c)
	if err == nil {
		return c, nil
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing, nil
		}
	}
	return c, err
}

// ObserveSearch implements driven.SearchObserver.
func (o *Observer) ObserveSearch(kind string, elapsed time.Duration, results int, outcome domain.SearchErrorKind) {
	if o == nil {
		return
	}
	label := OutcomeOK
	if outcome != domain.SearchErrorNone {
		label = outcome.String()
	}
	o.duration.WithLabelValues(kind).Observe(elapsed.Seconds())
	o.searches.WithLabelValues(kind, label).Inc()
	if outcome == domain.SearchErrorNone {
		o.results.WithLabelValues(kind).Observe(float64(results))
	}
}
