// Package metrics defines the Prometheus collectors for the analysis engine
// and helpers to export a snapshot of them.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// Outcome label values.
const (
	OutcomeOK       = "ok"
	OutcomeEmpty    = "empty"
	OutcomeError    = "error"
	OutcomeFallback = "fallback"
)

// Metrics holds all Prometheus collectors for the engine.
type Metrics struct {
	AnalysesTotal       *prometheus.CounterVec
	AnalysisDuration    *prometheus.HistogramVec
	TokensProcessed     prometheus.Counter
	CorpusResponses     prometheus.Histogram
	DecodeFailuresTotal prometheus.Counter
}

// New creates the collectors and registers them on reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		AnalysesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "analyses_total",
				Help: "Total analysis calls by operation and outcome (ok, empty, error, fallback).",
			},
			[]string{"operation", "outcome"},
		),
		AnalysisDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "analysis_duration_seconds",
				Help:    "Analysis call latency in seconds.",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
			},
			[]string{"operation"},
		),
		TokensProcessed: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tokens_processed_total",
				Help: "Total tokens produced by the tokenizer.",
			},
		),
		CorpusResponses: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "corpus_responses",
				Help:    "Number of response groups per analysed corpus.",
				Buckets: []float64{0, 1, 10, 100, 1000, 10000},
			},
		),
		DecodeFailuresTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "decode_failures_total",
				Help: "Total corpora rejected by the boundary decoder.",
			},
		),
	}

	reg.MustRegister(
		m.AnalysesTotal,
		m.AnalysisDuration,
		m.TokensProcessed,
		m.CorpusResponses,
		m.DecodeFailuresTotal,
	)

	return m
}

// WriteText writes every metric family gathered from g in the Prometheus text
// exposition format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing metric family %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
