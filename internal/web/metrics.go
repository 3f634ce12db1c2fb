package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pitchdeck"

// Outcome labels for generation and export counters.
const (
	resultOK       = "ok"
	resultError    = "error"
	resultCanceled = "canceled"
)

type metrics struct {
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	generations     *prometheus.CounterVec
	generationTime  prometheus.Histogram
	exports         *prometheus.CounterVec
	exportTime      prometheus.Histogram
}

func newMetrics(reg prometheus.Registerer) *metrics {
	f := promauto.With(reg)
	return &metrics{
		requests: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"method", "path"},
		),
		generations: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "deck",
				Name:      "generations_total",
				Help:      "Total number of deck generations by result",
			},
			[]string{"result"},
		),
		generationTime: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "deck",
				Name:      "generation_duration_seconds",
				Help:      "Deck generation duration in seconds",
				Buckets:   []float64{1, 2.5, 5, 10, 20, 30, 60, 120},
			},
		),
		exports: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "deck",
				Name:      "exports_total",
				Help:      "Total number of PDF exports by result",
			},
			[]string{"result"},
		),
		exportTime: f.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "deck",
				Name:      "export_duration_seconds",
				Help:      "PDF export duration in seconds",
				Buckets:   []float64{.5, 1, 2.5, 5, 10, 20, 30, 60},
			},
		),
	}
}
