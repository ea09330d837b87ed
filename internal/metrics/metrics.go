// Package metrics owns the Prometheus collectors exported by the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "calorie_predictor"

// Failure reasons recorded by RecordFailure.
const (
	ReasonValidation = "validation"
	ReasonDomain     = "domain"
	ReasonModel      = "model"
)

var (
	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, by route pattern and status code.",
	}, []string{"route", "code"})
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by route pattern.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})
	predictions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "predictions_total",
		Help:      "Successful predictions by intensity level.",
	}, []string{"intensity_level"})
	failures = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "prediction_failures_total",
		Help:      "Rejected or failed predictions by reason.",
	}, []string{"reason"})
	modelLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "model_latency_seconds",
		Help:      "Time spent inside the regression model.",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
	})
)

func init() {
	prometheus.MustRegister(httpRequests, httpDuration, predictions, failures, modelLatency)
}

// RecordRequest counts a served request and its latency.
func RecordRequest(route, code string, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	httpRequests.WithLabelValues(route, code).Inc()
	httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// RecordPrediction counts a successful prediction.
func RecordPrediction(level string) {
	predictions.WithLabelValues(level).Inc()
}

// RecordFailure counts a rejected or failed prediction.
func RecordFailure(reason string) {
	failures.WithLabelValues(reason).Inc()
}

// ObserveModelLatency records one model invocation.
func ObserveModelLatency(elapsed time.Duration) {
	modelLatency.Observe(elapsed.Seconds())
}
