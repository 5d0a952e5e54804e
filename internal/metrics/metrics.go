// Package metrics exposes the Prometheus collectors for assessments,
// narrative generation and the HTTP API.
package metrics

import (
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "lifewheel"

// Metrics holds the collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	assessments     *prometheus.CounterVec
	persistFailures prometheus.Counter
	llmCalls        *prometheus.CounterVec
	llmLatency      *prometheus.HistogramVec
	llmTokens       *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
}

var (
	defaultOnce sync.Once
	shared      *Metrics
)

// Default returns the instance registered with the global registry.
func Default() *Metrics {
	defaultOnce.Do(func() {
		shared = MustNewMetrics(prometheus.DefaultRegisterer)
	})
	return shared
}

// MustNewMetrics registers the collectors with reg, reusing collectors
// that are already registered under the same name. Any other
// registration error panics.
func MustNewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	return &Metrics{
		assessments: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "assessments_completed_total",
				Help:      "Completed wheel assessments by classification.",
			},
			[]string{"label"},
		)),
		persistFailures: register(reg, prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "entry_persist_failures_total",
				Help:      "Wheel entries that failed to save.",
			},
		)),
		llmCalls: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "llm",
				Name:      "requests_total",
				Help:      "LLM requests by purpose, model and outcome.",
			},
			[]string{"purpose", "model", "outcome"},
		)),
		llmLatency: register(reg, prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "llm",
				Name:      "request_duration_seconds",
				Help:      "LLM request latency.",
				Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30},
			},
			[]string{"purpose"},
		)),
		llmTokens: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "llm",
				Name:      "tokens_total",
				Help:      "Tokens consumed by direction.",
			},
			[]string{"direction"},
		)),
		httpRequests: register(reg, prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by method, route and status code.",
			},
			[]string{"method", "route", "status"},
		)),
		httpLatency: register(reg, prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency by route.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		)),
	}
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	if err := reg.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(C); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// AssessmentCompleted counts one classified entry.
func (m *Metrics) AssessmentCompleted(label string) {
	if m == nil {
		return
	}
	m.assessments.WithLabelValues(label).Inc()
}

// PersistFailed counts one failed entry save.
func (m *Metrics) PersistFailed() {
	if m == nil {
		return
	}
	m.persistFailures.Inc()
}

// ObserveLLMCall records one LLM request. It satisfies llm.Observer.
func (m *Metrics) ObserveLLMCall(purpose, model, outcome string, latency time.Duration, inputTokens, outputTokens int) {
	if m == nil {
		return
	}
	m.llmCalls.WithLabelValues(purpose, model, outcome).Inc()
	m.llmLatency.WithLabelValues(purpose).Observe(latency.Seconds())
	m.llmTokens.WithLabelValues("input").Add(float64(inputTokens))
	m.llmTokens.WithLabelValues("output").Add(float64(outputTokens))
}

// ObserveHTTPRequest records one served request. route is the matched
// pattern, not the raw path.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, latency time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(route).Observe(latency.Seconds())
}
