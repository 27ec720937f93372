// Package metrics records saga and delivery activity as Prometheus collectors.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"store-fulfillment/internal/usecase/shared"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fulfillment"

// Prometheus implements shared.Metrics on its own registry so tests and both services can
// build independent instances.
type Prometheus struct {
	registry     *prometheus.Registry
	sagaSteps    *prometheus.CounterVec
	compensation *prometheus.CounterVec
	transitions  *prometheus.CounterVec
	callLatency  *prometheus.HistogramVec
}

var _ shared.Metrics = (*Prometheus)(nil)

func NewPrometheus(service string) *Prometheus {
	reg := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"service": service}

	m := &Prometheus{
		registry: reg,
		sagaSteps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "saga", Name: "steps_total",
			Help: "Order saga steps by outcome.", ConstLabels: constLabels,
		}, []string{"step", "outcome"}),
		compensation: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "saga", Name: "compensations_total",
			Help: "Compensating actions by outcome.", ConstLabels: constLabels,
		}, []string{"step", "outcome"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "delivery", Name: "transitions_total",
			Help: "Applied delivery transitions by target status and accident.", ConstLabels: constLabels,
		}, []string{"to", "accident"}),
		callLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "client", Name: "call_duration_seconds",
			Help: "Latency of calls to collaborating services.", ConstLabels: constLabels,
			Buckets: prometheus.DefBuckets,
		}, []string{"target", "operation", "outcome"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.sagaSteps, m.compensation, m.transitions, m.callLatency,
	)
	return m
}

func (m *Prometheus) SagaStep(step, outcome string) {
	m.sagaSteps.WithLabelValues(step, outcome).Inc()
}

func (m *Prometheus) Compensation(step, outcome string) {
	m.compensation.WithLabelValues(step, outcome).Inc()
}

func (m *Prometheus) DeliveryTransition(to string, accident bool) {
	m.transitions.WithLabelValues(to, strconv.FormatBool(accident)).Inc()
}

func (m *Prometheus) ExternalCall(service, operation, outcome string, elapsed time.Duration) {
	m.callLatency.WithLabelValues(service, operation, outcome).Observe(elapsed.Seconds())
}

func (m *Prometheus) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the exposition format.
func (m *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Nop discards everything.
type Nop struct{}

func (Nop) SagaStep(string, string)                            {}
func (Nop) Compensation(string, string)                        {}
func (Nop) DeliveryTransition(string, bool)                    {}
func (Nop) ExternalCall(string, string, string, time.Duration) {}
