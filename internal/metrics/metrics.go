// Package metrics collects and exposes the Prometheus metrics named in
// the taskserver's operations surface: how many executors are
// connected, how many launched tasks are still awaiting a terminal
// result, and how dispatch and signature verification are going.
package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds every metric the taskserver exposes on /metrics.
type Collector struct {
	executorsConnected prometheus.Gauge
	tasksInFlight      prometheus.Gauge

	dispatchTotal        *prometheus.CounterVec
	signatureVerifyTotal *prometheus.CounterVec
	launchLatency        prometheus.Histogram
}

// NewCollector builds and registers a fresh Collector.
func NewCollector() *Collector {
	c := &Collector{
		executorsConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "funtonic_executors_connected",
			Help: "Current number of connected executors",
		}),
		tasksInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "funtonic_tasks_inflight",
			Help: "Current number of launched tasks awaiting a terminal result from every matched executor",
		}),
		dispatchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "funtonic_dispatch_total",
			Help: "Total number of LaunchTask calls, partitioned by outcome",
		}, []string{"result"}),
		signatureVerifyTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "funtonic_signature_verify_total",
			Help: "Total number of signed-payload verifications, partitioned by outcome",
		}, []string{"result"}),
		launchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "funtonic_launch_latency_seconds",
			Help:    "Time from LaunchTask receipt to the response stream closing",
			Buckets: prometheus.DefBuckets,
		}),
	}

	prometheus.MustRegister(c.executorsConnected)
	prometheus.MustRegister(c.tasksInFlight)
	prometheus.MustRegister(c.dispatchTotal)
	prometheus.MustRegister(c.signatureVerifyTotal)
	prometheus.MustRegister(c.launchLatency)

	return c
}

// DispatchResult labels the outcome of a single LaunchTask call.
type DispatchResult string

const (
	DispatchOK           DispatchResult = "ok"
	DispatchNoMatch      DispatchResult = "no_match"
	DispatchPredicateErr DispatchResult = "predicate_error"
	DispatchUnauthorized DispatchResult = "unauthorized"
)

// VerifyResult labels the outcome of a signed-payload verification.
type VerifyResult string

const (
	VerifyOK      VerifyResult = "ok"
	VerifyUnknown VerifyResult = "unknown_key"
	VerifyBadSig  VerifyResult = "invalid_signature"
	VerifyExpired VerifyResult = "expired"
	VerifyReplay  VerifyResult = "replay"
)

// RecordDispatch increments the dispatch counter for result.
func (c *Collector) RecordDispatch(result DispatchResult) {
	c.dispatchTotal.WithLabelValues(string(result)).Inc()
}

// RecordVerify increments the signature-verification counter for result.
func (c *Collector) RecordVerify(result VerifyResult) {
	c.signatureVerifyTotal.WithLabelValues(string(result)).Inc()
}

// ObserveLaunchLatency records how long a LaunchTask response stream stayed open.
func (c *Collector) ObserveLaunchLatency(seconds float64) {
	c.launchLatency.Observe(seconds)
}

// SetExecutorsConnected reports the registry's current connection count.
func (c *Collector) SetExecutorsConnected(n int) {
	c.executorsConnected.Set(float64(n))
}

// SetTasksInFlight reports the dispatcher's current in-flight task count.
func (c *Collector) SetTasksInFlight(n int) {
	c.tasksInFlight.Set(float64(n))
}

// StartServer serves /metrics on port until the process exits or the
// listener errors.
func StartServer(port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	addr := fmt.Sprintf(":%d", port)
	return http.ListenAndServe(addr, mux)
}
