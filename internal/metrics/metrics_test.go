package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCollector(t *testing.T) {
	prometheus.DefaultRegisterer = prometheus.NewRegistry()

	collector := NewCollector()

	require.NotNil(t, collector)
	assert.NotNil(t, collector.executorsConnected, "executorsConnected gauge should be initialized")
	assert.NotNil(t, collector.tasksInFlight, "tasksInFlight gauge should be initialized")
	assert.NotNil(t, collector.dispatchTotal, "dispatchTotal counter should be initialized")
	assert.NotNil(t, collector.signatureVerifyTotal, "signatureVerifyTotal counter should be initialized")
	assert.NotNil(t, collector.launchLatency, "launchLatency histogram should be initialized")
}

func TestRecordDispatch(t *testing.T) {
	prometheus.DefaultRegisterer = prometheus.NewRegistry()
	collector := NewCollector()

	assert.NotPanics(t, func() {
		collector.RecordDispatch(DispatchOK)
	}, "RecordDispatch should not panic")

	for _, result := range []DispatchResult{DispatchOK, DispatchNoMatch, DispatchPredicateErr, DispatchUnauthorized} {
		collector.RecordDispatch(result)
	}
}

func TestRecordVerify(t *testing.T) {
	prometheus.DefaultRegisterer = prometheus.NewRegistry()
	collector := NewCollector()

	assert.NotPanics(t, func() {
		collector.RecordVerify(VerifyOK)
	}, "RecordVerify should not panic")

	for _, result := range []VerifyResult{VerifyOK, VerifyUnknown, VerifyBadSig, VerifyExpired, VerifyReplay} {
		collector.RecordVerify(result)
	}
}

func TestObserveLaunchLatency(t *testing.T) {
	prometheus.DefaultRegisterer = prometheus.NewRegistry()
	collector := NewCollector()

	for _, seconds := range []float64{0.0, 0.001, 0.1, 1.0, 5.0} {
		assert.NotPanics(t, func() {
			collector.ObserveLaunchLatency(seconds)
		}, "ObserveLaunchLatency should not panic with %f seconds", seconds)
	}
}

func TestSetExecutorsConnected(t *testing.T) {
	prometheus.DefaultRegisterer = prometheus.NewRegistry()
	collector := NewCollector()

	for _, n := range []int{0, 1, 10, 100} {
		assert.NotPanics(t, func() {
			collector.SetExecutorsConnected(n)
		}, "SetExecutorsConnected should not panic with n=%d", n)
	}
}

func TestSetTasksInFlight(t *testing.T) {
	prometheus.DefaultRegisterer = prometheus.NewRegistry()
	collector := NewCollector()

	for _, n := range []int{0, 1, 10, 100} {
		assert.NotPanics(t, func() {
			collector.SetTasksInFlight(n)
		}, "SetTasksInFlight should not panic with n=%d", n)
	}
}

func TestConcurrentMetricUpdates(t *testing.T) {
	prometheus.DefaultRegisterer = prometheus.NewRegistry()
	collector := NewCollector()

	done := make(chan bool, 100)
	for i := 0; i < 100; i++ {
		go func() {
			collector.RecordDispatch(DispatchOK)
			collector.RecordVerify(VerifyOK)
			collector.ObserveLaunchLatency(0.1)
			collector.SetExecutorsConnected(10)
			collector.SetTasksInFlight(5)
			done <- true
		}()
	}
	for i := 0; i < 100; i++ {
		<-done
	}
}

func TestCollectorIsolation(t *testing.T) {
	prometheus.DefaultRegisterer = prometheus.NewRegistry()

	collector1 := NewCollector()
	require.NotNil(t, collector1)

	// A process should have only one collector; a second registration
	// against the same default registerer must panic.
	assert.Panics(t, func() {
		NewCollector()
	}, "creating a second collector should panic due to duplicate registration")
}

func TestDispatchAndVerifyLifecycle(t *testing.T) {
	prometheus.DefaultRegisterer = prometheus.NewRegistry()
	collector := NewCollector()

	assert.NotPanics(t, func() {
		collector.SetExecutorsConnected(1)
		collector.RecordVerify(VerifyOK)
		collector.SetTasksInFlight(1)
		collector.RecordDispatch(DispatchOK)
		collector.ObserveLaunchLatency(0.5)
		collector.SetTasksInFlight(0)
	}, "a full launch lifecycle should not panic")
}

func TestRejectedVerifyOutcomes(t *testing.T) {
	prometheus.DefaultRegisterer = prometheus.NewRegistry()
	collector := NewCollector()

	assert.NotPanics(t, func() {
		collector.RecordVerify(VerifyUnknown)
		collector.RecordVerify(VerifyBadSig)
		collector.RecordVerify(VerifyExpired)
		collector.RecordVerify(VerifyReplay)
		collector.RecordDispatch(DispatchUnauthorized)
	}, "rejected verification outcomes should not panic")
}
