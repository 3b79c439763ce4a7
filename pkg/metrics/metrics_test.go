package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_NilRegistryYieldsNilMetrics(t *testing.T) {
	m := New(nil)
	assert.Nil(t, m)

	// every method must tolerate a nil receiver without panicking.
	m.ObserveStep("s1", 0.01)
	m.SetLastStatus("s1", 2)
	m.AddSubsteps(3)
}

func TestMetrics_ObserveStep_RecordsPerSlaveHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	require.NotNil(t, m)

	m.ObserveStep("s1", 0.25)

	assert.Equal(t, 1, testutil.CollectAndCount(m.stepSeconds, "cosim_slave_step_seconds"))
}

func TestMetrics_SetLastStatus_SetsGaugeValue(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	require.NotNil(t, m)

	m.SetLastStatus("s1", 2)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.lastStatus.WithLabelValues("s1")))
}

func TestMetrics_AddSubsteps_IgnoresNonPositive(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)
	require.NotNil(t, m)

	m.AddSubsteps(0)
	m.AddSubsteps(-5)
	m.AddSubsteps(4)

	assert.Equal(t, 4.0, testutil.ToFloat64(m.substepsTotal))
}
