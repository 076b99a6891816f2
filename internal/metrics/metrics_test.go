package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RegistersCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.EventsReceived.Inc()
	m.EventsFailed.WithLabelValues(ReasonInvalidJSON).Inc()
	m.AggregationRuns.WithLabelValues(JobHourly, StatusSuccess).Inc()
	m.PendingClicks.Set(3)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["linkpulse_click_events_received_total"])
	assert.True(t, names["linkpulse_click_events_failed_total"])
	assert.True(t, names["linkpulse_aggregation_runs_total"])
	assert.True(t, names["linkpulse_pending_clicks"])

	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsFailed.WithLabelValues(ReasonInvalidJSON)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.PendingClicks))
}

func TestNew_DuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}

func TestNewNop(t *testing.T) {
	a := NewNop()
	b := NewNop()
	a.EventsProcessed.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(a.EventsProcessed))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.EventsProcessed))
}
