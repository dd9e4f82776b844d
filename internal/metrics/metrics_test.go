package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersCollectors(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.FramesPresented.WithLabelValues("baseline").Inc()
	m.FramesPresented.WithLabelValues("FullFieldDrift").Add(3)
	m.PhaseTransitions.Inc()
	m.CurrentPhase.Set(2)
	m.PositionUpdates.Inc()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.FramesPresented.WithLabelValues("baseline")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.FramesPresented.WithLabelValues("FullFieldDrift")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.CurrentPhase))

	families, err := registry.Gather()
	require.NoError(t, err)
	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["finstim_frames_presented_total"])
	assert.True(t, names["finstim_phase_transitions_total"])
	assert.True(t, names["finstim_position_updates_total"])
}
