package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metricsAt(tempC, areaKm2 float64) Metrics {
	return Metrics{
		TemperatureC:      tempC,
		ClusterAreaKm2:    areaKm2,
		CoveragePercent:   10,
		ConfidencePercent: 80,
	}
}

func TestClassify_TierTable(t *testing.T) {
	tests := []struct {
		name string
		temp float64
		area float64
		want RiskTier
	}{
		{"deep cold large system", -75, 2500, TierHigh},
		{"cold but small", -75, 500, TierLow},
		{"moderate temperature band", -65, 300, TierModerate},
		{"moderate area band only", -50, 1500, TierModerate},
		{"warm and small", -55, 300, TierLow},
		{"area band lower edge inclusive", -50, 1000, TierModerate},
		{"area band upper edge inclusive", -50, 2000, TierModerate},
		{"just past both high thresholds", -70.1, 2000.1, TierHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tier, _, err := Classify(metricsAt(tt.temp, tt.area))
			require.NoError(t, err)
			assert.Equal(t, tt.want, tier)
		})
	}
}

// Exact boundary: -70.0°C at 2000.0 km² fails High (strict operators) and
// lands on Moderate via the inclusive area band.
func TestClassify_HighBoundaryIsStrict(t *testing.T) {
	tier, _, err := Classify(metricsAt(-70.0, 2000.0))
	require.NoError(t, err)
	assert.Equal(t, TierModerate, tier)
}

func TestClassify_EventTable(t *testing.T) {
	tests := []struct {
		name string
		temp float64
		area float64
		want EventClass
	}{
		{"cyclonic cluster", -75, 2500, EventCyclonicCluster},
		{"severe thunderstorm", -68, 1200, EventSevereThunderstorm},
		{"local rainstorm", -62, 400, EventLocalRainstorm},
		{"low risk", -55, 300, EventLowRiskCluster},
		{"cyclonic area boundary exclusive", -75, 1500, EventSevereThunderstorm},
		{"thunderstorm needs below -65", -64, 1200, EventLowRiskCluster},
		{"rainstorm area boundary inclusive", -62, 500, EventLocalRainstorm},
		{"rainstorm lower boundary exclusive", -62, 200, EventLowRiskCluster},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, event, err := Classify(metricsAt(tt.temp, tt.area))
			require.NoError(t, err)
			assert.Equal(t, tt.want, event)
		})
	}
}

// The tier and event tables intentionally disagree at their boundaries: a
// 1600 km² system at -72°C is only Moderate risk yet classifies as a
// Cyclonic Cluster.
func TestClassify_TablesAreIndependent(t *testing.T) {
	tier, event, err := Classify(metricsAt(-72, 1600))
	require.NoError(t, err)
	assert.Equal(t, TierModerate, tier)
	assert.Equal(t, EventCyclonicCluster, event)
}

func TestClassify_Idempotent(t *testing.T) {
	m := metricsAt(-75, 2500)
	tier1, event1, err := Classify(m)
	require.NoError(t, err)
	tier2, event2, err := Classify(m)
	require.NoError(t, err)
	assert.Equal(t, tier1, tier2)
	assert.Equal(t, event1, event2)
}

func TestClassify_RejectsNonFiniteMetrics(t *testing.T) {
	for _, m := range []Metrics{
		{TemperatureC: math.NaN()},
		{ClusterAreaKm2: math.NaN()},
		{CoveragePercent: math.Inf(1)},
		{ConfidencePercent: math.NaN()},
	} {
		_, _, err := Classify(m)
		assert.ErrorIs(t, err, ErrInvalidMetrics)
	}
}
