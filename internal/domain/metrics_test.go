package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uniformFrame builds a frame filled with one intensity.
func uniformFrame(w, h int, v float32) *Frame {
	f := NewFrame(w, h)
	for i := range f.Pix {
		f.Pix[i] = v
	}
	return f
}

// maskWithActive builds a mask with the first n pixels fully active.
func maskWithActive(w, h, n int) *Mask {
	m := NewMask(w, h)
	for i := 0; i < n; i++ {
		m.Pix[i] = 1
	}
	return m
}

func TestExtractMetrics_Coverage(t *testing.T) {
	frame := uniformFrame(16, 16, 0.9)

	m, err := ExtractMetrics(frame, maskWithActive(16, 16, 64))
	require.NoError(t, err)
	assert.InDelta(t, 25.0, m.CoveragePercent, 1e-9)

	m, err = ExtractMetrics(frame, maskWithActive(16, 16, 0))
	require.NoError(t, err)
	assert.Zero(t, m.CoveragePercent)
}

func TestExtractMetrics_CoverageMonotonicInActivePixels(t *testing.T) {
	frame := uniformFrame(16, 16, 0.9)
	prev := -1.0
	for _, n := range []int{0, 10, 64, 128, 256} {
		m, err := ExtractMetrics(frame, maskWithActive(16, 16, n))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, m.CoveragePercent, prev)
		prev = m.CoveragePercent
	}
}

func TestExtractMetrics_AreaScalesLinearly(t *testing.T) {
	frame := uniformFrame(16, 16, 0.9)

	m10, err := ExtractMetrics(frame, maskWithActive(16, 16, 10))
	require.NoError(t, err)
	m20, err := ExtractMetrics(frame, maskWithActive(16, 16, 20))
	require.NoError(t, err)

	assert.InDelta(t, 10*AreaPerPixelKm2, m10.ClusterAreaKm2, 1e-9)
	assert.InDelta(t, 2*m10.ClusterAreaKm2, m20.ClusterAreaKm2, 1e-9)
}

func TestExtractMetrics_TemperatureMonotonicInIntensity(t *testing.T) {
	mask := maskWithActive(16, 16, 256)
	prev := 0.0
	for i, v := range []float32{0.1, 0.3, 0.5, 0.7, 0.9, 1.0} {
		m, err := ExtractMetrics(uniformFrame(16, 16, v), mask)
		require.NoError(t, err)
		if i > 0 {
			assert.Less(t, m.TemperatureC, prev, "brighter frame must estimate colder")
		}
		prev = m.TemperatureC
	}
}

func TestExtractMetrics_TemperatureCalibrationRange(t *testing.T) {
	mask := maskWithActive(16, 16, 256)

	cold, err := ExtractMetrics(uniformFrame(16, 16, 1.0), mask)
	require.NoError(t, err)
	assert.InDelta(t, -90.0, cold.TemperatureC, 1e-9)

	warm, err := ExtractMetrics(uniformFrame(16, 16, 0.0), mask)
	require.NoError(t, err)
	assert.InDelta(t, -40.0, warm.TemperatureC, 1e-9)
}

func TestExtractMetrics_ConfidenceBounds(t *testing.T) {
	frame := uniformFrame(16, 16, 0.5)

	// Fully decisive binary mask.
	m, err := ExtractMetrics(frame, maskWithActive(16, 16, 128))
	require.NoError(t, err)
	assert.InDelta(t, 100.0, m.ConfidencePercent, 1e-9)

	// Maximally indecisive mask.
	indecisive := NewMask(16, 16)
	for i := range indecisive.Pix {
		indecisive.Pix[i] = 0.5
	}
	m, err = ExtractMetrics(frame, indecisive)
	require.NoError(t, err)
	assert.Zero(t, m.ConfidencePercent)
}

func TestExtractMetrics_BlankFrameIsLowTier(t *testing.T) {
	frame := uniformFrame(FrameSize, FrameSize, 0)
	mask := NewMask(FrameSize, FrameSize)

	m, err := ExtractMetrics(frame, mask)
	require.NoError(t, err)
	assert.Zero(t, m.CoveragePercent)
	assert.Zero(t, m.ClusterAreaKm2)

	tier, event, err := Classify(m)
	require.NoError(t, err)
	assert.Equal(t, TierLow, tier)
	assert.Equal(t, EventLowRiskCluster, event)
}

func TestExtractMetrics_DimensionMismatch(t *testing.T) {
	_, err := ExtractMetrics(uniformFrame(16, 16, 0.5), NewMask(8, 8))
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestNarrative_DeterministicPerTier(t *testing.T) {
	m := metricsAt(-75, 2500)
	first := Narrative(TierHigh, m)
	assert.Equal(t, first, Narrative(TierHigh, m))
	assert.Contains(t, first, "-75.0°C")

	assert.NotEqual(t, Narrative(TierLow, m), Narrative(TierModerate, m))
}
