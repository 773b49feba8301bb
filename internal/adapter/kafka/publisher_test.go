package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/troposcan/detection-service/internal/domain"
)

func TestAlertMessage(t *testing.T) {
	now := time.Date(2026, 7, 14, 9, 30, 0, 0, time.UTC)
	result := domain.Result{
		Tier:  domain.TierHigh,
		Event: domain.EventCyclonicCluster,
		Metrics: domain.Metrics{
			TemperatureC:      -78.4,
			ClusterAreaKm2:    3120.5,
			CoveragePercent:   36.7,
			ConfidencePercent: 91.2,
		},
		Narrative:   "HIGH RISK: organized deep convection detected.",
		ModelType:   domain.ModelReal,
		OverlayPNG:  []byte{0x89, 0x50, 0x4e, 0x47},
		ProcessedAt: now,
	}

	msg, err := alertMessage("req-42", result)
	require.NoError(t, err)

	assert.Equal(t, []byte("req-42"), msg.Key)
	assert.Contains(t, string(msg.Value), `"risk_level":"high"`)
	assert.Contains(t, string(msg.Value), `"cluster_area_km2":3120.5`)
	assert.NotContains(t, string(msg.Value), "overlay_image", "alerts must not carry image payloads")

	require.Len(t, msg.Headers, 3)
	assert.Equal(t, "risk_level", msg.Headers[0].Key)
	assert.Equal(t, []byte(domain.TierHigh), msg.Headers[0].Value)
	assert.Equal(t, "model_type", msg.Headers[1].Key)
	assert.Equal(t, []byte(domain.ModelReal), msg.Headers[1].Value)
	assert.Equal(t, "processed_at", msg.Headers[2].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[2].Value)
}

func TestAlertMessage_CarriesNarrative(t *testing.T) {
	result := domain.Result{
		Tier:      domain.TierModerate,
		Event:     domain.EventSevereThunderstorm,
		Narrative: "MODERATE RISK: developing convective system.",
		ModelType: domain.ModelFallback,
	}

	msg, err := alertMessage("req-7", result)
	require.NoError(t, err)

	assert.Contains(t, string(msg.Value), `"prediction":"MODERATE RISK: developing convective system."`)
	assert.Contains(t, string(msg.Value), `"model_type":"fallback"`)
}
