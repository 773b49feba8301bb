package domain

import (
	"fmt"
	"math"
)

// Classify maps metrics to a risk tier and an event class. Both lookups are
// independent constant tables evaluated first-match-wins; they deliberately
// use different boundary operators and must not be unified.
func Classify(m Metrics) (RiskTier, EventClass, error) {
	if !metricsFinite(m) {
		return "", "", fmt.Errorf("%w: temperature=%v area=%v coverage=%v confidence=%v",
			ErrInvalidMetrics, m.TemperatureC, m.ClusterAreaKm2, m.CoveragePercent, m.ConfidencePercent)
	}
	return classifyTier(m), classifyEvent(m), nil
}

// classifyTier: High requires strict < -70°C and strict > 2000 km²; the
// Moderate area clause is inclusive on both ends, so -70.0°C at exactly
// 2000 km² lands on Moderate.
func classifyTier(m Metrics) RiskTier {
	temp, area := m.TemperatureC, m.ClusterAreaKm2
	switch {
	case temp < -70 && area > 2000:
		return TierHigh
	case (temp >= -70 && temp < -60) || (area >= 1000 && area <= 2000):
		return TierModerate
	default:
		return TierLow
	}
}

// classifyEvent uses its own thresholds (1500 km², -65°C, -60°C bands),
// independent of the tier table.
func classifyEvent(m Metrics) EventClass {
	temp, area := m.TemperatureC, m.ClusterAreaKm2
	switch {
	case area > 1500 && temp < -70:
		return EventCyclonicCluster
	case area > 500 && area <= 1500 && temp < -65:
		return EventSevereThunderstorm
	case area > 200 && area <= 500 && temp < -60:
		return EventLocalRainstorm
	default:
		return EventLowRiskCluster
	}
}

func metricsFinite(m Metrics) bool {
	for _, v := range []float64{m.TemperatureC, m.ClusterAreaKm2, m.CoveragePercent, m.ConfidencePercent} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
