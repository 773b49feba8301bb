package domain

import "fmt"

// Narrative produces the human-readable prediction text for a classified
// result. Deterministic given (tier, metrics) so repeated runs of the same
// image render the same report.
func Narrative(tier RiskTier, m Metrics) string {
	switch tier {
	case TierHigh:
		return fmt.Sprintf(
			"Deep convective system detected with very cold cloud tops (%.1f°C) and %.1f%% coverage. "+
				"High probability of tropical cyclone development within 6-12 hours. Immediate monitoring recommended.",
			m.TemperatureC, m.CoveragePercent)
	case TierModerate:
		return fmt.Sprintf(
			"Organized cloud cluster identified with moderate convection (%.1f°C) and %.1f%% coverage. "+
				"System shows potential for intensification. Continue monitoring for 12-24 hours.",
			m.TemperatureC, m.CoveragePercent)
	default:
		return fmt.Sprintf(
			"Normal cloud patterns observed (%.1f°C) with %.1f%% coverage. "+
				"No significant threat detected. Routine monitoring sufficient.",
			m.TemperatureC, m.CoveragePercent)
	}
}
