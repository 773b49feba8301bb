package domain

import (
	"fmt"
	"math"
)

const (
	// ActivationThreshold is the mask probability above which a pixel counts
	// as active cloud cluster (128/255 in the original 8-bit mask encoding).
	ActivationThreshold = 0.5

	// AreaPerPixelKm2 converts active pixel count to ground area. A 256×256
	// analysis window of VHRR IR imagery covers roughly 8,500 km², which puts
	// the risk-table thresholds (1000–2000 km²) at realistic frame fractions.
	AreaPerPixelKm2 = 0.13

	// Temperature calibration: estimate = tempBase + tempScale * meanMasked.
	// Mean masked intensity 0 maps to -40°C, 1 maps to -90°C, so brighter
	// (colder in inverted IR) masked regions always estimate colder.
	tempBaseC  = -40.0
	tempScaleC = -50.0
)

// ExtractMetrics reduces a frame and its segmentation mask to scalar metrics.
// Pure function; fails only when the shapes disagree.
func ExtractMetrics(frame *Frame, mask *Mask) (Metrics, error) {
	if frame.Width != mask.Width || frame.Height != mask.Height {
		return Metrics{}, fmt.Errorf("%w: frame %dx%d, mask %dx%d",
			ErrDimensionMismatch, frame.Width, frame.Height, mask.Width, mask.Height)
	}

	total := len(mask.Pix)
	if total == 0 {
		return Metrics{}, fmt.Errorf("%w: empty frame", ErrDimensionMismatch)
	}

	var (
		active       int
		maskedSum    float64
		decisiveness float64
	)
	for i, m := range mask.Pix {
		if m > ActivationThreshold {
			active++
			maskedSum += float64(frame.Pix[i])
		}
		decisiveness += 2 * math.Abs(float64(m)-0.5)
	}

	meanMasked := 0.0
	if active > 0 {
		meanMasked = maskedSum / float64(active)
	}

	return Metrics{
		TemperatureC:      tempBaseC + tempScaleC*meanMasked,
		ClusterAreaKm2:    float64(active) * AreaPerPixelKm2,
		CoveragePercent:   float64(active) / float64(total) * 100,
		ConfidencePercent: clampPercent(decisiveness / float64(total) * 100),
	}, nil
}

func clampPercent(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}
