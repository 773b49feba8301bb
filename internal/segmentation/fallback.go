package segmentation

import (
	"fmt"

	"github.com/troposcan/detection-service/internal/domain"
)

// BrightnessThreshold is the cold-cloud-top cutoff for the fallback variant:
// 180/255 in the inverted-intensity IR convention.
const BrightnessThreshold = float32(180.0 / 255.0)

// FallbackProvider is the stateless demonstration variant: per pixel, the
// mask is 1 when the frame intensity exceeds the brightness threshold and 0
// otherwise. Identical frames always yield byte-identical masks.
type FallbackProvider struct{}

// NewFallbackProvider returns the deterministic threshold provider.
func NewFallbackProvider() *FallbackProvider {
	return &FallbackProvider{}
}

func (p *FallbackProvider) Segment(frame *domain.Frame) (*domain.Mask, error) {
	if len(frame.Pix) != frame.Width*frame.Height {
		return nil, fmt.Errorf("%w: frame %dx%d with %d pixels",
			domain.ErrDimensionMismatch, frame.Width, frame.Height, len(frame.Pix))
	}

	mask := domain.NewMask(frame.Width, frame.Height)
	for i, v := range frame.Pix {
		if v > BrightnessThreshold {
			mask.Pix[i] = 1
		}
	}
	return mask, nil
}

func (p *FallbackProvider) Type() domain.ModelType {
	return domain.ModelFallback
}
