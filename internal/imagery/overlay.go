package imagery

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/troposcan/detection-service/internal/domain"
)

// Color ramp for mask activation. Alpha stays below 1 at every level so the
// underlying frame detail is blended, never replaced.
const maxOverlayAlpha = 0.6

var (
	rampLow  = color.NRGBA{R: 0, G: 200, B: 0}
	rampMid  = color.NRGBA{R: 255, G: 204, B: 0}
	rampHigh = color.NRGBA{R: 255, G: 50, B: 50}
)

// RenderOverlay paints the mask onto the denormalized frame as a color-coded
// transparency layer and returns the encoded PNG. A zero mask reproduces the
// frame pixel-for-pixel.
func RenderOverlay(frame *domain.Frame, mask *domain.Mask) ([]byte, error) {
	if frame.Width != mask.Width || frame.Height != mask.Height {
		return nil, fmt.Errorf("%w: frame %dx%d, mask %dx%d",
			domain.ErrDimensionMismatch, frame.Width, frame.Height, mask.Width, mask.Height)
	}

	out := image.NewNRGBA(image.Rect(0, 0, frame.Width, frame.Height))
	for i, v := range frame.Pix {
		gray := denormalize(v)
		a := float64(mask.Pix[i])
		tint := rampColor(a)
		alpha := a * maxOverlayAlpha

		out.Pix[i*4+0] = blend(gray, tint.R, alpha)
		out.Pix[i*4+1] = blend(gray, tint.G, alpha)
		out.Pix[i*4+2] = blend(gray, tint.B, alpha)
		out.Pix[i*4+3] = 255
	}
	return encodePNG(out)
}

// EncodeFrame renders the denormalized frame as a grayscale PNG, the
// processed-image companion to the overlay.
func EncodeFrame(frame *domain.Frame) ([]byte, error) {
	out := image.NewGray(image.Rect(0, 0, frame.Width, frame.Height))
	for i, v := range frame.Pix {
		out.Pix[i] = denormalize(v)
	}
	return encodePNG(out)
}

func rampColor(activation float64) color.NRGBA {
	switch {
	case activation >= 0.6:
		return rampHigh
	case activation >= 0.3:
		return rampMid
	default:
		return rampLow
	}
}

func denormalize(v float32) uint8 {
	p := v * 255
	if p < 0 {
		return 0
	}
	if p > 255 {
		return 255
	}
	return uint8(p + 0.5)
}

func blend(base, tint uint8, alpha float64) uint8 {
	return uint8(float64(base)*(1-alpha) + float64(tint)*alpha + 0.5)
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
