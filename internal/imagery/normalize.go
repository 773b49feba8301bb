package imagery

import (
	"image"

	"github.com/disintegration/imaging"

	"github.com/troposcan/detection-service/internal/domain"
)

// Normalize converts any decoded image into the model's input frame:
// luminance channel, resized to FrameSize×FrameSize with a box (area-average)
// filter, scaled to [0,1]. Any input dimensions are accepted.
func Normalize(img image.Image) *domain.Frame {
	gray := imaging.Grayscale(img)
	resized := imaging.Resize(gray, domain.FrameSize, domain.FrameSize, imaging.Box)

	frame := domain.NewFrame(domain.FrameSize, domain.FrameSize)
	for i := range frame.Pix {
		// Grayscale NRGBA has R == G == B; the red channel is the intensity.
		frame.Pix[i] = float32(resized.Pix[i*4]) / 255.0
	}
	return frame
}
