// Package imagery converts raw uploads into normalized frames and renders
// detection overlays. Decoding covers PNG, JPEG, GIF, TIFF, and WebP.
package imagery

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	chaiwebp "github.com/chai2010/webp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/troposcan/detection-service/internal/domain"
)

// Decode parses raw image bytes with the registered decoders, falling back to
// an explicit WebP decode for payloads the stdlib sniffer misses.
func Decode(raw []byte) (image.Image, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: empty payload", domain.ErrDecode)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err == nil {
		return img, nil
	}

	if wimg, werr := chaiwebp.Decode(bytes.NewReader(raw)); werr == nil {
		return wimg, nil
	}

	if errors.Is(err, image.ErrFormat) {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedFormat, err)
	}
	return nil, fmt.Errorf("%w: %v", domain.ErrDecode, err)
}
