// Command gensample renders the synthetic IR sample images served by the
// detection API. The scenes are fully deterministic, and each generated image
// is validated through the fallback detection path to confirm it produces the
// risk level its catalog entry advertises.
//
// Usage:
//
//	go run ./cmd/gensample -out samples
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/troposcan/detection-service/internal/domain"
	"github.com/troposcan/detection-service/internal/imagery"
	"github.com/troposcan/detection-service/internal/segmentation"
)

const sceneSize = 256

type sceneDef struct {
	id           string
	expectedTier domain.RiskTier
	draw         func() *image.Gray
}

var scenes = []sceneDef{
	{id: "normal", expectedTier: domain.TierLow, draw: drawNormal},
	{id: "developing", expectedTier: domain.TierModerate, draw: drawDeveloping},
	{id: "cyclone", expectedTier: domain.TierHigh, draw: drawCyclone},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out", "samples", "output directory for sample images")
	flag.Parse()

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for _, scene := range scenes {
		img := scene.draw()
		path := filepath.Join(*outDir, scene.id+".png")
		if err := writePNG(path, img); err != nil {
			return fmt.Errorf("writing %s: %w", scene.id, err)
		}
		log.Printf("wrote %s", path)

		tier, metrics, err := classifyScene(img)
		if err != nil {
			return fmt.Errorf("validating %s: %w", scene.id, err)
		}
		log.Printf("%s: tier=%s area=%.0fkm2 temp=%.1fC coverage=%.1f%%",
			scene.id, tier, metrics.ClusterAreaKm2, metrics.TemperatureC, metrics.CoveragePercent)
		if tier != scene.expectedTier {
			return fmt.Errorf("%s: expected tier %s, got %s", scene.id, scene.expectedTier, tier)
		}
	}

	log.Printf("all %d samples validated", len(scenes))
	return nil
}

// classifyScene runs the generated image through the same normalization,
// fallback segmentation, and classification steps the service uses.
func classifyScene(img *image.Gray) (domain.RiskTier, domain.Metrics, error) {
	frame := imagery.Normalize(img)
	mask, err := segmentation.NewFallbackProvider().Segment(frame)
	if err != nil {
		return "", domain.Metrics{}, err
	}
	metrics, err := domain.ExtractMetrics(frame, mask)
	if err != nil {
		return "", domain.Metrics{}, err
	}
	tier, _, err := domain.Classify(metrics)
	if err != nil {
		return "", domain.Metrics{}, err
	}
	return tier, metrics, nil
}

// drawNormal renders scattered low clouds over a dim background with one
// small bright patch, well under every storm threshold.
func drawNormal() *image.Gray {
	img := baseScene()
	// Diffuse mid-level cloud, below the brightness threshold.
	paintBlob(img, 80, 150, 48, 140, 60)
	paintBlob(img, 190, 90, 36, 125, 50)
	// A single small convective cell.
	paintBlob(img, 150, 200, 19, 235, 0)
	return img
}

// drawDeveloping renders a single organized cluster: a bright convective
// core inside a wider sub-threshold halo.
func drawDeveloping() *image.Gray {
	img := baseScene()
	paintBlob(img, 128, 128, 90, 165, 40)
	paintBlob(img, 128, 128, 55, 235, 0)
	return img
}

// drawCyclone renders a wide deep-convective disc with a dark eye and
// trailing spiral arms.
func drawCyclone() *image.Gray {
	img := baseScene()
	paintBlob(img, 128, 128, 88, 240, 0)

	// Spiral arms sweeping out from the disc edge.
	for i := 0; i < 2048; i++ {
		t := float64(i) / 2048
		angle := 4 * math.Pi * t
		radius := 88 + 60*t
		for _, phase := range []float64{0, math.Pi} {
			x := 128 + int(radius*math.Cos(angle+phase))
			y := 128 + int(radius*math.Sin(angle+phase))
			paintBlob(img, x, y, 4, 200, 40)
		}
	}

	// The eye: a calm dark center, overwriting the disc.
	for y := 120; y <= 136; y++ {
		for x := 120; x <= 136; x++ {
			if math.Hypot(float64(x-128), float64(y-128)) <= 8 {
				img.SetGray(x, y, color.Gray{Y: 55})
			}
		}
	}
	return img
}

// baseScene fills a frame with a gentle vertical brightness gradient
// standing in for warm sea-surface background.
func baseScene() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, sceneSize, sceneSize))
	for y := 0; y < sceneSize; y++ {
		v := uint8(20 + 30*y/sceneSize)
		for x := 0; x < sceneSize; x++ {
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

// paintBlob draws a filled disc of the given intensity with a linear
// falloff skirt of the given width. Pixels are only ever brightened.
func paintBlob(img *image.Gray, cx, cy, radius int, intensity, falloff uint8) {
	reach := radius + int(falloff)/4
	for y := cy - reach; y <= cy+reach; y++ {
		for x := cx - reach; x <= cx+reach; x++ {
			if x < 0 || y < 0 || x >= sceneSize || y >= sceneSize {
				continue
			}
			d := math.Hypot(float64(x-cx), float64(y-cy))
			var v uint8
			switch {
			case d <= float64(radius):
				v = intensity
			case reach > radius:
				frac := (d - float64(radius)) / float64(reach-radius)
				if frac < 1 {
					v = uint8(float64(intensity) * (1 - frac))
				}
			}
			if v > img.GrayAt(x, y).Y {
				img.SetGray(x, y, color.Gray{Y: v})
			}
		}
	}
}

func writePNG(path string, img *image.Gray) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
