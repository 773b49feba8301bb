// Package pipeline orchestrates one detection run: decode, normalize,
// segment, reduce to metrics, classify, and render the overlay. Each request
// is an independent stateless invocation; the only shared state is the
// read-only model artifact inside the injected provider.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/troposcan/detection-service/internal/domain"
	"github.com/troposcan/detection-service/internal/imagery"
	"github.com/troposcan/detection-service/internal/observability"
	"github.com/troposcan/detection-service/internal/segmentation"
)

// SampleSource supplies the raw bytes of pre-supplied demonstration images.
type SampleSource interface {
	Get(id string) ([]byte, error)
}

// Detector runs the detection pipeline with a primary segmentation provider
// and the deterministic fallback for per-request degradation.
type Detector struct {
	provider segmentation.Provider
	fallback *segmentation.FallbackProvider
	samples  SampleSource
	logger   *slog.Logger
	metrics  *observability.Metrics
	ready    atomic.Bool
}

// New creates a Detector. The provider is selected once at startup and never
// swapped per request.
func New(provider segmentation.Provider, sampleSource SampleSource, logger *slog.Logger, metrics *observability.Metrics) *Detector {
	return &Detector{
		provider: provider,
		fallback: segmentation.NewFallbackProvider(),
		samples:  sampleSource,
		logger:   logger,
		metrics:  metrics,
	}
}

// ModelType reports the variant selected at startup.
func (d *Detector) ModelType() domain.ModelType {
	return d.provider.Type()
}

// CheckReadiness returns nil once at least one detection has completed.
func (d *Detector) CheckReadiness(_ context.Context) error {
	if !d.ready.Load() {
		return errors.New("no detection has completed yet")
	}
	return nil
}

// Detect runs the full pipeline on a raw encoded image.
func (d *Detector) Detect(ctx context.Context, raw []byte) (domain.Result, error) {
	start := time.Now()

	result, err := d.run(ctx, raw)
	if err != nil {
		d.metrics.DetectionErrors.WithLabelValues(errorReason(err)).Inc()
		return domain.Result{}, err
	}

	d.metrics.DetectionsTotal.WithLabelValues(string(result.Tier), string(result.ModelType)).Inc()
	d.metrics.DetectionDuration.Observe(time.Since(start).Seconds())
	d.ready.Store(true)

	d.logger.Info("detection complete",
		"tier", result.Tier,
		"event", result.Event,
		"model_type", result.ModelType,
		"coverage_percent", result.Metrics.CoveragePercent,
		"duration", time.Since(start),
	)
	return result, nil
}

// DetectSample runs the pipeline on one of the pre-supplied sample images.
func (d *Detector) DetectSample(ctx context.Context, sampleID string) (domain.Result, error) {
	raw, err := d.samples.Get(sampleID)
	if err != nil {
		return domain.Result{}, err
	}
	return d.Detect(ctx, raw)
}

func (d *Detector) run(ctx context.Context, raw []byte) (domain.Result, error) {
	if err := checkContext(ctx); err != nil {
		return domain.Result{}, err
	}

	img, err := imagery.Decode(raw)
	if err != nil {
		return domain.Result{}, err
	}
	frame := imagery.Normalize(img)

	if err := checkContext(ctx); err != nil {
		return domain.Result{}, err
	}

	mask, modelType, err := d.segment(frame)
	if err != nil {
		return domain.Result{}, err
	}

	metrics, err := domain.ExtractMetrics(frame, mask)
	if err != nil {
		return domain.Result{}, err
	}

	tier, event, err := domain.Classify(metrics)
	if err != nil {
		return domain.Result{}, err
	}

	if err := checkContext(ctx); err != nil {
		return domain.Result{}, err
	}

	overlay, err := imagery.RenderOverlay(frame, mask)
	if err != nil {
		return domain.Result{}, err
	}
	processed, err := imagery.EncodeFrame(frame)
	if err != nil {
		return domain.Result{}, err
	}

	return domain.Result{
		Tier:         tier,
		Event:        event,
		Metrics:      metrics,
		Narrative:    domain.Narrative(tier, metrics),
		ModelType:    modelType,
		OverlayPNG:   overlay,
		ProcessedPNG: processed,
		ProcessedAt:  domain.Now(),
	}, nil
}

// segment runs the selected provider, degrading a failed real-model
// inference to the fallback for this request only. The returned model type
// reflects any degradation so callers can distinguish authoritative from
// demonstration output.
func (d *Detector) segment(frame *domain.Frame) (*domain.Mask, domain.ModelType, error) {
	mask, err := d.provider.Segment(frame)
	if err == nil {
		return mask, d.provider.Type(), nil
	}
	if d.provider.Type() != domain.ModelReal {
		return nil, "", err
	}

	d.logger.Warn("inference failed, degrading request to fallback", "error", err)
	d.metrics.Degradations.Inc()

	mask, err = d.fallback.Segment(frame)
	if err != nil {
		return nil, "", err
	}
	return mask, domain.ModelFallback, nil
}

func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
	}
	return nil
}

func errorReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrDecode), errors.Is(err, domain.ErrUnsupportedFormat):
		return "decode"
	case errors.Is(err, domain.ErrTimeout):
		return "timeout"
	case errors.Is(err, domain.ErrDimensionMismatch), errors.Is(err, domain.ErrInvalidMetrics):
		return "internal"
	default:
		return "segmentation"
	}
}
