// Package segmentation produces cloud-cluster probability masks from
// normalized frames. Two variants exist: a trained ONNX pixel classifier and
// a deterministic brightness-threshold fallback. The variant is chosen once
// at startup and injected into the pipeline; request handling never branches
// on global state.
package segmentation

import "github.com/troposcan/detection-service/internal/domain"

// Provider turns a normalized frame into a segmentation mask of the same
// dimensions.
type Provider interface {
	Segment(frame *domain.Frame) (*domain.Mask, error)
	Type() domain.ModelType
}
