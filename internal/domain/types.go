package domain

import "time"

// FrameSize is the fixed square resolution every frame and mask use.
// All model inference and metric reduction operate at this resolution.
const FrameSize = 256

// Frame is a single-channel intensity field with values in [0,1].
// IR convention is inverted intensity: bright pixel = cold cloud top.
type Frame struct {
	Width  int
	Height int
	Pix    []float32 // row-major, len == Width*Height
}

// NewFrame allocates a zeroed frame.
func NewFrame(width, height int) *Frame {
	return &Frame{Width: width, Height: height, Pix: make([]float32, width*height)}
}

// Mask holds per-pixel classified-cloud probability in [0,1].
// A mask always has the same dimensions as the frame it was derived from.
type Mask struct {
	Width  int
	Height int
	Pix    []float32
}

// NewMask allocates a zeroed mask.
func NewMask(width, height int) *Mask {
	return &Mask{Width: width, Height: height, Pix: make([]float32, width*height)}
}

// RiskTier is the three-level storm risk classification.
type RiskTier string

const (
	TierLow      RiskTier = "low"
	TierModerate RiskTier = "moderate"
	TierHigh     RiskTier = "high"
)

// EventClass is the finer-grained descriptive label for a detected system.
type EventClass string

const (
	EventCyclonicCluster    EventClass = "Cyclonic Cluster"
	EventSevereThunderstorm EventClass = "Severe Thunderstorm"
	EventLocalRainstorm     EventClass = "Local Rainstorm"
	EventLowRiskCluster     EventClass = "Low-Risk Cloud Cluster"
)

// ModelType identifies which segmentation variant produced a result.
type ModelType string

const (
	ModelReal     ModelType = "real_onnx"
	ModelFallback ModelType = "fallback"
)

// Metrics are the scalar reductions of a (frame, mask) pair.
type Metrics struct {
	TemperatureC      float64 `json:"temperature_c"`
	ClusterAreaKm2    float64 `json:"cluster_area_km2"`
	CoveragePercent   float64 `json:"coverage_percent"`
	ConfidencePercent float64 `json:"confidence_percent"`
}

// Result is the terminal artifact of one detection run.
// OverlayPNG and ProcessedPNG are encoded images; []byte fields serialize
// as base64 in JSON, matching what UI consumers expect.
type Result struct {
	Tier         RiskTier   `json:"risk_level"`
	Event        EventClass `json:"event_class"`
	Metrics      Metrics    `json:"metrics"`
	Narrative    string     `json:"prediction"`
	ModelType    ModelType  `json:"model_type"`
	OverlayPNG   []byte     `json:"overlay_image"`
	ProcessedPNG []byte     `json:"processed_image"`
	ProcessedAt  time.Time  `json:"processed_at"`
}
