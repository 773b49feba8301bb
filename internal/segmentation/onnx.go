package segmentation

import (
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/troposcan/detection-service/internal/domain"
)

// ONNXProvider runs a pretrained U-Net pixel classifier through ONNX Runtime.
// The artifact is loaded once at construction and held for the process
// lifetime; Close releases it at shutdown. The session owns preallocated
// input/output tensors, so a mutex serializes inference.
type ONNXProvider struct {
	mu           sync.Mutex
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[float32]
}

// NewONNXProvider loads the segmentation model artifact. Any load failure is
// reported as ErrModelUnavailable so the caller selects the fallback variant
// instead of failing startup.
func NewONNXProvider(modelPath string) (*ONNXProvider, error) {
	if err := ort.InitializeEnvironment(); err != nil {
		return nil, fmt.Errorf("%w: initialize onnx environment: %v", domain.ErrModelUnavailable, err)
	}

	shape := ort.NewShape(1, 1, domain.FrameSize, domain.FrameSize)

	inputTensor, err := ort.NewEmptyTensor[float32](shape)
	if err != nil {
		ort.DestroyEnvironment()
		return nil, fmt.Errorf("%w: create input tensor: %v", domain.ErrModelUnavailable, err)
	}

	outputTensor, err := ort.NewEmptyTensor[float32](shape)
	if err != nil {
		inputTensor.Destroy()
		ort.DestroyEnvironment()
		return nil, fmt.Errorf("%w: create output tensor: %v", domain.ErrModelUnavailable, err)
	}

	session, err := ort.NewAdvancedSession(modelPath,
		[]string{"input"}, []string{"output"},
		[]ort.ArbitraryTensor{inputTensor}, []ort.ArbitraryTensor{outputTensor},
		nil)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		ort.DestroyEnvironment()
		return nil, fmt.Errorf("%w: load %s: %v", domain.ErrModelUnavailable, modelPath, err)
	}

	return &ONNXProvider{
		session:      session,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
	}, nil
}

// Segment runs one forward pass. Errors here are per-request inference
// failures; the pipeline degrades the request to the fallback variant.
func (p *ONNXProvider) Segment(frame *domain.Frame) (*domain.Mask, error) {
	if frame.Width != domain.FrameSize || frame.Height != domain.FrameSize {
		return nil, fmt.Errorf("%w: frame %dx%d, model expects %dx%d",
			domain.ErrDimensionMismatch, frame.Width, frame.Height, domain.FrameSize, domain.FrameSize)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	copy(p.inputTensor.GetData(), frame.Pix)
	if err := p.session.Run(); err != nil {
		return nil, fmt.Errorf("onnx inference: %w", err)
	}

	mask := domain.NewMask(frame.Width, frame.Height)
	for i, v := range p.outputTensor.GetData() {
		// The exported model ends in a sigmoid; clamp so the [0,1] mask
		// range holds even for artifacts that skip it.
		mask.Pix[i] = clampUnit(v)
	}
	return mask, nil
}

func (p *ONNXProvider) Type() domain.ModelType {
	return domain.ModelReal
}

// Close destroys the session, tensors, and ONNX environment.
func (p *ONNXProvider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.inputTensor != nil {
		p.inputTensor.Destroy()
	}
	if p.outputTensor != nil {
		p.outputTensor.Destroy()
	}
	if p.session != nil {
		p.session.Destroy()
	}
	ort.DestroyEnvironment()
}

func clampUnit(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
