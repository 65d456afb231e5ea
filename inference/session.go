// Package inference - ONNX Runtime sessions and the image-to-annotations
// detection pipeline built on the model interpreters.
package inference

import (
	"github.com/pkg/errors"
	ort "github.com/yalue/onnxruntime_go"
)

// DefaultMaxDetections matches the fixed-size detection head of the
// OpenVINO-exported OTX models.
const DefaultMaxDetections = 100

// SessionConfig configures a detection model session.
type SessionConfig struct {
	// ModelPath is the path to the ONNX model file.
	ModelPath string
	// InputName is the model's image input tensor name.
	InputName string
	// BoxesName is the output tensor holding (x1, y1, x2, y2, score) rows.
	BoxesName string
	// LabelsName is the output tensor holding one class index per row.
	LabelsName string
	// InputHeight and InputWidth are the fixed model resolution.
	InputHeight int
	InputWidth  int
	// MaxDetections is the row count of the fixed-size outputs. Defaults to
	// DefaultMaxDetections.
	MaxDetections int
}

// Session wraps an ONNX Runtime session with preallocated input and output
// tensors for a detection model. Run is not safe for concurrent use; the
// tensors are reused between calls.
type Session struct {
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	boxes   *ort.Tensor[float32]
	labels  *ort.Tensor[int64]
}

// NewSession creates a session for the model at cfg.ModelPath. The ONNX
// Runtime environment is initialized on first use; call
// ort.SetSharedLibraryPath beforehand if the runtime library is not on the
// default search path.
func NewSession(cfg SessionConfig) (*Session, error) {
	if cfg.InputHeight <= 0 || cfg.InputWidth <= 0 {
		return nil, errors.Errorf(
			"input resolution %dx%d must be positive", cfg.InputHeight, cfg.InputWidth)
	}
	if cfg.MaxDetections <= 0 {
		cfg.MaxDetections = DefaultMaxDetections
	}

	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, errors.Wrap(err, "initialize onnxruntime environment")
		}
	}

	input, err := ort.NewEmptyTensor[float32](ort.NewShape(
		1, 3, int64(cfg.InputHeight), int64(cfg.InputWidth)))
	if err != nil {
		return nil, errors.Wrap(err, "create input tensor")
	}

	boxes, err := ort.NewEmptyTensor[float32](ort.NewShape(
		1, int64(cfg.MaxDetections), 5))
	if err != nil {
		input.Destroy()
		return nil, errors.Wrap(err, "create boxes tensor")
	}

	labels, err := ort.NewEmptyTensor[int64](ort.NewShape(
		1, int64(cfg.MaxDetections)))
	if err != nil {
		input.Destroy()
		boxes.Destroy()
		return nil, errors.Wrap(err, "create labels tensor")
	}

	session, err := ort.NewAdvancedSession(
		cfg.ModelPath,
		[]string{cfg.InputName},
		[]string{cfg.BoxesName, cfg.LabelsName},
		[]ort.ArbitraryTensor{input},
		[]ort.ArbitraryTensor{boxes, labels},
		nil,
	)
	if err != nil {
		input.Destroy()
		boxes.Destroy()
		labels.Destroy()
		return nil, errors.Wrapf(err, "create session for %s", cfg.ModelPath)
	}

	return &Session{
		session: session,
		input:   input,
		boxes:   boxes,
		labels:  labels,
	}, nil
}

// Run feeds one preprocessed CHW tensor through the model.
//
// Arguments:
//   - data: Exactly 3*InputHeight*InputWidth float32 values.
//
// Returns:
//   - The raw boxes rows and labels, copied out of the session tensors.
func (s *Session) Run(data []float32) ([]float32, []int64, error) {
	dst := s.input.GetData()
	if len(data) != len(dst) {
		return nil, nil, errors.Errorf(
			"input tensor holds %d floats, got %d", len(dst), len(data))
	}
	copy(dst, data)

	if err := s.session.Run(); err != nil {
		return nil, nil, errors.Wrap(err, "run session")
	}

	boxes := make([]float32, len(s.boxes.GetData()))
	copy(boxes, s.boxes.GetData())
	labels := make([]int64, len(s.labels.GetData()))
	copy(labels, s.labels.GetData())
	return boxes, labels, nil
}

// Close releases the session and its tensors.
func (s *Session) Close() {
	if s.input != nil {
		s.input.Destroy()
		s.input = nil
	}
	if s.boxes != nil {
		s.boxes.Destroy()
		s.boxes = nil
	}
	if s.labels != nil {
		s.labels.Destroy()
		s.labels = nil
	}
	if s.session != nil {
		s.session.Destroy()
		s.session = nil
	}
}
