package inference

import (
	"github.com/pkg/errors"

	"github.com/wonjuleee/datumaro/annotations"
	"github.com/wonjuleee/datumaro/images"
	"github.com/wonjuleee/datumaro/interpreters"
)

// boxRowSize is the stride of the raw boxes output: x1, y1, x2, y2, score.
const boxRowSize = 5

// ParseDetectionOutput converts the raw boxes and labels tensors of an OTX
// detection model into a structured prediction. The outputs are fixed-size;
// a negative label marks the first padding row and ends the valid region.
//
// Arguments:
//   - boxes: Flattened (x1, y1, x2, y2, score) rows.
//   - labels: One class index per row, same row count as boxes.
//
// Returns:
//   - The prediction in model-input coordinates, scores included.
//   - annotations.ErrInvalidPrediction when the tensors disagree on row
//     count.
func ParseDetectionOutput(boxes []float32, labels []int64) (interpreters.Prediction, error) {
	if len(boxes)%boxRowSize != 0 {
		return interpreters.Prediction{}, errors.Wrapf(annotations.ErrInvalidPrediction,
			"boxes tensor length %d is not a multiple of %d", len(boxes), boxRowSize)
	}
	rows := len(boxes) / boxRowSize
	if rows != len(labels) {
		return interpreters.Prediction{}, errors.Wrapf(annotations.ErrInvalidPrediction,
			"got %d box rows but %d labels", rows, len(labels))
	}

	pred := interpreters.Prediction{
		Boxes:  make([][4]float32, 0, rows),
		Labels: make([]int, 0, rows),
		Scores: make([]float32, 0, rows),
	}
	for i := 0; i < rows; i++ {
		if labels[i] < 0 {
			break
		}
		off := i * boxRowSize
		pred.Boxes = append(pred.Boxes, [4]float32{
			boxes[off], boxes[off+1], boxes[off+2], boxes[off+3],
		})
		pred.Scores = append(pred.Scores, boxes[off+4])
		pred.Labels = append(pred.Labels, int(labels[i]))
	}
	return pred, nil
}

// Detector runs the full pipeline for one model: preprocess an image through
// its interpreter, execute the ONNX session, and map the raw output back to
// annotations in original-image coordinates.
type Detector struct {
	interp interpreters.ModelInterpreter
	sess   *Session
}

// NewDetector builds a detector from an interpreter and a session config.
// The session's input resolution is taken from the interpreter; cfg only
// needs the model path and tensor names.
func NewDetector(interp interpreters.ModelInterpreter, cfg SessionConfig) (*Detector, error) {
	cfg.InputHeight, cfg.InputWidth = interp.InputShape()
	sess, err := NewSession(cfg)
	if err != nil {
		return nil, err
	}
	return &Detector{interp: interp, sess: sess}, nil
}

// Detect runs one image through the model and returns its annotations.
func (d *Detector) Detect(img images.Image) ([]annotations.Bbox, error) {
	input, scale, err := d.interp.Preprocess(img)
	if err != nil {
		return nil, err
	}

	boxes, labels, err := d.sess.Run(input.Data().([]float32))
	if err != nil {
		return nil, err
	}

	pred, err := ParseDetectionOutput(boxes, labels)
	if err != nil {
		return nil, err
	}
	return d.interp.Postprocess(pred, scale)
}

// Categories exposes the interpreter's label-name table, absent for the OTX
// detectors.
func (d *Detector) Categories() (*annotations.LabelCategories, bool) {
	return d.interp.Categories()
}

// Close releases the underlying session.
func (d *Detector) Close() {
	d.sess.Close()
}
