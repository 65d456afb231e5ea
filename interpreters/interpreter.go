// Package interpreters - Adapters between detection models' native tensor
// formats and the generic annotation representation.
//
// An interpreter owns two narrow jobs: letterbox an input image into its
// model's fixed resolution (recording the scale used), and map raw model
// output back into bounding-box annotations in original-image coordinates.
// Interpreters hold no mutable state; every call is independent and safe for
// concurrent use.
package interpreters

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"github.com/wonjuleee/datumaro/annotations"
	"github.com/wonjuleee/datumaro/images"
)

// Prediction is raw model output in model-input pixel coordinates. Boxes and
// Labels are required and positionally paired; Scores is optional and nil
// when the model emits no confidences.
type Prediction struct {
	// Boxes are (left, top, right, bottom) tuples.
	Boxes  [][4]float32
	Labels []int
	Scores []float32
}

// Validate checks the parallel sequences for positional consistency.
func (p Prediction) Validate() error {
	if len(p.Labels) != len(p.Boxes) {
		return errors.Wrapf(annotations.ErrInvalidPrediction,
			"got %d boxes but %d labels", len(p.Boxes), len(p.Labels))
	}
	if p.Scores != nil && len(p.Scores) != len(p.Boxes) {
		return errors.Wrapf(annotations.ErrInvalidPrediction,
			"got %d boxes but %d scores", len(p.Boxes), len(p.Scores))
	}
	return nil
}

// ModelInterpreter converts between one model's tensor conventions and
// annotations.
type ModelInterpreter interface {
	// Preprocess letterboxes img into the model resolution and returns the
	// CHW input tensor plus the scale factor applied. The scale must be
	// handed back to Postprocess for the predictions made on this tensor.
	Preprocess(img images.Image) (*tensor.Dense, float32, error)

	// Postprocess maps a prediction made at the given scale back to
	// original-image coordinates.
	Postprocess(pred Prediction, scale float32) ([]annotations.Bbox, error)

	// Categories returns the model's embedded label-name table, or
	// (nil, false) when the model carries none and the caller must supply
	// names externally.
	Categories() (*annotations.LabelCategories, bool)

	// InputShape reports the fixed model resolution as (height, width).
	InputShape() (int, int)
}
