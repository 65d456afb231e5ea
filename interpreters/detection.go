package interpreters

import (
	"github.com/pkg/errors"
	"gorgonia.org/tensor"

	"github.com/wonjuleee/datumaro/annotations"
	"github.com/wonjuleee/datumaro/images"
)

// Model input geometry of the OpenVINO-exported OTX detectors. Fixed per
// model family, set at construction, never mutated.
const (
	atssInputHeight = 736
	atssInputWidth  = 992

	ssdInputHeight = 864
	ssdInputWidth  = 864
)

// Detection interprets OTX-style detection models: BGR input letterboxed to a
// fixed resolution, output boxes in input-canvas pixels, no embedded label
// names.
type Detection struct {
	inputHeight int
	inputWidth  int
}

// NewATSS returns the interpreter for the OTX ATSS detector (736x992 input).
func NewATSS() *Detection {
	return &Detection{inputHeight: atssInputHeight, inputWidth: atssInputWidth}
}

// NewSSD returns the interpreter for the OTX SSD detector (864x864 input).
func NewSSD() *Detection {
	return &Detection{inputHeight: ssdInputHeight, inputWidth: ssdInputWidth}
}

// NewDetection returns an interpreter for a detector with a custom fixed
// input resolution.
func NewDetection(inputHeight, inputWidth int) (*Detection, error) {
	if inputHeight <= 0 || inputWidth <= 0 {
		return nil, errors.Errorf(
			"input resolution %dx%d must be positive", inputHeight, inputWidth)
	}
	return &Detection{inputHeight: inputHeight, inputWidth: inputWidth}, nil
}

// InputShape reports the fixed model resolution as (height, width).
func (d *Detection) InputShape() (int, int) {
	return d.inputHeight, d.inputWidth
}

// Preprocess fits img into the model resolution keeping aspect ratio, swaps
// BGR to RGB and reorders HWC to CHW.
//
// Arguments:
//   - img: A decoded BGR image of arbitrary dimensions.
//
// Returns:
//   - The float32 input tensor of shape (3, inputHeight, inputWidth).
//   - The scale factor applied; pass it unchanged to Postprocess.
//   - images.ErrInvalidImage for malformed input.
func (d *Detection) Preprocess(img images.Image) (*tensor.Dense, float32, error) {
	rescaled, err := images.RescaleKeepingAspectRatio(img, d.inputHeight, d.inputWidth)
	if err != nil {
		return nil, 0, errors.Wrap(err, "preprocess")
	}

	t, err := images.ToCHWTensor(rescaled.Image)
	if err != nil {
		return nil, 0, errors.Wrap(err, "preprocess")
	}
	return t, rescaled.Scale, nil
}

// Postprocess divides every box coordinate by scale, recovering
// original-image coordinates, and pairs boxes with their positional labels
// and optional scores. Order is preserved and boxes are not clipped to the
// image bounds. Passing a scale that was not produced by the matching
// Preprocess call yields geometrically wrong annotations and is not
// detectable here.
//
// Arguments:
//   - pred: The raw model output.
//   - scale: The scale returned by the matching Preprocess call.
//
// Returns:
//   - One annotation per box, same order as pred.Boxes.
//   - annotations.ErrInvalidPrediction for mismatched sequence lengths, or
//     an error for a non-positive scale.
func (d *Detection) Postprocess(pred Prediction, scale float32) ([]annotations.Bbox, error) {
	if err := pred.Validate(); err != nil {
		return nil, err
	}
	if scale <= 0 {
		return nil, errors.Errorf("scale %f must be positive", scale)
	}
	rScale := 1 / scale
	return annotations.NewBboxesWithRescaling(pred.Boxes, pred.Labels, pred.Scores, rScale)
}

// Categories reports that OTX detectors embed no label-name table; callers
// resolve names from an external source such as a dataset's category list.
func (d *Detection) Categories() (*annotations.LabelCategories, bool) {
	return nil, false
}
