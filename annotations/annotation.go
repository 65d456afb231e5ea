// Package annotations - Generic annotation entities produced by model interpreters.
package annotations

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
)

// ErrInvalidPrediction is returned when a prediction's parallel sequences
// (boxes, labels, scores) disagree on length.
var ErrInvalidPrediction = errors.New("invalid prediction")

// Bbox is an axis-aligned bounding box annotation in original-image pixel
// coordinates. Label is a class index; human-readable names come from an
// external category table, not from the annotation itself.
type Bbox struct {
	X1, Y1, X2, Y2 float32
	Label          int
	// Score is only meaningful when HasScore is set.
	Score    float32
	HasScore bool
}

func (b Bbox) String() string {
	if b.HasScore {
		return fmt.Sprintf("Bbox label=%d score=%f (%f, %f)-(%f, %f)",
			b.Label, b.Score, b.X1, b.Y1, b.X2, b.Y2)
	}
	return fmt.Sprintf("Bbox label=%d (%f, %f)-(%f, %f)",
		b.Label, b.X1, b.Y1, b.X2, b.Y2)
}

// Area returns the area of the box in square pixels.
func (b Bbox) Area() float32 {
	return (b.X2 - b.X1) * (b.Y2 - b.Y1)
}

// IoU computes the Intersection over Union between two boxes, a value in
// [0, 1] where 0 means no overlap and 1 means identical boxes.
//
// Arguments:
//   - o: The other box to compare against.
//
// Returns:
//   - The IoU score as float32.
func (b Bbox) IoU(o Bbox) float32 {
	ix1 := math32.Max(b.X1, o.X1)
	iy1 := math32.Max(b.Y1, o.Y1)
	ix2 := math32.Min(b.X2, o.X2)
	iy2 := math32.Min(b.Y2, o.Y2)

	interW := ix2 - ix1
	interH := iy2 - iy1
	if interW <= 0 || interH <= 0 {
		return 0
	}
	interArea := interW * interH

	// Inclusion-exclusion: Union(A, B) = Area(A) + Area(B) - Intersection(A, B).
	unionArea := b.Area() + o.Area() - interArea
	return interArea / unionArea
}

// NewBboxesWithRescaling maps boxes from model-input coordinates back to
// original-image coordinates by multiplying every coordinate by rScale, and
// pairs each box with its positional label (and score, when scores are
// supplied). Ordering is preserved; nothing is clipped, filtered or
// deduplicated. Boxes extending past the original image bounds are returned
// as-is; clipping is the caller's decision.
//
// Arguments:
//   - boxes: Boxes as (left, top, right, bottom) in model-input pixels.
//   - labels: Class index per box, positional correspondence.
//   - scores: Optional confidence per box; pass nil when the model emits none.
//   - rScale: Reciprocal of the preprocessing scale factor.
//
// Returns:
//   - One Bbox per input box, same order.
//   - ErrInvalidPrediction if the sequence lengths disagree.
func NewBboxesWithRescaling(boxes [][4]float32, labels []int, scores []float32, rScale float32) ([]Bbox, error) {
	if len(labels) != len(boxes) {
		return nil, errors.Wrapf(ErrInvalidPrediction,
			"got %d boxes but %d labels", len(boxes), len(labels))
	}
	if scores != nil && len(scores) != len(boxes) {
		return nil, errors.Wrapf(ErrInvalidPrediction,
			"got %d boxes but %d scores", len(boxes), len(scores))
	}

	bboxes := make([]Bbox, 0, len(boxes))
	for i, box := range boxes {
		b := Bbox{
			X1:    box[0] * rScale,
			Y1:    box[1] * rScale,
			X2:    box[2] * rScale,
			Y2:    box[3] * rScale,
			Label: labels[i],
		}
		if scores != nil {
			b.Score = scores[i]
			b.HasScore = true
		}
		bboxes = append(bboxes, b)
	}
	return bboxes, nil
}
