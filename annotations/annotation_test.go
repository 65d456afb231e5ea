package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewBboxesWithRescaling validates the coordinate mapping back to
// original-image space and the positional pairing of boxes with labels and
// scores.
func TestNewBboxesWithRescaling(t *testing.T) {
	boxes := [][4]float32{
		{100, 100, 200, 200},
		{10, 20, 30, 40},
	}
	labels := []int{3, 7}
	scores := []float32{0.9, 0.4}

	// Scale 0.5 during preprocessing means multiplying by 2 on the way back.
	bboxes, err := NewBboxesWithRescaling(boxes, labels, scores, 2.0)
	require.NoError(t, err)
	require.Len(t, bboxes, 2, "one annotation per box, none dropped")

	assert.Equal(t, Bbox{X1: 200, Y1: 200, X2: 400, Y2: 400, Label: 3, Score: 0.9, HasScore: true}, bboxes[0])
	assert.Equal(t, Bbox{X1: 20, Y1: 40, X2: 60, Y2: 80, Label: 7, Score: 0.4, HasScore: true}, bboxes[1])
}

func TestNewBboxesWithRescalingNoScores(t *testing.T) {
	bboxes, err := NewBboxesWithRescaling([][4]float32{{1, 2, 3, 4}}, []int{0}, nil, 1.0)
	require.NoError(t, err)
	require.Len(t, bboxes, 1)
	assert.False(t, bboxes[0].HasScore, "score should be marked absent when the model emits none")
}

// TestNewBboxesWithRescalingNoClipping documents the caller contract: boxes
// past the original image bounds are returned untouched.
func TestNewBboxesWithRescalingNoClipping(t *testing.T) {
	bboxes, err := NewBboxesWithRescaling([][4]float32{{-10, -10, 5000, 5000}}, []int{0}, nil, 2.0)
	require.NoError(t, err)
	assert.Equal(t, float32(-20), bboxes[0].X1)
	assert.Equal(t, float32(10000), bboxes[0].X2)
}

func TestNewBboxesWithRescalingLengthMismatch(t *testing.T) {
	boxes := [][4]float32{{1, 2, 3, 4}, {5, 6, 7, 8}}

	_, err := NewBboxesWithRescaling(boxes, []int{1}, nil, 1.0)
	assert.ErrorIs(t, err, ErrInvalidPrediction, "labels shorter than boxes should fail fast")

	_, err = NewBboxesWithRescaling(boxes, []int{1, 2}, []float32{0.5}, 1.0)
	assert.ErrorIs(t, err, ErrInvalidPrediction, "scores shorter than boxes should fail fast")
}

func TestBboxIoU(t *testing.T) {
	a := Bbox{X1: 0, Y1: 0, X2: 10, Y2: 10}
	b := Bbox{X1: 5, Y1: 5, X2: 15, Y2: 15}

	// Intersection 25, union 175.
	assert.InDelta(t, 25.0/175.0, float64(a.IoU(b)), 1e-6)
	assert.InDelta(t, 1.0, float64(a.IoU(a)), 1e-6, "identical boxes fully overlap")

	c := Bbox{X1: 20, Y1: 20, X2: 30, Y2: 30}
	assert.Zero(t, a.IoU(c), "disjoint boxes have zero IoU")
}

func TestLabelCategories(t *testing.T) {
	cats := NewLabelCategories([]string{"person", "car"})

	name, ok := cats.Name(1)
	require.True(t, ok)
	assert.Equal(t, "car", name)

	_, ok = cats.Name(2)
	assert.False(t, ok, "out-of-range label should not resolve")
	_, ok = cats.Name(-1)
	assert.False(t, ok)

	var absent *LabelCategories
	_, ok = absent.Name(0)
	assert.False(t, ok, "nil table resolves nothing")
}
