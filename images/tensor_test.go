package images

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"
)

// TestToCHWTensorLayoutAndChannelSwap checks the BGR to RGB swap together
// with the HWC to CHW reorder: a pure-blue BGR image must land entirely in
// the last (blue) channel plane of the channel-first tensor.
func TestToCHWTensorLayoutAndChannelSwap(t *testing.T) {
	img := NewUniform(4, 2, 255, 0, 0) // BGR (255, 0, 0): pure blue

	dense, err := ToCHWTensor(img)
	require.NoError(t, err)
	require.Equal(t, tensor.Shape{3, 2, 4}, dense.Shape(), "tensor should be channel-first")

	data := dense.Data().([]float32)
	require.Len(t, data, 3*2*4)

	plane := 2 * 4
	for i := 0; i < plane; i++ {
		assert.Equal(t, float32(0), data[i], "red plane should be zero for a blue image")
		assert.Equal(t, float32(0), data[plane+i], "green plane should be zero for a blue image")
		assert.Equal(t, float32(255), data[2*plane+i], "blue plane should hold the blue intensity")
	}
}

// TestToCHWTensorPerPixel checks that distinct pixels keep their positions
// through the reorder.
func TestToCHWTensorPerPixel(t *testing.T) {
	// 2x1 image: left pixel BGR (1, 2, 3), right pixel BGR (4, 5, 6).
	img := Image{Data: []byte{1, 2, 3, 4, 5, 6}, Width: 2, Height: 1}

	dense, err := ToCHWTensor(img)
	require.NoError(t, err)

	data := dense.Data().([]float32)
	// CHW planes of 2 values each, RGB order.
	assert.Equal(t, []float32{3, 6, 2, 5, 1, 4}, data,
		"planes should be R then G then B, row-major within each plane")
}

func TestToCHWTensorInvalidImage(t *testing.T) {
	_, err := ToCHWTensor(Image{})
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = ToCHWTensor(Image{Data: make([]byte, 5), Width: 2, Height: 1})
	assert.ErrorIs(t, err, ErrInvalidImage)
}

func TestImageValidate(t *testing.T) {
	assert.NoError(t, NewUniform(2, 3, 0, 0, 0).Validate())
	assert.ErrorIs(t, Image{Data: []byte{1}, Width: 0, Height: 1}.Validate(), ErrInvalidImage)
	assert.ErrorIs(t, Image{Data: []byte{1}, Width: 1, Height: -1}.Validate(), ErrInvalidImage)
	assert.ErrorIs(t, Image{Data: []byte{1, 2, 3, 4}, Width: 1, Height: 1}.Validate(), ErrInvalidImage)
}
