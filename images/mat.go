package images

import (
	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// FromMat copies an OpenCV Mat into an Image. The Mat must be 8-bit 3-channel
// (CV_8UC3), which is what gocv.IMRead and gocv.IMDecode produce for color
// images, already in BGR order.
//
// Arguments:
//   - m: The source Mat; not closed by this function.
//
// Returns:
//   - An Image owning a copy of the pixel data.
//   - ErrInvalidImage for empty Mats or unsupported Mat types.
func FromMat(m gocv.Mat) (Image, error) {
	if m.Empty() {
		return Image{}, errors.Wrap(ErrInvalidImage, "empty mat")
	}
	if m.Type() != gocv.MatTypeCV8UC3 {
		return Image{}, errors.Wrapf(ErrInvalidImage,
			"mat type %d, need 8-bit 3-channel BGR", m.Type())
	}

	data := m.ToBytes()
	img := Image{Data: data, Width: m.Cols(), Height: m.Rows()}
	if err := img.Validate(); err != nil {
		return Image{}, err
	}
	return img, nil
}

// DecodeBGR decodes an encoded image (JPEG, PNG, ...) into a BGR Image.
func DecodeBGR(buf []byte) (Image, error) {
	mat, err := gocv.IMDecode(buf, gocv.IMReadColor)
	if err != nil {
		return Image{}, errors.Wrap(err, "decode image")
	}
	defer mat.Close()
	return FromMat(mat)
}
