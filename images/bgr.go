// Package images - BGR image buffers and the resize utilities shared by the
// model interpreters.
package images

import (
	"github.com/pkg/errors"
)

// ErrInvalidImage is returned when an image buffer fails validation.
var ErrInvalidImage = errors.New("invalid image")

// Channels is the channel count every interpreter input carries.
const Channels = 3

// Image is a decoded 8-bit image in HWC row-major layout with BGR channel
// order, the convention OpenCV-style decoders produce. The buffer is owned by
// the caller; nothing in this package mutates it in place.
type Image struct {
	// Data holds Height*Width*Channels bytes: rows top to bottom, pixels
	// left to right, channels B, G, R.
	Data   []byte
	Width  int
	Height int
}

// Validate checks the buffer against the declared dimensions.
//
// Returns:
//   - ErrInvalidImage (wrapped with detail) for non-positive dimensions or a
//     buffer whose length disagrees with Height*Width*Channels.
func (m Image) Validate() error {
	if m.Width <= 0 || m.Height <= 0 {
		return errors.Wrapf(ErrInvalidImage, "dimensions %dx%d", m.Width, m.Height)
	}
	want := m.Height * m.Width * Channels
	if len(m.Data) != want {
		return errors.Wrapf(ErrInvalidImage,
			"buffer holds %d bytes, %dx%dx%d needs %d",
			len(m.Data), m.Height, m.Width, Channels, want)
	}
	return nil
}

// At returns the B, G, R bytes of the pixel at (x, y). Bounds are not
// checked.
func (m Image) At(x, y int) (b, g, r uint8) {
	i := (y*m.Width + x) * Channels
	return m.Data[i], m.Data[i+1], m.Data[i+2]
}

// NewUniform returns a solid-color image filled with the given B, G, R
// values. Used by tests and as letterbox scaffolding.
func NewUniform(width, height int, b, g, r uint8) Image {
	data := make([]byte, height*width*Channels)
	for i := 0; i < len(data); i += Channels {
		data[i] = b
		data[i+1] = g
		data[i+2] = r
	}
	return Image{Data: data, Width: width, Height: height}
}
