package images

import (
	"gorgonia.org/tensor"
)

// ToCHWTensor converts a BGR HWC image into the tensor layout detection
// models expect: RGB channel order, channel-first (CHW), float32 values in
// 0..255. The OTX detection models normalize inside the graph, so no scaling
// is applied here.
//
// Arguments:
//   - src: The image to convert, typically a letterboxed canvas.
//
// Returns:
//   - A dense float32 tensor of shape (3, height, width).
//   - ErrInvalidImage when src fails validation.
func ToCHWTensor(src Image) (*tensor.Dense, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}

	plane := src.Height * src.Width
	data := make([]float32, Channels*plane)
	red := data[:plane]
	green := data[plane : 2*plane]
	blue := data[2*plane:]

	p := 0
	for i := 0; i < len(src.Data); i += Channels {
		// BGR bytes, RGB planes.
		blue[p] = float32(src.Data[i])
		green[p] = float32(src.Data[i+1])
		red[p] = float32(src.Data[i+2])
		p++
	}

	return tensor.New(
		tensor.WithShape(Channels, src.Height, src.Width),
		tensor.WithBacking(data),
	), nil
}
