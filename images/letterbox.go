package images

import (
	"image"

	"github.com/chewxy/math32"
	"github.com/nfnt/resize"
	"github.com/pkg/errors"
)

// Rescaled is the result of an aspect-ratio-preserving fit: the letterboxed
// canvas and the scale factor that produced it. Scale must travel with the
// predictions made on Image so they can be mapped back to the source frame;
// pairing a scale with the wrong frame silently corrupts every coordinate,
// and no check here can catch that.
type Rescaled struct {
	Image Image
	// Scale is resized dimension / original dimension, shared by both axes.
	// Greater than 1 when the source is smaller than the target (upscale to
	// fit).
	Scale float32
}

// RescaleKeepingAspectRatio fits src into a targetHeight x targetWidth canvas
// without distorting it: both axes are scaled by
// min(targetHeight/h, targetWidth/w), and the right/bottom remainder is
// zero-padded (black). Channel order is untouched.
//
// Arguments:
//   - src: The image to fit, any dimensions.
//   - targetHeight, targetWidth: The fixed model resolution.
//
// Returns:
//   - The letterboxed canvas of exactly targetHeight x targetWidth and the
//     scale applied.
//   - ErrInvalidImage when src fails validation, or an error for
//     non-positive targets.
func RescaleKeepingAspectRatio(src Image, targetHeight, targetWidth int) (Rescaled, error) {
	if err := src.Validate(); err != nil {
		return Rescaled{}, err
	}
	if targetHeight <= 0 || targetWidth <= 0 {
		return Rescaled{}, errors.Errorf(
			"target dimensions %dx%d must be positive", targetHeight, targetWidth)
	}

	scale := math32.Min(
		float32(targetHeight)/float32(src.Height),
		float32(targetWidth)/float32(src.Width),
	)
	// The bound axis lands exactly on its target; the free axis can only
	// round down to it, never past it.
	newH := int(math32.Round(float32(src.Height) * scale))
	newW := int(math32.Round(float32(src.Width) * scale))
	// Extreme aspect ratios can round the free axis to zero; keep one pixel.
	if newH < 1 {
		newH = 1
	}
	if newW < 1 {
		newW = 1
	}

	resized := resizeBGR(src, newW, newH)

	canvas := Image{
		Data:   make([]byte, targetHeight*targetWidth*Channels),
		Width:  targetWidth,
		Height: targetHeight,
	}
	for y := 0; y < newH; y++ {
		srcRow := resized.Data[y*newW*Channels : (y+1)*newW*Channels]
		dstOff := y * targetWidth * Channels
		copy(canvas.Data[dstOff:dstOff+len(srcRow)], srcRow)
	}

	return Rescaled{Image: canvas, Scale: scale}, nil
}

// resizeBGR resamples src to newW x newH. The interpolation treats the three
// channels independently, so the BGR ordering survives the round trip through
// the RGBA working buffer.
func resizeBGR(src Image, newW, newH int) Image {
	if newW == src.Width && newH == src.Height {
		return src
	}

	rgba := image.NewRGBA(image.Rect(0, 0, src.Width, src.Height))
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			si := (y*src.Width + x) * Channels
			di := y*rgba.Stride + x*4
			rgba.Pix[di] = src.Data[si]
			rgba.Pix[di+1] = src.Data[si+1]
			rgba.Pix[di+2] = src.Data[si+2]
			rgba.Pix[di+3] = 255
		}
	}

	out := resize.Resize(uint(newW), uint(newH), rgba, resize.Bilinear)

	dst := Image{
		Data:   make([]byte, newH*newW*Channels),
		Width:  newW,
		Height: newH,
	}
	for y := 0; y < newH; y++ {
		for x := 0; x < newW; x++ {
			c0, c1, c2, _ := out.At(x, y).RGBA()
			di := (y*newW + x) * Channels
			dst.Data[di] = uint8(c0 >> 8)
			dst.Data[di+1] = uint8(c1 >> 8)
			dst.Data[di+2] = uint8(c2 >> 8)
		}
	}
	return dst
}
