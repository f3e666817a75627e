// Package postprocess finishes rendered frames before they are encoded.
package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample scales a supersampled frame down to w×h with Catmull-Rom
// filtering, premultiplying alpha first so transparent edges do not darken.
// Images already no larger than w×h are returned as is.
func Downsample(img *image.NRGBA, w, h int) *image.NRGBA {
	b := img.Bounds()
	if w <= 0 || h <= 0 || (b.Dx() <= w && b.Dy() <= h) {
		return img
	}

	premul := image.NewRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			si := img.PixOffset(x, y)
			di := premul.PixOffset(x, y)
			a := img.Pix[si+3]
			if a == 255 {
				copy(premul.Pix[di:di+4], img.Pix[si:si+4])
				continue
			}
			af := float64(a) / 255.0
			premul.Pix[di] = uint8(float64(img.Pix[si])*af + 0.5)
			premul.Pix[di+1] = uint8(float64(img.Pix[si+1])*af + 0.5)
			premul.Pix[di+2] = uint8(float64(img.Pix[si+2])*af + 0.5)
			premul.Pix[di+3] = a
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premul, premul.Bounds(), draw.Src, nil)

	result := image.NewNRGBA(dst.Bounds())
	for i := 0; i < len(dst.Pix); i += 4 {
		a := dst.Pix[i+3]
		switch {
		case a == 255:
			copy(result.Pix[i:i+4], dst.Pix[i:i+4])
		case a > 1:
			inv := 255.0 / float64(a)
			result.Pix[i] = clamp8(float64(dst.Pix[i]) * inv)
			result.Pix[i+1] = clamp8(float64(dst.Pix[i+1]) * inv)
			result.Pix[i+2] = clamp8(float64(dst.Pix[i+2]) * inv)
			result.Pix[i+3] = a
		default:
			result.Pix[i+3] = a
		}
	}
	return result
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
