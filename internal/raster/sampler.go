package raster

import (
	"image"
	"math"
)

// SampleTexture performs bilinear filtering with UV wrapping, so a ground
// tile can repeat a texture. Accesses tex.Pix directly for speed.
func SampleTexture(tex *image.NRGBA, u, v float64) (r, g, b, a uint8) {
	w := tex.Rect.Dx()
	h := tex.Rect.Dy()
	if w == 0 || h == 0 {
		return 0, 0, 0, 0
	}

	u -= math.Floor(u)
	v -= math.Floor(v)

	fx := u * float64(w-1)
	fy := v * float64(h-1)
	x0 := int(fx)
	y0 := int(fy)
	x1 := (x0 + 1) % w
	y1 := (y0 + 1) % h
	dx := fx - float64(x0)
	dy := fy - float64(y0)

	ox, oy := tex.Rect.Min.X, tex.Rect.Min.Y
	i00 := tex.PixOffset(ox+x0, oy+y0)
	i10 := tex.PixOffset(ox+x1, oy+y0)
	i01 := tex.PixOffset(ox+x0, oy+y1)
	i11 := tex.PixOffset(ox+x1, oy+y1)

	w00 := (1 - dx) * (1 - dy)
	w10 := dx * (1 - dy)
	w01 := (1 - dx) * dy
	w11 := dx * dy

	pix := tex.Pix
	mix := func(c int) uint8 {
		f := float64(pix[i00+c])*w00 + float64(pix[i10+c])*w10 +
			float64(pix[i01+c])*w01 + float64(pix[i11+c])*w11
		return uint8(f + 0.5)
	}
	return mix(0), mix(1), mix(2), mix(3)
}
