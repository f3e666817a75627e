package raster

import (
	"image"
	"math"
)

// Vertex is a projected vertex: pixel coordinates, view-space depth (nearer
// is larger) and texture coordinates.
type Vertex struct {
	X, Y, Z float64
	U, V    float64
}

// Surface is what a triangle is painted with. Tex is optional; without it
// the flat color is used. Shade < 0 disables lighting.
type Surface struct {
	R, G, B uint8
	Tex     *image.NRGBA
	Shade   float64
}

// RasterizeTriangle fills one triangle with z-buffering and flat shading.
//
// This is the hot path: no allocation inside the pixel loop.
func RasterizeTriangle(fb *FrameBuffer, v [3]Vertex, s Surface, lc *LightConfig) {
	x0, y0, z0 := v[0].X, v[0].Y, v[0].Z
	x1, y1, z1 := v[1].X, v[1].Y, v[1].Z
	x2, y2, z2 := v[2].X, v[2].Y, v[2].Z

	// Bounding box
	minX := int(math.Floor(math.Min(math.Min(x0, x1), x2)))
	maxX := int(math.Ceil(math.Max(math.Max(x0, x1), x2)))
	minY := int(math.Floor(math.Min(math.Min(y0, y1), y2)))
	maxY := int(math.Ceil(math.Max(math.Max(y0, y1), y2)))

	if minX < 0 {
		minX = 0
	}
	if maxX >= fb.Width {
		maxX = fb.Width - 1
	}
	if minY < 0 {
		minY = 0
	}
	if maxY >= fb.Height {
		maxY = fb.Height - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	// Barycentric setup
	det := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if det > -1e-8 && det < 1e-8 {
		return
	}
	invDet := 1.0 / det

	dy12 := y1 - y2
	dx21 := x2 - x1
	dy20 := y2 - y0
	dx02 := x0 - x2

	hasTex := s.Tex != nil
	lighting := s.Shade >= 0 && lc != nil

	for sy := minY; sy <= maxY; sy++ {
		// sample at pixel centres
		dsy := float64(sy) + 0.5 - y2
		rowOff := sy * fb.Width
		for sx := minX; sx <= maxX; sx++ {
			dsx := float64(sx) + 0.5 - x2
			w0 := (dy12*dsx + dx21*dsy) * invDet
			w1 := (dy20*dsx + dx02*dsy) * invDet
			w2 := 1.0 - w0 - w1

			if w0 < -0.001 || w1 < -0.001 || w2 < -0.001 {
				continue
			}

			z := w0*z0 + w1*z1 + w2*z2
			zIdx := rowOff + sx
			if z <= fb.ZBuf[zIdx] {
				continue
			}

			cr, cg, cb, ca := s.R, s.G, s.B, uint8(255)
			if hasTex {
				u := w0*v[0].U + w1*v[1].U + w2*v[2].U
				tv := w0*v[0].V + w1*v[1].V + w2*v[2].V
				cr, cg, cb, ca = SampleTexture(s.Tex, u, tv)
			}
			// Skip transparent texels
			if ca < 8 {
				continue
			}
			fb.ZBuf[zIdx] = z

			if lighting {
				cr = lc.lit(cr, s.Shade)
				cg = lc.lit(cg, s.Shade)
				cb = lc.lit(cb, s.Shade)
			}

			pxIdx := zIdx * 4
			fb.Color[pxIdx] = cr
			fb.Color[pxIdx+1] = cg
			fb.Color[pxIdx+2] = cb
			fb.Color[pxIdx+3] = 255
		}
	}
}
