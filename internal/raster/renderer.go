// Package raster draws a scene snapshot into an image with a small software
// rasterizer: checker ground, axis triad and one prism per bone.
package raster

import (
	"image"
	"image/color"

	"mocap-player/internal/scene"
)

// Options control a render.
type Options struct {
	Width, Height int
	Supersample   int // the image is Width·Supersample wide; downsample after
	Ground        *image.NRGBA
	Background    color.NRGBA
	Light         LightConfig
	BoneRadius    float64
	TriadRadius   float64
}

// DefaultOptions renders 640×480 on black.
func DefaultOptions() Options {
	return Options{
		Width:       640,
		Height:      480,
		Supersample: 1,
		Background:  color.NRGBA{A: 255},
		Light:       DefaultLightConfig(),
		BoneRadius:  0.03,
		TriadRadius: 0.01,
	}
}

// Render draws snap and returns the full-resolution image.
func Render(snap scene.Snapshot, opts Options) *image.NRGBA {
	ss := max(opts.Supersample, 1)
	w, h := opts.Width*ss, opts.Height*ss
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}

	fb := NewFrameBuffer(w, h)
	bg := opts.Background
	fb.Clear(bg.R, bg.G, bg.B, bg.A)

	view := NewView(snap.Camera, w, h)
	lc := opts.Light

	var tris []worldTri
	if snap.Background {
		tris = append(tris, triadTris(opts.TriadRadius)...)
		tris = append(tris, groundTris(opts.Ground)...)
	}
	for _, a := range snap.Actors {
		tris = append(tris, actorTris(a, opts.BoneRadius, snap.SpotJoint)...)
	}

	for _, t := range tris {
		var v [3]Vertex
		visible := true
		for k := 0; k < 3; k++ {
			pv, ok := view.Project(t.P[k])
			if !ok {
				visible = false
				break
			}
			pv.U, pv.V = t.UV[k][0], t.UV[k][1]
			v[k] = pv
		}
		if !visible {
			continue
		}
		s := Surface{R: t.R, G: t.G, B: t.B, Tex: t.Tex, Shade: -1}
		if snap.Light {
			s.Shade = lc.ComputeShade(t.normal())
		}
		RasterizeTriangle(fb, v, s, &lc)
	}

	return fb.Image()
}
