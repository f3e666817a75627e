package raster

import (
	"image"
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"mocap-player/internal/scene"
)

// worldTri is a triangle in world space waiting to be projected.
type worldTri struct {
	P       [3]r3.Vec
	UV      [3][2]float64
	R, G, B uint8
	Tex     *image.NRGBA
}

func (t worldTri) normal() r3.Vec {
	n := r3.Cross(r3.Sub(t.P[1], t.P[0]), r3.Sub(t.P[2], t.P[0]))
	if r3.Norm(n) < 1e-12 {
		return r3.Vec{Y: 1}
	}
	return r3.Unit(n)
}

func rgb8(c scene.Color) (uint8, uint8, uint8) {
	return clamp255(c.R * 255), clamp255(c.G * 255), clamp255(c.B * 255)
}

const groundHalf = 15

// groundTris is a checker board of unit tiles on y=0 spanning ±15 in X and
// Z. With a texture every tile shows the whole texture.
func groundTris(tex *image.NRGBA) []worldTri {
	tris := make([]worldTri, 0, (2*groundHalf+1)*(2*groundHalf+1)*2)
	for i := -groundHalf; i <= groundHalf; i++ {
		for j := -groundHalf; j <= groundHalf; j++ {
			var g uint8 = 153
			if (i+j)&1 != 0 {
				g = 204
			}
			x, z := float64(j), float64(i)
			a := r3.Vec{X: x, Z: z}
			b := r3.Vec{X: x, Z: z + 1}
			c := r3.Vec{X: x + 1, Z: z + 1}
			d := r3.Vec{X: x + 1, Z: z}
			tris = append(tris,
				worldTri{P: [3]r3.Vec{a, b, c}, UV: [3][2]float64{{0, 0}, {0, 1}, {1, 1}}, R: g, G: g, B: g, Tex: tex},
				worldTri{P: [3]r3.Vec{a, c, d}, UV: [3][2]float64{{0, 0}, {1, 1}, {1, 0}}, R: g, G: g, B: g, Tex: tex},
			)
		}
	}
	return tris
}

// prismTris wraps the segment a→b in a square prism of half-width r.
func prismTris(a, b r3.Vec, r float64, cr, cg, cb uint8) []worldTri {
	axis := r3.Sub(b, a)
	if r3.Norm(axis) < 1e-9 {
		return nil
	}
	d := r3.Unit(axis)
	ref := r3.Vec{X: 1}
	if math.Abs(d.X) > 0.9 {
		ref = r3.Vec{Y: 1}
	}
	e1 := r3.Scale(r, r3.Unit(r3.Cross(d, ref)))
	e2 := r3.Scale(r, r3.Unit(r3.Cross(d, e1)))

	offs := [4]r3.Vec{
		r3.Add(e1, e2),
		r3.Sub(e1, e2),
		r3.Scale(-1, r3.Add(e1, e2)),
		r3.Sub(e2, e1),
	}
	var lo, hi [4]r3.Vec
	for k, o := range offs {
		lo[k] = r3.Add(a, o)
		hi[k] = r3.Add(b, o)
	}

	tris := make([]worldTri, 0, 12)
	add := func(p0, p1, p2 r3.Vec) {
		tris = append(tris, worldTri{P: [3]r3.Vec{p0, p1, p2}, R: cr, G: cg, B: cb})
	}
	for k := 0; k < 4; k++ {
		n := (k + 1) % 4
		add(lo[k], lo[n], hi[n])
		add(lo[k], hi[n], hi[k])
	}
	add(lo[0], lo[2], lo[1])
	add(lo[0], lo[3], lo[2])
	add(hi[0], hi[1], hi[2])
	add(hi[0], hi[2], hi[3])
	return tris
}

// octaTris is an octahedron of radius r around c, used as a joint marker.
func octaTris(c r3.Vec, r float64, cr, cg, cb uint8) []worldTri {
	px, nx := r3.Add(c, r3.Vec{X: r}), r3.Add(c, r3.Vec{X: -r})
	py, ny := r3.Add(c, r3.Vec{Y: r}), r3.Add(c, r3.Vec{Y: -r})
	pz, nz := r3.Add(c, r3.Vec{Z: r}), r3.Add(c, r3.Vec{Z: -r})
	faces := [8][3]r3.Vec{
		{py, px, pz}, {py, pz, nx}, {py, nx, nz}, {py, nz, px},
		{ny, pz, px}, {ny, nx, pz}, {ny, nz, nx}, {ny, px, nz},
	}
	tris := make([]worldTri, 0, 8)
	for _, f := range faces {
		tris = append(tris, worldTri{P: f, R: cr, G: cg, B: cb})
	}
	return tris
}

// triadTris draws the world axes from the origin: X red, Y green, Z blue.
func triadTris(r float64) []worldTri {
	var tris []worldTri
	tris = append(tris, prismTris(r3.Vec{}, r3.Vec{X: 1}, r, 255, 51, 51)...)
	tris = append(tris, prismTris(r3.Vec{}, r3.Vec{Y: 1}, r, 51, 255, 51)...)
	tris = append(tris, prismTris(r3.Vec{}, r3.Vec{Z: 1}, r, 51, 51, 255)...)
	return tris
}

// actorTris turns one frozen actor into bone prisms, plus a marker on the
// highlighted joint.
func actorTris(a scene.ActorView, boneRadius float64, spot int) []worldTri {
	cr, cg, cb := rgb8(a.Color)
	var tris []worldTri
	for _, s := range a.Segments {
		tris = append(tris, prismTris(s.Start, s.End, boneRadius, cr, cg, cb)...)
		if s.Bone == spot {
			tris = append(tris, octaTris(s.End, 2.5*boneRadius, 255, 0, 0)...)
		}
	}
	return tris
}
