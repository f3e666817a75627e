package raster

import (
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"mocap-player/internal/asf"
	"mocap-player/internal/scene"
	"mocap-player/internal/skeleton"
	"mocap-player/internal/testutil"
)

func pixel(img *image.NRGBA, x, y int) color.NRGBA {
	i := img.PixOffset(x, y)
	return color.NRGBA{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2], A: img.Pix[i+3]}
}

func TestRasterizeTriangleDepthTest(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	far := [3]Vertex{{X: 0, Y: 0, Z: -3}, {X: 8, Y: 0, Z: -3}, {X: 0, Y: 8, Z: -3}}
	near := [3]Vertex{{X: 0, Y: 0, Z: -1}, {X: 8, Y: 0, Z: -1}, {X: 0, Y: 8, Z: -1}}

	RasterizeTriangle(fb, near, Surface{R: 200, Shade: -1}, nil)
	RasterizeTriangle(fb, far, Surface{B: 200, Shade: -1}, nil)

	img := fb.Image()
	assert.Equal(t, color.NRGBA{R: 200, A: 255}, pixel(img, 1, 1))
	assert.Equal(t, color.NRGBA{}, pixel(img, 7, 7))
	assert.InDelta(t, -1, fb.ZBuf[1*8+1], 1e-9)
}

func TestSampleTextureWraps(t *testing.T) {
	tex := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	tex.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	tex.SetNRGBA(1, 0, color.NRGBA{G: 255, A: 255})
	tex.SetNRGBA(0, 1, color.NRGBA{B: 255, A: 255})
	tex.SetNRGBA(1, 1, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	r, g, b, a := SampleTexture(tex, 0, 0)
	assert.Equal(t, [4]uint8{255, 0, 0, 255}, [4]uint8{r, g, b, a})
	r, g, b, a = SampleTexture(tex, 2, -1)
	assert.Equal(t, [4]uint8{255, 0, 0, 255}, [4]uint8{r, g, b, a})
}

func TestProjectCentreAndClip(t *testing.T) {
	v := NewView(scene.Camera{Zoom: 1}, 100, 50)
	p, ok := v.Project(r3.Vec{})
	require.True(t, ok)
	assert.InDelta(t, 50, p.X, 1e-9)
	assert.InDelta(t, 25, p.Y, 1e-9)
	assert.InDelta(t, -5, p.Z, 1e-9)

	up, ok := v.Project(r3.Vec{Y: 1})
	require.True(t, ok)
	assert.Less(t, up.Y, p.Y)

	_, ok = v.Project(r3.Vec{Z: 6})
	assert.False(t, ok)
}

func TestComputeShadeIsTwoSided(t *testing.T) {
	lc := DefaultLightConfig()
	n := r3.Unit(r3.Vec{X: 1, Y: 0.3, Z: -0.2})
	up := lc.ComputeShade(n)
	down := lc.ComputeShade(r3.Scale(-1, n))
	assert.Greater(t, up, lc.Ambient)
	assert.InDelta(t, up, down, lc.SpecInt)
}

func testSnapshot(t *testing.T, background bool) scene.Snapshot {
	t.Helper()
	f, err := asf.Decode(strings.NewReader(testutil.SkeletonASF))
	require.NoError(t, err)
	sk, err := skeleton.New(f, 0.5)
	require.NoError(t, err)

	sc := scene.New(0)
	sc.Background = background
	_, err = sc.Add(scene.NewActor(sk, scene.RoleSampled, scene.ColorSampled))
	require.NoError(t, err)
	return sc.Snapshot(0)
}

func TestRenderDrawsActor(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 160, 120
	opts.BoneRadius = 0.1
	img := Render(testSnapshot(t, false), opts)
	require.Equal(t, image.Rect(0, 0, 160, 120), img.Bounds())

	yellow := color.NRGBA{R: 255, G: 255, B: 26, A: 255}
	found := 0
	for y := 0; y < 120; y++ {
		for x := 0; x < 160; x++ {
			if pixel(img, x, y) == yellow {
				found++
			}
		}
	}
	assert.Greater(t, found, 0)
	assert.Equal(t, color.NRGBA{A: 255}, pixel(img, 0, 0))
}

func TestRenderGroundBelowCentre(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height = 160, 120
	snap := testSnapshot(t, true)
	snap.Actors = nil
	img := Render(snap, opts)

	c := pixel(img, 80, 90)
	assert.Equal(t, c.R, c.G)
	assert.Equal(t, c.R, c.B)
	assert.Contains(t, []uint8{153, 204}, c.R)
}

func TestRenderSupersampleSize(t *testing.T) {
	opts := DefaultOptions()
	opts.Width, opts.Height, opts.Supersample = 20, 10, 3
	img := Render(scene.Snapshot{Camera: scene.DefaultCamera()}, opts)
	assert.Equal(t, image.Rect(0, 0, 60, 30), img.Bounds())
}
