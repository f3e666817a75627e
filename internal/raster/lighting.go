package raster

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// LightConfig holds precomputed lighting parameters. Directions point from
// the surface towards the light, in world space.
type LightConfig struct {
	LightDir  r3.Vec
	RimDir    r3.Vec
	FillDir   r3.Vec
	HalfMain  r3.Vec // precomputed half-vector for Blinn-Phong
	Ambient   float64
	Hemi      float64
	Direct    float64
	Rim       float64
	Fill      float64
	SpecInt   float64
	SpecPow   float64
	Exposure  float64
	SRGBGamma float64
	InvGamma  float64
}

// DefaultLightConfig is a white key light at the front left, a reddish rim
// light behind and a blue fill from the right.
func DefaultLightConfig() LightConfig {
	lightDir := r3.Unit(r3.Vec{X: -25, Y: 25, Z: 25})
	rimDir := r3.Unit(r3.Vec{X: -25, Y: 25, Z: -25})
	fillDir := r3.Unit(r3.Vec{X: 25, Y: 25, Z: -5})
	viewDir := r3.Unit(r3.Vec{Y: -1, Z: -4})

	return LightConfig{
		LightDir:  lightDir,
		RimDir:    rimDir,
		FillDir:   fillDir,
		HalfMain:  r3.Unit(r3.Sub(lightDir, viewDir)),
		Ambient:   0.35,
		Hemi:      0.40,
		Direct:    1.20,
		Rim:       0.35,
		Fill:      0.25,
		SpecInt:   0.30,
		SpecPow:   50.0,
		Exposure:  1.0,
		SRGBGamma: 2.2,
		InvGamma:  1.0 / 2.2,
	}
}

// ComputeShade returns the combined lighting scalar for a unit face normal.
func (lc *LightConfig) ComputeShade(normal r3.Vec) float64 {
	// Lambertian, abs for two-sided lighting
	ndlMain := math.Abs(r3.Dot(normal, lc.LightDir))
	ndlRim := math.Abs(r3.Dot(normal, lc.RimDir))
	ndlFill := math.Abs(r3.Dot(normal, lc.FillDir))

	// Hemisphere fill: surfaces facing up or down get half
	hemi := (1.0-math.Abs(normal.Y))*0.5 + 0.5
	hemiLight := hemi * lc.Hemi

	ndh := r3.Dot(normal, lc.HalfMain)
	if ndh < 0 {
		ndh = 0
	}
	spec := math.Pow(ndh, lc.SpecPow) * lc.SpecInt

	return lc.Ambient + hemiLight + ndlMain*lc.Direct + ndlRim*lc.Rim + ndlFill*lc.Fill + spec
}

// Precomputed sRGB-to-linear lookup table (256 entries).
var srgbToLinear [256]float64

func init() {
	for i := 0; i < 256; i++ {
		srgbToLinear[i] = math.Pow(float64(i)/255.0, 2.2)
	}
}

// ACESTonemap applies ACES Filmic tone mapping to a linear value.
func ACESTonemap(x float64) float64 {
	return (x * (2.51*x + 0.03)) / (x*(2.43*x+0.59) + 0.14)
}

// lit shades one sRGB texel: decode, scale by shade, tone map, encode.
func (lc *LightConfig) lit(c uint8, shade float64) uint8 {
	v := ACESTonemap(srgbToLinear[c] * shade * lc.Exposure)
	return clamp255(math.Pow(v, lc.InvGamma) * 255)
}

func clamp255(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
