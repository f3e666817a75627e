package interp

import (
	"fmt"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"

	"mocap-player/internal/mathutil"
)

// RotationBlend selects how the rotation channel is blended.
type RotationBlend int

const (
	// BlendEuler runs the same component-wise spline as translation. Angles
	// that cross ±180° between control points sweep the long way round.
	BlendEuler RotationBlend = iota

	// BlendUnwrapped unwraps each control angle to within 180° of its
	// predecessor before blending, then wraps the result into (-180, 180].
	BlendUnwrapped
)

// String returns the config name of the blend.
func (b RotationBlend) String() string {
	switch b {
	case BlendEuler:
		return "euler"
	case BlendUnwrapped:
		return "unwrapped"
	default:
		return "unknown"
	}
}

// ParseRotationBlend accepts "euler" or "unwrapped"; empty means euler.
func ParseRotationBlend(s string) (RotationBlend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "euler":
		return BlendEuler, nil
	case "unwrapped", "unwrap":
		return BlendUnwrapped, nil
	}
	return BlendEuler, fmt.Errorf("interp: unknown rotation blend %q", s)
}

func blendRotation(mode RotationBlend, p1, p2, p3, p4 r3.Vec, u float64) r3.Vec {
	if mode != BlendUnwrapped {
		return CatmullRom(p1, p2, p3, p4, u)
	}
	axis := func(a1, a2, a3, a4 float64) float64 {
		a1 = mathutil.UnwrapDeg(a2, a1)
		a3 = mathutil.UnwrapDeg(a2, a3)
		a4 = mathutil.UnwrapDeg(a3, a4)
		w1, w2, w3, w4 := Weights(u)
		return mathutil.WrapDeg(w1*a1 + w2*a2 + w3*a3 + w4*a4)
	}
	return r3.Vec{
		X: axis(p1.X, p2.X, p3.X, p4.X),
		Y: axis(p1.Y, p2.Y, p3.Y, p4.Y),
		Z: axis(p1.Z, p2.Z, p3.Z, p4.Z),
	}
}
