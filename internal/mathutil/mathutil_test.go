package mathutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestEulerDegOrder(t *testing.T) {
	// X first then Z: the X axis is left alone by Rx and then turned onto Y by Rz.
	m := EulerDeg("XZ", r3.Vec{X: 90, Z: 90})
	got := m.MulVec(r3.Vec{X: 1})
	assert.InDelta(t, 0, got.X, 1e-12)
	assert.InDelta(t, 1, got.Y, 1e-12)
	assert.InDelta(t, 0, got.Z, 1e-12)

	assert.True(t, EulerDeg("", r3.Vec{}).ApproxEqual(Mat3Identity(), 0))
}

func TestTransposeInvertsRotation(t *testing.T) {
	m := EulerDeg("XYZ", r3.Vec{X: 12, Y: -40, Z: 73})
	assert.True(t, Mat3Mul(m, m.Transpose()).ApproxEqual(Mat3Identity(), 1e-12))
}

func TestWrapDeg(t *testing.T) {
	cases := map[float64]float64{
		0:    0,
		180:  180,
		-180: 180,
		190:  -170,
		-190: 170,
		725:  5,
	}
	for in, want := range cases {
		assert.InDelta(t, want, WrapDeg(in), 1e-9, "WrapDeg(%v)", in)
	}
}

func TestUnwrapDeg(t *testing.T) {
	assert.InDelta(t, 190, UnwrapDeg(170, -170), 1e-9)
	assert.InDelta(t, -190, UnwrapDeg(-170, 170), 1e-9)
	assert.InDelta(t, 10, UnwrapDeg(0, 10), 1e-9)
	assert.InDelta(t, 20, AngleDist(170, -170), 1e-9)
	assert.False(t, math.IsNaN(UnwrapDeg(0, 0)))
}
