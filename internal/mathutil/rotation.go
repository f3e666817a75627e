package mathutil

import (
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// RotX returns a 3×3 rotation matrix around the X axis. Angle in radians.
func RotX(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		1, 0, 0,
		0, c, -s,
		0, s, c,
	}
}

// RotY returns a 3×3 rotation matrix around the Y axis.
func RotY(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, 0, s,
		0, 1, 0,
		-s, 0, c,
	}
}

// RotZ returns a 3×3 rotation matrix around the Z axis.
func RotZ(a float64) Mat3 {
	c, s := math.Cos(a), math.Sin(a)
	return Mat3{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	}
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}

// EulerDeg builds a rotation from per-axis angles in degrees, applying the
// axes in the order given (e.g. "XYZ" rotates about X first, so the result
// is Rz·Ry·Rx). Unknown letters are ignored; an empty order means "XYZ".
func EulerDeg(order string, deg r3.Vec) Mat3 {
	if order == "" {
		order = "XYZ"
	}
	m := Mat3Identity()
	for _, axis := range strings.ToUpper(order) {
		var r Mat3
		switch axis {
		case 'X':
			r = RotX(Deg2Rad(deg.X))
		case 'Y':
			r = RotY(Deg2Rad(deg.Y))
		case 'Z':
			r = RotZ(Deg2Rad(deg.Z))
		default:
			continue
		}
		m = Mat3Mul(r, m)
	}
	return m
}
