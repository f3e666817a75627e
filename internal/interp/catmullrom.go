package interp

import "gonum.org/v1/gonum/spatial/r3"

// Weights returns the uniform Catmull-Rom basis at u ∈ [0, 1]. At u=0 only
// w2 is non-zero and at u=1 only w3, so the curve passes through the two
// middle control points exactly.
func Weights(u float64) (w1, w2, w3, w4 float64) {
	u2 := u * u
	u3 := u2 * u
	w1 = -0.5*u3 + u2 - 0.5*u
	w2 = 1.5*u3 - 2.5*u2 + 1
	w3 = -1.5*u3 + 2*u2 + 0.5*u
	w4 = 0.5*u3 - 0.5*u2
	return w1, w2, w3, w4
}

// CatmullRom blends four control points component-wise.
func CatmullRom(p1, p2, p3, p4 r3.Vec, u float64) r3.Vec {
	w1, w2, w3, w4 := Weights(u)
	return r3.Add(
		r3.Add(r3.Scale(w1, p1), r3.Scale(w2, p2)),
		r3.Add(r3.Scale(w3, p3), r3.Scale(w4, p4)),
	)
}
