package mathutil

import "math"

// AngleDist returns the shortest angular distance between two angles in degrees (0–180).
func AngleDist(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	if d < 0 {
		d += 360
	}
	if d > 180 {
		return 360 - d
	}
	return d
}

// WrapDeg maps an angle in degrees into (-180, 180].
func WrapDeg(a float64) float64 {
	w := math.Mod(a, 360)
	if w <= -180 {
		w += 360
	} else if w > 180 {
		w -= 360
	}
	return w
}

// UnwrapDeg returns the angle equivalent to a (mod 360) that lies closest to ref.
func UnwrapDeg(ref, a float64) float64 {
	return a + 360*math.Round((ref-a)/360)
}
