package raster

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"mocap-player/internal/mathutil"
	"mocap-player/internal/scene"
)

const (
	fovY     = 45.0 // degrees
	zNear    = 0.1
	zFar     = 50.0
	eyeDepth = 5.0 // the eye sits this far back from the orbit centre
)

// View maps world points to pixels for one camera and viewport.
type View struct {
	rot    mathutil.Mat3
	zoom   float64
	target r3.Vec
	shift  r3.Vec // applied after rotation: target + pan - eyeDepth·Z
	focal  float64
	aspect float64
	width  float64
	height float64
}

// NewView builds the orbit transform: scale by zoom, move the target to the
// origin, turn by azimuth about Y, elevation about X and twist about Y, then
// move back out by the target, the pan and the eye depth.
func NewView(cam scene.Camera, width, height int) View {
	rot := mathutil.Mat3Mul(
		mathutil.RotY(mathutil.Deg2Rad(-cam.Twist)),
		mathutil.Mat3Mul(
			mathutil.RotX(mathutil.Deg2Rad(-cam.Elevation)),
			mathutil.RotY(mathutil.Deg2Rad(cam.Azimuth)),
		),
	)
	zoom := cam.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return View{
		rot:    rot,
		zoom:   zoom,
		target: cam.Target,
		shift:  r3.Add(r3.Add(cam.Target, cam.Pan), r3.Vec{Z: -eyeDepth}),
		focal:  1 / math.Tan(mathutil.Deg2Rad(fovY)/2),
		aspect: float64(width) / float64(height),
		width:  float64(width),
		height: float64(height),
	}
}

// ToView returns the view-space position; the camera looks down -Z.
func (v View) ToView(p r3.Vec) r3.Vec {
	q := r3.Sub(r3.Scale(v.zoom, p), v.target)
	return r3.Add(v.rot.MulVec(q), v.shift)
}

// ViewDir rotates a world direction into view space.
func (v View) ViewDir(d r3.Vec) r3.Vec {
	return v.rot.MulVec(d)
}

// Project returns the pixel position and depth of a world point. ok is false
// outside the near and far planes.
func (v View) Project(p r3.Vec) (Vertex, bool) {
	q := v.ToView(p)
	if q.Z > -zNear || q.Z < -zFar {
		return Vertex{}, false
	}
	inv := 1 / -q.Z
	ndcX := v.focal / v.aspect * q.X * inv
	ndcY := v.focal * q.Y * inv
	return Vertex{
		X: (ndcX + 1) * 0.5 * v.width,
		Y: (1 - ndcY) * 0.5 * v.height,
		Z: q.Z,
	}, true
}
