// Package scene holds the display actors and camera that a renderer draws.
package scene

import (
	"gonum.org/v1/gonum/spatial/r3"

	"mocap-player/internal/mathutil"
	"mocap-player/internal/motion"
	"mocap-player/internal/skeleton"
)

// Color is a linear RGB triple in [0, 1].
type Color struct {
	R, G, B float64
}

var (
	ColorSampled      = Color{1, 1, 0.1}
	ColorKeyframe     = Color{0, 0, 1}
	ColorInterpolated = Color{1, 0.6, 0}
)

// Role says what an actor displays.
type Role int

const (
	RoleSampled Role = iota
	RoleKeyframe
	RoleSynthetic
	RoleInterpolated
)

func (r Role) String() string {
	switch r {
	case RoleSampled:
		return "sampled"
	case RoleKeyframe:
		return "keyframe"
	case RoleSynthetic:
		return "synthetic"
	case RoleInterpolated:
		return "interpolated"
	default:
		return "unknown"
	}
}

// Transform places an actor in the world. Translation is in file units and is
// multiplied by the skeleton scale, rotation is XYZ Euler degrees.
type Transform struct {
	Tx, Ty, Tz float64
	Rx, Ry, Rz float64
}

// Actor is one drawn skeleton. The skeleton is shared, never owned: every
// actor of a session points at the same definition and all of them are
// dropped together on reset.
type Actor struct {
	Skeleton  *skeleton.Skeleton
	Posture   motion.Posture
	Color     Color
	Transform Transform
	Role      Role
	Frame     int // source frame for keyframe previews
}

// NewActor returns an actor in the skeleton's base posture.
func NewActor(sk *skeleton.Skeleton, role Role, c Color) *Actor {
	return &Actor{
		Skeleton: sk,
		Posture:  sk.BasePosture(),
		Color:    c,
		Role:     role,
	}
}

// SetPosture stores a copy of p.
func (a *Actor) SetPosture(p motion.Posture) {
	a.Posture = p.Clone()
}

// WorldPose runs forward kinematics and then applies the actor transform.
func (a *Actor) WorldPose() skeleton.Pose {
	pose := a.Skeleton.Pose(a.Posture)
	t := a.Transform
	rot := mathutil.EulerDeg("XYZ", r3.Vec{X: t.Rx, Y: t.Ry, Z: t.Rz})
	off := r3.Scale(a.Skeleton.Scale, r3.Vec{X: t.Tx, Y: t.Ty, Z: t.Tz})
	for i := range pose.Start {
		pose.Start[i] = r3.Add(rot.MulVec(pose.Start[i]), off)
		pose.End[i] = r3.Add(rot.MulVec(pose.End[i]), off)
		pose.Rot[i] = mathutil.Mat3Mul(rot, pose.Rot[i])
	}
	return pose
}

// RootPosition is the world position of the root joint.
func (a *Actor) RootPosition() r3.Vec {
	pose := a.WorldPose()
	if len(pose.End) == 0 {
		return r3.Vec{}
	}
	return pose.End[0]
}
