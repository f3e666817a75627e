package skeleton

import (
	"gonum.org/v1/gonum/spatial/r3"

	"mocap-player/internal/mathutil"
	"mocap-player/internal/motion"
)

// Pose holds world-space joint data for one posture, indexed by bone.
// Start is where a bone attaches to its parent, End its tip.
type Pose struct {
	Start []r3.Vec
	End   []r3.Vec
	Rot   []mathutil.Mat3
}

// Pose runs forward kinematics. Each bone's world rotation is
// parent · C · M · C⁻¹, where C is the bone's axis frame and M its posture
// rotation; the tip sits at Start + rotation · (direction·length + translation).
// Missing bones in p are treated as zero samples.
func (s *Skeleton) Pose(p motion.Posture) Pose {
	n := len(s.Bones)
	pose := Pose{
		Start: make([]r3.Vec, n),
		End:   make([]r3.Vec, n),
		Rot:   make([]mathutil.Mat3, n),
	}

	sample := func(i int) motion.BoneSample {
		if i < len(p.Bones) {
			return p.Bones[i]
		}
		return motion.BoneSample{}
	}

	for _, i := range s.order {
		b := &s.Bones[i]
		smp := sample(i)
		local := mathutil.Mat3Mul(mathutil.Mat3Mul(b.Axis, mathutil.EulerDeg(b.rotOrder, smp.Rotation)), b.Axis.Transpose())

		if b.Parent < 0 {
			pose.Rot[i] = local
			pos := r3.Add(s.RootPosition, smp.Translation)
			pose.Start[i] = pos
			pose.End[i] = pos
			continue
		}

		pose.Rot[i] = mathutil.Mat3Mul(pose.Rot[b.Parent], local)
		pose.Start[i] = pose.End[b.Parent]
		offset := r3.Add(r3.Scale(b.Length, b.Direction), smp.Translation)
		pose.End[i] = r3.Add(pose.Start[i], pose.Rot[i].MulVec(offset))
	}
	return pose
}
