// Package motion holds sampled and interpolated joint-angle data: per-bone
// samples, full-skeleton postures and the frame-indexed posture store.
package motion

import "gonum.org/v1/gonum/spatial/r3"

// BoneSample is one bone's pose for a frame. Translation is in scaled world
// units, Rotation in degrees about the bone's local axes. The two channels are
// interpolated independently.
type BoneSample struct {
	Translation r3.Vec
	Rotation    r3.Vec
}

// Posture is a full-skeleton pose: one sample per bone, indexed by bone id.
type Posture struct {
	Bones []BoneSample
}

// NewPosture returns a zero posture for numBones bones.
func NewPosture(numBones int) Posture {
	return Posture{Bones: make([]BoneSample, numBones)}
}

// Clone returns a deep copy.
func (p Posture) Clone() Posture {
	if p.Bones == nil {
		return Posture{}
	}
	bones := make([]BoneSample, len(p.Bones))
	copy(bones, p.Bones)
	return Posture{Bones: bones}
}

// NumBones returns the number of bone samples.
func (p Posture) NumBones() int {
	return len(p.Bones)
}

// Root returns the root sample, or a zero sample for an empty posture.
func (p Posture) Root() BoneSample {
	if len(p.Bones) == 0 {
		return BoneSample{}
	}
	return p.Bones[0]
}
