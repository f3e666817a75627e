package motion

import "errors"

// ErrBoneCount is returned when a posture does not match the store's bone count.
var ErrBoneCount = errors.New("motion: posture bone count mismatch")

// Motion is a posture store: NumFrames slots addressed by frame number,
// shifted by an integer time offset. Every lookup resolves through
// PostureIndex, which clamps instead of faulting so callers may probe
// frame±1 at the edges.
type Motion struct {
	postures []Posture
	defined  []bool
	numBones int
	offset   int
}

// NewMotion allocates an empty store with numFrames slots of numBones bones.
// Slots hold zero postures and report Defined == false until written.
func NewMotion(numFrames, numBones int) *Motion {
	if numFrames < 1 {
		numFrames = 1
	}
	m := &Motion{
		postures: make([]Posture, numFrames),
		defined:  make([]bool, numFrames),
		numBones: numBones,
	}
	for i := range m.postures {
		m.postures[i] = NewPosture(numBones)
	}
	return m
}

// FromPostures builds a fully defined store. All postures must have the same
// bone count.
func FromPostures(postures []Posture) (*Motion, error) {
	if len(postures) == 0 {
		return nil, errors.New("motion: no postures")
	}
	m := &Motion{
		postures: make([]Posture, len(postures)),
		defined:  make([]bool, len(postures)),
		numBones: postures[0].NumBones(),
	}
	for i, p := range postures {
		if p.NumBones() != m.numBones {
			return nil, ErrBoneCount
		}
		m.postures[i] = p.Clone()
		m.defined[i] = true
	}
	return m, nil
}

// NumFrames returns the slot count.
func (m *Motion) NumFrames() int {
	return len(m.postures)
}

// NumBones returns the bone count of every posture in the store.
func (m *Motion) NumBones() int {
	return m.numBones
}

// Offset returns the current time offset in frames.
func (m *Motion) Offset() int {
	return m.offset
}

// SetTimeOffset sets the time offset. A lookup of frame f resolves to slot
// f-offset, so a positive offset delays the motion.
func (m *Motion) SetTimeOffset(offset int) {
	m.offset = offset
}

// PostureIndex maps a requested frame to a slot, clamped to [0, NumFrames-1].
func (m *Motion) PostureIndex(frame int) int {
	i := frame - m.offset
	if i < 0 {
		return 0
	}
	if i >= len(m.postures) {
		return len(m.postures) - 1
	}
	return i
}

// Posture returns a copy of the posture at frame.
func (m *Motion) Posture(frame int) Posture {
	return m.postures[m.PostureIndex(frame)].Clone()
}

// Bone returns one bone's sample at frame without copying the whole posture.
func (m *Motion) Bone(frame, bone int) BoneSample {
	p := m.postures[m.PostureIndex(frame)]
	if bone < 0 || bone >= len(p.Bones) {
		return BoneSample{}
	}
	return p.Bones[bone]
}

// SetPosture stores a copy of p at the slot frame resolves to.
func (m *Motion) SetPosture(frame int, p Posture) error {
	if p.NumBones() != m.numBones {
		return ErrBoneCount
	}
	i := m.PostureIndex(frame)
	m.postures[i] = p.Clone()
	m.defined[i] = true
	return nil
}

// SetBone writes a single bone sample at frame. The slot counts as defined
// once any bone has been written.
func (m *Motion) SetBone(frame, bone int, s BoneSample) {
	i := m.PostureIndex(frame)
	if bone < 0 || bone >= len(m.postures[i].Bones) {
		return
	}
	m.postures[i].Bones[bone] = s
	m.defined[i] = true
}

// Defined reports whether the slot frame resolves to has been written.
func (m *Motion) Defined(frame int) bool {
	return m.defined[m.PostureIndex(frame)]
}
