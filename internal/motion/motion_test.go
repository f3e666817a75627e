package motion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func frames(n, bones int) []Posture {
	out := make([]Posture, n)
	for f := range out {
		out[f] = NewPosture(bones)
		for b := range out[f].Bones {
			out[f].Bones[b] = BoneSample{
				Translation: r3.Vec{X: float64(f)},
				Rotation:    r3.Vec{Y: float64(10*f + b)},
			}
		}
	}
	return out
}

func TestPostureIndexClampsAndShifts(t *testing.T) {
	m, err := FromPostures(frames(10, 2))
	require.NoError(t, err)

	assert.Equal(t, 0, m.PostureIndex(-5))
	assert.Equal(t, 4, m.PostureIndex(4))
	assert.Equal(t, 9, m.PostureIndex(9))
	assert.Equal(t, 9, m.PostureIndex(100))

	m.SetTimeOffset(3)
	assert.Equal(t, 3, m.Offset())
	assert.Equal(t, 0, m.PostureIndex(2))
	assert.Equal(t, 1, m.PostureIndex(4))
	assert.Equal(t, 9, m.PostureIndex(12))
	assert.Equal(t, 9, m.PostureIndex(13))

	m.SetTimeOffset(-2)
	assert.Equal(t, 2, m.PostureIndex(0))
	assert.Equal(t, 9, m.PostureIndex(8))
}

func TestPostureIndexIsPure(t *testing.T) {
	m := NewMotion(5, 1)
	for i := 0; i < 3; i++ {
		assert.Equal(t, 4, m.PostureIndex(7))
	}
}

func TestSetPostureUsesResolvedSlot(t *testing.T) {
	m := NewMotion(6, 2)
	m.SetTimeOffset(2)

	p := NewPosture(2)
	p.Bones[1].Rotation = r3.Vec{Z: 45}
	require.NoError(t, m.SetPosture(5, p))

	assert.True(t, m.Defined(5))
	assert.False(t, m.Defined(4))
	assert.Equal(t, 45.0, m.Bone(5, 1).Rotation.Z)

	m.SetTimeOffset(0)
	assert.Equal(t, 45.0, m.Posture(3).Bones[1].Rotation.Z)
}

func TestPostureIsCopied(t *testing.T) {
	m, err := FromPostures(frames(3, 1))
	require.NoError(t, err)

	p := m.Posture(1)
	p.Bones[0].Translation.X = 99
	assert.Equal(t, 1.0, m.Posture(1).Bones[0].Translation.X)
}

func TestBoneCountMismatch(t *testing.T) {
	m := NewMotion(3, 2)
	assert.ErrorIs(t, m.SetPosture(0, NewPosture(3)), ErrBoneCount)

	_, err := FromPostures([]Posture{NewPosture(1), NewPosture(2)})
	assert.ErrorIs(t, err, ErrBoneCount)
}

func TestSetBoneOutOfRangeIgnored(t *testing.T) {
	m := NewMotion(2, 1)
	m.SetBone(0, 5, BoneSample{Rotation: r3.Vec{X: 1}})
	assert.False(t, m.Defined(0))
	assert.Equal(t, BoneSample{}, m.Bone(0, 5))
}
