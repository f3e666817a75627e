package interp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"mocap-player/internal/keyframe"
	"mocap-player/internal/mathutil"
	"mocap-player/internal/motion"
)

// ramp builds a sampled store whose channels vary non-linearly per frame so
// knots and blended frames are easy to tell apart.
func ramp(t *testing.T, frames, bones int) *motion.Motion {
	t.Helper()
	ps := make([]motion.Posture, frames)
	for f := range ps {
		ps[f] = motion.NewPosture(bones)
		x := float64(f)
		for b := range ps[f].Bones {
			ps[f].Bones[b] = motion.BoneSample{
				Translation: r3.Vec{X: x, Y: x * x, Z: float64(b)},
				Rotation:    r3.Vec{X: 3 * x, Y: -x, Z: x*x - float64(b)},
			}
		}
	}
	m, err := motion.FromPostures(ps)
	require.NoError(t, err)
	return m
}

func TestWeightsAreExactAtEnds(t *testing.T) {
	w1, w2, w3, w4 := Weights(0)
	assert.Equal(t, [4]float64{0, 1, 0, 0}, [4]float64{w1, w2, w3, w4})
	w1, w2, w3, w4 = Weights(1)
	assert.Equal(t, [4]float64{0, 0, 1, 0}, [4]float64{w1, w2, w3, w4})

	for _, u := range []float64{0.1, 0.25, 0.5, 0.9} {
		w1, w2, w3, w4 = Weights(u)
		assert.InDelta(t, 1, w1+w2+w3+w4, 1e-12, "partition of unity at %v", u)
	}

	p := []r3.Vec{{X: 1}, {X: 2, Y: 5}, {X: 3, Z: -1}, {X: 7}}
	assert.Equal(t, p[1], CatmullRom(p[0], p[1], p[2], p[3], 0))
	assert.Equal(t, p[2], CatmullRom(p[0], p[1], p[2], p[3], 1))
}

func TestKnotsPassThrough(t *testing.T) {
	sampled := ramp(t, 12, 3)
	res, err := Interpolate([]int{9, 2, 5}, sampled, Options{})
	require.NoError(t, err)

	assert.Equal(t, []int{2, 3, 5, 8, 9}, res.Keys)
	assert.Equal(t, []int{3, 8}, res.Synthetic)
	for _, k := range res.Keys {
		assert.Equal(t, sampled.Posture(k), res.Motion.Posture(k), "knot %d", k)
	}
}

func TestSpanIsFullyDefined(t *testing.T) {
	sampled := ramp(t, 12, 2)
	res, err := Interpolate([]int{2, 5, 9}, sampled, Options{})
	require.NoError(t, err)

	assert.Equal(t, 2, res.FirstFrame)
	assert.Equal(t, 8, res.MaxFrames)
	assert.Equal(t, 9, res.LastFrame())
	assert.Equal(t, sampled.NumFrames(), res.Motion.NumFrames())

	for f := 0; f < 12; f++ {
		inside := f >= res.FirstFrame && f <= res.LastFrame()
		assert.Equal(t, inside, res.Motion.Defined(f), "frame %d", f)
	}
}

func TestAdjacentEndsAreNotPadded(t *testing.T) {
	sampled := ramp(t, 30, 1)
	res, err := Interpolate([]int{10, 20, 21}, sampled, Options{})
	require.NoError(t, err)

	assert.Equal(t, []int{10, 11, 20, 21}, res.Keys)
	assert.Equal(t, []int{11}, res.Synthetic)
	assert.Equal(t, 10, res.FirstFrame)
	assert.Equal(t, 12, res.MaxFrames)
	for f := 10; f <= 21; f++ {
		assert.True(t, res.Motion.Defined(f), "frame %d", f)
	}
}

func TestBlendedFrameMatchesBasis(t *testing.T) {
	sampled := ramp(t, 12, 2)
	res, err := Interpolate([]int{0, 10}, sampled, Options{})
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 9, 10}, res.Keys)

	u := 4.0 / 8.0
	for b := 0; b < 2; b++ {
		want := CatmullRom(
			sampled.Bone(0, b).Translation, sampled.Bone(1, b).Translation,
			sampled.Bone(9, b).Translation, sampled.Bone(10, b).Translation, u)
		got := res.Motion.Bone(5, b).Translation
		assert.InDelta(t, want.X, got.X, 1e-12)
		assert.InDelta(t, want.Y, got.Y, 1e-12)
		assert.InDelta(t, want.Z, got.Z, 1e-12)
	}
}

func TestSampledStoreIsUntouched(t *testing.T) {
	sampled := ramp(t, 12, 1)
	before := sampled.Posture(6)
	_, err := Interpolate([]int{0, 11}, sampled, Options{})
	require.NoError(t, err)
	assert.Equal(t, before, sampled.Posture(6))
}

func TestTooFewKeyframes(t *testing.T) {
	sampled := ramp(t, 5, 1)
	for _, keys := range [][]int{nil, {3}, {2, 2}} {
		_, err := Interpolate(keys, sampled, Options{})
		assert.ErrorIs(t, err, ErrTooFewKeyframes, "keys %v", keys)
	}
}

func TestKeysOutsideMotion(t *testing.T) {
	sampled := ramp(t, 20, 1)
	for _, keys := range [][]int{{2, 8, 40}, {2, 20}, {-1, 5}} {
		res, err := Interpolate(keys, sampled, Options{})
		assert.ErrorIs(t, err, keyframe.ErrFrameRange, "keys %v", keys)
		assert.Nil(t, res)
	}

	res, err := Interpolate([]int{2, 19}, sampled, Options{})
	require.NoError(t, err)
	assert.Equal(t, 19, res.LastFrame())
	assert.Equal(t, sampled.Posture(19), res.Motion.Posture(19))
}

func TestUnwrappedRotationTakesShortWay(t *testing.T) {
	ps := make([]motion.Posture, 11)
	for f := range ps {
		ps[f] = motion.NewPosture(1)
		if f <= 1 {
			ps[f].Bones[0].Rotation = r3.Vec{X: 170}
		} else {
			ps[f].Bones[0].Rotation = r3.Vec{X: -170}
		}
	}
	sampled, err := motion.FromPostures(ps)
	require.NoError(t, err)

	res, err := Interpolate([]int{0, 10}, sampled, Options{Rotation: BlendUnwrapped})
	require.NoError(t, err)
	for f := 2; f <= 8; f++ {
		x := res.Motion.Bone(f, 0).Rotation.X
		assert.LessOrEqual(t, mathutil.AngleDist(x, 180), 10+1e-9, "frame %d: %v", f, x)
	}

	naive, err := Interpolate([]int{0, 10}, sampled, Options{})
	require.NoError(t, err)
	assert.InDelta(t, 0, naive.Motion.Bone(5, 0).Rotation.X, 1e-9)
}

func TestParseRotationBlend(t *testing.T) {
	b, err := ParseRotationBlend("")
	require.NoError(t, err)
	assert.Equal(t, BlendEuler, b)

	b, err = ParseRotationBlend("Unwrapped")
	require.NoError(t, err)
	assert.Equal(t, BlendUnwrapped, b)
	assert.Equal(t, "unwrapped", b.String())

	_, err = ParseRotationBlend("slerp")
	assert.Error(t, err)
}
