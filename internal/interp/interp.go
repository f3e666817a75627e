// Package interp rebuilds a dense motion from a sparse set of keyframes by
// Catmull-Rom blending the sampled postures at those keyframes.
package interp

import (
	"errors"
	"fmt"
	"slices"

	"mocap-player/internal/keyframe"
	"mocap-player/internal/motion"
)

// ErrTooFewKeyframes is returned when fewer than two keyframes are given.
var ErrTooFewKeyframes = errors.New("interp: need at least two keyframes")

// Options tunes an interpolation pass.
type Options struct {
	Rotation RotationBlend
}

// Result is a finished pass. Motion has the sampled store's frame capacity
// and is defined exactly on [FirstFrame, FirstFrame+MaxFrames-1].
type Result struct {
	Motion     *motion.Motion
	Keys       []int // sorted and padded
	Synthetic  []int // keys inserted by padding
	FirstFrame int
	MaxFrames  int
}

// LastFrame returns the last frame of the interpolated span.
func (r *Result) LastFrame() int {
	return r.FirstFrame + r.MaxFrames - 1
}

// Interpolate sorts and pads keys, copies the sampled posture at every key
// into a new store, and fills every frame strictly inside each interior span
// (keys[i], keys[i+1]), i ∈ [1, len-3], bone by bone, blending translation
// and rotation separately from the postures at keys[i-1..i+2].
//
// sampled is only read. The returned store is new; callers can publish it
// with a single assignment.
func Interpolate(keys []int, sampled *motion.Motion, opts Options) (*Result, error) {
	if len(keys) < 2 {
		return nil, ErrTooFewKeyframes
	}

	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	if len(sorted) < 2 {
		return nil, ErrTooFewKeyframes
	}
	if last := sorted[len(sorted)-1]; sorted[0] < 0 || last >= sampled.NumFrames() {
		return nil, fmt.Errorf("%w: keys %d..%d, %d frames", keyframe.ErrFrameRange, sorted[0], last, sampled.NumFrames())
	}
	padded, synthetic := keyframe.Pad(sorted)

	res := &Result{
		Motion:     motion.NewMotion(sampled.NumFrames(), sampled.NumBones()),
		Keys:       padded,
		Synthetic:  synthetic,
		FirstFrame: padded[0],
		MaxFrames:  padded[len(padded)-1] - padded[0] + 1,
	}
	out := res.Motion

	for _, k := range padded {
		if err := out.SetPosture(k, sampled.Posture(k)); err != nil {
			return nil, err
		}
	}

	numBones := sampled.NumBones()
	for i := 1; i < len(padded)-2; i++ {
		k0, k1, k2, k3 := padded[i-1], padded[i], padded[i+1], padded[i+2]
		span := float64(k2 - k1)
		for j := k1 + 1; j < k2; j++ {
			u := float64(j-k1) / span
			for b := 0; b < numBones; b++ {
				s0 := sampled.Bone(k0, b)
				s1 := sampled.Bone(k1, b)
				s2 := sampled.Bone(k2, b)
				s3 := sampled.Bone(k3, b)
				out.SetBone(j, b, motion.BoneSample{
					Translation: CatmullRom(s0.Translation, s1.Translation, s2.Translation, s3.Translation, u),
					Rotation:    blendRotation(opts.Rotation, s0.Rotation, s1.Rotation, s2.Rotation, s3.Rotation, u),
				})
			}
		}
	}

	return res, nil
}
