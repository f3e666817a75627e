// Package keyframe manages the operator's ordered set of keyframe indices.
package keyframe

import (
	"errors"
	"slices"
)

// DefaultMaxSkeletons is the display-instance ceiling the set is sized against.
const DefaultMaxSkeletons = 16

// Reserved is the number of display slots an interpolation pass adds on top
// of the keyframe previews: two boundary-padding previews and the
// interpolated actor.
const Reserved = 3

var (
	// ErrFull is returned by Add when the set is at capacity.
	ErrFull = errors.New("keyframe: no more keyframes can be added")

	// ErrNegativeFrame is returned by Add for frames below zero.
	ErrNegativeFrame = errors.New("keyframe: negative frame")

	// ErrFrameRange is returned for a keyframe past the end of the motion it
	// keys.
	ErrFrameRange = errors.New("keyframe: frame outside the motion")
)

// CapacityFor returns the keyframe capacity for a display ceiling.
func CapacityFor(maxSkeletons int) int {
	if maxSkeletons <= 0 {
		return 0
	}
	c := maxSkeletons - Reserved
	if c < 1 {
		c = 1
	}
	return c
}

// Set is a collection of distinct frame numbers kept in insertion order
// until Sort is called.
type Set struct {
	frames   []int
	capacity int
}

// NewSet returns an empty set. capacity <= 0 means unbounded.
func NewSet(capacity int) *Set {
	return &Set{capacity: capacity}
}

// Add inserts frame. Duplicates are ignored without error; a full set returns
// ErrFull and leaves the set unchanged.
func (s *Set) Add(frame int) (bool, error) {
	if frame < 0 {
		return false, ErrNegativeFrame
	}
	if s.Contains(frame) {
		return false, nil
	}
	if s.capacity > 0 && len(s.frames) >= s.capacity {
		return false, ErrFull
	}
	s.frames = append(s.frames, frame)
	return true, nil
}

// Clear empties the set.
func (s *Set) Clear() {
	s.frames = nil
}

// Len returns the number of keyframes.
func (s *Set) Len() int {
	return len(s.frames)
}

// Cap returns the capacity, 0 when unbounded.
func (s *Set) Cap() int {
	return s.capacity
}

// Contains reports whether frame is in the set.
func (s *Set) Contains(frame int) bool {
	return slices.Contains(s.frames, frame)
}

// Frames returns a copy of the keyframes in their current order.
func (s *Set) Frames() []int {
	return slices.Clone(s.frames)
}

// Sort orders the keyframes ascending.
func (s *Set) Sort() {
	slices.Sort(s.frames)
}

// Pad sorts the set and applies boundary padding, returning the synthetic
// frames that were inserted. Padding may take the set past its capacity.
func (s *Set) Pad() []int {
	s.Sort()
	var synthetic []int
	s.frames, synthetic = Pad(s.frames)
	return synthetic
}

// Pad guarantees that the first two and last two entries of a sorted key
// list are adjacent frames, inserting keys[0]+1 after the first entry and
// keys[last]-1 before the last one when needed. A Catmull-Rom span needs a
// neighbour on each side, so only the interior spans are ever blended.
// Lists shorter than two are returned unchanged.
func Pad(sorted []int) (padded, synthetic []int) {
	padded = slices.Clone(sorted)
	if len(padded) < 2 {
		return padded, nil
	}

	if padded[1] != padded[0]+1 {
		f := padded[0] + 1
		padded = slices.Insert(padded, 1, f)
		synthetic = append(synthetic, f)
	}
	n := len(padded)
	if padded[n-2] != padded[n-1]-1 {
		f := padded[n-1] - 1
		padded = slices.Insert(padded, n-1, f)
		synthetic = append(synthetic, f)
	}
	return padded, synthetic
}
