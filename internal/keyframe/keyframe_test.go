package keyframe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddSetSemantics(t *testing.T) {
	s := NewSet(0)
	ok, err := s.Add(20)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Add(20)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, s.Len())

	_, err = s.Add(-1)
	assert.ErrorIs(t, err, ErrNegativeFrame)

	s.Add(5)
	s.Add(12)
	assert.Equal(t, []int{20, 5, 12}, s.Frames())
	s.Sort()
	assert.Equal(t, []int{5, 12, 20}, s.Frames())

	s.Clear()
	assert.Zero(t, s.Len())
}

func TestCapacityRejection(t *testing.T) {
	s := NewSet(CapacityFor(DefaultMaxSkeletons))
	require.Equal(t, DefaultMaxSkeletons-3, s.Cap())

	for i := 0; i < s.Cap(); i++ {
		ok, err := s.Add(i * 10)
		require.NoError(t, err)
		require.True(t, ok)
	}
	ok, err := s.Add(1000)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrFull)
	assert.Equal(t, DefaultMaxSkeletons-3, s.Len())
	assert.False(t, s.Contains(1000))
}

func TestCapacityFor(t *testing.T) {
	assert.Equal(t, 0, CapacityFor(0))
	assert.Equal(t, 1, CapacityFor(2))
	assert.Equal(t, 97, CapacityFor(100))
}

func TestPad(t *testing.T) {
	cases := []struct {
		name      string
		in        []int
		padded    []int
		synthetic []int
	}{
		{"contiguous", []int{10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21}, []int{10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21}, nil},
		{"gap at start", []int{10, 20, 21}, []int{10, 11, 20, 21}, []int{11}},
		{"gap at end", []int{10, 11, 20}, []int{10, 11, 19, 20}, []int{19}},
		{"both ends", []int{10, 20}, []int{10, 11, 19, 20}, []int{11, 19}},
		{"one frame apart", []int{10, 12}, []int{10, 11, 12}, []int{11}},
		{"adjacent pair", []int{4, 5}, []int{4, 5}, nil},
		{"single", []int{7}, []int{7}, nil},
		{"empty", nil, []int{}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			padded, synthetic := Pad(tc.in)
			if len(tc.padded) == 0 {
				assert.Empty(t, padded)
			} else {
				assert.Equal(t, tc.padded, padded)
			}
			assert.Equal(t, tc.synthetic, synthetic)
		})
	}
}

func TestSetPadSortsFirst(t *testing.T) {
	s := NewSet(0)
	for _, f := range []int{21, 10, 20} {
		s.Add(f)
	}
	syn := s.Pad()
	assert.Equal(t, []int{11}, syn)
	assert.Equal(t, []int{10, 11, 20, 21}, s.Frames())
}
