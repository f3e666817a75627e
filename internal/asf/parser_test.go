package asf

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"mocap-player/internal/testutil"
)

func TestDecodeSkeleton(t *testing.T) {
	f, err := Decode(strings.NewReader(testutil.SkeletonASF))
	require.NoError(t, err)

	assert.Equal(t, "1.10", f.Version)
	assert.Equal(t, "VICON", f.Name)
	assert.True(t, f.Units.AngleDegrees)
	assert.Equal(t, []string{"TX", "TY", "TZ", "RX", "RY", "RZ"}, f.Root.Order)
	assert.Equal(t, "XYZ", f.Root.AxisOrder)

	require.Len(t, f.Bones, 4)
	lb := f.Bones[0]
	assert.Equal(t, 1, lb.ID)
	assert.Equal(t, "lowerback", lb.Name)
	assert.Equal(t, r3.Vec{Y: 1}, lb.Direction)
	assert.Equal(t, 2.0, lb.Length)
	assert.Equal(t, []string{"rx", "ry", "rz"}, lb.DOF)
	assert.Len(t, lb.Limits, 3)

	ub := f.Bones[1]
	assert.Equal(t, []string{"rx", "rz"}, ub.DOF)
	require.Len(t, ub.Limits, 2)
	assert.True(t, math.IsInf(ub.Limits[1][0], -1))
	assert.True(t, math.IsInf(ub.Limits[1][1], 1))

	hip := f.Bones[2]
	assert.Empty(t, hip.DOF)
	assert.Equal(t, -20.0, hip.Axis.Z)

	require.Len(t, f.Hierarchy, 3)
	assert.Equal(t, Link{Parent: "root", Children: []string{"lowerback", "lhipjoint"}}, f.Hierarchy[0])
}

func TestDecodeRadians(t *testing.T) {
	src := ":units\n angle rad\n:root\n order TX TY TZ RX RY RZ\n"
	f, err := Decode(strings.NewReader(src))
	require.NoError(t, err)
	assert.False(t, f.Units.AngleDegrees)
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string]string{
		"no root":        ":name x\n",
		"stray token":    "hello\n:root\n",
		"bad number":     ":root\n position 0 a 0\n",
		"missing end":    ":root\n:bonedata\n begin\n name a\n",
		"unnamed bone":   ":root\n:bonedata\n begin\n id 1\n end\n",
		"too many limit": ":root\n:bonedata\n begin\n name a\n dof rx\n limits (0 1) (0 1)\n end\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(src))
			assert.Error(t, err)
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse("/nonexistent/skeleton.asf")
	assert.ErrorContains(t, err, "asf: read")
}
