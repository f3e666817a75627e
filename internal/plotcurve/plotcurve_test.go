package plotcurve

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"mocap-player/internal/motion"
)

func ramp(n int) *motion.Motion {
	m := motion.NewMotion(n, 2)
	for f := 0; f < n; f++ {
		p := motion.NewPosture(2)
		p.Bones[1].Rotation = r3.Vec{X: float64(2 * f)}
		p.Bones[0].Translation = r3.Vec{Z: float64(-f)}
		_ = m.SetPosture(f, p)
	}
	return m
}

func TestParseChannel(t *testing.T) {
	c, err := ParseChannel("RY")
	require.NoError(t, err)
	assert.Equal(t, RY, c)
	assert.Equal(t, "ry", c.String())

	_, err = ParseChannel("l")
	assert.Error(t, err)
}

func TestSeriesSkipsUndefined(t *testing.T) {
	m := motion.NewMotion(10, 2)
	p := motion.NewPosture(2)
	p.Bones[1].Rotation.X = 7
	require.NoError(t, m.SetPosture(3, p))
	require.NoError(t, m.SetPosture(5, p))

	got := Series(m, 1, RX, 0, 9)
	assert.Equal(t, plotter.XYs{{X: 3, Y: 7}, {X: 5, Y: 7}}, got)

	got = Series(ramp(5), 0, TZ, 1, 3)
	assert.Equal(t, plotter.XYs{{X: 1, Y: -1}, {X: 2, Y: -2}, {X: 3, Y: -3}}, got)
}

func TestWritePNG(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, Curve{
		Bone:         1,
		BoneName:     "lowerback",
		Channel:      RX,
		From:         0,
		To:           19,
		Sampled:      ramp(20),
		Interpolated: ramp(20),
		Keys:         []int{2, 3, 15, 16, 40},
	}, 4*vg.Inch, 3*vg.Inch)
	require.NoError(t, err)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 0)
}

func TestSaveAndErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curve.png")
	require.NoError(t, Save(path, Curve{Sampled: ramp(4), To: 3}, 3*vg.Inch, 2*vg.Inch))
	st, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, st.Size(), int64(0))

	_, err = Build(Curve{Sampled: ramp(4), From: 3, To: 1})
	assert.ErrorIs(t, err, ErrEmptyRange)
	_, err = Build(Curve{})
	assert.Error(t, err)
}
