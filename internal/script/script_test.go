package script

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mocap-player/internal/amc"
	"mocap-player/internal/log"
	"mocap-player/internal/raster"
	"mocap-player/internal/scene"
	"mocap-player/internal/session"
	"mocap-player/internal/testutil"
)

func TestDecodeSteps(t *testing.T) {
	src := `
steps:
  - load_actor: a.asf
  - load_motion: a.amc
  - add_keyframe: 4
  - add_keyframe: cursor
  - interpolate
  - rewind:
  - tick: 3
  - tick
  - set_time_offset: 2
  - set_time_offset: {subject: 1, offset: -3}
  - set_transform: {subject: 0, tx: 30, ry: 90}
  - capture: {output_dir: out, limit: 5}
  - write_amc: blend.amc
  - write_amc: {path: raw.amc, store: sampled}
`
	sc, err := Decode(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, sc.Steps, 14)

	want := []session.Command{
		session.LoadActor{Path: "a.asf"},
		session.LoadMotion{Path: "a.amc"},
		session.AddKeyframe{Frame: 4},
		session.AddKeyframe{AtCursor: true},
		session.Interpolate{},
		session.Rewind{},
		session.Tick{Count: 3},
		session.Tick{Count: 1},
		session.SetTimeOffset{Offset: 2},
		session.SetTimeOffset{Subject: 1, Offset: -3},
		session.SetTransform{Subject: 0, Transform: scene.Transform{Tx: 30, Ry: 90}},
	}
	for i, c := range want {
		assert.Equal(t, c, sc.Steps[i].Command, "step %d", i)
	}
	assert.Equal(t, 3, sc.Steps[0].Line)
	assert.Equal(t, &Capture{OutputDir: "out", Limit: 5}, sc.Steps[11].Capture)
	assert.Equal(t, &Export{Path: "blend.amc"}, sc.Steps[12].Export)
	assert.Equal(t, &Export{Path: "raw.amc", Store: "sampled"}, sc.Steps[13].Export)
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string]string{
		"unknown step":    "steps: [dance]",
		"no-arg with arg": "steps: [{play: 3}]",
		"bad frame":       "steps: [{scrub: soon}]",
		"two keys":        "steps: [{play: null, pause: null}]",
		"missing path":    "steps: [load_actor]",
		"unknown field":   "steps: [{capture: {dir: x}}]",
		"bad store":       "steps: [{write_amc: {path: x.amc, store: both}}]",
		"top-level key":   "stpes: []",
		"list step":       "steps: [[1, 2]]",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(src))
			assert.Error(t, err)
		})
	}

	_, err := Decode(strings.NewReader("steps: [dance]"))
	assert.ErrorIs(t, err, ErrUnknownStep)
}

func TestRunScript(t *testing.T) {
	asfPath, _ := testutil.WriteFixtures(t, 12)
	dir := filepath.Dir(asfPath)
	path := filepath.Join(dir, "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
steps:
  - load_actor: test.asf
  - load_motion: test.amc
  - add_keyframe: 9
  - add_keyframe: 2
  - interpolate
  - capture: {output_dir: frames}
  - write_amc: blend.amc
`), 0644))

	sc, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, dir, sc.BaseDir)

	opts := raster.DefaultOptions()
	opts.Width, opts.Height = 24, 16
	s := session.New(session.Options{Scale: 1, Logger: log.Discard()})
	rep, err := Run(context.Background(), s, sc, Env{Render: opts, Workers: 2, Logger: log.Discard()})
	require.NoError(t, err)

	assert.Equal(t, 7, rep.Steps)
	assert.Equal(t, []int{2, 3, 8, 9}, s.Keyframes())
	require.Len(t, rep.Manifests, 1)
	assert.Len(t, rep.Manifests[0].Frames, 7)
	assert.FileExists(t, filepath.Join(dir, "frames", "manifest.json"))
	assert.FileExists(t, filepath.Join(dir, "frames", "00006.webp"))

	require.Equal(t, []string{filepath.Join(dir, "blend.amc")}, rep.Exports)
	m, err := amc.Parse(rep.Exports[0], s.Skeleton())
	require.NoError(t, err)
	assert.Equal(t, 8, m.NumFrames())
	assert.Equal(t, s.Interpolated().Motion.Posture(2), m.Posture(0))
}

func TestRunStopsAtFirstError(t *testing.T) {
	sc, err := Decode(strings.NewReader("steps: [interpolate, {write_amc: x.amc}, play]"))
	require.NoError(t, err)
	sc.BaseDir = t.TempDir()

	s := session.New(session.Options{Logger: log.Discard()})
	rep, err := Run(context.Background(), s, sc, Env{Logger: log.Discard()})
	assert.ErrorIs(t, err, session.ErrNoActor)
	assert.ErrorContains(t, err, "write_amc")
	assert.Equal(t, 1, rep.Steps)
}
