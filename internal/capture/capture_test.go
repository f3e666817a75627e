package capture

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mocap-player/internal/asf"
	"mocap-player/internal/log"
	"mocap-player/internal/raster"
	"mocap-player/internal/scene"
	"mocap-player/internal/skeleton"
	"mocap-player/internal/testutil"
)

func snapshots(t *testing.T, n int) []scene.Snapshot {
	t.Helper()
	f, err := asf.Decode(strings.NewReader(testutil.SkeletonASF))
	require.NoError(t, err)
	sk, err := skeleton.New(f, 0.5)
	require.NoError(t, err)

	sc := scene.New(0)
	a := scene.NewActor(sk, scene.RoleSampled, scene.ColorSampled)
	_, err = sc.Add(a)
	require.NoError(t, err)

	var out []scene.Snapshot
	for i := 0; i < n; i++ {
		a.Posture.Bones[1].Rotation.Z = float64(10 * i)
		out = append(out, sc.Snapshot(100+i))
	}
	return out
}

func testConfig(t *testing.T) Config {
	opts := raster.DefaultOptions()
	opts.Width, opts.Height, opts.Supersample = 32, 24, 2
	return Config{
		OutputDir: filepath.Join(t.TempDir(), "frames"),
		Render:    opts,
		Workers:   2,
		Logger:    log.Discard(),
	}
}

func TestRunWritesWebPFrames(t *testing.T) {
	cfg := testConfig(t)
	results, err := Run(context.Background(), cfg, snapshots(t, 3))
	require.NoError(t, err)
	require.Len(t, results, 3)

	for i, r := range results {
		assert.True(t, r.Success, r.Error)
		assert.Equal(t, 100+i, r.Frame)
		assert.Equal(t, FrameName(i), r.Image)

		data, err := os.ReadFile(filepath.Join(cfg.OutputDir, r.Image))
		require.NoError(t, err)
		require.Greater(t, len(data), 12)
		assert.True(t, bytes.HasPrefix(data, []byte("RIFF")))
		assert.Equal(t, "WEBP", string(data[8:12]))
	}
}

func TestManifestRoundTrip(t *testing.T) {
	cfg := testConfig(t)
	results, err := Run(context.Background(), cfg, snapshots(t, 2))
	require.NoError(t, err)
	results = append(results, Result{Frame: 9, Image: FrameName(9), Error: "boom"})

	m := NewManifest("walk.amc", 32, 24, results)
	_, err = uuid.Parse(m.RunID)
	require.NoError(t, err)

	path := filepath.Join(cfg.OutputDir, "manifest.json")
	require.NoError(t, WriteManifest(path, m))
	got, err := ReadManifest(path)
	require.NoError(t, err)

	assert.Equal(t, m.RunID, got.RunID)
	assert.Equal(t, []ManifestEntry{{Frame: 100, Image: "00000.webp"}, {Frame: 101, Image: "00001.webp"}}, got.Frames)
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Run(ctx, testConfig(t), snapshots(t, 4))
	assert.ErrorIs(t, err, context.Canceled)
}
