// Package capture renders scene snapshots to numbered WebP frames on a
// bounded worker pool.
package capture

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/sync/errgroup"

	"mocap-player/internal/log"
	"mocap-player/internal/postprocess"
	"mocap-player/internal/raster"
	"mocap-player/internal/scene"
)

// Config holds all shared resources for a capture run.
type Config struct {
	OutputDir string
	Render    raster.Options
	Workers   int
	Progress  time.Duration // progress log interval, 0 for the default
	Logger    *slog.Logger
}

// Result holds the outcome of one frame.
type Result struct {
	Frame   int
	Image   string // path relative to OutputDir
	Success bool
	Error   string
}

// FrameName is the file name of frame n.
func FrameName(n int) string {
	return fmt.Sprintf("%05d.webp", n)
}

// Run renders every snapshot. Per-frame failures are reported in the
// results; the returned error is only set when ctx is cancelled or the
// output directory cannot be created.
func Run(ctx context.Context, cfg Config, snaps []scene.Snapshot) ([]Result, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("capture: mkdir %s: %w", cfg.OutputDir, err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.L()
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	interval := cfg.Progress
	if interval <= 0 {
		interval = 2 * time.Second
	}

	total := len(snaps)
	results := make([]Result, total)
	var processed atomic.Int64
	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if p := processed.Load(); p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					logger.Info("capture progress", "done", p, "total", total, "fps", fmt.Sprintf("%.1f", rate))
				}
			}
		}
	}()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range snaps {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = renderFrame(cfg, i, snaps[i])
			processed.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	if err := ctx.Err(); err != nil {
		return results, err
	}

	logger.Info("capture finished", "frames", total, "elapsed", time.Since(start).Round(time.Millisecond))
	return results, nil
}

func renderFrame(cfg Config, seq int, snap scene.Snapshot) Result {
	name := FrameName(seq)
	res := Result{Frame: snap.Frame, Image: name}

	img := raster.Render(snap, cfg.Render)
	if cfg.Render.Supersample > 1 {
		img = postprocess.Downsample(img, cfg.Render.Width, cfg.Render.Height)
	}

	f, err := os.Create(filepath.Join(cfg.OutputDir, name))
	if err != nil {
		res.Error = err.Error()
		return res
	}
	defer f.Close()

	if err := nativewebp.Encode(f, img, nil); err != nil {
		res.Error = fmt.Sprintf("webp encode: %v", err)
		return res
	}
	res.Success = true
	return res
}
