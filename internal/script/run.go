package script

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"mocap-player/internal/amc"
	"mocap-player/internal/capture"
	"mocap-player/internal/log"
	"mocap-player/internal/raster"
	"mocap-player/internal/session"
)

// Env carries what the capture and export steps need beyond the session.
type Env struct {
	Render    raster.Options
	Workers   int
	OutputDir string // default capture directory
	Logger    *slog.Logger
}

// Report summarizes a run.
type Report struct {
	Steps     int
	Manifests []capture.Manifest
	Exports   []string
}

// Run executes the steps in order and stops at the first error.
func Run(ctx context.Context, s *session.Session, sc *Script, env Env) (Report, error) {
	logger := env.Logger
	if logger == nil {
		logger = log.L()
	}
	var rep Report
	for _, st := range sc.Steps {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		logger.Debug("script step", "line", st.Line, "step", st.Name)

		var err error
		switch {
		case st.Command != nil:
			err = s.Dispatch(sc.resolve(st.Command))
		case st.Capture != nil:
			var m capture.Manifest
			m, err = sc.capture(ctx, s, *st.Capture, env, logger)
			if err == nil {
				rep.Manifests = append(rep.Manifests, m)
			}
		case st.Export != nil:
			var path string
			path, err = sc.export(s, *st.Export)
			if err == nil {
				rep.Exports = append(rep.Exports, path)
				logger.Info("wrote amc", "path", path)
			}
		}
		if err != nil {
			return rep, fmt.Errorf("script: line %d: %s: %w", st.Line, st.Name, err)
		}
		rep.Steps++
	}
	return rep, nil
}

func (sc *Script) path(p string) string {
	if p == "" || filepath.IsAbs(p) || sc.BaseDir == "" {
		return p
	}
	return filepath.Join(sc.BaseDir, p)
}

func (sc *Script) resolve(c session.Command) session.Command {
	switch c := c.(type) {
	case session.LoadActor:
		c.Path = sc.path(c.Path)
		return c
	case session.LoadMotion:
		c.Path = sc.path(c.Path)
		return c
	}
	return c
}

func (sc *Script) capture(ctx context.Context, s *session.Session, c Capture, env Env, logger *slog.Logger) (capture.Manifest, error) {
	dir := env.OutputDir
	if c.OutputDir != "" {
		dir = sc.path(c.OutputDir)
	}
	if dir == "" {
		dir = sc.path("frames")
	}

	snaps, err := s.Record(c.Limit)
	if err != nil {
		return capture.Manifest{}, err
	}
	results, err := capture.Run(ctx, capture.Config{
		OutputDir: dir,
		Render:    env.Render,
		Workers:   env.Workers,
		Logger:    logger,
	}, snaps)
	if err != nil {
		return capture.Manifest{}, err
	}

	m := capture.NewManifest(s.MotionPath(), env.Render.Width, env.Render.Height, results)
	if err := capture.WriteManifest(filepath.Join(dir, "manifest.json"), m); err != nil {
		return capture.Manifest{}, err
	}
	if failed := len(results) - len(m.Frames); failed > 0 {
		logger.Warn("some frames failed", "failed", failed, "dir", dir)
	}
	return m, nil
}

func (sc *Script) export(s *session.Session, e Export) (string, error) {
	sk := s.Skeleton()
	if sk == nil {
		return "", session.ErrNoActor
	}
	path := sc.path(e.Path)
	asfName := filepath.Base(s.ActorPath())

	if e.Store == "sampled" {
		m := s.Sampled()
		if m == nil {
			return "", session.ErrNoMotion
		}
		return path, amc.WriteFile(path, asfName, sk, m, 0, m.NumFrames()-1)
	}
	res := s.Interpolated()
	if res == nil {
		return "", ErrNotInterpolated
	}
	return path, amc.WriteFile(path, asfName, sk, res.Motion, res.FirstFrame, res.LastFrame())
}
