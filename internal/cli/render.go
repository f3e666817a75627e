package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"mocap-player/internal/capture"
	"mocap-player/internal/log"
	"mocap-player/internal/session"
	"mocap-player/internal/texture"
)

type renderOptions struct {
	Keys       []int
	Output     string
	Increment  int
	Limit      int
	From       int
	Background bool
	Light      bool
}

// NewRenderCommand creates the render command.
func NewRenderCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Play the motion and write every displayed frame as WebP",
		Long: `Play the motion once from the start of the span and capture each displayed
frame, the way the player's record mode does. With two or more keyframes the
span is interpolated first and both actors are drawn side by side.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd.Context(), rootOpts, opts, cmd)
		},
	}
	f := cmd.Flags()
	f.IntSliceVarP(&opts.Keys, "keys", "k", nil, "keyframes to interpolate before recording")
	f.StringVarP(&opts.Output, "output", "o", "", "output directory (default: config output_dir)")
	f.IntVar(&opts.Increment, "increment", 4, "frames advanced per captured frame")
	f.IntVar(&opts.Limit, "limit", 0, "stop after this many frames (0: whole span)")
	f.IntVar(&opts.From, "from", -1, "first frame to record (default: start of span)")
	f.BoolVar(&opts.Background, "background", false, "draw the ground and axis triad")
	f.BoolVar(&opts.Light, "light", false, "shade bones")
	return cmd
}

func runRender(ctx context.Context, rootOpts *RootOptions, opts *renderOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg := rootOpts.Config

	var s *session.Session
	var err error
	if len(opts.Keys) > 0 {
		s, _, err = keyed(rootOpts, opts.Keys)
	} else {
		s, err = rootOpts.openSession(true)
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	sc := s.Scene()
	sc.Background = opts.Background
	if !flags.Changed("background") && cfg.Render.Background != nil {
		sc.Background = *cfg.Render.Background
	}
	sc.Light = opts.Light || (!flags.Changed("light") && cfg.Render.Light)

	s.SetFrameIncrement(opts.Increment)
	if opts.From >= 0 {
		s.Scrub(opts.From)
	}
	s.Locate()

	ropts, err := rootOpts.rasterOptions(texture.NewCache())
	if err != nil {
		return err
	}
	dir := cfg.OutputDir
	if opts.Output != "" {
		dir = opts.Output
	}

	snaps, err := s.Record(opts.Limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Motion: %s\n", s.MotionPath())
	fmt.Fprintf(out, "Frames: %d, Workers: %d, Size: %dx%d\n", len(snaps), cfg.Render.Workers, ropts.Width, ropts.Height)
	fmt.Fprintf(out, "Output: %s\n", dir)
	fmt.Fprintln(out, "------------------------------------------------------------")

	start := time.Now()
	results, err := capture.Run(ctx, capture.Config{
		OutputDir: dir,
		Render:    ropts,
		Workers:   cfg.Render.Workers,
		Logger:    log.L(),
	}, snaps)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "------------------------------------------------------------")
	fmt.Fprintf(out, "Done in %.1fs\n", time.Since(start).Seconds())

	m := capture.NewManifest(s.MotionPath(), ropts.Width, ropts.Height, results)
	fmt.Fprintf(out, "Rendered: %d/%d\n", len(m.Frames), len(results))
	if failed := len(results) - len(m.Frames); failed > 0 {
		fmt.Fprintf(out, "\nFailed (%d):\n", failed)
		shown := 0
		for _, r := range results {
			if r.Success {
				continue
			}
			fmt.Fprintf(out, "  frame %d: %s\n", r.Frame, r.Error)
			if shown++; shown == 20 {
				break
			}
		}
	}

	manifestPath := filepath.Join(dir, "manifest.json")
	if err := capture.WriteManifest(manifestPath, m); err != nil {
		return err
	}
	fmt.Fprintf(out, "Manifest: %s\n", manifestPath)

	if len(m.Frames) < len(results) {
		return fmt.Errorf("%d frames failed", len(results)-len(m.Frames))
	}
	return nil
}
