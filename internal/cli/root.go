// Package cli wires the player packages into the mocap command.
package cli

import (
	"fmt"
	"image"
	"os"

	"github.com/spf13/cobra"

	"mocap-player/internal/config"
	"mocap-player/internal/interp"
	"mocap-player/internal/log"
	"mocap-player/internal/raster"
	"mocap-player/internal/session"
	"mocap-player/internal/texture"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
	LogLevel   string
	Skeleton   string
	Motion     string
	Blend      string
	Workers    int

	// Config is loaded and resolved before any subcommand runs.
	Config config.Config
}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "mocap",
		Short: "ASF/AMC motion capture player and keyframe tool",
		Long: `Load an ASF skeleton and AMC motion, pick keyframes, rebuild the span
between them with Catmull-Rom interpolation and export the result as AMC,
WebP frames or channel plots.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "path to a YAML config file")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	pf.StringVar(&opts.Skeleton, "asf", "", "ASF skeleton file")
	pf.StringVar(&opts.Motion, "amc", "", "AMC motion file")
	pf.StringVar(&opts.Blend, "blend", "", "rotation blending (euler|unwrapped)")
	pf.IntVar(&opts.Workers, "workers", 0, "render workers (default: NumCPU)")

	cmd.AddCommand(NewInspectCommand(opts))
	cmd.AddCommand(NewInterpolateCommand(opts))
	cmd.AddCommand(NewRenderCommand(opts))
	cmd.AddCommand(NewPlotCommand(opts))
	cmd.AddCommand(NewRunCommand(opts))

	return cmd
}

func (o *RootOptions) load() error {
	var cfg config.Config
	if o.ConfigPath != "" {
		var err error
		if cfg, err = config.Load(o.ConfigPath); err != nil {
			return err
		}
	}
	cfg.Resolve(config.Flags{
		Skeleton:      o.Skeleton,
		Motion:        o.Motion,
		Workers:       o.Workers,
		LogLevel:      o.LogLevel,
		RotationBlend: o.Blend,
	})
	if _, err := interp.ParseRotationBlend(cfg.RotationBlend); err != nil {
		return err
	}
	log.Init(cfg.LogLevel)
	o.Config = cfg
	return nil
}

// newSession returns an empty session configured from the resolved config.
func (o *RootOptions) newSession() *session.Session {
	blend, _ := interp.ParseRotationBlend(o.Config.RotationBlend)
	return session.New(session.Options{
		Scale:          o.Config.Scale,
		MaxSkeletons:   o.Config.MaxSkeletons,
		FrameIncrement: o.Config.FrameIncrement,
		Interp:         interp.Options{Rotation: blend},
		Logger:         log.L(),
	})
}

// openSession loads the configured skeleton and, when set, the motion.
func (o *RootOptions) openSession(needMotion bool) (*session.Session, error) {
	if o.Config.Skeleton == "" {
		return nil, fmt.Errorf("no skeleton: use --asf or set skeleton in the config")
	}
	if needMotion && o.Config.Motion == "" {
		return nil, fmt.Errorf("no motion: use --amc or set motion in the config")
	}
	s := o.newSession()
	if err := s.LoadActor(o.Config.Skeleton); err != nil {
		return nil, err
	}
	if o.Config.Motion != "" {
		if err := s.LoadMotion(o.Config.Motion); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// rasterOptions builds raster options from the render section.
func (o *RootOptions) rasterOptions(tex *texture.Cache) (raster.Options, error) {
	r := o.Config.Render
	opts := raster.DefaultOptions()
	opts.Width, opts.Height = r.Width, r.Height
	opts.Supersample = r.Supersample
	opts.BoneRadius = r.BoneRadius

	bg, err := config.ParseColor(r.ClearColor)
	if err != nil {
		return opts, err
	}
	opts.Background = bg

	if r.GroundTexture != "" {
		var img *image.NRGBA
		if img, err = tex.Load(r.GroundTexture); err != nil {
			log.Warn("ground texture unavailable, using checker", "path", r.GroundTexture, "err", err)
		} else {
			opts.Ground = img
		}
	}
	return opts, nil
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
