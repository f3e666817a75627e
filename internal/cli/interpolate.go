package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"mocap-player/internal/amc"
	"mocap-player/internal/interp"
	"mocap-player/internal/session"
)

type interpolateOptions struct {
	Keys   []int
	Output string
}

// NewInterpolateCommand creates the interpolate command.
func NewInterpolateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &interpolateOptions{}
	cmd := &cobra.Command{
		Use:   "interpolate",
		Short: "Rebuild the span between keyframes and write it as AMC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInterpolate(rootOpts, opts, cmd)
		},
	}
	cmd.Flags().IntSliceVarP(&opts.Keys, "keys", "k", nil, "keyframes, e.g. 10,40,80")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "interpolated.amc", "output AMC file")
	return cmd
}

// keyed loads the session, adds keys and interpolates. It fails when the
// keys do not produce an interpolated motion.
func keyed(rootOpts *RootOptions, keys []int) (*session.Session, *interp.Result, error) {
	s, err := rootOpts.openSession(true)
	if err != nil {
		return nil, nil, err
	}
	for _, k := range keys {
		if _, err := s.AddKeyframe(k); err != nil {
			return nil, nil, fmt.Errorf("keyframe %d: %w", k, err)
		}
	}
	res, ok, err := s.Interpolate()
	if err != nil {
		return nil, nil, err
	}
	if !ok {
		return nil, nil, interp.ErrTooFewKeyframes
	}
	return s, res, nil
}

func runInterpolate(rootOpts *RootOptions, opts *interpolateOptions, cmd *cobra.Command) error {
	s, res, err := keyed(rootOpts, opts.Keys)
	if err != nil {
		return err
	}
	if err := amc.WriteFile(opts.Output, filepath.Base(s.ActorPath()), s.Skeleton(), res.Motion, res.FirstFrame, res.LastFrame()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Keys: %v (synthetic %v)\n", res.Keys, res.Synthetic)
	fmt.Fprintf(out, "Span: %d..%d (%d frames, %s)\n", res.FirstFrame, res.LastFrame(), res.MaxFrames, rootOpts.Config.RotationBlend)
	fmt.Fprintf(out, "Wrote: %s\n", opts.Output)
	return nil
}
