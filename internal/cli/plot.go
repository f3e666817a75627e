package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"

	"mocap-player/internal/motion"
	"mocap-player/internal/plotcurve"
	"mocap-player/internal/session"
)

type plotOptions struct {
	Keys    []int
	Bone    string
	Channel string
	From    int
	To      int
	Output  string
	Width   float64
	Height  float64
}

// NewPlotCommand creates the plot command.
func NewPlotCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &plotOptions{}
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Plot one bone channel, sampled against interpolated",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlot(rootOpts, opts, cmd)
		},
	}
	f := cmd.Flags()
	f.IntSliceVarP(&opts.Keys, "keys", "k", nil, "keyframes; two or more add the interpolated curve")
	f.StringVar(&opts.Bone, "bone", "root", "bone name")
	f.StringVar(&opts.Channel, "channel", "rx", "channel (tx|ty|tz|rx|ry|rz)")
	f.IntVar(&opts.From, "from", -1, "first frame (default: start of span)")
	f.IntVar(&opts.To, "to", -1, "last frame (default: end of span)")
	f.StringVarP(&opts.Output, "output", "o", "channel.png", "output image (.png, .svg, .pdf)")
	f.Float64Var(&opts.Width, "width", 8, "width in inches")
	f.Float64Var(&opts.Height, "height", 4, "height in inches")
	return cmd
}

func runPlot(rootOpts *RootOptions, opts *plotOptions, cmd *cobra.Command) error {
	ch, err := plotcurve.ParseChannel(opts.Channel)
	if err != nil {
		return err
	}

	var s *session.Session
	if len(opts.Keys) >= 2 {
		s, _, err = keyed(rootOpts, opts.Keys)
	} else {
		s, err = rootOpts.openSession(true)
	}
	if err != nil {
		return err
	}

	bone, ok := s.Skeleton().BoneIndex(opts.Bone)
	if !ok {
		return fmt.Errorf("unknown bone %q", opts.Bone)
	}

	from, to := 0, s.Sampled().NumFrames()-1
	var interpolated *motion.Motion
	if res := s.Interpolated(); res != nil {
		interpolated = res.Motion
		from, to = res.FirstFrame, res.LastFrame()
	}
	if opts.From >= 0 {
		from = opts.From
	}
	if opts.To >= 0 {
		to = opts.To
	}

	err = plotcurve.Save(opts.Output, plotcurve.Curve{
		Bone:         bone,
		BoneName:     opts.Bone,
		Channel:      ch,
		From:         from,
		To:           to,
		Sampled:      s.Sampled(),
		Interpolated: interpolated,
		Keys:         s.Keyframes(),
	}, vg.Length(opts.Width)*vg.Inch, vg.Length(opts.Height)*vg.Inch)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote: %s (%s %s, frames %d..%d)\n", opts.Output, opts.Bone, ch, from, to)
	return nil
}
