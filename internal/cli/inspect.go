package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// NewInspectCommand creates the inspect command.
func NewInspectCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Print the skeleton hierarchy and motion summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(rootOpts, cmd)
		},
	}
}

func runInspect(opts *RootOptions, cmd *cobra.Command) error {
	s, err := opts.openSession(false)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	sk := s.Skeleton()

	fmt.Fprintf(out, "Skeleton: %s (%s)\n", sk.Name, s.ActorPath())
	fmt.Fprintf(out, "Bones: %d, scale %g\n", sk.NumBones(), sk.Scale)
	for _, b := range sk.Bones {
		parent := "-"
		if b.Parent >= 0 {
			parent = sk.Bones[b.Parent].Name
		}
		dof := strings.Join(b.DOF, " ")
		if dof == "" {
			dof = "-"
		}
		fmt.Fprintf(out, "  %3d %-14s parent=%-14s len=%-8.4g dof=%s\n", b.Index, b.Name, parent, b.Length, dof)
	}

	if m := s.Sampled(); m != nil {
		first, n := s.Player().Span()
		fmt.Fprintf(out, "Motion: %s\n", s.MotionPath())
		fmt.Fprintf(out, "Frames: %d (playable %d..%d)\n", m.NumFrames(), first, first+n-1)
	}
	return nil
}
