package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"mocap-player/internal/log"
	"mocap-player/internal/script"
	"mocap-player/internal/texture"
)

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run <script.yaml>",
		Short: "Run a YAML command script against a fresh session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScript(rootOpts, args[0], cmd)
		},
	}
}

func runScript(rootOpts *RootOptions, path string, cmd *cobra.Command) error {
	sc, err := script.Load(path)
	if err != nil {
		return err
	}
	ropts, err := rootOpts.rasterOptions(texture.NewCache())
	if err != nil {
		return err
	}

	s := rootOpts.newSession()
	s.Scene().Background = rootOpts.Config.Render.ShowBackground()
	s.Scene().Light = rootOpts.Config.Render.Light

	rep, err := script.Run(cmd.Context(), s, sc, script.Env{
		Render:    ropts,
		Workers:   rootOpts.Config.Render.Workers,
		OutputDir: rootOpts.Config.OutputDir,
		Logger:    log.L(),
	})
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Steps: %d/%d\n", rep.Steps, len(sc.Steps))
	for _, m := range rep.Manifests {
		fmt.Fprintf(out, "Captured: %d frames (run %s)\n", len(m.Frames), m.RunID)
	}
	for _, p := range rep.Exports {
		fmt.Fprintf(out, "Wrote: %s\n", p)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Keyframes: %v, frame %d\n", s.Keyframes(), s.Frame())
	return nil
}
