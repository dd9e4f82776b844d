package commands

import (
	"github.com/spf13/cobra"
)

// InitDriftCommands registers the drifting presentation command.
func InitDriftCommands(rootCmd *cobra.Command) {
	driftCmd := &cobra.Command{
		Use:   "drift",
		Short: "Show a whole-field drifting stimulus",
		RunE:  runDrift,
	}
	addTextureFlags(driftCmd)
	driftCmd.Flags().Float64("angle", 0, "Texture orientation in degrees, positive clockwise")
	driftCmd.Flags().Float64("velocity", 0.1, "Drift velocity in field widths per second")
	rootCmd.AddCommand(driftCmd)
}

func runDrift(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	spec, err := specFromFlags(cmd)
	if err != nil {
		return err
	}
	if spec.Angle, err = cmd.Flags().GetFloat64("angle"); err != nil {
		return err
	}
	if spec.Velocity, err = cmd.Flags().GetFloat64("velocity"); err != nil {
		return err
	}

	size, err := textureSize(cmd, cfg)
	if err != nil {
		return err
	}
	stim, err := spec.Build(size)
	if err != nil {
		return err
	}
	return present(stim, cfg, log)
}
