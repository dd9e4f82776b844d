package commands

import (
	"github.com/spf13/cobra"
)

// InitStaticCommands registers the static presentation command.
func InitStaticCommands(rootCmd *cobra.Command) {
	staticCmd := &cobra.Command{
		Use:   "static",
		Short: "Show a whole-field stationary stimulus",
		RunE:  runStatic,
	}
	addTextureFlags(staticCmd)
	staticCmd.Flags().Float64("angle", 0, "Texture orientation in degrees, positive clockwise")
	rootCmd.AddCommand(staticCmd)
}

func runStatic(cmd *cobra.Command, _ []string) error {
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
