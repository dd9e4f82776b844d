package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"finstim/experiment"
)

// InitBinocularCommands registers the binocular presentation command.
func InitBinocularCommands(rootCmd *cobra.Command) {
	binocularCmd := &cobra.Command{
		Use:   "binocular",
		Short: "Show a half-field stimulus pair through rotatable masks",
		RunE:  runBinocular,
	}
	addTextureFlags(binocularCmd)
	binocularCmd.Flags().Float64Slice("angles", []float64{0, 0}, "Left,right texture orientations in degrees")
	binocularCmd.Flags().Float64Slice("velocities", []float64{0, 0}, "Left,right drift velocities in field widths per second")
	binocularCmd.Flags().Float64("mask-angle", 0, "Dividing line angle in degrees, positive clockwise")
	binocularCmd.Flags().Float64Slice("position", []float64{0, 0}, "Dividing line center x,y in [-1,1]")
	binocularCmd.Flags().Int("band-radius", 1, "Half-width of the dark band along the divider, in texture pixels")
	rootCmd.AddCommand(binocularCmd)
}

func runBinocular(cmd *cobra.Command, _ []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}

	spec, err := specFromFlags(cmd)
	if err != nil {
		return err
	}

	var b experiment.BinocularSpec
	angles, err := cmd.Flags().GetFloat64Slice("angles")
	if err != nil {
		return err
	}
	velocities, err := cmd.Flags().GetFloat64Slice("velocities")
	if err != nil {
		return err
	}
	position, err := cmd.Flags().GetFloat64Slice("position")
	if err != nil {
		return err
	}
	if len(angles) != 2 || len(velocities) != 2 || len(position) != 2 {
		return fmt.Errorf("angles, velocities and position each take two values")
	}
	b.Angles = [2]float64{angles[0], angles[1]}
	b.Velocities = [2]float64{velocities[0], velocities[1]}
	b.Position = [2]float64{position[0], position[1]}
	if b.MaskAngle, err = cmd.Flags().GetFloat64("mask-angle"); err != nil {
		return err
	}
	if b.BandRadius, err = cmd.Flags().GetInt("band-radius"); err != nil {
		return err
	}
	spec.Binocular = &b

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
