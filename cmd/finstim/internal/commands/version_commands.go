package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"finstim/internal/buildinfo"
)

// InitVersionCommands registers the version command.
func InitVersionCommands(rootCmd *cobra.Command) {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Println("finstim " + buildinfo.String())
		},
	}
	rootCmd.AddCommand(versionCmd)
}
