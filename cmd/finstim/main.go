// Package main is the entry point for the finstim rig CLI. It
// registers the presentation commands (static, drift, binocular,
// experiment) and executes the command line.
package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"finstim/cmd/finstim/internal/commands"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "finstim",
		Short: "Visual stimulus presentation for fish behavior rigs",
		Long: `finstim presents visual stimuli on a rig display.

Single stimuli go up with the static, drift and binocular commands.
Timed protocols run with the experiment command, which records every
presented epoch and can serve a control API for closed-loop input.`,
		SilenceUsage: true,
	}

	commands.InitCommonFlags(rootCmd)
	commands.InitStaticCommands(rootCmd)
	commands.InitDriftCommands(rootCmd)
	commands.InitBinocularCommands(rootCmd)
	commands.InitExperimentCommands(rootCmd)
	commands.InitVersionCommands(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}
	return nil
}
