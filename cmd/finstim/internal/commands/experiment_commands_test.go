package commands

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExperimentRejectsInputDryRun(t *testing.T) {
	root := &cobra.Command{Use: "finstim", SilenceUsage: true, SilenceErrors: true}
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	InitCommonFlags(root)
	InitExperimentCommands(root)

	root.SetArgs([]string{"experiment", "--protocol", "whatever.yaml", "--input", "--dry-run"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--dry-run cannot be combined with --input")
}
