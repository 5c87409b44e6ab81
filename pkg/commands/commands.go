// Package commands wires the jade CLI: evaluate drawing scripts, convert
// saved drawings to SVG and report the build version.
package commands

import (
	"github.com/spf13/cobra"
)

// New returns the root jade command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jade",
		Short: "A headless vector-diagram editor driven by Lisp scripts.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addRun(topLevel)
	addExport(topLevel)
	addVersion(topLevel)
}
