// Package cli wires the qraft command tree.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRoot builds the root command.
func NewRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "qraft",
		Short:        "Generate a reviewable test plan from a PRD",
		SilenceUsage: true,
		RunE:         func(c *cobra.Command, _ []string) error { return c.Help() },
	}
	cmd.AddCommand(newRunCmd())
	return cmd
}
