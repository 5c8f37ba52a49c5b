package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/dock/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the dockctl build version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", appName, version.Get())
			return nil
		},
	}
}
