package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newKitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kit",
		Short: "List the component types and roles scenes can use",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, factories := newKit(cmd.OutOrStdout())
			out := cmd.OutOrStdout()

			fmt.Fprintln(out, "components:")
			for _, name := range factories.List() {
				fmt.Fprintf(out, "  %s\n", name)
			}
			fmt.Fprintln(out, "roles:")
			for _, m := range cat.Modules() {
				for _, decl := range cat.TypesIn(m) {
					if decl.Role {
						fmt.Fprintf(out, "  %s\n", decl.Type)
					}
				}
			}
			return nil
		},
	}
}
