package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/dock/lifecycle"
	"github.com/kbukum/dock/logger"
)

func newValidateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Report members of a scene that can not be bound",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			cfg.ApplyDefaults()
			if err := cfg.Validate(); err != nil {
				return err
			}
			s, cat, err := flags.loadScene(cmd)
			if err != nil {
				return err
			}
			if err := cat.Validate(); err != nil {
				return fmt.Errorf("catalog: %w", err)
			}

			ctl, err := lifecycle.New(s, cat,
				lifecycle.WithWiring(cfg.Wiring),
				lifecycle.WithLogger(logger.NewNop()),
			)
			if err != nil {
				return err
			}
			defer ctl.Shutdown()

			out := cmd.OutOrStdout()
			if err := ctl.ReloadTypes(); err != nil {
				return err
			}
			issues := ctl.Issues()
			for _, is := range issues {
				fmt.Fprintf(out, "✗ %s: %s\n", is.Request, is.Err.Message)
			}

			bindErr := ctl.ReloadCandidates()
			snap := ctl.Snapshot()
			fmt.Fprintf(out, "%s: %d roles, %d bindable types, %d issues\n",
				s.Name(), len(snap.Roles), len(snap.Types), len(issues))

			if len(issues) > 0 {
				return fmt.Errorf("%d unbindable members", len(issues))
			}
			return bindErr
		},
	}
}
