package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/dock/bootstrap"
	"github.com/kbukum/dock/di"
	"github.com/kbukum/dock/scene"
)

func newRunCmd(flags *rootFlags) *cobra.Command {
	var (
		spawn []string
		quiet bool
	)
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Initialize a scene, optionally spawn prefabs, then shut down",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			s, cat, err := flags.loadScene(cmd)
			if err != nil {
				return err
			}

			var opts []bootstrap.Option
			if quiet {
				opts = append(opts, bootstrap.WithQuietSummary())
			}
			app, err := bootstrap.NewApp(cfg, s, cat, opts...)
			if err != nil {
				return err
			}
			return app.RunTask(cmd.Context(), func(ctx context.Context) error {
				for _, name := range spawn {
					node, err := di.Instantiate[*scene.Node](app.Controller, name)
					if err != nil {
						return fmt.Errorf("spawn %s: %w", name, err)
					}
					fmt.Fprintf(cmd.OutOrStdout(), "spawned %s\n", node.Path())
				}
				return nil
			})
		},
	}
	cmd.Flags().StringArrayVar(&spawn, "spawn", nil, "prefab to instantiate after initialization (repeatable)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "do not print the startup summary")
	return cmd
}
