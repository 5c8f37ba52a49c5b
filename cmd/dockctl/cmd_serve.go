package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/dock/bootstrap"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var (
		host string
		port int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Initialize a scene and serve the inspector until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.loadConfig()
			if err != nil {
				return err
			}
			cfg.Inspector.Enabled = true
			if cmd.Flags().Changed("host") {
				cfg.Inspector.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Inspector.Port = port
			}

			s, cat, err := flags.loadScene(cmd)
			if err != nil {
				return err
			}
			app, err := bootstrap.NewApp(cfg, s, cat)
			if err != nil {
				return err
			}
			return app.Run(cmd.Context())
		},
	}
	cmd.Flags().StringVar(&host, "host", "127.0.0.1", "inspector host")
	cmd.Flags().IntVarP(&port, "port", "p", 7070, "inspector port")
	return cmd
}
