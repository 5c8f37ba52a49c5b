package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/dock/catalog"
	"github.com/kbukum/dock/config"
	"github.com/kbukum/dock/scene"
)

const appName = "dockctl"

// cliConfig is the dockctl configuration file layout.
type cliConfig struct {
	config.Config `yaml:",inline" mapstructure:",squash"`
}

type rootFlags struct {
	configFile string
	scenePath  string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   appName,
		Short: "Run, validate and inspect dock scenes",
		Long: appName + " loads a YAML scene built from the kit components,\n" +
			"binds it with a dock controller and reports the result.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.PersistentFlags().StringVarP(&flags.configFile, "config", "c", "",
		"config file (default: ./cmd/"+appName+"/config.yml, ./config.yml)")
	root.PersistentFlags().StringVarP(&flags.scenePath, "scene", "s", "",
		"scene YAML file")

	root.AddCommand(
		newRunCmd(flags),
		newServeCmd(flags),
		newValidateCmd(flags),
		newKitCmd(),
		newVersionCmd(),
	)
	return root
}

// loadConfig reads the config file and environment, naming the
// application after the CLI when the file does not.
func (f *rootFlags) loadConfig() (*cliConfig, error) {
	cfg := &cliConfig{}
	var opts []config.LoaderOption
	if f.configFile != "" {
		opts = append(opts, config.WithConfigFile(f.configFile))
	}
	if err := config.LoadConfig(appName, cfg, opts...); err != nil {
		return nil, err
	}
	if cfg.Name == "" {
		cfg.Name = appName
	}
	return cfg, nil
}

// loadScene builds the --scene file from the kit and returns it with the
// kit catalog.
func (f *rootFlags) loadScene(cmd *cobra.Command) (*scene.Scene, *catalog.Catalog, error) {
	if f.scenePath == "" {
		return nil, nil, fmt.Errorf("--scene is required")
	}
	cat, factories := newKit(cmd.OutOrStdout())
	s, err := scene.LoadFile(f.scenePath, factories)
	if err != nil {
		return nil, nil, err
	}
	return s, cat, nil
}
