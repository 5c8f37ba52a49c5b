package bootstrap

import (
	"github.com/kbukum/dock/config"
)

// Config is the constraint for application configuration types. Any struct
// embedding config.Config satisfies it through promoted methods.
//
// Example:
//
//	type GameConfig struct {
//	    config.Config `yaml:",inline" mapstructure:",squash"`
//	    Scene string  `yaml:"scene" mapstructure:"scene"`
//	}
//
//	app, err := bootstrap.NewApp(&cfg, scene, cat)
type Config interface {
	GetDockConfig() *config.Config
	ApplyDefaults()
	Validate() error
}
