// Package config loads dock configuration.
//
// It uses Viper to read a YAML config file and environment variables, and
// godotenv to load .env files. Files are searched for in the standard
// locations (./cmd/<name>/config.yml, ./config/config.yml, ./config.yml).
//
// # Usage
//
//	var cfg config.Config
//	if err := config.LoadConfig("dockctl", &cfg); err != nil {
//	    return err
//	}
//	cfg.ApplyDefaults()
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
//
// Environment variables override file values with underscore-separated
// paths, with or without the DOCK_ prefix (e.g. DOCK_WIRING_MODE=lenient).
package config
