package config

import (
	"fmt"
	"net"
	"strconv"

	"github.com/kbukum/dock/index"
	"github.com/kbukum/dock/logger"
	"github.com/kbukum/dock/registry"
	"github.com/kbukum/dock/validation"
)

// Wiring policy values.
const (
	ModeStrict  = "strict"
	ModeLenient = "lenient"

	ReloadAtomic  = "atomic"
	ReloadInPlace = "in_place"

	DedupIdentity = registry.DedupIdentity
	DedupAppend   = registry.DedupAppend

	LivenessFilter = registry.LivenessFilter
	LivenessIgnore = registry.LivenessIgnore
)

// Config is the top-level dock configuration.
type Config struct {
	Name          string              `yaml:"name" mapstructure:"name" validate:"required"`
	Environment   string              `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Debug         bool                `yaml:"debug" mapstructure:"debug"`
	Logging       logger.Config       `yaml:"logging" mapstructure:"logging"`
	Wiring        WiringConfig        `yaml:"wiring" mapstructure:"wiring"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`
	Inspector     InspectorConfig     `yaml:"inspector" mapstructure:"inspector"`
}

// WiringConfig selects the registry and binder policies.
type WiringConfig struct {
	// Mode decides what happens to a member whose role is unknown.
	Mode string `yaml:"mode" mapstructure:"mode" validate:"oneof=strict lenient"`
	// Reload selects staged (atomic) or clear-first (in_place) candidate reloads.
	Reload string `yaml:"reload" mapstructure:"reload" validate:"oneof=atomic in_place"`
	// Dedup selects the single-add policy.
	Dedup string `yaml:"dedup" mapstructure:"dedup" validate:"oneof=identity append"`
	// Liveness decides whether destroyed candidates are filtered out of lookups.
	Liveness             string   `yaml:"liveness" mapstructure:"liveness" validate:"oneof=filter ignore"`
	RegisterInstantiated *bool    `yaml:"register_instantiated" mapstructure:"register_instantiated"`
	DenyModules          []string `yaml:"deny_modules" mapstructure:"deny_modules"`
}

// ObservabilityConfig configures OpenTelemetry export.
type ObservabilityConfig struct {
	Enabled    bool    `yaml:"enabled" mapstructure:"enabled"`
	Endpoint   string  `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure   bool    `yaml:"insecure" mapstructure:"insecure"`
	SampleRate float64 `yaml:"sample_rate" mapstructure:"sample_rate" validate:"gte=0,lte=1"`
}

// InspectorConfig configures the read-only HTTP inspector.
type InspectorConfig struct {
	Enabled bool   `yaml:"enabled" mapstructure:"enabled"`
	Host    string `yaml:"host" mapstructure:"host"`
	Port    int    `yaml:"port" mapstructure:"port" validate:"gte=0,lte=65535"`
}

// Addr returns host:port.
func (c *InspectorConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// GetDockConfig returns c. Application configs embedding Config get it
// promoted, which is what bootstrap.Config requires.
func (c *Config) GetDockConfig() *Config { return c }

// ApplyDefaults fills zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Environment == "development" {
		c.Debug = true
	}
	// Propagate the name into logging so Init() uses the right tag.
	if c.Logging.ServiceName == "" && c.Name != "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()
	c.Wiring.ApplyDefaults()
	c.Observability.ApplyDefaults()
	c.Inspector.ApplyDefaults()
}

// ApplyDefaults fills zero-valued wiring policies.
func (c *WiringConfig) ApplyDefaults() {
	if c.Mode == "" {
		c.Mode = ModeStrict
	}
	if c.Reload == "" {
		c.Reload = ReloadAtomic
	}
	if c.Dedup == "" {
		c.Dedup = DedupIdentity
	}
	if c.Liveness == "" {
		c.Liveness = LivenessFilter
	}
	if c.RegisterInstantiated == nil {
		on := true
		c.RegisterInstantiated = &on
	}
	if c.DenyModules == nil {
		c.DenyModules = append([]string(nil), index.DefaultDeny...)
	}
}

// Strict reports whether unknown member roles are errors.
func (c *WiringConfig) Strict() bool { return c.Mode != ModeLenient }

// Atomic reports whether candidate reloads are staged.
func (c *WiringConfig) Atomic() bool { return c.Reload != ReloadInPlace }

// RegistersInstantiated reports whether instantiated objects become candidates.
func (c *WiringConfig) RegistersInstantiated() bool {
	return c.RegisterInstantiated == nil || *c.RegisterInstantiated
}

// ApplyDefaults fills zero-valued observability fields.
func (c *ObservabilityConfig) ApplyDefaults() {
	if c.Endpoint == "" {
		c.Endpoint = "localhost:4318"
	}
	if c.SampleRate == 0 {
		c.SampleRate = 1.0
	}
}

// ApplyDefaults fills zero-valued inspector fields.
func (c *InspectorConfig) ApplyDefaults() {
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
	if c.Port == 0 {
		c.Port = 7070
	}
}

// Validate checks the policy values and the deny-list. Callers building a
// WiringConfig by hand should apply defaults first.
func (c *WiringConfig) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	v := validation.New()
	for _, m := range c.DenyModules {
		v.Required("wiring.deny_modules", m).Pattern("wiring.deny_modules", m, validation.ModulePattern)
	}
	v.Unique("wiring.deny_modules", c.DenyModules)
	return v.Error()
}

// Validate checks struct tags and cross-field rules.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	if err := c.Wiring.Validate(); err != nil {
		return err
	}

	v := validation.New()
	if c.Observability.Enabled {
		v.Required("observability.endpoint", c.Observability.Endpoint)
	}
	if c.Inspector.Enabled {
		v.Required("inspector.host", c.Inspector.Host)
		v.Range("inspector.port", c.Inspector.Port, 1, 65535)
	}
	return v.Error()
}
