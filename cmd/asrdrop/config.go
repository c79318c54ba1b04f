package main

import (
	"fmt"
	"os"
	"time"

	"github.com/kbukum/asrdrop/config"
	"github.com/kbukum/asrdrop/inbox"
	"github.com/kbukum/asrdrop/observability"
	"github.com/kbukum/asrdrop/server"
	"github.com/kbukum/asrdrop/transcription/sensevoice"
	"github.com/kbukum/asrdrop/version"
)

const serviceName = "asrdrop"

// AppConfig is the complete configuration of the asrdrop binary.
type AppConfig struct {
	config.ServiceConfig `yaml:",inline" mapstructure:",squash"`

	ASR           sensevoice.Config    `yaml:"asr" mapstructure:"asr"`
	Server        server.Config        `yaml:"server" mapstructure:"server"`
	Observability observability.Config `yaml:"observability" mapstructure:"observability"`
	Watch         WatchConfig          `yaml:"watch" mapstructure:"watch"`
}

// WatchConfig configures the watch command.
type WatchConfig struct {
	// Debounce is how long the input directory must stay quiet before an upload.
	Debounce time.Duration `yaml:"debounce" mapstructure:"debounce"`
}

// ApplyDefaults fills in every section.
func (c *AppConfig) ApplyDefaults() {
	if c.Name == "" {
		c.Name = serviceName
	}
	if c.Version == "" {
		c.Version = version.Version
	}
	c.ServiceConfig.ApplyDefaults()
	c.ASR.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Observability.ApplyDefaults()
	if c.Watch.Debounce <= 0 {
		c.Watch.Debounce = inbox.DefaultDebounce
	}
}

// Validate checks every section.
func (c *AppConfig) Validate() error {
	if err := c.ServiceConfig.Validate(); err != nil {
		return err
	}
	if err := c.ASR.Validate(); err != nil {
		return fmt.Errorf("config.asr: %w", err)
	}
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("config.server: %w", err)
	}
	if err := c.Observability.Validate(); err != nil {
		return fmt.Errorf("config.observability: %w", err)
	}
	return nil
}

// loadConfig reads config.yml, .env and the environment. ASR_API_URL is
// accepted as an alias for ASR_URL. An explicit path must exist.
func loadConfig(path string) (*AppConfig, error) {
	opts := []config.LoaderOption{config.WithEnvAlias("ASR_API_URL", "asr.url")}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file: %w", err)
		}
		opts = append(opts, config.WithConfigFile(path))
	}

	cfg := &AppConfig{}
	if err := config.LoadConfig(serviceName, cfg, opts...); err != nil {
		return nil, err
	}
	return cfg, nil
}
