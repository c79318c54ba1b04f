package sensevoice

import (
	"time"

	"github.com/kbukum/asrdrop/httpclient"
	"github.com/kbukum/asrdrop/validation"
)

const (
	// DefaultURL is the ASR endpoint used when none is configured.
	DefaultURL = "http://192.168.1.218:50000/api/v1/asr"
	// DefaultInputDir is the directory scanned for audio files.
	DefaultInputDir = "data/inputs"
	// DefaultTimeout bounds one upload, long enough for lengthy recordings.
	DefaultTimeout = 300 * time.Second
)

// Config holds configuration for the SenseVoice provider.
type Config struct {
	// URL is the full ASR endpoint, e.g. http://host:50000/api/v1/asr.
	URL string `yaml:"url" mapstructure:"url" validate:"required,url"`
	// InputDir is scanned (non-recursively) for .wav and .mp3 files.
	InputDir string `yaml:"input_dir" mapstructure:"input_dir" validate:"required"`
	// Timeout bounds the whole request including the response body.
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout" validate:"gt=0"`
	// TLS configures an https endpoint.
	TLS *httpclient.TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.URL == "" {
		c.URL = DefaultURL
	}
	if c.InputDir == "" {
		c.InputDir = DefaultInputDir
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if err := validation.Validate(c); err != nil {
		return err
	}
	return c.TLS.Validate()
}

// clientConfig derives the HTTP client settings.
func (c *Config) clientConfig() httpclient.Config {
	return httpclient.Config{
		Timeout:   c.Timeout,
		TLS:       c.TLS,
		UserAgent: "asrdrop-sensevoice",
	}
}
