package sensevoice

import (
	"fmt"
	"time"

	"github.com/kbukum/asrdrop/httpclient"
	"github.com/kbukum/asrdrop/provider"
	"github.com/kbukum/asrdrop/transcription"
)

// Factory returns a provider.Factory for the transcription registry.
//
// Recognized keys: url, input_dir, timeout (time.Duration or a duration
// string such as "300s") and tls (*httpclient.TLSConfig).
func Factory(opts ...Option) provider.Factory[transcription.Provider] {
	return func(cfg map[string]any) (transcription.Provider, error) {
		var c Config
		if url, ok := cfg["url"].(string); ok {
			c.URL = url
		}
		if dir, ok := cfg["input_dir"].(string); ok {
			c.InputDir = dir
		}
		switch t := cfg["timeout"].(type) {
		case time.Duration:
			c.Timeout = t
		case string:
			d, err := time.ParseDuration(t)
			if err != nil {
				return nil, fmt.Errorf("sensevoice: invalid timeout %q: %w", t, err)
			}
			c.Timeout = d
		}
		if tls, ok := cfg["tls"].(*httpclient.TLSConfig); ok {
			c.TLS = tls
		}
		return NewProvider(c, opts...)
	}
}
