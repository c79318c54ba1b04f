package provider

import "context"

// Provider is the base interface all backends implement.
type Provider interface {
	// Name returns the provider's unique name.
	Name() string
	// IsAvailable reports whether the backend can currently be reached.
	IsAvailable(ctx context.Context) bool
}

// Closeable is implemented by providers that hold resources such as pooled
// connections. Registry.Close releases them.
type Closeable interface {
	Close(ctx context.Context) error
}

// Factory creates a provider instance from a loosely typed config map.
// Keys mirror the provider's mapstructure tags.
type Factory[T Provider] func(cfg map[string]any) (T, error)
