// Package provider implements a small generic framework for swappable
// backends.
//
// A backend implements Provider (Name, IsAvailable) plus whatever
// domain-specific methods its interface adds. Backends register a Factory
// under a name; callers build them from a config map at startup:
//
//	reg := provider.NewRegistry[transcription.Provider]()
//	reg.RegisterFactory("sensevoice", sensevoice.Factory())
//	p, err := reg.GetOrCreate("sensevoice", map[string]any{"url": url})
//	defer reg.Close(ctx)
package provider
