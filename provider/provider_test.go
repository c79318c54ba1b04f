package provider

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
)

// testProvider implements the Provider interface for testing.
type testProvider struct {
	name      string
	available bool
	closed    int
	closeErr  error
}

func (p *testProvider) Name() string                       { return p.name }
func (p *testProvider) IsAvailable(_ context.Context) bool { return p.available }
func (p *testProvider) Close(_ context.Context) error {
	p.closed++
	return p.closeErr
}

func TestRegistryRegisterAndCreate(t *testing.T) {
	reg := NewRegistry[*testProvider]()
	reg.RegisterFactory("test", func(cfg map[string]any) (*testProvider, error) {
		url, _ := cfg["url"].(string)
		return &testProvider{name: url, available: true}, nil
	})

	p, err := reg.Create("test", map[string]any{"url": "http://asr"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if p.Name() != "http://asr" {
		t.Errorf("expected factory to see config, got %q", p.Name())
	}
	if _, ok := reg.Get("test"); ok {
		t.Error("Create should not cache the instance")
	}
}

func TestRegistryCreateUnregistered(t *testing.T) {
	reg := NewRegistry[*testProvider]()
	reg.RegisterFactory("sensevoice", func(map[string]any) (*testProvider, error) {
		return &testProvider{}, nil
	})
	_, err := reg.Create("missing", nil)
	if err == nil {
		t.Fatal("expected error for unregistered factory")
	}
	if !strings.Contains(err.Error(), "not registered") || !strings.Contains(err.Error(), "sensevoice") {
		t.Errorf("expected 'not registered' and available names in error, got %q", err.Error())
	}
}

func TestRegistryFactoryError(t *testing.T) {
	reg := NewRegistry[*testProvider]()
	reg.RegisterFactory("bad", func(map[string]any) (*testProvider, error) {
		return nil, errors.New("invalid url")
	})
	if _, err := reg.GetOrCreate("bad", nil); err == nil {
		t.Fatal("expected factory error to propagate")
	}
	if _, ok := reg.Get("bad"); ok {
		t.Error("failed creation must not be cached")
	}
}

func TestRegistryList(t *testing.T) {
	reg := NewRegistry[*testProvider]()
	reg.RegisterFactory("beta", func(cfg map[string]any) (*testProvider, error) {
		return &testProvider{name: "beta"}, nil
	})
	reg.RegisterFactory("alpha", func(cfg map[string]any) (*testProvider, error) {
		return &testProvider{name: "alpha"}, nil
	})

	names := reg.List()
	if len(names) != 2 {
		t.Fatalf("expected 2 names, got %d", len(names))
	}
	if names[0] != "alpha" || names[1] != "beta" {
		t.Errorf("expected sorted [alpha, beta], got %v", names)
	}
}

func TestRegistryGetSet(t *testing.T) {
	reg := NewRegistry[*testProvider]()
	p := &testProvider{name: "cached", available: true}

	if _, ok := reg.Get("cached"); ok {
		t.Error("expected Get to return false before Set")
	}

	reg.Set("cached", p)
	got, ok := reg.Get("cached")
	if !ok {
		t.Fatal("expected Get to return true after Set")
	}
	if got != p {
		t.Errorf("expected the same instance back")
	}
}

func TestRegistryGetOrCreateCaches(t *testing.T) {
	reg := NewRegistry[*testProvider]()
	var calls atomic.Int32
	reg.RegisterFactory("sv", func(map[string]any) (*testProvider, error) {
		calls.Add(1)
		return &testProvider{name: "sv"}, nil
	})

	var wg sync.WaitGroup
	results := make([]*testProvider, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := reg.GetOrCreate("sv", nil)
			if err != nil {
				t.Errorf("GetOrCreate: %v", err)
			}
			results[i] = p
		}(i)
	}
	wg.Wait()

	first, _ := reg.Get("sv")
	for _, p := range results {
		if p != first {
			t.Fatal("all callers should observe the cached instance")
		}
	}
	if calls.Load() < 1 {
		t.Error("factory was never called")
	}
}

func TestRegistryClose(t *testing.T) {
	reg := NewRegistry[*testProvider]()
	ok := &testProvider{name: "ok"}
	bad := &testProvider{name: "bad", closeErr: errors.New("busy")}
	reg.Set("ok", ok)
	reg.Set("bad", bad)

	err := reg.Close(context.Background())
	if err == nil || !strings.Contains(err.Error(), "close bad: busy") {
		t.Errorf("expected joined close error, got %v", err)
	}
	if ok.closed != 1 || bad.closed != 1 {
		t.Errorf("expected each instance closed once, got ok=%d bad=%d", ok.closed, bad.closed)
	}
	if _, found := reg.Get("ok"); found {
		t.Error("Close should empty the instance cache")
	}
	if err := reg.Close(context.Background()); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
}
