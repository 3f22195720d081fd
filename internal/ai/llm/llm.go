// Package llm sends prompts to text-generation providers selected by name.
package llm

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// Provider names accepted by Resolve
const (
	ProviderGemini  = "gemini"
	ProviderChatGPT = "chatgpt"
)

// Provider generates text for a prompt. Implementations return the raw model
// text and never inspect its content.
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// Registry maps provider names to providers
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	fallback  string
}

// NewRegistry creates a registry. fallback is used when Resolve gets an empty name.
func NewRegistry(fallback string, providers ...Provider) *Registry {
	r := &Registry{
		providers: make(map[string]Provider),
		fallback:  normalizeName(fallback),
	}
	for _, p := range providers {
		r.Register(p)
	}
	return r
}

// Register adds or replaces a provider under its Name
func (r *Registry) Register(p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[normalizeName(p.Name())] = p
}

// Resolve returns the provider registered under name
func (r *Registry) Resolve(name string) (Provider, error) {
	key := normalizeName(name)
	if key == "" {
		key = r.fallback
	}

	r.mu.RLock()
	p, ok := r.providers[key]
	r.mu.RUnlock()

	if !ok {
		return nil, ErrUnsupportedProvider().
			WithDetail("provider", name).
			WithDetail("supported", r.Names())
	}
	return p, nil
}

// Names lists the registered provider names in order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
