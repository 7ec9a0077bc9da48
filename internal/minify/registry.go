package minify

import (
	"sort"
	"sync"
)

// Middleware decorates a compressor, for logging or instrumentation.
type Middleware func(name string, next Compressor) Compressor

// Registry maps compressor identifiers to statically known compressors.
type Registry struct {
	mu          sync.RWMutex
	compressors map[string]Compressor
	middleware  []Middleware
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{compressors: make(map[string]Compressor)}
}

// Register adds or replaces the compressor for name.
func (r *Registry) Register(name string, c Compressor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.compressors[name] = c
}

// Use appends middleware applied to every compressor returned by Lookup.
// The first middleware added is the outermost.
func (r *Registry) Use(mw ...Middleware) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.middleware = append(r.middleware, mw...)
}

// Lookup returns the compressor registered under name, wrapped in the
// registry middleware.
func (r *Registry) Lookup(name string) (Compressor, bool) {
	if r == nil {
		return nil, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.compressors[name]
	if !ok {
		return nil, false
	}
	for i := len(r.middleware) - 1; i >= 0; i-- {
		c = r.middleware[i](name, c)
	}
	return c, true
}

// Names returns the registered identifiers in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.compressors))
	for name := range r.compressors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
