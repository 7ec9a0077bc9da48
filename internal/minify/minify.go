// Package minify turns loosely specified minification requests into concrete
// plans and runs them against pluggable compressors.
//
// A request is either file based (input and output paths, with wildcard and
// $1 output templating support) or in memory (content in, code out). Both are
// resolved once by Setup and executed by Compress or CompressInMemory.
// The package never logs; callers observe results and returned errors only.
package minify

import (
	"context"
	"fmt"
)

// Minifier resolves compressor names through its registry.
type Minifier struct {
	registry *Registry
}

// Option configures a Minifier.
type Option func(*Minifier)

// WithRegistry sets the registry used to resolve Settings.CompressorName.
func WithRegistry(r *Registry) Option {
	return func(m *Minifier) {
		m.registry = r
	}
}

// New creates a Minifier.
func New(opts ...Option) *Minifier {
	m := &Minifier{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var std = New()

// Minify runs one request with a Minifier that has no registry, so only
// settings carrying a Compressor func can succeed.
func Minify(ctx context.Context, s Settings) (string, error) {
	return std.Minify(ctx, s)
}

// Setup resolves settings with a Minifier that has no registry.
func Setup(s Settings) (Request, error) {
	return std.Setup(s)
}

// Minify normalizes the settings, dispatches them in memory when content was
// supplied and to files otherwise, and returns the compressor's code.
//
// When s.Callback is set it is also called with the outcome; errors passed to
// it are wrapped in a *CompressionError.
func (m *Minifier) Minify(ctx context.Context, s Settings) (string, error) {
	result, err := m.minify(ctx, s)

	if s.Callback != nil {
		if err != nil {
			s.Callback(&CompressionError{Err: err}, "")
		} else {
			s.Callback(nil, result)
		}
	}

	return result, err
}

func (m *Minifier) minify(ctx context.Context, s Settings) (string, error) {
	req, err := m.Setup(s)
	if err != nil {
		return "", err
	}

	switch r := req.(type) {
	case *InMemoryRequest:
		return CompressInMemory(ctx, r)
	case *FileRequest:
		return Compress(ctx, r)
	default:
		return "", fmt.Errorf("unknown request type %T", req)
	}
}
