package compressor

import (
	"context"

	"github.com/wolfeidau/gominify/internal/minify"
)

// NoCompress returns the content unchanged. It is useful for copying files
// through the same pipeline as the minified ones.
func NoCompress(_ context.Context, in minify.Input) (*minify.Result, error) {
	return &minify.Result{Code: string(in.Content)}, nil
}
