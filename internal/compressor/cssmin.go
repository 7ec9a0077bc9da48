package compressor

import (
	"context"

	"github.com/dchest/cssmin"
	"github.com/wolfeidau/gominify/internal/minify"
)

// CSSMin minifies stylesheets with the Go port of the YUI CSS compressor.
func CSSMin(_ context.Context, in minify.Input) (*minify.Result, error) {
	return &minify.Result{Code: string(cssmin.Minify(in.Content))}, nil
}
