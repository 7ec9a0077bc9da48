package compressor

import (
	"context"
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/rs/zerolog"
	"github.com/wolfeidau/gominify/internal/minify"
)

var esbuildLoaders = map[string]api.Loader{
	"js":  api.LoaderJS,
	"jsx": api.LoaderJSX,
	"ts":  api.LoaderTS,
	"tsx": api.LoaderTSX,
	"css": api.LoaderCSS,
}

// Esbuild minifies JavaScript, TypeScript or CSS with esbuild's transform API.
// The type setting selects the loader and is mandatory.
//
// Recognised options: minify (default true), sourceMap, charset ("utf8").
func Esbuild(ctx context.Context, in minify.Input) (*minify.Result, error) {
	if in.Settings.Type == "" {
		return nil, fmt.Errorf("%w: esbuild needs one of js, jsx, ts, tsx or css", ErrTypeRequired)
	}
	loader, ok := esbuildLoaders[in.Settings.Type]
	if !ok {
		return nil, fmt.Errorf("%w: esbuild cannot handle %q", minify.ErrUnsupportedType, in.Settings.Type)
	}

	opts := in.Settings.Options
	doMinify := opts.Bool("minify", true)
	sourceMap := minify.SourceMapPath(opts, "out") != ""

	result := api.Transform(string(in.Content), api.TransformOptions{
		Loader:            loader,
		MinifyWhitespace:  doMinify,
		MinifyIdentifiers: doMinify,
		MinifySyntax:      doMinify,
		Sourcemap:         cond(sourceMap, api.SourceMapExternal, api.SourceMapNone),
		Charset:           cond(opts.String("charset", "") == "utf8", api.CharsetUTF8, api.CharsetDefault),
	})

	if len(result.Errors) > 0 {
		texts := make([]string, 0, len(result.Errors))
		for _, msg := range result.Errors {
			zerolog.Ctx(ctx).Error().Str("error", msg.Text).Msg("Build error")
			texts = append(texts, msg.Text)
		}
		return nil, fmt.Errorf("%w: %s", ErrBuildFailed, strings.Join(texts, "; "))
	}

	return &minify.Result{
		Code: string(result.Code),
		Map:  string(result.Map),
	}, nil
}

func cond[T any](condition bool, trueVal, falseVal T) T {
	if condition {
		return trueVal
	}
	return falseVal
}
