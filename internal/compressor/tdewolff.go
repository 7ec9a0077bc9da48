package compressor

import (
	"context"
	"fmt"
	"regexp"

	tdminify "github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/json"
	"github.com/tdewolff/minify/v2/svg"
	"github.com/tdewolff/minify/v2/xml"
	"github.com/wolfeidau/gominify/internal/minify"
)

const (
	mediaHTML = "text/html"
	mediaCSS  = "text/css"
	mediaJS   = "application/javascript"
	mediaJSON = "application/json"
	mediaSVG  = "image/svg+xml"
	mediaXML  = "text/xml"
)

var (
	jsMediaPattern   = regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$")
	jsonMediaPattern = regexp.MustCompile(`[/+]json$`)
	xmlMediaPattern  = regexp.MustCompile(`[/+]xml$`)
)

// HTMLMinifier minifies HTML including inline styles, scripts, SVG and JSON.
// Options map onto html.Minifier fields, e.g. keepComments, keepEndTags,
// keepQuotes, keepWhitespace, keepDocumentTags, keepDefaultAttrVals.
func HTMLMinifier(_ context.Context, in minify.Input) (*minify.Result, error) {
	o := &html.Minifier{}
	if err := in.Settings.Options.Decode(o); err != nil {
		return nil, err
	}

	m := tdminify.New()
	m.Add(mediaHTML, o)
	m.AddFunc(mediaCSS, css.Minify)
	m.AddFunc(mediaSVG, svg.Minify)
	m.AddFuncRegexp(jsMediaPattern, js.Minify)
	m.AddFuncRegexp(jsonMediaPattern, json.Minify)

	return run(m, mediaHTML, in.Content)
}

// CSS minifies stylesheets. Options: precision, keepCSS2, inline.
func CSS(_ context.Context, in minify.Input) (*minify.Result, error) {
	o := &css.Minifier{}
	if err := in.Settings.Options.Decode(o); err != nil {
		return nil, err
	}
	return single(mediaCSS, o, in.Content)
}

// JS minifies JavaScript. Options: precision, keepVarNames, version.
func JS(_ context.Context, in minify.Input) (*minify.Result, error) {
	o := &js.Minifier{}
	if err := in.Settings.Options.Decode(o); err != nil {
		return nil, err
	}
	return single(mediaJS, o, in.Content)
}

// JSON removes insignificant whitespace. Options: precision, keepNumbers.
func JSON(_ context.Context, in minify.Input) (*minify.Result, error) {
	o := &json.Minifier{}
	if err := in.Settings.Options.Decode(o); err != nil {
		return nil, err
	}
	return single(mediaJSON, o, in.Content)
}

// SVG minifies SVG documents and their inline styles. Options: precision,
// keepComments.
func SVG(_ context.Context, in minify.Input) (*minify.Result, error) {
	o := &svg.Minifier{}
	if err := in.Settings.Options.Decode(o); err != nil {
		return nil, err
	}

	m := tdminify.New()
	m.Add(mediaSVG, o)
	m.AddFunc(mediaCSS, css.Minify)

	return run(m, mediaSVG, in.Content)
}

// XML minifies XML documents. Options: keepWhitespace.
func XML(_ context.Context, in minify.Input) (*minify.Result, error) {
	o := &xml.Minifier{}
	if err := in.Settings.Options.Decode(o); err != nil {
		return nil, err
	}

	m := tdminify.New()
	m.AddRegexp(xmlMediaPattern, o)

	return run(m, mediaXML, in.Content)
}

func single(mediatype string, o tdminify.Minifier, content []byte) (*minify.Result, error) {
	m := tdminify.New()
	m.Add(mediatype, o)
	return run(m, mediatype, content)
}

func run(m *tdminify.M, mediatype string, content []byte) (*minify.Result, error) {
	out, err := m.Bytes(mediatype, content)
	if err != nil {
		return nil, fmt.Errorf("failed to minify %s: %w", mediatype, err)
	}
	return &minify.Result{Code: string(out)}, nil
}
