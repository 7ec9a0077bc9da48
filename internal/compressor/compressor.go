// Package compressor provides the compressors that can be selected by name:
// Go native minifiers (esbuild, tdewolff/minify, cssmin), a stdlib image
// recompressor and the Java based Closure Compiler and YUI Compressor.
package compressor

import (
	"github.com/wolfeidau/gominify/internal/minify"
)

const (
	NoCompressName   = "no-compress"
	EsbuildName      = "esbuild"
	HTMLMinifierName = "html-minifier"
	CSSName          = "css"
	JSName           = "js"
	JSONName         = "json"
	SVGName          = "svg"
	XMLName          = "xml"
	CSSMinName       = "cssmin"
	ImageName        = "image"
	GCCName          = "gcc"
	YUIName          = "yui"
)

// Config locates the external tools used by the Java compressors.
type Config struct {
	// Java binary, defaults to "java" on the PATH
	Java string
	// Path to the Closure Compiler jar
	GCCJar string
	// Path to the YUI Compressor jar
	YUIJar string
}

// Register adds every compressor to r under its identifier.
func Register(r *minify.Registry, cfg Config) {
	r.Register(NoCompressName, NoCompress)
	r.Register(EsbuildName, Esbuild)
	r.Register(HTMLMinifierName, HTMLMinifier)
	r.Register(CSSName, CSS)
	r.Register(JSName, JS)
	r.Register(JSONName, JSON)
	r.Register(SVGName, SVG)
	r.Register(XMLName, XML)
	r.Register(CSSMinName, CSSMin)
	r.Register(ImageName, Image)
	r.Register(GCCName, GCC(cfg))
	r.Register(YUIName, YUI(cfg))
}

// NewRegistry returns a registry holding every compressor.
func NewRegistry(cfg Config) *minify.Registry {
	r := minify.NewRegistry()
	Register(r, cfg)
	return r
}
