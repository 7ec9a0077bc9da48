package compressor

import "errors"

var (
	// ErrTypeRequired indicates a compressor handling several languages was not given a type
	ErrTypeRequired = errors.New("type is required")
	// ErrBuildFailed indicates esbuild reported errors for the input
	ErrBuildFailed = errors.New("esbuild failed with errors")
	// ErrJarNotConfigured indicates no jar path was supplied for a Java compressor
	ErrJarNotConfigured = errors.New("jar path not configured")
	// ErrUnsupportedImage indicates the input is not a PNG, JPEG or GIF image
	ErrUnsupportedImage = errors.New("unsupported image format")
)
