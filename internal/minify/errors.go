package minify

import (
	"errors"
	"fmt"
)

var (
	// ErrCompressorMandatory indicates neither a compressor nor a compressor name was supplied
	ErrCompressorMandatory = errors.New("compressor is mandatory.")
	// ErrInputMandatory indicates a file request without input
	ErrInputMandatory = errors.New("input is mandatory.")
	// ErrOutputMandatory indicates a file request without output
	ErrOutputMandatory = errors.New("output is mandatory.")
	// ErrContentMandatory indicates an in-memory request without content
	ErrContentMandatory = errors.New("content is mandatory.")
	// ErrCompressorNotFunction indicates the compressor could not be resolved to a callable
	ErrCompressorNotFunction = errors.New("compressor should be a function, maybe you forgot to install the compressor")
	// ErrOutputArrayNeedsInputArray indicates a list output paired with a single input
	ErrOutputArrayNeedsInputArray = errors.New("When output is an array, input must also be an array")
	// ErrInvalidContent indicates in-memory content that is neither a string nor bytes
	ErrInvalidContent = errors.New("content must be a string or a byte slice")
	// ErrNoInputFiles indicates the input resolved to zero files
	ErrNoInputFiles = errors.New("no input files found")
	// ErrInvalidPaths indicates input or output that is neither a string nor a list of strings
	ErrInvalidPaths = errors.New("must be a string or a list of strings")
	// ErrUnsupportedType indicates a compressor was asked for a type it does not handle
	ErrUnsupportedType = errors.New("unsupported type")
)

// InvalidPathError reports a list element that is not a non-empty string.
type InvalidPathError struct {
	Field string
	Index int
	Got   string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("Invalid %s at index %d: expected non-empty string, got %s", e.Field, e.Index, e.Got)
}

// LengthMismatchError reports input and output lists of different lengths.
type LengthMismatchError struct {
	Input  int
	Output int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("Input and output arrays must have the same length (input: %d, output: %d)", e.Input, e.Output)
}

// CompressionError is the error handed to a legacy callback.
type CompressionError struct {
	Err error
}

func (e *CompressionError) Error() string {
	return "Compression failed: " + e.Err.Error()
}

func (e *CompressionError) Unwrap() error {
	return e.Err
}
