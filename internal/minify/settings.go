package minify

import (
	"context"
)

// DefaultBuffer is the default number of bytes an external process may write
// to stdout before it is considered runaway.
const DefaultBuffer = 1000 * 1024

// NoIndex marks a compressor invocation that is not part of an array dispatch.
const NoIndex = -1

// Compressor wraps one minification engine. Implementations must not retain
// the input content after returning.
type Compressor func(ctx context.Context, in Input) (*Result, error)

// Input is what a compressor receives for one invocation.
type Input struct {
	Settings Plan
	Content  []byte
	// Index is the position of this file pair in an array dispatch, or NoIndex.
	Index int
	// Output is the resolved output path, empty for in-memory requests.
	Output string
}

// Result is what a compressor returns.
type Result struct {
	Code    string
	Map     string
	Buffer  []byte
	Outputs []Output
}

// Output is one additional artefact produced by a multi-format compressor.
type Output struct {
	Format  string
	Content []byte
}

// Settings describes one minification request as supplied by a caller.
//
// Input and Output accept a string, a []string, or a []any as decoded from
// YAML or JSON. Content accepts a string or a []byte; when set (an empty string
// counts as unset) the request is handled in memory and Input/Output are
// ignored.
type Settings struct {
	Compressor     Compressor
	CompressorName string
	Input          any
	Output         any
	Content        any
	PublicFolder   string
	ReplaceInPlace bool
	Type           string
	Options        Options
	Sync           bool
	Buffer         int
	Callback       func(err error, result string)
}

// Plan holds the resolved fields shared by every request variant.
type Plan struct {
	Compressor     Compressor
	CompressorName string
	Type           string
	Options        Options
	PublicFolder   string
	ReplaceInPlace bool
	Sync           bool
	Buffer         int
}

// Paths is one path, or a list of paths. List is true when the caller supplied
// a list or a wildcard expanded into one.
type Paths struct {
	Files []string
	List  bool
}

// Single returns a Paths holding one path.
func Single(path string) Paths {
	return Paths{Files: []string{path}}
}

// List returns a Paths holding an explicit list.
func List(paths ...string) Paths {
	return Paths{Files: paths, List: true}
}

// Request is a normalized request, either *FileRequest or *InMemoryRequest.
type Request interface {
	plan() *Plan
}

// FileRequest reads its input from disk and writes the result to Output.
type FileRequest struct {
	Plan
	Input  Paths
	Output Paths
}

func (r *FileRequest) plan() *Plan { return &r.Plan }

// InMemoryRequest compresses Content and returns the result without file I/O.
type InMemoryRequest struct {
	Plan
	Content []byte
}

func (r *InMemoryRequest) plan() *Plan { return &r.Plan }
