package minify

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompress_SingleFile(t *testing.T) {
	dir := t.TempDir()
	input := writeFixture(t, dir, "a.js", "var a = 1;")
	output := filepath.Join(dir, "b.js")

	code, err := Minify(t.Context(), Settings{Compressor: identity, Input: input, Output: output})
	require.NoError(t, err)
	assert.Equal(t, "var a = 1;", code)
	assert.Equal(t, "var a = 1;", readFixture(t, output))
}

func TestCompress_ConcatenatesListIntoSingleOutput(t *testing.T) {
	dir := t.TempDir()
	a := writeFixture(t, dir, "a.js", "var a = 1;")
	b := writeFixture(t, dir, "b.js", "var b = 2;")
	output := filepath.Join(dir, "c.js")

	code, err := Minify(t.Context(), Settings{Compressor: identity, Input: []string{a, b}, Output: output})
	require.NoError(t, err)
	assert.Equal(t, "var a = 1;\nvar b = 2;", code)
	assert.Equal(t, "var a = 1;\nvar b = 2;", readFixture(t, output))
}

func TestCompress_ArrayPairs(t *testing.T) {
	for _, seq := range []bool{false, true} {
		t.Run(map[bool]string{false: "concurrent", true: "sync"}[seq], func(t *testing.T) {
			dir := t.TempDir()
			a := writeFixture(t, dir, "a.js", "var a = 1;")
			b := writeFixture(t, dir, "b.js", "var b = 2;")
			aOut := filepath.Join(dir, "out", "a.min.js")
			bOut := filepath.Join(dir, "out", "nested", "b.min.js")

			code, err := Minify(t.Context(), Settings{
				Compressor: identity,
				Input:      []string{a, b},
				Output:     []string{aOut, bOut},
				Sync:       seq,
			})
			require.NoError(t, err)
			assert.Equal(t, "var b = 2;", code)
			assert.Equal(t, "var a = 1;", readFixture(t, aOut))
			assert.Equal(t, "var b = 2;", readFixture(t, bOut))
		})
	}
}

func TestCompress_ArrayPassesIndex(t *testing.T) {
	dir := t.TempDir()
	inputs := []string{
		writeFixture(t, dir, "a.js", "a"),
		writeFixture(t, dir, "b.js", "b"),
		writeFixture(t, dir, "c.js", "c"),
	}
	outputs := []string{filepath.Join(dir, "a.out"), filepath.Join(dir, "b.out"), filepath.Join(dir, "c.out")}

	var mu sync.Mutex
	seen := map[int]string{}
	compressor := func(_ context.Context, in Input) (*Result, error) {
		mu.Lock()
		defer mu.Unlock()
		seen[in.Index] = in.Output
		return &Result{Code: string(in.Content)}, nil
	}

	_, err := Minify(t.Context(), Settings{Compressor: compressor, Input: inputs, Output: outputs})
	require.NoError(t, err)
	assert.Equal(t, map[int]string{0: outputs[0], 1: outputs[1], 2: outputs[2]}, seen)
}

func TestCompress_EmptyArray(t *testing.T) {
	code, err := Compress(t.Context(), &FileRequest{
		Plan:   Plan{Compressor: identity},
		Input:  List(),
		Output: List(),
	})
	require.NoError(t, err)
	assert.Empty(t, code)
}

func TestCompress_ShapeErrors(t *testing.T) {
	tests := []struct {
		name    string
		req     *FileRequest
		message string
	}{
		{
			name:    "array output with single input",
			req:     &FileRequest{Plan: Plan{Compressor: identity}, Input: Single("y.js"), Output: List("x.js")},
			message: "When output is an array, input must also be an array",
		},
		{
			name:    "length mismatch",
			req:     &FileRequest{Plan: Plan{Compressor: identity}, Input: List("a.js", "b.js", "c.js"), Output: List("a.min.js")},
			message: "Input and output arrays must have the same length (input: 3, output: 1)",
		},
		{
			name:    "empty input element",
			req:     &FileRequest{Plan: Plan{Compressor: identity}, Input: List("a.js", ""), Output: List("a.min.js", "b.min.js")},
			message: "Invalid input at index 1: expected non-empty string, got empty string",
		},
		{
			name:    "compressor missing",
			req:     &FileRequest{Input: Single("a.js"), Output: Single("b.js")},
			message: "compressor should be a function, maybe you forgot to install the compressor",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compress(t.Context(), tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.message, err.Error())
		})
	}
}

func TestCompress_ArrayOutputWithScalarInput(t *testing.T) {
	_, err := Minify(t.Context(), Settings{Compressor: identity, Input: "y.js", Output: []string{"x.js"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutputArrayNeedsInputArray)
}

func TestCompress_NoInputFiles(t *testing.T) {
	dir := t.TempDir()
	called := false
	compressor := func(_ context.Context, in Input) (*Result, error) {
		called = true
		return &Result{}, nil
	}

	_, err := Minify(t.Context(), Settings{
		Compressor: compressor,
		Input:      filepath.Join(dir, "*.js"),
		Output:     filepath.Join(dir, "out.js"),
	})
	require.ErrorIs(t, err, ErrNoInputFiles)
	assert.False(t, called)
}

func TestCompress_NoMatchWithTemplatedOutput(t *testing.T) {
	dir := t.TempDir()
	called := false
	compressor := func(_ context.Context, in Input) (*Result, error) {
		called = true
		return &Result{}, nil
	}

	_, err := Minify(t.Context(), Settings{
		Compressor: compressor,
		Input:      filepath.Join(dir, "*.js"),
		Output:     filepath.Join(dir, "$1.min.js"),
	})
	require.ErrorIs(t, err, ErrNoInputFiles)
	assert.False(t, called)
}

func TestCompress_NilResultWritesEmptyOutput(t *testing.T) {
	dir := t.TempDir()
	input := writeFixture(t, dir, "a.js", "var a = 1;")
	output := filepath.Join(dir, "b.js")

	compressor := func(_ context.Context, in Input) (*Result, error) {
		return nil, nil
	}

	code, err := Minify(t.Context(), Settings{Compressor: compressor, Input: input, Output: output})
	require.NoError(t, err)
	assert.Empty(t, code)
	assert.FileExists(t, output)
	assert.Empty(t, readFixture(t, output))
}

func TestCompress_MissingInputFile(t *testing.T) {
	dir := t.TempDir()
	_, err := Minify(t.Context(), Settings{
		Compressor: identity,
		Input:      filepath.Join(dir, "missing.js"),
		Output:     filepath.Join(dir, "out.js"),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCompress_CompressorErrorPropagates(t *testing.T) {
	dir := t.TempDir()
	input := writeFixture(t, dir, "a.js", "a")
	boom := errors.New("boom")

	compressor := func(_ context.Context, in Input) (*Result, error) {
		return nil, boom
	}

	for _, seq := range []bool{false, true} {
		_, err := Minify(t.Context(), Settings{
			Compressor: compressor,
			Input:      []string{input},
			Output:     []string{filepath.Join(dir, "a.min.js")},
			Sync:       seq,
		})
		require.ErrorIs(t, err, boom)
	}
}

func TestCompress_CreatesDirectoriesBeforeCompressing(t *testing.T) {
	dir := t.TempDir()
	a := writeFixture(t, dir, "a.js", "a")
	b := writeFixture(t, dir, "b.js", "b")
	outputs := []string{filepath.Join(dir, "x", "a.js"), filepath.Join(dir, "y", "z", "b.js")}

	compressor := func(_ context.Context, in Input) (*Result, error) {
		for _, out := range outputs {
			info, err := os.Stat(filepath.Dir(out))
			if err != nil || !info.IsDir() {
				return nil, errors.New("output directory missing")
			}
		}
		return &Result{Code: string(in.Content)}, nil
	}

	_, err := Minify(t.Context(), Settings{Compressor: compressor, Input: []string{a, b}, Output: outputs})
	require.NoError(t, err)
}

func TestCompress_WritesBufferAndSourceMap(t *testing.T) {
	dir := t.TempDir()
	input := writeFixture(t, dir, "a.js", "a")
	output := filepath.Join(dir, "a.min.js")

	compressor := func(_ context.Context, in Input) (*Result, error) {
		return &Result{Code: "code", Buffer: []byte("buffer"), Map: `{"version":3}`}, nil
	}

	code, err := Minify(t.Context(), Settings{
		Compressor: compressor,
		Input:      input,
		Output:     output,
		Options:    Options{"sourceMap": true},
	})
	require.NoError(t, err)
	assert.Equal(t, "code", code)
	assert.Equal(t, "buffer", readFixture(t, output))
	assert.Equal(t, `{"version":3}`, readFixture(t, output+".map"))
}

func TestCompress_SkipsSourceMapWhenNotRequested(t *testing.T) {
	dir := t.TempDir()
	input := writeFixture(t, dir, "a.js", "a")
	output := filepath.Join(dir, "a.min.js")

	compressor := func(_ context.Context, in Input) (*Result, error) {
		return &Result{Code: "code", Map: `{"version":3}`}, nil
	}

	_, err := Minify(t.Context(), Settings{Compressor: compressor, Input: input, Output: output})
	require.NoError(t, err)
	_, err = os.Stat(output + ".map")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCompress_Idempotent(t *testing.T) {
	dir := t.TempDir()
	input := writeFixture(t, dir, "a.js", "var a = 1;")
	output := filepath.Join(dir, "dist", "$1.min.js")
	settings := Settings{Compressor: identity, Input: input, Output: output}

	_, err := Minify(t.Context(), settings)
	require.NoError(t, err)
	first := readFixture(t, filepath.Join(dir, "dist", "a.min.js"))

	_, err = Minify(t.Context(), settings)
	require.NoError(t, err)
	assert.Equal(t, first, readFixture(t, filepath.Join(dir, "dist", "a.min.js")))
}

func TestSourceMapPath(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{name: "absent", opts: Options{}, want: ""},
		{name: "false", opts: Options{"sourceMap": false}, want: ""},
		{name: "true", opts: Options{"sourceMap": true}, want: "dist/app.js.map"},
		{name: "path", opts: Options{"sourceMap": "maps/app.map"}, want: "maps/app.map"},
		{name: "filename", opts: Options{"sourceMap": map[string]any{"filename": "app.map"}}, want: "app.map"},
		{name: "url", opts: Options{"sourceMap": map[string]any{"url": "app.js.map"}}, want: filepath.Join("dist", "app.js.map")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SourceMapPath(tt.opts, "dist/app.js"))
		})
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.NoError(t, EnsureDir(""))
	assert.NoError(t, EnsureDir("."))
}
