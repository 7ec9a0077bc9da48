package minify

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinify_InMemory(t *testing.T) {
	tests := []struct {
		name    string
		content any
		want    string
	}{
		{name: "string", content: "var a = 1;", want: "var a = 1;"},
		{name: "bytes", content: []byte{0x89, 'P', 'N', 'G'}, want: "\x89PNG"},
		{name: "empty bytes", content: []byte{}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := Minify(t.Context(), Settings{Compressor: identity, Content: tt.content})
			require.NoError(t, err)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestMinify_InMemoryWritesNothing(t *testing.T) {
	dir := t.TempDir()
	var got Input
	compressor := func(_ context.Context, in Input) (*Result, error) {
		got = in
		return &Result{Code: "ok"}, nil
	}

	code, err := Minify(t.Context(), Settings{
		Compressor: compressor,
		Content:    "x",
		Output:     filepath.Join(dir, "never", "out.js"),
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", code)
	assert.Equal(t, NoIndex, got.Index)
	assert.Empty(t, got.Output)
	assert.NoDirExists(t, filepath.Join(dir, "never"))
}

func TestMinify_CompressorNotAFunction(t *testing.T) {
	m := New(WithRegistry(NewRegistry()))

	for _, s := range []Settings{
		{CompressorName: "not-a-function", Content: "x"},
		{CompressorName: "not-a-function", Input: "a.js", Output: "b.js"},
	} {
		_, err := m.Minify(t.Context(), s)
		require.Error(t, err)
		assert.Equal(t, "compressor should be a function, maybe you forgot to install the compressor", err.Error())
	}
}

func TestMinify_ByName(t *testing.T) {
	r := NewRegistry()
	r.Register("identity", identity)

	code, err := New(WithRegistry(r)).Minify(t.Context(), Settings{CompressorName: "identity", Content: "abc"})
	require.NoError(t, err)
	assert.Equal(t, "abc", code)
}

func TestMinify_Callback(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var gotErr error
		var gotResult string
		code, err := Minify(t.Context(), Settings{
			Compressor: identity,
			Content:    "abc",
			Callback: func(err error, result string) {
				gotErr, gotResult = err, result
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "abc", code)
		assert.NoError(t, gotErr)
		assert.Equal(t, "abc", gotResult)
	})

	t.Run("failure", func(t *testing.T) {
		boom := errors.New("boom")
		var gotErr error
		_, err := Minify(t.Context(), Settings{
			Compressor: func(context.Context, Input) (*Result, error) { return nil, boom },
			Content:    "abc",
			Callback: func(err error, _ string) {
				gotErr = err
			},
		})
		require.ErrorIs(t, err, boom)
		assert.Equal(t, "boom", err.Error())

		var compErr *CompressionError
		require.ErrorAs(t, gotErr, &compErr)
		assert.Equal(t, "Compression failed: boom", gotErr.Error())
		assert.ErrorIs(t, gotErr, boom)
	})

	t.Run("validation failure", func(t *testing.T) {
		var gotErr error
		_, err := Minify(t.Context(), Settings{Content: "abc", Callback: func(err error, _ string) { gotErr = err }})
		require.ErrorIs(t, err, ErrCompressorMandatory)
		assert.ErrorIs(t, gotErr, ErrCompressorMandatory)
	})
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register("b", identity)
	r.Register("a", identity)

	var calls []string
	r.Use(
		func(name string, next Compressor) Compressor {
			return func(ctx context.Context, in Input) (*Result, error) {
				calls = append(calls, "outer:"+name)
				return next(ctx, in)
			}
		},
		func(name string, next Compressor) Compressor {
			return func(ctx context.Context, in Input) (*Result, error) {
				calls = append(calls, "inner:"+name)
				return next(ctx, in)
			}
		},
	)

	assert.Equal(t, []string{"a", "b"}, r.Names())

	c, ok := r.Lookup("a")
	require.True(t, ok)
	_, err := c(t.Context(), Input{Content: []byte("x")})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer:a", "inner:a"}, calls)

	_, ok = r.Lookup("missing")
	assert.False(t, ok)

	var nilRegistry *Registry
	_, ok = nilRegistry.Lookup("a")
	assert.False(t, ok)
}

func TestOptions(t *testing.T) {
	opts := Options{"mangle": true, "level": 2.0, "name": "x", "nested": map[string]any{"keep": true}}

	assert.True(t, opts.Bool("mangle", false))
	assert.True(t, opts.Bool("missing", true))
	assert.Equal(t, 2, opts.Int("level", 0))
	assert.Equal(t, "x", opts.String("name", ""))
	assert.Equal(t, "fallback", opts.String("missing", "fallback"))

	var dst struct {
		Mangle bool `json:"mangle"`
		Nested struct {
			Keep bool `json:"keep"`
		} `json:"nested"`
	}
	require.NoError(t, opts.Decode(&dst))
	assert.True(t, dst.Mangle)
	assert.True(t, dst.Nested.Keep)
}
