package minify

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Setup validates settings and resolves them into a FileRequest or an
// InMemoryRequest. The caller's settings are never modified.
func (m *Minifier) Setup(s Settings) (Request, error) {
	if s.Compressor == nil && s.CompressorName == "" {
		return nil, ErrCompressorMandatory
	}

	plan := Plan{
		Compressor:     s.Compressor,
		CompressorName: s.CompressorName,
		Type:           s.Type,
		Options:        s.Options.Clone(),
		PublicFolder:   s.PublicFolder,
		ReplaceInPlace: s.ReplaceInPlace,
		Sync:           s.Sync,
		Buffer:         s.Buffer,
	}
	if plan.Buffer <= 0 {
		plan.Buffer = DefaultBuffer
	}
	// An unknown name leaves the compressor nil; dispatch reports it.
	if plan.Compressor == nil {
		plan.Compressor, _ = m.registry.Lookup(s.CompressorName)
	}

	if hasContent(s.Content) {
		content, err := contentBytes(s.Content)
		if err != nil {
			return nil, err
		}
		return &InMemoryRequest{Plan: plan, Content: content}, nil
	}

	if missing(s.Input) {
		return nil, ErrInputMandatory
	}
	if missing(s.Output) {
		return nil, ErrOutputMandatory
	}

	input, err := toPaths("input", s.Input)
	if err != nil {
		return nil, err
	}
	output, err := toPaths("output", s.Output)
	if err != nil {
		return nil, err
	}

	patterns := input.Files
	input, err = expandWildcards(input, s.PublicFolder)
	if err != nil {
		return nil, err
	}
	if len(input.Files) == 0 && lo.SomeBy(patterns, hasWildcard) {
		return nil, fmt.Errorf("%w: %s", ErrNoInputFiles, strings.Join(patterns, ", "))
	}
	output = templateOutput(input, output, s.PublicFolder, s.ReplaceInPlace)
	input = applyPublicFolder(input, s.PublicFolder)

	return &FileRequest{Plan: plan, Input: input, Output: output}, nil
}

// hasContent reports whether settings select in-memory mode. An empty string
// counts as no content so that file settings still apply.
func hasContent(v any) bool {
	if s, ok := v.(string); ok {
		return s != ""
	}
	return v != nil
}

func contentBytes(v any) ([]byte, error) {
	switch c := v.(type) {
	case string:
		return []byte(c), nil
	case []byte:
		if c == nil {
			return nil, ErrContentMandatory
		}
		return c, nil
	default:
		return nil, fmt.Errorf("%w, got %s", ErrInvalidContent, typeName(v))
	}
}

func missing(v any) bool {
	switch p := v.(type) {
	case nil:
		return true
	case string:
		return p == ""
	case []string:
		return p == nil
	case []any:
		return p == nil
	}
	return false
}

func toPaths(field string, v any) (Paths, error) {
	switch p := v.(type) {
	case string:
		return Single(p), nil
	case []string:
		for i, item := range p {
			if item == "" {
				return Paths{}, &InvalidPathError{Field: field, Index: i, Got: typeName(item)}
			}
		}
		return List(append([]string(nil), p...)...), nil
	case []any:
		files := make([]string, 0, len(p))
		for i, item := range p {
			s, ok := item.(string)
			if !ok || s == "" {
				return Paths{}, &InvalidPathError{Field: field, Index: i, Got: typeName(item)}
			}
			files = append(files, s)
		}
		return List(files...), nil
	default:
		return Paths{}, fmt.Errorf("%s %w, got %s", field, ErrInvalidPaths, typeName(v))
	}
}

// typeName describes a loosely typed settings value for error messages.
func typeName(v any) string {
	switch t := v.(type) {
	case nil:
		return "undefined"
	case string:
		if t == "" {
			return "empty string"
		}
		return "string"
	case bool:
		return "boolean"
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return "number"
	case []any, []string:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
