// Package config loads minification settings from YAML or JSON files.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/wolfeidau/gominify/internal/minify"
	"gopkg.in/yaml.v3"
)

// ErrInvalidCompressor indicates the compressor field is neither a name nor a list of names
var ErrInvalidCompressor = errors.New("compressor must be a name or a list of names")

// File is the on-disk form of a run. Input and output keep their shape, so a
// single path and a list of paths behave as they do in minify.Settings.
type File struct {
	Compressor     any            `yaml:"compressor" json:"compressor"`
	Input          any            `yaml:"input" json:"input"`
	Output         any            `yaml:"output" json:"output"`
	Type           string         `yaml:"type" json:"type"`
	PublicFolder   string         `yaml:"publicFolder" json:"publicFolder"`
	ReplaceInPlace bool           `yaml:"replaceInPlace" json:"replaceInPlace"`
	Sync           bool           `yaml:"sync" json:"sync"`
	Buffer         int            `yaml:"buffer" json:"buffer"`
	Options        map[string]any `yaml:"options" json:"options"`
}

// Load reads path as JSON when it has a .json extension and as YAML otherwise.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var f File

	// Determine file format by extension
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse JSON config: %w", err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}

	return &f, nil
}

// Compressors returns the compressor names, accepting a single name, a comma
// separated list or a list of names.
func (f *File) Compressors() ([]string, error) {
	var raw []string
	switch v := f.Compressor.(type) {
	case nil:
		return nil, nil
	case string:
		raw = strings.Split(v, ",")
	case []any:
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: element %d is not a string", ErrInvalidCompressor, i)
			}
			raw = append(raw, s)
		}
	default:
		return nil, ErrInvalidCompressor
	}

	names := make([]string, 0, len(raw))
	for _, name := range raw {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// Settings converts the file into settings for one run. The compressor is
// left for the caller to set.
func (f *File) Settings() minify.Settings {
	return minify.Settings{
		Input:          f.Input,
		Output:         f.Output,
		Type:           f.Type,
		PublicFolder:   f.PublicFolder,
		ReplaceInPlace: f.ReplaceInPlace,
		Sync:           f.Sync,
		Buffer:         f.Buffer,
		Options:        minify.Options(f.Options),
	}
}
