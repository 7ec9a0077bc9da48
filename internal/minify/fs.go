package minify

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates dir and its parents when absent. A failing stat counts
// as absent.
func EnsureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// ReadFiles returns the content of every path joined by a newline.
func ReadFiles(paths ...string) ([]byte, error) {
	parts := make([][]byte, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read input %s: %w", path, err)
		}
		parts = append(parts, data)
	}
	return bytes.Join(parts, []byte("\n")), nil
}

// WriteFile writes data to path, creating the parent directory first.
func WriteFile(path string, data []byte) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output %s: %w", path, err)
	}
	return nil
}

// SourceMapPath returns where a source map for output belongs, or "" when the
// options do not ask for one. sourceMap may be true, a path, or an object with
// a filename (used as is) or a url (relative to the output directory).
func SourceMapPath(opts Options, output string) string {
	switch v := opts["sourceMap"].(type) {
	case bool:
		if v {
			return output + ".map"
		}
	case string:
		return v
	case map[string]any:
		if filename, ok := v["filename"].(string); ok && filename != "" {
			return filename
		}
		if url, ok := v["url"].(string); ok && url != "" {
			return filepath.Join(filepath.Dir(output), url)
		}
	}
	return ""
}
