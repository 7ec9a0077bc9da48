package minify

import (
	"encoding/json"
	"fmt"
	"maps"
)

// Options is the passthrough configuration bag forwarded to a compressor.
type Options map[string]any

// Clone returns a shallow copy, never nil.
func (o Options) Clone() Options {
	out := make(Options, len(o))
	maps.Copy(out, o)
	return out
}

// Bool returns the boolean at key, or def when absent or not a bool.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key].(bool); ok {
		return v
	}
	return def
}

// String returns the string at key, or def when absent or not a string.
func (o Options) String(key, def string) string {
	if v, ok := o[key].(string); ok && v != "" {
		return v
	}
	return def
}

// Int returns the number at key, or def. JSON and YAML numbers are both accepted.
func (o Options) Int(key string, def int) int {
	switch v := o[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return def
}

// Decode copies the options into dst by way of their JSON representation.
func (o Options) Decode(dst any) error {
	if len(o) == 0 {
		return nil
	}
	data, err := json.Marshal(o)
	if err != nil {
		return fmt.Errorf("failed to encode options: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode options: %w", err)
	}
	return nil
}
