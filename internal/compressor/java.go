package compressor

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/wolfeidau/gominify/internal/minify"
	"github.com/wolfeidau/gominify/internal/runner"
)

// options consumed by the Java compressors themselves and never forwarded
// as command line flags
var javaReserved = map[string]bool{
	"java":      true,
	"jar":       true,
	"timeout":   true,
	"sourceMap": true,
}

// GCC runs the Closure Compiler jar. Remaining options are passed as
// --key=value flags, e.g. compilation_level or language_out.
func GCC(cfg Config) minify.Compressor {
	return func(ctx context.Context, in minify.Input) (*minify.Result, error) {
		flags, err := javaFlags(in.Settings.Options, func(k, v string) []string {
			return []string{"--" + k + "=" + v}
		})
		if err != nil {
			return nil, err
		}
		return runJava(ctx, cfg.Java, cfg.GCCJar, flags, in)
	}
}

// YUI runs the YUI Compressor jar. The type setting (js or css) is required.
// Remaining options are passed as --key value flags, e.g. line-break, or as
// bare --key flags when true, e.g. nomunge.
func YUI(cfg Config) minify.Compressor {
	return func(ctx context.Context, in minify.Input) (*minify.Result, error) {
		switch in.Settings.Type {
		case "js", "css":
		case "":
			return nil, fmt.Errorf("%w: yui needs js or css", ErrTypeRequired)
		default:
			return nil, fmt.Errorf("%w: yui cannot handle %q", minify.ErrUnsupportedType, in.Settings.Type)
		}

		flags, err := javaFlags(in.Settings.Options, func(k, v string) []string {
			return []string{"--" + k, v}
		})
		if err != nil {
			return nil, err
		}
		flags = append([]string{"--type", in.Settings.Type}, flags...)

		return runJava(ctx, cfg.Java, cfg.YUIJar, flags, in)
	}
}

func runJava(ctx context.Context, java, jar string, flags []string, in minify.Input) (*minify.Result, error) {
	opts := in.Settings.Options

	java = opts.String("java", java)
	if java == "" {
		java = "java"
	}
	jar = opts.String("jar", jar)
	if jar == "" {
		return nil, ErrJarNotConfigured
	}

	args := append([]string{"-jar", jar}, flags...)

	runOpts := []runner.Option{runner.WithMaxBuffer(in.Settings.Buffer)}
	if ms := opts.Int("timeout", 0); ms > 0 {
		runOpts = append(runOpts, runner.WithTimeout(time.Duration(ms)*time.Millisecond))
	}

	out, err := runner.Run(ctx, java, args, in.Content, runOpts...)
	if err != nil {
		return nil, err
	}
	return &minify.Result{Code: out}, nil
}

// javaFlags turns options into command line flags in key order. A true bool
// becomes a bare flag, false is dropped, anything else is formatted by value.
func javaFlags(opts minify.Options, value func(k, v string) []string) ([]string, error) {
	keys := make([]string, 0, len(opts))
	for k := range opts {
		if !javaReserved[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var flags []string
	for _, k := range keys {
		if err := runner.ValidateValue("option name", k); err != nil {
			return nil, err
		}

		var v string
		switch val := opts[k].(type) {
		case bool:
			if val {
				flags = append(flags, "--"+k)
			}
			continue
		case string:
			v = val
		case float64:
			v = strconv.FormatFloat(val, 'f', -1, 64)
		case int:
			v = strconv.Itoa(val)
		default:
			v = fmt.Sprint(val)
		}

		if err := runner.ValidateValue(k, v); err != nil {
			return nil, err
		}
		flags = append(flags, value(k, v)...)
	}

	return flags, nil
}
