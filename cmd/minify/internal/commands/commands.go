package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/wolfeidau/gominify/internal/compressor"
	"github.com/wolfeidau/gominify/internal/logger"
	"github.com/wolfeidau/gominify/internal/minify"
	"github.com/wolfeidau/gominify/internal/telemetry"
)

type Globals struct {
	Debug   bool
	Version string
}

// ToolsFlags locates the Java tools used by the gcc and yui compressors.
type ToolsFlags struct {
	Java   string `help:"Java binary used by the gcc and yui compressors" env:"MINIFY_JAVA" default:"java"`
	GCCJar string `name:"gcc-jar" help:"Path to the Closure Compiler jar" env:"MINIFY_GCC_JAR"`
	YUIJar string `name:"yui-jar" help:"Path to the YUI Compressor jar" env:"MINIFY_YUI_JAR"`
}

func (t ToolsFlags) config() compressor.Config {
	return compressor.Config{Java: t.Java, GCCJar: t.GCCJar, YUIJar: t.YUIJar}
}

// LoadEnv loads KEY=value pairs from the given files into the environment,
// skipping files which do not exist. Variables already set are kept.
func LoadEnv(paths ...string) error {
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load env file %s: %w", path, err)
		}
	}
	return nil
}

// parseOptions decodes a JSON object given on the command line.
func parseOptions(raw string) (minify.Options, error) {
	if raw == "" {
		return nil, nil
	}
	var opts minify.Options
	if err := json.Unmarshal([]byte(raw), &opts); err != nil {
		return nil, fmt.Errorf("options must be a JSON object: %w", err)
	}
	return opts, nil
}

// pathsValue keeps a single path as a string so that it concatenates and
// templates like a scalar, and passes several paths as a list.
func pathsValue(paths []string) any {
	switch len(paths) {
	case 0:
		return nil
	case 1:
		return paths[0]
	default:
		return paths
	}
}

func stdout(w io.Writer) io.Writer {
	if w == nil {
		return os.Stdout
	}
	return w
}

// timings records how long each output took to compress.
type timings struct {
	mu        sync.Mutex
	durations map[string]time.Duration
}

func newTimings() *timings {
	return &timings{durations: make(map[string]time.Duration)}
}

func (t *timings) middleware(_ string, next minify.Compressor) minify.Compressor {
	return func(ctx context.Context, in minify.Input) (*minify.Result, error) {
		started := time.Now()
		res, err := next(ctx, in)

		t.mu.Lock()
		t.durations[in.Output] = time.Since(started)
		t.mu.Unlock()

		return res, err
	}
}

func (t *timings) get(output string) time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.durations[output]
}

// engine is a minifier with every compressor registered and the logging,
// timing and optional telemetry middleware installed.
type engine struct {
	minifier *minify.Minifier
	registry *minify.Registry
	timings  *timings
}

func newEngine(log zerolog.Logger, tools ToolsFlags, instrument bool) *engine {
	r := compressor.NewRegistry(tools.config())
	t := newTimings()

	r.Use(t.middleware, logger.Compressions(log))
	if instrument {
		r.Use(telemetry.Instrument(telemetry.GetMetrics()))
	}

	return &engine{
		minifier: minify.New(minify.WithRegistry(r)),
		registry: r,
		timings:  t,
	}
}
