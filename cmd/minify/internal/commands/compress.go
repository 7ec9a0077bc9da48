package commands

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/wolfeidau/gominify/internal/config"
	"github.com/wolfeidau/gominify/internal/logger"
	"github.com/wolfeidau/gominify/internal/minify"
	"github.com/wolfeidau/gominify/internal/report"
	"github.com/wolfeidau/gominify/internal/telemetry"
)

// CompressCmd minifies files with one or more compressors and prints a size
// report for every output.
type CompressCmd struct {
	Compressor     []string `short:"c" help:"Compressor to use, comma separated to run several in turn (see list)"`
	Input          []string `short:"i" help:"Input file or wildcard pattern, repeatable"`
	Output         []string `short:"o" help:"Output file, repeatable; $1 is replaced by the input name"`
	Type           string   `short:"t" help:"Content type for compressors handling several languages (js, css)"`
	Option         string   `help:"Compressor options as a JSON object"`
	PublicFolder   string   `help:"Folder prepended to relative input paths"`
	ReplaceInPlace bool     `help:"Write $1 outputs next to their inputs" default:"false"`
	Sync           bool     `help:"Compress input/output pairs one after the other" default:"false"`
	Buffer         int      `help:"Maximum output size in bytes for external tools" default:"0"`
	Config         string   `help:"Path to a YAML or JSON settings file"`
	Silence        bool     `short:"s" help:"Do not print the report" default:"false"`
	Otel           bool     `help:"Export metrics and traces over OTLP" default:"false" env:"MINIFY_OTEL"`

	Tools ToolsFlags `embed:""`

	Stdout io.Writer `kong:"-"`
}

func (c *CompressCmd) Run(ctx context.Context, globals *Globals) error {
	log := logger.Setup(globals.Debug).With().Str("run_id", uuid.NewString()).Logger()
	ctx = log.WithContext(ctx)

	if c.Otel {
		log.Info().Msg("Telemetry is enabled")
		shutdown, err := telemetry.InitTelemetry(ctx, telemetry.Config{ServiceName: "gominify", Version: globals.Version})
		if err != nil {
			log.Warn().Err(err).Msg("Failed to initialize telemetry, continuing without metrics")
			shutdown = func(ctx context.Context) error { return nil }
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("Failed to shutdown telemetry")
			}
		}()
	}

	names, settings, err := c.settings()
	if err != nil {
		return err
	}

	e := newEngine(log, c.Tools, c.Otel)
	stats, runErr := e.runAll(ctx, names, settings)

	if !c.Silence && len(stats) > 0 {
		if err := report.WriteTable(stdout(c.Stdout), stats); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}

	return runErr
}

// settings merges the config file, when given, with the flags. Flags win.
func (c *CompressCmd) settings() ([]string, minify.Settings, error) {
	var (
		names    []string
		settings minify.Settings
	)

	if c.Config != "" {
		f, err := config.Load(c.Config)
		if err != nil {
			return nil, minify.Settings{}, fmt.Errorf("failed to load config file: %w", err)
		}
		if names, err = f.Compressors(); err != nil {
			return nil, minify.Settings{}, err
		}
		settings = f.Settings()
	}

	opts, err := parseOptions(c.Option)
	if err != nil {
		return nil, minify.Settings{}, err
	}

	flagNames := lo.Compact(lo.Map(c.Compressor, func(name string, _ int) string {
		return strings.TrimSpace(name)
	}))
	if len(flagNames) > 0 {
		names = flagNames
	}
	if len(c.Input) > 0 {
		settings.Input = pathsValue(c.Input)
	}
	if len(c.Output) > 0 {
		settings.Output = pathsValue(c.Output)
	}
	if c.Type != "" {
		settings.Type = c.Type
	}
	if c.PublicFolder != "" {
		settings.PublicFolder = c.PublicFolder
	}
	if c.ReplaceInPlace {
		settings.ReplaceInPlace = true
	}
	if c.Sync {
		settings.Sync = true
	}
	if c.Buffer > 0 {
		settings.Buffer = c.Buffer
	}
	if len(opts) > 0 {
		settings.Options = lo.Assign(settings.Options, opts)
	}

	return lo.Uniq(names), settings, nil
}
