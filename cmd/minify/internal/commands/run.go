package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/wolfeidau/gominify/internal/minify"
	"github.com/wolfeidau/gominify/internal/report"
)

// ErrNoCompressor indicates no compressor was given on the command line or in the config file
var ErrNoCompressor = errors.New("at least one compressor is required")

// runAll minifies settings once per compressor and measures the files each
// run wrote. A failing compressor does not stop the others; all failures are
// returned joined.
func (e *engine) runAll(ctx context.Context, names []string, settings minify.Settings) ([]*report.Stats, error) {
	if len(names) == 0 {
		return nil, ErrNoCompressor
	}

	var (
		stats []*report.Stats
		errs  []error
	)

	for _, name := range names {
		s := settings
		s.CompressorName = name

		runStats, err := e.run(ctx, s)
		if err != nil {
			zerolog.Ctx(ctx).Error().Err(err).Str("compressor", name).Msg("Compressor failed")
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		stats = append(stats, runStats...)
	}

	return stats, errors.Join(errs...)
}

// run resolves the settings once and measures the files of that resolution,
// so outputs written next to globbed inputs are not mistaken for inputs.
func (e *engine) run(ctx context.Context, s minify.Settings) ([]*report.Stats, error) {
	req, err := e.minifier.Setup(s)
	if err != nil {
		return nil, err
	}

	startTime := time.Now()

	switch r := req.(type) {
	case *minify.FileRequest:
		if _, err := minify.Compress(ctx, r); err != nil {
			return nil, err
		}
		zerolog.Ctx(ctx).Debug().
			Str("compressor", s.CompressorName).
			Strs("outputs", r.Output.Files).
			Dur("duration", time.Since(startTime)).
			Msg("Compressor finished")
		return e.measure(s.CompressorName, r)
	case *minify.InMemoryRequest:
		code, err := minify.CompressInMemory(ctx, r)
		if err != nil {
			return nil, err
		}
		st, err := report.Measure(s.CompressorName, "-", r.Content, []byte(code), time.Since(startTime))
		if err != nil {
			return nil, err
		}
		return []*report.Stats{st}, nil
	default:
		return nil, fmt.Errorf("unknown request type %T", req)
	}
}

// measure pairs every output with the input it was produced from.
func (e *engine) measure(name string, req *minify.FileRequest) ([]*report.Stats, error) {
	var stats []*report.Stats

	add := func(output string, inputs ...string) error {
		original, err := minify.ReadFiles(inputs...)
		if err != nil {
			return err
		}
		minified, err := os.ReadFile(output)
		if err != nil {
			return fmt.Errorf("failed to read output %s: %w", output, err)
		}
		s, err := report.Measure(name, output, original, minified, e.timings.get(output))
		if err != nil {
			return err
		}
		stats = append(stats, s)
		return nil
	}

	if !req.Output.List {
		if len(req.Output.Files) == 0 {
			return nil, nil
		}
		if err := add(req.Output.Files[0], req.Input.Files...); err != nil {
			return nil, err
		}
		return stats, nil
	}

	for i, output := range req.Output.Files {
		if err := add(output, req.Input.Files[i]); err != nil {
			return nil, err
		}
	}
	return stats, nil
}
