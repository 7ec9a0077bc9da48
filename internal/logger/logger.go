package logger

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/wolfeidau/gominify/internal/minify"
)

func Setup(dev bool) zerolog.Logger {
	var logger zerolog.Logger
	level := zerolog.InfoLevel
	if dev {
		level = zerolog.DebugLevel
	}

	logger = zerolog.New(os.Stderr).Level(level).With().Timestamp().Caller().Logger()

	if dev {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, FormatTimestamp: func(i any) string {
			return time.Now().Format(time.RFC3339)
		}}).Level(level).With().Stack().Logger()
	}

	return logger
}

// Compressions returns registry middleware which logs every compressor call
// and makes a logger carrying the compressor name available to it through
// zerolog.Ctx.
func Compressions(logger zerolog.Logger) minify.Middleware {
	return func(name string, next minify.Compressor) minify.Compressor {
		return func(ctx context.Context, in minify.Input) (*minify.Result, error) {
			started := time.Now()

			lc := logger.With().Str("compressor", name)
			if in.Index != minify.NoIndex {
				lc = lc.Int("index", in.Index)
			}
			if in.Output != "" {
				lc = lc.Str("output", in.Output)
			}
			ctx = lc.Logger().WithContext(ctx)

			res, err := next(ctx, in)
			if err != nil {
				zerolog.Ctx(ctx).Error().
					Err(err).
					Int("bytes_in", len(in.Content)).
					Dur("duration", time.Since(started)).
					Msg("compression failed")

				return res, err
			}

			zerolog.Ctx(ctx).Debug().
				Int("bytes_in", len(in.Content)).
				Int("bytes_out", OutputSize(res)).
				Dur("duration", time.Since(started)).
				Msg("compression finished")

			return res, nil
		}
	}
}

// OutputSize returns the number of bytes a result will write.
func OutputSize(res *minify.Result) int {
	if res == nil {
		return 0
	}
	if res.Buffer != nil {
		return len(res.Buffer)
	}
	return len(res.Code)
}
