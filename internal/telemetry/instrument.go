package telemetry

import (
	"context"
	"time"

	"github.com/wolfeidau/gominify/internal/logger"
	"github.com/wolfeidau/gominify/internal/minify"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/wolfeidau/gominify"

// Instrument returns registry middleware which records a span and the
// compression metrics for every compressor call.
func Instrument(m *Metrics) minify.Middleware {
	return instrument(m, otel.Tracer(tracerName))
}

func instrument(m *Metrics, tracer trace.Tracer) minify.Middleware {
	return func(name string, next minify.Compressor) minify.Compressor {
		return func(ctx context.Context, in minify.Input) (*minify.Result, error) {
			attrs := metric.WithAttributes(attribute.String("compressor", name))

			ctx, span := tracer.Start(ctx, "compress "+name, trace.WithAttributes(
				attribute.String("compressor", name),
				attribute.Int("index", in.Index),
				attribute.String("output", in.Output),
				attribute.Int("bytes_in", len(in.Content)),
			))
			defer span.End()

			m.CompressionsInFlight.Add(ctx, 1, attrs)
			defer m.CompressionsInFlight.Add(ctx, -1, attrs)

			started := time.Now()
			res, err := next(ctx, in)

			m.CompressionsTotal.Add(ctx, 1, attrs)
			m.CompressionDuration.Record(ctx, float64(time.Since(started).Milliseconds()), attrs)
			m.CompressionBytesIn.Add(ctx, int64(len(in.Content)), attrs)

			if err != nil {
				m.CompressionErrorsTotal.Add(ctx, 1, attrs)
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				return res, err
			}

			out := logger.OutputSize(res)
			m.CompressionBytesOut.Add(ctx, int64(out), attrs)
			span.SetAttributes(attribute.Int("bytes_out", out))

			return res, nil
		}
	}
}
