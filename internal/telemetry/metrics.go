package telemetry

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const (
	meterName = "github.com/wolfeidau/gominify"
)

// Metrics holds all the OpenTelemetry metric instruments
type Metrics struct {
	CompressionsTotal      metric.Int64Counter
	CompressionErrorsTotal metric.Int64Counter
	CompressionDuration    metric.Float64Histogram
	CompressionBytesIn     metric.Int64Counter
	CompressionBytesOut    metric.Int64Counter
	CompressionsInFlight   metric.Int64UpDownCounter
}

var (
	once    sync.Once
	metrics *Metrics
)

// GetMetrics returns the singleton Metrics instance, initializing it if necessary
func GetMetrics() *Metrics {
	once.Do(func() {
		metrics = initMetrics()
	})
	return metrics
}

// initMetrics creates and registers all metric instruments
func initMetrics() *Metrics {
	return newMetrics(otel.GetMeterProvider().Meter(meterName))
}

func newMetrics(meter metric.Meter) *Metrics {
	m := &Metrics{}

	m.CompressionsTotal, _ = meter.Int64Counter(
		"gominify.compressions.total",
		metric.WithDescription("Total number of compressor invocations"),
		metric.WithUnit("{compression}"),
	)

	m.CompressionErrorsTotal, _ = meter.Int64Counter(
		"gominify.compressions.errors.total",
		metric.WithDescription("Total number of failed compressor invocations"),
		metric.WithUnit("{error}"),
	)

	m.CompressionDuration, _ = meter.Float64Histogram(
		"gominify.compressions.duration",
		metric.WithDescription("Duration of compressor invocations"),
		metric.WithUnit("ms"),
	)

	m.CompressionBytesIn, _ = meter.Int64Counter(
		"gominify.compressions.bytes.in",
		metric.WithDescription("Total number of bytes handed to compressors"),
		metric.WithUnit("By"),
	)

	m.CompressionBytesOut, _ = meter.Int64Counter(
		"gominify.compressions.bytes.out",
		metric.WithDescription("Total number of bytes produced by compressors"),
		metric.WithUnit("By"),
	)

	m.CompressionsInFlight, _ = meter.Int64UpDownCounter(
		"gominify.compressions.active",
		metric.WithDescription("Number of compressor invocations in progress"),
		metric.WithUnit("{compression}"),
	)

	return m
}
