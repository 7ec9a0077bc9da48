// Package report measures minification results: sizes before and after,
// transfer sizes under gzip, brotli and zstd, and a fingerprint of the
// minified output.
package report

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/minio/crc64nvme"
	"github.com/mr-tron/base58"
)

// Stats describes one minified file.
type Stats struct {
	Compressor   string        `json:"compressor"`
	File         string        `json:"file"`
	OriginalSize int64         `json:"original_size"`
	MinifiedSize int64         `json:"minified_size"`
	GzipSize     int64         `json:"gzip_size"`
	BrotliSize   int64         `json:"brotli_size"`
	ZstdSize     int64         `json:"zstd_size"`
	Reduction    float64       `json:"reduction_percent"`
	Duration     time.Duration `json:"duration"`
	Fingerprint  string        `json:"fingerprint"`
}

// Measure computes the stats of minified relative to original.
func Measure(compressor, file string, original, minified []byte, duration time.Duration) (*Stats, error) {
	gz, err := GzipSize(minified)
	if err != nil {
		return nil, err
	}
	br, err := BrotliSize(minified)
	if err != nil {
		return nil, err
	}
	zs, err := ZstdSize(minified)
	if err != nil {
		return nil, err
	}

	return &Stats{
		Compressor:   compressor,
		File:         file,
		OriginalSize: int64(len(original)),
		MinifiedSize: int64(len(minified)),
		GzipSize:     gz,
		BrotliSize:   br,
		ZstdSize:     zs,
		Reduction:    Reduction(int64(len(original)), int64(len(minified))),
		Duration:     duration,
		Fingerprint:  Fingerprint(minified),
	}, nil
}

// Reduction returns how much smaller minified is than original, in percent.
func Reduction(original, minified int64) float64 {
	if original <= 0 {
		return 0
	}
	return (1.0 - float64(minified)/float64(original)) * 100
}

// Fingerprint returns the base58 encoded CRC64-NVME checksum of data.
func Fingerprint(data []byte) string {
	h := crc64nvme.New()
	h.Write(data)

	var sum [8]byte
	binary.BigEndian.PutUint64(sum[:], h.Sum64())
	return base58.Encode(sum[:])
}

// GzipSize returns the size of data after gzip at best compression.
func GzipSize(data []byte) (int64, error) {
	var cw countWriter
	w, err := gzip.NewWriterLevel(&cw, gzip.BestCompression)
	if err != nil {
		return 0, fmt.Errorf("failed to create gzip writer: %w", err)
	}
	return compressedSize(&cw, w, data, "gzip")
}

// BrotliSize returns the size of data after brotli at best compression.
func BrotliSize(data []byte) (int64, error) {
	var cw countWriter
	w := brotli.NewWriterLevel(&cw, brotli.BestCompression)
	return compressedSize(&cw, w, data, "brotli")
}

// ZstdSize returns the size of data after zstd at best compression.
func ZstdSize(data []byte) (int64, error) {
	var cw countWriter
	w, err := zstd.NewWriter(&cw, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return 0, fmt.Errorf("failed to create encoder: %w", err)
	}
	return compressedSize(&cw, w, data, "zstd")
}

func compressedSize(cw *countWriter, w io.WriteCloser, data []byte, name string) (int64, error) {
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return 0, fmt.Errorf("failed to compress with %s: %w", name, err)
	}
	// Close to flush
	if err := w.Close(); err != nil {
		return 0, fmt.Errorf("failed to close %s writer: %w", name, err)
	}
	return cw.n, nil
}

type countWriter struct {
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	c.n += int64(len(p))
	return len(p), nil
}
