package compressor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/wolfeidau/gominify/internal/minify"
)

const defaultJPEGQuality = 80

// Image re-encodes PNG, JPEG and GIF images. The smaller of the original and
// the re-encoded image is kept.
//
// Options:
//   - quality: JPEG quality, 1 to 100 (default 80)
//   - formats: extra formats to produce, any of png, jpeg or gif. Each one is
//     returned in Result.Outputs and, for file requests, written next to the
//     output with the format as extension.
func Image(ctx context.Context, in minify.Input) (*minify.Result, error) {
	img, format, err := image.Decode(bytes.NewReader(in.Content))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedImage, err)
	}

	quality := in.Settings.Options.Int("quality", defaultJPEGQuality)

	encoded, err := encodeImage(img, format, quality)
	if err != nil {
		return nil, err
	}
	if len(encoded) >= len(in.Content) {
		encoded = in.Content
	}

	res := &minify.Result{Code: string(encoded), Buffer: encoded}

	for _, f := range imageFormats(in.Settings.Options) {
		data, err := encodeImage(img, f, quality)
		if err != nil {
			return nil, err
		}
		res.Outputs = append(res.Outputs, minify.Output{Format: f, Content: data})

		if in.Output != "" {
			path := strings.TrimSuffix(in.Output, filepath.Ext(in.Output)) + "." + f
			if err := minify.WriteFile(path, data); err != nil {
				return nil, err
			}
		}
	}

	return res, nil
}

func encodeImage(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer

	var err error
	switch format {
	case "png":
		err = (&png.Encoder{CompressionLevel: png.BestCompression}).Encode(&buf, img)
	case "jpeg", "jpg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: min(max(quality, 1), 100)})
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedImage, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", format, err)
	}

	return buf.Bytes(), nil
}

// imageFormats reads the formats option, given either as a list or as a
// comma separated string.
func imageFormats(opts minify.Options) []string {
	var raw []string
	switch v := opts["formats"].(type) {
	case string:
		raw = strings.Split(v, ",")
	case []string:
		raw = v
	case []any:
		for _, item := range v {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	}

	formats := make([]string, 0, len(raw))
	for _, f := range raw {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}
