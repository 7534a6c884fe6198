package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
)

// Format is an output image format, named by its file extension.
type Format string

const (
	FormatJPEG Format = "jpg"
	FormatPNG  Format = "png"
)

// FormatFromFilename returns the output format for name, which must end in
// ".jpg" or ".png". The match is case-sensitive.
func FormatFromFilename(name string) (Format, error) {
	switch {
	case strings.HasSuffix(name, ".jpg"):
		return FormatJPEG, nil
	case strings.HasSuffix(name, ".png"):
		return FormatPNG, nil
	default:
		return "", fmt.Errorf("unsupported output extension in %q", name)
	}
}

// EncodeOptions tunes the output encoders.
type EncodeOptions struct {
	// JPEGQuality is the JPEG quality from 1 to 100.
	JPEGQuality int

	// PNGCompression is the zlib compression level for PNG output.
	PNGCompression png.CompressionLevel
}

// DefaultEncodeOptions returns the options used when none are configured.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{JPEGQuality: 75, PNGCompression: png.DefaultCompression}
}

// EncoderFor returns the encoder writing images in format f.
func EncoderFor(f Format, opts EncodeOptions) (imgio.Encoder, error) {
	switch f {
	case FormatJPEG:
		return imgio.JPEGEncoder(opts.JPEGQuality), nil
	case FormatPNG:
		if opts.PNGCompression == png.DefaultCompression {
			return imgio.PNGEncoder(), nil
		}
		enc := &png.Encoder{CompressionLevel: opts.PNGCompression}
		return func(w io.Writer, img image.Image) error {
			return enc.Encode(w, img)
		}, nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", f)
	}
}

// Save encodes img in the format implied by path and writes it there.
//
// The image is encoded in memory first, so a failed encode never leaves a
// partial file behind.
func Save(path string, img image.Image, opts EncodeOptions) error {
	format, err := FormatFromFilename(path)
	if err != nil {
		return err
	}

	encode, err := EncoderFor(format, opts)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := encode(&buf, img); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}

	return nil
}
