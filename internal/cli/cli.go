// Package cli runs one watermarking session: it collects the settings from
// the console, composites the watermark and writes the output file, and turns
// the outcome into a process exit code.
package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/ironsheep/image-watermark/internal/config"
	"github.com/ironsheep/image-watermark/internal/imaging"
	"github.com/ironsheep/image-watermark/internal/prompt"
	"go.uber.org/zap"
)

// Exit codes not tied to a prompt. Codes 1-7 come from prompt.Error.
const (
	ExitOK       = 0
	ExitInternal = 8
)

// Run reads answers from in, writes prompts and results to out, and returns
// the exit code. The output file is written only after every answer is valid.
func Run(in io.Reader, out io.Writer, cfg *config.Config, log *zap.Logger) int {
	if log == nil {
		log = zap.NewNop()
	}

	settings, err := prompt.NewSession(in, out, log).Collect()
	if err != nil {
		return fail(out, log, err)
	}

	result, err := imaging.Composite(
		settings.Base.Image,
		settings.Watermark.Image,
		settings.Placement(),
		settings.BlendOptions(),
	)
	if err != nil {
		log.Error("compositing failed", zap.Error(err))
		fmt.Fprintln(out, "Unexpected error while adding the watermark.")
		return ExitInternal
	}

	log.Debug("watermark composited",
		zap.Stringer("method", settings.Method),
		zap.Int("weight", settings.Weight),
		zap.Bool("alpha", settings.UseAlpha),
		zap.Int("x", settings.Position.X),
		zap.Int("y", settings.Position.Y))

	if err := imaging.Save(settings.Output, result, encodeOptions(cfg)); err != nil {
		log.Error("writing output failed", zap.String("path", settings.Output), zap.Error(err))
		fmt.Fprintf(out, "The watermarked image %s couldn't be written.\n", settings.Output)
		return ExitInternal
	}

	fmt.Fprintf(out, "The watermarked image %s has been created.\n", settings.Output)
	return ExitOK
}

// fail reports a validation failure and returns its exit code.
func fail(out io.Writer, log *zap.Logger, err error) int {
	var perr *prompt.Error
	if !errors.As(err, &perr) {
		log.Error("unexpected failure", zap.Error(err))
		fmt.Fprintln(out, "Unexpected error while reading the input.")
		return ExitInternal
	}

	log.Debug("input rejected",
		zap.Stringer("stage", perr.Stage),
		zap.Stringer("kind", perr.Kind),
		zap.Error(perr))
	fmt.Fprintln(out, perr.Message)
	return perr.ExitCode()
}

func encodeOptions(cfg *config.Config) imaging.EncodeOptions {
	opts := imaging.DefaultEncodeOptions()
	if cfg == nil {
		return opts
	}
	opts.JPEGQuality = cfg.Output.JPEGQuality
	opts.PNGCompression = cfg.Output.PNGCompression
	return opts
}
