package main

import (
	"fmt"
	"os"

	"github.com/ironsheep/image-watermark/internal/cli"
	"github.com/ironsheep/image-watermark/internal/config"
	"github.com/ironsheep/image-watermark/internal/logging"
	"go.uber.org/zap"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("watermark %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("watermark - blend a watermark image onto a base image")
			fmt.Println()
			fmt.Println("Usage: watermark [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables (also read from ./.env):")
			fmt.Println("  WATERMARK_LOG_LEVEL=debug          Log level on stderr (default warn)")
			fmt.Println("  WATERMARK_JPEG_QUALITY=75          JPEG output quality, 1-100")
			fmt.Println("  WATERMARK_PNG_COMPRESSION=default  PNG compression: none, speed, default, best")
			fmt.Println()
			fmt.Println("The program asks for the base image, the watermark and the blending")
			fmt.Println("options one line at a time on stdin, then writes a JPEG or PNG file.")
			fmt.Println()
			fmt.Println("Exit codes:")
			fmt.Println("  0 success             4 invalid weight")
			fmt.Println("  1 invalid base image  5 invalid method")
			fmt.Println("  2 invalid watermark   6 invalid output filename")
			fmt.Println("  3 invalid color       7 invalid position")
			fmt.Println("  8 internal error")
			return
		}
	}

	cfg, foundEnv := config.Load()

	logger, err := logging.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging disabled: %v\n", err)
		logger = zap.NewNop()
	}

	logger.Debug("starting",
		zap.String("version", Version),
		zap.String("commit", GitCommit),
		zap.Bool("dotenv", foundEnv))

	code := cli.Run(os.Stdin, os.Stdout, cfg, logger)
	_ = logger.Sync()
	os.Exit(code)
}
