// Package config loads runtime settings for the watermark tool from the
// environment, optionally seeded from a .env file in the working directory.
package config

import (
	"image/png"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvLogLevel       = "WATERMARK_LOG_LEVEL"
	EnvJPEGQuality    = "WATERMARK_JPEG_QUALITY"
	EnvPNGCompression = "WATERMARK_PNG_COMPRESSION"
)

// Config holds the runtime settings of the watermark tool.
type Config struct {
	// Log configures diagnostics on stderr.
	Log LogConfig

	// Output configures the encoders used for the watermarked image.
	Output OutputConfig
}

// LogConfig configures the diagnostic logger.
type LogConfig struct {
	// Level is the minimum zap level name ("debug", "info", "warn", "error").
	Level string
}

// OutputConfig configures the output encoders.
type OutputConfig struct {
	// JPEGQuality is the JPEG quality from 1 to 100.
	JPEGQuality int

	// PNGCompression is the zlib compression level for PNG output.
	PNGCompression png.CompressionLevel
}

// Load reads the configuration. A missing .env file is not an error; the
// returned bool reports whether one was found.
func Load() (*Config, bool) {
	found := godotenv.Load() == nil

	cfg := &Config{
		Log: LogConfig{
			Level: strings.ToLower(getEnv(EnvLogLevel, "warn")),
		},
		Output: OutputConfig{
			JPEGQuality:    clamp(getEnvAsInt(EnvJPEGQuality, 75), 1, 100),
			PNGCompression: getCompression(EnvPNGCompression, png.DefaultCompression),
		},
	}

	return cfg, found
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getCompression(key string, defaultVal png.CompressionLevel) png.CompressionLevel {
	switch strings.ToLower(os.Getenv(key)) {
	case "none":
		return png.NoCompression
	case "speed":
		return png.BestSpeed
	case "best":
		return png.BestCompression
	case "default":
		return png.DefaultCompression
	}
	return defaultVal
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
