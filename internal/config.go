package internal

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

const (
	EnvPrefix      = "IMAGE_EFFECTS_"
	EnvLogLevel    = EnvPrefix + "LOG_LEVEL"
	EnvJPEGQuality = EnvPrefix + "JPEG_QUALITY"

	DefaultLogLevel    = zerolog.InfoLevel
	DefaultJPEGQuality = 95
)

type Config struct {
	LogLevel    zerolog.Level
	JPEGQuality int
}

func LoadConfig() (*Config, error) {
	return ConfigFromEnv(os.LookupEnv)
}

// ConfigFromEnv builds a Config from lookup, using defaults for unset or empty variables.
func ConfigFromEnv(lookup func(string) (string, bool)) (*Config, error) {
	cfg := &Config{
		LogLevel:    DefaultLogLevel,
		JPEGQuality: DefaultJPEGQuality,
	}

	if value, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(value) != "" {
		level, err := ParseLogLevel(value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvLogLevel, err)
		}
		cfg.LogLevel = level
	}

	if value, ok := lookup(EnvJPEGQuality); ok && strings.TrimSpace(value) != "" {
		quality, err := ParseJPEGQuality(value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvJPEGQuality, err)
		}
		cfg.JPEGQuality = quality
	}

	return cfg, nil
}

func ParseLogLevel(value string) (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(value)))
	if err != nil {
		return zerolog.NoLevel, err
	}
	if level == zerolog.NoLevel {
		return zerolog.NoLevel, fmt.Errorf("unknown level %q", value)
	}
	return level, nil
}

func ParseJPEGQuality(value string) (int, error) {
	quality, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("failed to convert %s to integer: %w", value, err)
	}
	if quality < 1 || quality > 100 {
		return 0, fmt.Errorf("quality %d out of range 1-100", quality)
	}
	return quality, nil
}
