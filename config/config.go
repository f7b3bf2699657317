// Package config aggregates the tunables of every glyphnav component and
// reads and writes them as TOML.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"github.com/phuslu/log"

	"github.com/tsawler/glyphnav/figures"
	"github.com/tsawler/glyphnav/find"
	"github.com/tsawler/glyphnav/reader"
	"github.com/tsawler/glyphnav/render"
	"github.com/tsawler/glyphnav/toc"
)

// ErrInvalid is returned by Validate for out-of-range settings
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete configuration
type Config struct {
	Logging LoggingConfig  `toml:"logging"`
	Reader  reader.Config  `toml:"reader"`
	Find    find.Config    `toml:"find"`
	Figures figures.Config `toml:"figures"`
	TOC     toc.Config     `toml:"toc"`
	Render  render.Config  `toml:"render"`
}

// LoggingConfig controls diagnostic output
type LoggingConfig struct {
	Level string `toml:"level" validate:"loglevel"` // "trace", "debug", "info", "warn", "error" (default: "warn")
	JSON  bool   `toml:"json"`                      // JSON lines instead of console text
}

// Default returns the default configuration of every component
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "warn"},
		Reader:  reader.DefaultConfig(),
		Find:    find.DefaultConfig(),
		Figures: figures.DefaultConfig(),
		TOC:     toc.DefaultConfig(),
		Render:  render.DefaultConfig(),
	}
}

// Load reads configuration files over the defaults. Later files override
// earlier ones; empty paths are skipped.
func Load(paths ...string) (*Config, error) {
	cfg := Default()
	for i, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Write encodes the configuration as TOML
func (c *Config) Write(w io.Writer) error {
	enc := toml.NewEncoder(w)
	enc.SetIndentTables(true)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// Validate range-checks the settings against the validate tags of every
// component configuration
func (c *Config) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("loglevel", validLogLevel); err != nil {
		return fmt.Errorf("failed to register log level validation: %w", err)
	}

	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return nil
}

// validLogLevel accepts the phuslu/log level names in any case
func validLogLevel(fl validator.FieldLevel) bool {
	switch strings.ToLower(fl.Field().String()) {
	case "", "trace", "debug", "info", "warn", "error", "fatal":
		return true
	}
	return false
}

// Logger builds the diagnostic logger. Output goes to w, typically
// os.Stderr.
func (c *Config) Logger(w io.Writer) *log.Logger {
	level := log.WarnLevel
	if c.Logging.Level != "" {
		level = log.ParseLevel(strings.ToLower(c.Logging.Level))
	}

	logger := &log.Logger{
		Level:      level,
		TimeFormat: "15:04:05",
	}
	if c.Logging.JSON {
		logger.Writer = &log.IOWriter{Writer: w}
	} else {
		logger.Writer = &log.ConsoleWriter{Writer: w}
	}
	return logger
}
