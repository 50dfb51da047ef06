//go:build !js

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const maxConfigSize = 1024 * 1024

// Config is read from a yaml file. Every key is optional.
type Config struct {
	Width    int      `yaml:"width"`
	Height   int      `yaml:"height"`
	Title    string   `yaml:"title"`
	Textures []string `yaml:"textures"`
	LogLevel string   `yaml:"log_level"`
	Profile  bool     `yaml:"profile"`
}

func DefaultConfig() Config {
	return Config{
		Width:    800,
		Height:   600,
		Title:    "Quad",
		LogLevel: "info",
	}
}

// LoadConfig reads the config at path on top of the defaults.
// A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		slog.Debug("No config file found", slog.String("path", path))
		return config, nil

	case err != nil:
		return config, fmt.Errorf("stat config: %w", err)
	}

	if info.Size() > maxConfigSize {
		return config, fmt.Errorf("config %q too large: %d bytes", path, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parse config %q: %w", path, err)
	}

	if config.Width <= 0 || config.Height <= 0 {
		return config, fmt.Errorf("invalid window size %dx%d", config.Width, config.Height)
	}

	return config, nil
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level

	err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel)))
	if err != nil {
		return slog.LevelInfo, fmt.Errorf("parse log level: %w", err)
	}

	return level, nil
}
