// Package config holds the settings of the iconview command, read from an
// optional TOML file and overridden by ICONVIEW_* environment variables.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/esimov/iconview"
	"github.com/pelletier/go-toml/v2"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "ICONVIEW_"

// Config is the command configuration. Colours and modes are kept as text
// and parsed by RenderParams.
type Config struct {
	Root        string `toml:"root" env:"ROOT"`
	Size        int    `toml:"size" env:"SIZE"`
	Primary     string `toml:"primary" env:"PRIMARY"`
	Tone        string `toml:"tone" env:"TONE"`
	Background  string `toml:"background" env:"BACKGROUND"`
	StrokeMode  string `toml:"stroke_mode" env:"STROKE_MODE"`
	StrokeLevel int    `toml:"stroke_level" env:"STROKE_LEVEL"`
	Grayscale   bool   `toml:"grayscale" env:"GRAYSCALE"`
	CacheSize   int    `toml:"cache_size" env:"CACHE_SIZE"`
	Workers     int    `toml:"workers" env:"WORKERS"`
	LogLevel    string `toml:"log_level" env:"LOG_LEVEL"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	p := iconview.DefaultRenderParams()
	return Config{
		Root:        ".",
		Size:        p.Size,
		Primary:     iconview.FormatColor(p.Primary),
		Tone:        iconview.FormatColor(p.Tone),
		Background:  iconview.FormatColor(p.Background),
		StrokeMode:  p.StrokeMode.String(),
		StrokeLevel: p.StrokeLevel,
		CacheSize:   iconview.DefaultCacheSize,
		LogLevel:    "warn",
	}
}

// Load reads the configuration. The file at path is optional; an empty path
// skips it. Environment variables take precedence over the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("unable to read the config file: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("malformed config file %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("invalid environment: %w", err)
	}
	return cfg, nil
}

// RenderParams parses the render related settings.
func (c Config) RenderParams() (iconview.RenderParams, error) {
	p := iconview.DefaultRenderParams()
	var err error

	if c.Size <= 0 {
		return p, fmt.Errorf("size must be positive, got %d", c.Size)
	}
	p.Size = c.Size
	if p.Primary, err = iconview.ParseColor(c.Primary); err != nil {
		return p, fmt.Errorf("primary colour: %w", err)
	}
	if p.Tone, err = iconview.ParseColor(c.Tone); err != nil {
		return p, fmt.Errorf("tone colour: %w", err)
	}
	if p.Background, err = iconview.ParseColor(c.Background); err != nil {
		return p, fmt.Errorf("background colour: %w", err)
	}
	if p.StrokeMode, err = iconview.ParseStrokeMode(c.StrokeMode); err != nil {
		return p, err
	}
	p.StrokeLevel = c.StrokeLevel
	p.Grayscale = c.Grayscale
	return p, nil
}
