// Package config loads the demo player settings.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidConfig is returned when a loaded configuration is unusable.
var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	TickHz       float64      `mapstructure:"tick_hz" yaml:"tick_hz"`
	Loop         bool         `mapstructure:"loop" yaml:"loop"`
	SchedulePath string       `mapstructure:"schedule_path" yaml:"schedule_path"` // File or directory; empty uses the built-in script
	BookingURL   string       `mapstructure:"booking_url" yaml:"booking_url"`
	HTTP         HTTPConfig   `mapstructure:"http" yaml:"http"`
	Export       ExportConfig `mapstructure:"export" yaml:"export"`
}

type HTTPConfig struct {
	Addr           string   `mapstructure:"addr" yaml:"addr"`
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
}

type ExportConfig struct {
	Dir     string `mapstructure:"dir" yaml:"dir"`
	Output  string `mapstructure:"output" yaml:"output"`
	FPS     int    `mapstructure:"fps" yaml:"fps"`
	Width   int    `mapstructure:"width" yaml:"width"`
	Height  int    `mapstructure:"height" yaml:"height"`
	Workers int    `mapstructure:"workers" yaml:"workers"` // 0 = one per CPU
	Encode  bool   `mapstructure:"encode" yaml:"encode"`
	Encoder string `mapstructure:"encoder" yaml:"encoder"` // Empty picks the best available H.264 encoder
	Quality int    `mapstructure:"quality" yaml:"quality"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		TickHz:     60,
		Loop:       true,
		BookingURL: "https://flexdash.io/book-demo",
		HTTP: HTTPConfig{
			Addr:           "127.0.0.1:8080",
			AllowedOrigins: []string{"*"},
		},
		Export: ExportConfig{
			Dir:     "storyboard",
			Output:  "flexdash-demo.mp4",
			FPS:     30,
			Width:   1280,
			Height:  720,
			Quality: 23,
		},
	}
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if c.TickHz <= 0 || c.TickHz > 1000 {
		errs = append(errs, fmt.Errorf("tick_hz must be in (0, 1000], got %v", c.TickHz))
	}
	if c.BookingURL != "" {
		u, err := url.Parse(c.BookingURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("booking_url must include scheme and host, got %q", c.BookingURL))
		}
	}
	if strings.TrimSpace(c.HTTP.Addr) == "" {
		errs = append(errs, fmt.Errorf("http.addr is required"))
	}
	if c.Export.FPS <= 0 || c.Export.FPS > 120 {
		errs = append(errs, fmt.Errorf("export.fps must be in (0, 120], got %d", c.Export.FPS))
	}
	if c.Export.Width <= 0 || c.Export.Height <= 0 || c.Export.Width%2 != 0 || c.Export.Height%2 != 0 {
		errs = append(errs, fmt.Errorf("export size must be positive and even, got %dx%d", c.Export.Width, c.Export.Height))
	}
	if c.Export.Workers < 0 {
		errs = append(errs, fmt.Errorf("export.workers must not be negative"))
	}
	if c.Export.Quality < 0 || c.Export.Quality > 51 {
		errs = append(errs, fmt.Errorf("export.quality must be in [0, 51], got %d", c.Export.Quality))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}
