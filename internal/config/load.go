package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. FLEXDASH_HTTP_ADDR.
const EnvPrefix = "FLEXDASH"

// Load reads configuration from path. An empty path looks for an optional
// flexdash.yaml in the working directory. Values from a .env file and the
// environment override the file.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	cfg := Default()

	v := viper.New()
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, err
		}
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("flexdash")
		v.AddConfigPath(".")
	}
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("tick_hz", cfg.TickHz)
	v.SetDefault("loop", cfg.Loop)
	v.SetDefault("schedule_path", cfg.SchedulePath)
	v.SetDefault("booking_url", cfg.BookingURL)
	v.SetDefault("http.addr", cfg.HTTP.Addr)
	v.SetDefault("http.allowed_origins", cfg.HTTP.AllowedOrigins)
	v.SetDefault("export.dir", cfg.Export.Dir)
	v.SetDefault("export.output", cfg.Export.Output)
	v.SetDefault("export.fps", cfg.Export.FPS)
	v.SetDefault("export.width", cfg.Export.Width)
	v.SetDefault("export.height", cfg.Export.Height)
	v.SetDefault("export.workers", cfg.Export.Workers)
	v.SetDefault("export.encode", cfg.Export.Encode)
	v.SetDefault("export.encoder", cfg.Export.Encoder)
	v.SetDefault("export.quality", cfg.Export.Quality)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
