// Package config loads simulator configuration from file, environment,
// and defaults, in that order of increasing precedence for the
// environment and decreasing for defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the simulator's process configuration.
type Config struct {
	// TickDelayMs is the wall-clock delay between scheduler ticks.
	TickDelayMs int `mapstructure:"tick_delay_ms"`
	// TimeRateSeconds is the game time advanced per tick, in seconds.
	TimeRateSeconds float64 `mapstructure:"time_rate_seconds"`
	// ScaleFactor maps plane coordinates to geographic degrees.
	ScaleFactor float64 `mapstructure:"scale_factor"`
	// ScenarioPath points at the JSON battle setup to load. Empty starts
	// an empty game.
	ScenarioPath string `mapstructure:"scenario_path"`
	// MetricsAddr is the listen address for the Prometheus /metrics
	// endpoint. Empty disables the endpoint.
	MetricsAddr string `mapstructure:"metrics_addr"`
	// RandomSeed seeds the detection draws. Zero seeds from the clock.
	RandomSeed int64 `mapstructure:"random_seed"`

	Log LogConfig `mapstructure:"log"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from the given file path (optional), the SIM_*
// environment, and built-in defaults. A missing file is fine; a malformed
// one is an error.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("tick_delay_ms", 1000)
	v.SetDefault("time_rate_seconds", 60)
	v.SetDefault("scale_factor", 1.0)
	v.SetDefault("scenario_path", "")
	v.SetDefault("metrics_addr", ":9100")
	v.SetDefault("random_seed", 0)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetEnvPrefix("SIM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("simulator")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/naval-simulator")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	if cfg.TickDelayMs <= 0 {
		return nil, fmt.Errorf("config: tick_delay_ms must be positive, got %d", cfg.TickDelayMs)
	}
	if cfg.ScaleFactor <= 0 {
		return nil, fmt.Errorf("config: scale_factor must be positive, got %g", cfg.ScaleFactor)
	}

	return &cfg, nil
}
