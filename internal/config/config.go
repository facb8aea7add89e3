// Package config loads service configuration from file and environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	Server  Server  `mapstructure:"server"`
	Backend Backend `mapstructure:"backend"`
	Redis   Redis   `mapstructure:"redis"`
	Log     Log     `mapstructure:"log"`
	Sentry  Sentry  `mapstructure:"sentry"`
	Tracing Tracing `mapstructure:"tracing"`
}

type Server struct {
	Addr          string        `mapstructure:"addr" validate:"required"`
	Mode          string        `mapstructure:"mode" validate:"oneof=debug release test"`
	ToggleRate    float64       `mapstructure:"toggle_rate" validate:"gt=0"`
	ToggleBurst   int           `mapstructure:"toggle_burst" validate:"gt=0"`
	ShutdownGrace time.Duration `mapstructure:"shutdown_grace"`
}

type Backend struct {
	BaseURL string        `mapstructure:"base_url" validate:"required,url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type Redis struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CountTTL time.Duration `mapstructure:"count_ttl"`
}

type Log struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

type Sentry struct {
	DSN         string `mapstructure:"dsn"`
	Environment string `mapstructure:"environment"`
}

type Tracing struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
}

// Every key gets a default so AutomaticEnv can resolve it; viper only
// maps env vars for keys it already knows about.
func defaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.toggle_rate", 5.0)
	v.SetDefault("server.toggle_burst", 10)
	v.SetDefault("server.shutdown_grace", 10*time.Second)
	v.SetDefault("backend.base_url", "")
	v.SetDefault("backend.timeout", 15*time.Second)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.count_ttl", 30*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "development")
	v.SetDefault("tracing.otlp_endpoint", "")
}

// Load reads the config file at path (optional when env vars cover the
// required keys; env prefix BIBO, dots become underscores).
func Load(path string) (*Config, error) {
	v := viper.New()
	defaults(v)

	v.SetEnvPrefix("BIBO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}
