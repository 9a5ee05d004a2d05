package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config is the service configuration. Every key can be set in the config
// file or through the upper-cased environment variable (port -> PORT).
type Config struct {
	Port              string        `mapstructure:"port"`
	LogLevel          string        `mapstructure:"log_level"`
	LogFormat         string        `mapstructure:"log_format"`
	RedisAddr         string        `mapstructure:"redis_addr"`
	CacheTTL          time.Duration `mapstructure:"cache_ttl"`
	HistoryDB         string        `mapstructure:"history_db"`
	TablesFile        string        `mapstructure:"tables_file"`
	TablesRegistryURL string        `mapstructure:"tables_registry_url"`
	RateLimit         int           `mapstructure:"rate_limit"`
	RateWindow        time.Duration `mapstructure:"rate_window"`
}

var defaults = map[string]any{
	"port":                "8080",
	"log_level":           "info",
	"log_format":          "json",
	"redis_addr":          "",
	"cache_ttl":           time.Hour,
	"history_db":          "",
	"tables_file":         "",
	"tables_registry_url": "",
	"rate_limit":          60,
	"rate_window":         time.Minute,
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file at path into v and decodes the result.
func Load(v *viper.Viper, path string) (Config, error) {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Port == "" {
		errs = append(errs, errors.New("port is required"))
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		errs = append(errs, fmt.Errorf("invalid log format: %s", c.LogFormat))
	}
	if c.RateLimit <= 0 {
		errs = append(errs, errors.New("rate_limit must be positive"))
	}
	if c.RateWindow <= 0 {
		errs = append(errs, errors.New("rate_window must be positive"))
	}
	if c.CacheTTL < 0 {
		errs = append(errs, errors.New("cache_ttl must not be negative"))
	}
	return errors.Join(errs...)
}

func parseLevel(level string) (zapcore.Level, error) {
	switch level {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("invalid log level: %s", level)
}

// NewLogger builds a JSON (production) or console (development) logger.
func NewLogger(level, format string) (*zap.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	var zc zap.Config
	switch format {
	case "json":
		zc = zap.NewProductionConfig()
	case "console":
		zc = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
