// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configPath = pflag.String("config", ".", "Directory containing config.toml")

	validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}
	validDrivers   = []string{"sqlite", "postgres", "mysql"}
	validDBLevels  = []string{"silent", "error", "warn", "info"}
)

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that. A missing config.toml is not an error, the environment and
// defaults are used instead.
func Setup() error {
	if !pflag.Parsed() {
		pflag.Parse()
	}
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(*configPath)

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.cors_origins", "host_cors_origins")

	v.BindEnv("db.driver", "db_driver")
	v.BindEnv("db.dsn", "db_dsn")
	v.BindEnv("db.log_level", "db_log_level")

	v.BindEnv("lookup.base_url", "lookup_base_url")
	v.BindEnv("lookup.timeout", "lookup_timeout")
	v.BindEnv("lookup.cache_ttl", "lookup_cache_ttl")

	v.BindEnv("images.enabled", "images_enabled")
	v.BindEnv("images.base_url", "images_base_url")
	v.BindEnv("images.timeout", "images_timeout")

	v.BindEnv("redis.addr", "redis_addr")
	v.BindEnv("redis.password", "redis_password")
	v.BindEnv("redis.db", "redis_db")

	v.BindEnv("import.workers", "import_workers")

	v.BindEnv("upload.max_size", "upload_max_size")

	v.BindEnv("security.rate_limit", "security_rate_limit")

	v.BindEnv("reminders.sweep_interval", "reminders_sweep_interval")

	SetDefaults()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}

		zap.L().Info("No config.toml found, using environment and defaults")
	}

	return Validate()
}

// SetDefaults registers the default value of every key
func SetDefaults() {
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.cors_origins", []string{"http://localhost:5173"})

	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "database.db")
	v.SetDefault("db.log_level", "warn")

	v.SetDefault("lookup.base_url", "https://api.dictionaryapi.dev/api/v2")
	v.SetDefault("lookup.timeout", 5*time.Second)
	v.SetDefault("lookup.cache_ttl", 24*time.Hour)

	v.SetDefault("images.enabled", true)
	v.SetDefault("images.base_url", "https://commons.wikimedia.org/w/api.php")
	v.SetDefault("images.timeout", 5*time.Second)

	v.SetDefault("redis.db", 0)

	v.SetDefault("import.workers", 1)

	// Megabytes
	v.SetDefault("upload.max_size", 5)

	v.SetDefault("security.rate_limit", 20)

	v.SetDefault("reminders.sweep_interval", time.Minute)
}

// Validate checks the loaded values. upload.max_size is converted to bytes
// once it passes.
func Validate() error {
	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if !slices.Contains(validDrivers, v.GetString("db.driver")) {
		return errors.New("invalid database driver provided")
	}

	if v.GetString("db.dsn") == "" {
		return errors.New("db.dsn can't be empty")
	}

	if !slices.Contains(validDBLevels, v.GetString("db.log_level")) {
		return errors.New("invalid database log level provided")
	}

	if v.GetString("lookup.base_url") == "" {
		return errors.New("lookup.base_url can't be empty")
	}

	if v.GetDuration("lookup.timeout") <= 0 {
		return errors.New("lookup.timeout must be bigger than 0")
	}

	if v.GetDuration("lookup.cache_ttl") <= 0 {
		return errors.New("lookup.cache_ttl must be bigger than 0")
	}

	if v.GetBool("images.enabled") && v.GetDuration("images.timeout") <= 0 {
		return errors.New("images.timeout must be bigger than 0")
	}

	if v.GetInt("import.workers") <= 0 {
		return errors.New("import.workers must be bigger than 0")
	}

	if v.GetInt64("upload.max_size") <= 0 {
		return errors.New("upload.max_size must be bigger than 0")
	}

	if v.GetInt("security.rate_limit") < 0 {
		return errors.New("security.rate_limit can't be negative")
	}

	if v.GetDuration("reminders.sweep_interval") < 0 {
		return errors.New("reminders.sweep_interval can't be negative")
	}

	if v.GetString("redis.addr") == "" {
		zap.L().Warn("No redis.addr specified, definition lookups will be cached in memory")
	}

	v.Set("upload.max_size", v.GetInt64("upload.max_size")<<20)
	return nil
}
