package config

import (
	"os"
	"strconv"
	"time"

	"goverdict/internal/errors"
	"goverdict/internal/viability"

	"github.com/go-playground/validator/v10"
)

// Config represents the complete application configuration
type Config struct {
	Database  DatabaseConfig
	Redis     RedisConfig
	Server    ServerConfig `validate:"required"`
	Batch     BatchConfig  `validate:"required"`
	Log       LogConfig
	Profiling ProfilingConfig
	// Engine is the threshold set verdicts are computed with
	Engine     viability.Config
	EngineFile string
}

// DatabaseConfig holds database connection settings. An empty URL runs the
// service without persistence.
type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int `validate:"gte=0"`
	MaxIdleConns    int `validate:"gte=0"`
	ConnMaxLifetime time.Duration
}

// RedisConfig holds verdict cache settings. An empty URL disables caching.
type RedisConfig struct {
	URL       string
	TTL       time.Duration `validate:"gte=0"`
	KeyPrefix string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port         string `validate:"required,numeric"`
	GinMode      string `validate:"oneof=debug release test"`
	ReadTimeout  time.Duration
	// WriteTimeout of zero leaves event streams open indefinitely
	WriteTimeout time.Duration
}

// BatchConfig bounds batch evaluation
type BatchConfig struct {
	Concurrency int `validate:"gte=1,lte=256"`
	MaxSize     int `validate:"gte=1"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level string `validate:"omitempty,oneof=ERROR WARN INFO DEBUG TRACE error warn info debug trace"`
}

// ProfilingConfig holds performance profiling settings
type ProfilingConfig struct {
	Port    string
	Enabled bool
}

var validate = validator.New()

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database:   loadDatabaseConfig(),
		Redis:      loadRedisConfig(),
		Server:     loadServerConfig(),
		Batch:      loadBatchConfig(),
		Log:        LogConfig{Level: getEnvOrDefault("LOG_LEVEL", "INFO")},
		Profiling:  loadProfilingConfig(),
		EngineFile: os.Getenv("VIABILITY_CONFIG_FILE"),
	}

	engine, err := LoadEngineConfig(config.EngineFile)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load engine thresholds")
	}
	config.Engine = engine

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDatabaseConfig() DatabaseConfig {
	return DatabaseConfig{
		URL:             os.Getenv("DATABASE_URL"),
		MaxOpenConns:    getEnvIntOrDefault("DB_MAX_OPEN_CONNS", 10),
		MaxIdleConns:    getEnvIntOrDefault("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvDurationOrDefault("DB_CONN_MAX_LIFETIME", 30*time.Minute),
	}
}

func loadRedisConfig() RedisConfig {
	return RedisConfig{
		URL:       os.Getenv("REDIS_URL"),
		TTL:       getEnvDurationOrDefault("VERDICT_CACHE_TTL", 24*time.Hour),
		KeyPrefix: getEnvOrDefault("VERDICT_CACHE_PREFIX", "goverdict:verdict:"),
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:         getEnvOrDefault("PORT", "8080"),
		GinMode:      getEnvOrDefault("GIN_MODE", "release"),
		ReadTimeout:  getEnvDurationOrDefault("HTTP_READ_TIMEOUT", 10*time.Second),
		WriteTimeout: getEnvDurationOrDefault("HTTP_WRITE_TIMEOUT", 0),
	}
}

func loadBatchConfig() BatchConfig {
	return BatchConfig{
		Concurrency: getEnvIntOrDefault("BATCH_CONCURRENCY", 8),
		MaxSize:     getEnvIntOrDefault("BATCH_MAX_SIZE", 500),
	}
}

func loadProfilingConfig() ProfilingConfig {
	return ProfilingConfig{
		Port:    getEnvOrDefault("PPROF_PORT", "6060"),
		Enabled: getEnvBoolOrDefault("PPROF_ENABLED", false),
	}
}

func validateConfig(config *Config) error {
	if err := validate.Struct(config); err != nil {
		return errors.WithCode(errors.CodeConfigInvalid, err)
	}
	if config.Profiling.Enabled && config.Profiling.Port == config.Server.Port {
		return errors.ConfigInvalid("PPROF_PORT must differ from PORT")
	}
	return config.Engine.Validate()
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
