package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/spf13/viper"

	"simple-crud-api/internal/domain/identity"
	"simple-crud-api/pkg/i18n"
	"simple-crud-api/pkg/redis"
)

// Store drivers
const (
	DriverMemory = "memory"
	DriverSQLite = "sqlite"
)

// Config holds all configuration for the application
type Config struct {
	App       AppConfig
	Store     StoreConfig
	Logger    LoggerConfig
	Redis     redis.Config
	RateLimit RateLimitConfig
	Metrics   MetricsConfig
}

// AppConfig holds configuration for the application server
type AppConfig struct {
	Host                   string `mapstructure:"APP_HOST"`
	HTTPPort               string `mapstructure:"HTTP_PORT"`
	Debug                  bool   `mapstructure:"APP_DEBUG"`
	Env                    string `mapstructure:"APP_ENV"`
	Locale                 string `mapstructure:"APP_LOCALE"`
	ShutdownTimeoutSeconds int    `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS"`
	ServerHeader           string `mapstructure:"SERVER_HEADER"`
	PoweredBy              string `mapstructure:"POWERED_BY_HEADER"`
	SwaggerEnabled         bool   `mapstructure:"SWAGGER_ENABLED"`
}

// StoreConfig selects the repository driver and id strategy
type StoreConfig struct {
	Driver     string `mapstructure:"STORE_DRIVER"`
	IDStrategy string `mapstructure:"STORE_ID_STRATEGY"`
	SQLiteDSN  string `mapstructure:"SQLITE_DSN"`
}

// LoggerConfig holds configuration for the logger
type LoggerConfig struct {
	Level            string  `mapstructure:"LOG_LEVEL"`
	Format           string  `mapstructure:"LOG_FORMAT"`
	OutputPath       string  `mapstructure:"LOG_OUTPUT_PATH"`
	SlowQuerySeconds float64 `mapstructure:"LOG_SLOW_QUERY_SECONDS"`
	EnableSampling   bool    `mapstructure:"LOG_ENABLE_SAMPLING"`
	ServiceName      string  `mapstructure:"SERVICE_NAME"`
	ServiceVersion   string  `mapstructure:"SERVICE_VERSION"`
}

// RateLimitConfig holds configuration for the redis rate limiter
type RateLimitConfig struct {
	Enabled bool `mapstructure:"RATE_LIMIT_ENABLED"`
	RPS     int  `mapstructure:"RATE_LIMIT_RPS"`
	Burst   int  `mapstructure:"RATE_LIMIT_BURST"`
}

// MetricsConfig holds configuration for the prometheus endpoint
type MetricsConfig struct {
	Enabled   bool   `mapstructure:"METRICS_ENABLED"`
	Path      string `mapstructure:"METRICS_PATH"`
	Namespace string `mapstructure:"METRICS_NAMESPACE"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	// Set defaults first
	setDefaults(v)

	v.AddConfigPath(path)
	v.SetConfigName("app") // Look for app.env
	v.SetConfigType("env")

	v.AutomaticEnv() // Read from environment variables

	// Try to read config file
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is okay if we have env vars
	}

	var config Config

	config.App.Host = v.GetString("APP_HOST")
	config.App.HTTPPort = v.GetString("HTTP_PORT")
	config.App.Debug = v.GetBool("APP_DEBUG")
	config.App.Env = v.GetString("APP_ENV")
	config.App.Locale = v.GetString("APP_LOCALE")
	config.App.ShutdownTimeoutSeconds = v.GetInt("SHUTDOWN_TIMEOUT_SECONDS")
	config.App.ServerHeader = v.GetString("SERVER_HEADER")
	config.App.PoweredBy = v.GetString("POWERED_BY_HEADER")
	config.App.SwaggerEnabled = v.GetBool("SWAGGER_ENABLED")

	config.Store.Driver = v.GetString("STORE_DRIVER")
	config.Store.IDStrategy = v.GetString("STORE_ID_STRATEGY")
	config.Store.SQLiteDSN = v.GetString("SQLITE_DSN")

	config.Logger.Level = v.GetString("LOG_LEVEL")
	config.Logger.Format = v.GetString("LOG_FORMAT")
	config.Logger.OutputPath = v.GetString("LOG_OUTPUT_PATH")
	config.Logger.SlowQuerySeconds = v.GetFloat64("LOG_SLOW_QUERY_SECONDS")
	config.Logger.EnableSampling = v.GetBool("LOG_ENABLE_SAMPLING")
	config.Logger.ServiceName = v.GetString("SERVICE_NAME")
	config.Logger.ServiceVersion = v.GetString("SERVICE_VERSION")

	config.Redis.Host = v.GetString("REDIS_HOST")
	config.Redis.Port = v.GetString("REDIS_PORT")
	config.Redis.Password = v.GetString("REDIS_PASSWORD")
	config.Redis.DB = v.GetInt("REDIS_DB")
	config.Redis.MaxRetries = v.GetInt("REDIS_MAX_RETRIES")
	config.Redis.PoolSize = v.GetInt("REDIS_POOL_SIZE")
	config.Redis.MinIdleConn = v.GetInt("REDIS_MIN_IDLE_CONNS")

	config.RateLimit.Enabled = v.GetBool("RATE_LIMIT_ENABLED")
	config.RateLimit.RPS = v.GetInt("RATE_LIMIT_RPS")
	config.RateLimit.Burst = v.GetInt("RATE_LIMIT_BURST")

	config.Metrics.Enabled = v.GetBool("METRICS_ENABLED")
	config.Metrics.Path = v.GetString("METRICS_PATH")
	config.Metrics.Namespace = v.GetString("METRICS_NAMESPACE")

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", "5000")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("APP_LOCALE", i18n.DefaultLocale)
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 10)
	v.SetDefault("SERVER_HEADER", "Simple Gin API")
	v.SetDefault("POWERED_BY_HEADER", "Gin")
	v.SetDefault("SWAGGER_ENABLED", true)

	v.SetDefault("STORE_DRIVER", DriverMemory)
	v.SetDefault("STORE_ID_STRATEGY", identity.StrategySequence)
	v.SetDefault("SQLITE_DSN", ":memory:")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_MAX_RETRIES", 3)
	v.SetDefault("REDIS_POOL_SIZE", 10)
	v.SetDefault("REDIS_MIN_IDLE_CONNS", 2)

	v.SetDefault("RATE_LIMIT_ENABLED", false)
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)

	v.SetDefault("METRICS_ENABLED", true)
	v.SetDefault("METRICS_PATH", "/metrics")
	v.SetDefault("METRICS_NAMESPACE", "simple_crud_api")

	// Logger defaults
	env := v.GetString("APP_ENV")
	if env == "production" {
		v.SetDefault("LOG_LEVEL", "info")
		v.SetDefault("LOG_FORMAT", "json")
		v.SetDefault("LOG_ENABLE_SAMPLING", true)
	} else {
		v.SetDefault("LOG_LEVEL", "debug")
		v.SetDefault("LOG_FORMAT", "console")
		v.SetDefault("LOG_ENABLE_SAMPLING", false)
	}
	v.SetDefault("LOG_OUTPUT_PATH", "stdout")
	v.SetDefault("LOG_SLOW_QUERY_SECONDS", 0.2)
	v.SetDefault("SERVICE_NAME", "simple-crud-api")
	v.SetDefault("SERVICE_VERSION", "1.0.0")
}

// Validate checks the values that would otherwise fail late at startup.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverMemory, DriverSQLite:
	default:
		return fmt.Errorf("unsupported store driver %q", c.Store.Driver)
	}

	switch c.Store.IDStrategy {
	case identity.StrategySequence, identity.StrategyUUID, identity.StrategyLegacy:
	default:
		return fmt.Errorf("unsupported id strategy %q", c.Store.IDStrategy)
	}

	if !i18n.Supported(c.App.Locale) {
		return fmt.Errorf("unsupported locale %q", c.App.Locale)
	}

	port, err := strconv.Atoi(c.App.HTTPPort)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid HTTP_PORT %q", c.App.HTTPPort)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return errors.New("rate limit rps and burst must be positive")
	}

	if c.Redis.PoolSize < 0 || c.Redis.MinIdleConn < 0 {
		return errors.New("redis pool size and min idle conns must not be negative")
	}

	return nil
}

// Addr returns the listen address of the HTTP server
func (c *AppConfig) Addr() string {
	return net.JoinHostPort(c.Host, c.HTTPPort)
}

// ShutdownTimeout returns the graceful shutdown timeout
func (c *AppConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
