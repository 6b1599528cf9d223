package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Search    SearchConfig    `mapstructure:"search"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Content   ContentConfig   `mapstructure:"content"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	CORS      CORSConfig      `mapstructure:"cors"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // debug, release
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig contains database configuration
type DatabaseConfig struct {
	Path         string `mapstructure:"path"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
}

// AuthConfig contains authentication configuration
type AuthConfig struct {
	JWTSecret  string        `mapstructure:"jwt_secret"`
	JWTExpiry  time.Duration `mapstructure:"jwt_expiry"`
	BcryptCost int           `mapstructure:"bcrypt_cost"`
}

// SearchConfig contains search index configuration
type SearchConfig struct {
	IndexPath string `mapstructure:"index_path"`
}

// CacheConfig contains the rendered-content cache configuration
type CacheConfig struct {
	Path string        `mapstructure:"path"`
	TTL  time.Duration `mapstructure:"ttl"`
}

// ContentConfig contains content pipeline defaults
type ContentConfig struct {
	ExcerptLength      int `mapstructure:"excerpt_length"`
	ArticlePageSize    int `mapstructure:"article_page_size"`
	ProductPageSize    int `mapstructure:"product_page_size"`
	MaxPageSize        int `mapstructure:"max_page_size"`
	SlugRetryLimit     int `mapstructure:"slug_retry_limit"`
	SearchResultsLimit int `mapstructure:"search_results_limit"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	RequestsPerMinute int `mapstructure:"requests_per_minute"`
	Burst             int `mapstructure:"burst"`
}

// CORSConfig contains CORS configuration
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load loads configuration from file and environment variables
// Priority: ENV vars > config.yaml > defaults
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	setDefaults()

	viper.SetEnvPrefix("MECH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Config file is optional; defaults plus env are enough to boot.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.shutdown_timeout", "10s")

	viper.SetDefault("database.path", "./data/mechsite.db")
	viper.SetDefault("database.max_open_conns", 10)
	viper.SetDefault("database.max_idle_conns", 5)

	viper.SetDefault("auth.jwt_expiry", "24h")
	viper.SetDefault("auth.bcrypt_cost", 12)

	viper.SetDefault("search.index_path", "./data/search.bleve")

	viper.SetDefault("cache.path", "./data/render-cache")
	viper.SetDefault("cache.ttl", "24h")

	viper.SetDefault("content.excerpt_length", 200)
	viper.SetDefault("content.article_page_size", 10)
	viper.SetDefault("content.product_page_size", 12)
	viper.SetDefault("content.max_page_size", 100)
	viper.SetDefault("content.slug_retry_limit", 50)
	viper.SetDefault("content.search_results_limit", 20)

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")

	viper.SetDefault("rate_limit.requests_per_minute", 1000)
	viper.SetDefault("rate_limit.burst", 100)

	viper.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
}

func validate(cfg *Config) error {
	if cfg.Server.Mode != "debug" && cfg.Server.Mode != "release" {
		return fmt.Errorf("server.mode must be 'debug' or 'release', got: %s", cfg.Server.Mode)
	}
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got: %d", cfg.Server.Port)
	}

	if cfg.Auth.JWTSecret == "" {
		return fmt.Errorf("auth.jwt_secret is required")
	}
	if len(cfg.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters long")
	}
	if cfg.Auth.BcryptCost < 10 || cfg.Auth.BcryptCost > 31 {
		return fmt.Errorf("auth.bcrypt_cost must be between 10 and 31, got: %d", cfg.Auth.BcryptCost)
	}

	if cfg.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if cfg.Search.IndexPath == "" {
		return fmt.Errorf("search.index_path is required")
	}
	if cfg.Cache.Path == "" {
		return fmt.Errorf("cache.path is required")
	}

	if cfg.Content.ExcerptLength < 1 {
		return fmt.Errorf("content.excerpt_length must be positive, got: %d", cfg.Content.ExcerptLength)
	}
	if cfg.Content.ArticlePageSize < 1 || cfg.Content.ProductPageSize < 1 {
		return fmt.Errorf("content page sizes must be positive")
	}
	if cfg.Content.MaxPageSize < cfg.Content.ArticlePageSize || cfg.Content.MaxPageSize < cfg.Content.ProductPageSize {
		return fmt.Errorf("content.max_page_size must be at least the default page sizes")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error, got: %s", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" && cfg.Logging.Format != "text" {
		return fmt.Errorf("logging.format must be 'json' or 'text', got: %s", cfg.Logging.Format)
	}

	return nil
}
