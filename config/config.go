package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server      ServerConfig
	Sources     SourcesConfig
	Scrape      ScrapeConfig
	Aggregation AggregationConfig
	Cache       CacheConfig
	Log         LogConfig
	Warmer      WarmerConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// SourcesConfig holds the upstream product-source settings. API keys are
// optional: a source without its key skips itself instead of failing.
type SourcesConfig struct {
	RapidAPI  RapidAPIConfig  `mapstructure:"rapidapi"`
	SerpAPI   SerpAPIConfig   `mapstructure:"serpapi"`
	FakeStore FakeStoreConfig `mapstructure:"fakestore"`
}

// RapidAPIConfig holds the RapidAPI product-search settings.
type RapidAPIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Host    string `mapstructure:"host"`
}

// SerpAPIConfig holds the SerpAPI settings.
type SerpAPIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// FakeStoreConfig holds the FakeStore catalog settings.
type FakeStoreConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// ScrapeConfig holds the deal-page scraper settings.
type ScrapeConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	UserAgent string        `mapstructure:"user_agent"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

// AggregationConfig holds orchestrator tuning.
type AggregationConfig struct {
	MaxResults     int           `mapstructure:"max_results"`
	AdapterTimeout time.Duration `mapstructure:"adapter_timeout"`
}

// CacheConfig holds response-cache settings.
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// WarmerConfig holds the cache-warmer schedule and query list.
type WarmerConfig struct {
	Enabled  bool     `mapstructure:"enabled"`
	Schedule string   `mapstructure:"schedule"`
	Queries  []string `mapstructure:"queries"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/dealspot/")

	// Environment variable settings
	v.SetEnvPrefix("DEALSPOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "3001")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{
		"http://localhost:3000",
		"https://deal-spot.netlify.app",
		"https://dealspot-1.onrender.com",
	})

	// Source defaults; API keys are deliberately not defaulted
	v.SetDefault("sources.rapidapi.base_url", "https://real-time-product-search.p.rapidapi.com")
	v.SetDefault("sources.rapidapi.host", "real-time-product-search.p.rapidapi.com")
	v.SetDefault("sources.serpapi.base_url", "https://serpapi.com")
	v.SetDefault("sources.fakestore.base_url", "https://fakestoreapi.com")

	// Scraper defaults
	v.SetDefault("scrape.enabled", false)
	v.SetDefault("scrape.timeout", "30s")

	// Aggregation defaults
	v.SetDefault("aggregation.max_results", 20)
	v.SetDefault("aggregation.adapter_timeout", "10s")

	// Cache defaults
	v.SetDefault("cache.ttl", "5m")

	// Logging defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Warmer defaults
	v.SetDefault("warmer.enabled", false)
	v.SetDefault("warmer.schedule", "@every 30m")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Aggregation.MaxResults <= 0 {
		return fmt.Errorf("aggregation.max_results must be positive, got: %d", config.Aggregation.MaxResults)
	}

	if config.Aggregation.AdapterTimeout <= 0 {
		return fmt.Errorf("aggregation.adapter_timeout must be positive, got: %s", config.Aggregation.AdapterTimeout)
	}

	if config.Warmer.Enabled && config.Warmer.Schedule == "" {
		return fmt.Errorf("warmer.schedule is required when the warmer is enabled")
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("log.format must be 'text' or 'json', got: %s", config.Log.Format)
	}

	return nil
}
