package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig
	AI      AIConfig
	Cache   CacheConfig
	Scoring ScoringConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AIConfig holds AI enrichment gateway configuration. The gateway is
// optional: with Enabled false (or no API key) every analysis uses the
// deterministic heuristics.
type AIConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	APIKey            string        `mapstructure:"api_key"`
	Model             string        `mapstructure:"model"`
	BaseURL           string        `mapstructure:"base_url"`
	Timeout           time.Duration `mapstructure:"timeout"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
}

// CacheConfig holds result cache configuration.
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// ScoringConfig holds the tunable weighting tables. The defaults mirror the
// observed product behavior; each weight group must sum to 1.
type ScoringConfig struct {
	PackagingWeight float64 `mapstructure:"packaging_weight"`
	CarbonWeight    float64 `mapstructure:"carbon_weight"`
	MaterialsWeight float64 `mapstructure:"materials_weight"`
	EnvWeight       float64 `mapstructure:"env_weight"`
	HealthWeight    float64 `mapstructure:"health_weight"`
}

// Load loads configuration from environment variables and config files.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/ecolens/")

	v.SetEnvPrefix("ECOLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("ai.enabled", true)
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.base_url", "")
	v.SetDefault("ai.model", "gpt-4o-mini")
	v.SetDefault("ai.timeout", "5s")
	v.SetDefault("ai.requests_per_minute", 60)

	v.SetDefault("cache.ttl", "24h")

	v.SetDefault("scoring.packaging_weight", 0.3)
	v.SetDefault("scoring.carbon_weight", 0.4)
	v.SetDefault("scoring.materials_weight", 0.3)
	v.SetDefault("scoring.env_weight", 0.5)
	v.SetDefault("scoring.health_weight", 0.5)
}

// validate validates the configuration.
func validate(config *Config) error {
	if config.AI.Enabled && config.AI.APIKey == "" {
		// Missing key is not fatal: the engine degrades to heuristics.
		config.AI.Enabled = false
	}

	if config.AI.Timeout <= 0 {
		return fmt.Errorf("ai timeout must be positive, got: %s", config.AI.Timeout)
	}

	envSum := config.Scoring.PackagingWeight + config.Scoring.CarbonWeight + config.Scoring.MaterialsWeight
	if math.Abs(envSum-1.0) > 1e-9 {
		return fmt.Errorf("environmental sub-score weights must sum to 1, got: %.3f", envSum)
	}

	unifiedSum := config.Scoring.EnvWeight + config.Scoring.HealthWeight
	if math.Abs(unifiedSum-1.0) > 1e-9 {
		return fmt.Errorf("unified score weights must sum to 1, got: %.3f", unifiedSum)
	}

	return nil
}
