// Package config loads server and CLI configuration from an optional file and the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for namespaced environment overrides, e.g. SKILLMATCH_PORT.
const EnvPrefix = "SKILLMATCH"

// Config is the full service configuration.
type Config struct {
	Port        int    `mapstructure:"port"`
	DatabaseURL string `mapstructure:"database_url"`
	CORSOrigin  string `mapstructure:"cors_origin"`
	LogJSON     bool   `mapstructure:"log_json"`
	Debug       bool   `mapstructure:"debug"`

	JWT       JWTConfig       `mapstructure:"jwt"`
	Password  PasswordConfig  `mapstructure:"password"`
	Ranking   RankingConfig   `mapstructure:"ranking"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// RankingConfig tunes bulk candidate ranking.
type RankingConfig struct {
	Concurrency int `mapstructure:"concurrency"`
	CacheSize   int `mapstructure:"cache_size"` // 0 disables the result cache
}

// envBindings maps config keys to the unprefixed environment variables also accepted for them.
var envBindings = map[string]string{
	"port":                 "PORT",
	"database_url":         "DATABASE_URL",
	"cors_origin":          "CORS_ORIGIN",
	"log_json":             "LOG_JSON",
	"debug":                "DEBUG",
	"jwt.secret":           "JWT_SECRET",
	"jwt.expiration_hours": "JWT_EXPIRATION_HOURS",
	"password.bcrypt_cost": "BCRYPT_COST",
	"password.pepper":      "PASSWORD_PEPPER",
	"ranking.concurrency":  "RANKING_CONCURRENCY",
	"ranking.cache_size":   "RANKING_CACHE_SIZE",
	"rate_limit.enabled":   "RATE_LIMIT_ENABLED",
	"rate_limit.max":       "RATE_LIMIT_MAX",
	"rate_limit.window_ms": "RATE_LIMIT_WINDOW",
	"rate_limit.allow":     "RATE_LIMIT_ALLOW",
	"rate_limit.block":     "RATE_LIMIT_BLOCK",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", 8080)
	v.SetDefault("cors_origin", "*")
	v.SetDefault("log_json", false)
	v.SetDefault("debug", false)
	v.SetDefault("jwt.expiration_hours", DefaultJWTExpirationHours)
	v.SetDefault("password.bcrypt_cost", DefaultBcryptCost)
	v.SetDefault("ranking.concurrency", 8)
	v.SetDefault("ranking.cache_size", 10000)
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.max", 100)
	v.SetDefault("rate_limit.window_ms", 15*60*1000)
}

// Load reads configuration from path (YAML or JSON, optional when empty) and the environment.
// Each key can be set with a SKILLMATCH_ prefixed variable, e.g. SKILLMATCH_JWT_SECRET, or with
// its bare name, e.g. JWT_SECRET. The prefixed variable wins when both are set.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, bare := range envBindings {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, bare); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration needed to run the HTTP server.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: port out of range: %d", c.Port)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: database_url is required")
	}
	if c.Ranking.Concurrency < 1 {
		return fmt.Errorf("config error: ranking.concurrency must be at least 1, got: %d", c.Ranking.Concurrency)
	}
	if c.Ranking.CacheSize < 0 {
		return fmt.Errorf("config error: ranking.cache_size must be non-negative")
	}
	if err := c.RateLimit.Validate(); err != nil {
		return err
	}
	if err := c.JWT.Validate(); err != nil {
		return err
	}
	return c.Password.Validate()
}

// Addr returns the listen address for Port.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
