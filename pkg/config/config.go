// Package config loads server configuration from YAML with environment
// overrides via viper.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root server configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Reddit  RedditConfig  `mapstructure:"reddit"`
	JWT     JWTConfig     `mapstructure:"jwt"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// StorageConfig selects the persistence backend.
// Driver is one of: memory, sqlite, postgres.
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"` // sqlite file path
	DSN    string `mapstructure:"dsn"`  // postgres connection string
}

// RedisConfig holds the optional listing-cache settings.
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// RedditConfig holds upstream API settings. ClientID/ClientSecret empty means
// anonymous access against the public endpoint.
type RedditConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	OAuthBaseURL string        `mapstructure:"oauth_base_url"`
	TokenURL     string        `mapstructure:"token_url"`
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
	UserAgent    string        `mapstructure:"user_agent"`
	Subreddits   []string      `mapstructure:"subreddits"`
	PageSize     int           `mapstructure:"page_size"`
	RatePerSec   float64       `mapstructure:"rate_per_sec"`
	RateBurst    int           `mapstructure:"rate_burst"`
	Timeout      time.Duration `mapstructure:"timeout"`
}

// JWTConfig holds token-signing settings.
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Issuer     string        `mapstructure:"issuer"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// LoggingConfig mirrors logger.Config.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// Load reads configuration from the given file (optional) and REELHUB_*
// environment variables.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.path", "reelhub.db")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.ttl", 2*time.Minute)
	v.SetDefault("reddit.base_url", "https://www.reddit.com")
	v.SetDefault("reddit.oauth_base_url", "https://oauth.reddit.com")
	v.SetDefault("reddit.token_url", "https://www.reddit.com/api/v1/access_token")
	v.SetDefault("reddit.user_agent", "reelhub/1.0")
	v.SetDefault("reddit.subreddits", []string{"videos", "gifs", "aww"})
	v.SetDefault("reddit.page_size", 50)
	v.SetDefault("reddit.rate_per_sec", 1.0)
	v.SetDefault("reddit.rate_burst", 5)
	v.SetDefault("reddit.timeout", 15*time.Second)
	v.SetDefault("jwt.issuer", "reelhub")
	v.SetDefault("jwt.expiration", 24*time.Hour)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stdout")

	v.SetEnvPrefix("REELHUB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "dev-secret-change-me"
	}

	return &cfg, nil
}
