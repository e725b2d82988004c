package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// RateLimitConfig holds the admission rate for one upstream API.
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// Config holds all configuration for the game search service.
type Config struct {
	// Base URLs for the remote sources (configurable for testing)
	StoreBaseURL    string `mapstructure:"store_base_url"`
	ProtonDBBaseURL string `mapstructure:"protondb_base_url"`

	// Store locale
	CountryCode string `mapstructure:"country_code"`
	Language    string `mapstructure:"language"`

	// Remote calls
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxRetries     int           `mapstructure:"max_retries"`

	// Zero means one slot per candidate
	MaxConcurrentCandidates int `mapstructure:"max_concurrent_candidates"`

	RateLimits map[string]RateLimitConfig `mapstructure:"rate_limits"`

	// HTTP front end
	ListenAddr string `mapstructure:"listen_addr"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Load reads configuration from defaults, an optional config file and
// environment variables. Environment variables take precedence over the file.
//
// Environment variables use the GAMESEARCH_ prefix, for example:
//   - GAMESEARCH_STORE_BASE_URL
//   - GAMESEARCH_PROTONDB_BASE_URL
//   - GAMESEARCH_COUNTRY_CODE
//   - GAMESEARCH_REQUEST_TIMEOUT (e.g. "5s")
//   - GAMESEARCH_MAX_CONCURRENT_CANDIDATES
//   - GAMESEARCH_LOG_LEVEL
//
// configFile may be empty, in which case config.yaml is searched for in the
// working directory and in $HOME/.gamesearch.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetEnvPrefix("gamesearch")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.gamesearch")

		// Read config file (ignore if not found)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store_base_url", "https://store.steampowered.com")
	v.SetDefault("protondb_base_url", "https://www.protondb.com")
	v.SetDefault("country_code", "BR")
	v.SetDefault("language", "brazilian")
	v.SetDefault("request_timeout", 10*time.Second)
	v.SetDefault("max_retries", 0)
	v.SetDefault("max_concurrent_candidates", 0)
	v.SetDefault("rate_limits.store.rps", 0)
	v.SetDefault("rate_limits.store.burst", 1)
	v.SetDefault("rate_limits.protondb.rps", 0)
	v.SetDefault("rate_limits.protondb.burst", 1)
	v.SetDefault("listen_addr", ":8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
}

// Validate rejects values the pipeline cannot run with.
func (c *Config) Validate() error {
	var problems []string

	if c.StoreBaseURL == "" {
		problems = append(problems, "store_base_url must be set")
	}
	if c.ProtonDBBaseURL == "" {
		problems = append(problems, "protondb_base_url must be set")
	}
	if c.RequestTimeout <= 0 {
		problems = append(problems, "request_timeout must be positive")
	}
	if c.MaxRetries < 0 {
		problems = append(problems, "max_retries must not be negative")
	}
	if c.MaxConcurrentCandidates < 0 {
		problems = append(problems, "max_concurrent_candidates must not be negative")
	}
	for name, rl := range c.RateLimits {
		if rl.RPS < 0 {
			problems = append(problems, fmt.Sprintf("rate_limits.%s.rps must not be negative", name))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, ", "))
	}
	return nil
}
