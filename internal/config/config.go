// Package config loads service configuration from an optional YAML file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Defaults
const (
	DefaultPort       = 3000
	DefaultTrialLimit = 10
	DefaultLogLevel   = "info"
	DefaultLogFormat  = "console"
	DefaultModel      = "gemini-2.5-flash"

	DefaultRateLimit        = 300
	DefaultAnalyzePerMinute = 20
)

// DefaultAllowedOrigins are the browser origins the extension calls from.
var DefaultAllowedOrigins = []string{
	"chrome-extension://*",
	"moz-extension://*",
	"http://localhost:*",
}

// Config is the service configuration. Every key can be set in the YAML
// file or through the upper-cased environment variable of the same name
// (port → PORT, gemini_api_key → GEMINI_API_KEY).
type Config struct {
	Port               int      `mapstructure:"port"`
	DatabaseURL        string   `mapstructure:"database_url"`
	GeminiAPIKey       string   `mapstructure:"gemini_api_key"`
	GeminiModel        string   `mapstructure:"gemini_model"`
	JWTSecret          string   `mapstructure:"jwt_secret"`
	JWTExpirationHours int      `mapstructure:"jwt_expiration_hours"`
	SkipAuth           bool     `mapstructure:"skip_auth"`
	TrialLimit         int      `mapstructure:"trial_limit"`
	LogLevel           string   `mapstructure:"log_level"`
	LogFormat          string   `mapstructure:"log_format"`
	RulesFile          string   `mapstructure:"rules_file"`
	SelectorsFile      string   `mapstructure:"selectors_file"`
	UpgradeURL         string   `mapstructure:"upgrade_url"`
	AllowedOrigins     []string `mapstructure:"allowed_origins"`

	RateLimitEnabled          bool          `mapstructure:"rate_limit_enabled"`
	RateLimitDefaultLimit     int           `mapstructure:"rate_limit_default_limit"`
	RateLimitDefaultWindow    time.Duration `mapstructure:"rate_limit_default_window"`
	RateLimitCleanupInterval  time.Duration `mapstructure:"rate_limit_cleanup_interval"`
	RateLimitAnalyzePerMinute int           `mapstructure:"rate_limit_analyze_per_minute"`
	RateLimitWhitelist        []string      `mapstructure:"rate_limit_whitelist"`
	RateLimitBlacklist        []string      `mapstructure:"rate_limit_blacklist"`
}

// Load reads configuration. An empty path looks for proposal.yaml in the
// working directory and carries on without it when absent; an explicit
// path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("proposal")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", DefaultPort)
	v.SetDefault("database_url", "")
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_model", DefaultModel)
	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_expiration_hours", DefaultExpirationHours)
	v.SetDefault("skip_auth", false)
	v.SetDefault("trial_limit", DefaultTrialLimit)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", DefaultLogFormat)
	v.SetDefault("rules_file", "")
	v.SetDefault("selectors_file", "")
	v.SetDefault("upgrade_url", "")
	v.SetDefault("allowed_origins", DefaultAllowedOrigins)

	v.SetDefault("rate_limit_enabled", true)
	v.SetDefault("rate_limit_default_limit", DefaultRateLimit)
	v.SetDefault("rate_limit_default_window", time.Minute)
	v.SetDefault("rate_limit_cleanup_interval", 5*time.Minute)
	v.SetDefault("rate_limit_analyze_per_minute", DefaultAnalyzePerMinute)
	v.SetDefault("rate_limit_whitelist", []string{})
	v.SetDefault("rate_limit_blacklist", []string{})
}

// Validate checks that the configuration has valid values. Secrets are
// checked where they are needed, since the CLI runs without them.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}
	if c.TrialLimit < 1 {
		return fmt.Errorf("config error: 'trial_limit' must be at least 1, got %d", c.TrialLimit)
	}
	if c.JWTExpirationHours < 1 {
		return fmt.Errorf("config error: 'jwt_expiration_hours' must be at least 1, got %d", c.JWTExpirationHours)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config error: 'log_level' must be one of debug, info, warn, error, got %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("config error: 'log_format' must be json or console, got %q", c.LogFormat)
	}
	if c.RateLimitEnabled {
		if c.RateLimitDefaultLimit < 1 || c.RateLimitAnalyzePerMinute < 1 {
			return fmt.Errorf("config error: rate limits must be at least 1 when 'rate_limit_enabled' is set")
		}
		if c.RateLimitDefaultWindow <= 0 {
			return fmt.Errorf("config error: 'rate_limit_default_window' must be positive, got %s", c.RateLimitDefaultWindow)
		}
	}
	return nil
}

// HasDatabase reports whether usage metering is backed by PostgreSQL.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

// JWT returns the token configuration, or nil when auth is skipped and
// no secret is set. It fails when auth is enabled without a secret.
func (c *Config) JWT() (*JWTConfig, error) {
	if c.SkipAuth && c.JWTSecret == "" {
		return nil, nil
	}
	return NewJWTConfig(c.JWTSecret, c.JWTExpirationHours)
}
