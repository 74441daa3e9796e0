package ratelimit

import (
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Settings are the operator-facing knobs, as read by internal/config.
type Settings struct {
	Enabled          bool
	DefaultLimit     int
	DefaultWindow    time.Duration
	CleanupInterval  time.Duration
	AnalyzePerMinute int
	Whitelist        []string
	Blacklist        []string
}

// NewConfig builds the limiter configuration from settings.
func NewConfig(s Settings) *Config {
	if !s.Enabled {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    s.DefaultLimit,
		DefaultWindow:   s.DefaultWindow,
		CleanupInterval: s.CleanupInterval,
		Whitelist:       ipSet(s.Whitelist),
		Blacklist:       ipSet(s.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(s.AnalyzePerMinute),
	}
}

// DefaultEndpointConfigs returns the endpoint-specific limits. Each analysis
// may cost a model call, so it gets the strictest budget.
func DefaultEndpointConfigs(analyzePerMinute int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/api/analyze", Method: "POST", Limit: analyzePerMinute, Window: time.Minute, Burst: 5},
		{Path: "/api/me", Method: "GET", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/api/config/", Method: "GET", Limit: 60, Window: time.Minute, Burst: 10},
	}
}

// ipSet turns a list of addresses into a lookup set. Entries may still
// carry spaces when they come from a comma-separated env var.
func ipSet(ips []string) map[string]bool {
	result := make(map[string]bool, len(ips))
	for _, ip := range ips {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
