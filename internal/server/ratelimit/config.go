package ratelimit

import (
	"strings"
	"time"

	"github.com/jonathan/resume-builder/internal/config"
)

// EndpointConfig is the limit applied to one route family
type EndpointConfig struct {
	Path   string        // exact path, or a prefix when it ends with "/"
	Method string        // empty matches any method
	Limit  int           // requests per window
	Window time.Duration
	Burst  int // defaults to Limit when 0
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// LoadConfig reads RATE_LIMIT_ENABLED, RATE_LIMIT_DEFAULT_LIMIT, RATE_LIMIT_DEFAULT_WINDOW,
// RATE_LIMIT_AI_LIMIT, RATE_LIMIT_AI_WINDOW, RATE_LIMIT_CLEANUP_INTERVAL,
// RATE_LIMIT_WHITELIST and RATE_LIMIT_BLACKLIST.
func LoadConfig() *Config {
	if !config.EnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	aiLimit := config.EnvInt("RATE_LIMIT_AI_LIMIT", 20)
	aiWindow := config.EnvDuration("RATE_LIMIT_AI_WINDOW", time.Hour)

	return &Config{
		Enabled:         true,
		DefaultLimit:    config.EnvInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   config.EnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: config.EnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(config.EnvString("RATE_LIMIT_WHITELIST", "")),
		Blacklist:       parseIPList(config.EnvString("RATE_LIMIT_BLACKLIST", "")),
		EndpointConfigs: DefaultEndpointConfigs(aiLimit, aiWindow),
	}
}

// DefaultEndpointConfigs returns the per-route limits. AI routes share the given budget.
func DefaultEndpointConfigs(aiLimit int, aiWindow time.Duration) []EndpointConfig {
	aiBurst := max(1, aiLimit/4)
	return []EndpointConfig{
		// AI calls
		{Path: "/v1/optimize", Method: "POST", Limit: aiLimit, Window: aiWindow, Burst: aiBurst},
		{Path: "/v1/import", Method: "POST", Limit: aiLimit, Window: aiWindow, Burst: aiBurst},
		{Path: "/v1/tailor", Method: "POST", Limit: aiLimit, Window: aiWindow, Burst: aiBurst},
		{Path: "/v1/compress", Method: "POST", Limit: aiLimit, Window: aiWindow, Burst: aiBurst},

		// Outbound fetches
		{Path: "/v1/job-posting", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},

		// Rendering
		{Path: "/v1/render/", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/v1/bundle", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/v1/preview", Method: "POST", Limit: 300, Window: time.Minute, Burst: 60},

		// Writes
		{Path: "/v1/resumes", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/v1/resumes/", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/v1/applications", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/v1/applications/", Method: "", Limit: 200, Window: time.Minute, Burst: 20},
	}
}

// unlimited paths are never counted
var unlimited = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

// MatchEndpoint returns the configuration for path and method, or nil when the default applies.
// Exact paths win over prefixes.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if unlimited[path] {
		return &EndpointConfig{Path: path}
	}

	for i := range configs {
		c := &configs[i]
		if c.Path == path && (c.Method == "" || c.Method == method) {
			return c
		}
	}

	for i := range configs {
		c := &configs[i]
		if strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) && (c.Method == "" || c.Method == method) {
			return c
		}
	}

	return nil
}

func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
