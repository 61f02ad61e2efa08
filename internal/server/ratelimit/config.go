package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Rule is a rate limit for one endpoint. A "/"-suffixed Path matches by
// prefix, so "/drafts/" covers "/drafts/{form_id}". Limit<=0 means
// unlimited.
type Rule struct {
	Path   string
	Method string
	Limit  int
	Window time.Duration
	Burst  int
}

// Config holds limiter settings.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	Rules           []Rule
}

// LoadConfig reads limiter settings from environment variables.
func LoadConfig() *Config {
	enabled := envBool("RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    envInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   envDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: envDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		Rules:           DefaultRules(),
	}
}

// DefaultRules returns per-endpoint limits. Paste parsing and address
// normalization call out to the geocoder and get moderate caps; draft and
// form traffic is chatty and gets room to breathe.
func DefaultRules() []Rule {
	return []Rule{
		{Path: "/parse/", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},
		{Path: "/address/normalize", Method: "POST", Limit: 120, Window: time.Minute, Burst: 20},

		{Path: "/drafts/", Method: "PUT", Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/forms/", Method: "POST", Limit: 600, Window: time.Minute, Burst: 60},
	}
}

func matchRule(path, method string, rules []Rule) *Rule {
	if (path == "/health" || path == "/metrics") && method == "GET" {
		return &Rule{Limit: 0}
	}
	// Enrichment fans out to the LLM; cap it regardless of configured rules.
	if method == "POST" && strings.HasSuffix(path, "/enrich") {
		return &Rule{Limit: 30, Window: time.Hour, Burst: 5}
	}
	for i := range rules {
		r := &rules[i]
		if r.Path == path && r.Method == method {
			return r
		}
	}
	for i := range rules {
		r := &rules[i]
		if r.Method == method && strings.HasSuffix(r.Path, "/") && strings.HasPrefix(path, r.Path) {
			return r
		}
	}
	return nil
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
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
