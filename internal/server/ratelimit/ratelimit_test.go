package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *Config {
	return &Config{
		Enabled:       true,
		DefaultLimit:  600,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{},
		Blacklist:     map[string]bool{},
		Rules:         DefaultRules(),
	}
}

func TestAllowWithinLimit(t *testing.T) {
	l := NewLimiter(testConfig())
	defer l.Stop()

	allowed, info := l.Allow("10.0.0.1", "/parse/memo", "POST")
	assert.True(t, allowed)
	assert.Equal(t, 120, info.Limit)
	assert.GreaterOrEqual(t, info.Remaining, 0)
}

func TestBurstExhaustion(t *testing.T) {
	cfg := testConfig()
	cfg.Rules = []Rule{{Path: "/parse/", Method: "POST", Limit: 5, Window: time.Hour, Burst: 3}}
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 3; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/parse/memo", "POST")
		require.True(t, allowed, "request %d should pass", i)
	}
	allowed, info := l.Allow("10.0.0.1", "/parse/memo", "POST")
	assert.False(t, allowed)
	assert.Greater(t, info.RetryAfter, time.Duration(0))
}

func TestClientsAreIndependent(t *testing.T) {
	cfg := testConfig()
	cfg.Rules = []Rule{{Path: "/parse/", Method: "POST", Limit: 1, Window: time.Hour}}
	l := NewLimiter(cfg)
	defer l.Stop()

	allowed, _ := l.Allow("10.0.0.1", "/parse/memo", "POST")
	require.True(t, allowed)
	allowed, _ = l.Allow("10.0.0.1", "/parse/memo", "POST")
	require.False(t, allowed)

	allowed, _ = l.Allow("10.0.0.2", "/parse/memo", "POST")
	assert.True(t, allowed, "a different client has its own bucket")
}

func TestWhitelistBypasses(t *testing.T) {
	cfg := testConfig()
	cfg.Whitelist["10.0.0.9"] = true
	cfg.Rules = []Rule{{Path: "/parse/", Method: "POST", Limit: 1, Window: time.Hour}}
	l := NewLimiter(cfg)
	defer l.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := l.Allow("10.0.0.9", "/parse/memo", "POST")
		require.True(t, allowed)
	}
}

func TestBlacklistAlwaysDenied(t *testing.T) {
	cfg := testConfig()
	cfg.Blacklist["10.0.0.66"] = true
	l := NewLimiter(cfg)
	defer l.Stop()

	allowed, _ := l.Allow("10.0.0.66", "/health", "GET")
	assert.False(t, allowed)
}

func TestDisabledLimiterAllowsEverything(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})
	defer l.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := l.Allow("10.0.0.1", "/parse/memo", "POST")
		require.True(t, allowed)
	}
}

func TestMatchRule(t *testing.T) {
	rules := DefaultRules()

	t.Run("health and metrics are unlimited", func(t *testing.T) {
		for _, path := range []string{"/health", "/metrics"} {
			r := matchRule(path, "GET", rules)
			require.NotNil(t, r)
			assert.LessOrEqual(t, r.Limit, 0)
		}
	})

	t.Run("prefix rule covers subpaths", func(t *testing.T) {
		r := matchRule("/drafts/investment-wizard", "PUT", rules)
		require.NotNil(t, r)
		assert.Equal(t, 300, r.Limit)
	})

	t.Run("exact path rule", func(t *testing.T) {
		r := matchRule("/address/normalize", "POST", rules)
		require.NotNil(t, r)
		assert.Equal(t, 120, r.Limit)
	})

	t.Run("enrichment is capped per hour", func(t *testing.T) {
		r := matchRule("/companies/abc/enrich", "POST", rules)
		require.NotNil(t, r)
		assert.Equal(t, 30, r.Limit)
		assert.Equal(t, time.Hour, r.Window)
	})

	t.Run("method must match", func(t *testing.T) {
		assert.Nil(t, matchRule("/drafts/x", "GET", rules))
	})

	t.Run("unmatched path falls through to default", func(t *testing.T) {
		assert.Nil(t, matchRule("/companies", "GET", rules))
	})
}

func TestBucketRefills(t *testing.T) {
	b := newBucket(1, 100) // 100 tokens/sec, capacity 1
	require.True(t, b.allow())
	require.False(t, b.allow())

	time.Sleep(30 * time.Millisecond)
	assert.True(t, b.allow(), "bucket should refill over time")
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2")

	cfg := LoadConfig()
	assert.Equal(t, 42, cfg.DefaultLimit)
	assert.True(t, cfg.Whitelist["10.0.0.1"])
	assert.True(t, cfg.Whitelist["10.0.0.2"])

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	assert.False(t, LoadConfig().Enabled)
}
