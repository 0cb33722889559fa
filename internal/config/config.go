// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/feed.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Sport registry
// --------------------------------------------------------------------------

type SportConfig struct {
	ID   string
	Name string
}

// SportRegistry lists the concrete sport categories. Sports() preserves the
// declaration order in sportOrder; feed output ordering depends on it.
var SportRegistry = map[string]SportConfig{
	"football":   {ID: "football", Name: "Football (Soccer)"},
	"basketball": {ID: "basketball", Name: "Basketball"},
	"cricket":    {ID: "cricket", Name: "Cricket"},
}

var sportOrder = []string{"football", "basketball", "cricket"}

// Sports returns the concrete categories in deterministic order.
func Sports() []string {
	out := make([]string, len(sportOrder))
	copy(out, sportOrder)
	return out
}

// IsSport reports whether s names a concrete sport category.
func IsSport(s string) bool {
	_, ok := SportRegistry[strings.ToLower(s)]
	return ok
}

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting (inbound)
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Upstream API keys (opaque secrets; empty = adapter reports unavailable)
	SportsDBAPIKey  string // TheSportsDB
	FootballAPIKey  string // API-Football via RapidAPI
	CricketAPIKey   string // CricAPI
	BDLAPIKey       string // BallDontLie
	UpstreamReqsMin int    // per-adapter token bucket, requests/minute

	// Provider chains: category → ordered provider names.
	Chains map[string][]string

	// Feed cache
	CacheTTL       time.Duration
	AlwaysFresh    []string // categories re-fetched on every call
	AdapterTimeout time.Duration
	MaxPerSport    int

	// Chat
	PatternsFile string // optional YAML override for resolver pattern order

	// AI assist
	OpenAIAPIKey      string
	OpenRouterAPIKey  string
	OpenRouterBaseURL string
	OpenRouterModel   string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		SportsDBAPIKey:  envOr("SPORTS_API_KEY", ""),
		FootballAPIKey:  envOr("FOOTBALL_API_KEY", ""),
		CricketAPIKey:   envOr("CRICKET_API_KEY", ""),
		BDLAPIKey:       envOr("BALLDONTLIE_API_KEY", ""),
		UpstreamReqsMin: envInt("UPSTREAM_REQUESTS_PER_MINUTE", 30),

		CacheTTL:       time.Duration(envInt("CACHE_TTL_SECONDS", 3600)) * time.Second,
		AlwaysFresh:    envList("ALWAYS_FRESH_SPORTS", []string{"cricket"}),
		AdapterTimeout: time.Duration(envInt("ADAPTER_TIMEOUT_SECONDS", 5)) * time.Second,
		MaxPerSport:    envInt("MAX_EVENTS_PER_SPORT", 5),

		PatternsFile: envOr("CHAT_PATTERNS_FILE", ""),

		OpenAIAPIKey:      envOr("OPENAI_API_KEY", ""),
		OpenRouterAPIKey:  envOr("OPENROUTER_API_KEY", ""),
		OpenRouterBaseURL: envOr("OPENROUTER_API_BASE", "https://openrouter.ai/api/v1"),
		OpenRouterModel:   envOr("OPENROUTER_MODEL", "deepseek/deepseek-r1:free"),
	}

	cfg.Chains = loadChains()
	for _, cat := range cfg.AlwaysFresh {
		if !IsSport(cat) {
			return nil, fmt.Errorf("ALWAYS_FRESH_SPORTS: unknown sport %q", cat)
		}
	}
	return cfg, nil
}

// defaultChains is the per-sport fallback order. The legacy API_PROVIDER
// variable prepends TheSportsDB to every chain when set to "thesportsdb".
var defaultChains = map[string][]string{
	"football":   {"api-football", "synthetic"},
	"basketball": {"balldontlie", "synthetic"},
	"cricket":    {"cricapi", "synthetic"},
}

// loadChains builds the provider chain per sport from CHAIN_<SPORT> env vars,
// falling back to the defaults. The synthetic generator is always appended
// when missing so every chain stays total.
func loadChains() map[string][]string {
	chains := make(map[string][]string, len(sportOrder))
	prependSportsDB := strings.EqualFold(envOr("API_PROVIDER", ""), "thesportsdb")

	for _, sport := range sportOrder {
		chain := envList("CHAIN_"+strings.ToUpper(sport), defaultChains[sport])
		if prependSportsDB && chain[0] != "thesportsdb" {
			chain = append([]string{"thesportsdb"}, chain...)
		}
		if chain[len(chain)-1] != "synthetic" {
			chain = append(chain, "synthetic")
		}
		chains[sport] = chain
	}
	return chains
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// AssistConfigured reports whether any AI backend has a key.
func (c *Config) AssistConfigured() bool {
	return c.OpenAIAPIKey != "" || c.OpenRouterAPIKey != ""
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
