// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/gridgen.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Grid family registry
// --------------------------------------------------------------------------

// FamilyDaily and FamilyInternational are the fixed grid families; the
// per-country families come from the category-list resource.
const (
	FamilyDaily         = "daily"
	FamilyInternational = "international"
	FamilyCustom        = "custom"
)

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database
	DatabaseURL       string
	HostedDatabaseURL string // upload target, optional
	DBPoolMinConns    int
	DBPoolMaxConns    int
	DBPoolMaxLife     time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Static resources
	CategoryFile string
	MergeFile    string

	// Grid search
	SearchMaxAttempts       int
	SearchMinIntersection   int
	SearchPrecomputeAnswers bool
	PoolRefillFloor         int

	// Maintenance
	CustomGridSweepInterval time.Duration
	BackfillSweepInterval   time.Duration

	// Cache
	CacheEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	dbURL := envOr("DATABASE_URL", "")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set")
	}

	return &Config{
		DatabaseURL:       dbURL,
		HostedDatabaseURL: envOr("HOSTED_DATABASE_URL", ""),
		DBPoolMinConns:    envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns:    envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:     time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 3000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://127.0.0.1:5500",
			"http://localhost:5500",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		CategoryFile: envOr("CATEGORY_FILE", "data/categories.json"),
		MergeFile:    envOr("MERGE_FILE", "data/merges.json"),

		SearchMaxAttempts:       envInt("SEARCH_MAX_ATTEMPTS", 250),
		SearchMinIntersection:   envInt("SEARCH_MIN_INTERSECTION", 3),
		SearchPrecomputeAnswers: envBool("SEARCH_PRECOMPUTE_ANSWERS", true),
		PoolRefillFloor:         envInt("POOL_REFILL_FLOOR", 6),

		CustomGridSweepInterval: time.Duration(envInt("CUSTOM_GRID_SWEEP_MINUTES", 60)) * time.Minute,
		BackfillSweepInterval:   time.Duration(envInt("BACKFILL_SWEEP_MINUTES", 360)) * time.Minute,

		CacheEnabled: envBool("CACHE_ENABLED", true),
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
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
