package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Source documents
	OrgChartPath       string
	AliasTablePath     string
	MetricDocsDir      string
	MetricRegistryPath string
	ReferenceDocPath   string

	// Budgeting
	TokenDivisor         int
	MetricCharLimit      int
	MinimalOverviewLimit int

	// Resolver cache and coverage probe
	DocCacheSize    int
	CoverageWorkers int
}

func Load() Config {
	// A local .env is a convenience for development; absence is fine.
	_ = godotenv.Load()

	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("ORGCONTEXT_API_KEY"),

		OrgChartPath:       os.Getenv("ORG_CHART_PATH"),
		AliasTablePath:     os.Getenv("ALIAS_TABLE_PATH"),
		MetricDocsDir:      envOr("METRIC_DOCS_DIR", "./metrics"),
		MetricRegistryPath: os.Getenv("METRIC_REGISTRY_PATH"),
		ReferenceDocPath:   os.Getenv("REFERENCE_DOC_PATH"),

		TokenDivisor:         envInt("TOKEN_DIVISOR", 4),
		MetricCharLimit:      envInt("METRIC_CHAR_LIMIT", 20000),
		MinimalOverviewLimit: envInt("MINIMAL_OVERVIEW_LIMIT", 4000),

		DocCacheSize:    envInt("DOC_CACHE_SIZE", 64),
		CoverageWorkers: envInt("COVERAGE_WORKERS", 4),
	}

	if cfg.TokenDivisor <= 0 {
		cfg.TokenDivisor = 4
	}
	if cfg.MetricCharLimit <= 0 {
		cfg.MetricCharLimit = 20000
	}
	if cfg.MinimalOverviewLimit <= 0 {
		cfg.MinimalOverviewLimit = 4000
	}
	if cfg.DocCacheSize <= 0 {
		cfg.DocCacheSize = 64
	}
	if cfg.CoverageWorkers <= 0 {
		cfg.CoverageWorkers = 4
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("ORGCONTEXT_API_KEY is required")
	}
	if c.OrgChartPath == "" {
		return fmt.Errorf("ORG_CHART_PATH is required")
	}
	return nil
}

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
