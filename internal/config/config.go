package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth (optional; empty disables auth on the HTTP API)
	APIKey string

	// Paper cache
	CacheDir      string
	ValidateCache bool

	// arXiv
	ArxivAPIURL   string
	LookupTimeout time.Duration

	// Downloads
	DownloadTimeout  time.Duration
	DownloadAttempts int

	// Paper index
	IndexEnabled bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8091"),

		APIKey: os.Getenv("PAPERGEST_API_KEY"),

		CacheDir:      envOr("PAPERGEST_CACHE_DIR", filepath.Join(os.TempDir(), "paper_cache")),
		ValidateCache: envBool("PAPERGEST_VALIDATE_CACHE", true),

		ArxivAPIURL:   envOr("ARXIV_API_URL", "https://export.arxiv.org/api/query"),
		LookupTimeout: envDuration("ARXIV_LOOKUP_TIMEOUT", 30*time.Second),

		DownloadTimeout:  envDuration("PAPERGEST_DOWNLOAD_TIMEOUT", 60*time.Second),
		DownloadAttempts: envInt("PAPERGEST_DOWNLOAD_ATTEMPTS", 1),

		IndexEnabled: envBool("PAPERGEST_INDEX", true),
	}

	if cfg.LookupTimeout <= 0 {
		cfg.LookupTimeout = 30 * time.Second
	}
	if cfg.DownloadTimeout <= 0 {
		cfg.DownloadTimeout = 60 * time.Second
	}
	if cfg.DownloadAttempts <= 0 {
		cfg.DownloadAttempts = 1
	}

	return cfg
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

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
