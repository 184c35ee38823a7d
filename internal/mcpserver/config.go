package mcpserver

import (
	"log/slog"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/erraggy/oasmodels/config"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Document cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheURLTTL        time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Input limits.
	MaxInlineSize   int64
	AllowPrivateIPs bool

	// Generation defaults.
	Target          config.Target
	ClassNamePrefix string
	// MaxContentFiles caps how many file bodies generate_models returns inline.
	MaxContentFiles int
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASMODELS_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:       envBool("OASMODELS_CACHE_ENABLED", true),
		CacheMaxSize:       envInt("OASMODELS_CACHE_MAX_SIZE", 10),
		CacheFileTTL:       envDuration("OASMODELS_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:        envDuration("OASMODELS_CACHE_URL_TTL", 5*time.Minute),
		CacheContentTTL:    envDuration("OASMODELS_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval: envDuration("OASMODELS_CACHE_SWEEP_INTERVAL", 60*time.Second),
		MaxInlineSize:      int64(envInt("OASMODELS_MAX_INLINE_SIZE", 10*1024*1024)),
		AllowPrivateIPs:    envBool("OASMODELS_ALLOW_PRIVATE_IPS", false),
		Target:             envTarget("OASMODELS_TARGET", config.TargetDart),
		ClassNamePrefix:    os.Getenv("OASMODELS_CLASS_NAME_PREFIX"),
		MaxContentFiles:    envInt("OASMODELS_MAX_CONTENT_FILES", 50),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envTarget(key string, fallback config.Target) config.Target {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	t := config.Target(strings.ToLower(v))
	if !slices.Contains(config.Targets, t) {
		slog.Warn("invalid target env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return t
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}
