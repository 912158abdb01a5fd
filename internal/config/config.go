// Package config handles application configuration and environment loading.
package config

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds configuration shared by the CLI and the HTTP server.
type Config struct {
	// S3 fields are optional, nil when not configured. When set, datasets
	// may be ingested from s3:// URIs.
	S3KeyID    *string
	S3Secret   *string
	S3Endpoint *string
	S3Region   *string

	MetaDBPath string // path to the SQLite metastore file
	DuckDBPath string // path to the DuckDB analysis database ("" = in-memory)
	ChartDir   string // directory for rendered SVG charts
	ListenAddr string // HTTP listen address (default ":8080")
	LogLevel   string // log level: debug, info, warn, error (default "info")

	Alpha float64 // significance level for hypothesis tests (default 0.05)
	Seed  uint64  // seed for distribution samplers and synthetic data (default 42)

	// JWTSecret enables HS256 bearer auth on /v1 when non-empty.
	JWTSecret string

	// Rate limiting
	RateLimitRPS   float64 // sustained requests per second (default 100)
	RateLimitBurst int     // burst capacity (default 200)

	// CORS
	CORSAllowedOrigins []string // allowed origins for CORS (default: ["*"])

	// RescanCron re-ingests registered datasets whose source file changed.
	// Empty disables the schedule.
	RescanCron string

	// Warnings collects non-fatal warnings generated during config loading.
	// These are logged by the caller after the logger is initialised.
	Warnings []string
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// HasS3Config returns true if all required S3 fields are set.
func (c *Config) HasS3Config() bool {
	return c.S3KeyID != nil && c.S3Secret != nil &&
		c.S3Endpoint != nil && c.S3Region != nil
}

// LoadFromEnv loads configuration from environment variables.
// S3 variables are optional; the tool works fully against local files.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		MetaDBPath: os.Getenv("CENSOTEC_META_PATH"),
		DuckDBPath: os.Getenv("CENSOTEC_DUCKDB_PATH"),
		ChartDir:   os.Getenv("CENSOTEC_CHART_DIR"),
		ListenAddr: os.Getenv("CENSOTEC_LISTEN_ADDR"),
		LogLevel:   os.Getenv("CENSOTEC_LOG_LEVEL"),
		JWTSecret:  os.Getenv("CENSOTEC_JWT_SECRET"),
		RescanCron: os.Getenv("CENSOTEC_RESCAN_CRON"),
	}

	if v := os.Getenv("CENSOTEC_ALPHA"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f <= 0 || f >= 1 {
			return nil, fmt.Errorf("CENSOTEC_ALPHA must be a float in (0,1), got %q", v)
		}
		cfg.Alpha = f
	}
	if v := os.Getenv("CENSOTEC_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("CENSOTEC_SEED must be an unsigned integer, got %q", v)
		}
		cfg.Seed = n
	}

	// Rate limiting
	if v := os.Getenv("CENSOTEC_RATE_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimitRPS = f
		}
	}
	if v := os.Getenv("CENSOTEC_RATE_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitBurst = n
		}
	}

	// S3 fields stay nil unless present
	if v := os.Getenv("CENSOTEC_S3_KEY_ID"); v != "" {
		cfg.S3KeyID = &v
	}
	if v := os.Getenv("CENSOTEC_S3_SECRET"); v != "" {
		cfg.S3Secret = &v
	}
	if v := os.Getenv("CENSOTEC_S3_ENDPOINT"); v != "" {
		cfg.S3Endpoint = &v
	}
	if v := os.Getenv("CENSOTEC_S3_REGION"); v != "" {
		cfg.S3Region = &v
	}

	// CORS
	if v := os.Getenv("CENSOTEC_CORS_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.CORSAllowedOrigins = origins
	}

	// Defaults
	if cfg.MetaDBPath == "" {
		cfg.MetaDBPath = "censotec_meta.sqlite"
	}
	if cfg.ChartDir == "" {
		cfg.ChartDir = "charts"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Alpha == 0 {
		cfg.Alpha = 0.05
	}
	if cfg.Seed == 0 {
		cfg.Seed = 42
	}
	if cfg.RateLimitRPS == 0 {
		cfg.RateLimitRPS = 100
	}
	if cfg.RateLimitBurst == 0 {
		cfg.RateLimitBurst = 200
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}

	if cfg.JWTSecret == "" {
		cfg.Warnings = append(cfg.Warnings, "CENSOTEC_JWT_SECRET not set; the API will accept unauthenticated requests")
	}

	return cfg, nil
}

// LoadDotEnv reads a .env file and sets any variables not already in the environment.
// Lines must be in KEY=VALUE format. Comments (#) and blank lines are skipped.
func LoadDotEnv(path string) error {
	f, err := os.Open(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		if os.IsNotExist(err) {
			return nil // .env not found is not an error
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		value = stripQuotes(value)
		// Only set if not already in the environment (env vars take precedence)
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("setenv %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}

// stripQuotes removes surrounding double or single quotes from a value.
// Only strips if both the first and last characters are matching quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
