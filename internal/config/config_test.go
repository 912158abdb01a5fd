package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_AllVarsSet(t *testing.T) {
	t.Setenv("CENSOTEC_META_PATH", "/tmp/meta.sqlite")
	t.Setenv("CENSOTEC_DUCKDB_PATH", "/tmp/analysis.duckdb")
	t.Setenv("CENSOTEC_ALPHA", "0.01")
	t.Setenv("CENSOTEC_SEED", "7")
	t.Setenv("CENSOTEC_S3_KEY_ID", "testkey")
	t.Setenv("CENSOTEC_S3_SECRET", "testsecret")
	t.Setenv("CENSOTEC_S3_ENDPOINT", "s3.example.com")
	t.Setenv("CENSOTEC_S3_REGION", "us-east-1")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/meta.sqlite", cfg.MetaDBPath)
	assert.Equal(t, "/tmp/analysis.duckdb", cfg.DuckDBPath)
	assert.Equal(t, 0.01, cfg.Alpha)
	assert.Equal(t, uint64(7), cfg.Seed)
	require.NotNil(t, cfg.S3KeyID)
	assert.Equal(t, "testkey", *cfg.S3KeyID)
	assert.True(t, cfg.HasS3Config())
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	t.Setenv("CENSOTEC_META_PATH", "")
	t.Setenv("CENSOTEC_ALPHA", "")
	t.Setenv("CENSOTEC_SEED", "")
	t.Setenv("CENSOTEC_JWT_SECRET", "")
	t.Setenv("CENSOTEC_S3_KEY_ID", "")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "censotec_meta.sqlite", cfg.MetaDBPath)
	assert.Equal(t, "", cfg.DuckDBPath) // in-memory
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 0.05, cfg.Alpha)
	assert.Equal(t, uint64(42), cfg.Seed)
	assert.Equal(t, float64(100), cfg.RateLimitRPS)
	assert.Equal(t, 200, cfg.RateLimitBurst)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Nil(t, cfg.S3KeyID)
	assert.False(t, cfg.HasS3Config())
	assert.NotEmpty(t, cfg.Warnings, "missing JWT secret should warn")
}

func TestLoadFromEnv_InvalidAlpha(t *testing.T) {
	for _, v := range []string{"abc", "0", "1", "1.5", "-0.05"} {
		t.Setenv("CENSOTEC_ALPHA", v)
		_, err := LoadFromEnv()
		assert.Error(t, err, "alpha %q should be rejected", v)
	}
}

func TestSlogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		cfg := &Config{LogLevel: in}
		assert.Equal(t, want, cfg.SlogLevel(), "level %q", in)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nCENSOTEC_TEST_A=hello\nCENSOTEC_TEST_B=\"quoted\"\n\nnot-a-pair\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	t.Setenv("CENSOTEC_TEST_A", "")
	t.Setenv("CENSOTEC_TEST_B", "")
	require.NoError(t, LoadDotEnv(path))

	assert.Equal(t, "hello", os.Getenv("CENSOTEC_TEST_A"))
	assert.Equal(t, "quoted", os.Getenv("CENSOTEC_TEST_B"))
}

func TestLoadDotEnv_MissingFileIsNotAnError(t *testing.T) {
	require.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), "nope.env")))
}

func TestLoadDotEnv_EnvTakesPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("CENSOTEC_TEST_C=file\n"), 0o600))

	t.Setenv("CENSOTEC_TEST_C", "env")
	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "env", os.Getenv("CENSOTEC_TEST_C"))
}
