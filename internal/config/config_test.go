package config

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"SLEEPER_BASE_URL", "CACHE_PATH", "SERVER_PORT", "LOG_LEVEL", "CACHE_TTL", "REQUEST_TIMEOUT", "UPSTREAM_REQUESTS_PER_MINUTE", "WEEK_FETCH_CONCURRENCY"} {
		t.Setenv(k, "")
	}

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, "https://api.sleeper.app/v1", cfg.SleeperBaseURL)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 6*time.Hour, cfg.CacheTTL)
	assert.Equal(t, 600, cfg.RequestsPerMinute)
	assert.Equal(t, 6, cfg.WeekFetchConcurrency)
}

func TestLoadOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("UPSTREAM_REQUESTS_PER_MINUTE", "120")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, 120, cfg.RequestsPerMinute)
	assert.Equal(t, "9090", cfg.ServerPort)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Chdir(t.TempDir())

	t.Setenv("CACHE_TTL", "soon")
	_, err := Load(zerolog.Nop())
	assert.Error(t, err)

	t.Setenv("CACHE_TTL", "")
	t.Setenv("WEEK_FETCH_CONCURRENCY", "0")
	_, err = Load(zerolog.Nop())
	assert.Error(t, err)

	t.Setenv("WEEK_FETCH_CONCURRENCY", "")
	for _, timeout := range []string{"0s", "-5s"} {
		t.Setenv("REQUEST_TIMEOUT", timeout)
		_, err = Load(zerolog.Nop())
		assert.ErrorContains(t, err, "REQUEST_TIMEOUT")
	}
}
