package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	SleeperBaseURL       string
	CachePath            string
	ServerPort           string
	LogLevel             string
	CacheTTL             time.Duration
	RequestTimeout       time.Duration
	RequestsPerMinute    int
	WeekFetchConcurrency int
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		SleeperBaseURL: getEnv("SLEEPER_BASE_URL", "https://api.sleeper.app/v1"),
		CachePath:      getEnv("CACHE_PATH", "sleeper_cache.db"),
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", 6*time.Hour); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout, err = getDuration("REQUEST_TIMEOUT", 45*time.Second); err != nil {
		return nil, err
	}
	if cfg.RequestsPerMinute, err = getInt("UPSTREAM_REQUESTS_PER_MINUTE", 600); err != nil {
		return nil, err
	}
	if cfg.WeekFetchConcurrency, err = getInt("WEEK_FETCH_CONCURRENCY", 6); err != nil {
		return nil, err
	}

	if cfg.SleeperBaseURL == "" {
		return nil, fmt.Errorf("SLEEPER_BASE_URL is required")
	}
	if cfg.RequestsPerMinute <= 0 {
		return nil, fmt.Errorf("UPSTREAM_REQUESTS_PER_MINUTE must be positive, got %d", cfg.RequestsPerMinute)
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", cfg.RequestTimeout)
	}
	if cfg.WeekFetchConcurrency <= 0 {
		return nil, fmt.Errorf("WEEK_FETCH_CONCURRENCY must be positive, got %d", cfg.WeekFetchConcurrency)
	}

	logger.Info().
		Str("sleeper_base_url", cfg.SleeperBaseURL).
		Str("cache_path", cfg.CachePath).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Dur("cache_ttl", cfg.CacheTTL).
		Dur("request_timeout", cfg.RequestTimeout).
		Int("requests_per_minute", cfg.RequestsPerMinute).
		Int("week_fetch_concurrency", cfg.WeekFetchConcurrency).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

var Module = fx.Provide(Load)
