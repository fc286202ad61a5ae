package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"roast-master/internal/config"
	"roast-master/internal/database"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) *ResponseCacheRepository {
	t.Helper()
	cfg := &config.Config{
		CachePath: filepath.Join(t.TempDir(), "cache.db"),
		CacheTTL:  ttl,
	}
	db, err := database.New(cfg, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewResponseCacheRepository(db, cfg, zerolog.Nop())
}

func TestResponseCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestCache(t, time.Hour)

	_, ok, err := repo.Get(ctx, "/league/1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, repo.Put(ctx, "/league/1", []byte(`{"a":1}`)))
	require.NoError(t, repo.Put(ctx, "/league/1", []byte(`{"a":2}`)))

	body, ok, err := repo.Get(ctx, "/league/1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"a":2}`, string(body))
}

func TestResponseCacheExpiry(t *testing.T) {
	ctx := context.Background()
	repo := newTestCache(t, time.Hour)

	now := time.Date(2024, 9, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }
	require.NoError(t, repo.Put(ctx, "/league/old", []byte(`[]`)))

	now = now.Add(30 * time.Minute)
	require.NoError(t, repo.Put(ctx, "/league/new", []byte(`[]`)))

	now = now.Add(45 * time.Minute)
	_, ok, err := repo.Get(ctx, "/league/old")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = repo.Get(ctx, "/league/new")
	require.NoError(t, err)
	assert.True(t, ok)

	removed, err := repo.Purge(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)
}
