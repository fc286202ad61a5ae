package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"roast-master/internal/config"
	"roast-master/internal/constants"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type ResponseCacheRepository struct {
	db     *sql.DB
	ttl    time.Duration
	now    func() time.Time
	logger zerolog.Logger
}

func NewResponseCacheRepository(sqlDB *sql.DB, cfg *config.Config, logger zerolog.Logger) *ResponseCacheRepository {
	return &ResponseCacheRepository{
		db:     sqlDB,
		ttl:    cfg.CacheTTL,
		now:    time.Now,
		logger: logger.With().Str("component", "response_cache").Logger(),
	}
}

// Get returns the cached body for key when it is younger than the TTL.
func (r *ResponseCacheRepository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	var (
		body      []byte
		fetchedAt int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT body, fetched_at FROM response_cache WHERE cache_key = ?`, key,
	).Scan(&body, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache entry: %w", err)
	}

	age := r.now().Sub(time.Unix(fetchedAt, 0))
	if age > r.ttl {
		r.logger.Debug().Str("key", key).Dur("age", age).Dur("ttl", r.ttl).Msg("cache entry expired")
		return nil, false, nil
	}
	return body, true, nil
}

func (r *ResponseCacheRepository) Put(ctx context.Context, key string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	id, err := gonanoid.New()
	if err != nil {
		return fmt.Errorf("failed to generate nanoid: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO response_cache (id, cache_key, body, fetched_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (cache_key) DO UPDATE SET
			body = excluded.body,
			fetched_at = excluded.fetched_at`,
		id, key, body, r.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Purge drops entries older than the TTL and reports how many were removed.
func (r *ResponseCacheRepository) Purge(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	cutoff := r.now().Add(-r.ttl).Unix()
	res, err := r.db.ExecContext(ctx, `DELETE FROM response_cache WHERE fetched_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge cache: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	r.logger.Info().Int64("removed", n).Msg("purged expired cache entries")
	return n, nil
}
