package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"roast-master/internal/config"
	"roast-master/internal/constants"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
	"github.com/valyala/fasthttp"
	"golang.org/x/time/rate"
)

var ErrNotFound = errors.New("sleeper: resource not found")

// ResponseCache stores raw upstream bodies by request path.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, body []byte) error
}

type SleeperClient struct {
	baseURL string
	client  *fasthttp.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
	cache   ResponseCache
	logger  zerolog.Logger
}

func NewSleeperClient(cfg *config.Config, cache ResponseCache, logger zerolog.Logger) *SleeperClient {
	hc := &fasthttp.Client{
		MaxConnsPerHost:     100,
		ReadTimeout:         constants.ExternalAPITimeout,
		WriteTimeout:        constants.ExternalAPITimeout,
		MaxIdleConnDuration: 1 * time.Minute,
	}
	return newSleeperClient(cfg.SleeperBaseURL, cfg.RequestsPerMinute, hc, cache, logger)
}

func newSleeperClient(baseURL string, perMinute int, hc *fasthttp.Client, cache ResponseCache, logger zerolog.Logger) *SleeperClient {
	logger = logger.With().Str("component", "sleeper").Logger()
	return &SleeperClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  hc,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), max(1, perMinute/60)),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "sleeper",
			MaxRequests: constants.BreakerMaxRequests,
			Interval:    constants.BreakerInterval,
			Timeout:     constants.BreakerOpenTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= constants.BreakerMinRequests && failureRatio >= constants.BreakerFailureRatio
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, ErrNotFound)
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.Warn().
					Str("breaker", name).
					Str("from_state", from.String()).
					Str("to_state", to.String()).
					Msg("upstream circuit breaker state changed")
			},
		}),
		cache:  cache,
		logger: logger,
	}
}

func (c *SleeperClient) GetLeague(ctx context.Context, leagueID string) (*League, error) {
	return doRequest[League](ctx, c, fmt.Sprintf("/league/%s", leagueID))
}

func (c *SleeperClient) GetRosters(ctx context.Context, leagueID string) ([]Roster, error) {
	rosters, err := doRequest[[]Roster](ctx, c, fmt.Sprintf("/league/%s/rosters", leagueID))
	if err != nil {
		return nil, err
	}
	return *rosters, nil
}

func (c *SleeperClient) GetUsers(ctx context.Context, leagueID string) ([]User, error) {
	users, err := doRequest[[]User](ctx, c, fmt.Sprintf("/league/%s/users", leagueID))
	if err != nil {
		return nil, err
	}
	return *users, nil
}

func (c *SleeperClient) GetMatchups(ctx context.Context, leagueID string, week int) ([]Matchup, error) {
	matchups, err := doRequest[[]Matchup](ctx, c, fmt.Sprintf("/league/%s/matchups/%d", leagueID, week))
	if err != nil {
		return nil, err
	}
	return *matchups, nil
}

func (c *SleeperClient) fetch(ctx context.Context, path string) ([]byte, error) {
	if c.cache != nil {
		body, ok, err := c.cache.Get(ctx, path)
		if err != nil {
			c.logger.Warn().Err(err).Str("path", path).Msg("response cache read failed")
		} else if ok {
			c.logger.Debug().Str("path", path).Msg("response cache hit")
			return body, nil
		}
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.get(ctx, path)
	})
	if err != nil {
		return nil, err
	}
	body := out.([]byte)

	if c.cache != nil {
		if err := c.cache.Put(ctx, path, body); err != nil {
			c.logger.Warn().Err(err).Str("path", path).Msg("response cache write failed")
		}
	}
	return body, nil
}

func (c *SleeperClient) get(ctx context.Context, path string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.baseURL + path)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	deadline, ok := ctx.Deadline()
	if ok {
		if err := c.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, err
		}
	} else {
		if err := c.client.Do(req, resp); err != nil {
			return nil, err
		}
	}

	c.logger.Debug().
		Str("path", path).
		Int("status", resp.StatusCode()).
		Dur("duration", time.Since(start)).
		Msg("upstream request")

	switch status := resp.StatusCode(); {
	case status == fasthttp.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	case status != fasthttp.StatusOK:
		return nil, fmt.Errorf("API error: %d", status)
	}

	body := bytes.TrimSpace(resp.Body())
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return nil, fmt.Errorf("%s: %w", path, ErrNotFound)
	}
	// resp is released on return
	return append([]byte(nil), body...), nil
}

func doRequest[T any](ctx context.Context, client *SleeperClient, path string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := client.fetch(ctx, path)
	if err != nil {
		return nil, err
	}

	var result T
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &result, nil
}
