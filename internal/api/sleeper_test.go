package api

import (
	"context"
	"net"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttputil"
)

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.data[key]
	return b, ok, nil
}

func (m *memCache) Put(_ context.Context, key string, body []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = body
	return nil
}

type fakeSleeper struct {
	mu    sync.Mutex
	hits  map[string]int
	paths map[string]string
}

func (f *fakeSleeper) handle(ctx *fasthttp.RequestCtx) {
	f.mu.Lock()
	path := string(ctx.Path())
	f.hits[path]++
	body, ok := f.paths[path]
	f.mu.Unlock()

	if !ok {
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		return
	}
	ctx.SetContentType("application/json")
	ctx.SetBodyString(body)
}

func newTestClient(t *testing.T, paths map[string]string, cache ResponseCache) (*SleeperClient, *fakeSleeper) {
	t.Helper()
	ln := fasthttputil.NewInmemoryListener()
	fake := &fakeSleeper{hits: make(map[string]int), paths: paths}

	srv := &fasthttp.Server{Handler: fake.handle}
	go func() { _ = srv.Serve(ln) }()
	t.Cleanup(func() { _ = ln.Close() })

	hc := &fasthttp.Client{Dial: func(string) (net.Conn, error) { return ln.Dial() }}
	return newSleeperClient("http://sleeper.test/v1/", 6000, hc, cache, zerolog.Nop()), fake
}

func TestGetLeague(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{
		"/v1/league/L2": `{"league_id":"L2","name":"Dynasty","season":"2023","previous_league_id":"L1",
			"settings":{"playoff_week_start":15,"playoff_teams":6}}`,
	}, nil)

	l, err := c.GetLeague(context.Background(), "L2")
	require.NoError(t, err)
	assert.Equal(t, "Dynasty", l.Name)
	assert.Equal(t, "L1", l.PreviousID())
	assert.Equal(t, 15, l.Settings.PlayoffWeekStart)
	assert.Equal(t, 6, l.Settings.PlayoffTeams)
}

func TestGetLeagueNotFound(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{"/v1/league/NULL": "null"}, nil)

	_, err := c.GetLeague(context.Background(), "NULL")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = c.GetLeague(context.Background(), "MISSING")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetMatchups(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{
		"/v1/league/L1/matchups/3": `[{"matchup_id":1,"roster_id":1,"points":101.5},
			{"matchup_id":1,"roster_id":2,"points":99.1},
			{"matchup_id":null,"roster_id":3,"points":0}]`,
	}, nil)

	m, err := c.GetMatchups(context.Background(), "L1", 3)
	require.NoError(t, err)
	require.Len(t, m, 3)
	require.NotNil(t, m[0].MatchupID)
	assert.Equal(t, 1, *m[0].MatchupID)
	assert.InDelta(t, 101.5, m[0].Points, 1e-9)
	assert.Nil(t, m[2].MatchupID)
}

func TestRostersAndUsers(t *testing.T) {
	c, _ := newTestClient(t, map[string]string{
		"/v1/league/L1/rosters": `[{"roster_id":1,"owner_id":"u1","settings":{"wins":9,"losses":5,"fpts":1650,"fpts_decimal":42}},
			{"roster_id":2,"owner_id":null,"settings":{}}]`,
		"/v1/league/L1/users": `[{"user_id":"u1","display_name":"Alice","avatar":"abc"}]`,
	}, nil)

	rosters, err := c.GetRosters(context.Background(), "L1")
	require.NoError(t, err)
	require.Len(t, rosters, 2)
	assert.Equal(t, "u1", *rosters[0].OwnerID)
	assert.InDelta(t, 1650.42, rosters[0].Settings.PointsFor(), 1e-9)
	assert.Nil(t, rosters[1].OwnerID)

	users, err := c.GetUsers(context.Background(), "L1")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "https://sleepercdn.com/avatars/thumbs/abc", users[0].AvatarURL())
}

func TestResponsesAreCached(t *testing.T) {
	cache := &memCache{data: make(map[string][]byte)}
	c, fake := newTestClient(t, map[string]string{
		"/v1/league/L1/users": `[{"user_id":"u1","display_name":"Alice"}]`,
	}, cache)

	for i := 0; i < 3; i++ {
		users, err := c.GetUsers(context.Background(), "L1")
		require.NoError(t, err)
		require.Len(t, users, 1)
	}
	assert.Equal(t, 1, fake.hits["/v1/league/L1/users"])
	assert.Contains(t, cache.data, "/league/L1/users")
}

func TestCanceledContext(t *testing.T) {
	c, fake := newTestClient(t, map[string]string{"/v1/league/L1": `{"league_id":"L1"}`}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.GetLeague(ctx, "L1")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, fake.hits["/v1/league/L1"])
}

func TestPreviousID(t *testing.T) {
	id := func(s string) *string { return &s }
	assert.Empty(t, League{}.PreviousID())
	assert.Empty(t, League{PreviousLeagueID: id("0")}.PreviousID())
	assert.Equal(t, "123", League{PreviousLeagueID: id("123")}.PreviousID())
}
