package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"roast-master/internal/api"
	"roast-master/internal/config"
	"roast-master/internal/constants"
	"roast-master/internal/domain"
	"roast-master/internal/dominance"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrLeagueNotFound = errors.New("league not found")
)

// Provider is the upstream league data source.
type Provider interface {
	GetLeague(ctx context.Context, leagueID string) (*api.League, error)
	GetRosters(ctx context.Context, leagueID string) ([]api.Roster, error)
	GetUsers(ctx context.Context, leagueID string) ([]api.User, error)
	GetMatchups(ctx context.Context, leagueID string, week int) ([]api.Matchup, error)
}

// Request selects the league and week window. Zero weeks mean the full
// season: StartWeek 0 is week 1 and EndWeek 0 is the last possible week.
type Request struct {
	LeagueID        string
	StartWeek       int
	EndWeek         int
	IncludePlayoffs bool
}

func (r Request) normalize() (Request, error) {
	r.LeagueID = strings.TrimSpace(r.LeagueID)
	if r.StartWeek == 0 {
		r.StartWeek = constants.MinWeek
	}
	if r.EndWeek == 0 {
		r.EndWeek = constants.MaxWeek
	}

	switch {
	case r.LeagueID == "":
		return r, fmt.Errorf("%w: league id is required", ErrInvalidRequest)
	case r.StartWeek < constants.MinWeek:
		return r, fmt.Errorf("%w: start week %d is before week %d", ErrInvalidRequest, r.StartWeek, constants.MinWeek)
	case r.EndWeek < r.StartWeek:
		return r, fmt.Errorf("%w: end week %d is before start week %d", ErrInvalidRequest, r.EndWeek, r.StartWeek)
	case r.EndWeek > constants.MaxWeek:
		return r, fmt.Errorf("%w: end week %d is after week %d", ErrInvalidRequest, r.EndWeek, constants.MaxWeek)
	}
	return r, nil
}

type DominanceService struct {
	provider Provider
	cfg      *config.Config
	logger   zerolog.Logger
}

func NewDominanceService(provider Provider, cfg *config.Config, logger zerolog.Logger) *DominanceService {
	return &DominanceService{provider: provider, cfg: cfg, logger: logger}
}

// Build walks the league's season chain and produces the dominance report.
func (s *DominanceService) Build(ctx context.Context, req Request) (*domain.Report, error) {
	req, err := req.normalize()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	log := s.loggerFrom(ctx).With().Str("league_id", req.LeagueID).Logger()
	start := time.Now()

	chain, err := s.walkChain(ctx, log, req.LeagueID)
	if err != nil {
		return nil, err
	}

	b := dominance.NewBuilder()
	for _, league := range chain {
		s.ingestSeason(ctx, log, b, league, req)
	}

	current := chain[len(chain)-1]
	report := b.Report(req.LeagueID, current.Name)

	report.ShareID, err = gonanoid.New()
	if err != nil {
		return nil, fmt.Errorf("failed to generate share id: %w", err)
	}

	log.Info().
		Int("seasons", len(chain)).
		Int("managers", len(report.Managers)).
		Int("games", len(report.WeeklyMatchups)).
		Dur("duration", time.Since(start)).
		Msg("dominance report built")

	return &report, nil
}

func (s *DominanceService) loggerFrom(ctx context.Context) zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return *l
	}
	return s.logger
}

// walkChain follows previous_league_id links and returns the seasons oldest
// first. Only the starting league is required to exist.
func (s *DominanceService) walkChain(ctx context.Context, log zerolog.Logger, leagueID string) ([]api.League, error) {
	var chain []api.League
	seen := make(map[string]bool)

	for id := leagueID; id != "" && len(chain) < constants.MaxSeasonDepth; {
		if seen[id] {
			log.Warn().Str("season_league_id", id).Msg("league chain loops, stopping")
			break
		}
		seen[id] = true

		league, err := s.provider.GetLeague(ctx, id)
		if err != nil {
			if len(chain) == 0 {
				if errors.Is(err, api.ErrNotFound) {
					return nil, fmt.Errorf("%w: %s", ErrLeagueNotFound, leagueID)
				}
				return nil, fmt.Errorf("failed to fetch league %s: %w", leagueID, err)
			}
			log.Warn().Err(err).Str("season_league_id", id).Msg("previous season unavailable, stopping chain")
			break
		}
		if league.LeagueID == "" {
			league.LeagueID = id
		}
		chain = append(chain, *league)
		id = league.PreviousID()
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, nil
}

func seasonLabel(l api.League) string {
	if l.Season != "" {
		return l.Season
	}
	return l.LeagueID
}

func (s *DominanceService) ingestSeason(ctx context.Context, log zerolog.Logger, b *dominance.Builder, league api.League, req Request) {
	season := seasonLabel(league)
	log = log.With().Str("season", season).Str("season_league_id", league.LeagueID).Logger()

	playoffStart, inferred := dominance.InferPlayoffStart(dominance.PlayoffSettings{
		PlayoffStartWeek: league.Settings.PlayoffStartWeek,
		PlayoffWeekStart: league.Settings.PlayoffWeekStart,
		PlayoffWeekEnd:   league.Settings.PlayoffWeekEnd,
	})
	meta := domain.SeasonMeta{
		Season:               season,
		LeagueID:             league.LeagueID,
		PlayoffStartWeek:     playoffStart,
		PlayoffStartInferred: inferred,
		WeeksIncluded:        []int{},
		WeeksFailed:          []int{},
	}

	weeks, ok := dominance.ResolveWeekRange(req.StartWeek, req.EndWeek, playoffStart, req.IncludePlayoffs)
	if ok {
		meta.WeekRange = &weeks
	}

	var (
		rosters []api.Roster
		users   []api.User
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		rosters, err = s.provider.GetRosters(gCtx, league.LeagueID)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = s.provider.GetUsers(gCtx, league.LeagueID)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Warn().Err(err).Msg("season rosters unavailable, skipping season")
		if ok {
			for w := weeks.Start; w <= weeks.End; w++ {
				meta.WeeksFailed = append(meta.WeeksFailed, w)
			}
		}
		b.AddSeason(meta, nil)
		return
	}

	roster := b.Registry().ResolveSeason(season, identities(rosters, users))
	summaries := dominance.Summarize(season, league.LeagueID, roster, standings(rosters), league.Settings.PlayoffTeams)

	if !ok {
		log.Debug().Int("playoff_start", playoffStart).Msg("no weeks in range for season")
		b.AddSeason(meta, summaries)
		return
	}

	rows, failed := s.fetchWeeks(ctx, log, league.LeagueID, weeks)
	for i, week := 0, weeks.Start; week <= weeks.End; i, week = i+1, week+1 {
		if failed[i] {
			meta.WeeksFailed = append(meta.WeeksFailed, week)
			continue
		}
		pairs := dominance.PairWeek(roster, week, rows[i])
		if len(pairs) == 0 {
			continue
		}
		meta.WeeksIncluded = append(meta.WeeksIncluded, week)
		b.AddPairs(pairs)
	}

	log.Debug().
		Int("weeks_included", len(meta.WeeksIncluded)).
		Int("weeks_failed", len(meta.WeeksFailed)).
		Msg("season ingested")
	b.AddSeason(meta, summaries)
}

// fetchWeeks loads every week of the range with bounded concurrency. A failed
// week is flagged rather than failing the season.
func (s *DominanceService) fetchWeeks(ctx context.Context, log zerolog.Logger, leagueID string, weeks domain.WeekRange) ([][]dominance.ScoreRow, []bool) {
	n := weeks.End - weeks.Start + 1
	rows := make([][]dominance.ScoreRow, n)
	failed := make([]bool, n)

	g := new(errgroup.Group)
	g.SetLimit(s.cfg.WeekFetchConcurrency)
	for i := 0; i < n; i++ {
		week := weeks.Start + i
		g.Go(func() error {
			matchups, err := s.provider.GetMatchups(ctx, leagueID, week)
			if err != nil {
				log.Debug().Err(err).Int("week", week).Msg("week unavailable")
				failed[i] = true
				return fmt.Errorf("week %d: %w", week, err)
			}
			rows[i] = scoreRows(matchups)
			return nil
		})
	}
	// A plain Group keeps fetching the remaining weeks after a failure; Wait
	// reports the first one.
	if err := g.Wait(); err != nil {
		log.Warn().Err(err).Msg("some weeks unavailable")
	}

	return rows, failed
}

func identities(rosters []api.Roster, users []api.User) []dominance.RosterIdentity {
	byID := make(map[string]api.User, len(users))
	for _, u := range users {
		byID[u.UserID] = u
	}

	out := make([]dominance.RosterIdentity, 0, len(rosters))
	for _, r := range rosters {
		id := dominance.RosterIdentity{
			RosterID: r.RosterID,
			TeamName: r.Metadata.TeamName,
		}
		if r.OwnerID != nil {
			id.OwnerID = *r.OwnerID
		}
		if u, ok := byID[id.OwnerID]; ok && id.OwnerID != "" {
			id.Username = u.Username
			id.DisplayName = u.DisplayName
			id.AvatarURL = u.AvatarURL()
			if id.TeamName == "" {
				id.TeamName = u.Metadata.TeamName
			}
		}
		out = append(out, id)
	}
	return out
}

func standings(rosters []api.Roster) []dominance.Standing {
	out := make([]dominance.Standing, 0, len(rosters))
	for _, r := range rosters {
		out = append(out, dominance.Standing{
			RosterID:  r.RosterID,
			Wins:      r.Settings.Wins,
			Losses:    r.Settings.Losses,
			Ties:      r.Settings.Ties,
			Rank:      r.Settings.Rank,
			PointsFor: r.Settings.PointsFor(),
		})
	}
	return out
}

func scoreRows(matchups []api.Matchup) []dominance.ScoreRow {
	out := make([]dominance.ScoreRow, 0, len(matchups))
	for _, m := range matchups {
		row := dominance.ScoreRow{RosterID: m.RosterID, Points: m.Points}
		if m.MatchupID != nil {
			row.MatchupID = *m.MatchupID
		}
		out = append(out, row)
	}
	return out
}
