package dominance

import (
	"sort"

	"roast-master/internal/domain"
)

const DefaultPlayoffTeams = 6

// Standing is one roster's season record as published upstream. Rank 0
// means the provider did not publish a rank.
type Standing struct {
	RosterID  int
	Wins      int
	Losses    int
	Ties      int
	Rank      int
	PointsFor float64
}

// Summarize builds per-manager season summaries. Missing ranks are computed
// from wins, then points for. Without a published playoff field size the
// default is used and the qualification flag is marked inferred.
func Summarize(season, leagueID string, roster SeasonRoster, standings []Standing, playoffTeams int) []domain.SeasonSummary {
	rows := make([]Standing, 0, len(standings))
	for _, s := range standings {
		if _, ok := roster.Key(s.RosterID); ok {
			rows = append(rows, s)
		}
	}

	ranked := true
	for _, s := range rows {
		if s.Rank <= 0 {
			ranked = false
			break
		}
	}
	if !ranked {
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].Wins != rows[j].Wins {
				return rows[i].Wins > rows[j].Wins
			}
			if rows[i].PointsFor != rows[j].PointsFor {
				return rows[i].PointsFor > rows[j].PointsFor
			}
			return rows[i].RosterID < rows[j].RosterID
		})
		for i := range rows {
			rows[i].Rank = i + 1
		}
	} else {
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Rank < rows[j].Rank })
	}

	inferred := playoffTeams <= 0
	if inferred {
		playoffTeams = DefaultPlayoffTeams
	}

	out := make([]domain.SeasonSummary, 0, len(rows))
	for _, s := range rows {
		key, _ := roster.Key(s.RosterID)
		out = append(out, domain.SeasonSummary{
			Season:                   season,
			LeagueID:                 leagueID,
			ManagerKey:               key,
			Name:                     roster.Name(s.RosterID),
			Rank:                     s.Rank,
			Wins:                     s.Wins,
			Losses:                   s.Losses,
			Ties:                     s.Ties,
			PointsFor:                s.PointsFor,
			PlayoffQualified:         s.Rank <= playoffTeams,
			PlayoffQualifiedInferred: inferred,
		})
	}
	return out
}
