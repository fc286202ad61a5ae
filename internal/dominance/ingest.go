package dominance

import (
	"sort"

	"roast-master/internal/domain"
)

// ScoreRow is one roster's score in one week as reported upstream.
// MatchupID 0 means the roster had no opponent.
type ScoreRow struct {
	MatchupID int
	RosterID  int
	Points    float64
}

// Pairing is one game between two canonical managers.
type Pairing struct {
	Season  string
	Week    int
	A       string
	B       string
	PointsA float64
	PointsB float64
}

func (p Pairing) Matchup() domain.WeeklyMatchup {
	m := domain.WeeklyMatchup{
		Season:   p.Season,
		Week:     p.Week,
		ManagerA: p.A,
		ManagerB: p.B,
		PointsA:  p.PointsA,
		PointsB:  p.PointsB,
	}
	switch {
	case p.PointsA > p.PointsB:
		m.Winner = p.A
		m.Margin = p.PointsA - p.PointsB
	case p.PointsB > p.PointsA:
		m.Winner = p.B
		m.Margin = p.PointsB - p.PointsA
	}
	return m
}

// PairWeek groups a week's rows into games. Byes, unpaired rows and rows whose
// roster is unknown to the season are dropped, as are games where both sides
// scored zero, which is how the provider reports weeks not yet played. Output
// is sorted by matchup id.
func PairWeek(roster SeasonRoster, week int, rows []ScoreRow) []Pairing {
	groups := make(map[int][]ScoreRow)
	for _, row := range rows {
		if row.MatchupID == 0 {
			continue
		}
		if _, ok := roster.Key(row.RosterID); !ok {
			continue
		}
		groups[row.MatchupID] = append(groups[row.MatchupID], row)
	}

	ids := make([]int, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	pairs := make([]Pairing, 0, len(ids))
	for _, id := range ids {
		g := groups[id]
		if len(g) < 2 {
			continue
		}
		sort.Slice(g, func(i, j int) bool { return g[i].RosterID < g[j].RosterID })

		a, _ := roster.Key(g[0].RosterID)
		b, _ := roster.Key(g[1].RosterID)
		if a == b {
			continue
		}
		if g[0].Points == 0 && g[1].Points == 0 {
			continue
		}
		pairs = append(pairs, Pairing{
			Season:  roster.Season,
			Week:    week,
			A:       a,
			B:       b,
			PointsA: g[0].Points,
			PointsB: g[1].Points,
		})
	}
	return pairs
}
