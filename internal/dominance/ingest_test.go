package dominance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPairWeek(t *testing.T) {
	reg := NewRegistry()
	roster := reg.ResolveSeason("2023", []RosterIdentity{
		{RosterID: 1, OwnerID: "a"},
		{RosterID: 2, OwnerID: "b"},
		{RosterID: 3, OwnerID: "c"},
		{RosterID: 4, OwnerID: "d"},
		{RosterID: 5, OwnerID: "e"},
	})

	rows := []ScoreRow{
		{MatchupID: 2, RosterID: 4, Points: 90},
		{MatchupID: 1, RosterID: 2, Points: 101.5},
		{MatchupID: 1, RosterID: 1, Points: 120.25},
		{MatchupID: 2, RosterID: 3, Points: 88},
		{MatchupID: 3, RosterID: 5, Points: 70},  // unpaired
		{MatchupID: 0, RosterID: 6, Points: 50},  // bye
		{MatchupID: 4, RosterID: 99, Points: 60}, // unknown roster
	}

	pairs := PairWeek(roster, 5, rows)
	require.Len(t, pairs, 2)

	assert.Equal(t, Pairing{Season: "2023", Week: 5, A: "owner:a", B: "owner:b", PointsA: 120.25, PointsB: 101.5}, pairs[0])
	assert.Equal(t, Pairing{Season: "2023", Week: 5, A: "owner:c", B: "owner:d", PointsA: 88, PointsB: 90}, pairs[1])
}

func TestPairWeekSkipsUnplayedGames(t *testing.T) {
	reg := NewRegistry()
	roster := reg.ResolveSeason("2023", []RosterIdentity{
		{RosterID: 1, OwnerID: "a"},
		{RosterID: 2, OwnerID: "b"},
		{RosterID: 3, OwnerID: "c"},
		{RosterID: 4, OwnerID: "d"},
	})

	pairs := PairWeek(roster, 12, []ScoreRow{
		{MatchupID: 1, RosterID: 1, Points: 0},
		{MatchupID: 1, RosterID: 2, Points: 0},
		{MatchupID: 2, RosterID: 3, Points: 0},
		{MatchupID: 2, RosterID: 4, Points: 64.2},
	})
	require.Len(t, pairs, 1)
	assert.Equal(t, "owner:c", pairs[0].A)
	assert.InDelta(t, 64.2, pairs[0].PointsB, 1e-9)

	assert.Empty(t, PairWeek(roster, 13, []ScoreRow{
		{MatchupID: 1, RosterID: 1},
		{MatchupID: 1, RosterID: 2},
	}))
}

func TestPairWeekDropsUnmappedOpponent(t *testing.T) {
	reg := NewRegistry()
	roster := reg.ResolveSeason("2023", []RosterIdentity{{RosterID: 1, OwnerID: "a"}})

	pairs := PairWeek(roster, 1, []ScoreRow{
		{MatchupID: 1, RosterID: 1, Points: 100},
		{MatchupID: 1, RosterID: 2, Points: 90},
	})
	assert.Empty(t, pairs)
}

func TestPairingMatchup(t *testing.T) {
	m := Pairing{Season: "2023", Week: 3, A: "a", B: "b", PointsA: 80, PointsB: 100}.Matchup()
	assert.Equal(t, "b", m.Winner)
	assert.InDelta(t, 20, m.Margin, 1e-9)

	tie := Pairing{A: "a", B: "b", PointsA: 80, PointsB: 80}.Matchup()
	assert.Empty(t, tie.Winner)
	assert.Zero(t, tie.Margin)
}
