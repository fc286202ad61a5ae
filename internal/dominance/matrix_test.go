package dominance

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roast-master/internal/domain"
)

func managers(keys ...string) []domain.Manager {
	out := make([]domain.Manager, 0, len(keys))
	for _, k := range keys {
		out = append(out, domain.Manager{Key: k, Name: k})
	}
	return out
}

func TestAccumulatorSymmetry(t *testing.T) {
	keys := []string{"a", "b", "c", "d", "e"}
	acc := NewAccumulator(keys)
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 500; i++ {
		x, y := keys[rng.Intn(len(keys))], keys[rng.Intn(len(keys))]
		pa := float64(rng.Intn(40) + 80)
		pb := float64(rng.Intn(40) + 80)
		added := acc.Add(Pairing{A: x, B: y, PointsA: pa, PointsB: pb})
		assert.Equal(t, x != y, added)
	}

	cells := acc.Cells()
	for _, a := range keys {
		for _, b := range keys {
			ab, ba := cells[a][b], cells[b][a]
			if a == b {
				assert.Zero(t, ab.Games)
				assert.Equal(t, domain.BadgeNone, ab.Badge)
				continue
			}
			assert.Equal(t, ab.Wins, ba.Losses)
			assert.Equal(t, ab.Losses, ba.Wins)
			assert.Equal(t, ab.Ties, ba.Ties)
			assert.Equal(t, ab.PointsFor, ba.PointsAgainst)
			assert.Equal(t, ab.Games, ab.Wins+ab.Losses+ab.Ties)
			assert.GreaterOrEqual(t, ab.Score, -1.0)
			assert.LessOrEqual(t, ab.Score, 1.0)
		}
	}
}

func TestAccumulatorOrderIndependent(t *testing.T) {
	games := []Pairing{
		{A: "a", B: "b", PointsA: 100, PointsB: 90},
		{A: "b", B: "a", PointsA: 110, PointsB: 95},
		{A: "a", B: "b", PointsA: 100, PointsB: 100},
		{A: "a", B: "c", PointsA: 70, PointsB: 90},
	}

	forward := NewAccumulator([]string{"a", "b", "c"})
	for _, g := range games {
		forward.Add(g)
	}
	backward := NewAccumulator([]string{"a", "b", "c"})
	for i := len(games) - 1; i >= 0; i-- {
		backward.Add(games[i])
	}

	assert.Equal(t, forward.Cells(), backward.Cells())

	ab := forward.Cells()["a"]["b"]
	assert.Equal(t, 1, ab.Wins)
	assert.Equal(t, 1, ab.Losses)
	assert.Equal(t, 1, ab.Ties)
	assert.Equal(t, "1-1-1", ab.DisplayRecord)
}

func TestBuildMatrixTotalsAndOrder(t *testing.T) {
	acc := NewAccumulator([]string{"a", "b", "c"})
	acc.Add(Pairing{A: "a", B: "b", PointsA: 100, PointsB: 90})
	acc.Add(Pairing{A: "c", B: "b", PointsA: 100, PointsB: 90})
	acc.Add(Pairing{A: "c", B: "a", PointsA: 100, PointsB: 90})

	m := BuildMatrix(managers("a", "b", "c"), acc.Cells())

	assert.Equal(t, []string{"c", "a", "b"}, m.Order)
	assert.Equal(t, 2, m.RowTotals["c"].Wins)
	assert.Equal(t, 0, m.RowTotals["c"].Losses)
	assert.Equal(t, 2, m.ColumnTotals["b"].Wins, "the league is 2-0 against b")
	assert.Equal(t, 6, m.GrandTotals.Games, "every game is counted from both sides")
	assert.Equal(t, m.GrandTotals.Wins, m.GrandTotals.Losses)
	assert.InDelta(t, m.GrandTotals.PointsFor, m.GrandTotals.PointsAgainst, 1e-9)

	flat := Flatten(m)
	require.Len(t, flat, 6)
	for _, c := range flat {
		assert.NotEqual(t, c.Manager, c.Opponent)
	}
	assert.Equal(t, "c", flat[0].Manager)
}

func TestBuildMatrixOrderTieBreaksByName(t *testing.T) {
	acc := NewAccumulator([]string{"k1", "k2"})
	m := BuildMatrix([]domain.Manager{{Key: "k1", Name: "Zed"}, {Key: "k2", Name: "Amy"}}, acc.Cells())
	assert.Equal(t, []string{"k2", "k1"}, m.Order)
}
