package dominance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"roast-master/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		wins   int
		losses int
		games  int
		want   domain.Badge
	}{
		{"perfect three game sweep bypasses sample floor", 3, 0, 3, domain.BadgeOwned},
		{"winless three games bypasses sample floor", 0, 3, 3, domain.BadgeNemesis},
		{"two one is small sample", 2, 1, 3, domain.BadgeSmallSample},
		{"single game", 1, 0, 1, domain.BadgeSmallSample},
		{"no games", 0, 0, 0, domain.BadgeSmallSample},
		{"three two over five is rival", 3, 2, 5, domain.BadgeRival},
		{"four three over seven is rival", 4, 3, 7, domain.BadgeRival},
		{"even over six is rival", 3, 3, 6, domain.BadgeRival},
		{"three one is edge", 3, 1, 4, domain.BadgeEdge},
		{"one three is edge", 1, 3, 4, domain.BadgeEdge},
		{"two zero with ties is edge", 2, 0, 4, domain.BadgeEdge},
		{"zero two with ties is edge", 0, 2, 4, domain.BadgeEdge},
		{"two two is small sample", 2, 2, 4, domain.BadgeSmallSample},
		{"one one with ties is small sample", 1, 1, 4, domain.BadgeSmallSample},
		{"two one with a tie is small sample", 2, 1, 4, domain.BadgeSmallSample},
		{"perfect four is owned", 4, 0, 4, domain.BadgeOwned},
		{"winless four is nemesis", 0, 4, 4, domain.BadgeNemesis},
		{"five of six is owned", 5, 1, 6, domain.BadgeOwned},
		{"one of six is nemesis", 1, 5, 6, domain.BadgeNemesis},
		{"five three is edge", 5, 3, 8, domain.BadgeEdge},
		{"three five is edge", 3, 5, 8, domain.BadgeEdge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := Score(tt.wins, tt.losses, tt.games)
			assert.Equal(t, tt.want, Classify(tt.wins, tt.losses, tt.games, score))
		})
	}
}

func TestClassifyRivalNeedsFiveGames(t *testing.T) {
	assert.Equal(t, domain.BadgeRival, Classify(3, 2, 5, 0.2))
	assert.NotEqual(t, domain.BadgeRival, Classify(3, 2, 4, 0.2))
}

func TestClassifyIsDeterministic(t *testing.T) {
	for w := 0; w <= 6; w++ {
		for l := 0; l <= 6; l++ {
			g := w + l
			s := Score(w, l, g)
			assert.Equal(t, Classify(w, l, g, s), Classify(w, l, g, s))
		}
	}
}

func TestScoreBounded(t *testing.T) {
	assert.Zero(t, Score(0, 0, 0))
	for w := 0; w <= 8; w++ {
		for l := 0; l <= 8; l++ {
			for ties := 0; ties <= 3; ties++ {
				s := Score(w, l, w+l+ties)
				assert.GreaterOrEqual(t, s, -1.0)
				assert.LessOrEqual(t, s, 1.0)
			}
		}
	}
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "5-1", DisplayRecord(5, 1, 0))
	assert.Equal(t, "2-2-1", DisplayRecord(2, 2, 1))
	assert.Equal(t, "+0.67", DisplayScore(Score(5, 1, 6)))
	assert.Equal(t, "-0.40", DisplayScore(-0.4))
	assert.Equal(t, "0.00", DisplayScore(0))
	assert.Equal(t, "+1.00", DisplayScore(1))
}
