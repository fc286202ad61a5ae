package dominance

import (
	"fmt"
	"math"

	"roast-master/internal/domain"
)

const (
	smallSampleGames = 4
	sweepWins        = 3
	rivalGames       = 5
	rivalMaxScore    = 0.20
	ownedMinScore    = 0.5
	marginOverride   = 1.0

	scoreEpsilon = 1e-9
)

type recordShape struct{ wins, losses int }

var shapeBadges = map[recordShape]domain.Badge{
	{3, 1}: domain.BadgeEdge,
	{1, 3}: domain.BadgeEdge,
	{2, 0}: domain.BadgeEdge,
	{0, 2}: domain.BadgeEdge,
	{2, 1}: domain.BadgeSmallSample,
	{1, 2}: domain.BadgeSmallSample,
	{2, 2}: domain.BadgeSmallSample,
	{1, 1}: domain.BadgeSmallSample,
}

// Score is the normalized dominance of a record, in [-1, 1].
func Score(wins, losses, games int) float64 {
	if games <= 0 {
		return 0
	}
	return float64(wins-losses) / float64(games)
}

// Classify maps a finalized record to its badge. It depends only on its
// arguments.
func Classify(wins, losses, games int, score float64) domain.Badge {
	if games < smallSampleGames {
		switch {
		case wins >= sweepWins && losses == 0:
			return domain.BadgeOwned
		case wins == 0 && losses >= sweepWins:
			return domain.BadgeNemesis
		default:
			return domain.BadgeSmallSample
		}
	}

	if games >= rivalGames && math.Abs(score) <= rivalMaxScore+scoreEpsilon {
		return domain.BadgeRival
	}

	badge, ok := shapeBadges[recordShape{wins, losses}]
	if !ok {
		switch {
		case score >= ownedMinScore-scoreEpsilon:
			badge = domain.BadgeOwned
		case score <= -ownedMinScore+scoreEpsilon:
			badge = domain.BadgeNemesis
		default:
			badge = domain.BadgeEdge
		}
	}

	// Margin override. Only a perfect record reaches |score| = 1.
	switch {
	case badge == domain.BadgeSmallSample && score >= marginOverride:
		return domain.BadgeEdge
	case badge == domain.BadgeEdge && score >= marginOverride:
		return domain.BadgeOwned
	case badge == domain.BadgeEdge && score <= -marginOverride:
		return domain.BadgeSmallSample
	}
	return badge
}

func DisplayRecord(wins, losses, ties int) string {
	if ties > 0 {
		return fmt.Sprintf("%d-%d-%d", wins, losses, ties)
	}
	return fmt.Sprintf("%d-%d", wins, losses)
}

func DisplayScore(score float64) string {
	if math.Abs(score) < 0.005 {
		return "0.00"
	}
	return fmt.Sprintf("%+.2f", score)
}
