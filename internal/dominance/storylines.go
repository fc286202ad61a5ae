package dominance

import (
	"fmt"
	"math"

	"roast-master/internal/domain"
)

// StorylineRule derives at most one league-wide card from the flattened
// cells. A rule whose thresholds nothing meets yields no card.
type StorylineRule struct {
	ID    string
	Apply func(cells []domain.Cell, names Names) (domain.Card, bool)
}

var StorylineRules = []StorylineRule{
	{ID: "nemesis", Apply: nemesisStory},
	{ID: "perfect_sweep", Apply: perfectSweepStory},
	{ID: "shared_victim", Apply: sharedVictimStory},
	{ID: "points_bully", Apply: pointsBullyStory},
	{ID: "coin_flip", Apply: coinFlipStory},
	{ID: "most_played", Apply: mostPlayedStory},
}

func Storylines(cells []domain.Cell, names Names) []domain.Card {
	return applyStorylines(StorylineRules, cells, names)
}

func applyStorylines(rules []StorylineRule, cells []domain.Cell, names Names) []domain.Card {
	cards := make([]domain.Card, 0, len(rules))
	for _, r := range rules {
		card, ok := r.Apply(cells, names)
		if !ok {
			continue
		}
		card.ID = r.ID
		cards = append(cards, card)
	}
	return cards
}

// pickCell returns the cell that passes keep and sorts first under better.
func pickCell(cells []domain.Cell, keep func(domain.Cell) bool, better func(a, b domain.Cell) bool) (domain.Cell, bool) {
	var best domain.Cell
	found := false
	for _, c := range cells {
		if c.Manager == c.Opponent || !keep(c) {
			continue
		}
		if !found || better(c, best) {
			best, found = c, true
		}
	}
	return best, found
}

func pairTieBreak(a, b domain.Cell) bool {
	if a.Manager != b.Manager {
		return a.Manager < b.Manager
	}
	return a.Opponent < b.Opponent
}

func avgMargin(c domain.Cell) float64 {
	if c.Games == 0 {
		return 0
	}
	return (c.PointsFor - c.PointsAgainst) / float64(c.Games)
}

func nemesisStory(cells []domain.Cell, names Names) (domain.Card, bool) {
	c, ok := pickCell(cells,
		func(c domain.Cell) bool {
			return c.Badge == domain.BadgeNemesis && c.Games >= StorylineGames && c.Score <= -SeverityScore
		},
		func(a, b domain.Cell) bool {
			if a.Score != b.Score {
				return a.Score < b.Score
			}
			if a.Games != b.Games {
				return a.Games > b.Games
			}
			return pairTieBreak(a, b)
		})
	if !ok {
		return domain.Card{}, false
	}
	return domain.Card{
		Title:    "Nemesis",
		Body:     fmt.Sprintf("%s cannot solve %s: %s all-time.", names.Of(c.Manager), names.Of(c.Opponent), c.DisplayRecord),
		Managers: []string{c.Manager, c.Opponent},
		Value:    c.Score,
	}, true
}

func perfectSweepStory(cells []domain.Cell, names Names) (domain.Card, bool) {
	c, ok := pickCell(cells,
		func(c domain.Cell) bool {
			return c.Wins >= sweepWins && c.Losses == 0 && c.Ties == 0
		},
		func(a, b domain.Cell) bool {
			if a.Wins != b.Wins {
				return a.Wins > b.Wins
			}
			if m1, m2 := avgMargin(a), avgMargin(b); m1 != m2 {
				return m1 > m2
			}
			return pairTieBreak(a, b)
		})
	if !ok {
		return domain.Card{}, false
	}
	return domain.Card{
		Title:    "Clean Sweep",
		Body:     fmt.Sprintf("%s has never lost to %s (%s).", names.Of(c.Manager), names.Of(c.Opponent), c.DisplayRecord),
		Managers: []string{c.Manager, c.Opponent},
		Value:    float64(c.Wins),
	}, true
}

func sharedVictimStory(cells []domain.Cell, names Names) (domain.Card, bool) {
	mo := FindMostOwned(cells, names)
	if mo == nil || len(mo.Owners) < sharedVictimMin {
		return domain.Card{}, false
	}
	managers := []string{mo.Manager}
	for _, o := range mo.Owners {
		managers = append(managers, o.Manager)
	}
	return domain.Card{
		Title:    "League Piñata",
		Body:     fmt.Sprintf("%s is owned by %d different managers.", mo.Name, len(mo.Owners)),
		Managers: managers,
		Value:    float64(len(mo.Owners)),
	}, true
}

func pointsBullyStory(cells []domain.Cell, names Names) (domain.Card, bool) {
	c, ok := pickCell(cells,
		func(c domain.Cell) bool {
			return c.Games >= StorylineGames && c.Score >= SeverityScore
		},
		func(a, b domain.Cell) bool {
			if m1, m2 := avgMargin(a), avgMargin(b); m1 != m2 {
				return m1 > m2
			}
			if a.Games != b.Games {
				return a.Games > b.Games
			}
			return pairTieBreak(a, b)
		})
	if !ok {
		return domain.Card{}, false
	}
	margin := avgMargin(c)
	return domain.Card{
		Title:    "Points Bully",
		Body:     fmt.Sprintf("%s outscores %s by %.1f points a game.", names.Of(c.Manager), names.Of(c.Opponent), margin),
		Managers: []string{c.Manager, c.Opponent},
		Value:    margin,
	}, true
}

func coinFlipStory(cells []domain.Cell, names Names) (domain.Card, bool) {
	c, ok := pickCell(cells,
		func(c domain.Cell) bool {
			return c.Manager < c.Opponent && c.Badge == domain.BadgeRival && c.Games >= StorylineGames
		},
		func(a, b domain.Cell) bool {
			if m1, m2 := math.Abs(avgMargin(a)), math.Abs(avgMargin(b)); m1 != m2 {
				return m1 < m2
			}
			if a.Games != b.Games {
				return a.Games > b.Games
			}
			return pairTieBreak(a, b)
		})
	if !ok {
		return domain.Card{}, false
	}
	margin := math.Abs(avgMargin(c))
	return domain.Card{
		Title:    "Coin Flip",
		Body:     fmt.Sprintf("%s vs %s: %s, separated by %.1f points a game.", names.Of(c.Manager), names.Of(c.Opponent), c.DisplayRecord, margin),
		Managers: []string{c.Manager, c.Opponent},
		Value:    margin,
	}, true
}

func mostPlayedStory(cells []domain.Cell, names Names) (domain.Card, bool) {
	c, ok := pickCell(cells,
		func(c domain.Cell) bool {
			return c.Manager < c.Opponent && c.Games >= StorylineGames
		},
		func(a, b domain.Cell) bool {
			if a.Games != b.Games {
				return a.Games > b.Games
			}
			if s1, s2 := math.Abs(a.Score), math.Abs(b.Score); s1 != s2 {
				return s1 < s2
			}
			return pairTieBreak(a, b)
		})
	if !ok {
		return domain.Card{}, false
	}
	return domain.Card{
		Title:    "Old Friends",
		Body:     fmt.Sprintf("%s and %s have met %d times (%s).", names.Of(c.Manager), names.Of(c.Opponent), c.Games, c.DisplayRecord),
		Managers: []string{c.Manager, c.Opponent},
		Value:    float64(c.Games),
	}, true
}
