package dominance

import (
	"fmt"
	"sort"
	"strings"

	"roast-master/internal/domain"
)

const (
	rankDropMin     = 3
	repeatFinishMin = 2
)

// HeroInput is the season and week level history hero rules read from.
// Seasons lists season labels oldest first.
type HeroInput struct {
	Seasons   []string
	Matchups  []domain.WeeklyMatchup
	Summaries []domain.SeasonSummary
	Names     Names
}

func (in HeroInput) seasonIndex() map[string]int {
	idx := make(map[string]int, len(in.Seasons))
	for i, s := range in.Seasons {
		idx[s] = i
	}
	return idx
}

type HeroRule struct {
	ID    string
	Apply func(in HeroInput) (domain.Card, bool)
}

var HeroRules = []HeroRule{
	{ID: "biggest_blowout", Apply: biggestBlowout},
	{ID: "narrowest_win", Apply: narrowestWin},
	{ID: "highest_score", Apply: highestScore},
	{ID: "rank_drop", Apply: rankDrop},
	{ID: "last_place_magnet", Apply: lastPlaceMagnet},
	{ID: "dynasty", Apply: dynasty},
}

func HeroCards(in HeroInput) []domain.Card {
	cards := make([]domain.Card, 0, len(HeroRules))
	for _, r := range HeroRules {
		card, ok := r.Apply(in)
		if !ok {
			continue
		}
		card.ID = r.ID
		cards = append(cards, card)
	}
	return cards
}

// laterGame orders games most recent first, then by key for determinism.
func laterGame(idx map[string]int, a, b domain.WeeklyMatchup) bool {
	if idx[a.Season] != idx[b.Season] {
		return idx[a.Season] > idx[b.Season]
	}
	if a.Week != b.Week {
		return a.Week > b.Week
	}
	if a.ManagerA != b.ManagerA {
		return a.ManagerA < b.ManagerA
	}
	return a.ManagerB < b.ManagerB
}

func pickGame(in HeroInput, keep func(domain.WeeklyMatchup) bool, value func(domain.WeeklyMatchup) float64, larger bool) (domain.WeeklyMatchup, bool) {
	idx := in.seasonIndex()
	var best domain.WeeklyMatchup
	found := false
	for _, m := range in.Matchups {
		if !keep(m) {
			continue
		}
		if !found {
			best, found = m, true
			continue
		}
		va, vb := value(m), value(best)
		switch {
		case va == vb:
			if laterGame(idx, m, best) {
				best = m
			}
		case (va > vb) == larger:
			best = m
		}
	}
	return best, found
}

func loser(m domain.WeeklyMatchup) string {
	if m.Winner == m.ManagerA {
		return m.ManagerB
	}
	return m.ManagerA
}

func biggestBlowout(in HeroInput) (domain.Card, bool) {
	m, ok := pickGame(in,
		func(m domain.WeeklyMatchup) bool { return m.Winner != "" },
		func(m domain.WeeklyMatchup) float64 { return m.Margin },
		true)
	if !ok {
		return domain.Card{}, false
	}
	return domain.Card{
		Title:    "Biggest Blowout",
		Body:     fmt.Sprintf("%s beat %s by %.2f in week %d of %s.", in.Names.Of(m.Winner), in.Names.Of(loser(m)), m.Margin, m.Week, m.Season),
		Managers: []string{m.Winner, loser(m)},
		Season:   m.Season,
		Week:     m.Week,
		Value:    m.Margin,
	}, true
}

func narrowestWin(in HeroInput) (domain.Card, bool) {
	m, ok := pickGame(in,
		func(m domain.WeeklyMatchup) bool { return m.Winner != "" && m.Margin > 0 },
		func(m domain.WeeklyMatchup) float64 { return m.Margin },
		false)
	if !ok {
		return domain.Card{}, false
	}
	return domain.Card{
		Title:    "Photo Finish",
		Body:     fmt.Sprintf("%s edged %s by %.2f in week %d of %s.", in.Names.Of(m.Winner), in.Names.Of(loser(m)), m.Margin, m.Week, m.Season),
		Managers: []string{m.Winner, loser(m)},
		Season:   m.Season,
		Week:     m.Week,
		Value:    m.Margin,
	}, true
}

func highestScore(in HeroInput) (domain.Card, bool) {
	top := func(m domain.WeeklyMatchup) float64 { return max(m.PointsA, m.PointsB) }
	m, ok := pickGame(in,
		func(m domain.WeeklyMatchup) bool { return top(m) > 0 },
		top,
		true)
	if !ok {
		return domain.Card{}, false
	}
	scorer, opp := m.ManagerA, m.ManagerB
	if m.PointsB > m.PointsA {
		scorer, opp = m.ManagerB, m.ManagerA
	}
	return domain.Card{
		Title:    "Heat Check",
		Body:     fmt.Sprintf("%s dropped %.2f on %s in week %d of %s.", in.Names.Of(scorer), top(m), in.Names.Of(opp), m.Week, m.Season),
		Managers: []string{scorer, opp},
		Season:   m.Season,
		Week:     m.Week,
		Value:    top(m),
	}, true
}

func rankDrop(in HeroInput) (domain.Card, bool) {
	ranks := make(map[string]map[string]int)
	for _, s := range in.Summaries {
		if s.Rank <= 0 {
			continue
		}
		if ranks[s.Season] == nil {
			ranks[s.Season] = make(map[string]int)
		}
		ranks[s.Season][s.ManagerKey] = s.Rank
	}

	type drop struct {
		manager       string
		season        int
		before, after int
	}
	var best *drop
	for i := 1; i < len(in.Seasons); i++ {
		prev, cur := ranks[in.Seasons[i-1]], ranks[in.Seasons[i]]
		keys := make([]string, 0, len(cur))
		for k := range cur {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			before, ok := prev[k]
			if !ok {
				continue
			}
			d := drop{manager: k, season: i, before: before, after: cur[k]}
			size := d.after - d.before
			if size < rankDropMin {
				continue
			}
			// equal drops go to the later season
			if best == nil || size > best.after-best.before || (size == best.after-best.before && d.season > best.season) {
				best = &d
			}
		}
	}
	if best == nil {
		return domain.Card{}, false
	}
	return domain.Card{
		Title:    "Free Fall",
		Body:     fmt.Sprintf("%s went from #%d in %s to #%d in %s.", in.Names.Of(best.manager), best.before, in.Seasons[best.season-1], best.after, in.Seasons[best.season]),
		Managers: []string{best.manager},
		Season:   in.Seasons[best.season],
		Value:    float64(best.after - best.before),
	}, true
}

// countFinishes counts, per manager, the seasons in which match reports true
// for their rank given the number of ranked teams that season.
func countFinishes(in HeroInput, match func(rank, teams int) bool) map[string][]string {
	teams := make(map[string]int)
	for _, s := range in.Summaries {
		if s.Rank > teams[s.Season] {
			teams[s.Season] = s.Rank
		}
	}
	out := make(map[string][]string)
	for _, s := range in.Summaries {
		if s.Rank > 0 && match(s.Rank, teams[s.Season]) {
			out[s.ManagerKey] = append(out[s.ManagerKey], s.Season)
		}
	}
	return out
}

func mostFinishes(in HeroInput, counts map[string][]string) (string, []string, bool) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(counts[keys[i]]) != len(counts[keys[j]]) {
			return len(counts[keys[i]]) > len(counts[keys[j]])
		}
		ni, nj := in.Names.Of(keys[i]), in.Names.Of(keys[j])
		if ni != nj {
			return ni < nj
		}
		return keys[i] < keys[j]
	})
	if len(keys) == 0 || len(counts[keys[0]]) < repeatFinishMin {
		return "", nil, false
	}
	seasons := counts[keys[0]]
	idx := in.seasonIndex()
	sort.Slice(seasons, func(i, j int) bool { return idx[seasons[i]] < idx[seasons[j]] })
	return keys[0], seasons, true
}

func lastPlaceMagnet(in HeroInput) (domain.Card, bool) {
	k, seasons, ok := mostFinishes(in, countFinishes(in, func(rank, teams int) bool {
		return teams > 1 && rank == teams
	}))
	if !ok {
		return domain.Card{}, false
	}
	return domain.Card{
		Title:    "Basement Dweller",
		Body:     fmt.Sprintf("%s finished last %d times (%s).", in.Names.Of(k), len(seasons), strings.Join(seasons, ", ")),
		Managers: []string{k},
		Value:    float64(len(seasons)),
	}, true
}

func dynasty(in HeroInput) (domain.Card, bool) {
	k, seasons, ok := mostFinishes(in, countFinishes(in, func(rank, _ int) bool {
		return rank == 1
	}))
	if !ok {
		return domain.Card{}, false
	}
	return domain.Card{
		Title:    "Dynasty",
		Body:     fmt.Sprintf("%s finished first %d times (%s).", in.Names.Of(k), len(seasons), strings.Join(seasons, ", ")),
		Managers: []string{k},
		Value:    float64(len(seasons)),
	}, true
}
