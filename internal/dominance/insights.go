package dominance

import (
	"math"
	"sort"

	"roast-master/internal/domain"
)

const (
	CountableGames  = 3
	StorylineGames  = 5
	SeverityScore   = 0.4
	sharedVictimMin = 2
)

// Names resolves manager keys to display names.
type Names map[string]string

func NamesOf(managers []domain.Manager) Names {
	n := make(Names, len(managers))
	for _, m := range managers {
		n[m.Key] = m.Name
	}
	return n
}

func (n Names) Of(key string) string {
	if name, ok := n[key]; ok && name != "" {
		return name
	}
	return key
}

func victim(c domain.Cell, key string, names Names) domain.Victim {
	return domain.Victim{
		Manager: key,
		Name:    names.Of(key),
		Record:  c.DisplayRecord,
		Games:   c.Games,
		Score:   c.Score,
	}
}

func sortVictims(v []domain.Victim) {
	sort.Slice(v, func(i, j int) bool {
		if v[i].Score != v[j].Score {
			return v[i].Score > v[j].Score
		}
		if v[i].Games != v[j].Games {
			return v[i].Games > v[j].Games
		}
		if v[i].Name != v[j].Name {
			return v[i].Name < v[j].Name
		}
		return v[i].Manager < v[j].Manager
	})
}

// FindLandlord picks the manager with the most distinct Owned victims.
// Returns nil when nobody owns anybody.
func FindLandlord(cells []domain.Cell, names Names) *domain.Landlord {
	byOwner := make(map[string][]domain.Victim)
	for _, c := range cells {
		if c.Manager == c.Opponent || c.Badge != domain.BadgeOwned {
			continue
		}
		byOwner[c.Manager] = append(byOwner[c.Manager], victim(c, c.Opponent, names))
	}

	var best *domain.Landlord
	for owner, victims := range byOwner {
		cand := &domain.Landlord{Manager: owner, Name: names.Of(owner), Victims: victims}
		for _, v := range victims {
			cand.AverageScore += v.Score
			cand.AverageGames += float64(v.Games)
		}
		cand.AverageScore /= float64(len(victims))
		cand.AverageGames /= float64(len(victims))

		if best == nil || landlordBeats(cand, best) {
			best = cand
		}
	}
	if best != nil {
		sortVictims(best.Victims)
	}
	return best
}

func landlordBeats(a, b *domain.Landlord) bool {
	if len(a.Victims) != len(b.Victims) {
		return len(a.Victims) > len(b.Victims)
	}
	if a.AverageScore != b.AverageScore {
		return a.AverageScore > b.AverageScore
	}
	if a.AverageGames != b.AverageGames {
		return a.AverageGames > b.AverageGames
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.Manager < b.Manager
}

// FindMostOwned picks the manager Owned by the most distinct opponents.
func FindMostOwned(cells []domain.Cell, names Names) *domain.MostOwned {
	byVictim := make(map[string][]domain.Victim)
	for _, c := range cells {
		if c.Manager == c.Opponent || c.Badge != domain.BadgeOwned {
			continue
		}
		byVictim[c.Opponent] = append(byVictim[c.Opponent], victim(c, c.Manager, names))
	}

	var best *domain.MostOwned
	for v, owners := range byVictim {
		cand := &domain.MostOwned{Manager: v, Name: names.Of(v), Owners: owners}
		var weighted float64
		for _, o := range owners {
			cand.TotalGames += o.Games
			weighted += o.Score * float64(o.Games)
		}
		if cand.TotalGames > 0 {
			cand.WeightedScore = weighted / float64(cand.TotalGames)
		}

		if best == nil || mostOwnedBeats(cand, best) {
			best = cand
		}
	}
	if best != nil {
		sortVictims(best.Owners)
	}
	return best
}

func mostOwnedBeats(a, b *domain.MostOwned) bool {
	if len(a.Owners) != len(b.Owners) {
		return len(a.Owners) > len(b.Owners)
	}
	if a.TotalGames != b.TotalGames {
		return a.TotalGames > b.TotalGames
	}
	if a.WeightedScore != b.WeightedScore {
		return a.WeightedScore > b.WeightedScore
	}
	if a.Name != b.Name {
		return a.Name < b.Name
	}
	return a.Manager < b.Manager
}

func badgeRank(b domain.Badge) int {
	switch b {
	case domain.BadgeRival:
		return 0
	case domain.BadgeEdge:
		return 1
	default:
		return 2
	}
}

// FindBiggestRivalry picks the closest countable pair. Each pair is considered
// once, from the side of its lexically smaller key.
func FindBiggestRivalry(cells []domain.Cell, names Names) *domain.Rivalry {
	var best *domain.Cell
	for i := range cells {
		c := &cells[i]
		if c.Manager >= c.Opponent || c.Games < CountableGames {
			continue
		}
		if best == nil || rivalryBeats(c, best) {
			best = c
		}
	}
	if best == nil {
		return nil
	}
	return &domain.Rivalry{
		ManagerA: best.Manager,
		ManagerB: best.Opponent,
		NameA:    names.Of(best.Manager),
		NameB:    names.Of(best.Opponent),
		Record:   best.DisplayRecord,
		Games:    best.Games,
		Score:    best.Score,
		Badge:    best.Badge,
	}
}

func rivalryBeats(a, b *domain.Cell) bool {
	if sa, sb := math.Abs(a.Score), math.Abs(b.Score); sa != sb {
		return sa < sb
	}
	if a.Games != b.Games {
		return a.Games > b.Games
	}
	if ra, rb := badgeRank(a.Badge), badgeRank(b.Badge); ra != rb {
		return ra < rb
	}
	if a.Manager != b.Manager {
		return a.Manager < b.Manager
	}
	return a.Opponent < b.Opponent
}

// PersonalSuperlatives reports each manager's most and least favourable
// storyline-worthy matchup. Managers with neither are left out.
func PersonalSuperlatives(order []string, cells []domain.Cell) []domain.Superlatives {
	byManager := make(map[string]*domain.Superlatives)
	for i := range cells {
		c := cells[i]
		if c.Manager == c.Opponent || c.Games < StorylineGames || math.Abs(c.Score) < SeverityScore {
			continue
		}
		s, ok := byManager[c.Manager]
		if !ok {
			s = &domain.Superlatives{Manager: c.Manager}
			byManager[c.Manager] = s
		}
		if c.Score > 0 && (s.BestCell == nil || superlativeBeats(c, *s.BestCell, 1)) {
			s.BestCell = &c
		}
		if c.Score < 0 && (s.WorstCell == nil || superlativeBeats(c, *s.WorstCell, -1)) {
			s.WorstCell = &c
		}
	}

	out := make([]domain.Superlatives, 0, len(byManager))
	for _, k := range order {
		if s, ok := byManager[k]; ok {
			out = append(out, *s)
		}
	}
	return out
}

func superlativeBeats(a, b domain.Cell, sign float64) bool {
	if a.Score != b.Score {
		return a.Score*sign > b.Score*sign
	}
	if a.Games != b.Games {
		return a.Games > b.Games
	}
	return a.Opponent < b.Opponent
}
